package service

import (
	"time"

	"go.uber.org/zap"

	"school-portal/backend/config"
	"school-portal/backend/internal/model"
	"school-portal/backend/internal/repository"
	"school-portal/backend/pkg/jwt"
)

// testMocks 单元测试用的内存仓储集合
type testMocks struct {
	persons  *mockPersonRepo
	roles    *mockRoleRepo
	classes  *mockClassRepo
	courses  *mockCourseRepo
	contacts *mockContactRepo
	holidays *mockHolidayRepo
}

// newTestEnv 组装一套基于内存 Mock 的 Service（Redis 降级为 nil）
func newTestEnv() (*Service, *testMocks) {
	persons := newMockPersonRepo()
	mocks := &testMocks{
		persons:  persons,
		roles:    newMockRoleRepo(),
		classes:  newMockClassRepo(persons),
		courses:  newMockCourseRepo(persons),
		contacts: newMockContactRepo(),
		holidays: newMockHolidayRepo(),
	}

	repo := &repository.Repository{
		Person:  mocks.persons,
		Role:    mocks.roles,
		Class:   mocks.classes,
		Course:  mocks.courses,
		Contact: mocks.contacts,
		Holiday: mocks.holidays,
	}

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-key-for-unit-testing-2026",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
	}

	svc := NewService(cfg, repo, jwt.NewManager(&cfg.Auth), nil, zap.NewNop())
	return svc, mocks
}

// seedStudent 预置一名学生（角色已预加载）
func seedStudent(mocks *testMocks, id, name, email string) *model.Person {
	role := mocks.roles.roles[model.RoleStudent]
	p := &model.Person{
		PersonID: id,
		Name:     name,
		Email:    email,
		RoleID:   role.RoleID,
		Role:     role,
	}
	mocks.persons.persons[id] = p
	return p
}

// seedAdmin 预置一名管理员（角色已预加载）
func seedAdmin(mocks *testMocks, id, name, email string) *model.Person {
	role := mocks.roles.roles[model.RoleAdmin]
	p := &model.Person{
		PersonID: id,
		Name:     name,
		Email:    email,
		RoleID:   role.RoleID,
		Role:     role,
	}
	mocks.persons.persons[id] = p
	return p
}
