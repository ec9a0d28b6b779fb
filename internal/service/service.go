package service

import (
	"go.uber.org/zap"

	"school-portal/backend/config"
	"school-portal/backend/internal/repository"
	"school-portal/backend/pkg/jwt"
	"school-portal/backend/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth    AuthService
	Person  PersonService
	Contact ContactService
	Class   ClassService
	Course  CourseService
	Holiday HolidayService
	Export  ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:    NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Person:  NewPersonService(repo, logger),
		Contact: NewContactService(repo, logger),
		Class:   NewClassService(repo, logger),
		Course:  NewCourseService(repo, logger),
		Holiday: NewHolidayService(repo, logger),
		Export:  NewExportService(repo, logger),
	}
}
