package service

import (
	"context"
	"errors"
	"testing"

	"school-portal/backend/internal/dto"
	"school-portal/backend/internal/model"
)

func TestClassService_Create_DuplicateName(t *testing.T) {
	svc, _ := newTestEnv()
	ctx := context.Background()

	if _, err := svc.Class.Create(ctx, &dto.CreateClassRequest{Name: "六年级一班"}, "admin-1"); err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	if _, err := svc.Class.Create(ctx, &dto.CreateClassRequest{Name: "六年级一班"}, "admin-1"); !errors.Is(err, ErrClassNameExists) {
		t.Errorf("重名班级期望 ErrClassNameExists, 实际 = %v", err)
	}
}

func TestClassService_AddStudent(t *testing.T) {
	svc, mocks := newTestEnv()
	ctx := context.Background()

	class, err := svc.Class.Create(ctx, &dto.CreateClassRequest{Name: "六年级一班"}, "admin-1")
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	student := seedStudent(mocks, "p1", "张三", "zhangsan@example.com")

	resp, err := svc.Class.AddStudent(ctx, class.ID, &dto.AddStudentToClassRequest{Email: "zhangsan@example.com"}, "admin-1")
	if err != nil {
		t.Fatalf("AddStudent 失败: %v", err)
	}
	if resp.Class == nil || resp.Class.ID != class.ID {
		t.Error("响应应携带新班级信息")
	}
	if student.ClassID == nil || *student.ClassID != class.ID {
		t.Error("学生的 class_id 未更新")
	}

	// 重复分配同一班级
	if _, err := svc.Class.AddStudent(ctx, class.ID, &dto.AddStudentToClassRequest{Email: "zhangsan@example.com"}, "admin-1"); !errors.Is(err, ErrAlreadyInClass) {
		t.Errorf("重复分配期望 ErrAlreadyInClass, 实际 = %v", err)
	}
}

func TestClassService_AddStudent_RejectsNonStudent(t *testing.T) {
	svc, mocks := newTestEnv()
	ctx := context.Background()

	class, err := svc.Class.Create(ctx, &dto.CreateClassRequest{Name: "六年级一班"}, "admin-1")
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	seedAdmin(mocks, "a1", "管理员", "admin@example.com")

	if _, err := svc.Class.AddStudent(ctx, class.ID, &dto.AddStudentToClassRequest{Email: "admin@example.com"}, "admin-1"); !errors.Is(err, ErrNotStudent) {
		t.Errorf("分配非学生期望 ErrNotStudent, 实际 = %v", err)
	}
}

func TestClassService_Delete_DetachesStudents(t *testing.T) {
	svc, mocks := newTestEnv()
	ctx := context.Background()

	class, err := svc.Class.Create(ctx, &dto.CreateClassRequest{Name: "六年级一班"}, "admin-1")
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	s1 := seedStudent(mocks, "p1", "张三", "zhangsan@example.com")
	s2 := seedStudent(mocks, "p2", "李四", "lisi@example.com")
	s1.ClassID = &class.ID
	s2.ClassID = &class.ID

	if err := svc.Class.Delete(ctx, class.ID, "admin-1"); err != nil {
		t.Fatalf("Delete 失败: %v", err)
	}

	if _, ok := mocks.classes.classes[class.ID]; ok {
		t.Error("班级删除后仍存在")
	}
	// 删除班级不删除学生，只解除引用
	if s1.ClassID != nil || s2.ClassID != nil {
		t.Error("班级删除后学生的 class_id 应被置空")
	}
	if _, ok := mocks.persons.persons["p1"]; !ok {
		t.Error("删除班级不应删除学生")
	}
}

func TestClassService_RemoveStudent(t *testing.T) {
	svc, mocks := newTestEnv()
	ctx := context.Background()

	class, err := svc.Class.Create(ctx, &dto.CreateClassRequest{Name: "六年级一班"}, "admin-1")
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	student := seedStudent(mocks, "p1", "张三", "zhangsan@example.com")
	student.ClassID = &class.ID

	if err := svc.Class.RemoveStudent(ctx, class.ID, "p1", "admin-1"); err != nil {
		t.Fatalf("RemoveStudent 失败: %v", err)
	}
	if student.ClassID != nil {
		t.Error("移出班级后 class_id 应被置空")
	}

	// 不在该班级的学生
	if err := svc.Class.RemoveStudent(ctx, class.ID, "p1", "admin-1"); !errors.Is(err, ErrPersonNotInClass) {
		t.Errorf("期望 ErrPersonNotInClass, 实际 = %v", err)
	}
}

func TestClassService_GetByID_NotFound(t *testing.T) {
	svc, _ := newTestEnv()

	if _, err := svc.Class.GetByID(context.Background(), "no-such-class"); !errors.Is(err, ErrClassNotFound) {
		t.Errorf("期望 ErrClassNotFound, 实际 = %v", err)
	}
}

func TestClassService_GetByID_CountsStudents(t *testing.T) {
	svc, mocks := newTestEnv()
	ctx := context.Background()

	class, err := svc.Class.Create(ctx, &dto.CreateClassRequest{Name: "六年级一班"}, "admin-1")
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	s1 := seedStudent(mocks, "p1", "张三", "zhangsan@example.com")
	s1.ClassID = &class.ID

	detail, err := svc.Class.GetByID(ctx, class.ID)
	if err != nil {
		t.Fatalf("GetByID 失败: %v", err)
	}
	if detail.StudentCount != 1 {
		t.Errorf("班级人数 = %d, 期望 1", detail.StudentCount)
	}
	if len(detail.Students) != 1 || detail.Students[0].Role != model.RoleStudent {
		t.Errorf("学生列表不符合预期: %+v", detail.Students)
	}
}
