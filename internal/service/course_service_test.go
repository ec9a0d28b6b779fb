package service

import (
	"context"
	"errors"
	"testing"

	"school-portal/backend/internal/dto"
)

func TestCourseService_Create_DuplicateName(t *testing.T) {
	svc, _ := newTestEnv()
	ctx := context.Background()

	if _, err := svc.Course.Create(ctx, &dto.CreateCourseRequest{Name: "数学", Fee: 300}, "admin-1"); err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	if _, err := svc.Course.Create(ctx, &dto.CreateCourseRequest{Name: "数学"}, "admin-1"); !errors.Is(err, ErrCourseNameExists) {
		t.Errorf("重名课程期望 ErrCourseNameExists, 实际 = %v", err)
	}
}

func TestCourseService_Enroll_UpdatesBothSides(t *testing.T) {
	svc, mocks := newTestEnv()
	ctx := context.Background()

	course, err := svc.Course.Create(ctx, &dto.CreateCourseRequest{Name: "数学", Fee: 300}, "admin-1")
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	seedStudent(mocks, "p1", "张三", "zhangsan@example.com")

	resp, err := svc.Course.Enroll(ctx, course.ID, "p1")
	if err != nil {
		t.Fatalf("Enroll 失败: %v", err)
	}
	if resp.ID != course.ID {
		t.Errorf("响应课程 = %s, 期望 %s", resp.ID, course.ID)
	}

	// 关联表两侧都能看到这条选课
	enrolled, err := mocks.courses.IsEnrolled(ctx, "p1", course.ID)
	if err != nil || !enrolled {
		t.Errorf("选课后关联表应存在记录, enrolled=%v err=%v", enrolled, err)
	}

	list, err := svc.Course.ListEnrolled(ctx, "p1")
	if err != nil {
		t.Fatalf("ListEnrolled 失败: %v", err)
	}
	if len(list) != 1 || list[0].ID != course.ID {
		t.Errorf("学生侧选课列表不符合预期: %+v", list)
	}

	roster, err := svc.Course.GetRoster(ctx, course.ID)
	if err != nil {
		t.Fatalf("GetRoster 失败: %v", err)
	}
	if roster.StudentCount != 1 || len(roster.Students) != 1 || roster.Students[0].ID != "p1" {
		t.Errorf("课程侧名单不符合预期: count=%d students=%+v", roster.StudentCount, roster.Students)
	}
}

func TestCourseService_Enroll_Duplicate(t *testing.T) {
	svc, mocks := newTestEnv()
	ctx := context.Background()

	course, err := svc.Course.Create(ctx, &dto.CreateCourseRequest{Name: "数学"}, "admin-1")
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	seedStudent(mocks, "p1", "张三", "zhangsan@example.com")

	if _, err := svc.Course.Enroll(ctx, course.ID, "p1"); err != nil {
		t.Fatalf("首次 Enroll 失败: %v", err)
	}
	if _, err := svc.Course.Enroll(ctx, course.ID, "p1"); !errors.Is(err, ErrAlreadyEnrolled) {
		t.Errorf("重复选课期望 ErrAlreadyEnrolled, 实际 = %v", err)
	}
}

func TestCourseService_Unenroll(t *testing.T) {
	svc, mocks := newTestEnv()
	ctx := context.Background()

	course, err := svc.Course.Create(ctx, &dto.CreateCourseRequest{Name: "数学"}, "admin-1")
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	seedStudent(mocks, "p1", "张三", "zhangsan@example.com")

	// 未选先退
	if err := svc.Course.Unenroll(ctx, course.ID, "p1"); !errors.Is(err, ErrNotEnrolled) {
		t.Errorf("未选课退课期望 ErrNotEnrolled, 实际 = %v", err)
	}

	if _, err := svc.Course.Enroll(ctx, course.ID, "p1"); err != nil {
		t.Fatalf("Enroll 失败: %v", err)
	}
	if err := svc.Course.Unenroll(ctx, course.ID, "p1"); err != nil {
		t.Fatalf("Unenroll 失败: %v", err)
	}

	enrolled, _ := mocks.courses.IsEnrolled(ctx, "p1", course.ID)
	if enrolled {
		t.Error("退课后关联表仍有记录")
	}
}

func TestCourseService_Enroll_UnknownCourseOrPerson(t *testing.T) {
	svc, mocks := newTestEnv()
	ctx := context.Background()

	seedStudent(mocks, "p1", "张三", "zhangsan@example.com")
	if _, err := svc.Course.Enroll(ctx, "no-such-course", "p1"); !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("期望 ErrCourseNotFound, 实际 = %v", err)
	}

	course, err := svc.Course.Create(ctx, &dto.CreateCourseRequest{Name: "数学"}, "admin-1")
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	if _, err := svc.Course.Enroll(ctx, course.ID, "no-such-person"); !errors.Is(err, ErrPersonNotFound) {
		t.Errorf("期望 ErrPersonNotFound, 实际 = %v", err)
	}
}

func TestCourseService_Delete(t *testing.T) {
	svc, mocks := newTestEnv()
	ctx := context.Background()

	course, err := svc.Course.Create(ctx, &dto.CreateCourseRequest{Name: "数学"}, "admin-1")
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	seedStudent(mocks, "p1", "张三", "zhangsan@example.com")
	if _, err := svc.Course.Enroll(ctx, course.ID, "p1"); err != nil {
		t.Fatalf("Enroll 失败: %v", err)
	}

	if err := svc.Course.Delete(ctx, course.ID); err != nil {
		t.Fatalf("Delete 失败: %v", err)
	}
	if _, ok := mocks.courses.courses[course.ID]; ok {
		t.Error("课程删除后仍存在")
	}
	// 关联表行随课程级联清除
	if enrolled, _ := mocks.courses.IsEnrolled(ctx, "p1", course.ID); enrolled {
		t.Error("课程删除后关联表行应被清除")
	}

	if err := svc.Course.Delete(ctx, course.ID); !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("删除不存在的课程期望 ErrCourseNotFound, 实际 = %v", err)
	}
}
