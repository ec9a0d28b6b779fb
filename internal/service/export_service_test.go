package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"school-portal/backend/internal/dto"
)

func TestExportService_ExportCourseRoster(t *testing.T) {
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

	buf, filename, err := svc.Export.ExportCourseRoster(ctx, course.ID)
	if err != nil {
		t.Fatalf("ExportCourseRoster 失败: %v", err)
	}
	if !strings.HasPrefix(filename, "roster_数学_") || !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("文件名不符合预期: %s", filename)
	}

	// 回读校验内容
	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("回读 Excel 失败: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("名单")
	if err != nil {
		t.Fatalf("读取工作表失败: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("行数 = %d, 期望 2（表头+1名学生）", len(rows))
	}
	if rows[0][1] != "姓名" || rows[1][1] != "张三" || rows[1][2] != "zhangsan@example.com" {
		t.Errorf("名单内容不符合预期: %+v", rows)
	}
}

func TestExportService_ExportCourseRoster_NoStudents(t *testing.T) {
	svc, _ := newTestEnv()
	ctx := context.Background()

	course, err := svc.Course.Create(ctx, &dto.CreateCourseRequest{Name: "数学"}, "admin-1")
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	if _, _, err := svc.Export.ExportCourseRoster(ctx, course.ID); !errors.Is(err, ErrExportNoStudents) {
		t.Errorf("无学生期望 ErrExportNoStudents, 实际 = %v", err)
	}
}

func TestExportService_ExportCourseRoster_CourseNotFound(t *testing.T) {
	svc, _ := newTestEnv()

	if _, _, err := svc.Export.ExportCourseRoster(context.Background(), "no-such-course"); !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("期望 ErrCourseNotFound, 实际 = %v", err)
	}
}
