package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"school-portal/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoStudents   = errors.New("该课程暂无选课学生")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportCourseRoster 导出课程选课名单为 Excel
	ExportCourseRoster(ctx context.Context, courseID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ExportCourseRoster 导出格式：
//   - Sheet "名单"
//   - 表头：序号 / 姓名 / 邮箱 / 手机号
//   - 文件名：roster_<课程名>_<日期>.xlsx
func (s *exportService) ExportCourseRoster(ctx context.Context, courseID string) (*bytes.Buffer, string, error) {
	course, err := s.repo.Course.GetWithPersons(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrCourseNotFound
		}
		s.logger.Error("查询课程名单失败", zap.Error(err))
		return nil, "", err
	}
	if len(course.Persons) == 0 {
		return nil, "", ErrExportNoStudents
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "名单"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headers := []string{"序号", "姓名", "邮箱", "手机号"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, "", ErrExportGenerateFail
		}
	}

	for i := range course.Persons {
		p := &course.Persons[i]
		rowNum := i + 2
		values := []interface{}{i + 1, p.Name, p.Email, p.Mobile}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, "", ErrExportGenerateFail
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写出 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("roster_%s_%s.xlsx", course.Name, time.Now().Format("20060102"))
	return buf, filename, nil
}
