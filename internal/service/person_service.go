package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"school-portal/backend/internal/dto"
	"school-portal/backend/internal/model"
	"school-portal/backend/internal/repository"
)

// ── 人员管理模块业务错误 ──

var (
	ErrSelfRoleChange = errors.New("不能修改自己的角色")
	ErrSelfDelete     = errors.New("不能删除自己")
)

// PersonService 人员管理业务接口
type PersonService interface {
	GetByID(ctx context.Context, id string) (*dto.PersonDetailResponse, error)
	List(ctx context.Context, req *dto.PersonListRequest) ([]dto.PersonResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdatePersonRequest, callerID string) (*dto.PersonResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
	AssignRole(ctx context.Context, id string, req *dto.AssignRoleRequest, callerID string) error
	// ParseImportFile 解析学生导入 Excel 文件
	ParseImportFile(reader io.Reader) ([]ImportStudentRow, error)
	// ImportStudents 批量创建学生账号，逐行校验并汇报失败原因
	ImportStudents(ctx context.Context, rows []ImportStudentRow, callerID string) (*dto.ImportStudentsResponse, error)
}

// ImportStudentRow Excel 导入解析后的单行数据
type ImportStudentRow struct {
	Row    int
	Name   string
	Email  string
	Mobile string
}

type personService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPersonService 创建 PersonService 实例
func NewPersonService(repo *repository.Repository, logger *zap.Logger) PersonService {
	return &personService{repo: repo, logger: logger}
}

// ────────────────────── GetByID ──────────────────────

func (s *personService) GetByID(ctx context.Context, id string) (*dto.PersonDetailResponse, error) {
	person, err := s.repo.Person.GetWithCourses(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonNotFound
		}
		s.logger.Error("查询人员失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	courses := make([]dto.CourseResponse, 0, len(person.Courses))
	for i := range person.Courses {
		courses = append(courses, dto.CourseResponse{
			ID:   person.Courses[i].CourseID,
			Name: person.Courses[i].Name,
			Fee:  person.Courses[i].Fee,
		})
	}

	return &dto.PersonDetailResponse{
		ID:        person.PersonID,
		Name:      person.Name,
		Email:     person.Email,
		Mobile:    person.Mobile,
		Role:      roleName(person),
		Class:     classResponse(person),
		Courses:   courses,
		CreatedAt: person.CreatedAt.Format(time.RFC3339),
	}, nil
}

// ────────────────────── List ──────────────────────

func (s *personService) List(ctx context.Context, req *dto.PersonListRequest) ([]dto.PersonResponse, int64, error) {
	persons, total, err := s.repo.Person.List(ctx, req.Role, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出人员失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.PersonResponse, 0, len(persons))
	for i := range persons {
		result = append(result, dto.PersonResponse{
			ID:     persons[i].PersonID,
			Name:   persons[i].Name,
			Email:  persons[i].Email,
			Mobile: persons[i].Mobile,
			Role:   roleName(&persons[i]),
			Class:  classResponse(&persons[i]),
		})
	}
	return result, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *personService) Update(ctx context.Context, id string, req *dto.UpdatePersonRequest, callerID string) (*dto.PersonResponse, error) {
	person, err := s.repo.Person.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		person.Name = *req.Name
	}
	if req.Mobile != nil {
		person.Mobile = *req.Mobile
	}
	person.UpdatedBy = &callerID

	if err := s.repo.Person.Update(ctx, person); err != nil {
		s.logger.Error("更新人员失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return &dto.PersonResponse{
		ID:     person.PersonID,
		Name:   person.Name,
		Email:  person.Email,
		Mobile: person.Mobile,
		Role:   roleName(person),
		Class:  classResponse(person),
	}, nil
}

// ────────────────────── Delete ──────────────────────

func (s *personService) Delete(ctx context.Context, id string, callerID string) error {
	if id == callerID {
		return ErrSelfDelete
	}

	if _, err := s.repo.Person.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPersonNotFound
		}
		return err
	}

	if err := s.repo.Person.Delete(ctx, id); err != nil {
		s.logger.Error("删除人员失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── AssignRole ──────────────────────

func (s *personService) AssignRole(ctx context.Context, id string, req *dto.AssignRoleRequest, callerID string) error {
	if id == callerID {
		return ErrSelfRoleChange
	}

	person, err := s.repo.Person.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPersonNotFound
		}
		return err
	}

	role, err := s.repo.Role.GetByName(ctx, req.Role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoleNotFound
		}
		return err
	}

	person.RoleID = role.RoleID
	person.Role = role
	person.UpdatedBy = &callerID

	if err := s.repo.Person.Update(ctx, person); err != nil {
		s.logger.Error("分配角色失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── ParseImportFile ──────────────────────

const maxImportRows = 1000

var (
	ErrImportNoData      = errors.New("Excel文件无数据行（第一行为表头）")
	ErrImportTooManyRows = fmt.Errorf("数据行数超过上限 %d 行", maxImportRows)
	ErrImportBadHeader   = errors.New("Excel表头缺少必要列（姓名/邮箱）")
)

// ParseImportFile 解析导入 Excel 文件，返回解析后的行数据
func (s *personService) ParseImportFile(reader io.Reader) ([]ImportStudentRow, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("无法解析Excel文件: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	excelRows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("读取工作表失败: %w", err)
	}

	if len(excelRows) < 2 {
		return nil, ErrImportNoData
	}

	// 解析表头（支持灵活列序）
	colIndex := parseHeaderIndex(excelRows[0])
	if colIndex["name"] < 0 || colIndex["email"] < 0 {
		return nil, ErrImportBadHeader
	}

	var rows []ImportStudentRow
	for i := 1; i < len(excelRows); i++ {
		row := excelRows[i]
		item := ImportStudentRow{Row: i + 1}

		if idx := colIndex["name"]; idx < len(row) {
			item.Name = strings.TrimSpace(row[idx])
		}
		if idx := colIndex["email"]; idx < len(row) {
			item.Email = strings.TrimSpace(row[idx])
		}
		if idx := colIndex["mobile"]; idx >= 0 && idx < len(row) {
			item.Mobile = strings.TrimSpace(row[idx])
		}

		// 跳过全空行
		if item.Name == "" && item.Email == "" && item.Mobile == "" {
			continue
		}

		rows = append(rows, item)
	}

	if len(rows) == 0 {
		return nil, ErrImportNoData
	}
	if len(rows) > maxImportRows {
		return nil, ErrImportTooManyRows
	}

	return rows, nil
}

// parseHeaderIndex 解析表头列位置，未找到的列为 -1
func parseHeaderIndex(header []string) map[string]int {
	colIndex := map[string]int{"name": -1, "email": -1, "mobile": -1}
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case "姓名", "name", "Name":
			colIndex["name"] = i
		case "邮箱", "email", "Email":
			colIndex["email"] = i
		case "手机号", "mobile", "Mobile":
			colIndex["mobile"] = i
		}
	}
	return colIndex
}

// ────────────────────── ImportStudents ──────────────────────

func (s *personService) ImportStudents(ctx context.Context, rows []ImportStudentRow, callerID string) (*dto.ImportStudentsResponse, error) {
	role, err := s.repo.Role.GetByName(ctx, model.RoleStudent)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}

	resp := &dto.ImportStudentsResponse{Total: len(rows)}

	for _, row := range rows {
		if row.Name == "" || row.Email == "" {
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.ImportRowError{Row: row.Row, Reason: "姓名或邮箱为空"})
			continue
		}

		if _, err := s.repo.Person.GetByEmail(ctx, row.Email); err == nil {
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.ImportRowError{Row: row.Row, Reason: "邮箱已存在"})
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		// 初始密码 = "Sp" + 手机号后6位；无手机号时用邮箱前缀兜底
		seed := row.Mobile
		if seed == "" {
			seed = strings.SplitN(row.Email, "@", 2)[0]
		}
		if len(seed) > 6 {
			seed = seed[len(seed)-6:]
		}
		hash, err := bcrypt.GenerateFromPassword([]byte("Sp"+seed), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error("密码哈希失败", zap.Error(err))
			return nil, err
		}

		person := &model.Person{
			Name:         row.Name,
			Email:        row.Email,
			Mobile:       row.Mobile,
			PasswordHash: string(hash),
			RoleID:       role.RoleID,
			BaseModel:    model.BaseModel{CreatedBy: &callerID},
		}

		if err := s.repo.Person.Create(ctx, person); err != nil {
			s.logger.Error("导入学生失败", zap.Int("row", row.Row), zap.Error(err))
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.ImportRowError{Row: row.Row, Reason: "写入失败"})
			continue
		}

		resp.Success++
	}

	return resp, nil
}
