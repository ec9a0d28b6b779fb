package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"school-portal/backend/internal/dto"
	"school-portal/backend/internal/model"
	"school-portal/backend/internal/repository"
)

// ── 班级模块业务错误 ──

var (
	ErrClassNotFound    = errors.New("班级不存在")
	ErrClassNameExists  = errors.New("班级名称已存在")
	ErrAlreadyInClass   = errors.New("该学生已在此班级")
	ErrPersonNotInClass = errors.New("该学生不在此班级")
	ErrNotStudent       = errors.New("只能把学生分配进班级")
)

// ClassService 班级业务接口
type ClassService interface {
	Create(ctx context.Context, req *dto.CreateClassRequest, callerID string) (*dto.ClassDetailResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ClassDetailResponse, error)
	List(ctx context.Context) ([]dto.ClassDetailResponse, error)
	// Delete 删除班级，先解除所有在班学生的班级引用
	Delete(ctx context.Context, id string, callerID string) error
	// AddStudent 按邮箱把学生分配进班级
	AddStudent(ctx context.Context, classID string, req *dto.AddStudentToClassRequest, callerID string) (*dto.PersonResponse, error)
	// RemoveStudent 把学生移出班级（class_id 置空）
	RemoveStudent(ctx context.Context, classID, personID string, callerID string) error
}

type classService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewClassService 创建 ClassService 实例
func NewClassService(repo *repository.Repository, logger *zap.Logger) ClassService {
	return &classService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *classService) Create(ctx context.Context, req *dto.CreateClassRequest, callerID string) (*dto.ClassDetailResponse, error) {
	existing, err := s.repo.Class.GetByName(ctx, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询班级失败", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrClassNameExists
	}

	class := &model.Classes{Name: req.Name}
	class.CreatedBy = &callerID
	class.UpdatedBy = &callerID

	if err := s.repo.Class.Create(ctx, class); err != nil {
		s.logger.Error("创建班级失败", zap.Error(err))
		return nil, err
	}

	return s.toClassDetail(ctx, class, false)
}

// ────────────────────── GetByID ──────────────────────

func (s *classService) GetByID(ctx context.Context, id string) (*dto.ClassDetailResponse, error) {
	class, err := s.repo.Class.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		s.logger.Error("查询班级失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toClassDetail(ctx, class, true)
}

// ────────────────────── List ──────────────────────

func (s *classService) List(ctx context.Context) ([]dto.ClassDetailResponse, error) {
	classes, err := s.repo.Class.List(ctx)
	if err != nil {
		s.logger.Error("列出班级失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ClassDetailResponse, 0, len(classes))
	for i := range classes {
		detail, err := s.toClassDetail(ctx, &classes[i], false)
		if err != nil {
			return nil, err
		}
		result = append(result, *detail)
	}
	return result, nil
}

// ────────────────────── Delete ──────────────────────

func (s *classService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Class.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClassNotFound
		}
		return err
	}

	// 事务内先解除所有学生的班级引用，再删除班级
	if err := s.repo.Class.DeleteWithDetach(ctx, id, callerID); err != nil {
		s.logger.Error("删除班级失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── AddStudent ──────────────────────

func (s *classService) AddStudent(ctx context.Context, classID string, req *dto.AddStudentToClassRequest, callerID string) (*dto.PersonResponse, error) {
	class, err := s.repo.Class.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	person, err := s.repo.Person.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonNotFound
		}
		return nil, err
	}

	if person.Role == nil || person.Role.RoleName != model.RoleStudent {
		return nil, ErrNotStudent
	}
	if person.ClassID != nil && *person.ClassID == class.ClassID {
		return nil, ErrAlreadyInClass
	}

	person.ClassID = &class.ClassID
	person.UpdatedBy = &callerID
	person.UpdatedAt = time.Now()

	if err := s.repo.Person.Update(ctx, person); err != nil {
		s.logger.Error("分配班级失败", zap.String("class_id", classID), zap.Error(err))
		return nil, err
	}

	return &dto.PersonResponse{
		ID:     person.PersonID,
		Name:   person.Name,
		Email:  person.Email,
		Mobile: person.Mobile,
		Role:   roleName(person),
		Class:  &dto.ClassResponse{ID: class.ClassID, Name: class.Name},
	}, nil
}

// ────────────────────── RemoveStudent ──────────────────────

func (s *classService) RemoveStudent(ctx context.Context, classID, personID string, callerID string) error {
	person, err := s.repo.Person.GetByID(ctx, personID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPersonNotFound
		}
		return err
	}

	if person.ClassID == nil || *person.ClassID != classID {
		return ErrPersonNotInClass
	}

	if err := s.repo.Person.ClearClass(ctx, personID, callerID); err != nil {
		s.logger.Error("移出班级失败", zap.String("person_id", personID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 辅助 ──────────────────────

func (s *classService) toClassDetail(ctx context.Context, class *model.Classes, withStudents bool) (*dto.ClassDetailResponse, error) {
	count, err := s.repo.Class.CountStudents(ctx, class.ClassID)
	if err != nil {
		s.logger.Warn("统计班级人数失败，回退为0", zap.Error(err))
		count = 0
	}

	detail := &dto.ClassDetailResponse{
		ID:           class.ClassID,
		Name:         class.Name,
		StudentCount: count,
		CreatedAt:    class.CreatedAt.Format(time.RFC3339),
	}

	if withStudents {
		persons, err := s.repo.Person.ListByClass(ctx, class.ClassID)
		if err != nil {
			return nil, err
		}
		students := make([]dto.PersonResponse, 0, len(persons))
		for i := range persons {
			students = append(students, dto.PersonResponse{
				ID:     persons[i].PersonID,
				Name:   persons[i].Name,
				Email:  persons[i].Email,
				Mobile: persons[i].Mobile,
				Role:   roleName(&persons[i]),
			})
		}
		detail.Students = students
	}

	return detail, nil
}
