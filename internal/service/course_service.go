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

// ── 课程模块业务错误 ──

var (
	ErrCourseNotFound   = errors.New("课程不存在")
	ErrCourseNameExists = errors.New("课程名称已存在")
	ErrAlreadyEnrolled  = errors.New("已选该课程")
	ErrNotEnrolled      = errors.New("未选该课程")
)

// CourseService 课程业务接口
type CourseService interface {
	Create(ctx context.Context, req *dto.CreateCourseRequest, callerID string) (*dto.CourseDetailResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CourseDetailResponse, error)
	List(ctx context.Context) ([]dto.CourseDetailResponse, error)
	Delete(ctx context.Context, id string) error
	// Enroll 学生选课：写入关联表，对象图两侧同时更新
	Enroll(ctx context.Context, courseID, personID string) (*dto.CourseResponse, error)
	// Unenroll 学生退课：解除关联表行
	Unenroll(ctx context.Context, courseID, personID string) error
	// ListEnrolled 查询某学生的全部选课
	ListEnrolled(ctx context.Context, personID string) ([]dto.CourseResponse, error)
	// GetRoster 查询课程的选课学生名单
	GetRoster(ctx context.Context, courseID string) (*dto.CourseDetailResponse, error)
}

type courseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *courseService) Create(ctx context.Context, req *dto.CreateCourseRequest, callerID string) (*dto.CourseDetailResponse, error) {
	existing, err := s.repo.Course.GetByName(ctx, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询课程失败", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrCourseNameExists
	}

	course := &model.Courses{Name: req.Name, Fee: req.Fee}
	course.CreatedBy = &callerID
	course.UpdatedBy = &callerID

	if err := s.repo.Course.Create(ctx, course); err != nil {
		s.logger.Error("创建课程失败", zap.Error(err))
		return nil, err
	}

	return s.toCourseDetail(ctx, course, nil), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *courseService) GetByID(ctx context.Context, id string) (*dto.CourseDetailResponse, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toCourseDetail(ctx, course, nil), nil
}

// ────────────────────── List ──────────────────────

func (s *courseService) List(ctx context.Context) ([]dto.CourseDetailResponse, error) {
	courses, err := s.repo.Course.List(ctx)
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CourseDetailResponse, 0, len(courses))
	for i := range courses {
		result = append(result, *s.toCourseDetail(ctx, &courses[i], nil))
	}
	return result, nil
}

// ────────────────────── Delete ──────────────────────

func (s *courseService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Course.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		return err
	}

	// 关联表行由外键级联清除
	if err := s.repo.Course.Delete(ctx, id); err != nil {
		s.logger.Error("删除课程失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Enroll ──────────────────────

func (s *courseService) Enroll(ctx context.Context, courseID, personID string) (*dto.CourseResponse, error) {
	course, err := s.repo.Course.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	person, err := s.repo.Person.GetByID(ctx, personID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonNotFound
		}
		return nil, err
	}

	enrolled, err := s.repo.Course.IsEnrolled(ctx, personID, courseID)
	if err != nil {
		s.logger.Error("查询选课状态失败", zap.Error(err))
		return nil, err
	}
	if enrolled {
		return nil, ErrAlreadyEnrolled
	}

	if err := s.repo.Course.Enroll(ctx, person, course); err != nil {
		s.logger.Error("选课失败",
			zap.String("course_id", courseID),
			zap.String("person_id", personID),
			zap.Error(err),
		)
		return nil, err
	}

	return &dto.CourseResponse{
		ID:   course.CourseID,
		Name: course.Name,
		Fee:  course.Fee,
	}, nil
}

// ────────────────────── Unenroll ──────────────────────

func (s *courseService) Unenroll(ctx context.Context, courseID, personID string) error {
	course, err := s.repo.Course.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		return err
	}

	person, err := s.repo.Person.GetByID(ctx, personID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPersonNotFound
		}
		return err
	}

	enrolled, err := s.repo.Course.IsEnrolled(ctx, personID, courseID)
	if err != nil {
		return err
	}
	if !enrolled {
		return ErrNotEnrolled
	}

	if err := s.repo.Course.Unenroll(ctx, person, course); err != nil {
		s.logger.Error("退课失败",
			zap.String("course_id", courseID),
			zap.String("person_id", personID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// ────────────────────── ListEnrolled ──────────────────────

func (s *courseService) ListEnrolled(ctx context.Context, personID string) ([]dto.CourseResponse, error) {
	person, err := s.repo.Person.GetWithCourses(ctx, personID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonNotFound
		}
		return nil, err
	}

	result := make([]dto.CourseResponse, 0, len(person.Courses))
	for i := range person.Courses {
		result = append(result, dto.CourseResponse{
			ID:   person.Courses[i].CourseID,
			Name: person.Courses[i].Name,
			Fee:  person.Courses[i].Fee,
		})
	}
	return result, nil
}

// ────────────────────── GetRoster ──────────────────────

func (s *courseService) GetRoster(ctx context.Context, courseID string) (*dto.CourseDetailResponse, error) {
	course, err := s.repo.Course.GetWithPersons(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程名单失败", zap.String("id", courseID), zap.Error(err))
		return nil, err
	}

	students := make([]dto.PersonResponse, 0, len(course.Persons))
	for i := range course.Persons {
		students = append(students, dto.PersonResponse{
			ID:     course.Persons[i].PersonID,
			Name:   course.Persons[i].Name,
			Email:  course.Persons[i].Email,
			Mobile: course.Persons[i].Mobile,
			Role:   roleName(&course.Persons[i]),
		})
	}

	detail := s.toCourseDetail(ctx, course, students)
	return detail, nil
}

// ────────────────────── 辅助 ──────────────────────

func (s *courseService) toCourseDetail(ctx context.Context, course *model.Courses, students []dto.PersonResponse) *dto.CourseDetailResponse {
	count, err := s.repo.Course.CountStudents(ctx, course.CourseID)
	if err != nil {
		s.logger.Warn("统计选课人数失败，回退为0", zap.Error(err))
		count = 0
	}

	return &dto.CourseDetailResponse{
		ID:           course.CourseID,
		Name:         course.Name,
		Fee:          course.Fee,
		StudentCount: count,
		Students:     students,
		CreatedAt:    course.CreatedAt.Format(time.RFC3339),
	}
}
