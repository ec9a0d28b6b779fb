package repository

import (
	"context"

	"gorm.io/gorm"

	"school-portal/backend/internal/model"
)

// CourseRepository 课程数据访问接口
type CourseRepository interface {
	Create(ctx context.Context, course *model.Courses) error
	GetByID(ctx context.Context, id string) (*model.Courses, error)
	GetByName(ctx context.Context, name string) (*model.Courses, error)
	// GetWithPersons 加载课程及全部选课学生
	GetWithPersons(ctx context.Context, id string) (*model.Courses, error)
	List(ctx context.Context) ([]model.Courses, error)
	// Delete 删除课程；关联表行由外键 ON DELETE CASCADE 清除
	Delete(ctx context.Context, id string) error
	// Enroll 建立人员 ↔ 课程关联（写入 person_courses）
	Enroll(ctx context.Context, person *model.Person, course *model.Courses) error
	// Unenroll 解除人员 ↔ 课程关联
	Unenroll(ctx context.Context, person *model.Person, course *model.Courses) error
	// IsEnrolled 查询人员是否已选该课程
	IsEnrolled(ctx context.Context, personID, courseID string) (bool, error)
	CountStudents(ctx context.Context, courseID string) (int64, error)
}

// courseRepo CourseRepository 的 GORM 实现
type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) Create(ctx context.Context, course *model.Courses) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepo) GetByID(ctx context.Context, id string) (*model.Courses, error) {
	var course model.Courses
	err := r.db.WithContext(ctx).
		Where("course_id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) GetByName(ctx context.Context, name string) (*model.Courses, error) {
	var course model.Courses
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) GetWithPersons(ctx context.Context, id string) (*model.Courses, error) {
	var course model.Courses
	err := r.db.WithContext(ctx).
		Preload("Persons").
		Preload("Persons.Role").
		Where("course_id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) List(ctx context.Context) ([]model.Courses, error) {
	var courses []model.Courses
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("course_id = ?", id).
		Delete(&model.Courses{}).Error
}

func (r *courseRepo) Enroll(ctx context.Context, person *model.Person, course *model.Courses) error {
	return r.db.WithContext(ctx).
		Model(person).
		Association("Courses").
		Append(course)
}

func (r *courseRepo) Unenroll(ctx context.Context, person *model.Person, course *model.Courses) error {
	return r.db.WithContext(ctx).
		Model(person).
		Association("Courses").
		Delete(course)
}

func (r *courseRepo) IsEnrolled(ctx context.Context, personID, courseID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("person_courses").
		Where("person_id = ? AND course_id = ?", personID, courseID).
		Count(&count).Error
	return count > 0, err
}

func (r *courseRepo) CountStudents(ctx context.Context, courseID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("person_courses").
		Where("course_id = ?", courseID).
		Count(&count).Error
	return count, err
}
