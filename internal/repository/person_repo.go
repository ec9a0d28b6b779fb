package repository

import (
	"context"

	"gorm.io/gorm"

	"school-portal/backend/internal/model"
)

// PersonRepository 人员数据访问接口
type PersonRepository interface {
	Create(ctx context.Context, person *model.Person) error
	GetByID(ctx context.Context, id string) (*model.Person, error)
	GetByEmail(ctx context.Context, email string) (*model.Person, error)
	// GetWithCourses 加载人员及其全部选课
	GetWithCourses(ctx context.Context, id string) (*model.Person, error)
	Update(ctx context.Context, person *model.Person) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, roleName string, offset, limit int) ([]model.Person, int64, error)
	ListByClass(ctx context.Context, classID string) ([]model.Person, error)
	// ClearClass 把人员移出班级（class_id 置空）
	ClearClass(ctx context.Context, personID string, updatedBy string) error
	// DetachAllFromClass 班级删除前批量解除所有成员的班级引用
	DetachAllFromClass(ctx context.Context, classID string, updatedBy string) error
}

// personRepo PersonRepository 的 GORM 实现
type personRepo struct {
	db *gorm.DB
}

// NewPersonRepo 创建 PersonRepository 实例
func NewPersonRepo(db *gorm.DB) PersonRepository {
	return &personRepo{db: db}
}

func (r *personRepo) Create(ctx context.Context, person *model.Person) error {
	return r.db.WithContext(ctx).Create(person).Error
}

func (r *personRepo) GetByID(ctx context.Context, id string) (*model.Person, error) {
	var person model.Person
	err := r.db.WithContext(ctx).
		Preload("Role").
		Preload("Class").
		Where("person_id = ?", id).
		First(&person).Error
	if err != nil {
		return nil, err
	}
	return &person, nil
}

func (r *personRepo) GetByEmail(ctx context.Context, email string) (*model.Person, error) {
	var person model.Person
	err := r.db.WithContext(ctx).
		Preload("Role").
		Preload("Class").
		Where("email = ?", email).
		First(&person).Error
	if err != nil {
		return nil, err
	}
	return &person, nil
}

func (r *personRepo) GetWithCourses(ctx context.Context, id string) (*model.Person, error) {
	var person model.Person
	err := r.db.WithContext(ctx).
		Preload("Role").
		Preload("Class").
		Preload("Courses").
		Where("person_id = ?", id).
		First(&person).Error
	if err != nil {
		return nil, err
	}
	return &person, nil
}

func (r *personRepo) Update(ctx context.Context, person *model.Person) error {
	return r.db.WithContext(ctx).Save(person).Error
}

func (r *personRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("person_id = ?", id).
		Delete(&model.Person{}).Error
}

func (r *personRepo) List(ctx context.Context, roleName string, offset, limit int) ([]model.Person, int64, error) {
	var persons []model.Person
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Person{})
	if roleName != "" {
		db = db.Joins("JOIN roles ON roles.role_id = persons.role_id").
			Where("roles.role_name = ?", roleName)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Role").Preload("Class").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&persons).Error; err != nil {
		return nil, 0, err
	}

	return persons, total, nil
}

func (r *personRepo) ListByClass(ctx context.Context, classID string) ([]model.Person, error) {
	var persons []model.Person
	err := r.db.WithContext(ctx).
		Preload("Role").
		Where("class_id = ?", classID).
		Order("name ASC").
		Find(&persons).Error
	return persons, err
}

func (r *personRepo) ClearClass(ctx context.Context, personID string, updatedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Person{}).
		Where("person_id = ?", personID).
		Updates(map[string]interface{}{
			"class_id":   nil,
			"updated_by": updatedBy,
			"updated_at": gorm.Expr("NOW()"),
		}).Error
}

func (r *personRepo) DetachAllFromClass(ctx context.Context, classID string, updatedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Person{}).
		Where("class_id = ?", classID).
		Updates(map[string]interface{}{
			"class_id":   nil,
			"updated_by": updatedBy,
			"updated_at": gorm.Expr("NOW()"),
		}).Error
}
