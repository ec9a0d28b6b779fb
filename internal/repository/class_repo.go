package repository

import (
	"context"

	"gorm.io/gorm"

	"school-portal/backend/internal/model"
)

// ClassRepository 班级数据访问接口
type ClassRepository interface {
	Create(ctx context.Context, class *model.Classes) error
	GetByID(ctx context.Context, id string) (*model.Classes, error)
	GetByName(ctx context.Context, name string) (*model.Classes, error)
	List(ctx context.Context) ([]model.Classes, error)
	Update(ctx context.Context, class *model.Classes) error
	// DeleteWithDetach 删除班级，事务内先解除所有成员的班级引用
	DeleteWithDetach(ctx context.Context, id string, deletedBy string) error
	CountStudents(ctx context.Context, classID string) (int64, error)
}

// classRepo ClassRepository 的 GORM 实现
type classRepo struct {
	db *gorm.DB
}

// NewClassRepo 创建 ClassRepository 实例
func NewClassRepo(db *gorm.DB) ClassRepository {
	return &classRepo{db: db}
}

func (r *classRepo) Create(ctx context.Context, class *model.Classes) error {
	return r.db.WithContext(ctx).Create(class).Error
}

func (r *classRepo) GetByID(ctx context.Context, id string) (*model.Classes, error) {
	var class model.Classes
	err := r.db.WithContext(ctx).
		Where("class_id = ?", id).
		First(&class).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *classRepo) GetByName(ctx context.Context, name string) (*model.Classes, error) {
	var class model.Classes
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&class).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *classRepo) List(ctx context.Context) ([]model.Classes, error) {
	var classes []model.Classes
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&classes).Error
	return classes, err
}

func (r *classRepo) Update(ctx context.Context, class *model.Classes) error {
	return r.db.WithContext(ctx).Save(class).Error
}

func (r *classRepo) DeleteWithDetach(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 先把在班学生移出班级，保证不留悬挂引用
		if err := tx.Model(&model.Person{}).
			Where("class_id = ?", id).
			Updates(map[string]interface{}{
				"class_id":   nil,
				"updated_by": deletedBy,
				"updated_at": gorm.Expr("NOW()"),
			}).Error; err != nil {
			return err
		}
		return tx.Where("class_id = ?", id).Delete(&model.Classes{}).Error
	})
}

func (r *classRepo) CountStudents(ctx context.Context, classID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Person{}).
		Where("class_id = ?", classID).
		Count(&count).Error
	return count, err
}
