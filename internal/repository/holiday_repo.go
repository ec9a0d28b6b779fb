package repository

import (
	"context"

	"gorm.io/gorm"

	"school-portal/backend/internal/model"
)

// HolidayRepository 假日数据访问接口
type HolidayRepository interface {
	Create(ctx context.Context, holiday *model.Holiday) error
	GetByID(ctx context.Context, id string) (*model.Holiday, error)
	List(ctx context.Context) ([]model.Holiday, error)
	Delete(ctx context.Context, id string) error
}

// holidayRepo HolidayRepository 的 GORM 实现
type holidayRepo struct {
	db *gorm.DB
}

// NewHolidayRepo 创建 HolidayRepository 实例
func NewHolidayRepo(db *gorm.DB) HolidayRepository {
	return &holidayRepo{db: db}
}

func (r *holidayRepo) Create(ctx context.Context, holiday *model.Holiday) error {
	return r.db.WithContext(ctx).Create(holiday).Error
}

func (r *holidayRepo) GetByID(ctx context.Context, id string) (*model.Holiday, error) {
	var holiday model.Holiday
	err := r.db.WithContext(ctx).
		Where("holiday_id = ?", id).
		First(&holiday).Error
	if err != nil {
		return nil, err
	}
	return &holiday, nil
}

func (r *holidayRepo) List(ctx context.Context) ([]model.Holiday, error) {
	var holidays []model.Holiday
	err := r.db.WithContext(ctx).
		Order("day ASC").
		Find(&holidays).Error
	return holidays, err
}

func (r *holidayRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("holiday_id = ?", id).
		Delete(&model.Holiday{}).Error
}
