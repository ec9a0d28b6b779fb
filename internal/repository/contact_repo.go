package repository

import (
	"context"

	"gorm.io/gorm"

	"school-portal/backend/internal/model"
)

// ContactRepository 留言数据访问接口
type ContactRepository interface {
	Create(ctx context.Context, contact *model.Contact) error
	GetByID(ctx context.Context, id string) (*model.Contact, error)
	Update(ctx context.Context, contact *model.Contact) error
	Delete(ctx context.Context, id string) error
	ListByStatus(ctx context.Context, status string, offset, limit int) ([]model.Contact, int64, error)
}

// contactRepo ContactRepository 的 GORM 实现
type contactRepo struct {
	db *gorm.DB
}

// NewContactRepo 创建 ContactRepository 实例
func NewContactRepo(db *gorm.DB) ContactRepository {
	return &contactRepo{db: db}
}

func (r *contactRepo) Create(ctx context.Context, contact *model.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *contactRepo) GetByID(ctx context.Context, id string) (*model.Contact, error) {
	var contact model.Contact
	err := r.db.WithContext(ctx).
		Where("contact_id = ?", id).
		First(&contact).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepo) Update(ctx context.Context, contact *model.Contact) error {
	return r.db.WithContext(ctx).Save(contact).Error
}

func (r *contactRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("contact_id = ?", id).
		Delete(&model.Contact{}).Error
}

func (r *contactRepo) ListByStatus(ctx context.Context, status string, offset, limit int) ([]model.Contact, int64, error) {
	var contacts []model.Contact
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Contact{}).Where("status = ?", status)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&contacts).Error; err != nil {
		return nil, 0, err
	}

	return contacts, total, nil
}
