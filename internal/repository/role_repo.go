package repository

import (
	"context"

	"gorm.io/gorm"

	"school-portal/backend/internal/model"
)

// RoleRepository 角色数据访问接口
type RoleRepository interface {
	GetByName(ctx context.Context, roleName string) (*model.Roles, error)
	List(ctx context.Context) ([]model.Roles, error)
}

// roleRepo RoleRepository 的 GORM 实现
type roleRepo struct {
	db *gorm.DB
}

// NewRoleRepo 创建 RoleRepository 实例
func NewRoleRepo(db *gorm.DB) RoleRepository {
	return &roleRepo{db: db}
}

func (r *roleRepo) GetByName(ctx context.Context, roleName string) (*model.Roles, error) {
	var role model.Roles
	err := r.db.WithContext(ctx).
		Where("role_name = ?", roleName).
		First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepo) List(ctx context.Context) ([]model.Roles, error) {
	var roles []model.Roles
	err := r.db.WithContext(ctx).
		Order("role_name ASC").
		Find(&roles).Error
	return roles, err
}
