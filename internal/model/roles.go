package model

// Roles 角色表 — 对应 roles
type Roles struct {
	RoleID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"role_id"`
	RoleName string `gorm:"type:varchar(20);not null;uniqueIndex"          json:"role_name"` // ADMIN | STUDENT | USER
	BaseModel
}

// TableName 指定表名
func (Roles) TableName() string { return "roles" }
