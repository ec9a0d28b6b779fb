package model

import "time"

// 状态常量
const (
	// Contact 留言状态
	StatusOpen  = "OPEN"
	StatusClose = "CLOSE"

	// 角色名
	RoleAdmin   = "ADMIN"
	RoleStudent = "STUDENT"
	RoleUser    = "USER"

	// 假日类型
	HolidayFestival = "FESTIVAL"
	HolidayFederal  = "FEDERAL"
)

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	CreatedBy *string   `gorm:"type:uuid"                          json:"created_by,omitempty"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	UpdatedBy *string   `gorm:"type:uuid"                          json:"updated_by,omitempty"`
}
