package model

import "time"

// Holiday 假日表 — 对应 holidays
type Holiday struct {
	HolidayID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"holiday_id"`
	Day       time.Time `gorm:"type:date;not null"                             json:"day"`
	Reason    string    `gorm:"type:varchar(200);not null"                     json:"reason"`
	Type      string    `gorm:"type:varchar(20);not null"                      json:"type"` // FESTIVAL | FEDERAL
	BaseModel
}

// TableName 指定表名
func (Holiday) TableName() string { return "holidays" }
