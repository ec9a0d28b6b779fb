package model

// Classes 班级表 — 对应 classes
type Classes struct {
	ClassID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"class_id"`
	Name    string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"name"`
	BaseModel

	// 关联：班级下的学生（一对多）
	Persons []Person `gorm:"foreignKey:ClassID;references:ClassID" json:"persons,omitempty"`
}

// TableName 指定表名
func (Classes) TableName() string { return "classes" }
