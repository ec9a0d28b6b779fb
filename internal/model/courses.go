package model

// Courses 课程表 — 对应 courses
type Courses struct {
	CourseID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	Name     string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"name"`
	Fee      int    `gorm:"not null;default:0"                             json:"fee"`
	BaseModel

	// 关联：选课学生（多对多，两侧共用 person_courses 关联表）
	Persons []Person `gorm:"many2many:person_courses;joinForeignKey:CourseID;joinReferences:PersonID" json:"persons,omitempty"`
}

// TableName 指定表名
func (Courses) TableName() string { return "courses" }
