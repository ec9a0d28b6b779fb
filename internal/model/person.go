package model

// Person 人员表 — 对应 persons
// ClassID 可为空：一个人最多属于一个班级
type Person struct {
	PersonID     string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"person_id"`
	Name         string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string  `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	Mobile       string  `gorm:"type:varchar(20)"                               json:"mobile,omitempty"`
	PasswordHash string  `gorm:"type:varchar(255);not null"                     json:"-"`
	RoleID       string  `gorm:"type:uuid;not null"                             json:"role_id"`
	ClassID      *string `gorm:"type:uuid"                                      json:"class_id,omitempty"`
	BaseModel

	// 关联
	Role    *Roles    `gorm:"foreignKey:RoleID;references:RoleID"   json:"role,omitempty"`
	Class   *Classes  `gorm:"foreignKey:ClassID;references:ClassID" json:"class,omitempty"`
	Courses []Courses `gorm:"many2many:person_courses;joinForeignKey:PersonID;joinReferences:CourseID" json:"courses,omitempty"`
}

// TableName 指定表名
func (Person) TableName() string { return "persons" }
