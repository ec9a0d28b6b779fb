package model

// Contact 留言表 — 对应 contact_messages
// Status 只允许 OPEN → CLOSE 单向流转
type Contact struct {
	ContactID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"contact_id"`
	Name      string `gorm:"type:varchar(100);not null"                     json:"name"`
	Mobile    string `gorm:"type:varchar(20)"                               json:"mobile,omitempty"`
	Email     string `gorm:"type:varchar(255);not null"                     json:"email"`
	Subject   string `gorm:"type:varchar(200);not null"                     json:"subject"`
	Message   string `gorm:"type:text;not null"                             json:"message"`
	Status    string `gorm:"type:varchar(10);not null;default:'OPEN'"       json:"status"` // OPEN | CLOSE
	BaseModel
}

// TableName 指定表名
func (Contact) TableName() string { return "contact_messages" }
