package dto

// ── 留言模块 DTO ──

// SaveContactRequest 公开留言提交请求
type SaveContactRequest struct {
	Name    string `json:"name"    binding:"required,min=2,max=100"`
	Mobile  string `json:"mobile"  binding:"omitempty,min=6,max=20"`
	Email   string `json:"email"   binding:"required,email"`
	Subject string `json:"subject" binding:"required,max=200"`
	Message string `json:"message" binding:"required,max=2000"`
}

// ContactListRequest 按状态查询留言
type ContactListRequest struct {
	PaginationRequest
	Status string `form:"status" binding:"omitempty,oneof=OPEN CLOSE"`
}

// ContactResponse 留言响应
type ContactResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Mobile    string `json:"mobile,omitempty"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	UpdatedBy string `json:"updated_by,omitempty"` // 关闭人
}
