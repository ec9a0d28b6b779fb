package dto

// ── 班级模块 DTO ──

// CreateClassRequest 创建班级请求
type CreateClassRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// AddStudentToClassRequest 按邮箱把学生分配进班级
type AddStudentToClassRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ClassResponse 班级简要信息
type ClassResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ClassDetailResponse 班级详细信息（含学生列表）
type ClassDetailResponse struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	StudentCount int64            `json:"student_count"`
	Students     []PersonResponse `json:"students,omitempty"`
	CreatedAt    string           `json:"created_at"`
}
