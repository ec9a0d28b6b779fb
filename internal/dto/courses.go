package dto

// ── 课程模块 DTO ──

// CreateCourseRequest 创建课程请求
type CreateCourseRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
	Fee  int    `json:"fee"  binding:"omitempty,min=0"`
}

// CourseResponse 课程信息
type CourseResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Fee  int    `json:"fee"`
}

// CourseDetailResponse 课程详细信息（含选课人数）
type CourseDetailResponse struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Fee          int              `json:"fee"`
	StudentCount int64            `json:"student_count"`
	Students     []PersonResponse `json:"students,omitempty"`
	CreatedAt    string           `json:"created_at"`
}
