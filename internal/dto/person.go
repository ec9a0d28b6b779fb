package dto

// ── 人员管理模块 DTO ──

// PersonListRequest 人员列表查询
type PersonListRequest struct {
	PaginationRequest
	Role string `form:"role" binding:"omitempty,oneof=ADMIN STUDENT USER"`
}

// UpdatePersonRequest 更新人员信息（指针字段表示可选）
type UpdatePersonRequest struct {
	Name   *string `json:"name"   binding:"omitempty,min=2,max=50"`
	Mobile *string `json:"mobile" binding:"omitempty,min=6,max=20"`
}

// AssignRoleRequest 分配角色请求
type AssignRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=ADMIN STUDENT USER"`
}

// ImportStudentsResponse 批量导入结果
type ImportStudentsResponse struct {
	Total   int              `json:"total"`
	Success int              `json:"success"`
	Failed  int              `json:"failed"`
	Errors  []ImportRowError `json:"errors,omitempty"`
}

// ImportRowError 单行导入失败详情
type ImportRowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}
