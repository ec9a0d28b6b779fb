package dto

// ── 假日模块 DTO ──

// CreateHolidayRequest 创建假日请求
type CreateHolidayRequest struct {
	Day    string `json:"day"    binding:"required,datetime=2006-01-02"`
	Reason string `json:"reason" binding:"required,max=200"`
	Type   string `json:"type"   binding:"required,oneof=FESTIVAL FEDERAL"`
}

// HolidayResponse 假日信息
type HolidayResponse struct {
	ID     string `json:"id"`
	Day    string `json:"day"`
	Reason string `json:"reason"`
	Type   string `json:"type"`
}

// HolidayGroupResponse 按类型分组的假日列表
type HolidayGroupResponse struct {
	Festival []HolidayResponse `json:"festival"`
	Federal  []HolidayResponse `json:"federal"`
}
