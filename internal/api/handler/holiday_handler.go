package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"school-portal/backend/internal/dto"
	"school-portal/backend/internal/service"
	"school-portal/backend/pkg/response"
)

// HolidayHandler 假日模块 HTTP 处理器
type HolidayHandler struct {
	holidaySvc service.HolidayService
}

// NewHolidayHandler 创建 HolidayHandler
func NewHolidayHandler(holidaySvc service.HolidayService) *HolidayHandler {
	return &HolidayHandler{holidaySvc: holidaySvc}
}

// ListHolidays 按类型分组列出假日（公开）
// GET /api/v1/holidays
func (h *HolidayHandler) ListHolidays(c *gin.Context) {
	result, err := h.holidaySvc.ListGrouped(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// ExportCalendar 假日 iCalendar 订阅源（公开）
// GET /api/v1/holidays/calendar.ics
func (h *HolidayHandler) ExportCalendar(c *gin.Context) {
	content, err := h.holidaySvc.ExportICS(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="holidays.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(content))
}

// CreateHoliday 创建假日
// POST /api/v1/admin/holidays
func (h *HolidayHandler) CreateHoliday(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.holidaySvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		if errors.Is(err, service.ErrHolidayBadDay) {
			response.BadRequest(c, 16001, "日期格式无效")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// DeleteHoliday 删除假日
// DELETE /api/v1/admin/holidays/:id
func (h *HolidayHandler) DeleteHoliday(c *gin.Context) {
	if err := h.holidaySvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrHolidayNotFound) {
			response.NotFound(c, 16002, "假日不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}
