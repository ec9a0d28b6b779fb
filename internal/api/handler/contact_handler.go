package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"school-portal/backend/internal/dto"
	"school-portal/backend/internal/service"
	"school-portal/backend/pkg/response"
)

// ContactHandler 留言模块 HTTP 处理器
type ContactHandler struct {
	contactSvc service.ContactService
}

// NewContactHandler 创建 ContactHandler
func NewContactHandler(contactSvc service.ContactService) *ContactHandler {
	return &ContactHandler{contactSvc: contactSvc}
}

// SaveMessage 公开留言提交
// POST /api/v1/contact
func (h *ContactHandler) SaveMessage(c *gin.Context) {
	var req dto.SaveContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.contactSvc.Save(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// ListMessages 按状态分页查询留言
// GET /api/v1/admin/contact?status=OPEN&page=1&page_size=20
func (h *ContactHandler) ListMessages(c *gin.Context) {
	var req dto.ContactListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.contactSvc.ListByStatus(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// CloseMessage 关闭留言
// PATCH /api/v1/admin/contact/:id/close
func (h *ContactHandler) CloseMessage(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.contactSvc.Close(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, service.ErrContactNotFound) {
			response.NotFound(c, 13001, "留言不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// DeleteMessage 删除留言
// DELETE /api/v1/admin/contact/:id
func (h *ContactHandler) DeleteMessage(c *gin.Context) {
	if err := h.contactSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrContactNotFound) {
			response.NotFound(c, 13001, "留言不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}
