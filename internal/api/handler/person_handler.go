package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"school-portal/backend/internal/dto"
	"school-portal/backend/internal/service"
	"school-portal/backend/pkg/response"
)

// PersonHandler 人员管理模块 HTTP 处理器
type PersonHandler struct {
	personSvc service.PersonService
}

// NewPersonHandler 创建 PersonHandler
func NewPersonHandler(personSvc service.PersonService) *PersonHandler {
	return &PersonHandler{personSvc: personSvc}
}

// ListPersons 人员列表（可按角色过滤）
// GET /api/v1/admin/persons?role=STUDENT&page=1&page_size=20
func (h *PersonHandler) ListPersons(c *gin.Context) {
	var req dto.PersonListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.personSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// GetPerson 查询人员详情
// GET /api/v1/admin/persons/:id
func (h *PersonHandler) GetPerson(c *gin.Context) {
	result, err := h.personSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPersonNotFound) {
			response.NotFound(c, 12001, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// UpdatePerson 更新人员信息
// PUT /api/v1/admin/persons/:id
func (h *PersonHandler) UpdatePerson(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.personSvc.Update(c.Request.Context(), c.Param("id"), &req, userID)
	if err != nil {
		if errors.Is(err, service.ErrPersonNotFound) {
			response.NotFound(c, 12001, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// DeletePerson 删除人员
// DELETE /api/v1/admin/persons/:id
func (h *PersonHandler) DeletePerson(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.personSvc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		switch {
		case errors.Is(err, service.ErrPersonNotFound):
			response.NotFound(c, 12001, "用户不存在")
		case errors.Is(err, service.ErrSelfDelete):
			response.BadRequest(c, 12002, "不能删除自己")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}

// AssignRole 分配角色
// PUT /api/v1/admin/persons/:id/role
func (h *PersonHandler) AssignRole(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.personSvc.AssignRole(c.Request.Context(), c.Param("id"), &req, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrPersonNotFound):
			response.NotFound(c, 12001, "用户不存在")
		case errors.Is(err, service.ErrRoleNotFound):
			response.BadRequest(c, 12003, "角色不存在")
		case errors.Is(err, service.ErrSelfRoleChange):
			response.BadRequest(c, 12004, "不能修改自己的角色")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}

// ImportStudents 批量导入学生（Excel）
// POST /api/v1/admin/students/import
func (h *PersonHandler) ImportStudents(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 10001, "缺少上传文件")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, 10001, "无法读取上传文件")
		return
	}
	defer file.Close()

	rows, err := h.personSvc.ParseImportFile(file)
	if err != nil {
		response.ErrorWithDetails(c, 400, 12005, "Excel 解析失败", err.Error())
		return
	}

	result, err := h.personSvc.ImportStudents(c.Request.Context(), rows, userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
