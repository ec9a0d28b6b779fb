package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"school-portal/backend/internal/dto"
	"school-portal/backend/internal/service"
	"school-portal/backend/pkg/response"
)

// ClassHandler 班级模块 HTTP 处理器
type ClassHandler struct {
	classSvc service.ClassService
}

// NewClassHandler 创建 ClassHandler
func NewClassHandler(classSvc service.ClassService) *ClassHandler {
	return &ClassHandler{classSvc: classSvc}
}

// CreateClass 创建班级
// POST /api/v1/admin/classes
func (h *ClassHandler) CreateClass(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.classSvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		if errors.Is(err, service.ErrClassNameExists) {
			response.BadRequest(c, 14001, "班级名称已存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// ListClasses 列出班级
// GET /api/v1/admin/classes
func (h *ClassHandler) ListClasses(c *gin.Context) {
	result, err := h.classSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// GetClass 查询班级详情（含学生列表）
// GET /api/v1/admin/classes/:id
func (h *ClassHandler) GetClass(c *gin.Context) {
	result, err := h.classSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			response.NotFound(c, 14002, "班级不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// DeleteClass 删除班级（先解除所有学生的班级引用）
// DELETE /api/v1/admin/classes/:id
func (h *ClassHandler) DeleteClass(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.classSvc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			response.NotFound(c, 14002, "班级不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// AddStudent 按邮箱把学生分配进班级
// POST /api/v1/admin/classes/:id/students
func (h *ClassHandler) AddStudent(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.AddStudentToClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.classSvc.AddStudent(c.Request.Context(), c.Param("id"), &req, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClassNotFound):
			response.NotFound(c, 14002, "班级不存在")
		case errors.Is(err, service.ErrPersonNotFound):
			response.NotFound(c, 12001, "用户不存在")
		case errors.Is(err, service.ErrNotStudent):
			response.BadRequest(c, 14003, "只能把学生分配进班级")
		case errors.Is(err, service.ErrAlreadyInClass):
			response.BadRequest(c, 14004, "该学生已在此班级")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// RemoveStudent 把学生移出班级
// DELETE /api/v1/admin/classes/:id/students/:personId
func (h *ClassHandler) RemoveStudent(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	err := h.classSvc.RemoveStudent(c.Request.Context(), c.Param("id"), c.Param("personId"), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPersonNotFound):
			response.NotFound(c, 12001, "用户不存在")
		case errors.Is(err, service.ErrPersonNotInClass):
			response.BadRequest(c, 14005, "该学生不在此班级")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}
