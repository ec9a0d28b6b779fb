package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"school-portal/backend/internal/dto"
	"school-portal/backend/internal/service"
	"school-portal/backend/pkg/response"
)

// CourseHandler 课程模块 HTTP 处理器
type CourseHandler struct {
	courseSvc service.CourseService
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(courseSvc service.CourseService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc}
}

// CreateCourse 创建课程
// POST /api/v1/admin/courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.courseSvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		if errors.Is(err, service.ErrCourseNameExists) {
			response.BadRequest(c, 15001, "课程名称已存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// ListCourses 列出全部课程（公开，供选课浏览）
// GET /api/v1/courses
func (h *CourseHandler) ListCourses(c *gin.Context) {
	result, err := h.courseSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// DeleteCourse 删除课程
// DELETE /api/v1/admin/courses/:id
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	if err := h.courseSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			response.NotFound(c, 15002, "课程不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// GetRoster 查询课程选课名单
// GET /api/v1/admin/courses/:id/students
func (h *CourseHandler) GetRoster(c *gin.Context) {
	result, err := h.courseSvc.GetRoster(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			response.NotFound(c, 15002, "课程不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Enroll 当前学生选课
// POST /api/v1/student/courses/:id/enroll
func (h *CourseHandler) Enroll(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.courseSvc.Enroll(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCourseNotFound):
			response.NotFound(c, 15002, "课程不存在")
		case errors.Is(err, service.ErrPersonNotFound):
			response.NotFound(c, 12001, "用户不存在")
		case errors.Is(err, service.ErrAlreadyEnrolled):
			response.BadRequest(c, 15003, "已选该课程")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Unenroll 当前学生退课
// DELETE /api/v1/student/courses/:id/enroll
func (h *CourseHandler) Unenroll(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	err := h.courseSvc.Unenroll(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCourseNotFound):
			response.NotFound(c, 15002, "课程不存在")
		case errors.Is(err, service.ErrPersonNotFound):
			response.NotFound(c, 12001, "用户不存在")
		case errors.Is(err, service.ErrNotEnrolled):
			response.BadRequest(c, 15004, "未选该课程")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}

// ListMyCourses 当前学生的全部选课
// GET /api/v1/student/courses
func (h *CourseHandler) ListMyCourses(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.courseSvc.ListEnrolled(c.Request.Context(), userID)
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
