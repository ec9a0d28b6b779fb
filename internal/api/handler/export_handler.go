package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"school-portal/backend/internal/service"
	"school-portal/backend/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportRoster 导出课程选课名单为 Excel
// GET /api/v1/admin/export/roster?course_id=
func (h *ExportHandler) ExportRoster(c *gin.Context) {
	courseID := c.Query("course_id")
	if courseID == "" {
		response.BadRequest(c, 10001, "缺少 course_id 参数")
		return
	}

	buf, filename, err := h.exportSvc.ExportCourseRoster(c.Request.Context(), courseID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCourseNotFound):
			response.NotFound(c, 15002, "课程不存在")
		case errors.Is(err, service.ErrExportNoStudents):
			response.NotFound(c, 17001, "该课程暂无选课学生")
		default:
			response.InternalError(c)
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
