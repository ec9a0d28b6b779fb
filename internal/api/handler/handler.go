package handler

import "school-portal/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth    *AuthHandler
	Person  *PersonHandler
	Contact *ContactHandler
	Class   *ClassHandler
	Course  *CourseHandler
	Holiday *HolidayHandler
	Export  *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(svc.Auth),
		Person:  NewPersonHandler(svc.Person),
		Contact: NewContactHandler(svc.Contact),
		Class:   NewClassHandler(svc.Class),
		Course:  NewCourseHandler(svc.Course),
		Holiday: NewHolidayHandler(svc.Holiday),
		Export:  NewExportHandler(svc.Export),
	}
}
