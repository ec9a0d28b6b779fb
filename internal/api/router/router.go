package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"school-portal/backend/config"
	"school-portal/backend/internal/api/handler"
	"school-portal/backend/internal/api/middleware"
	"school-portal/backend/internal/model"
	"school-portal/backend/pkg/jwt"
	"school-portal/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(8 << 20)) // 8MB，兼顾 Excel 上传

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证；登录接口限流）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/register", middleware.RateLimit(rdb, 5, time.Minute), h.Auth.Register)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 公开模块
		v1.POST("/contact", middleware.RateLimit(rdb, 10, time.Minute), h.Contact.SaveMessage)
		v1.GET("/courses", h.Course.ListCourses)
		v1.GET("/holidays", h.Holiday.ListHolidays)
		v1.GET("/holidays/calendar.ics", h.Holiday.ExportCalendar)

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 学生自助模块
			student := authorized.Group("/student")
			student.Use(middleware.RoleAuth(model.RoleStudent, model.RoleAdmin))
			{
				student.GET("/courses", h.Course.ListMyCourses)
				student.POST("/courses/:id/enroll", h.Course.Enroll)
				student.DELETE("/courses/:id/enroll", h.Course.Unenroll)
			}

			// 管理模块（仅 ADMIN）
			admin := authorized.Group("/admin")
			admin.Use(middleware.RoleAuth(model.RoleAdmin))
			{
				// 留言管理
				admin.GET("/contact", h.Contact.ListMessages)
				admin.PATCH("/contact/:id/close", h.Contact.CloseMessage)
				admin.DELETE("/contact/:id", h.Contact.DeleteMessage)

				// 人员管理
				admin.GET("/persons", h.Person.ListPersons)
				admin.GET("/persons/:id", h.Person.GetPerson)
				admin.PUT("/persons/:id", h.Person.UpdatePerson)
				admin.DELETE("/persons/:id", h.Person.DeletePerson)
				admin.PUT("/persons/:id/role", h.Person.AssignRole)
				admin.POST("/students/import", h.Person.ImportStudents)

				// 班级管理
				admin.GET("/classes", h.Class.ListClasses)
				admin.GET("/classes/:id", h.Class.GetClass)
				admin.POST("/classes", h.Class.CreateClass)
				admin.DELETE("/classes/:id", h.Class.DeleteClass)
				admin.POST("/classes/:id/students", h.Class.AddStudent)
				admin.DELETE("/classes/:id/students/:personId", h.Class.RemoveStudent)

				// 课程管理
				admin.POST("/courses", h.Course.CreateCourse)
				admin.DELETE("/courses/:id", h.Course.DeleteCourse)
				admin.GET("/courses/:id/students", h.Course.GetRoster)

				// 假日管理
				admin.POST("/holidays", h.Holiday.CreateHoliday)
				admin.DELETE("/holidays/:id", h.Holiday.DeleteHoliday)

				// 导出
				admin.GET("/export/roster", h.Export.ExportRoster)
			}
		}
	}

	return r
}
