package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/CodebilityDev/codebility-plus-sub001/config"
	"github.com/CodebilityDev/codebility-plus-sub001/internal/api/handler"
	"github.com/CodebilityDev/codebility-plus-sub001/internal/api/middleware"
	"github.com/CodebilityDev/codebility-plus-sub001/pkg/jwt"
	"github.com/CodebilityDev/codebility-plus-sub001/pkg/redis"
)

// Setup builds the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		// public routes
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, 10, time.Minute))
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/register", h.Auth.Register)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		v1.GET("/banners/active", h.Banner.ListActive)

		// authenticated routes
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			users := authorized.Group("/users")
			{
				users.GET("/me", h.User.GetCurrentUser)
				users.GET("", middleware.RoleAuth("admin", "lead"), h.User.ListUsers)
				users.GET("/:id", h.User.GetUser)
				users.PUT("/:id", h.User.UpdateProfile) // admin or self, enforced in the service
				users.PUT("/:id/role", middleware.RoleAuth("admin"), h.User.AssignRole)
			}

			projects := authorized.Group("/projects")
			{
				projects.GET("", h.Project.List)
				projects.GET("/:id", h.Project.Get)
				projects.POST("", middleware.RoleAuth("admin"), h.Project.Create)
				projects.PUT("/:id", h.Project.Update)
				projects.DELETE("/:id", middleware.RoleAuth("admin"), h.Project.Delete)

				projects.GET("/:id/members", h.Project.ListMembers)
				projects.POST("/:id/members", h.Project.AddMembers)
				projects.DELETE("/:id/members/:userID", h.Project.RemoveMember)
				projects.PUT("/:id/meeting-schedule", h.Project.UpdateMeetingSchedule)

				projects.GET("/:id/attendance", h.Attendance.GetGrid)
				projects.POST("/:id/attendance", h.Attendance.BulkSave)
				projects.GET("/:id/attendance/summary", h.Attendance.MonthSummary)
				projects.POST("/:id/attendance/warnings", h.Attendance.CheckWarnings)
				projects.GET("/:id/attendance/export", middleware.RoleAuth("admin", "lead"), h.Export.ExportMonthGrid)
				projects.GET("/:id/calendar/export", h.Export.ExportMeetingCalendar)

				projects.POST("/:id/checklist", h.Checklist.AddItem)
				projects.GET("/:id/checklist/:userID", h.Checklist.ListForMember)
			}

			attendance := authorized.Group("/attendance")
			{
				attendance.GET("/points/:userID", h.Attendance.GetPoints)
				attendance.POST("/points/:userID/repair", middleware.RoleAuth("admin"), h.Attendance.RepairPoints)
			}

			notifications := authorized.Group("/notifications")
			{
				notifications.GET("", h.Notification.List)
				notifications.GET("/unread-count", h.Notification.UnreadCount)
				notifications.PUT("/read-all", h.Notification.MarkAllRead)
				notifications.PUT("/:id/read", h.Notification.MarkRead)
			}

			checklists := authorized.Group("/checklists")
			{
				checklists.PUT("/:id/toggle", h.Checklist.ToggleItem)
				checklists.DELETE("/:id", h.Checklist.DeleteItem)
			}

			banners := authorized.Group("/banners")
			{
				banners.GET("", middleware.RoleAuth("admin"), h.Banner.ListAll)
				banners.POST("", middleware.RoleAuth("admin"), h.Banner.Create)
				banners.PUT("/:id", middleware.RoleAuth("admin"), h.Banner.Update)
				banners.DELETE("/:id", middleware.RoleAuth("admin"), h.Banner.Delete)
			}

			surveys := authorized.Group("/surveys")
			{
				surveys.GET("/pending", h.Survey.ListPending)
				surveys.GET("/:id", h.Survey.Get)
				surveys.POST("", middleware.RoleAuth("admin"), h.Survey.Create)
				surveys.PUT("/:id/close", middleware.RoleAuth("admin"), h.Survey.Close)
				surveys.POST("/:id/responses", h.Survey.Submit)
				surveys.POST("/:id/dismiss", h.Survey.Dismiss)
			}
		}
	}

	return r
}
