package handler

import "github.com/CodebilityDev/codebility-plus-sub001/internal/service"

// Handler aggregates every module handler.
type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Project      *ProjectHandler
	Attendance   *AttendanceHandler
	Notification *NotificationHandler
	Checklist    *ChecklistHandler
	Banner       *BannerHandler
	Survey       *SurveyHandler
	Export       *ExportHandler
}

// NewHandler wires the handlers.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		User:         NewUserHandler(svc.User),
		Project:      NewProjectHandler(svc.Project),
		Attendance:   NewAttendanceHandler(svc.Attendance, svc.Warning),
		Notification: NewNotificationHandler(svc.Notification),
		Checklist:    NewChecklistHandler(svc.Checklist),
		Banner:       NewBannerHandler(svc.Banner),
		Survey:       NewSurveyHandler(svc.Survey),
		Export:       NewExportHandler(svc.Export),
	}
}
