package service

import (
	"go.uber.org/zap"

	"github.com/CodebilityDev/codebility-plus-sub001/config"
	"github.com/CodebilityDev/codebility-plus-sub001/internal/repository"
	"github.com/CodebilityDev/codebility-plus-sub001/pkg/jwt"
	"github.com/CodebilityDev/codebility-plus-sub001/pkg/redis"
)

// Service aggregates every business-logic interface.
type Service struct {
	Auth         AuthService
	User         UserService
	Project      ProjectService
	Attendance   AttendanceService
	Warning      WarningService
	Notification NotificationService
	Checklist    ChecklistService
	Banner       BannerService
	Survey       SurveyService
	Export       ExportService
}

// NewService wires the service implementations.
// rdb may be nil; cache-dependent features degrade gracefully.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	notification := NewNotificationService(repo, logger)
	return &Service{
		Auth:         NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:         NewUserService(repo, logger),
		Project:      NewProjectService(repo, notification, logger),
		Attendance:   NewAttendanceService(cfg, repo, rdb, logger),
		Warning:      NewWarningService(cfg, repo, logger),
		Notification: notification,
		Checklist:    NewChecklistService(repo, logger),
		Banner:       NewBannerService(repo, logger),
		Survey:       NewSurveyService(repo, logger),
		Export:       NewExportService(repo, logger),
	}
}
