package repository

import "gorm.io/gorm"

// Repository aggregates every data-access interface.
type Repository struct {
	User         UserRepository
	Project      ProjectRepository
	Attendance   AttendanceRepository
	Notification NotificationRepository
	Checklist    ChecklistRepository
	Banner       BannerRepository
	Survey       SurveyRepository
}

// NewRepository wires the GORM implementations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:         NewUserRepo(db),
		Project:      NewProjectRepo(db),
		Attendance:   NewAttendanceRepo(db),
		Notification: NewNotificationRepo(db),
		Checklist:    NewChecklistRepo(db),
		Banner:       NewBannerRepo(db),
		Survey:       NewSurveyRepo(db),
	}
}
