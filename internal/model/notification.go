package model

import "gorm.io/datatypes"

// Notification types.
const (
	NotificationAttendanceWarning = "attendance_warning"
	NotificationAbsenceReport     = "absence_report"
	NotificationScheduleChanged   = "meeting_schedule_changed"
	NotificationGeneral           = "general"
)

// Notification — maps the notifications table.
// Metadata carries project_id and a month tag ("YYYY-MM") so monthly warnings
// can be deduplicated by recipient + project + type + month.
type Notification struct {
	NotificationID string            `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	UserID         string            `gorm:"type:uuid;not null"                             json:"user_id"`
	Type           string            `gorm:"type:varchar(50);not null"                      json:"type"`
	Title          string            `gorm:"type:varchar(200);not null"                     json:"title"`
	Content        string            `gorm:"type:text;not null"                             json:"content"`
	IsRead         bool              `gorm:"not null;default:false"                         json:"is_read"`
	Metadata       datatypes.JSONMap `gorm:"type:jsonb"                                     json:"metadata,omitempty"`
	BaseModel
}

// TableName sets the table name.
func (Notification) TableName() string { return "notifications" }
