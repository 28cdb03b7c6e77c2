package model

import "time"

// Attendance statuses persisted in the attendance table.
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
	StatusHoliday = "holiday"
	StatusWeekend = "weekend"
	StatusExcused = "excused"
)

// PointsPerDay is the fixed point value earned per qualifying attendance day.
const PointsPerDay = 2

// AttendanceRecord — maps the attendance table.
// One row per (user, project, date); the unique key makes saves idempotent.
type AttendanceRecord struct {
	AttendanceID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"attendance_id"`
	UserID       string    `gorm:"type:uuid;not null"                             json:"user_id"`
	ProjectID    string    `gorm:"type:uuid;not null"                             json:"project_id"`
	Date         time.Time `gorm:"type:date;not null"                             json:"date"`
	Status       string    `gorm:"type:varchar(20);not null"                      json:"status"`
	CheckIn      *string   `gorm:"type:time"                                      json:"check_in,omitempty"`
	CheckOut     *string   `gorm:"type:time"                                      json:"check_out,omitempty"`
	Notes        *string   `gorm:"type:text"                                      json:"notes,omitempty"`
	BaseModel

	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName sets the table name.
func (AttendanceRecord) TableName() string { return "attendance" }

// AttendancePoints — maps the attendance_points table.
// Derived aggregate: maintained by a database trigger, overwritten only by the
// manual repair operation. Never computed in-process on the read path.
type AttendancePoints struct {
	UserID      string    `gorm:"type:uuid;primaryKey"               json:"user_id"`
	Points      int       `gorm:"not null;default:0"                 json:"points"`
	LastUpdated time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"last_updated"`
}

// TableName sets the table name.
func (AttendancePoints) TableName() string { return "attendance_points" }
