package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// MeetingSchedule is the per-project meeting configuration stored as JSONB:
// a list of weekday names plus a single time of day ("HH:MM").
type MeetingSchedule struct {
	Days []string `json:"days"`
	Time string   `json:"time"`
}

// Scan parses the JSONB column into a MeetingSchedule.
func (m *MeetingSchedule) Scan(src interface{}) error {
	if src == nil {
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("MeetingSchedule.Scan: unsupported type %T", src)
	}
	return json.Unmarshal(b, m)
}

// Value serializes the MeetingSchedule as JSON.
func (m MeetingSchedule) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// Project — maps the projects table.
type Project struct {
	ProjectID       string           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"project_id"`
	Name            string           `gorm:"type:varchar(100);not null"                     json:"name"`
	Description     string           `gorm:"type:varchar(500)"                              json:"description,omitempty"`
	TeamLeadID      *string          `gorm:"type:uuid"                                      json:"team_lead_id,omitempty"`
	MeetingSchedule *MeetingSchedule `gorm:"type:jsonb"                                     json:"meeting_schedule,omitempty"`
	MeetingBased    bool             `gorm:"not null;default:false"                         json:"meeting_based"`
	IsActive        bool             `gorm:"not null;default:true"                          json:"is_active"`
	SoftDeleteModel

	// associations
	TeamLead *User           `gorm:"foreignKey:TeamLeadID;references:UserID" json:"team_lead,omitempty"`
	Members  []ProjectMember `gorm:"foreignKey:ProjectID"                    json:"members,omitempty"`
}

// TableName sets the table name.
func (Project) TableName() string { return "projects" }

// ProjectMember — maps the project_members join table.
type ProjectMember struct {
	ProjectID string    `gorm:"type:uuid;primaryKey" json:"project_id"`
	UserID    string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	JoinedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"joined_at"`

	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName sets the table name.
func (ProjectMember) TableName() string { return "project_members" }
