package dto

// ── attendance module DTOs ──

// MonthRequest identifies a project month.
type MonthRequest struct {
	Year  int `form:"year"  binding:"required,min=2000,max=2100"`
	Month int `form:"month" binding:"required,min=1,max=12"`
}

// GridDayResponse is one classified calendar day.
type GridDayResponse struct {
	Day       int    `json:"day"`
	Weekday   string `json:"weekday"`
	Weekend   bool   `json:"weekend"`
	Scheduled bool   `json:"scheduled"`
}

// GridCellResponse is one member/day cell of the grid.
type GridCellResponse struct {
	UserID string `json:"user_id"`
	Date   string `json:"date"` // YYYY-MM-DD
	Status string `json:"status"`
}

// GridResponse is the seeded grid for a project month.
type GridResponse struct {
	ProjectID    string             `json:"project_id"`
	Year         int                `json:"year"`
	Month        int                `json:"month"`
	MeetingBased bool               `json:"meeting_based"`
	Days         []GridDayResponse  `json:"days"`
	Cells        []GridCellResponse `json:"cells"`
}

// SaveAttendanceRecord is one record of a bulk save.
type SaveAttendanceRecord struct {
	UserID   string  `json:"user_id"  binding:"required,uuid"`
	Date     string  `json:"date"     binding:"required"` // YYYY-MM-DD, validated in the service
	Status   string  `json:"status"   binding:"required,oneof=present absent late holiday weekend excused"`
	CheckIn  *string `json:"check_in"  binding:"omitempty,len=5"`
	CheckOut *string `json:"check_out" binding:"omitempty,len=5"`
	Notes    *string `json:"notes"     binding:"omitempty,max=500"`
}

// BulkSaveRequest is the bulk attendance save payload.
type BulkSaveRequest struct {
	Records []SaveAttendanceRecord `json:"records" binding:"required,min=1,dive"`
}

// SaveResultResponse is the per-record outcome of a bulk save.
type SaveResultResponse struct {
	UserID  string `json:"user_id"`
	Date    string `json:"date"`
	Saved   bool   `json:"saved"`
	Created bool   `json:"created"` // false when an existing row was updated
	Error   string `json:"error,omitempty"`
}

// BulkSaveResponse aggregates a bulk save.
type BulkSaveResponse struct {
	Total   int                  `json:"total"`
	Saved   int                  `json:"saved"`
	Failed  int                  `json:"failed"`
	Results []SaveResultResponse `json:"results"`
}

// PointsResponse is a member's derived point aggregate.
type PointsResponse struct {
	UserID      string `json:"user_id"`
	Points      int    `json:"points"`
	LastUpdated string `json:"last_updated"`
}

// RepairPointsResponse reports a manual point repair.
type RepairPointsResponse struct {
	UserID         string `json:"user_id"`
	QualifyingDays int64  `json:"qualifying_days"`
	Points         int    `json:"points"`
}

// MemberSummaryResponse is one member's month summary.
type MemberSummaryResponse struct {
	UserID     string `json:"user_id"`
	Name       string `json:"name"`
	Present    int    `json:"present"`
	Absent     int    `json:"absent"`
	Excused    int    `json:"excused"`
	Percentage int    `json:"percentage"`
}

// MonthSummaryResponse is the cached per-project month summary.
type MonthSummaryResponse struct {
	ProjectID string                  `json:"project_id"`
	Year      int                     `json:"year"`
	Month     int                     `json:"month"`
	Members   []MemberSummaryResponse `json:"members"`
}

// ── absence warnings ──

// AbsenceWarningResponse is one member's warning-check outcome.
type AbsenceWarningResponse struct {
	UserID           string `json:"user_id"`
	Name             string `json:"name"`
	Absences         int    `json:"absences"`
	ScheduledDays    int    `json:"scheduled_days"`
	Percentage       int    `json:"percentage"`
	HasWarning       bool   `json:"has_warning"`
	NotificationSent bool   `json:"notification_sent"`
}

// AbsenceCheckResponse aggregates a warning check run.
type AbsenceCheckResponse struct {
	ProjectID string                   `json:"project_id"`
	Year      int                      `json:"year"`
	Month     int                      `json:"month"`
	Warnings  []AbsenceWarningResponse `json:"warnings"`
}
