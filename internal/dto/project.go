package dto

// ── project module DTOs ──

// CreateProjectRequest is the project creation payload.
type CreateProjectRequest struct {
	Name        string `json:"name"        binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
	TeamLeadID  string `json:"team_lead_id" binding:"omitempty,uuid"`
}

// UpdateProjectRequest is the project update payload.
type UpdateProjectRequest struct {
	Name        *string `json:"name"         binding:"omitempty,min=2,max=100"`
	Description *string `json:"description"  binding:"omitempty,max=500"`
	TeamLeadID  *string `json:"team_lead_id" binding:"omitempty,uuid"`
	IsActive    *bool   `json:"is_active"`
}

// ProjectListRequest holds project list query parameters.
type ProjectListRequest struct {
	IncludeInactive bool `form:"include_inactive"`
}

// ProjectResponse is the project payload.
type ProjectResponse struct {
	ID              string                   `json:"id"`
	Name            string                   `json:"name"`
	Description     string                   `json:"description,omitempty"`
	TeamLeadID      string                   `json:"team_lead_id,omitempty"`
	TeamLeadName    string                   `json:"team_lead_name,omitempty"`
	MeetingSchedule *MeetingScheduleResponse `json:"meeting_schedule,omitempty"`
	MeetingBased    bool                     `json:"meeting_based"`
	IsActive        bool                     `json:"is_active"`
	MemberCount     int64                    `json:"member_count"`
	CreatedAt       string                   `json:"created_at"`
	UpdatedAt       string                   `json:"updated_at"`
}

// ProjectMemberResponse is one project member row.
type ProjectMemberResponse struct {
	UserID     string   `json:"user_id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Role       string   `json:"role"`
	TechStacks []string `json:"tech_stacks"`
	JoinedAt   string   `json:"joined_at"`
}

// AddMembersRequest adds members to a project.
type AddMembersRequest struct {
	UserIDs []string `json:"user_ids" binding:"required,min=1,dive,uuid"`
}

// ── meeting schedule DTOs ──

// MeetingScheduleResponse mirrors the stored schedule.
type MeetingScheduleResponse struct {
	Days []string `json:"days"`
	Time string   `json:"time"`
}

// UpdateMeetingScheduleRequest sets a project's meeting schedule.
// Days use lowercase English weekday names; Time is "HH:MM".
type UpdateMeetingScheduleRequest struct {
	Days []string `json:"days" binding:"required,min=1,max=7,dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	Time string   `json:"time" binding:"required,len=5"`
}
