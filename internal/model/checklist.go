package model

// ChecklistItem — maps the member_checklists table.
// Onboarding/offboarding items maintained per (project, member) by the team lead.
type ChecklistItem struct {
	ChecklistItemID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"checklist_item_id"`
	ProjectID       string `gorm:"type:uuid;not null"                             json:"project_id"`
	UserID          string `gorm:"type:uuid;not null"                             json:"user_id"`
	Title           string `gorm:"type:varchar(200);not null"                     json:"title"`
	Done            bool   `gorm:"not null;default:false"                         json:"done"`
	BaseModel
}

// TableName sets the table name.
func (ChecklistItem) TableName() string { return "member_checklists" }
