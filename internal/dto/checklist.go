package dto

// ── checklist module DTOs ──

// CreateChecklistItemRequest adds one item to a member's checklist.
type CreateChecklistItemRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	Title  string `json:"title"   binding:"required,min=2,max=200"`
}

// ChecklistItemResponse is one checklist item.
type ChecklistItemResponse struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	UserID    string `json:"user_id"`
	Title     string `json:"title"`
	Done      bool   `json:"done"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
