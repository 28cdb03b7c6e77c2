package dto

// ── notification module DTOs ──

// NotificationListRequest holds notification list query parameters.
type NotificationListRequest struct {
	PaginationRequest
	UnreadOnly bool `form:"unread_only"`
}

// NotificationResponse is one notification.
type NotificationResponse struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Title     string                 `json:"title"`
	Content   string                 `json:"content"`
	IsRead    bool                   `json:"is_read"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt string                 `json:"created_at"`
}

// UnreadCountResponse is the unread badge count.
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
