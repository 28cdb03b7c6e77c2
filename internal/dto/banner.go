package dto

// ── news banner module DTOs ──

// CreateBannerRequest creates a news banner.
type CreateBannerRequest struct {
	Title    string `json:"title"     binding:"required,min=2,max=200"`
	Body     string `json:"body"      binding:"required"`
	StartsAt string `json:"starts_at" binding:"required"` // RFC 3339
	EndsAt   string `json:"ends_at"   binding:"required"` // RFC 3339
}

// UpdateBannerRequest updates a news banner.
type UpdateBannerRequest struct {
	Title    *string `json:"title"     binding:"omitempty,min=2,max=200"`
	Body     *string `json:"body"`
	StartsAt *string `json:"starts_at"`
	EndsAt   *string `json:"ends_at"`
	IsActive *bool   `json:"is_active"`
}

// BannerResponse is one news banner.
type BannerResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	StartsAt string `json:"starts_at"`
	EndsAt   string `json:"ends_at"`
	IsActive bool   `json:"is_active"`
}
