package dto

// ── user module DTOs ──

// UserResponse is the sanitized user payload.
type UserResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Role       string   `json:"role"`
	TechStacks []string `json:"tech_stacks"`
	CreatedAt  string   `json:"created_at,omitempty"`
}

// UserListRequest holds user list query parameters.
type UserListRequest struct {
	PaginationRequest
	Role    string `form:"role"    binding:"omitempty,oneof=admin lead member"`
	Keyword string `form:"keyword" binding:"omitempty,max=50"`
}

// UpdateProfileRequest is the profile-settings payload.
type UpdateProfileRequest struct {
	Name   *string   `json:"name"        binding:"omitempty,min=2,max=100"`
	Email  *string   `json:"email"       binding:"omitempty,email"`
	Stacks *[]string `json:"tech_stacks" binding:"omitempty,max=20"`
}

// AssignRoleRequest is the role-assignment payload.
type AssignRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin lead member"`
}
