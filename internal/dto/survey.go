package dto

// ── survey module DTOs ──

// CreateSurveyQuestion is one question of a survey creation payload.
type CreateSurveyQuestion struct {
	Prompt  string                 `json:"prompt"  binding:"required,max=500"`
	Kind    string                 `json:"kind"    binding:"required,oneof=text scale choice"`
	Options map[string]interface{} `json:"options" binding:"omitempty"`
}

// CreateSurveyRequest creates a survey with its questions.
type CreateSurveyRequest struct {
	Title       string                 `json:"title"       binding:"required,min=2,max=200"`
	Description string                 `json:"description" binding:"omitempty,max=500"`
	Questions   []CreateSurveyQuestion `json:"questions"   binding:"required,min=1,dive"`
}

// SurveyQuestionResponse is one question.
type SurveyQuestionResponse struct {
	ID       string                 `json:"id"`
	Position int                    `json:"position"`
	Prompt   string                 `json:"prompt"`
	Kind     string                 `json:"kind"`
	Options  map[string]interface{} `json:"options,omitempty"`
}

// SurveyResponseDTO is one survey with its questions.
type SurveyResponseDTO struct {
	ID          string                   `json:"id"`
	Title       string                   `json:"title"`
	Description string                   `json:"description,omitempty"`
	Status      string                   `json:"status"`
	Questions   []SurveyQuestionResponse `json:"questions"`
	CreatedAt   string                   `json:"created_at"`
}

// SubmitSurveyRequest submits answers keyed by question ID.
type SubmitSurveyRequest struct {
	Answers map[string]interface{} `json:"answers" binding:"required"`
}
