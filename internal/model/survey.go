package model

import (
	"time"

	"gorm.io/datatypes"
)

// Survey statuses.
const (
	SurveyActive = "active"
	SurveyClosed = "closed"
)

// Survey — maps the surveys table.
type Survey struct {
	SurveyID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"survey_id"`
	Title       string `gorm:"type:varchar(200);not null"                     json:"title"`
	Description string `gorm:"type:varchar(500)"                              json:"description,omitempty"`
	Status      string `gorm:"type:varchar(20);not null;default:'active'"     json:"status"` // active | closed
	CreatedBy   string `gorm:"type:uuid;not null"                             json:"created_by"`
	BaseModel

	Questions []SurveyQuestion `gorm:"foreignKey:SurveyID" json:"questions,omitempty"`
}

// TableName sets the table name.
func (Survey) TableName() string { return "surveys" }

// SurveyQuestion — maps the survey_questions table.
type SurveyQuestion struct {
	QuestionID string            `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"question_id"`
	SurveyID   string            `gorm:"type:uuid;not null"                             json:"survey_id"`
	Position   int               `gorm:"type:smallint;not null"                         json:"position"`
	Prompt     string            `gorm:"type:varchar(500);not null"                     json:"prompt"`
	Kind       string            `gorm:"type:varchar(20);not null;default:'text'"       json:"kind"` // text | scale | choice
	Options    datatypes.JSONMap `gorm:"type:jsonb"                                     json:"options,omitempty"`
}

// TableName sets the table name.
func (SurveyQuestion) TableName() string { return "survey_questions" }

// SurveyResponse — maps the survey_responses table.
// Unique on (survey, user): one submission per member.
type SurveyResponse struct {
	ResponseID  string            `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"response_id"`
	SurveyID    string            `gorm:"type:uuid;not null"                             json:"survey_id"`
	UserID      string            `gorm:"type:uuid;not null"                             json:"user_id"`
	Answers     datatypes.JSONMap `gorm:"type:jsonb;not null"                            json:"answers"`
	SubmittedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"submitted_at"`
}

// TableName sets the table name.
func (SurveyResponse) TableName() string { return "survey_responses" }

// SurveyDismissal — maps the survey_dismissals table.
type SurveyDismissal struct {
	SurveyID    string    `gorm:"type:uuid;primaryKey"               json:"survey_id"`
	UserID      string    `gorm:"type:uuid;primaryKey"               json:"user_id"`
	DismissedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"dismissed_at"`
}

// TableName sets the table name.
func (SurveyDismissal) TableName() string { return "survey_dismissals" }
