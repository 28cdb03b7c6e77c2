package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/CodebilityDev/codebility-plus-sub001/internal/dto"
	"github.com/CodebilityDev/codebility-plus-sub001/internal/model"
	"github.com/CodebilityDev/codebility-plus-sub001/internal/repository"
)

var (
	ErrSurveyNotFound   = errors.New("survey not found")
	ErrSurveyClosed     = errors.New("survey is closed")
	ErrAlreadyResponded = errors.New("survey already answered")
	ErrUnknownQuestion  = errors.New("answer references unknown question")
)

// SurveyService manages surveys, member submissions and dismissals.
type SurveyService interface {
	Create(ctx context.Context, req *dto.CreateSurveyRequest, caller Caller) (*dto.SurveyResponseDTO, error)
	GetByID(ctx context.Context, id string) (*dto.SurveyResponseDTO, error)
	Close(ctx context.Context, id string, caller Caller) error
	// ListPending returns active surveys the caller has neither answered nor
	// dismissed. This feeds the portal's survey prompt.
	ListPending(ctx context.Context, caller Caller) ([]dto.SurveyResponseDTO, error)
	Submit(ctx context.Context, surveyID string, req *dto.SubmitSurveyRequest, caller Caller) error
	Dismiss(ctx context.Context, surveyID string, caller Caller) error
}

type surveyService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSurveyService creates a SurveyService.
func NewSurveyService(repo *repository.Repository, logger *zap.Logger) SurveyService {
	return &surveyService{repo: repo, logger: logger}
}

func (s *surveyService) Create(ctx context.Context, req *dto.CreateSurveyRequest, caller Caller) (*dto.SurveyResponseDTO, error) {
	if !caller.IsAdmin() {
		return nil, ErrAdminRequired
	}

	survey := &model.Survey{
		Title:       req.Title,
		Description: req.Description,
		Status:      model.SurveyActive,
		CreatedBy:   caller.UserID,
	}
	questions := make([]model.SurveyQuestion, len(req.Questions))
	for i, q := range req.Questions {
		questions[i] = model.SurveyQuestion{
			Position: i + 1,
			Prompt:   q.Prompt,
			Kind:     q.Kind,
			Options:  datatypes.JSONMap(q.Options),
		}
	}

	if err := s.repo.Survey.CreateWithQuestions(ctx, survey, questions); err != nil {
		s.logger.Error("create survey failed", zap.Error(err))
		return nil, err
	}

	survey.Questions = questions
	return toSurveyResponse(survey), nil
}

func (s *surveyService) GetByID(ctx context.Context, id string) (*dto.SurveyResponseDTO, error) {
	survey, err := s.repo.Survey.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSurveyNotFound
		}
		return nil, err
	}
	return toSurveyResponse(survey), nil
}

func (s *surveyService) Close(ctx context.Context, id string, caller Caller) error {
	if !caller.IsAdmin() {
		return ErrAdminRequired
	}

	survey, err := s.repo.Survey.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSurveyNotFound
		}
		return err
	}
	if survey.Status == model.SurveyClosed {
		return nil
	}

	survey.Status = model.SurveyClosed
	if err := s.repo.Survey.Update(ctx, survey); err != nil {
		s.logger.Error("close survey failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *surveyService) ListPending(ctx context.Context, caller Caller) ([]dto.SurveyResponseDTO, error) {
	active, err := s.repo.Survey.ListActive(ctx)
	if err != nil {
		s.logger.Error("list active surveys failed", zap.Error(err))
		return nil, err
	}

	dismissed, err := s.repo.Survey.ListDismissedIDs(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	responded, err := s.repo.Survey.ListRespondedIDs(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	skip := make(map[string]bool, len(dismissed)+len(responded))
	for _, id := range dismissed {
		skip[id] = true
	}
	for _, id := range responded {
		skip[id] = true
	}

	pending := make([]dto.SurveyResponseDTO, 0, len(active))
	for i := range active {
		if skip[active[i].SurveyID] {
			continue
		}
		pending = append(pending, *toSurveyResponse(&active[i]))
	}
	return pending, nil
}

func (s *surveyService) Submit(ctx context.Context, surveyID string, req *dto.SubmitSurveyRequest, caller Caller) error {
	survey, err := s.repo.Survey.GetByID(ctx, surveyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSurveyNotFound
		}
		return err
	}
	if survey.Status != model.SurveyActive {
		return ErrSurveyClosed
	}

	// answers must reference the survey's own questions
	known := make(map[string]bool, len(survey.Questions))
	for _, q := range survey.Questions {
		known[q.QuestionID] = true
	}
	for qid := range req.Answers {
		if !known[qid] {
			return ErrUnknownQuestion
		}
	}

	answered, err := s.repo.Survey.HasResponse(ctx, surveyID, caller.UserID)
	if err != nil {
		return err
	}
	if answered {
		return ErrAlreadyResponded
	}

	if err := s.repo.Survey.CreateResponse(ctx, &model.SurveyResponse{
		SurveyID: surveyID,
		UserID:   caller.UserID,
		Answers:  datatypes.JSONMap(req.Answers),
	}); err != nil {
		s.logger.Error("submit survey failed",
			zap.String("survey_id", surveyID), zap.String("user_id", caller.UserID), zap.Error(err))
		return err
	}
	return nil
}

func (s *surveyService) Dismiss(ctx context.Context, surveyID string, caller Caller) error {
	if _, err := s.repo.Survey.GetByID(ctx, surveyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSurveyNotFound
		}
		return err
	}
	// repeat dismissals are a no-op
	return s.repo.Survey.UpsertDismissal(ctx, &model.SurveyDismissal{
		SurveyID: surveyID,
		UserID:   caller.UserID,
	})
}

func toSurveyResponse(survey *model.Survey) *dto.SurveyResponseDTO {
	questions := make([]dto.SurveyQuestionResponse, 0, len(survey.Questions))
	for _, q := range survey.Questions {
		questions = append(questions, dto.SurveyQuestionResponse{
			ID:       q.QuestionID,
			Position: q.Position,
			Prompt:   q.Prompt,
			Kind:     q.Kind,
			Options:  q.Options,
		})
	}
	return &dto.SurveyResponseDTO{
		ID:          survey.SurveyID,
		Title:       survey.Title,
		Description: survey.Description,
		Status:      survey.Status,
		Questions:   questions,
		CreatedAt:   survey.CreatedAt.Format(time.RFC3339),
	}
}
