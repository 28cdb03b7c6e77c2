package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/CodebilityDev/codebility-plus-sub001/internal/model"
)

// SurveyRepository is the survey data-access interface.
type SurveyRepository interface {
	CreateWithQuestions(ctx context.Context, survey *model.Survey, questions []model.SurveyQuestion) error
	GetByID(ctx context.Context, id string) (*model.Survey, error)
	Update(ctx context.Context, survey *model.Survey) error
	ListActive(ctx context.Context) ([]model.Survey, error)
	CreateResponse(ctx context.Context, resp *model.SurveyResponse) error
	HasResponse(ctx context.Context, surveyID, userID string) (bool, error)
	UpsertDismissal(ctx context.Context, d *model.SurveyDismissal) error
	ListDismissedIDs(ctx context.Context, userID string) ([]string, error)
	ListRespondedIDs(ctx context.Context, userID string) ([]string, error)
}

type surveyRepo struct {
	db *gorm.DB
}

// NewSurveyRepo creates the GORM-backed SurveyRepository.
func NewSurveyRepo(db *gorm.DB) SurveyRepository {
	return &surveyRepo{db: db}
}

func (r *surveyRepo) CreateWithQuestions(ctx context.Context, survey *model.Survey, questions []model.SurveyQuestion) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(survey).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].SurveyID = survey.SurveyID
		}
		return tx.Create(&questions).Error
	})
}

func (r *surveyRepo) GetByID(ctx context.Context, id string) (*model.Survey, error) {
	var survey model.Survey
	err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("survey_id = ?", id).
		First(&survey).Error
	if err != nil {
		return nil, err
	}
	return &survey, nil
}

func (r *surveyRepo) Update(ctx context.Context, survey *model.Survey) error {
	return r.db.WithContext(ctx).Save(survey).Error
}

func (r *surveyRepo) ListActive(ctx context.Context) ([]model.Survey, error) {
	var surveys []model.Survey
	err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("status = ?", model.SurveyActive).
		Order("created_at DESC").
		Find(&surveys).Error
	return surveys, err
}

func (r *surveyRepo) CreateResponse(ctx context.Context, resp *model.SurveyResponse) error {
	return r.db.WithContext(ctx).Create(resp).Error
}

func (r *surveyRepo) HasResponse(ctx context.Context, surveyID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.SurveyResponse{}).
		Where("survey_id = ? AND user_id = ?", surveyID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *surveyRepo) UpsertDismissal(ctx context.Context, d *model.SurveyDismissal) error {
	return r.db.WithContext(ctx).
		Exec(`INSERT INTO survey_dismissals (survey_id, user_id, dismissed_at)
		      VALUES (?, ?, CURRENT_TIMESTAMP)
		      ON CONFLICT (survey_id, user_id) DO NOTHING`,
			d.SurveyID, d.UserID).Error
}

func (r *surveyRepo) ListDismissedIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.SurveyDismissal{}).
		Where("user_id = ?", userID).
		Pluck("survey_id", &ids).Error
	return ids, err
}

func (r *surveyRepo) ListRespondedIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.SurveyResponse{}).
		Where("user_id = ?", userID).
		Pluck("survey_id", &ids).Error
	return ids, err
}
