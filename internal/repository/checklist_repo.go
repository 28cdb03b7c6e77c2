package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/CodebilityDev/codebility-plus-sub001/internal/model"
)

// ChecklistRepository is the member-checklist data-access interface.
type ChecklistRepository interface {
	Create(ctx context.Context, item *model.ChecklistItem) error
	GetByID(ctx context.Context, id string) (*model.ChecklistItem, error)
	Update(ctx context.Context, item *model.ChecklistItem) error
	Delete(ctx context.Context, id string) error
	ListByMember(ctx context.Context, projectID, userID string) ([]model.ChecklistItem, error)
}

type checklistRepo struct {
	db *gorm.DB
}

// NewChecklistRepo creates the GORM-backed ChecklistRepository.
func NewChecklistRepo(db *gorm.DB) ChecklistRepository {
	return &checklistRepo{db: db}
}

func (r *checklistRepo) Create(ctx context.Context, item *model.ChecklistItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *checklistRepo) GetByID(ctx context.Context, id string) (*model.ChecklistItem, error) {
	var item model.ChecklistItem
	err := r.db.WithContext(ctx).
		Where("checklist_item_id = ?", id).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *checklistRepo) Update(ctx context.Context, item *model.ChecklistItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *checklistRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("checklist_item_id = ?", id).
		Delete(&model.ChecklistItem{}).Error
}

func (r *checklistRepo) ListByMember(ctx context.Context, projectID, userID string) ([]model.ChecklistItem, error) {
	var items []model.ChecklistItem
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
