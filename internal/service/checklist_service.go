package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/CodebilityDev/codebility-plus-sub001/internal/dto"
	"github.com/CodebilityDev/codebility-plus-sub001/internal/model"
	"github.com/CodebilityDev/codebility-plus-sub001/internal/repository"
)

var ErrChecklistItemNotFound = errors.New("checklist item not found")

// ChecklistService manages per-member onboarding checklists.
type ChecklistService interface {
	AddItem(ctx context.Context, projectID string, req *dto.CreateChecklistItemRequest, caller Caller) (*dto.ChecklistItemResponse, error)
	ToggleItem(ctx context.Context, itemID string, caller Caller) (*dto.ChecklistItemResponse, error)
	DeleteItem(ctx context.Context, itemID string, caller Caller) error
	ListForMember(ctx context.Context, projectID, userID string, caller Caller) ([]dto.ChecklistItemResponse, error)
}

type checklistService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewChecklistService creates a ChecklistService.
func NewChecklistService(repo *repository.Repository, logger *zap.Logger) ChecklistService {
	return &checklistService{repo: repo, logger: logger}
}

func (s *checklistService) AddItem(ctx context.Context, projectID string, req *dto.CreateChecklistItemRequest, caller Caller) (*dto.ChecklistItemResponse, error) {
	if _, err := requireProjectLead(ctx, s.repo, caller, projectID); err != nil {
		return nil, err
	}

	isMember, err := s.repo.Project.IsMember(ctx, projectID, req.UserID)
	if err != nil {
		s.logger.Error("membership lookup failed", zap.Error(err))
		return nil, err
	}
	if !isMember {
		return nil, ErrNotMember
	}

	item := &model.ChecklistItem{
		ProjectID: projectID,
		UserID:    req.UserID,
		Title:     req.Title,
	}
	if err := s.repo.Checklist.Create(ctx, item); err != nil {
		s.logger.Error("create checklist item failed", zap.Error(err))
		return nil, err
	}
	return toChecklistItemResponse(item), nil
}

// ToggleItem flips an item's done flag. The member themselves or the
// project's lead may toggle.
func (s *checklistService) ToggleItem(ctx context.Context, itemID string, caller Caller) (*dto.ChecklistItemResponse, error) {
	item, err := s.repo.Checklist.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChecklistItemNotFound
		}
		return nil, err
	}

	if item.UserID != caller.UserID {
		if _, err := requireProjectLead(ctx, s.repo, caller, item.ProjectID); err != nil {
			return nil, err
		}
	}

	item.Done = !item.Done
	if err := s.repo.Checklist.Update(ctx, item); err != nil {
		s.logger.Error("toggle checklist item failed", zap.Error(err))
		return nil, err
	}
	return toChecklistItemResponse(item), nil
}

func (s *checklistService) DeleteItem(ctx context.Context, itemID string, caller Caller) error {
	item, err := s.repo.Checklist.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrChecklistItemNotFound
		}
		return err
	}
	if _, err := requireProjectLead(ctx, s.repo, caller, item.ProjectID); err != nil {
		return err
	}
	return s.repo.Checklist.Delete(ctx, itemID)
}

func (s *checklistService) ListForMember(ctx context.Context, projectID, userID string, caller Caller) ([]dto.ChecklistItemResponse, error) {
	if userID != caller.UserID {
		if _, err := requireProjectLead(ctx, s.repo, caller, projectID); err != nil {
			return nil, err
		}
	}

	items, err := s.repo.Checklist.ListByMember(ctx, projectID, userID)
	if err != nil {
		s.logger.Error("list checklist failed", zap.Error(err))
		return nil, err
	}

	resp := make([]dto.ChecklistItemResponse, 0, len(items))
	for i := range items {
		resp = append(resp, *toChecklistItemResponse(&items[i]))
	}
	return resp, nil
}

func toChecklistItemResponse(item *model.ChecklistItem) *dto.ChecklistItemResponse {
	return &dto.ChecklistItemResponse{
		ID:        item.ChecklistItemID,
		ProjectID: item.ProjectID,
		UserID:    item.UserID,
		Title:     item.Title,
		Done:      item.Done,
		CreatedAt: item.CreatedAt.Format(time.RFC3339),
		UpdatedAt: item.UpdatedAt.Format(time.RFC3339),
	}
}
