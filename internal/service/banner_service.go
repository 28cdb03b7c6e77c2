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

var (
	ErrBannerNotFound   = errors.New("banner not found")
	ErrInvalidDateRange = errors.New("ends_at must be after starts_at")
)

// BannerService manages news banners. Writes are admin-only; the active
// listing is what the portal home page renders.
type BannerService interface {
	Create(ctx context.Context, req *dto.CreateBannerRequest, caller Caller) (*dto.BannerResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateBannerRequest, caller Caller) (*dto.BannerResponse, error)
	Delete(ctx context.Context, id string, caller Caller) error
	ListAll(ctx context.Context, caller Caller) ([]dto.BannerResponse, error)
	ListActive(ctx context.Context) ([]dto.BannerResponse, error)
}

type bannerService struct {
	repo   *repository.Repository
	logger *zap.Logger

	now func() time.Time
}

// NewBannerService creates a BannerService.
func NewBannerService(repo *repository.Repository, logger *zap.Logger) BannerService {
	return &bannerService{repo: repo, logger: logger, now: time.Now}
}

func (s *bannerService) Create(ctx context.Context, req *dto.CreateBannerRequest, caller Caller) (*dto.BannerResponse, error) {
	if !caller.IsAdmin() {
		return nil, ErrAdminRequired
	}

	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	endsAt, err := time.Parse(time.RFC3339, req.EndsAt)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	if !endsAt.After(startsAt) {
		return nil, ErrInvalidDateRange
	}

	banner := &model.NewsBanner{
		Title:    req.Title,
		Body:     req.Body,
		StartsAt: startsAt,
		EndsAt:   endsAt,
		IsActive: true,
	}
	if err := s.repo.Banner.Create(ctx, banner); err != nil {
		s.logger.Error("create banner failed", zap.Error(err))
		return nil, err
	}
	return toBannerResponse(banner), nil
}

func (s *bannerService) Update(ctx context.Context, id string, req *dto.UpdateBannerRequest, caller Caller) (*dto.BannerResponse, error) {
	if !caller.IsAdmin() {
		return nil, ErrAdminRequired
	}

	banner, err := s.repo.Banner.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBannerNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		banner.Title = *req.Title
	}
	if req.Body != nil {
		banner.Body = *req.Body
	}
	if req.StartsAt != nil {
		t, err := time.Parse(time.RFC3339, *req.StartsAt)
		if err != nil {
			return nil, ErrInvalidDateRange
		}
		banner.StartsAt = t
	}
	if req.EndsAt != nil {
		t, err := time.Parse(time.RFC3339, *req.EndsAt)
		if err != nil {
			return nil, ErrInvalidDateRange
		}
		banner.EndsAt = t
	}
	if !banner.EndsAt.After(banner.StartsAt) {
		return nil, ErrInvalidDateRange
	}
	if req.IsActive != nil {
		banner.IsActive = *req.IsActive
	}

	if err := s.repo.Banner.Update(ctx, banner); err != nil {
		s.logger.Error("update banner failed", zap.Error(err))
		return nil, err
	}
	return toBannerResponse(banner), nil
}

func (s *bannerService) Delete(ctx context.Context, id string, caller Caller) error {
	if !caller.IsAdmin() {
		return ErrAdminRequired
	}
	if _, err := s.repo.Banner.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBannerNotFound
		}
		return err
	}
	return s.repo.Banner.Delete(ctx, id)
}

func (s *bannerService) ListAll(ctx context.Context, caller Caller) ([]dto.BannerResponse, error) {
	if !caller.IsAdmin() {
		return nil, ErrAdminRequired
	}
	banners, err := s.repo.Banner.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toBannerResponses(banners), nil
}

func (s *bannerService) ListActive(ctx context.Context) ([]dto.BannerResponse, error) {
	banners, err := s.repo.Banner.ListActive(ctx, s.now())
	if err != nil {
		return nil, err
	}
	return toBannerResponses(banners), nil
}

func toBannerResponse(b *model.NewsBanner) *dto.BannerResponse {
	return &dto.BannerResponse{
		ID:       b.BannerID,
		Title:    b.Title,
		Body:     b.Body,
		StartsAt: b.StartsAt.Format(time.RFC3339),
		EndsAt:   b.EndsAt.Format(time.RFC3339),
		IsActive: b.IsActive,
	}
}

func toBannerResponses(banners []model.NewsBanner) []dto.BannerResponse {
	resp := make([]dto.BannerResponse, 0, len(banners))
	for i := range banners {
		resp = append(resp, *toBannerResponse(&banners[i]))
	}
	return resp
}
