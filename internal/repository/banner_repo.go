package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/CodebilityDev/codebility-plus-sub001/internal/model"
)

// BannerRepository is the news-banner data-access interface.
type BannerRepository interface {
	Create(ctx context.Context, banner *model.NewsBanner) error
	GetByID(ctx context.Context, id string) (*model.NewsBanner, error)
	Update(ctx context.Context, banner *model.NewsBanner) error
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]model.NewsBanner, error)
	ListActive(ctx context.Context, now time.Time) ([]model.NewsBanner, error)
}

type bannerRepo struct {
	db *gorm.DB
}

// NewBannerRepo creates the GORM-backed BannerRepository.
func NewBannerRepo(db *gorm.DB) BannerRepository {
	return &bannerRepo{db: db}
}

func (r *bannerRepo) Create(ctx context.Context, banner *model.NewsBanner) error {
	return r.db.WithContext(ctx).Create(banner).Error
}

func (r *bannerRepo) GetByID(ctx context.Context, id string) (*model.NewsBanner, error) {
	var banner model.NewsBanner
	err := r.db.WithContext(ctx).
		Where("banner_id = ?", id).
		First(&banner).Error
	if err != nil {
		return nil, err
	}
	return &banner, nil
}

func (r *bannerRepo) Update(ctx context.Context, banner *model.NewsBanner) error {
	return r.db.WithContext(ctx).Save(banner).Error
}

func (r *bannerRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("banner_id = ?", id).
		Delete(&model.NewsBanner{}).Error
}

func (r *bannerRepo) ListAll(ctx context.Context) ([]model.NewsBanner, error) {
	var banners []model.NewsBanner
	err := r.db.WithContext(ctx).
		Order("starts_at DESC").
		Find(&banners).Error
	return banners, err
}

func (r *bannerRepo) ListActive(ctx context.Context, now time.Time) ([]model.NewsBanner, error) {
	var banners []model.NewsBanner
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND starts_at <= ? AND ends_at >= ?", true, now, now).
		Order("starts_at DESC").
		Find(&banners).Error
	return banners, err
}
