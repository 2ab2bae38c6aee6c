package repository

import (
	"context"
	"errors"

	"github.com/gefm2002/fuegoamigo/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SiteConfigRepo interface {
	// Get возвращает nil, nil пока настройки не созданы.
	Get(ctx context.Context) (*models.SiteConfig, error)
	Create(ctx context.Context, c *models.SiteConfig) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
}

type siteConfigRepo struct{ db *gorm.DB }

func NewSiteConfigRepo(db *gorm.DB) SiteConfigRepo { return &siteConfigRepo{db: db} }

func (r *siteConfigRepo) Get(ctx context.Context) (*models.SiteConfig, error) {
	var c models.SiteConfig
	err := r.db.WithContext(ctx).Order("created_at ASC").Limit(1).Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *siteConfigRepo) Create(ctx context.Context, c *models.SiteConfig) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *siteConfigRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.SiteConfig{}).Where("id = ?", id).Updates(fields).Error
}
