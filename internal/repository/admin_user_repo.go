package repository

import (
	"context"
	"errors"

	"github.com/gefm2002/fuegoamigo/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminUserRepo interface {
	Create(ctx context.Context, u *models.AdminUser) error
	GetActiveByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
}

type adminUserRepo struct{ db *gorm.DB }

func NewAdminUserRepo(db *gorm.DB) AdminUserRepo { return &adminUserRepo{db: db} }

func (r *adminUserRepo) Create(ctx context.Context, u *models.AdminUser) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *adminUserRepo) GetActiveByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var u models.AdminUser
	err := r.db.WithContext(ctx).
		Where("lower(email) = lower(?) AND is_active = ?", email, true).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *adminUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error) {
	var u models.AdminUser
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *adminUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return r.db.WithContext(ctx).Model(&models.AdminUser{}).
		Where("id = ?", id).
		Updates(map[string]any{"password_hash": hash, "is_active": true}).Error
}
