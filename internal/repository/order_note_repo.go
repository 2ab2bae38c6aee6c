package repository

import (
	"context"

	"github.com/gefm2002/fuegoamigo/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderNoteRepo interface {
	Create(ctx context.Context, n *models.OrderNote) error
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.OrderNote, error)
}

type orderNoteRepo struct{ db *gorm.DB }

func NewOrderNoteRepo(db *gorm.DB) OrderNoteRepo { return &orderNoteRepo{db: db} }

func (r *orderNoteRepo) Create(ctx context.Context, n *models.OrderNote) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *orderNoteRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.OrderNote, error) {
	rows := []models.OrderNote{}
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").Order("id ASC").
		Find(&rows).Error
	return rows, err
}
