package repository

import (
	"context"

	"github.com/gefm2002/fuegoamigo/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderEventRepo: таймлайн статусов. Только вставка и чтение: события не меняются и не удаляются.
type OrderEventRepo interface {
	Create(ctx context.Context, e *models.OrderEvent) error
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.OrderEvent, error)
}

type orderEventRepo struct{ db *gorm.DB }

func NewOrderEventRepo(db *gorm.DB) OrderEventRepo { return &orderEventRepo{db: db} }

func (r *orderEventRepo) Create(ctx context.Context, e *models.OrderEvent) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *orderEventRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.OrderEvent, error) {
	rows := []models.OrderEvent{}
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").Order("id ASC").
		Find(&rows).Error
	return rows, err
}
