package repository

import (
	"context"
	"errors"

	"github.com/gefm2002/fuegoamigo/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogEntity: простые справочники витрины без собственной логики.
type CatalogEntity interface {
	models.Category | models.Event | models.Service | models.Promo | models.FAQ
}

type CatalogRepo[T CatalogEntity] interface {
	Create(ctx context.Context, row *T) error
	Update(ctx context.Context, id uuid.UUID, row *T) (int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*T, error)
	List(ctx context.Context, onlyActive bool) ([]T, error)
	CountActive(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type catalogRepo[T CatalogEntity] struct {
	db      *gorm.DB
	orderBy string
}

// NewCatalogRepo: orderBy задаёт сортировку публичного списка ("sort_order ASC", "created_at DESC").
func NewCatalogRepo[T CatalogEntity](db *gorm.DB, orderBy string) CatalogRepo[T] {
	return &catalogRepo[T]{db: db, orderBy: orderBy}
}

func (r *catalogRepo[T]) Create(ctx context.Context, row *T) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *catalogRepo[T]) Update(ctx context.Context, id uuid.UUID, row *T) (int64, error) {
	tx := r.db.WithContext(ctx).Model(new(T)).
		Where("id = ?", id).
		Select("*").Omit("id", "created_at").
		Updates(row)
	return tx.RowsAffected, tx.Error
}

func (r *catalogRepo[T]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	row := new(T)
	err := r.db.WithContext(ctx).First(row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (r *catalogRepo[T]) List(ctx context.Context, onlyActive bool) ([]T, error) {
	q := r.db.WithContext(ctx).Model(new(T))
	if onlyActive {
		q = q.Where("is_active = ?", true)
	}
	list := []T{}
	err := q.Order(r.orderBy).Find(&list).Error
	return list, err
}

func (r *catalogRepo[T]) CountActive(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(new(T)).Where("is_active = ?", true).Count(&cnt).Error
	return cnt, err
}

func (r *catalogRepo[T]) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	return tx.RowsAffected > 0, tx.Error
}
