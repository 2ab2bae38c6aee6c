package repository

import (
	"context"
	"errors"

	"github.com/gefm2002/fuegoamigo/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductListFilter struct {
	CategorySlug string
	OnlyActive   bool
	Featured     bool
}

type ProductRepo interface {
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) (int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, f ProductListFilter) ([]models.Product, error)
	CountActive(ctx context.Context) (int64, error)
}

type productRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) ProductRepo { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).Omit("Category").Create(p).Error
}

// Update перезаписывает все колонки, включая нулевые (false, 0): форма админки присылает товар целиком.
func (r *productRepo) Update(ctx context.Context, p *models.Product) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", p.ID).
		Select("*").Omit("id", "created_at", "Category").
		Updates(p)
	return tx.RowsAffected, tx.Error
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).Preload("Category").First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) List(ctx context.Context, f ProductListFilter) ([]models.Product, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{}).Preload("Category")
	if f.OnlyActive {
		q = q.Where("is_active = ?", true)
	}
	// Неизвестный slug фильтр не применяет: витрина показывает весь каталог.
	if f.CategorySlug != "" {
		var ids []uuid.UUID
		if err := r.db.WithContext(ctx).Model(&models.Category{}).Where("slug = ?", f.CategorySlug).Pluck("id", &ids).Error; err != nil {
			return nil, err
		}
		if len(ids) > 0 {
			q = q.Where("category_id IN ?", ids)
		}
	}
	if f.Featured {
		q = q.Where("featured = ?", true)
	}
	list := []models.Product{}
	err := q.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *productRepo) CountActive(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Where("is_active = ?", true).Count(&cnt).Error
	return cnt, err
}
