package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gefm2002/fuegoamigo/internal/models"
	"github.com/gefm2002/fuegoamigo/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const catalogVersionKey = "catalog:version"

// ProductView: товар витрины с итоговой ценой после скидок.
type ProductView struct {
	models.Product
	FinalPrice decimal.Decimal `json:"final_price"`
}

type ProductInput struct {
	ID                 *uuid.UUID
	Slug               string
	Name               string
	Description        string
	Price              *decimal.Decimal
	ProductType        string
	CategoryID         *uuid.UUID
	Images             []string
	Tags               []string
	Variants           []string
	Stock              int
	IsActive           *bool
	Featured           bool
	DiscountFixed      decimal.Decimal
	DiscountPercentage decimal.Decimal
	IsOffer            bool
	IsMadeToOrder      bool
}

type CatalogService struct {
	repo  *repository.Repository
	cache CacheClient // nil: без кэша
	ttl   time.Duration
	log   *zap.Logger
}

func NewCatalogService(repo *repository.Repository, cache CacheClient, ttl time.Duration, log *zap.Logger) *CatalogService {
	return &CatalogService{repo: repo, cache: cache, ttl: ttl, log: log}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func writeErr(op string, err error) error {
	if isUniqueViolation(err) {
		return ErrSlugTaken
	}
	return persistErr(op, err)
}

func (s *CatalogService) catalogKey(ctx context.Context, category string, featured bool) string {
	version := "0"
	if v, err := s.cache.Get(ctx, catalogVersionKey); err == nil && v != "" {
		version = v
	}
	return "catalog:v" + version + ":" + category + ":" + strconv.FormatBool(featured)
}

// PublicCatalog: активные товары, новые первыми. Ответ кэшируется до следующей записи в каталог.
func (s *CatalogService) PublicCatalog(ctx context.Context, category string, featured bool) ([]ProductView, error) {
	category = strings.TrimSpace(category)

	var key string
	if s.cache != nil {
		key = s.catalogKey(ctx, category, featured)
		if raw, err := s.cache.Get(ctx, key); err == nil {
			var cached []ProductView
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	list, err := s.repo.Products.List(ctx, repository.ProductListFilter{
		CategorySlug: category,
		OnlyActive:   true,
		Featured:     featured,
	})
	if err != nil {
		return nil, persistErr("list products", err)
	}

	out := make([]ProductView, 0, len(list))
	for _, p := range list {
		out = append(out, ProductView{Product: p, FinalPrice: p.FinalPrice()})
	}

	if s.cache != nil {
		if raw, err := json.Marshal(out); err == nil {
			if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
				s.log.Warn("catalog cache set failed", zap.Error(err))
			}
		}
	}
	return out, nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Incr(ctx, catalogVersionKey, 0); err != nil {
		s.log.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}

func (s *CatalogService) UpsertProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if _, err := requireStaff(ctx); err != nil {
		return nil, err
	}

	ve := &ValidationError{}
	if strings.TrimSpace(in.Name) == "" {
		ve.Missing = append(ve.Missing, "name")
	}
	if in.Price == nil {
		ve.Missing = append(ve.Missing, "price")
	}
	if !ve.empty() {
		return nil, ve
	}
	if len(in.Images) > models.MaxProductImages {
		return nil, ErrTooManyImages
	}

	p := &models.Product{
		Slug:               strings.TrimSpace(in.Slug),
		Name:               strings.TrimSpace(in.Name),
		Description:        in.Description,
		Price:              *in.Price,
		ProductType:        in.ProductType,
		CategoryID:         in.CategoryID,
		Images:             models.StringList(in.Images),
		Tags:               models.StringList(in.Tags),
		Variants:           models.StringList(in.Variants),
		Stock:              in.Stock,
		IsActive:           true,
		Featured:           in.Featured,
		DiscountFixed:      in.DiscountFixed,
		DiscountPercentage: in.DiscountPercentage,
		IsOffer:            in.IsOffer,
		IsMadeToOrder:      in.IsMadeToOrder,
	}
	if p.Slug == "" {
		p.Slug = Slugify(p.Name)
	}
	if p.ProductType == "" {
		p.ProductType = "standard"
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if p.Images == nil {
		p.Images = models.StringList{}
	}
	if p.Tags == nil {
		p.Tags = models.StringList{}
	}
	if p.Variants == nil {
		p.Variants = models.StringList{}
	}

	if in.ID == nil {
		if err := s.repo.Products.Create(ctx, p); err != nil {
			return nil, writeErr("create product", err)
		}
	} else {
		p.ID = *in.ID
		n, err := s.repo.Products.Update(ctx, p)
		if err != nil {
			return nil, writeErr("update product", err)
		}
		if n == 0 {
			return nil, ErrNotFound
		}
	}
	s.invalidate(ctx)

	saved, err := s.repo.Products.GetByID(ctx, p.ID)
	if err != nil {
		return nil, persistErr("get product", err)
	}
	if saved == nil {
		return nil, ErrNotFound
	}
	return saved, nil
}

// ListPublic отдаёт активные строки справочника в порядке витрины.
func ListPublic[T repository.CatalogEntity](ctx context.Context, repo repository.CatalogRepo[T]) ([]T, error) {
	list, err := repo.List(ctx, true)
	if err != nil {
		return nil, persistErr("list catalog", err)
	}
	return list, nil
}

// ListAll: для админки, включая скрытые.
func ListAll[T repository.CatalogEntity](ctx context.Context, repo repository.CatalogRepo[T]) ([]T, error) {
	if _, err := requireStaff(ctx); err != nil {
		return nil, err
	}
	list, err := repo.List(ctx, false)
	if err != nil {
		return nil, persistErr("list catalog", err)
	}
	return list, nil
}

// Upsert создаёт строку, если id не задан, иначе перезаписывает существующую.
func Upsert[T repository.CatalogEntity](ctx context.Context, repo repository.CatalogRepo[T], id *uuid.UUID, row *T) (*T, error) {
	if _, err := requireStaff(ctx); err != nil {
		return nil, err
	}
	if err := validateCatalogRow(row); err != nil {
		return nil, err
	}

	if id == nil {
		if err := repo.Create(ctx, row); err != nil {
			return nil, writeErr("create catalog row", err)
		}
		return row, nil
	}

	n, err := repo.Update(ctx, *id, row)
	if err != nil {
		return nil, writeErr("update catalog row", err)
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	saved, err := repo.GetByID(ctx, *id)
	if err != nil {
		return nil, persistErr("get catalog row", err)
	}
	if saved == nil {
		return nil, ErrNotFound
	}
	return saved, nil
}

func Delete[T repository.CatalogEntity](ctx context.Context, repo repository.CatalogRepo[T], id uuid.UUID) error {
	if _, err := requireStaff(ctx); err != nil {
		return err
	}
	ok, err := repo.Delete(ctx, id)
	if err != nil {
		return persistErr("delete catalog row", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// validateCatalogRow проверяет обязательные поля и дописывает slug.
func validateCatalogRow(row any) error {
	ve := &ValidationError{}
	need := func(field, v string) {
		if strings.TrimSpace(v) == "" {
			ve.Missing = append(ve.Missing, field)
		}
	}
	switch r := row.(type) {
	case *models.Category:
		need("name", r.Name)
		if r.Slug == "" {
			r.Slug = Slugify(r.Name)
		}
	case *models.Service:
		need("title", r.Title)
		if r.Slug == "" {
			r.Slug = Slugify(r.Title)
		}
	case *models.Event:
		need("title", r.Title)
		if r.Images == nil {
			r.Images = models.StringList{}
		}
	case *models.Promo:
		need("bank", r.Bank)
		if r.PaymentMeans == nil {
			r.PaymentMeans = models.StringList{}
		}
	case *models.FAQ:
		need("question", r.Question)
		need("answer", r.Answer)
	}
	if ve.empty() {
		return nil
	}
	return ve
}

// UpsertCategory дополнительно сбрасывает кэш витрины: в ответе каталога есть категория товара.
func (s *CatalogService) UpsertCategory(ctx context.Context, id *uuid.UUID, row *models.Category) (*models.Category, error) {
	saved, err := Upsert(ctx, s.repo.Categories, id, row)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return saved, nil
}

// AdminProducts: все товары, включая скрытые.
func (s *CatalogService) AdminProducts(ctx context.Context) ([]models.Product, error) {
	if _, err := requireStaff(ctx); err != nil {
		return nil, err
	}
	list, err := s.repo.Products.List(ctx, repository.ProductListFilter{})
	if err != nil {
		return nil, persistErr("list products", err)
	}
	return list, nil
}
