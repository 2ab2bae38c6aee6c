package repository

import (
	"github.com/gefm2002/fuegoamigo/internal/models"

	"gorm.io/gorm"
)

type Repository struct {
	DB          *gorm.DB
	Orders      OrderRepo
	OrderEvents OrderEventRepo
	OrderNotes  OrderNoteRepo
	Products    ProductRepo
	Categories  CatalogRepo[models.Category]
	Events      CatalogRepo[models.Event]
	Services    CatalogRepo[models.Service]
	Promos      CatalogRepo[models.Promo]
	FAQs        CatalogRepo[models.FAQ]
	SiteConfig  SiteConfigRepo
	AdminUsers  AdminUserRepo
}

func buildRepository(db *gorm.DB) *Repository {
	return &Repository{
		DB:          db,
		Orders:      NewOrderRepo(db),
		OrderEvents: NewOrderEventRepo(db),
		OrderNotes:  NewOrderNoteRepo(db),
		Products:    NewProductRepo(db),
		Categories:  NewCatalogRepo[models.Category](db, "sort_order ASC, name ASC"),
		Events:      NewCatalogRepo[models.Event](db, "created_at DESC"),
		Services:    NewCatalogRepo[models.Service](db, "sort_order ASC, title ASC"),
		Promos:      NewCatalogRepo[models.Promo](db, "created_at DESC"),
		FAQs:        NewCatalogRepo[models.FAQ](db, "sort_order ASC, created_at ASC"),
		SiteConfig:  NewSiteConfigRepo(db),
		AdminUsers:  NewAdminUserRepo(db),
	}
}

func New(db *gorm.DB) *Repository { return buildRepository(db) }
