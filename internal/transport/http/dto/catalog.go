package dto

import (
	"strings"

	"github.com/gefm2002/fuegoamigo/internal/models"
	"github.com/gefm2002/fuegoamigo/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductRequest struct {
	ID                 string      `json:"id"`
	Slug               string      `json:"slug"`
	Name               string      `json:"name"`
	Description        string      `json:"description"`
	Price              LooseNumber `json:"price"`
	ProductType        string      `json:"product_type"`
	CategoryID         string      `json:"category_id"`
	Images             []string    `json:"images"`
	Tags               []string    `json:"tags"`
	Variants           []string    `json:"variants"`
	Stock              LooseNumber `json:"stock"`
	IsActive           *bool       `json:"is_active"`
	Featured           bool        `json:"featured"`
	DiscountFixed      LooseNumber `json:"discount_fixed"`
	DiscountPercentage LooseNumber `json:"discount_percentage"`
	IsOffer            bool        `json:"is_offer"`
	IsMadeToOrder      bool        `json:"is_made_to_order"`
}

// ParseOptionalUUID: пустая строка: nil, мусор: ошибка.
func ParseOptionalUUID(s string) (*uuid.UUID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (r ProductRequest) ToInput() (service.ProductInput, []FieldError) {
	var bad []FieldError
	id, err := ParseOptionalUUID(r.ID)
	if err != nil {
		bad = append(bad, FieldError{Field: "id", Message: "must be a UUID", Tag: "invalid"})
	}
	cat, err := ParseOptionalUUID(r.CategoryID)
	if err != nil {
		bad = append(bad, FieldError{Field: "category_id", Message: "must be a UUID", Tag: "invalid"})
	}
	return service.ProductInput{
		ID:                 id,
		Slug:               r.Slug,
		Name:               r.Name,
		Description:        r.Description,
		Price:              r.Price.DecimalPtr(),
		ProductType:        r.ProductType,
		CategoryID:         cat,
		Images:             r.Images,
		Tags:               r.Tags,
		Variants:           r.Variants,
		Stock:              r.Stock.IntOr(0),
		IsActive:           r.IsActive,
		Featured:           r.Featured,
		DiscountFixed:      r.DiscountFixed.DecimalOr(decimal.Zero),
		DiscountPercentage: r.DiscountPercentage.DecimalOr(decimal.Zero),
		IsOffer:            r.IsOffer,
		IsMadeToOrder:      r.IsMadeToOrder,
	}, bad
}

type SiteConfigRequest struct {
	BrandName       *string            `json:"brand_name"`
	Whatsapp        *string            `json:"whatsapp"`
	Email           *string            `json:"email"`
	Address         *string            `json:"address"`
	Zone            *string            `json:"zone"`
	Hours           *models.StringMap  `json:"hours"`
	PaymentMethods  *models.StringList `json:"payment_methods"`
	DeliveryOptions *models.StringList `json:"delivery_options"`
	WaTemplates     *models.StringMap  `json:"wa_templates"`
	HomeHeroImage   *string            `json:"home_hero_image"`
	EventsHeroImage *string            `json:"events_hero_image"`
}

func (r SiteConfigRequest) ToPatch() service.SiteConfigPatch {
	return service.SiteConfigPatch{
		BrandName:       r.BrandName,
		Whatsapp:        r.Whatsapp,
		Email:           r.Email,
		Address:         r.Address,
		Zone:            r.Zone,
		Hours:           r.Hours,
		PaymentMethods:  r.PaymentMethods,
		DeliveryOptions: r.DeliveryOptions,
		WaTemplates:     r.WaTemplates,
		HomeHeroImage:   r.HomeHeroImage,
		EventsHeroImage: r.EventsHeroImage,
	}
}
