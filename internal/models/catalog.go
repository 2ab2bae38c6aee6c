package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const MaxProductImages = 5

type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Slug        string    `gorm:"type:text;not null;uniqueIndex" json:"slug"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	Description string    `gorm:"type:text;not null;default:''" json:"description"`
	Image       string    `gorm:"type:text;not null;default:''" json:"image"`
	IsActive    bool      `gorm:"not null;index" json:"is_active"`
	SortOrder   int       `gorm:"not null;default:0" json:"order"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Category) TableName() string { return "categories" }

type Product struct {
	ID                 uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Slug               string          `gorm:"type:text;not null;uniqueIndex" json:"slug"`
	Name               string          `gorm:"type:text;not null" json:"name"`
	Description        string          `gorm:"type:text;not null;default:''" json:"description"`
	Price              decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"price"`
	ProductType        string          `gorm:"type:text;not null;default:'standard'" json:"product_type"`
	CategoryID         *uuid.UUID      `gorm:"type:uuid;index" json:"category_id"`
	Category           *Category       `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Images             StringList      `gorm:"type:jsonb;not null;default:'[]'" json:"images"`
	Tags               StringList      `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
	Variants           StringList      `gorm:"type:jsonb;not null;default:'[]'" json:"variants"`
	Stock              int             `gorm:"not null;default:0" json:"stock"`
	IsActive           bool            `gorm:"not null;index" json:"is_active"`
	Featured           bool            `gorm:"not null;default:false" json:"featured"`
	DiscountFixed      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"discount_fixed"`
	DiscountPercentage decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0" json:"discount_percentage"`
	IsOffer            bool            `gorm:"not null;default:false" json:"is_offer"`
	IsMadeToOrder      bool            `gorm:"not null;default:false" json:"is_made_to_order"`
	CreatedAt          time.Time       `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"not null;default:now()" json:"updated_at"`
}

func (Product) TableName() string { return "products" }

var hundred = decimal.NewFromInt(100)

// FinalPrice применяет фиксированную скидку, затем процентную. Ниже нуля цена не опускается.
// Это цена, которую витрина кладёт в корзину.
func (p Product) FinalPrice() decimal.Decimal {
	price := p.Price.Sub(p.DiscountFixed)
	if p.DiscountPercentage.IsPositive() {
		factor := hundred.Sub(p.DiscountPercentage).Div(hundred)
		price = price.Mul(factor)
	}
	if price.IsNegative() {
		return decimal.Zero
	}
	return price.Round(2)
}

type Event struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title         string     `gorm:"type:text;not null" json:"title"`
	EventType     string     `gorm:"type:text;not null;default:''" json:"event_type"`
	Location      string     `gorm:"type:text;not null;default:''" json:"location"`
	GuestsRange   string     `gorm:"type:text;not null;default:''" json:"guests_range"`
	HighlightMenu string     `gorm:"type:text;not null;default:''" json:"highlight_menu"`
	Description   string     `gorm:"type:text;not null;default:''" json:"description"`
	Images        StringList `gorm:"type:jsonb;not null;default:'[]'" json:"images"`
	IsActive      bool       `gorm:"not null;index" json:"is_active"`
	SortOrder     int        `gorm:"not null;default:0" json:"order"`
	CreatedAt     time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (Event) TableName() string { return "events" }

type Service struct {
	ID               uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Slug             string    `gorm:"type:text;not null;uniqueIndex" json:"slug"`
	Title            string    `gorm:"type:text;not null" json:"title"`
	ShortDescription string    `gorm:"type:text;not null;default:''" json:"short_description"`
	LongDescription  string    `gorm:"type:text;not null;default:''" json:"long_description"`
	Image            string    `gorm:"type:text;not null;default:''" json:"image"`
	IsActive         bool      `gorm:"not null;index" json:"is_active"`
	SortOrder        int       `gorm:"not null;default:0" json:"order"`
	CreatedAt        time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Service) TableName() string { return "services" }

// Promo: банковская акция (reintegro) на витрине.
type Promo struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Bank         string          `gorm:"type:text;not null" json:"bank"`
	Day          string          `gorm:"type:text;not null;default:''" json:"day"`
	RefundCap    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"refund_cap"`
	Percentage   decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0" json:"percentage"`
	PaymentMeans StringList      `gorm:"type:jsonb;not null;default:'[]'" json:"payment_means"`
	Validity     string          `gorm:"type:text;not null;default:''" json:"validity"`
	IsActive     bool            `gorm:"not null;index" json:"is_active"`
	SortOrder    int             `gorm:"not null;default:0" json:"order"`
	CreatedAt    time.Time       `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null;default:now()" json:"updated_at"`
}

func (Promo) TableName() string { return "promos" }

type FAQ struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Question  string    `gorm:"type:text;not null" json:"question"`
	Answer    string    `gorm:"type:text;not null" json:"answer"`
	IsActive  bool      `gorm:"not null;index" json:"is_active"`
	SortOrder int       `gorm:"not null;default:0" json:"order"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (FAQ) TableName() string { return "faqs" }

// SiteConfig: единственная строка с настройками витрины.
type SiteConfig struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BrandName       string     `gorm:"type:text;not null;default:'Fuego Amigo'" json:"brand_name"`
	Whatsapp        string     `gorm:"type:text;not null;default:''" json:"whatsapp"`
	Email           string     `gorm:"type:text;not null;default:''" json:"email"`
	Address         string     `gorm:"type:text;not null;default:''" json:"address"`
	Zone            string     `gorm:"type:text;not null;default:''" json:"zone"`
	Hours           StringMap  `gorm:"type:jsonb;not null;default:'{}'" json:"hours"`
	PaymentMethods  StringList `gorm:"type:jsonb;not null;default:'[]'" json:"payment_methods"`
	DeliveryOptions StringList `gorm:"type:jsonb;not null;default:'[]'" json:"delivery_options"`
	WaTemplates     StringMap  `gorm:"type:jsonb;not null;default:'{}'" json:"wa_templates"`
	HomeHeroImage   string     `gorm:"type:text;not null;default:''" json:"home_hero_image"`
	EventsHeroImage string     `gorm:"type:text;not null;default:''" json:"events_hero_image"`
	CreatedAt       time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (SiteConfig) TableName() string { return "site_config" }

// DefaultSiteConfig отдаётся, пока строка настроек не создана.
func DefaultSiteConfig() SiteConfig {
	return SiteConfig{
		BrandName:       "Fuego Amigo",
		Hours:           StringMap{},
		PaymentMethods:  StringList{},
		DeliveryOptions: StringList{},
		WaTemplates:     StringMap{},
	}
}

type AdminUser struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email        string    `gorm:"type:text;not null" json:"email"`
	PasswordHash string    `gorm:"type:text;not null" json:"-"`
	Role         string    `gorm:"type:text;not null;default:'admin'" json:"role"`
	IsActive     bool      `gorm:"not null" json:"is_active"`
	CreatedAt    time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (AdminUser) TableName() string { return "admin_users" }
