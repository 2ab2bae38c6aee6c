package service

import (
	"context"
	"time"

	"github.com/gefm2002/fuegoamigo/internal/models"
	"github.com/gefm2002/fuegoamigo/internal/repository"
)

// SiteConfigPatch: nil: поле не менять.
type SiteConfigPatch struct {
	BrandName       *string
	Whatsapp        *string
	Email           *string
	Address         *string
	Zone            *string
	Hours           *models.StringMap
	PaymentMethods  *models.StringList
	DeliveryOptions *models.StringList
	WaTemplates     *models.StringMap
	HomeHeroImage   *string
	EventsHeroImage *string
}

func (p SiteConfigPatch) fields() map[string]any {
	out := map[string]any{}
	set := func(col string, v *string) {
		if v != nil {
			out[col] = *v
		}
	}
	set("brand_name", p.BrandName)
	set("whatsapp", p.Whatsapp)
	set("email", p.Email)
	set("address", p.Address)
	set("zone", p.Zone)
	set("home_hero_image", p.HomeHeroImage)
	set("events_hero_image", p.EventsHeroImage)
	if p.Hours != nil {
		out["hours"] = *p.Hours
	}
	if p.PaymentMethods != nil {
		out["payment_methods"] = *p.PaymentMethods
	}
	if p.DeliveryOptions != nil {
		out["delivery_options"] = *p.DeliveryOptions
	}
	if p.WaTemplates != nil {
		out["wa_templates"] = *p.WaTemplates
	}
	return out
}

type ConfigService struct {
	repo repository.SiteConfigRepo
	now  func() time.Time
}

func NewConfigService(repo repository.SiteConfigRepo) *ConfigService {
	return &ConfigService{repo: repo, now: time.Now}
}

// Get никогда не отдаёт пустоту: без строки в базе возвращаются значения по умолчанию.
func (s *ConfigService) Get(ctx context.Context) (*models.SiteConfig, error) {
	c, err := s.repo.Get(ctx)
	if err != nil {
		return nil, persistErr("get site config", err)
	}
	if c == nil {
		def := models.DefaultSiteConfig()
		return &def, nil
	}
	return c, nil
}

func (s *ConfigService) Update(ctx context.Context, patch SiteConfigPatch) (*models.SiteConfig, error) {
	if _, err := requireStaff(ctx); err != nil {
		return nil, err
	}
	cur, err := s.repo.Get(ctx)
	if err != nil {
		return nil, persistErr("get site config", err)
	}

	if cur == nil {
		c := models.DefaultSiteConfig()
		applyConfigPatch(&c, patch)
		if c.BrandName == "" {
			c.BrandName = models.DefaultSiteConfig().BrandName
		}
		if err := s.repo.Create(ctx, &c); err != nil {
			return nil, persistErr("create site config", err)
		}
		return &c, nil
	}

	fields := patch.fields()
	fields["updated_at"] = s.now()
	if err := s.repo.UpdateFields(ctx, cur.ID, fields); err != nil {
		return nil, persistErr("update site config", err)
	}
	return s.Get(ctx)
}

func applyConfigPatch(c *models.SiteConfig, p SiteConfigPatch) {
	if p.BrandName != nil {
		c.BrandName = *p.BrandName
	}
	if p.Whatsapp != nil {
		c.Whatsapp = *p.Whatsapp
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Address != nil {
		c.Address = *p.Address
	}
	if p.Zone != nil {
		c.Zone = *p.Zone
	}
	if p.Hours != nil {
		c.Hours = *p.Hours
	}
	if p.PaymentMethods != nil {
		c.PaymentMethods = *p.PaymentMethods
	}
	if p.DeliveryOptions != nil {
		c.DeliveryOptions = *p.DeliveryOptions
	}
	if p.WaTemplates != nil {
		c.WaTemplates = *p.WaTemplates
	}
	if p.HomeHeroImage != nil {
		c.HomeHeroImage = *p.HomeHeroImage
	}
	if p.EventsHeroImage != nil {
		c.EventsHeroImage = *p.EventsHeroImage
	}
}
