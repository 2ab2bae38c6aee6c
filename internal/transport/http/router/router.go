package router

import (
	"net/http"

	"github.com/gefm2002/fuegoamigo/internal/models"
	"github.com/gefm2002/fuegoamigo/internal/repository"
	"github.com/gefm2002/fuegoamigo/internal/service"
	"github.com/gefm2002/fuegoamigo/internal/transport/http/handlers"
	"github.com/gefm2002/fuegoamigo/internal/transport/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Deps struct {
	Repo        *repository.Repository
	Orders      service.OrderService
	Auth        *service.AuthService
	Catalog     *service.CatalogService
	Config      *service.ConfigService
	Dashboard   *service.DashboardService
	CORSOrigins []string
}

func active[T any](set func(*T)) func() *T {
	return func() *T {
		row := new(T)
		set(row)
		return row
	}
}

func Router(d Deps, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(log), middleware.RequestLogger(log))

	origins := d.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
	}
	if len(origins) == 1 && origins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
		corsCfg.AllowCredentials = true
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	orderH := handlers.NewOrderHandler(d.Orders, log)
	authH := handlers.NewAuthHandler(d.Auth, log)
	catalogH := handlers.NewCatalogHandler(d.Catalog, log)
	configH := handlers.NewConfigHandler(d.Config, log)
	dashH := handlers.NewDashboardHandler(d.Dashboard, log)

	newEvent := active(func(e *models.Event) { e.IsActive = true })
	newService := active(func(s *models.Service) { s.IsActive = true })
	newPromo := active(func(p *models.Promo) { p.IsActive = true })
	newFAQ := active(func(f *models.FAQ) { f.IsActive = true })

	// Витрина
	r.POST("/orders", orderH.Create)
	r.GET("/catalog", catalogH.Catalog)
	r.GET("/categories", handlers.ListHandler(d.Repo.Categories, log))
	r.GET("/events", handlers.ListHandler(d.Repo.Events, log))
	r.GET("/services", handlers.ListHandler(d.Repo.Services, log))
	r.GET("/promos", handlers.ListHandler(d.Repo.Promos, log))
	r.GET("/faqs", handlers.ListHandler(d.Repo.FAQs, log))
	r.GET("/config", configH.Get)

	r.POST("/admin/login", authH.Login)

	admin := r.Group("/admin", middleware.AuthRequired(d.Auth, log))
	{
		admin.GET("/me", authH.Me)
		admin.GET("/dashboard", dashH.Get)

		admin.GET("/orders", orderH.List)
		admin.GET("/orders/:id", orderH.Get)
		admin.PUT("/orders/:id", orderH.Update)
		admin.POST("/orders/:id/notes", orderH.AddNote)
		admin.GET("/orders/:id/whatsapp", orderH.FollowUp)

		admin.GET("/products", catalogH.AdminProducts)
		admin.POST("/products", catalogH.UpsertProduct)
		admin.PUT("/products", catalogH.UpsertProduct)

		admin.GET("/categories", handlers.AdminListHandler(d.Repo.Categories, log))
		admin.POST("/categories", catalogH.UpsertCategory)
		admin.PUT("/categories", catalogH.UpsertCategory)

		admin.GET("/events", handlers.AdminListHandler(d.Repo.Events, log))
		admin.POST("/events", handlers.UpsertHandler(d.Repo.Events, newEvent, log))
		admin.PUT("/events", handlers.UpsertHandler(d.Repo.Events, newEvent, log))

		admin.GET("/services", handlers.AdminListHandler(d.Repo.Services, log))
		admin.POST("/services", handlers.UpsertHandler(d.Repo.Services, newService, log))
		admin.PUT("/services", handlers.UpsertHandler(d.Repo.Services, newService, log))

		admin.GET("/promos", handlers.AdminListHandler(d.Repo.Promos, log))
		admin.POST("/promos", handlers.UpsertHandler(d.Repo.Promos, newPromo, log))
		admin.PUT("/promos", handlers.UpsertHandler(d.Repo.Promos, newPromo, log))

		admin.GET("/faqs", handlers.AdminListHandler(d.Repo.FAQs, log))
		admin.POST("/faqs", handlers.UpsertHandler(d.Repo.FAQs, newFAQ, log))
		admin.PUT("/faqs", handlers.UpsertHandler(d.Repo.FAQs, newFAQ, log))
		admin.DELETE("/faqs/:id", handlers.DeleteHandler(d.Repo.FAQs, log))

		admin.GET("/config", configH.Get)
		admin.PUT("/config", configH.Update)
	}

	return r
}
