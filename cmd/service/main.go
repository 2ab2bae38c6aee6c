package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gefm2002/fuegoamigo/config"
	"github.com/gefm2002/fuegoamigo/internal/cache"
	"github.com/gefm2002/fuegoamigo/internal/hashing"
	"github.com/gefm2002/fuegoamigo/internal/producer"
	"github.com/gefm2002/fuegoamigo/internal/repository"
	"github.com/gefm2002/fuegoamigo/internal/service"
	"github.com/gefm2002/fuegoamigo/internal/token"
	"github.com/gefm2002/fuegoamigo/internal/transport/http/router"
	"github.com/gefm2002/fuegoamigo/pkg/database"
	"github.com/gefm2002/fuegoamigo/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	if !isDev {
		gin.SetMode(gin.ReleaseMode)
	}

	cfg := config.Load(log)
	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	repos := repository.New(db)

	// Кэш и шина событий необязательны: без них сервис работает напрямую с базой.
	var cacheClient service.CacheClient
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
		if err != nil {
			log.Fatal("failed to create redis client", zap.Error(err))
		}
		defer redisClient.Close()
		cacheClient = redisClient
		log.Info("Redis cache enabled")
	} else {
		log.Info("Redis cache disabled")
	}

	var events service.EventBus
	if len(cfg.Kafka.Brokers) > 0 {
		prod := producer.NewOrderProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer prod.Close()
		events = prod
		log.Info("Kafka order events enabled", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	hasher := hashing.NewBcrypt(cfg.BcryptCost)
	tokens := token.NewHSProvider(cfg.JWT.Secret, cfg.JWT.Issuer)

	authSvc := service.NewAuthService(repos.AdminUsers, hasher, tokens, cacheClient, cfg.JWT.AccessExp, log)
	orderSvc := service.NewOrderService(repos, events, cfg.MerchantWhatsapp, log)
	catalogSvc := service.NewCatalogService(repos, cacheClient, time.Duration(cfg.Redis.TTLSeconds)*time.Second, log)
	configSvc := service.NewConfigService(repos.SiteConfig)
	dashSvc := service.NewDashboardService(repos)

	r := router.Router(router.Deps{
		Repo:        repos,
		Orders:      orderSvc,
		Auth:        authSvc,
		Catalog:     catalogSvc,
		Config:      configSvc,
		Dashboard:   dashSvc,
		CORSOrigins: cfg.CORSOrigins,
	}, log)

	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("Starting HTTP server", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-quit
	log.Info("Shutting down HTTP server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}
	log.Info("HTTP server stopped gracefully")
}
