package main

import (
	"context"
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/gefm2002/fuegoamigo/config"
	"github.com/gefm2002/fuegoamigo/internal/hashing"
	"github.com/gefm2002/fuegoamigo/internal/repository"
	"github.com/gefm2002/fuegoamigo/internal/service"
	"github.com/gefm2002/fuegoamigo/pkg/database"
	"github.com/gefm2002/fuegoamigo/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// seed-admin создаёт сотрудника или сбрасывает ему пароль.
// Пример: go run ./cmd/seed-admin -email admin@fuegoamigo.com.ar -password secret
func main() {
	_ = godotenv.Load()

	email := flag.String("email", os.Getenv("ADMIN_EMAIL"), "admin e-mail")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "admin password")
	role := flag.String("role", "admin", "admin role")
	envCost, _ := strconv.Atoi(os.Getenv("BCRYPT_COST"))
	cost := flag.Int("cost", envCost, "bcrypt cost, 0 for default")
	flag.Parse()

	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.LoadDB(log)
	db := database.ConnectDB(&cfg.Config, log)
	defer database.CloseDB(db, log)

	repos := repository.New(db)
	// Токены здесь не выдаются, провайдер не нужен.
	authSvc := service.NewAuthService(repos.AdminUsers, hashing.NewBcrypt(*cost), nil, nil, 0, log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	u, created, err := authSvc.EnsureAdmin(ctx, *email, *password, *role)
	if err != nil {
		log.Fatal("Не удалось создать администратора", zap.Error(err))
	}
	if created {
		log.Info("Администратор создан", zap.String("email", u.Email), zap.String("id", u.ID.String()))
		return
	}
	log.Info("Пароль администратора обновлён", zap.String("email", u.Email))
}
