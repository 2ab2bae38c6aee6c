package service

import (
	"context"
	"time"

	"github.com/gefm2002/fuegoamigo/internal/models"

	"github.com/google/uuid"
)

type AdminUserRepo interface {
	Create(ctx context.Context, u *models.AdminUser) error
	GetActiveByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
	NeedsRehash(hash string) bool
}

type Claims struct {
	UserID uuid.UUID
	Email  string
	Role   string
	Exp    time.Time
}

type TokenProvider interface {
	SignAccess(ctx context.Context, sub uuid.UUID, email, role string, ttl time.Duration) (token string, exp time.Time, err error)
	ParseAndValidateAccess(ctx context.Context, token string) (*Claims, error)
}

// CacheClient: Redis или nil. Любая ошибка Get считается промахом.
type CacheClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}
