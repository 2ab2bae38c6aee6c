package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gefm2002/fuegoamigo/internal/models"

	"go.uber.org/zap"
)

const (
	loginMaxFailures = 5
	loginLockTTL     = 15 * time.Minute
)

type AuthService struct {
	users  AdminUserRepo
	hasher PasswordHasher
	tokens TokenProvider
	cache  CacheClient // nil: без ограничения попыток

	accessTTL time.Duration
	now       func() time.Time

	log *zap.Logger
}

func NewAuthService(users AdminUserRepo, hasher PasswordHasher, tokens TokenProvider, cache CacheClient, accessTTL time.Duration, log *zap.Logger) *AuthService {
	return &AuthService{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		cache:     cache,
		accessTTL: accessTTL,
		now:       time.Now,
		log:       log,
	}
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *models.AdminUser
}

func loginFailKey(email string) string {
	return "login:fail:" + strings.ToLower(email)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	ve := &ValidationError{}
	if email == "" {
		ve.Missing = append(ve.Missing, "email")
	}
	if password == "" {
		ve.Missing = append(ve.Missing, "password")
	}
	if !ve.empty() {
		return nil, ve
	}

	if s.locked(ctx, email) {
		return nil, ErrTooManyRequests
	}

	user, err := s.users.GetActiveByEmail(ctx, email)
	if err != nil {
		return nil, persistErr("get admin user", err)
	}
	if user == nil || !s.hasher.Compare(user.PasswordHash, password) {
		s.registerFailure(ctx, email)
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.tokens.SignAccess(ctx, user.ID, user.Email, user.Role, s.accessTTL)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.Del(ctx, loginFailKey(email))
	}
	s.rehash(ctx, user, password)

	s.log.Info("admin logged in", zap.String("email", user.Email))
	return &LoginResult{Token: token, ExpiresAt: exp, User: user}, nil
}

// rehash переводит старый хэш на текущий cost. Ошибка не мешает входу.
func (s *AuthService) rehash(ctx context.Context, user *models.AdminUser, password string) {
	if !s.hasher.NeedsRehash(user.PasswordHash) {
		return
	}
	hash, err := s.hasher.Hash(password)
	if err == nil {
		err = s.users.UpdatePassword(ctx, user.ID, hash)
	}
	if err != nil {
		s.log.Warn("password rehash failed", zap.String("email", user.Email), zap.Error(err))
		return
	}
	user.PasswordHash = hash
}

func (s *AuthService) locked(ctx context.Context, email string) bool {
	if s.cache == nil {
		return false
	}
	v, err := s.cache.Get(ctx, loginFailKey(email))
	if err != nil {
		return false
	}
	n, _ := strconv.Atoi(v)
	return n >= loginMaxFailures
}

func (s *AuthService) registerFailure(ctx context.Context, email string) {
	if s.cache == nil {
		return
	}
	n, err := s.cache.Incr(ctx, loginFailKey(email), loginLockTTL)
	if err != nil {
		s.log.Warn("login rate limit counter failed", zap.Error(err))
		return
	}
	if n >= loginMaxFailures {
		s.log.Warn("login locked", zap.String("email", email), zap.Int64("failures", n))
	}
}

// Me возвращает текущего сотрудника по id из токена.
func (s *AuthService) Me(ctx context.Context) (*models.AdminUser, error) {
	uid, err := requireStaff(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.users.GetByID(ctx, uid)
	if err != nil {
		return nil, persistErr("get admin user", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *AuthService) Authenticate(ctx context.Context, token string) (*Claims, error) {
	claims, err := s.tokens.ParseAndValidateAccess(ctx, token)
	if err != nil {
		return nil, ErrUnauthorized
	}
	return claims, nil
}

// EnsureAdmin создаёт сотрудника или сбрасывает пароль существующему. created = true для нового.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password, role string) (*models.AdminUser, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	ve := &ValidationError{}
	if email == "" {
		ve.Missing = append(ve.Missing, "email")
	}
	if password == "" {
		ve.Missing = append(ve.Missing, "password")
	}
	if !ve.empty() {
		return nil, false, ve
	}
	if role == "" {
		role = string(RoleAdmin)
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.users.GetActiveByEmail(ctx, email)
	if err != nil {
		return nil, false, persistErr("get admin user", err)
	}
	if existing != nil {
		if err := s.users.UpdatePassword(ctx, existing.ID, hash); err != nil {
			return nil, false, persistErr("update admin password", err)
		}
		existing.PasswordHash = hash
		return existing, false, nil
	}

	u := &models.AdminUser{Email: email, PasswordHash: hash, Role: role, IsActive: true}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, false, persistErr("create admin user", err)
	}
	return u, true, nil
}
