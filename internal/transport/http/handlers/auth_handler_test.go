package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gefm2002/fuegoamigo/internal/models"
	"github.com/gefm2002/fuegoamigo/internal/service"
	"github.com/gefm2002/fuegoamigo/internal/transport/http/handlers"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockAuthService struct {
	LoginFunc func(ctx context.Context, email, password string) (*service.LoginResult, error)
	MeFunc    func(ctx context.Context) (*models.AdminUser, error)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.LoginResult, error) {
	return m.LoginFunc(ctx, email, password)
}

func (m *MockAuthService) Me(ctx context.Context) (*models.AdminUser, error) {
	return m.MeFunc(ctx)
}

func newAuthEngine(svc handlers.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handlers.NewAuthHandler(svc, zap.NewNop())
	r.POST("/admin/login", h.Login)
	r.GET("/admin/me", h.Me)
	return r
}

func TestLoginHandler(t *testing.T) {
	svc := &MockAuthService{LoginFunc: func(_ context.Context, email, password string) (*service.LoginResult, error) {
		if password != "ok" {
			return nil, service.ErrInvalidCredentials
		}
		return &service.LoginResult{
			Token:     "jwt-token",
			ExpiresAt: time.Now().Add(time.Hour),
			User:      &models.AdminUser{ID: uuid.New(), Email: email, Role: "admin", IsActive: true},
		}, nil
	}}
	r := newAuthEngine(svc)

	w := doJSON(r, http.MethodPost, "/admin/login", map[string]string{"email": "admin@fuegoamigo.com", "password": "ok"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "jwt-token", resp["token"])

	w = doJSON(r, http.MethodPost, "/admin/login", map[string]string{"email": "admin@fuegoamigo.com", "password": "bad"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid credentials", resp["error"])
}

func TestLoginHandler_RateLimited(t *testing.T) {
	svc := &MockAuthService{LoginFunc: func(context.Context, string, string) (*service.LoginResult, error) {
		return nil, service.ErrTooManyRequests
	}}
	w := doJSON(newAuthEngine(svc), http.MethodPost, "/admin/login", map[string]string{"email": "a", "password": "b"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestMeHandler(t *testing.T) {
	id := uuid.New()
	svc := &MockAuthService{MeFunc: func(context.Context) (*models.AdminUser, error) {
		return &models.AdminUser{ID: id, Email: "admin@fuegoamigo.com", Role: "admin", IsActive: true}, nil
	}}
	w := doJSON(newAuthEngine(svc), http.MethodGet, "/admin/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), id.String())
	assert.NotContains(t, w.Body.String(), "password")
}
