package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gefm2002/fuegoamigo/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func TestExtractBearerToken(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", true},
		{"bearer abc.def.ghi", "abc.def.ghi", true},
		{`Bearer "abc.def.ghi"`, "abc.def.ghi", true},
		{"Bearer abc.def.ghi, extra", "abc.def.ghi", true},
		{"Bearer abc.def.ghi trailing", "abc.def.ghi", true},
		{"Basic dXNlcjpwYXNz", "", false},
		{"", "", false},
		{"Bearer", "", false},
	}
	for _, tc := range cases {
		got, ok := ExtractBearerToken(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ExtractBearerToken(%q) = %q,%v; want %q,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

type fakeAuth struct {
	claims *service.Claims
	err    error
}

func (f fakeAuth) Authenticate(context.Context, string) (*service.Claims, error) {
	return f.claims, f.err
}

func TestAuthRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	uid := uuid.New()
	ok := fakeAuth{claims: &service.Claims{UserID: uid, Email: "staff@fuegoamigo.com", Role: "staff"}}

	newEngine := func(a Authenticator) *gin.Engine {
		r := gin.New()
		r.GET("/admin/me", AuthRequired(a, zap.NewNop()), func(c *gin.Context) {
			id, _ := service.UserIDFromContext(c.Request.Context())
			email, _ := service.EmailFromContext(c.Request.Context())
			c.String(http.StatusOK, id.String()+" "+email)
		})
		return r
	}

	cases := []struct {
		name   string
		auth   Authenticator
		header string
		code   int
	}{
		{"no header", ok, "", http.StatusUnauthorized},
		{"wrong scheme", ok, "Basic dXNlcjpwYXNz", http.StatusUnauthorized},
		{"rejected token", fakeAuth{err: errors.New("expired")}, "Bearer abc", http.StatusUnauthorized},
		{"valid", ok, "Bearer abc", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			newEngine(tc.auth).ServeHTTP(w, req)
			if w.Code != tc.code {
				t.Fatalf("code = %d, want %d", w.Code, tc.code)
			}
			if tc.code == http.StatusOK && w.Body.String() != uid.String()+" staff@fuegoamigo.com" {
				t.Fatalf("body = %q", w.Body.String())
			}
			if tc.code == http.StatusUnauthorized && !strings.Contains(w.Body.String(), `"error":"Unauthorized"`) {
				t.Fatalf("body = %q", w.Body.String())
			}
		})
	}
}
