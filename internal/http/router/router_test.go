package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apphttp "marketplace_backend/internal/http"
	"marketplace_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

type routerConfig struct{}

func (routerConfig) GetHTTPAddr() string        { return ":0" }
func (routerConfig) GetCORSAllowAll() bool      { return false }
func (routerConfig) GetCORSOrigins() []string   { return []string{"http://localhost:5173"} }
func (routerConfig) GetCORSAllowCreds() bool    { return true }
func (routerConfig) GetJWTAccessSecret() string { return "test-secret" }

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

type probeModule struct{}

func (probeModule) Name() string { return "probe" }

func (probeModule) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/probe", func(c *gin.Context) { c.Status(http.StatusNoContent) })
}

func newApp(checks ...apphttp.HealthChecker) *apphttp.App {
	gin.SetMode(gin.TestMode)
	return &apphttp.App{
		Config:  routerConfig{},
		Logger:  logger.Discard(),
		Health:  checks,
		Modules: []apphttp.Module{probeModule{}},
	}
}

func TestHealthReportsStoreFailures(t *testing.T) {
	rec := httptest.NewRecorder()
	New(newApp(pinger{})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	New(newApp(pinger{}, pinger{err: errors.New("down")})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	rec := httptest.NewRecorder()
	New(newApp()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/probe", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatal("security headers missing")
	}
}
