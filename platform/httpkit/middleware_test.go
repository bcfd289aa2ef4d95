package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"marketplace_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type jwtConfig string

func (c jwtConfig) GetJWTAccessSecret() string { return string(c) }

func newAuthRouter(cfg jwtConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/me", AuthRequired(cfg), func(c *gin.Context) {
		id := MustGetIdentity(c)
		if id == nil {
			return
		}
		c.String(http.StatusOK, id.AccountID())
	})
	return engine
}

func TestAuthRequiredAcceptsBearerAndQueryToken(t *testing.T) {
	cfg := jwtConfig("test-secret")
	engine := newAuthRouter(cfg)

	token, err := IssueAccessToken(cfg, "acc-42", []string{"buyer"}, time.Minute)
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "acc-42" {
		t.Fatalf("bearer: got %d %q", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/me?token="+token, nil)
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("query token: got %d", rec.Code)
	}
}

func TestAuthRequiredRejectsBadTokens(t *testing.T) {
	cfg := jwtConfig("test-secret")
	engine := newAuthRouter(cfg)

	otherKey, _ := IssueAccessToken(jwtConfig("other-secret"), "acc-1", nil, time.Minute)
	expired, _ := IssueAccessToken(cfg, "acc-1", nil, -time.Minute)
	noSubject, _ := IssueAccessToken(cfg, "  ", nil, time.Minute)

	cases := map[string]string{
		"missing":    "",
		"garbage":    "Bearer not-a-jwt",
		"wrong key":  "Bearer " + otherKey,
		"expired":    "Bearer " + expired,
		"no subject": "Bearer " + noSubject,
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestRateLimitBlocksAfterBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewIPRateLimiter(rate.Every(time.Hour), 2, logger.Discard())
	engine := gin.New()
	engine.GET("/", limiter.RateLimit(), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for range 3 {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("codes = %v", codes)
	}
}

func TestRequestIDEchoesIncomingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "req-123")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	if got := rec.Header().Get(HeaderRequestID); got != "req-123" {
		t.Fatalf("request id = %q", got)
	}

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get(HeaderRequestID) == "" {
		t.Fatal("expected generated request id")
	}
}
