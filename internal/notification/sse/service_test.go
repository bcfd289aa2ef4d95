package sse

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"marketplace_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

func TestHandlerStreamsEventsForOwnAccount(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := New(logger.Discard())

	engine := gin.New()
	engine.GET("/stream", svc.Handler(func(c *gin.Context) (string, bool) {
		return c.Query("account"), true
	}))
	server := httptest.NewServer(engine)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/stream?account=acc-1", nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	waitForEvent(t, reader, "connected")

	for svc.ClientCount("acc-1") == 0 {
		time.Sleep(5 * time.Millisecond)
	}
	svc.Publish("acc-2", Event{Type: EventRFPUnlocked})
	svc.Publish("acc-1", Event{Type: EventBalanceChanged, Data: map[string]int{"balance": 100}})

	data := waitForEvent(t, reader, string(EventBalanceChanged))
	if !strings.Contains(data, `"balance":100`) {
		t.Fatalf("expected balance payload, got %q", data)
	}
}

func TestHandlerRejectsAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := New(logger.Discard())

	engine := gin.New()
	engine.GET("/stream", svc.Handler(func(*gin.Context) (string, bool) { return "", false }))

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stream", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestCloseDisconnectsClients(t *testing.T) {
	svc := New(logger.Discard())
	c := &client{accountID: "acc-1", events: make(chan Event, 1)}
	svc.addClient(c)

	svc.Close()

	if _, ok := <-c.events; ok {
		t.Fatalf("expected channel to be closed")
	}
	if svc.ClientCount("acc-1") != 0 {
		t.Fatalf("expected no clients after close")
	}
}

// waitForEvent reads until an event named name arrives and returns its data line.
func waitForEvent(t *testing.T, r *bufio.Reader, name string) string {
	t.Helper()
	current := ""
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			t.Fatalf("read stream waiting for %s: %v", name, err)
		}
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "event:"):
			current = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:") && current == name:
			return strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		}
	}
}
