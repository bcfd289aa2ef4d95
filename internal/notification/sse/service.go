// Package sse provides Server-Sent Events support for pushing balance
// changes to the sessions that own them.
package sse

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"marketplace_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

// EventType represents different types of SSE events
type EventType string

const (
	EventBalanceChanged EventType = "balance_changed"
	EventRFPUnlocked    EventType = "rfp_unlocked"
)

// Event represents an SSE event payload
type Event struct {
	Type    EventType `json:"type"`
	Message string    `json:"message,omitempty"`
	Data    any       `json:"data,omitempty"`
}

type client struct {
	accountID string
	events    chan Event
}

// Service manages SSE connections and event fan-out per account.
type Service struct {
	mu        sync.RWMutex
	clients   map[string][]*client
	log       *logger.Logger
	heartbeat time.Duration
}

// New creates a new SSE service
func New(log *logger.Logger) *Service {
	return &Service{
		clients:   make(map[string][]*client),
		log:       log,
		heartbeat: 25 * time.Second,
	}
}

func (s *Service) addClient(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c.accountID] = append(s.clients[c.accountID], c)
}

func (s *Service) removeClient(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clients := s.clients[c.accountID]
	for i, cl := range clients {
		if cl == c {
			s.clients[c.accountID] = append(clients[:i], clients[i+1:]...)
			close(c.events)
			break
		}
	}
	if len(s.clients[c.accountID]) == 0 {
		delete(s.clients, c.accountID)
	}
}

// ClientCount returns the number of open streams for accountID.
func (s *Service) ClientCount(accountID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients[accountID])
}

// Publish sends an event to every stream of accountID. Slow clients drop events.
func (s *Service) Publish(accountID string, event Event) {
	// The read lock also keeps removeClient from closing a channel mid-send.
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.clients[accountID] {
		select {
		case c.events <- event:
		default:
			s.log.Warn("sse buffer full", "accountId", accountID, "event", event.Type)
		}
	}
}

// Handler returns a Gin handler streaming events for the account returned by getAccountID.
func (s *Service) Handler(getAccountID func(*gin.Context) (string, bool)) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, ok := getAccountID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")
		c.Writer.Header().Set("X-Accel-Buffering", "no")

		cl := &client{accountID: accountID, events: make(chan Event, 32)}
		s.addClient(cl)
		defer s.removeClient(cl)

		c.SSEvent("connected", gin.H{"accountId": accountID})
		c.Writer.Flush()

		ticker := time.NewTicker(s.heartbeat)
		defer ticker.Stop()

		clientGone := c.Request.Context().Done()
		for {
			select {
			case <-clientGone:
				return
			case <-ticker.C:
				c.SSEvent("ping", "")
				c.Writer.Flush()
			case event, ok := <-cl.events:
				if !ok {
					return
				}
				data, err := json.Marshal(event)
				if err != nil {
					s.log.Error("sse marshal failed", "error", err)
					continue
				}
				c.SSEvent(string(event.Type), string(data))
				c.Writer.Flush()
			}
		}
	}
}

// Close disconnects every client.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, clients := range s.clients {
		for _, c := range clients {
			close(c.events)
		}
	}
	s.clients = make(map[string][]*client)
}
