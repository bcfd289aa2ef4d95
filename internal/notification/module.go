// Package notification provides event handlers that push balance changes to
// connected sessions and e-mail RFP owners in response to domain events.
package notification

import (
	"context"

	"marketplace_backend/internal/email"
	"marketplace_backend/internal/events"
	"marketplace_backend/internal/notification/sse"
	"marketplace_backend/platform/logger"
)

// BalanceChanged is the SSE payload for credits events.
type BalanceChanged struct {
	Balance int64  `json:"balance"`
	Delta   int64  `json:"delta"`
	Source  string `json:"source"`
	RFPID   string `json:"rfpId,omitempty"`
}

// Module handles all notification-related event subscriptions.
type Module struct {
	sender email.Sender
	sse    *sse.Service
	log    *logger.Logger
}

// New creates the notification module.
func New(sender email.Sender, log *logger.Logger) *Module {
	if sender == nil {
		sender = email.NoopSender{}
	}
	return &Module{sender: sender, log: log}
}

// SetSSE wires the SSE service used for live balance updates.
func (m *Module) SetSSE(s *sse.Service) {
	m.sse = s
}

// RegisterHandlers subscribes the module to the events it reacts to.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.CreditsSpent{}.EventName(), m)
	bus.Subscribe(events.CreditsAdded{}.EventName(), m)
	bus.Subscribe(events.RFPUnlocked{}.EventName(), m)

	m.log.Info("notification module registered event handlers")
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.CreditsSpent:
		m.pushBalance(e.AccountID, BalanceChanged{Balance: e.Balance, Delta: -e.Amount, Source: "spend", RFPID: e.RFPID})
		return nil
	case events.CreditsAdded:
		m.pushBalance(e.AccountID, BalanceChanged{Balance: e.Balance, Delta: e.Amount, Source: e.Source})
		return nil
	case events.RFPUnlocked:
		return m.handleRFPUnlocked(ctx, e)
	default:
		m.log.Warn("unhandled event type", "event", event.EventName())
		return nil
	}
}

func (m *Module) pushBalance(accountID string, payload BalanceChanged) {
	if m.sse == nil {
		return
	}
	m.sse.Publish(accountID, sse.Event{Type: sse.EventBalanceChanged, Data: payload})
}

func (m *Module) handleRFPUnlocked(ctx context.Context, e events.RFPUnlocked) error {
	if m.sse != nil {
		m.sse.Publish(e.AccountID, sse.Event{
			Type:    sse.EventRFPUnlocked,
			Message: e.Title,
			Data:    map[string]string{"rfpId": e.RFPID},
		})
	}

	if e.ContactEmail == "" {
		return nil
	}
	notice := email.RFPUnlockedNotice{
		ContactName: e.ContactName,
		Company:     e.Company,
		RFPTitle:    e.Title,
		RFPID:       e.RFPID,
	}
	if err := m.sender.SendRFPUnlockedEmail(ctx, e.ContactEmail, notice); err != nil {
		m.log.Error("failed to send rfp unlocked email",
			"rfpId", e.RFPID,
			"error", err,
		)
		return err
	}
	m.log.Info("rfp unlocked email sent", "rfpId", e.RFPID)
	return nil
}
