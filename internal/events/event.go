// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"marketplace_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// Credit sources carried by CreditsAdded.
const (
	CreditSourceTopUp    = "top_up"
	CreditSourcePurchase = "purchase"
)

// =============================================================================
// Credits Domain Events
// =============================================================================

// CreditsSpent is published when a spend actually charged the account.
// Free re-unlocks and refused spends do not publish it.
type CreditsSpent struct {
	BaseEvent
	AccountID string `json:"accountId"`
	RFPID     string `json:"rfpId"`
	Amount    int64  `json:"amount"`
	Balance   int64  `json:"balance"`
}

func (e CreditsSpent) EventName() string { return "credits.spent" }

// CreditsAdded is published after a top-up or package purchase.
type CreditsAdded struct {
	BaseEvent
	AccountID string `json:"accountId"`
	Amount    int64  `json:"amount"`
	Balance   int64  `json:"balance"`
	Source    string `json:"source"` // "top_up", "purchase"
	Reference string `json:"reference,omitempty"`
}

func (e CreditsAdded) EventName() string { return "credits.added" }

// =============================================================================
// RFP Domain Events
// =============================================================================

// RFPUnlocked is published the first time an account unlocks an RFP's contact details.
type RFPUnlocked struct {
	BaseEvent
	AccountID    string `json:"accountId"`
	RFPID        string `json:"rfpId"`
	Title        string `json:"title"`
	Company      string `json:"company"`
	ContactName  string `json:"contactName"`
	ContactEmail string `json:"contactEmail"`
	CreditCost   int64  `json:"creditCost"`
}

func (e RFPUnlocked) EventName() string { return "rfp.unlocked" }
