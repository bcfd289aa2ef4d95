// Package ledger holds the credits balance and the set of RFPs a session has
// paid to unlock. It has no I/O; stores and services wrap it.
package ledger

import (
	"errors"
	"slices"
	"sync"
)

var (
	// ErrInvalidAmount is returned for zero or negative amounts.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInvalidID is returned when spend is called without an RFP id.
	ErrInvalidID = errors.New("rfp id is required")
	// ErrNegativeBalance is returned when a ledger is seeded below zero.
	ErrNegativeBalance = errors.New("balance must not be negative")
)

// SpendResult describes the outcome of Spend.
//
// OK is false only when the balance could not cover the amount. AlreadyUnlocked
// is set when the id had been paid for before; nothing is charged in that case.
type SpendResult struct {
	OK              bool
	AlreadyUnlocked bool
	Charged         int64
	Balance         int64
}

// Snapshot is a point-in-time copy of a ledger.
type Snapshot struct {
	Balance     int64
	UnlockedIDs []string
}

// Ledger is a credits account. The zero value is an empty account with no credits.
// It is safe for concurrent use.
type Ledger struct {
	mu       sync.Mutex
	balance  int64
	unlocked map[string]struct{}
	order    []string
}

// New returns a ledger seeded with initial credits.
func New(initial int64) (*Ledger, error) {
	if initial < 0 {
		return nil, ErrNegativeBalance
	}
	return &Ledger{balance: initial}, nil
}

// Restore rebuilds a ledger from a snapshot, e.g. one loaded from a store.
func Restore(s Snapshot) (*Ledger, error) {
	l, err := New(s.Balance)
	if err != nil {
		return nil, err
	}
	for _, id := range s.UnlockedIDs {
		l.markUnlocked(id)
	}
	return l, nil
}

// Balance returns the spendable credits.
func (l *Ledger) Balance() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance
}

// IsUnlocked reports whether id has been paid for.
func (l *Ledger) IsUnlocked(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.unlocked[id]
	return ok
}

// Spend charges amount and unlocks id. Charging an id that is already unlocked
// is a no-op success. An unaffordable amount leaves the ledger untouched.
func (l *Ledger) Spend(amount int64, id string) (SpendResult, error) {
	if amount <= 0 {
		return SpendResult{}, ErrInvalidAmount
	}
	if id == "" {
		return SpendResult{}, ErrInvalidID
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.unlocked[id]; ok {
		return SpendResult{OK: true, AlreadyUnlocked: true, Balance: l.balance}, nil
	}
	if l.balance < amount {
		return SpendResult{OK: false, Balance: l.balance}, nil
	}

	l.balance -= amount
	l.markUnlocked(id)
	return SpendResult{OK: true, Charged: amount, Balance: l.balance}, nil
}

// Add credits the account, e.g. after a purchase.
func (l *Ledger) Add(amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.balance += amount
	return l.balance, nil
}

// Snapshot copies the current state. Unlocked ids are in unlock order.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Snapshot{Balance: l.balance, UnlockedIDs: slices.Clone(l.order)}
}

// callers hold l.mu or own l exclusively.
func (l *Ledger) markUnlocked(id string) {
	if l.unlocked == nil {
		l.unlocked = make(map[string]struct{})
	}
	if _, ok := l.unlocked[id]; ok {
		return
	}
	l.unlocked[id] = struct{}{}
	l.order = append(l.order, id)
}
