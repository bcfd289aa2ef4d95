package repository

import (
	"context"
	"sync"

	"marketplace_backend/internal/credits/ledger"
)

// MemoryStore keeps ledgers in process memory. State is lost on restart.
type MemoryStore struct {
	mu      sync.Mutex
	initial int64
	ledgers map[string]*ledger.Ledger
}

// NewMemoryStore creates a store seeding new accounts with initial credits.
func NewMemoryStore(initial int64) *MemoryStore {
	return &MemoryStore{
		initial: initial,
		ledgers: make(map[string]*ledger.Ledger),
	}
}

var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) ledgerFor(accountID string) (*ledger.Ledger, error) {
	if accountID == "" {
		return nil, errAccountRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if l, ok := s.ledgers[accountID]; ok {
		return l, nil
	}
	l, err := ledger.New(s.initial)
	if err != nil {
		return nil, err
	}
	s.ledgers[accountID] = l
	return l, nil
}

// Get returns the account, creating it if needed.
func (s *MemoryStore) Get(_ context.Context, accountID string) (Account, error) {
	l, err := s.ledgerFor(accountID)
	if err != nil {
		return Account{}, err
	}
	snap := l.Snapshot()
	return Account{AccountID: accountID, Balance: snap.Balance, UnlockedIDs: snap.UnlockedIDs}, nil
}

// IsUnlocked reports whether the account has unlocked rfpID.
func (s *MemoryStore) IsUnlocked(_ context.Context, accountID, rfpID string) (bool, error) {
	l, err := s.ledgerFor(accountID)
	if err != nil {
		return false, err
	}
	return l.IsUnlocked(rfpID), nil
}

// Spend charges the account's ledger.
func (s *MemoryStore) Spend(_ context.Context, accountID string, amount int64, rfpID string) (ledger.SpendResult, error) {
	l, err := s.ledgerFor(accountID)
	if err != nil {
		return ledger.SpendResult{}, err
	}
	return l.Spend(amount, rfpID)
}

// Add credits the account's ledger.
func (s *MemoryStore) Add(_ context.Context, accountID string, amount int64) (int64, error) {
	l, err := s.ledgerFor(accountID)
	if err != nil {
		return 0, err
	}
	return l.Add(amount)
}
