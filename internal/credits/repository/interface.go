// Package repository stores one credits ledger per account.
package repository

import (
	"context"

	"marketplace_backend/internal/credits/ledger"
)

// Account is the stored view of a ledger.
type Account struct {
	AccountID   string
	Balance     int64
	UnlockedIDs []string
}

// Store keeps ledgers keyed by account id. Accounts are created on first use
// with the store's seeded initial balance.
//
// Spend must be atomic per account: the already-unlocked check, the balance
// check and the charge happen as one step.
type Store interface {
	Get(ctx context.Context, accountID string) (Account, error)
	IsUnlocked(ctx context.Context, accountID, rfpID string) (bool, error)
	Spend(ctx context.Context, accountID string, amount int64, rfpID string) (ledger.SpendResult, error)
	Add(ctx context.Context, accountID string, amount int64) (int64, error)
}
