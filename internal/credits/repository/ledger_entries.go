package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ledger entry types stored in credit_ledger_entries.
const (
	EntrySpend    = "SPEND"
	EntryTopUp    = "TOP_UP"
	EntryPurchase = "PURCHASE"
)

// LedgerEntry is one audited balance mutation.
type LedgerEntry struct {
	ID           uuid.UUID
	AccountID    string
	EntryType    string
	Amount       int64
	BalanceAfter int64
	Reference    string
	OccurredAt   time.Time
}

// LedgerEntryRepository appends audit entries. It is written by the
// scheduler worker, never on the request path.
type LedgerEntryRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerEntryRepository creates the audit trail repository.
func NewLedgerEntryRepository(pool *pgxpool.Pool) *LedgerEntryRepository {
	return &LedgerEntryRepository{pool: pool}
}

// Insert stores e. Re-inserting the same id is a no-op so task retries are safe.
func (r *LedgerEntryRepository) Insert(ctx context.Context, e LedgerEntry) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO credit_ledger_entries
			(id, account_id, entry_type, amount, balance_after, reference, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING`,
		e.ID, e.AccountID, e.EntryType, e.Amount, e.BalanceAfter, e.Reference, e.OccurredAt)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}
