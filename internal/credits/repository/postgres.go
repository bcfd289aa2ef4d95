package repository

import (
	"context"
	"fmt"

	"marketplace_backend/internal/credits/ledger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps ledgers in the credit_accounts and credit_unlocks tables.
type PostgresStore struct {
	pool    *pgxpool.Pool
	initial int64
}

// NewPostgresStore creates a Postgres-backed store.
func NewPostgresStore(pool *pgxpool.Pool, initial int64) *PostgresStore {
	return &PostgresStore{pool: pool, initial: initial}
}

var _ Store = (*PostgresStore)(nil)

func (s *PostgresStore) ensureAccount(ctx context.Context, q pgxQuerier, accountID string) error {
	_, err := q.Exec(ctx, `
		INSERT INTO credit_accounts (account_id, balance)
		VALUES ($1, $2)
		ON CONFLICT (account_id) DO NOTHING`, accountID, s.initial)
	if err != nil {
		return fmt.Errorf("ensure credit account: %w", err)
	}
	return nil
}

// Get returns the account, creating it if needed.
func (s *PostgresStore) Get(ctx context.Context, accountID string) (Account, error) {
	if accountID == "" {
		return Account{}, errAccountRequired
	}
	if err := s.ensureAccount(ctx, s.pool, accountID); err != nil {
		return Account{}, err
	}

	account := Account{AccountID: accountID, UnlockedIDs: []string{}}
	if err := s.pool.QueryRow(ctx,
		`SELECT balance FROM credit_accounts WHERE account_id = $1`, accountID,
	).Scan(&account.Balance); err != nil {
		return Account{}, fmt.Errorf("get credit account: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT rfp_id FROM credit_unlocks
		WHERE account_id = $1
		ORDER BY unlocked_at, rfp_id`, accountID)
	if err != nil {
		return Account{}, fmt.Errorf("list credit unlocks: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return Account{}, fmt.Errorf("scan credit unlocks: %w", err)
	}
	account.UnlockedIDs = ids
	return account, nil
}

// IsUnlocked reports whether the account has unlocked rfpID.
func (s *PostgresStore) IsUnlocked(ctx context.Context, accountID, rfpID string) (bool, error) {
	if accountID == "" {
		return false, errAccountRequired
	}
	var exists bool
	if err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM credit_unlocks WHERE account_id = $1 AND rfp_id = $2)`,
		accountID, rfpID,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("check credit unlock: %w", err)
	}
	return exists, nil
}

// Spend locks the account row and charges it in one transaction.
func (s *PostgresStore) Spend(ctx context.Context, accountID string, amount int64, rfpID string) (result ledger.SpendResult, err error) {
	if err := validateSpend(accountID, amount, rfpID); err != nil {
		return ledger.SpendResult{}, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return ledger.SpendResult{}, fmt.Errorf("begin spend: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = s.ensureAccount(ctx, tx, accountID); err != nil {
		return ledger.SpendResult{}, err
	}

	var balance int64
	if err = tx.QueryRow(ctx,
		`SELECT balance FROM credit_accounts WHERE account_id = $1 FOR UPDATE`, accountID,
	).Scan(&balance); err != nil {
		return ledger.SpendResult{}, fmt.Errorf("lock credit account: %w", err)
	}

	var unlocked bool
	if err = tx.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM credit_unlocks WHERE account_id = $1 AND rfp_id = $2)`,
		accountID, rfpID,
	).Scan(&unlocked); err != nil {
		return ledger.SpendResult{}, fmt.Errorf("check credit unlock: %w", err)
	}

	switch {
	case unlocked:
		result = ledger.SpendResult{OK: true, AlreadyUnlocked: true, Balance: balance}
	case balance < amount:
		result = ledger.SpendResult{OK: false, Balance: balance}
	default:
		if err = tx.QueryRow(ctx, `
			UPDATE credit_accounts SET balance = balance - $2, updated_at = now()
			WHERE account_id = $1
			RETURNING balance`, accountID, amount,
		).Scan(&balance); err != nil {
			return ledger.SpendResult{}, fmt.Errorf("charge credit account: %w", err)
		}
		if _, err = tx.Exec(ctx, `
			INSERT INTO credit_unlocks (account_id, rfp_id, amount) VALUES ($1, $2, $3)`,
			accountID, rfpID, amount,
		); err != nil {
			return ledger.SpendResult{}, fmt.Errorf("insert credit unlock: %w", err)
		}
		result = ledger.SpendResult{OK: true, Charged: amount, Balance: balance}
	}

	if err = tx.Commit(ctx); err != nil {
		return ledger.SpendResult{}, fmt.Errorf("commit spend: %w", err)
	}
	return result, nil
}

// Add credits the account.
func (s *PostgresStore) Add(ctx context.Context, accountID string, amount int64) (int64, error) {
	if err := validateAdd(accountID, amount); err != nil {
		return 0, err
	}

	var balance int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO credit_accounts (account_id, balance)
		VALUES ($1, $2::bigint + $3::bigint)
		ON CONFLICT (account_id) DO UPDATE
		SET balance = credit_accounts.balance + $3, updated_at = now()
		RETURNING balance`, accountID, s.initial, amount,
	).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("add credits: %w", err)
	}
	return balance, nil
}

// pgxQuerier is satisfied by both *pgxpool.Pool and pgx.Tx.
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}
