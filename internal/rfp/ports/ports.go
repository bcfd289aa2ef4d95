// Package ports defines what the RFP context needs from the credits ledger
// and the marketplace catalog.
package ports

import (
	"context"

	"marketplace_backend/internal/marketplace/domain"
)

// SpendOutcome is the ledger's answer to an unlock charge.
type SpendOutcome struct {
	OK              bool
	AlreadyUnlocked bool
	Charged         int64
	Balance         int64
}

// CreditLedger charges credits for RFP unlocks.
type CreditLedger interface {
	// UnlockedIDs returns the RFP ids the account already paid for.
	UnlockedIDs(ctx context.Context, accountID string) (map[string]bool, error)
	// Spend charges amount to unlock rfpID. Insufficient balance is reported
	// through SpendOutcome.OK, not as an error.
	Spend(ctx context.Context, accountID string, amount int64, rfpID string) (SpendOutcome, error)
}

// RequestCatalog reads the RFP catalog.
type RequestCatalog interface {
	FilterRequests(state domain.FilterState) domain.Result[domain.Request]
	GetRequest(id string) (domain.Request, bool)
}
