package repository

import (
	"errors"

	"marketplace_backend/internal/credits/ledger"
	"marketplace_backend/platform/apperr"
)

var errAccountRequired = apperr.Unauthorized("account is required")

// validateSpend applies the ledger's precondition checks before a store
// touches its backend.
func validateSpend(accountID string, amount int64, rfpID string) error {
	if accountID == "" {
		return errAccountRequired
	}
	if amount <= 0 {
		return ledger.ErrInvalidAmount
	}
	if rfpID == "" {
		return ledger.ErrInvalidID
	}
	return nil
}

func validateAdd(accountID string, amount int64) error {
	if accountID == "" {
		return errAccountRequired
	}
	if amount <= 0 {
		return ledger.ErrInvalidAmount
	}
	return nil
}

// IsPrecondition reports whether err is a rejected-input error from the ledger.
func IsPrecondition(err error) bool {
	return errors.Is(err, ledger.ErrInvalidAmount) || errors.Is(err, ledger.ErrInvalidID)
}
