package adapters

import (
	"context"

	creditsvc "marketplace_backend/internal/credits/service"
	"marketplace_backend/internal/rfp/ports"
)

// RFPCreditLedger lets the RFP context charge unlocks through the credits service.
type RFPCreditLedger struct {
	svc *creditsvc.Service
}

// NewRFPCreditLedger creates a new adapter.
func NewRFPCreditLedger(svc *creditsvc.Service) *RFPCreditLedger {
	return &RFPCreditLedger{svc: svc}
}

// UnlockedIDs returns the account's unlocked RFP ids as a set.
func (a *RFPCreditLedger) UnlockedIDs(ctx context.Context, accountID string) (map[string]bool, error) {
	account, err := a.svc.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(account.UnlockedIDs))
	for _, id := range account.UnlockedIDs {
		out[id] = true
	}
	return out, nil
}

// Spend charges an unlock.
func (a *RFPCreditLedger) Spend(ctx context.Context, accountID string, amount int64, rfpID string) (ports.SpendOutcome, error) {
	result, err := a.svc.Spend(ctx, accountID, amount, rfpID)
	if err != nil {
		return ports.SpendOutcome{}, err
	}
	return ports.SpendOutcome{
		OK:              result.OK,
		AlreadyUnlocked: result.AlreadyUnlocked,
		Charged:         result.Charged,
		Balance:         result.Balance,
	}, nil
}

var _ ports.CreditLedger = (*RFPCreditLedger)(nil)
