package scheduler

import (
	"context"

	"marketplace_backend/internal/credits/repository"
	"marketplace_backend/internal/events"
	"marketplace_backend/platform/logger"

	"github.com/google/uuid"
)

// LedgerAudit turns credits events into queued audit entries.
type LedgerAudit struct {
	recorder LedgerRecorder
	log      *logger.Logger
}

// NewLedgerAudit creates the subscriber.
func NewLedgerAudit(recorder LedgerRecorder, log *logger.Logger) *LedgerAudit {
	return &LedgerAudit{recorder: recorder, log: log}
}

// RegisterHandlers subscribes to credits events.
func (a *LedgerAudit) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.CreditsSpent{}.EventName(), a)
	bus.Subscribe(events.CreditsAdded{}.EventName(), a)
}

// Handle enqueues one audit entry per balance mutation.
func (a *LedgerAudit) Handle(ctx context.Context, event events.Event) error {
	var payload LedgerRecordPayload
	switch e := event.(type) {
	case events.CreditsSpent:
		payload = LedgerRecordPayload{
			AccountID:    e.AccountID,
			EntryType:    repository.EntrySpend,
			Amount:       e.Amount,
			BalanceAfter: e.Balance,
			Reference:    e.RFPID,
		}
	case events.CreditsAdded:
		entryType := repository.EntryTopUp
		if e.Source == events.CreditSourcePurchase {
			entryType = repository.EntryPurchase
		}
		payload = LedgerRecordPayload{
			AccountID:    e.AccountID,
			EntryType:    entryType,
			Amount:       e.Amount,
			BalanceAfter: e.Balance,
			Reference:    e.Reference,
		}
	default:
		return nil
	}

	payload.EntryID = uuid.NewString()
	payload.OccurredAt = event.OccurredAt()

	if err := a.recorder.EnqueueLedgerRecord(ctx, payload); err != nil {
		a.log.Error("failed to enqueue ledger record",
			"accountId", payload.AccountID,
			"entryType", payload.EntryType,
			"error", err,
		)
		return err
	}
	return nil
}
