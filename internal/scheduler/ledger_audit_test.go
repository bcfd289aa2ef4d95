package scheduler

import (
	"context"
	"errors"
	"testing"

	"marketplace_backend/internal/credits/repository"
	"marketplace_backend/internal/events"
	"marketplace_backend/platform/logger"
)

type fakeRecorder struct {
	records []LedgerRecordPayload
	err     error
}

func (f *fakeRecorder) EnqueueLedgerRecord(_ context.Context, payload LedgerRecordPayload) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, payload)
	return nil
}

func TestLedgerAuditMapsEvents(t *testing.T) {
	rec := &fakeRecorder{}
	audit := NewLedgerAudit(rec, logger.Discard())
	ctx := context.Background()

	spent := events.CreditsSpent{BaseEvent: events.NewBaseEvent(), AccountID: "acc-1", RFPID: "rfp-001", Amount: 50, Balance: 100}
	topUp := events.CreditsAdded{BaseEvent: events.NewBaseEvent(), AccountID: "acc-1", Amount: 100, Balance: 200, Source: events.CreditSourceTopUp}
	purchase := events.CreditsAdded{BaseEvent: events.NewBaseEvent(), AccountID: "acc-1", Amount: 300, Balance: 500, Source: events.CreditSourcePurchase, Reference: "growth"}

	for _, e := range []events.Event{spent, topUp, purchase} {
		if err := audit.Handle(ctx, e); err != nil {
			t.Fatalf("Handle(%s): %v", e.EventName(), err)
		}
	}

	if len(rec.records) != 3 {
		t.Fatalf("records = %d, want 3", len(rec.records))
	}

	wantTypes := []string{repository.EntrySpend, repository.EntryTopUp, repository.EntryPurchase}
	for i, r := range rec.records {
		if r.EntryType != wantTypes[i] {
			t.Errorf("record %d type = %q, want %q", i, r.EntryType, wantTypes[i])
		}
		if r.EntryID == "" {
			t.Errorf("record %d has no entry id", i)
		}
	}
	if rec.records[0].Reference != "rfp-001" || rec.records[0].BalanceAfter != 100 {
		t.Errorf("spend record = %+v", rec.records[0])
	}
	if rec.records[2].Reference != "growth" || rec.records[2].Amount != 300 {
		t.Errorf("purchase record = %+v", rec.records[2])
	}
	if rec.records[0].EntryID == rec.records[1].EntryID {
		t.Error("entry ids must be unique")
	}
}

func TestLedgerAuditIgnoresOtherEvents(t *testing.T) {
	rec := &fakeRecorder{}
	audit := NewLedgerAudit(rec, logger.Discard())

	err := audit.Handle(context.Background(), events.RFPUnlocked{BaseEvent: events.NewBaseEvent(), AccountID: "acc-1"})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(rec.records) != 0 {
		t.Fatalf("records = %d, want 0", len(rec.records))
	}
}

func TestLedgerAuditReturnsEnqueueError(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("redis down")}
	audit := NewLedgerAudit(rec, logger.Discard())

	err := audit.Handle(context.Background(), events.CreditsSpent{BaseEvent: events.NewBaseEvent(), AccountID: "acc-1", RFPID: "rfp-001", Amount: 50})
	if err == nil {
		t.Fatal("expected enqueue error")
	}
}
