package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketplace_backend/internal/credits/repository"
	"marketplace_backend/platform/logger"

	"github.com/hibiken/asynq"
)

type fakeWriter struct {
	entries []repository.LedgerEntry
}

func (f *fakeWriter) Insert(_ context.Context, e repository.LedgerEntry) error {
	f.entries = append(f.entries, e)
	return nil
}

func TestHandleLedgerRecordWritesEntry(t *testing.T) {
	writer := &fakeWriter{}
	w := &Worker{writer: writer, log: logger.Discard()}

	task, err := NewLedgerRecordTask(LedgerRecordPayload{
		EntryID:      "3c4f1a9e-59b8-4c36-9d53-1f3a2b6c7d80",
		AccountID:    "acc-1",
		EntryType:    repository.EntryTopUp,
		Amount:       100,
		BalanceAfter: 250,
		OccurredAt:   time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("NewLedgerRecordTask: %v", err)
	}

	if err := w.handleLedgerRecord(context.Background(), task); err != nil {
		t.Fatalf("handleLedgerRecord: %v", err)
	}
	if len(writer.entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(writer.entries))
	}
	if got := writer.entries[0]; got.ID.String() != "3c4f1a9e-59b8-4c36-9d53-1f3a2b6c7d80" || got.BalanceAfter != 250 {
		t.Fatalf("entry = %+v", got)
	}
}

func TestHandleLedgerRecordSkipsRetryOnBadPayload(t *testing.T) {
	w := &Worker{writer: &fakeWriter{}, log: logger.Discard()}

	err := w.handleLedgerRecord(context.Background(), asynq.NewTask(TaskLedgerRecord, []byte("{not json")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("err = %v, want SkipRetry", err)
	}

	task, _ := NewLedgerRecordTask(LedgerRecordPayload{EntryID: "not-a-uuid"})
	err = w.handleLedgerRecord(context.Background(), task)
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("err = %v, want SkipRetry", err)
	}
}
