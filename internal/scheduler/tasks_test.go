package scheduler

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLedgerRecordTaskRoundTrip(t *testing.T) {
	want := LedgerRecordPayload{
		EntryID:      "3c4f1a9e-59b8-4c36-9d53-1f3a2b6c7d80",
		AccountID:    "acc-1",
		EntryType:    "SPEND",
		Amount:       50,
		BalanceAfter: 100,
		Reference:    "rfp-001",
		OccurredAt:   time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	task, err := NewLedgerRecordTask(want)
	if err != nil {
		t.Fatalf("NewLedgerRecordTask: %v", err)
	}
	if task.Type() != TaskLedgerRecord {
		t.Fatalf("task type = %q, want %q", task.Type(), TaskLedgerRecord)
	}

	got, err := ParseLedgerRecordPayload(task)
	if err != nil {
		t.Fatalf("ParseLedgerRecordPayload: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}
