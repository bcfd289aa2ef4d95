package ledger

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustNew(t *testing.T, initial int64) *Ledger {
	t.Helper()
	l, err := New(initial)
	if err != nil {
		t.Fatalf("expected ledger, got error %v", err)
	}
	return l
}

func TestSpendThenInsufficientScenario(t *testing.T) {
	l := mustNew(t, 150)

	res, err := l.Spend(50, "rfp-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.OK || res.Charged != 50 {
		t.Fatalf("expected successful charge of 50, got %+v", res)
	}
	if l.Balance() != 100 {
		t.Fatalf("expected balance 100, got %d", l.Balance())
	}
	if !l.IsUnlocked("rfp-1") {
		t.Fatal("expected rfp-1 to be unlocked")
	}

	res, err = l.Spend(200, "rfp-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.OK {
		t.Fatalf("expected insufficient balance, got %+v", res)
	}
	if l.Balance() != 100 {
		t.Fatalf("expected balance to stay 100, got %d", l.Balance())
	}
	if l.IsUnlocked("rfp-2") {
		t.Fatal("expected rfp-2 to stay locked")
	}
}

func TestSpendNeverDrivesBalanceNegative(t *testing.T) {
	for balance := int64(0); balance <= 20; balance++ {
		for amount := int64(1); amount <= 25; amount++ {
			l := mustNew(t, balance)
			res, err := l.Spend(amount, "rfp")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if amount <= balance {
				if !res.OK || l.Balance() != balance-amount {
					t.Fatalf("balance=%d amount=%d: expected ok and balance %d, got %+v balance %d", balance, amount, balance-amount, res, l.Balance())
				}
			} else if res.OK || l.Balance() != balance {
				t.Fatalf("balance=%d amount=%d: expected refusal with unchanged balance, got %+v balance %d", balance, amount, res, l.Balance())
			}
			if l.Balance() < 0 {
				t.Fatalf("balance went negative: %d", l.Balance())
			}
		}
	}
}

func TestSpendIsIdempotentPerID(t *testing.T) {
	l := mustNew(t, 100)
	if _, err := l.Spend(30, "rfp-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res, err := l.Spend(30, "rfp-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.OK || !res.AlreadyUnlocked || res.Charged != 0 {
		t.Fatalf("expected free re-unlock, got %+v", res)
	}
	if l.Balance() != 70 {
		t.Fatalf("expected balance 70 after re-spend, got %d", l.Balance())
	}
}

func TestUnlockIsPermanent(t *testing.T) {
	l := mustNew(t, 60)
	if _, err := l.Spend(60, "rfp-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Refused spends and top-ups must not disturb earlier unlocks.
	if res, _ := l.Spend(10, "rfp-2"); res.OK {
		t.Fatalf("expected refusal with zero balance, got %+v", res)
	}
	if _, err := l.Add(5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := l.Spend(5, "rfp-3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !l.IsUnlocked("rfp-1") {
		t.Fatal("expected rfp-1 to remain unlocked")
	}
	want := []string{"rfp-1", "rfp-3"}
	if diff := cmp.Diff(want, l.Snapshot().UnlockedIDs); diff != "" {
		t.Fatalf("unlocked ids mismatch (-want +got):\n%s", diff)
	}
}

func TestAddIncreasesBalanceByExactAmount(t *testing.T) {
	l := mustNew(t, 10)
	for _, n := range []int64{1, 7, 1000} {
		before := l.Balance()
		after, err := l.Add(n)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if after != before+n || l.Balance() != before+n {
			t.Fatalf("expected balance %d, got %d", before+n, l.Balance())
		}
	}
}

func TestInvalidInputIsRejectedWithoutMutation(t *testing.T) {
	l := mustNew(t, 50)

	for _, amount := range []int64{0, -1} {
		if _, err := l.Spend(amount, "rfp-1"); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount for %d, got %v", amount, err)
		}
		if _, err := l.Add(amount); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount for add %d, got %v", amount, err)
		}
	}
	if _, err := l.Spend(10, ""); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	if l.Balance() != 50 || len(l.Snapshot().UnlockedIDs) != 0 {
		t.Fatalf("expected untouched ledger, got %+v", l.Snapshot())
	}

	if _, err := New(-1); !errors.Is(err, ErrNegativeBalance) {
		t.Fatalf("expected ErrNegativeBalance, got %v", err)
	}
}

func TestRestoreRoundTripsSnapshot(t *testing.T) {
	l, err := Restore(Snapshot{Balance: 40, UnlockedIDs: []string{"a", "b", "a"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(Snapshot{Balance: 40, UnlockedIDs: []string{"a", "b"}}, l.Snapshot()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestConcurrentSpendsChargeEachIDOnce(t *testing.T) {
	l := mustNew(t, 1000)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = l.Spend(10, fmt.Sprintf("rfp-%d", i%10))
		}(i)
	}
	wg.Wait()

	if l.Balance() != 900 {
		t.Fatalf("expected 10 distinct charges leaving 900, got %d", l.Balance())
	}
}
