package assistant

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRespondBuckets(t *testing.T) {
	cases := []struct {
		message string
		check   func(Reply) bool
	}{
		{"Quiero AUTOMATIZAR facturas", func(r Reply) bool {
			return r.Patch != nil && r.Patch.AIType != nil && (*r.Patch.AIType)[0] == "Automatización"
		}},
		{"algo para banca", func(r Reply) bool {
			return r.Patch != nil && r.Patch.Sector != nil && (*r.Patch.Sector)[0] == "Fintech"
		}},
		{"necesito ROI", func(r Reply) bool {
			return r.Patch != nil && r.Patch.IntegrationTime != nil && *r.Patch.IntegrationTime == "< 1 mes"
		}},
		{"necesito integración con el ERP", func(r Reply) bool {
			return r.Patch != nil && r.Patch.TechStack != nil && *r.Patch.TechStack == "SAP"
		}},
		{"hola", func(r Reply) bool {
			return r.Patch == nil && r.Text == fallbackText
		}},
	}

	for _, tc := range cases {
		if got := Respond(tc.message); !tc.check(got) {
			t.Fatalf("unexpected reply for %q: %+v", tc.message, got)
		}
	}
}

func TestRespondFirstBucketWins(t *testing.T) {
	r := Respond("automatizar la banca con SAP")
	if r.Patch == nil || r.Patch.AIType == nil {
		t.Fatalf("expected automation bucket to win, got %+v", r.Patch)
	}
	if r.Patch.Sector != nil || r.Patch.TechStack != nil {
		t.Fatalf("expected a single-bucket patch, got %+v", r.Patch)
	}
}

func TestRespondReturnsFreshPatches(t *testing.T) {
	first := Respond("fintech")
	(*first.Patch.Sector)[0] = "mutated"

	second := Respond("fintech")
	if (*second.Patch.Sector)[0] != "Fintech" {
		t.Fatalf("expected patches not to share state, got %v", *second.Patch.Sector)
	}
}

func TestPacerDelayWithinWindow(t *testing.T) {
	p := NewPacer(time.Second, 1500*time.Millisecond)
	for i := 0; i < 100; i++ {
		d := p.Delay()
		if d < time.Second || d > 1500*time.Millisecond {
			t.Fatalf("delay out of window: %v", d)
		}
	}
}

func TestPacerWaitHonoursCancellation(t *testing.T) {
	p := NewPacer(time.Hour, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := p.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPacerZeroWindowReturnsImmediately(t *testing.T) {
	p := NewPacer(0, 0)
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
