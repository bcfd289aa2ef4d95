package catalog

import (
	"strings"
	"testing"
)

func TestLoadSeedCatalog(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Listings) != 8 {
		t.Fatalf("expected 8 listings, got %d", len(c.Listings))
	}
	if len(c.Requests) == 0 || len(c.Proposals) == 0 {
		t.Fatalf("expected requests and proposals to be seeded")
	}

	wantPackages := []string{"starter", "growth", "enterprise"}
	if len(c.CreditPackages) != len(wantPackages) {
		t.Fatalf("expected %d packages, got %d", len(wantPackages), len(c.CreditPackages))
	}
	for i, id := range wantPackages {
		if c.CreditPackages[i].ID != id {
			t.Fatalf("expected package %d to be %q, got %q", i, id, c.CreditPackages[i].ID)
		}
	}

	l, ok := c.Listing("lst-002")
	if !ok || l.Industry != "Fintech" {
		t.Fatalf("expected lst-002 to be a Fintech listing, got %+v", l)
	}
	r, ok := c.Request("rfp-001")
	if !ok || r.CreditCost != 50 {
		t.Fatalf("expected rfp-001 to cost 50 credits, got %+v", r)
	}
	if _, ok := c.Request("rfp-missing"); ok {
		t.Fatalf("expected unknown request to be absent")
	}
}

func TestParseRejectsDuplicateIDs(t *testing.T) {
	data := []byte(`
listings:
  - id: a
    title: one
  - id: a
    title: two
`)
	_, err := Parse(data)
	if err == nil || !strings.Contains(err.Error(), "duplicate id") {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
}

func TestParseRejectsFreeRequests(t *testing.T) {
	data := []byte(`
requests:
  - id: rfp-x
    title: free
    creditCost: 0
`)
	if _, err := Parse(data); err == nil {
		t.Fatalf("expected error for zero credit cost")
	}
}
