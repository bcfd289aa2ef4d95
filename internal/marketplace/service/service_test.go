package service

import (
	"context"
	"testing"
	"time"

	"marketplace_backend/internal/marketplace/assistant"
	"marketplace_backend/internal/marketplace/catalog"
	"marketplace_backend/internal/marketplace/domain"
	"marketplace_backend/internal/marketplace/transport"
	"marketplace_backend/platform/apperr"
	"marketplace_backend/platform/logger"
)

func newTestService(t *testing.T, pacer *assistant.Pacer) *Service {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return New(cat, domain.Scorer{}, pacer, logger.Discard())
}

func TestFilterStateFromQuerySanitizes(t *testing.T) {
	state := FilterStateFromQuery(transport.FilterQuery{
		Search:          "  <b>chat</b>bot ",
		Sector:          []string{" Fintech ", "", "<i></i>"},
		IntegrationTime: "",
	})

	if state.Search != "chatbot" {
		t.Fatalf("expected sanitized search, got %q", state.Search)
	}
	if len(state.Sector) != 1 || state.Sector[0] != "Fintech" {
		t.Fatalf("expected one clean sector, got %v", state.Sector)
	}
	if state.IntegrationTime != domain.IntegrationTimeAny {
		t.Fatalf("expected default integration time, got %q", state.IntegrationTime)
	}
	if state.Language == nil {
		t.Fatalf("expected empty slices, not nil")
	}
}

func TestListListingsAnnotatesWithoutReordering(t *testing.T) {
	svc := newTestService(t, assistant.NewPacer(0, 0))
	state := domain.DefaultFilterState()
	state.TechStack = "python"

	resp := svc.ListListings(state)
	if resp.Total != len(resp.Items) {
		t.Fatalf("expected total %d, got %d", len(resp.Items), resp.Total)
	}
	for i := 1; i < len(resp.Items); i++ {
		if resp.Items[i-1].Listing.ID > resp.Items[i].Listing.ID {
			t.Fatalf("expected source order, got %s before %s", resp.Items[i-1].Listing.ID, resp.Items[i].Listing.ID)
		}
	}
	for _, item := range resp.Items {
		if item.MatchScore == nil || *item.MatchScore != 90 {
			t.Fatalf("expected score 90 for %s, got %v", item.Listing.ID, item.MatchScore)
		}
	}
}

func TestAssistFallbackKeepsFilters(t *testing.T) {
	svc := newTestService(t, assistant.NewPacer(0, 0))
	current := domain.DefaultFilterState()
	current.Maturity = []string{"Piloto"}

	resp, err := svc.Assist(context.Background(), transport.AssistantRequest{Message: "hola", Filters: &current})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Patch != nil {
		t.Fatalf("expected no patch, got %+v", resp.Patch)
	}
	if resp.ActiveFilterCount != 1 {
		t.Fatalf("expected filters untouched, got %d active", resp.ActiveFilterCount)
	}
}

func TestAssistCancelledWhilePacing(t *testing.T) {
	svc := newTestService(t, assistant.NewPacer(time.Hour, time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Assist(ctx, transport.AssistantRequest{Message: "fintech"})
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestAssistRejectsMarkupOnlyMessage(t *testing.T) {
	svc := newTestService(t, assistant.NewPacer(0, 0))

	_, err := svc.Assist(context.Background(), transport.AssistantRequest{Message: "<p></p>"})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAssistNormalizesPostedFilters(t *testing.T) {
	svc := newTestService(t, assistant.NewPacer(0, 0))
	posted := domain.FilterState{
		Sector:          []string{"", "  "},
		Maturity:        []string{" <b>Piloto</b> "},
		CostMin:         "abc",
		CostMax:         "NaN",
		IntegrationTime: "",
	}

	resp, err := svc.Assist(context.Background(), transport.AssistantRequest{Message: "hola", Filters: &posted})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Filters.Sector) != 0 || resp.Filters.Sector == nil {
		t.Fatalf("expected empty sector selection, got %#v", resp.Filters.Sector)
	}
	if len(resp.Filters.Maturity) != 1 || resp.Filters.Maturity[0] != "Piloto" {
		t.Fatalf("expected cleaned maturity, got %v", resp.Filters.Maturity)
	}
	if resp.Filters.CostMin != "" || resp.Filters.CostMax != "" {
		t.Fatalf("expected unparseable costs dropped, got %q..%q", resp.Filters.CostMin, resp.Filters.CostMax)
	}
	if resp.Filters.IntegrationTime != domain.IntegrationTimeAny {
		t.Fatalf("expected default integration time, got %q", resp.Filters.IntegrationTime)
	}
	if resp.ActiveFilterCount != 1 {
		t.Fatalf("expected only maturity to count, got %d", resp.ActiveFilterCount)
	}
}

func TestAssistBlankSelectionCountsNothing(t *testing.T) {
	svc := newTestService(t, assistant.NewPacer(0, 0))
	posted := domain.DefaultFilterState()
	posted.Sector = []string{""}

	resp, err := svc.Assist(context.Background(), transport.AssistantRequest{Message: "hola", Filters: &posted})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.ActiveFilterCount != 0 {
		t.Fatalf("expected 0 active filters, got %d", resp.ActiveFilterCount)
	}
	if listed := svc.ListListings(resp.Filters); listed.Items[0].MatchScore != nil {
		t.Fatalf("expected no match score without active filters")
	}
}
