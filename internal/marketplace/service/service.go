package service

import (
	"context"
	"math"
	"strconv"
	"strings"

	"marketplace_backend/internal/marketplace/assistant"
	"marketplace_backend/internal/marketplace/catalog"
	"marketplace_backend/internal/marketplace/domain"
	"marketplace_backend/internal/marketplace/transport"
	"marketplace_backend/platform/apperr"
	"marketplace_backend/platform/logger"
	"marketplace_backend/platform/sanitize"
)

const (
	maxSearchRunes  = 200
	maxMessageRunes = 500
)

// Service serves the filterable marketplace catalog and the filter assistant.
type Service struct {
	catalog *catalog.Catalog
	scorer  domain.Scorer
	pacer   *assistant.Pacer
	log     *logger.Logger
}

// New creates a new marketplace service.
func New(cat *catalog.Catalog, scorer domain.Scorer, pacer *assistant.Pacer, log *logger.Logger) *Service {
	return &Service{catalog: cat, scorer: scorer, pacer: pacer, log: log}
}

// FilterStateFromQuery turns a bound query into a sanitized FilterState.
func FilterStateFromQuery(q transport.FilterQuery) domain.FilterState {
	return normalizeState(domain.FilterState{
		Search:            q.Search,
		Sector:            q.Sector,
		OfferingType:      q.OfferingType,
		ProviderSize:      q.ProviderSize,
		Maturity:          q.Maturity,
		AIType:            q.AIType,
		TechModality:      q.TechModality,
		Language:          q.Language,
		Location:          q.Location,
		Regulations:       q.Regulations,
		Certifications:    q.Certifications,
		DataSecurity:      q.DataSecurity,
		CostMin:           q.CostMin,
		CostMax:           q.CostMax,
		HumanIntervention: q.HumanIntervention,
		TechStack:         q.TechStack,
		Integrations:      q.Integrations,
		IntegrationTime:   q.IntegrationTime,
	})
}

// normalizeState sanitizes client-supplied filters so that every value it
// keeps is one the engine will actually filter on.
func normalizeState(in domain.FilterState) domain.FilterState {
	s := domain.DefaultFilterState()
	s.Search = sanitize.Query(in.Search, maxSearchRunes)
	s.Sector = nonNil(sanitize.Strings(in.Sector))
	s.OfferingType = nonNil(sanitize.Strings(in.OfferingType))
	s.ProviderSize = nonNil(sanitize.Strings(in.ProviderSize))
	s.Maturity = nonNil(sanitize.Strings(in.Maturity))
	s.AIType = nonNil(sanitize.Strings(in.AIType))
	s.TechModality = nonNil(sanitize.Strings(in.TechModality))
	s.Language = nonNil(sanitize.Strings(in.Language))
	s.Location = nonNil(sanitize.Strings(in.Location))
	s.Regulations = nonNil(sanitize.Strings(in.Regulations))
	s.Certifications = nonNil(sanitize.Strings(in.Certifications))
	s.DataSecurity = nonNil(sanitize.Strings(in.DataSecurity))
	s.CostMin = costBound(in.CostMin)
	s.CostMax = costBound(in.CostMax)
	s.HumanIntervention = in.HumanIntervention
	s.TechStack = sanitize.Text(in.TechStack)
	s.Integrations = sanitize.Text(in.Integrations)
	if it := sanitize.Text(in.IntegrationTime); it != "" {
		s.IntegrationTime = it
	}
	return s
}

// costBound keeps v only when it parses as a finite number.
func costBound(v string) string {
	v = strings.TrimSpace(v)
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	return v
}

// ListListings filters listings and annotates each with its match score.
func (s *Service) ListListings(state domain.FilterState) transport.ListingListResponse {
	result := domain.FilterListings(s.catalog.Listings, state)
	items := make([]transport.ListingItem, 0, len(result.Items))
	for i, l := range result.Items {
		items = append(items, transport.ListingItem{
			Listing:    l,
			MatchScore: s.scorer.Score(l, state, i),
		})
	}
	return transport.ListingListResponse{
		Items:             items,
		Total:             result.Total,
		ActiveFilterCount: domain.ActiveFilterCount(state),
	}
}

// GetListing returns a single listing.
func (s *Service) GetListing(id string) (domain.Listing, error) {
	l, ok := s.catalog.Listing(strings.TrimSpace(id))
	if !ok {
		return domain.Listing{}, apperr.NotFound("listing not found")
	}
	return l, nil
}

// ListProposals filters proposals.
func (s *Service) ListProposals(state domain.FilterState) transport.ProposalListResponse {
	result := domain.FilterProposals(s.catalog.Proposals, state)
	return transport.ProposalListResponse{
		Items:             result.Items,
		Total:             result.Total,
		ActiveFilterCount: domain.ActiveFilterCount(state),
	}
}

// FilterRequests filters the RFP catalog.
func (s *Service) FilterRequests(state domain.FilterState) domain.Result[domain.Request] {
	return domain.FilterRequests(s.catalog.Requests, state)
}

// GetRequest returns a single RFP.
func (s *Service) GetRequest(id string) (domain.Request, bool) {
	return s.catalog.Request(strings.TrimSpace(id))
}

// CreditPackages returns the purchasable credit packages.
func (s *Service) CreditPackages() []catalog.CreditPackage {
	return s.catalog.CreditPackages
}

// DefaultFilters returns the unconstrained filter state.
func (s *Service) DefaultFilters() domain.FilterState {
	return domain.DefaultFilterState()
}

// Assist answers a chat message and merges the suggested patch into the
// caller's filters. The reply is paced; cancellation aborts the wait.
func (s *Service) Assist(ctx context.Context, req transport.AssistantRequest) (transport.AssistantResponse, error) {
	message := sanitize.Query(req.Message, maxMessageRunes)
	if message == "" {
		return transport.AssistantResponse{}, apperr.Validation("message is required")
	}

	current := domain.DefaultFilterState()
	if req.Filters != nil {
		current = normalizeState(*req.Filters)
	}

	if err := s.pacer.Wait(ctx); err != nil {
		return transport.AssistantResponse{}, apperr.Wrap(apperr.KindBadRequest, "request cancelled", err).WithOp("marketplace.assist")
	}

	reply := assistant.Respond(message)
	next := current
	if reply.Patch != nil {
		next = current.Apply(*reply.Patch)
	}

	s.log.WithContext(ctx).Debug("assistant reply", "matchedPatch", reply.Patch != nil)

	return transport.AssistantResponse{
		Reply:             reply.Text,
		Patch:             reply.Patch,
		Filters:           next,
		ActiveFilterCount: domain.ActiveFilterCount(next),
	}, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
