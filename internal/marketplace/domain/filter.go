package domain

import (
	"math"
	"strconv"
	"strings"

	"marketplace_backend/platform/textmatch"
)

// Result is a filtered catalog slice in source order.
type Result[T any] struct {
	Items []T
	Total int
}

func newResult[T any](items []T) Result[T] {
	return Result[T]{Items: items, Total: len(items)}
}

// predicate reports whether an entry survives one dimension.
type predicate[T any] func(T) bool

func filter[T any](catalog []T, preds []predicate[T]) Result[T] {
	out := make([]T, 0, len(catalog))
	for _, entry := range catalog {
		if matchesAll(entry, preds) {
			out = append(out, entry)
		}
	}
	return newResult(out)
}

func matchesAll[T any](entry T, preds []predicate[T]) bool {
	for _, p := range preds {
		if !p(entry) {
			return false
		}
	}
	return true
}

// FilterListings narrows listings to the entries satisfying every active dimension.
func FilterListings(catalog []Listing, s FilterState) Result[Listing] {
	return filter(catalog, listingPredicates(s))
}

// FilterProposals narrows proposals. Dimensions proposals do not carry are inert.
func FilterProposals(catalog []Proposal, s FilterState) Result[Proposal] {
	return filter(catalog, proposalPredicates(s))
}

// FilterRequests narrows RFPs. Dimensions requests do not carry are inert.
func FilterRequests(catalog []Request, s FilterState) Result[Request] {
	return filter(catalog, requestPredicates(s))
}

func listingPredicates(s FilterState) []predicate[Listing] {
	var preds []predicate[Listing]
	if q := strings.TrimSpace(s.Search); q != "" {
		preds = append(preds, func(l Listing) bool {
			return textmatch.Contains(l.Title, q) ||
				textmatch.Contains(l.Description, q) ||
				textmatch.Contains(l.Provider, q) ||
				textmatch.Contains(l.Industry, q) ||
				textmatch.AnyContains(l.TechStack, q)
		})
	}
	preds = appendSelect(preds, s.Sector, func(l Listing) string { return l.Industry })
	preds = appendSelect(preds, s.OfferingType, func(l Listing) string { return l.OfferingType })
	preds = appendSelect(preds, s.ProviderSize, func(l Listing) string { return l.ProviderSize })
	preds = appendSelect(preds, s.Maturity, func(l Listing) string { return l.Maturity })
	preds = appendSelect(preds, s.AIType, func(l Listing) string { return l.AIType })
	preds = appendSelect(preds, s.TechModality, func(l Listing) string { return l.Modality })
	preds = appendSelectList(preds, s.Language, func(l Listing) []string { return l.Languages })
	preds = appendSelect(preds, s.Location, func(l Listing) string { return l.Location })
	preds = appendSelectList(preds, s.Regulations, func(l Listing) []string { return l.Regulations })
	preds = appendSelectList(preds, s.Certifications, func(l Listing) []string { return l.Certifications })
	preds = appendSelectList(preds, s.DataSecurity, func(l Listing) []string { return l.DataSecurity })
	preds = appendCostRange(preds, s, func(l Listing) float64 { return l.PriceFrom })
	if s.HumanIntervention {
		preds = append(preds, func(l Listing) bool { return l.HumanInTheLoop })
	}
	if q := strings.TrimSpace(s.TechStack); q != "" {
		preds = append(preds, func(l Listing) bool { return textmatch.AnyContains(l.TechStack, q) })
	}
	if q := strings.TrimSpace(s.Integrations); q != "" {
		preds = append(preds, func(l Listing) bool { return textmatch.AnyContains(l.Integrations, q) })
	}
	if integrationTimeActive(s.IntegrationTime) {
		want := textmatch.Fold(strings.TrimSpace(s.IntegrationTime))
		preds = append(preds, func(l Listing) bool {
			return textmatch.Fold(strings.TrimSpace(l.IntegrationTime)) == want
		})
	}
	return preds
}

func proposalPredicates(s FilterState) []predicate[Proposal] {
	var preds []predicate[Proposal]
	if q := strings.TrimSpace(s.Search); q != "" {
		preds = append(preds, func(p Proposal) bool {
			return textmatch.Contains(p.Title, q) ||
				textmatch.Contains(p.Summary, q) ||
				textmatch.Contains(p.Provider, q) ||
				textmatch.Contains(p.Sector, q) ||
				textmatch.AnyContains(p.Tags, q)
		})
	}
	preds = appendSelect(preds, s.Sector, func(p Proposal) string { return p.Sector })
	preds = appendSelect(preds, s.OfferingType, func(p Proposal) string { return p.OfferingType })
	preds = appendSelect(preds, s.ProviderSize, func(p Proposal) string { return p.ProviderSize })
	preds = appendSelect(preds, s.AIType, func(p Proposal) string { return p.AIType })
	preds = appendCostRange(preds, s, func(p Proposal) float64 { return p.Amount })
	return preds
}

func requestPredicates(s FilterState) []predicate[Request] {
	var preds []predicate[Request]
	if q := strings.TrimSpace(s.Search); q != "" {
		preds = append(preds, func(r Request) bool {
			return textmatch.Contains(r.Title, q) ||
				textmatch.Contains(r.Description, q) ||
				textmatch.Contains(r.Company, q) ||
				textmatch.Contains(r.Sector, q) ||
				textmatch.AnyContains(r.Tags, q)
		})
	}
	preds = appendSelect(preds, s.Sector, func(r Request) string { return r.Sector })
	preds = appendSelect(preds, s.OfferingType, func(r Request) string { return r.OfferingType })
	preds = appendSelect(preds, s.AIType, func(r Request) string { return r.AIType })
	preds = appendSelect(preds, s.Location, func(r Request) string { return r.Location })
	preds = appendSelectList(preds, s.Regulations, func(r Request) []string { return r.Regulations })
	preds = appendCostRange(preds, s, func(r Request) float64 { return r.Budget })
	return preds
}

// appendSelect adds a multi-select dimension over a single-valued field: any
// selected value found in the field satisfies it.
func appendSelect[T any](preds []predicate[T], selected []string, field func(T) string) []predicate[T] {
	selected = activeValues(selected)
	if len(selected) == 0 {
		return preds
	}
	return append(preds, func(entry T) bool {
		return textmatch.ContainsAny(field(entry), selected)
	})
}

func appendSelectList[T any](preds []predicate[T], selected []string, field func(T) []string) []predicate[T] {
	selected = activeValues(selected)
	if len(selected) == 0 {
		return preds
	}
	return append(preds, func(entry T) bool {
		return textmatch.AnyContainsAny(field(entry), selected)
	})
}

func appendCostRange[T any](preds []predicate[T], s FilterState, field func(T) float64) []predicate[T] {
	lo, hasLo := parseCost(s.CostMin)
	hi, hasHi := parseCost(s.CostMax)
	if !hasLo && !hasHi {
		return preds
	}
	return append(preds, func(entry T) bool {
		v := field(entry)
		if hasLo && v < lo {
			return false
		}
		if hasHi && v > hi {
			return false
		}
		return true
	})
}

// parseCost reads a numeric range bound. Unparseable input counts as absent.
func parseCost(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func activeValues(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
