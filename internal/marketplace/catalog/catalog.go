// Package catalog loads the immutable marketplace seed data.
package catalog

import (
	_ "embed"
	"fmt"

	"marketplace_backend/internal/marketplace/domain"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seed []byte

// CreditPackage is a purchasable bundle of credits.
type CreditPackage struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Credits    int64  `yaml:"credits"`
	PriceCents int64  `yaml:"priceCents"`
	Currency   string `yaml:"currency"`
}

// Catalog holds the static listings, proposals, requests and credit packages.
// Slices keep source order and must not be modified by callers.
type Catalog struct {
	Listings       []domain.Listing  `yaml:"listings"`
	Proposals      []domain.Proposal `yaml:"proposals"`
	Requests       []domain.Request  `yaml:"requests"`
	CreditPackages []CreditPackage   `yaml:"creditPackages"`

	listingIndex map[string]int
	requestIndex map[string]int
}

// Load parses the embedded seed catalog.
func Load() (*Catalog, error) {
	return Parse(seed)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	var err error
	if c.listingIndex, err = index(c.Listings, func(l domain.Listing) string { return l.ID }); err != nil {
		return nil, fmt.Errorf("listings: %w", err)
	}
	if c.requestIndex, err = index(c.Requests, func(r domain.Request) string { return r.ID }); err != nil {
		return nil, fmt.Errorf("requests: %w", err)
	}
	if _, err = index(c.Proposals, func(p domain.Proposal) string { return p.ID }); err != nil {
		return nil, fmt.Errorf("proposals: %w", err)
	}
	if _, err = index(c.CreditPackages, func(p CreditPackage) string { return p.ID }); err != nil {
		return nil, fmt.Errorf("credit packages: %w", err)
	}

	for _, r := range c.Requests {
		if r.CreditCost <= 0 {
			return nil, fmt.Errorf("request %s: credit cost must be positive", r.ID)
		}
	}
	for _, p := range c.CreditPackages {
		if p.Credits <= 0 {
			return nil, fmt.Errorf("credit package %s: credits must be positive", p.ID)
		}
	}
	return &c, nil
}

func index[T any](items []T, id func(T) string) (map[string]int, error) {
	out := make(map[string]int, len(items))
	for i, item := range items {
		key := id(item)
		if key == "" {
			return nil, fmt.Errorf("entry %d has no id", i)
		}
		if _, dup := out[key]; dup {
			return nil, fmt.Errorf("duplicate id %q", key)
		}
		out[key] = i
	}
	return out, nil
}

// Listing returns the listing with id.
func (c *Catalog) Listing(id string) (domain.Listing, bool) {
	i, ok := c.listingIndex[id]
	if !ok {
		return domain.Listing{}, false
	}
	return c.Listings[i], true
}

// Request returns the RFP with id.
func (c *Catalog) Request(id string) (domain.Request, bool) {
	i, ok := c.requestIndex[id]
	if !ok {
		return domain.Request{}, false
	}
	return c.Requests[i], true
}
