package transport

import "marketplace_backend/internal/marketplace/domain"

// Filters

// FilterQuery binds a FilterState from the query string. Multi-selects take
// repeated keys (?sector=Fintech&sector=Retail).
type FilterQuery struct {
	Search            string   `form:"search" validate:"max=200"`
	Sector            []string `form:"sector" validate:"max=20,dive,max=100"`
	OfferingType      []string `form:"offeringType" validate:"max=20,dive,max=100"`
	ProviderSize      []string `form:"providerSize" validate:"max=20,dive,max=100"`
	Maturity          []string `form:"maturity" validate:"max=20,dive,max=100"`
	AIType            []string `form:"aiType" validate:"max=20,dive,max=100"`
	TechModality      []string `form:"techModality" validate:"max=20,dive,max=100"`
	Language          []string `form:"language" validate:"max=20,dive,max=100"`
	Location          []string `form:"location" validate:"max=20,dive,max=100"`
	Regulations       []string `form:"regulations" validate:"max=20,dive,max=100"`
	Certifications    []string `form:"certifications" validate:"max=20,dive,max=100"`
	DataSecurity      []string `form:"dataSecurity" validate:"max=20,dive,max=100"`
	CostMin           string   `form:"costMin" validate:"omitempty,numeric,max=15"`
	CostMax           string   `form:"costMax" validate:"omitempty,numeric,max=15"`
	HumanIntervention bool     `form:"humanIntervention"`
	TechStack         string   `form:"techStack" validate:"max=100"`
	Integrations      string   `form:"integrations" validate:"max=100"`
	IntegrationTime   string   `form:"integrationTime" validate:"max=50"`
}

// Listings

type ListingItem struct {
	Listing    domain.Listing `json:"listing"`
	MatchScore *int           `json:"matchScore,omitempty"`
}

type ListingListResponse struct {
	Items             []ListingItem `json:"items"`
	Total             int           `json:"total"`
	ActiveFilterCount int           `json:"activeFilterCount"`
}

// Proposals

type ProposalListResponse struct {
	Items             []domain.Proposal `json:"items"`
	Total             int               `json:"total"`
	ActiveFilterCount int               `json:"activeFilterCount"`
}

// Assistant

type AssistantRequest struct {
	Message string              `json:"message" validate:"required,min=1,max=500"`
	Filters *domain.FilterState `json:"filters"`
}

type AssistantResponse struct {
	Reply             string              `json:"reply"`
	Patch             *domain.FilterPatch `json:"patch"`
	Filters           domain.FilterState  `json:"filters"`
	ActiveFilterCount int                 `json:"activeFilterCount"`
}
