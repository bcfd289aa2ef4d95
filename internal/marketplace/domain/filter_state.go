// Package domain provides the marketplace filter and match rules.
package domain

import "strings"

// IntegrationTimeAny is the single-select sentinel meaning "no constraint".
const IntegrationTimeAny = "Cualquiera"

// FilterState is the flat set of predicates applied to a catalog. Empty
// slices, empty strings and IntegrationTimeAny leave a dimension unconstrained.
type FilterState struct {
	Search            string   `json:"search"`
	Sector            []string `json:"sector"`
	OfferingType      []string `json:"offeringType"`
	ProviderSize      []string `json:"providerSize"`
	Maturity          []string `json:"maturity"`
	AIType            []string `json:"aiType"`
	TechModality      []string `json:"techModality"`
	Language          []string `json:"language"`
	Location          []string `json:"location"`
	Regulations       []string `json:"regulations"`
	Certifications    []string `json:"certifications"`
	DataSecurity      []string `json:"dataSecurity"`
	CostMin           string   `json:"costMin"`
	CostMax           string   `json:"costMax"`
	HumanIntervention bool     `json:"humanIntervention"`
	TechStack         string   `json:"techStack"`
	Integrations      string   `json:"integrations"`
	IntegrationTime   string   `json:"integrationTime"`
}

// DefaultFilterState returns the unconstrained state.
func DefaultFilterState() FilterState {
	return FilterState{
		Sector:          []string{},
		OfferingType:    []string{},
		ProviderSize:    []string{},
		Maturity:        []string{},
		AIType:          []string{},
		TechModality:    []string{},
		Language:        []string{},
		Location:        []string{},
		Regulations:     []string{},
		Certifications:  []string{},
		DataSecurity:    []string{},
		IntegrationTime: IntegrationTimeAny,
	}
}

// Reset returns the unconstrained state.
func (s FilterState) Reset() FilterState {
	return DefaultFilterState()
}

// FilterPatch is a partial FilterState. Nil fields are left untouched.
type FilterPatch struct {
	Search            *string   `json:"search,omitempty"`
	Sector            *[]string `json:"sector,omitempty"`
	OfferingType      *[]string `json:"offeringType,omitempty"`
	ProviderSize      *[]string `json:"providerSize,omitempty"`
	Maturity          *[]string `json:"maturity,omitempty"`
	AIType            *[]string `json:"aiType,omitempty"`
	TechModality      *[]string `json:"techModality,omitempty"`
	Language          *[]string `json:"language,omitempty"`
	Location          *[]string `json:"location,omitempty"`
	Regulations       *[]string `json:"regulations,omitempty"`
	Certifications    *[]string `json:"certifications,omitempty"`
	DataSecurity      *[]string `json:"dataSecurity,omitempty"`
	CostMin           *string   `json:"costMin,omitempty"`
	CostMax           *string   `json:"costMax,omitempty"`
	HumanIntervention *bool     `json:"humanIntervention,omitempty"`
	TechStack         *string   `json:"techStack,omitempty"`
	Integrations      *string   `json:"integrations,omitempty"`
	IntegrationTime   *string   `json:"integrationTime,omitempty"`
}

// IsEmpty reports whether the patch sets no field.
func (p FilterPatch) IsEmpty() bool {
	return p == FilterPatch{}
}

// Apply merges p into s shallowly: a set field replaces the whole value,
// slices included. s is not modified.
func (s FilterState) Apply(p FilterPatch) FilterState {
	out := s
	setString(&out.Search, p.Search)
	setSlice(&out.Sector, p.Sector)
	setSlice(&out.OfferingType, p.OfferingType)
	setSlice(&out.ProviderSize, p.ProviderSize)
	setSlice(&out.Maturity, p.Maturity)
	setSlice(&out.AIType, p.AIType)
	setSlice(&out.TechModality, p.TechModality)
	setSlice(&out.Language, p.Language)
	setSlice(&out.Location, p.Location)
	setSlice(&out.Regulations, p.Regulations)
	setSlice(&out.Certifications, p.Certifications)
	setSlice(&out.DataSecurity, p.DataSecurity)
	setString(&out.CostMin, p.CostMin)
	setString(&out.CostMax, p.CostMax)
	if p.HumanIntervention != nil {
		out.HumanIntervention = *p.HumanIntervention
	}
	setString(&out.TechStack, p.TechStack)
	setString(&out.Integrations, p.Integrations)
	setString(&out.IntegrationTime, p.IntegrationTime)
	return out
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setSlice(dst *[]string, v *[]string) {
	if v != nil {
		*dst = append([]string{}, (*v)...)
	}
}

// ActiveFilterCount sums the selected values of every multi-select, plus one
// for the human-intervention toggle and one per non-default string filter.
// Search is a query and does not count.
func ActiveFilterCount(s FilterState) int {
	count := len(s.Sector) + len(s.OfferingType) + len(s.ProviderSize) +
		len(s.Maturity) + len(s.AIType) + len(s.TechModality) + len(s.Language) +
		len(s.Location) + len(s.Regulations) + len(s.Certifications) + len(s.DataSecurity)
	if s.HumanIntervention {
		count++
	}
	for _, v := range []string{s.CostMin, s.CostMax, s.TechStack, s.Integrations} {
		if strings.TrimSpace(v) != "" {
			count++
		}
	}
	if integrationTimeActive(s.IntegrationTime) {
		count++
	}
	return count
}

func integrationTimeActive(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != IntegrationTimeAny
}
