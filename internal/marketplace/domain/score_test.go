package domain

import "testing"

func TestMatchScoreUndefinedWithoutFilters(t *testing.T) {
	s := DefaultFilterState()
	s.Search = "chatbot"
	if got := MatchScore(Listing{Industry: "Fintech"}, s, 0); got != nil {
		t.Fatalf("expected no score, got %d", *got)
	}
}

func TestMatchScoreBonuses(t *testing.T) {
	listing := Listing{Industry: "Fintech", TechStack: []string{"Python", "SAP S/4HANA"}}

	cases := []struct {
		name  string
		patch FilterPatch
		want  int
	}{
		{"base", FilterPatch{AIType: &[]string{"Automatización"}}, 75},
		{"sector", FilterPatch{Sector: &[]string{"fintech"}}, 85},
		{"tech stack", FilterPatch{TechStack: strPtr("sap")}, 90},
		{"both capped", FilterPatch{Sector: &[]string{"Fintech"}, TechStack: strPtr("python")}, 98},
		{"sector miss", FilterPatch{Sector: &[]string{"Retail"}}, 75},
	}

	for _, tc := range cases {
		got := MatchScore(listing, DefaultFilterState().Apply(tc.patch), 0)
		if got == nil || *got != tc.want {
			t.Fatalf("%s: expected %d, got %v", tc.name, tc.want, got)
		}
	}
}

func TestMatchScoreJitter(t *testing.T) {
	s := DefaultFilterState()
	s.Maturity = []string{"Piloto"}
	scorer := Scorer{Jitter: true}

	want := []int{75, 77, 79, 75, 77}
	for i, w := range want {
		got := scorer.Score(Listing{}, s, i)
		if got == nil || *got != w {
			t.Fatalf("index %d: expected %d, got %v", i, w, got)
		}
	}

	if got := MatchScore(Listing{}, s, 2); *got != 75 {
		t.Fatalf("expected jitter to be off by default, got %d", *got)
	}
}

func TestMatchScoreStaysInBounds(t *testing.T) {
	listings := []Listing{
		{},
		{Industry: "Fintech"},
		{TechStack: []string{"SAP"}},
		{Industry: "Fintech", TechStack: []string{"SAP"}},
	}
	patches := []FilterPatch{
		{Sector: &[]string{"Fintech"}},
		{TechStack: strPtr("SAP")},
		{Sector: &[]string{"Fintech"}, TechStack: strPtr("SAP")},
		{HumanIntervention: boolPtr(true)},
	}

	for _, jitter := range []bool{false, true} {
		scorer := Scorer{Jitter: jitter}
		for _, l := range listings {
			for _, p := range patches {
				for i := 0; i < 6; i++ {
					got := scorer.Score(l, DefaultFilterState().Apply(p), i)
					if got == nil || *got < 75 || *got > 98 {
						t.Fatalf("score out of bounds: %v", got)
					}
				}
			}
		}
	}
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
