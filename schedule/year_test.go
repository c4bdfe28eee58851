package schedule

import (
	"testing"

	"github.com/tlindfors/fieldsched/fields"
)

func TestInferYear(t *testing.T) {
	markers := fields.DefaultCatalogue().YearMarkers

	tests := []struct {
		name  string
		team1 string
		team2 string
		want  string
	}{
		{"marker in team1", "FC Honka 15", "Kontu", "2015"},
		{"marker in team2 only", "Kontu", "HJK 09", "2009"},
		{"team1 wins over team2", "Honka 15", "HJK 09", "2015"},
		{"leading marker", "08 Vihreät", "", "2008"},
		{"no marker", "Kontu", "Honka", ""},
		{"embedded digits ignored", "U15Juniors", "Team2000", ""},
		{"empty teams", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferYear(markers, tt.team1, tt.team2); got != tt.want {
				t.Errorf("InferYear(%q, %q) = %q, want %q", tt.team1, tt.team2, got, tt.want)
			}
		})
	}
}

// The inference is pure: repeated calls with the same inputs agree.
func TestInferYear_Deterministic(t *testing.T) {
	markers := fields.DefaultCatalogue().YearMarkers

	first := InferYear(markers, "FC Honka 15", "HJK 09")
	for i := 0; i < 5; i++ {
		if got := InferYear(markers, "FC Honka 15", "HJK 09"); got != first {
			t.Fatalf("Run %d differs: %q vs %q", i, got, first)
		}
	}
}

func TestInferYear_NoMarkers(t *testing.T) {
	if got := InferYear(nil, "FC Honka 15", ""); got != "" {
		t.Errorf("Expected empty result with no markers, got %q", got)
	}
}
