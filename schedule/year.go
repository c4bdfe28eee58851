package schedule

import "github.com/tlindfors/fieldsched/fields"

// InferYear scans both team names for the catalogue's year markers and
// returns the first matching label, or "" when no marker occurs. Team1 is
// scanned before team2, and markers in table order within each team.
//
// The function is pure: identical inputs always yield the identical
// result, independent of any block or header state. A non-empty result
// overrides the block's header year for the single record being emitted.
func InferYear(markers []fields.YearMarker, team1, team2 string) string {
	for _, team := range [2]string{team1, team2} {
		if team == "" {
			continue
		}
		for i := range markers {
			if label, ok := markers[i].Find(team); ok {
				return label
			}
		}
	}
	return ""
}
