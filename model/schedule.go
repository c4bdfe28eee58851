package model

// FieldBlock is the header context of one physical field column: the field
// name plus the per-field metadata read from the header line below it.
// At most two blocks are active at a time (left and right); a block is
// replaced wholesale when a new field-name line is encountered and never
// merges with a previous block.
type FieldBlock struct {
	// Name is the field name as it appeared on the field-name line
	Name string

	// GameDuration, GameType and Year come from the header line
	// (first three header fragments in X order)
	GameDuration string
	GameType     string
	Year         string

	// StartX is the X coordinate of the field-name fragment; it anchors
	// the block's row-selection range
	StartX float64
}

// GameRecord is one extracted game row. Field, GameDuration, GameType and
// Year come from exactly one FieldBlock that was active at emission time;
// Year may be overridden by team-name based inference for this record only.
type GameRecord struct {
	Field        string `json:"field"`
	GameDuration string `json:"gameDuration"`
	GameType     string `json:"gameType"`
	Year         string `json:"year"`
	Time         string `json:"time"`
	Team1        string `json:"team1"`
	Team2        string `json:"team2"`
}

// Schedule is the full extraction result for one document. Games are
// ordered by page, then line within page, then left block before right
// block for lines producing both. DocumentDate is nil when no date-like
// text was found on the first page.
type Schedule struct {
	DocumentDate *string      `json:"documentDate"`
	Games        []GameRecord `json:"games"`
	SourceFile   string       `json:"sourceFile,omitempty"`
}

// GameCount returns the number of extracted games.
func (s *Schedule) GameCount() int {
	if s == nil {
		return 0
	}
	return len(s.Games)
}

// GamesForField returns the games belonging to the named field, in
// extraction order.
func (s *Schedule) GamesForField(field string) []GameRecord {
	if s == nil {
		return nil
	}
	var result []GameRecord
	for _, g := range s.Games {
		if g.Field == field {
			result = append(result, g)
		}
	}
	return result
}
