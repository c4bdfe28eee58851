package layout

import (
	"math"
	"sort"
	"strings"

	"github.com/tlindfors/fieldsched/model"
)

// Line represents a single horizontal line of text: fragments judged to
// share a reading position, sorted by X ascending.
type Line struct {
	// Fragments are the text fragments of this line, left to right
	Fragments []model.TextFragment

	// Y is the anchor Y coordinate (the first fragment encountered)
	Y float64

	// Index is the line's position on the page, top to bottom
	Index int
}

// Text assembles the line's text left to right, space separated. Intended
// for diagnostics and tests rather than extraction.
func (l Line) Text() string {
	parts := make([]string, 0, len(l.Fragments))
	for _, f := range l.Fragments {
		parts = append(parts, f.Text)
	}
	return strings.Join(parts, " ")
}

// First returns the leftmost fragment of the line and whether one exists.
func (l Line) First() (model.TextFragment, bool) {
	if len(l.Fragments) == 0 {
		return model.TextFragment{}, false
	}
	return l.Fragments[0], true
}

// LineConfig holds configuration for line grouping.
type LineConfig struct {
	// YTolerance is the Y-distance from the line's first fragment beyond
	// which a fragment starts a new line, in document units
	YTolerance float64
}

// DefaultLineConfig returns the default configuration, tuned for the
// compact coordinate units of upstream JSON fragment documents.
func DefaultLineConfig() LineConfig {
	return LineConfig{
		YTolerance: 0.15,
	}
}

// LineGrouper clusters fragments into horizontal lines.
type LineGrouper struct {
	config LineConfig
}

// NewLineGrouper creates a line grouper with default configuration.
func NewLineGrouper() *LineGrouper {
	return &LineGrouper{config: DefaultLineConfig()}
}

// NewLineGrouperWithConfig creates a line grouper with custom configuration.
func NewLineGrouperWithConfig(config LineConfig) *LineGrouper {
	if config.YTolerance <= 0 {
		config.YTolerance = DefaultLineConfig().YTolerance
	}
	return &LineGrouper{config: config}
}

// Group clusters fragments into lines. Fragments are first put into
// reading order, so grouping is deterministic regardless of input order;
// a nil or empty input yields no lines. Every input fragment appears in
// exactly one output line.
func (g *LineGrouper) Group(fragments []model.TextFragment) []Line {
	if len(fragments) == 0 {
		return nil
	}

	sorted := make([]model.TextFragment, len(fragments))
	copy(sorted, fragments)
	model.SortFragments(sorted)

	var lines []Line
	var current []model.TextFragment
	anchorY := sorted[0].Y

	for _, frag := range sorted {
		if len(current) == 0 {
			current = append(current, frag)
			anchorY = frag.Y
			continue
		}
		// Tolerance is anchored to the line's first fragment, not a
		// running average: drift cannot accumulate.
		if math.Abs(frag.Y-anchorY) < g.config.YTolerance {
			current = append(current, frag)
			continue
		}
		lines = append(lines, g.finishLine(current, anchorY, len(lines)))
		current = []model.TextFragment{frag}
		anchorY = frag.Y
	}
	if len(current) > 0 {
		lines = append(lines, g.finishLine(current, anchorY, len(lines)))
	}

	return lines
}

// finishLine sorts a completed line's fragments by X and wraps them.
func (g *LineGrouper) finishLine(fragments []model.TextFragment, anchorY float64, index int) Line {
	sort.SliceStable(fragments, func(i, j int) bool {
		return fragments[i].X < fragments[j].X
	})
	return Line{
		Fragments: fragments,
		Y:         anchorY,
		Index:     index,
	}
}
