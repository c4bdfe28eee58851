package layout

import (
	"sort"
	"testing"

	"github.com/tlindfors/fieldsched/model"
)

// makeFragment creates a test text fragment for line tests
func makeFragment(text string, x, y, width float64) model.TextFragment {
	return model.TextFragment{Text: text, X: x, Y: y, Width: width}
}

func TestLineGrouper_EmptyInput(t *testing.T) {
	grouper := NewLineGrouper()

	if lines := grouper.Group(nil); len(lines) != 0 {
		t.Errorf("Expected 0 lines for nil input, got %d", len(lines))
	}
	if lines := grouper.Group([]model.TextFragment{}); len(lines) != 0 {
		t.Errorf("Expected 0 lines for empty input, got %d", len(lines))
	}
}

func TestLineGrouper_SingleFragment(t *testing.T) {
	grouper := NewLineGrouper()
	lines := grouper.Group([]model.TextFragment{
		makeFragment("Hello", 1.0, 2.0, 0.5),
	})

	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(lines))
	}
	if lines[0].Text() != "Hello" {
		t.Errorf("Expected 'Hello', got '%s'", lines[0].Text())
	}
	if lines[0].Index != 0 {
		t.Errorf("Expected index 0, got %d", lines[0].Index)
	}
}

func TestLineGrouper_SingleLine_SortedByX(t *testing.T) {
	grouper := NewLineGrouper()
	lines := grouper.Group([]model.TextFragment{
		makeFragment("World", 5.0, 2.0, 0.5),
		makeFragment("Hello", 1.0, 2.05, 0.5),
	})

	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(lines))
	}
	if lines[0].Text() != "Hello World" {
		t.Errorf("Expected 'Hello World', got '%s'", lines[0].Text())
	}
}

func TestLineGrouper_MultipleLines(t *testing.T) {
	grouper := NewLineGrouper()
	lines := grouper.Group([]model.TextFragment{
		makeFragment("Line one", 1.0, 1.0, 1.0),
		makeFragment("Line two", 1.0, 1.5, 1.0),
		makeFragment("Line three", 1.0, 2.0, 1.0),
	})

	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d", len(lines))
	}
	expected := []string{"Line one", "Line two", "Line three"}
	for i, want := range expected {
		if lines[i].Text() != want {
			t.Errorf("Line %d: expected '%s', got '%s'", i, want, lines[i].Text())
		}
		if lines[i].Index != i {
			t.Errorf("Line %d: expected index %d, got %d", i, i, lines[i].Index)
		}
	}
}

// Tolerance is anchored to the line's first fragment: a chain of small
// drifts must not merge into one oversized line.
func TestLineGrouper_ToleranceAnchoredToLineStart(t *testing.T) {
	grouper := NewLineGrouperWithConfig(LineConfig{YTolerance: 0.15})
	lines := grouper.Group([]model.TextFragment{
		makeFragment("a", 1.0, 1.00, 0.5),
		makeFragment("b", 2.0, 1.10, 0.5), // within 0.15 of anchor 1.00
		makeFragment("c", 3.0, 1.20, 0.5), // 0.20 from anchor: new line
	})

	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines (anchor-based tolerance), got %d", len(lines))
	}
	if lines[0].Text() != "a b" {
		t.Errorf("First line: expected 'a b', got '%s'", lines[0].Text())
	}
	if lines[1].Text() != "c" {
		t.Errorf("Second line: expected 'c', got '%s'", lines[1].Text())
	}
}

func TestLineGrouper_ExactToleranceStartsNewLine(t *testing.T) {
	grouper := NewLineGrouperWithConfig(LineConfig{YTolerance: 0.15})
	lines := grouper.Group([]model.TextFragment{
		makeFragment("a", 1.0, 1.00, 0.5),
		makeFragment("b", 2.0, 1.15, 0.5), // difference equals tolerance
	})

	if len(lines) != 2 {
		t.Fatalf("Expected drift equal to tolerance to start a new line, got %d lines", len(lines))
	}
}

// Flattening the grouped lines must reproduce the exact input fragment
// set, with no loss or duplication.
func TestLineGrouper_FlattenReproducesInput(t *testing.T) {
	input := []model.TextFragment{
		makeFragment("t1", 1.0, 1.0, 0.5),
		makeFragment("t2", 4.0, 1.05, 0.5),
		makeFragment("t3", 1.0, 2.0, 0.5),
		makeFragment("t4", 2.0, 2.02, 0.5),
		makeFragment("t5", 9.0, 3.3, 0.5),
	}

	grouper := NewLineGrouper()
	lines := grouper.Group(input)

	var flattened []model.TextFragment
	for _, line := range lines {
		flattened = append(flattened, line.Fragments...)
	}
	if len(flattened) != len(input) {
		t.Fatalf("Expected %d fragments after flattening, got %d", len(input), len(flattened))
	}

	sortByText := func(fs []model.TextFragment) {
		sort.Slice(fs, func(i, j int) bool { return fs[i].Text < fs[j].Text })
	}
	in := append([]model.TextFragment(nil), input...)
	sortByText(in)
	sortByText(flattened)
	for i := range in {
		if in[i] != flattened[i] {
			t.Errorf("Fragment %d: expected %+v, got %+v", i, in[i], flattened[i])
		}
	}
}

func TestLineGrouper_Deterministic(t *testing.T) {
	input := []model.TextFragment{
		makeFragment("a", 2.0, 1.0, 0.5),
		makeFragment("b", 1.0, 1.1, 0.5),
		makeFragment("c", 1.0, 2.0, 0.5),
	}

	grouper := NewLineGrouper()
	first := grouper.Group(input)
	second := grouper.Group(input)

	if len(first) != len(second) {
		t.Fatalf("Grouping not deterministic: %d vs %d lines", len(first), len(second))
	}
	for i := range first {
		if first[i].Text() != second[i].Text() {
			t.Errorf("Line %d differs between runs: '%s' vs '%s'", i, first[i].Text(), second[i].Text())
		}
	}
}

func TestLineGrouper_InputOrderIndependent(t *testing.T) {
	ordered := []model.TextFragment{
		makeFragment("a", 1.0, 1.0, 0.5),
		makeFragment("b", 2.0, 1.0, 0.5),
		makeFragment("c", 1.0, 2.0, 0.5),
	}
	shuffled := []model.TextFragment{ordered[2], ordered[0], ordered[1]}

	grouper := NewLineGrouper()
	fromOrdered := grouper.Group(ordered)
	fromShuffled := grouper.Group(shuffled)

	if len(fromOrdered) != len(fromShuffled) {
		t.Fatalf("Expected same line count, got %d vs %d", len(fromOrdered), len(fromShuffled))
	}
	for i := range fromOrdered {
		if fromOrdered[i].Text() != fromShuffled[i].Text() {
			t.Errorf("Line %d: '%s' vs '%s'", i, fromOrdered[i].Text(), fromShuffled[i].Text())
		}
	}
}

func TestLine_First(t *testing.T) {
	var empty Line
	if _, ok := empty.First(); ok {
		t.Error("Expected no first fragment on empty line")
	}

	line := Line{Fragments: []model.TextFragment{makeFragment("x", 1, 1, 1)}}
	first, ok := line.First()
	if !ok || first.Text != "x" {
		t.Errorf("Expected first fragment 'x', got %+v (ok=%v)", first, ok)
	}
}

func TestNewLineGrouperWithConfig_ZeroToleranceUsesDefault(t *testing.T) {
	grouper := NewLineGrouperWithConfig(LineConfig{})
	if grouper.config.YTolerance != DefaultLineConfig().YTolerance {
		t.Errorf("Expected default tolerance %.2f, got %.2f",
			DefaultLineConfig().YTolerance, grouper.config.YTolerance)
	}
}
