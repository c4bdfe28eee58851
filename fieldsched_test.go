package fieldsched

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tlindfors/fieldsched/fields"
	"github.com/tlindfors/fieldsched/model"
)

func makeFragment(text string, x, y float64) model.TextFragment {
	return model.TextFragment{Text: text, X: x, Y: y, Width: 1.0}
}

// makeProgrammePages builds a one-page document with a paired field line,
// a 3+3 header line and one game row per column.
func makeProgrammePages() []model.PageFragments {
	return []model.PageFragments{{
		Number: 1,
		Width:  20,
		Height: 60,
		Fragments: []model.TextFragment{
			makeFragment("OTTELUOHJELMA 15.5.2025", 1.0, 0.5),
			{Text: "GARAM MASALA 1A", X: 1.0, Y: 1.0, Width: 4.0},
			{Text: "GARAM MASALA 1B", X: 10.0, Y: 1.0, Width: 4.0},
			makeFragment("2x20", 1.0, 2.0),
			makeFragment("Sarja", 2.0, 2.0),
			makeFragment("2015", 3.0, 2.0),
			makeFragment("2x20", 10.0, 2.0),
			makeFragment("Sarja", 11.0, 2.0),
			makeFragment("2015", 12.0, 2.0),
			makeFragment("08.30 - 08.55", 1.2, 3.0),
			makeFragment("Kontu", 2.0, 3.0),
			makeFragment("Honka", 3.0, 3.0),
			makeFragment("08.30 - 08.55", 10.2, 3.0),
			makeFragment("Puotila", 11.0, 3.0),
			makeFragment("Vellamo", 12.0, 3.0),
		},
	}}
}

func TestFromDocument_Schedule(t *testing.T) {
	sched, warnings, err := FromDocument(makeProgrammePages()).Schedule()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Unexpected warnings: %v", FormatWarnings(warnings))
	}
	if sched.GameCount() != 2 {
		t.Fatalf("Expected 2 games, got %d: %+v", sched.GameCount(), sched.Games)
	}
	if sched.DocumentDate == nil || *sched.DocumentDate != "15.5.2025" {
		t.Errorf("Expected document date 15.5.2025, got %v", sched.DocumentDate)
	}
	if sched.Games[0].Field != "GARAM MASALA 1A" || sched.Games[1].Field != "GARAM MASALA 1B" {
		t.Errorf("Unexpected field attribution: %+v", sched.Games)
	}
	if sched.SourceFile != "" {
		t.Errorf("Expected no source file for in-memory documents, got %q", sched.SourceFile)
	}
}

func TestFromDocument_PagesFilter(t *testing.T) {
	pages := makeProgrammePages()
	second := model.PageFragments{Number: 2, Width: 20, Height: 60}
	pages = append(pages, second)

	fragments, err := FromDocument(pages).Pages(2).Fragments()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(fragments) != 1 || fragments[0].Number != 2 {
		t.Fatalf("Expected only page 2, got %+v", fragments)
	}

	// Unknown page numbers are ignored, not an error.
	fragments, err = FromDocument(pages).Pages(99).Fragments()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(fragments) != 0 {
		t.Errorf("Expected no pages for out-of-range selection, got %d", len(fragments))
	}
}

// Chain methods must not mutate the extractor they are called on.
func TestExtractor_ChainImmutability(t *testing.T) {
	base := FromDocument(makeProgrammePages())
	restricted := base.Pages(99)

	sched, _, err := base.Schedule()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if sched.GameCount() != 2 {
		t.Errorf("Base extractor affected by derived chain: %d games", sched.GameCount())
	}

	sched, _, err = restricted.Schedule()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if sched.GameCount() != 0 {
		t.Errorf("Expected empty schedule from restricted chain, got %d games", sched.GameCount())
	}
}

func TestFromJSON_Schedule(t *testing.T) {
	input := `{
		"pages": [
			{"width": 20, "height": 60, "texts": [
				{"x": 1, "y": 1, "width": 4, "runs": [{"encodedText": "GARAM%20MASALA%201A"}]},
				{"x": 10, "y": 1, "width": 4, "runs": [{"encodedText": "GARAM%20MASALA%201B"}]},
				{"x": 1, "y": 2, "width": 1, "runs": [{"encodedText": "2x20"}]},
				{"x": 2, "y": 2, "width": 1, "runs": [{"encodedText": "Sarja"}]},
				{"x": 3, "y": 2, "width": 1, "runs": [{"encodedText": "2015"}]},
				{"x": 10, "y": 2, "width": 1, "runs": [{"encodedText": "2x20"}]},
				{"x": 11, "y": 2, "width": 1, "runs": [{"encodedText": "Sarja"}]},
				{"x": 12, "y": 2, "width": 1, "runs": [{"encodedText": "2015"}]},
				{"x": 1.2, "y": 3, "width": 1, "runs": [{"encodedText": "08.30%20-%2008.55"}]},
				{"x": 2, "y": 3, "width": 1, "runs": [{"encodedText": "Kontu"}]},
				{"x": 10.2, "y": 3, "width": 1, "runs": [{"encodedText": "08.30%20-%2008.55"}]},
				{"x": 11, "y": 3, "width": 1, "runs": [{"encodedText": "Vellamo"}]}
			]}
		]
	}`
	path := filepath.Join(t.TempDir(), "programme.json")
	if err := os.WriteFile(path, []byte(input), 0o644); err != nil {
		t.Fatal(err)
	}

	sched, warnings, err := FromJSON(path).Schedule()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Unexpected warnings: %v", FormatWarnings(warnings))
	}
	if sched.GameCount() != 2 {
		t.Fatalf("Expected 2 games, got %d: %+v", sched.GameCount(), sched.Games)
	}
	if sched.SourceFile != "programme.json" {
		t.Errorf("Expected base file name recorded, got %q", sched.SourceFile)
	}
	if sched.Games[0].Team1 != "Kontu" || sched.Games[1].Team1 != "Vellamo" {
		t.Errorf("Decoded rows wrong: %+v", sched.Games)
	}
}

func TestFromJSON_MissingFile(t *testing.T) {
	_, _, err := FromJSON("does/not/exist.json").Schedule()
	if err == nil {
		t.Error("Expected error for missing source file")
	}
}

func TestOpen_MissingFile(t *testing.T) {
	_, _, err := Open("does/not/exist.pdf").Schedule()
	if err == nil {
		t.Error("Expected error for missing PDF")
	}
}

func TestExtractor_CatalogueOverride(t *testing.T) {
	cat := &fields.Catalogue{
		Matchers: []fields.Matcher{{Name: "custom", Substring: "NO SUCH FIELD"}},
	}
	if err := cat.Compile(); err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	sched, _, err := FromDocument(makeProgrammePages()).Catalogue(cat).Schedule()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if sched.GameCount() != 0 {
		t.Errorf("Custom catalogue should match nothing, got %d games", sched.GameCount())
	}
}

func TestExtractor_CatalogueFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogue.yaml")
	yaml := "matchers:\n  - name: none\n    substring: \"NO SUCH FIELD\"\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	sched, _, err := FromDocument(makeProgrammePages()).CatalogueFile(path).Schedule()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if sched.GameCount() != 0 {
		t.Errorf("File catalogue should match nothing, got %d games", sched.GameCount())
	}

	_, _, err = FromDocument(makeProgrammePages()).CatalogueFile("does/not/exist.yaml").Schedule()
	if err == nil {
		t.Error("Expected error for missing catalogue file")
	}
}

func TestMustSchedule(t *testing.T) {
	sched := MustSchedule(FromDocument(makeProgrammePages()).Schedule())
	if sched.GameCount() != 2 {
		t.Errorf("Expected 2 games, got %d", sched.GameCount())
	}

	defer func() {
		if recover() == nil {
			t.Error("Expected panic for failing source")
		}
	}()
	MustSchedule(FromJSON("does/not/exist.json").Schedule())
}

func TestMust(t *testing.T) {
	if got := Must(42, nil); got != 42 {
		t.Errorf("Expected 42, got %d", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("Expected panic on error")
		}
	}()
	Must(0, os.ErrNotExist)
}
