package fields

import (
	"math"
	"strings"

	"github.com/tlindfors/fieldsched/layout"
	"github.com/tlindfors/fieldsched/model"
)

// Kind tags the result of scanning one line for field names.
type Kind int

const (
	// NoField means the line carries no field name; it is a header or
	// row line for whichever blocks are currently active.
	NoField Kind = iota

	// SingleField means one field starts on this line with no resolvable
	// sibling column.
	SingleField

	// PairedFields means two side-by-side field columns start on this
	// line.
	PairedFields
)

func (k Kind) String() string {
	switch k {
	case SingleField:
		return "single"
	case PairedFields:
		return "paired"
	default:
		return "none"
	}
}

// Detection is the tagged result of field-name detection on one line.
// Left is set for SingleField and PairedFields; Right only for
// PairedFields. Left.X < Right.X always holds for pairs.
type Detection struct {
	Kind  Kind
	Left  model.TextFragment
	Right model.TextFragment

	// Synthesized is true when the pair's missing member was fabricated
	// by SynthesizeMissingSibling rather than found on the line
	Synthesized bool
}

// Detector scans lines for field-name fragments and resolves sibling
// columns against a catalogue.
type Detector struct {
	cat *Catalogue
}

// NewDetector creates a detector. A nil catalogue uses the defaults.
func NewDetector(cat *Catalogue) *Detector {
	if cat == nil {
		cat = DefaultCatalogue()
	}
	return &Detector{cat: cat}
}

// Catalogue returns the detector's catalogue.
func (d *Detector) Catalogue() *Catalogue {
	return d.cat
}

// Detect classifies one line. Zero catalogue matches yield NoField. Two or
// more matches yield the leftmost two as a pair. A single match triggers
// sibling resolution: first a pair-aware search for the expected sibling
// zone on the same line, then a generic positional search, and finally -
// for a missing first-of-pair letter - sibling synthesis.
func (d *Detector) Detect(line layout.Line) Detection {
	var candidates []model.TextFragment
	for _, f := range line.Fragments {
		if d.cat.MatchesField(f.Text) {
			candidates = append(candidates, f)
		}
	}

	switch len(candidates) {
	case 0:
		return Detection{Kind: NoField}
	case 1:
		return d.resolveSibling(line, candidates[0])
	default:
		// Line fragments are x-sorted; leftmost two win, extras ignored.
		return orderedPair(candidates[0], candidates[1], false)
	}
}

// resolveSibling finds or fabricates the sibling column for a lone field
// candidate.
func (d *Detector) resolveSibling(line layout.Line, cand model.TextFragment) Detection {
	zone, zoned := ParseZone(cand.Text)
	var pairedLetter string
	if zoned {
		pairedLetter, zoned = d.cat.PairedLetter(zone.Letter)
	}

	// A fragment naming the expected sibling zone outranks any generic
	// positional match.
	if zoned {
		want := zone.SiblingName(pairedLetter)
		tag := zone.ZoneTag(pairedLetter)
		for _, f := range line.Fragments {
			if f == cand {
				continue
			}
			if strings.Contains(f.Text, want) || strings.Contains(f.Text, tag) {
				return orderedPair(cand, f, false)
			}
		}
	}

	if sibling, ok := d.genericSibling(line, cand); ok {
		return orderedPair(cand, sibling, false)
	}

	if zoned && d.cat.IsFirstOfPair(pairedLetter) {
		synth := SynthesizeMissingSibling(cand, zone, pairedLetter, d.cat)
		return orderedPair(cand, synth, true)
	}

	return Detection{Kind: SingleField, Left: cand}
}

// genericSibling returns the first fragment positioned like an unlabeled
// sibling column header: strictly right of the candidate beyond its width
// plus tolerance, vertically aligned, and long enough to be a name.
func (d *Detector) genericSibling(line layout.Line, cand model.TextFragment) (model.TextFragment, bool) {
	for _, f := range line.Fragments {
		if f == cand {
			continue
		}
		if f.X <= cand.Right()+d.cat.SiblingGapTolerance {
			continue
		}
		if math.Abs(f.Y-cand.Y) > d.cat.SiblingYTolerance {
			continue
		}
		if len(strings.TrimSpace(f.Text)) <= d.cat.MinSiblingTextLen {
			continue
		}
		return f, true
	}
	return model.TextFragment{}, false
}

// SynthesizeMissingSibling fabricates the field-name fragment for a
// sibling column the source document omitted. It places the sibling at the
// catalogue's configured offset from the detected field and names it after
// the expected pair letter. This is a recovery for a known recurring
// omission in one document layout, not a general rule; it is kept separate
// so the heuristic stays auditable and testable in isolation.
func SynthesizeMissingSibling(cand model.TextFragment, zone Zone, letter string, cat *Catalogue) model.TextFragment {
	return model.TextFragment{
		Text:  zone.SiblingName(letter),
		X:     cand.X + cat.SiblingOffsetX,
		Y:     cand.Y,
		Width: cand.Width,
	}
}

// orderedPair builds a PairedFields detection with Left/Right assigned by
// X coordinate. A synthesized sibling can land on either side depending on
// the configured offset's sign.
func orderedPair(a, b model.TextFragment, synthesized bool) Detection {
	if b.X < a.X {
		a, b = b, a
	}
	return Detection{
		Kind:        PairedFields,
		Left:        a,
		Right:       b,
		Synthesized: synthesized,
	}
}
