package fields

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Matcher recognizes one venue's field-name texts, either by substring or
// by regular expression. Exactly one of Substring or Pattern should be set.
type Matcher struct {
	// Name identifies the catalogue entry in configuration and logs
	Name string `yaml:"name"`

	// Substring matches any field name containing it (case sensitive,
	// matching the upper-cased names the source documents use)
	Substring string `yaml:"substring,omitempty"`

	// Pattern is a regular expression applied to the trimmed text
	Pattern string `yaml:"pattern,omitempty"`

	re *regexp.Regexp
}

// Matches reports whether the trimmed fragment text names a field this
// matcher recognizes.
func (m *Matcher) Matches(text string) bool {
	if m.Substring != "" && strings.Contains(text, m.Substring) {
		return true
	}
	return m.re != nil && m.re.MatchString(text)
}

// LetterPair declares that two zone letters name sibling field halves,
// e.g. "1A" beside "1B". The pairing is explicit data: no universal rule
// is inferred from the alphabet.
type LetterPair struct {
	First  string `yaml:"first"`
	Second string `yaml:"second"`
}

// YearMarker recognizes a year/age-category marker embedded in a team
// name. Label is a template expanded with the pattern's capture groups
// (e.g. pattern `(?:^|\s)(\d{2})(?:\s|$)` with label `20${1}`).
type YearMarker struct {
	Pattern string `yaml:"pattern"`
	Label   string `yaml:"label"`

	re *regexp.Regexp
}

// Find returns the expanded label of the first marker occurrence in s,
// or false when the marker does not occur.
func (m *YearMarker) Find(s string) (string, bool) {
	if m.re == nil {
		return "", false
	}
	match := m.re.FindStringSubmatchIndex(s)
	if match == nil {
		return "", false
	}
	return string(m.re.ExpandString(nil, m.Label, s, match)), true
}

// Catalogue is the domain data driving field detection: venue matchers,
// the sibling letter pairing table, the positional constants used for
// sibling resolution and synthesis, and the team-name year markers.
type Catalogue struct {
	Matchers    []Matcher    `yaml:"matchers"`
	LetterPairs []LetterPair `yaml:"letter_pairs"`

	// SiblingOffsetX is the signed X offset at which a missing sibling
	// field element is synthesized, relative to the detected field.
	// Empirically reverse engineered from one recurring document layout;
	// treat as configuration, not logic.
	SiblingOffsetX float64 `yaml:"sibling_offset_x"`

	// SiblingGapTolerance is the slack beyond a field element's right
	// edge when searching the line for an unlabeled sibling
	SiblingGapTolerance float64 `yaml:"sibling_gap_tolerance"`

	// SiblingYTolerance is the maximum vertical distance for a sibling
	// candidate on the same line
	SiblingYTolerance float64 `yaml:"sibling_y_tolerance"`

	// MinSiblingTextLen is the minimum text length (exclusive) for a
	// generic sibling candidate
	MinSiblingTextLen int `yaml:"min_sibling_text_len"`

	YearMarkers []YearMarker `yaml:"year_markers"`
}

// DefaultCatalogue returns the built-in catalogue: a generic
// upper-case-venue-plus-zone pattern, the A-B and C-D letter pairs, and a
// birth-year team marker. The positional constants match the compact
// coordinate units of upstream JSON fragment documents.
func DefaultCatalogue() *Catalogue {
	cat := &Catalogue{
		Matchers: []Matcher{
			{Name: "zone", Pattern: `^[\p{Lu}][\p{Lu}0-9 .\-']+\d{1,2}\s?[A-D]$`},
			{Name: "kentta", Pattern: `(?i)\bkenttä\s*\d`},
		},
		LetterPairs: []LetterPair{
			{First: "A", Second: "B"},
			{First: "C", Second: "D"},
		},
		SiblingOffsetX:      -9.5,
		SiblingGapTolerance: 0.5,
		SiblingYTolerance:   0.5,
		MinSiblingTextLen:   3,
		YearMarkers: []YearMarker{
			{Pattern: `(?:^|\s)(\d{2})(?:\s|$)`, Label: `20${1}`},
		},
	}
	if err := cat.Compile(); err != nil {
		// Built-in patterns are tested; a failure here is a programming error.
		panic(err)
	}
	return cat
}

// LoadCatalogue loads a catalogue from a YAML file. Fields omitted from
// the file fall back to the defaults, so a minimal file can override just
// the venue matchers.
func LoadCatalogue(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalogue: %w", err)
	}
	return ParseCatalogue(data)
}

// ParseCatalogue parses catalogue YAML, applies defaults and compiles the
// patterns.
func ParseCatalogue(data []byte) (*Catalogue, error) {
	var cat Catalogue
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse catalogue: %w", err)
	}

	def := DefaultCatalogue()
	if len(cat.Matchers) == 0 {
		cat.Matchers = def.Matchers
	}
	if len(cat.LetterPairs) == 0 {
		cat.LetterPairs = def.LetterPairs
	}
	if cat.SiblingOffsetX == 0 {
		cat.SiblingOffsetX = def.SiblingOffsetX
	}
	if cat.SiblingGapTolerance == 0 {
		cat.SiblingGapTolerance = def.SiblingGapTolerance
	}
	if cat.SiblingYTolerance == 0 {
		cat.SiblingYTolerance = def.SiblingYTolerance
	}
	if cat.MinSiblingTextLen == 0 {
		cat.MinSiblingTextLen = def.MinSiblingTextLen
	}
	if len(cat.YearMarkers) == 0 {
		cat.YearMarkers = def.YearMarkers
	}

	if err := cat.Compile(); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Compile compiles all matcher and marker patterns. It must be called
// before the catalogue is used for detection; LoadCatalogue and
// DefaultCatalogue do so themselves.
func (c *Catalogue) Compile() error {
	for i := range c.Matchers {
		m := &c.Matchers[i]
		if m.Pattern == "" {
			continue
		}
		re, err := regexp.Compile(m.Pattern)
		if err != nil {
			return fmt.Errorf("matcher %q: %w", m.Name, err)
		}
		m.re = re
	}
	for i := range c.YearMarkers {
		m := &c.YearMarkers[i]
		re, err := regexp.Compile(m.Pattern)
		if err != nil {
			return fmt.Errorf("year marker %q: %w", m.Pattern, err)
		}
		m.re = re
	}
	return nil
}

// MatchesField reports whether the trimmed text names a known field.
func (c *Catalogue) MatchesField(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	for i := range c.Matchers {
		if c.Matchers[i].Matches(text) {
			return true
		}
	}
	return false
}

// PairedLetter returns the sibling of a zone letter per the pairing
// table, matching case-insensitively, and whether the letter is paired
// at all.
func (c *Catalogue) PairedLetter(letter string) (string, bool) {
	for _, p := range c.LetterPairs {
		if strings.EqualFold(letter, p.First) {
			return p.Second, true
		}
		if strings.EqualFold(letter, p.Second) {
			return p.First, true
		}
	}
	return "", false
}

// IsFirstOfPair reports whether the letter is the first member of any
// pair in the pairing table.
func (c *Catalogue) IsFirstOfPair(letter string) bool {
	for _, p := range c.LetterPairs {
		if strings.EqualFold(letter, p.First) {
			return true
		}
	}
	return false
}

// ArePairedSiblings reports whether two field names form a known sibling
// pair: same venue base, same zone number, and letters paired in the
// pairing table.
func (c *Catalogue) ArePairedSiblings(a, b string) bool {
	za, ok := ParseZone(a)
	if !ok {
		return false
	}
	zb, ok := ParseZone(b)
	if !ok {
		return false
	}
	if !strings.EqualFold(za.Base, zb.Base) || za.Number != zb.Number {
		return false
	}
	paired, ok := c.PairedLetter(za.Letter)
	return ok && strings.EqualFold(paired, zb.Letter)
}

// zoneRe splits a field name like "GARAM MASALA 1A" into its venue base,
// zone number and zone letter.
var zoneRe = regexp.MustCompile(`^(.*\S)\s+(\d{1,2})\s?([A-Za-z])$`)

// Zone is a parsed "<base> <number><letter>" field name.
type Zone struct {
	Base   string
	Number string
	Letter string
}

// ParseZone parses a field name of the form "<base> <number><letter>".
func ParseZone(name string) (Zone, bool) {
	m := zoneRe.FindStringSubmatch(strings.TrimSpace(name))
	if m == nil {
		return Zone{}, false
	}
	return Zone{Base: m[1], Number: m[2], Letter: m[3]}, true
}

// SiblingName returns the field name of the zone's sibling with the given
// letter, e.g. Zone{"GARAM MASALA","1","A"}.SiblingName("B") is
// "GARAM MASALA 1B".
func (z Zone) SiblingName(letter string) string {
	return z.Base + " " + z.Number + letter
}

// ZoneTag returns the bare "<number><letter>" tag, used when scanning a
// line for a fragment that mentions the sibling zone without the venue
// base.
func (z Zone) ZoneTag(letter string) string {
	return z.Number + letter
}
