package pdfjson

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/tlindfors/fieldsched/model"
)

// Document is the top-level structure produced by the upstream
// text-extraction step.
type Document struct {
	Pages []Page `json:"pages"`
}

// Page is one page of raw, still-encoded text fragments.
type Page struct {
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
	Texts  []RawText `json:"texts"`
}

// RawText is one positioned fragment before decoding. Its text is split
// across one or more percent-encoded runs.
type RawText struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Width float64 `json:"width"`
	Runs  []Run   `json:"runs"`
}

// Run is a single percent-encoded piece of a fragment's text.
type Run struct {
	EncodedText string `json:"encodedText"`
}

// Load reads and parses an upstream JSON document from a file.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fragment document: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses an upstream JSON document from a reader.
func Read(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse fragment document: %w", err)
	}
	return &doc, nil
}

// Normalize converts all pages of a document into normalized, decoded,
// reading-ordered fragment pages.
func Normalize(doc *Document) []model.PageFragments {
	if doc == nil {
		return nil
	}
	pages := make([]model.PageFragments, 0, len(doc.Pages))
	for i, p := range doc.Pages {
		pages = append(pages, NormalizePage(p, i+1))
	}
	return pages
}

// NormalizePage decodes one raw page into model fragments: runs are
// concatenated and decoded, whitespace-only fragments dropped, and the
// result sorted by (Y, X).
func NormalizePage(p Page, number int) model.PageFragments {
	fragments := make([]model.TextFragment, 0, len(p.Texts))
	for _, t := range p.Texts {
		decoded := DecodeText(t)
		if strings.TrimSpace(decoded) == "" {
			continue
		}
		fragments = append(fragments, model.TextFragment{
			Text:  decoded,
			X:     t.X,
			Y:     t.Y,
			Width: t.Width,
		})
	}
	model.SortFragments(fragments)
	return model.PageFragments{
		Number:    number,
		Width:     p.Width,
		Height:    p.Height,
		Fragments: fragments,
	}
}

// DecodeText concatenates and percent-decodes a fragment's runs. A run
// that fails to decode contributes its raw text instead; decoding never
// fails as a whole.
func DecodeText(t RawText) string {
	var sb strings.Builder
	for _, run := range t.Runs {
		sb.WriteString(decodeRun(run.EncodedText))
	}
	return sb.String()
}

// decodeRun percent-decodes a single run, falling back to the raw string
// on malformed escapes and repairing non-UTF-8 bytes as Windows-1252.
func decodeRun(encoded string) string {
	decoded, err := url.PathUnescape(encoded)
	if err != nil {
		decoded = encoded
	}
	if utf8.ValidString(decoded) {
		return decoded
	}
	// Legacy extractors percent-encode single Windows-1252 bytes for
	// characters like ä and ö; reinterpret rather than dropping them.
	repaired, err := charmap.Windows1252.NewDecoder().String(decoded)
	if err != nil {
		return decoded
	}
	return repaired
}
