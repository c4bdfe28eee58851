package reader

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/tlindfors/fieldsched/model"
)

// RecommendedLineTolerance is the line-grouping Y tolerance for fragments
// in PDF point units, as produced by this package.
const RecommendedLineTolerance = 2.0

// Config holds fragment extraction configuration.
type Config struct {
	// YTolerance is the baseline distance within which two runs are
	// considered the same line when merging, in points
	YTolerance float64

	// GapFactor is the maximum horizontal gap between runs to merge
	// them into one fragment, as a multiple of the font size
	GapFactor float64
}

// DefaultConfig returns the default extraction configuration.
func DefaultConfig() Config {
	return Config{
		YTolerance: 2.0,
		GapFactor:  0.35,
	}
}

// Open extracts all pages of a PDF into normalized fragment pages using
// the default configuration.
func Open(path string) ([]model.PageFragments, error) {
	return OpenWithConfig(path, DefaultConfig())
}

// OpenWithConfig extracts all pages of a PDF with custom configuration.
// Failure to open or parse the file is fatal; a page whose content cannot
// be read degrades to an empty page.
func OpenWithConfig(path string, config Config) ([]model.PageFragments, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	pages := make([]model.PageFragments, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, model.PageFragments{Number: i})
			continue
		}
		width, height := pageSize(p)
		page := model.PageFragments{
			Number: i,
			Width:  width,
			Height: height,
		}
		page.Fragments = extractFragments(p, height, config)
		pages = append(pages, page)
	}
	return pages, nil
}

// extractFragments converts a page's text runs into reading-ordered,
// word-merged fragments. The Y axis is flipped so Y grows down the page.
func extractFragments(p pdf.Page, pageHeight float64, config Config) []model.TextFragment {
	content := p.Content()
	if len(content.Text) == 0 {
		return nil
	}

	runs := make([]pdf.Text, len(content.Text))
	copy(runs, content.Text)
	sort.SliceStable(runs, func(i, j int) bool {
		if math.Abs(runs[i].Y-runs[j].Y) > config.YTolerance {
			return runs[i].Y > runs[j].Y // higher Y first: top of page
		}
		return runs[i].X < runs[j].X
	})

	var fragments []model.TextFragment
	var cur *model.TextFragment
	var curY float64 // bottom-up baseline of the fragment being built

	flush := func() {
		if cur == nil {
			return
		}
		if strings.TrimSpace(cur.Text) != "" {
			fragments = append(fragments, *cur)
		}
		cur = nil
	}

	for _, run := range runs {
		if run.S == "" {
			continue
		}
		if cur != nil && math.Abs(run.Y-curY) <= config.YTolerance {
			gap := run.X - (cur.X + cur.Width)
			maxGap := run.FontSize * config.GapFactor
			if maxGap <= 0 {
				maxGap = config.YTolerance
			}
			if gap <= maxGap {
				cur.Text += run.S
				cur.Width = run.X + run.W - cur.X
				continue
			}
		}
		flush()
		cur = &model.TextFragment{
			Text:  run.S,
			X:     run.X,
			Y:     pageHeight - run.Y,
			Width: run.W,
		}
		curY = run.Y
	}
	flush()

	model.SortFragments(fragments)
	return fragments
}

// pageSize reads the page MediaBox, falling back to US Letter when the
// box is missing or malformed.
func pageSize(p pdf.Page) (width, height float64) {
	width, height = 612, 792
	box := p.V.Key("MediaBox")
	if box.IsNull() || box.Len() < 4 {
		return width, height
	}
	x0 := box.Index(0).Float64()
	y0 := box.Index(1).Float64()
	x1 := box.Index(2).Float64()
	y1 := box.Index(3).Float64()
	if x1 > x0 && y1 > y0 {
		width, height = x1-x0, y1-y0
	}
	return width, height
}
