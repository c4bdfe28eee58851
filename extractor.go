package fieldsched

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/tlindfors/fieldsched/fields"
	"github.com/tlindfors/fieldsched/layout"
	"github.com/tlindfors/fieldsched/model"
	"github.com/tlindfors/fieldsched/pdfjson"
	"github.com/tlindfors/fieldsched/reader"
	"github.com/tlindfors/fieldsched/schedule"
)

type sourceKind int

const (
	sourcePDF sourceKind = iota
	sourceJSON
	sourceDocument
)

// Extractor is a fluent builder over one schedule source. Chain methods
// return a new Extractor, so partially configured extractors can be
// reused; terminal operations (Schedule, Fragments) perform the work.
type Extractor struct {
	source   sourceKind
	filename string
	pages    []model.PageFragments

	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of
// options, keeping each chain step immutable.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		source:   e.source,
		filename: e.filename,
		pages:    e.pages,
		options:  e.options.clone(),
		err:      e.err,
	}
}

// Pages restricts extraction to the given 1-indexed pages, in document
// order. Unknown page numbers are ignored.
func (e *Extractor) Pages(pages ...int) *Extractor {
	newExt := e.clone()
	newExt.options.pages = append([]int(nil), pages...)
	return newExt
}

// Catalogue sets the field catalogue driving detection.
func (e *Extractor) Catalogue(cat *fields.Catalogue) *Extractor {
	newExt := e.clone()
	newExt.options.catalogue = cat
	return newExt
}

// CatalogueFile loads the field catalogue from a YAML file when a
// terminal operation runs.
func (e *Extractor) CatalogueFile(path string) *Extractor {
	newExt := e.clone()
	newExt.options.cataloguePath = path
	return newExt
}

// Tolerance overrides the line-grouping Y tolerance. The zero value keeps
// the per-source default.
func (e *Extractor) Tolerance(tolerance float64) *Extractor {
	newExt := e.clone()
	newExt.options.tolerance = tolerance
	return newExt
}

// Logger attaches a logger for soft-warning and debug output.
func (e *Extractor) Logger(logger *zap.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.logger = logger
	return newExt
}

// Schedule extracts the field schedule. It returns the schedule, any
// warnings collected along the way, and an error only when the source
// itself could not be read; a document matching nothing still yields an
// empty schedule.
func (e *Extractor) Schedule() (*model.Schedule, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	pages, err := e.loadPages()
	if err != nil {
		return nil, nil, err
	}
	pages = filterPages(pages, e.options.pages)

	cat := e.options.catalogue
	if cat == nil && e.options.cataloguePath != "" {
		cat, err = fields.LoadCatalogue(e.options.cataloguePath)
		if err != nil {
			return nil, nil, err
		}
	}

	config := schedule.DefaultConfig()
	config.Catalogue = cat
	config.Logger = e.options.logger
	config.Line = layout.LineConfig{YTolerance: e.lineTolerance()}

	engine := schedule.NewEngineWithConfig(config)
	sched, warnings := engine.Extract(pages, e.sourceFile())
	return sched, warnings, nil
}

// Fragments loads and returns the normalized fragment pages without
// running extraction. Useful for diagnosing layout problems.
func (e *Extractor) Fragments() ([]model.PageFragments, error) {
	if e.err != nil {
		return nil, e.err
	}
	pages, err := e.loadPages()
	if err != nil {
		return nil, err
	}
	return filterPages(pages, e.options.pages), nil
}

// loadPages materializes fragment pages from the configured source.
func (e *Extractor) loadPages() ([]model.PageFragments, error) {
	switch e.source {
	case sourcePDF:
		return reader.Open(e.filename)
	case sourceJSON:
		doc, err := pdfjson.Load(e.filename)
		if err != nil {
			return nil, err
		}
		return pdfjson.Normalize(doc), nil
	case sourceDocument:
		return e.pages, nil
	default:
		return nil, fmt.Errorf("unknown source kind %d", e.source)
	}
}

// lineTolerance picks the configured or per-source line tolerance.
func (e *Extractor) lineTolerance() float64 {
	if e.options.tolerance > 0 {
		return e.options.tolerance
	}
	if e.source == sourcePDF {
		return reader.RecommendedLineTolerance
	}
	return layout.DefaultLineConfig().YTolerance
}

// sourceFile returns the source file name recorded on the schedule.
func (e *Extractor) sourceFile() string {
	if e.filename == "" {
		return ""
	}
	return filepath.Base(e.filename)
}

// filterPages selects the requested 1-indexed pages, keeping document
// order. A nil selection keeps all pages.
func filterPages(pages []model.PageFragments, selection []int) []model.PageFragments {
	if selection == nil {
		return pages
	}
	wanted := make(map[int]bool, len(selection))
	for _, n := range selection {
		wanted[n] = true
	}
	var out []model.PageFragments
	for i, p := range pages {
		if wanted[i+1] {
			out = append(out, p)
		}
	}
	return out
}
