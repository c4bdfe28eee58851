package fieldsched

import (
	"go.uber.org/zap"

	"github.com/tlindfors/fieldsched/fields"
)

// ExtractOptions holds configuration for schedule extraction.
type ExtractOptions struct {
	// Page selection (1-indexed; nil means all pages)
	pages []int

	// Field catalogue; nil means the built-in catalogue, unless a
	// catalogue file path is set
	catalogue     *fields.Catalogue
	cataloguePath string

	// Line-grouping tolerance; 0 means the per-source default (0.15 for
	// JSON fragment documents, reader.RecommendedLineTolerance for PDFs)
	tolerance float64

	// Logger for soft warnings; nil means no logging
	logger *zap.Logger
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := ExtractOptions{
		catalogue:     o.catalogue,
		cataloguePath: o.cataloguePath,
		tolerance:     o.tolerance,
		logger:        o.logger,
	}
	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}
	return newOpts
}
