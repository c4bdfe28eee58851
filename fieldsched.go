// Package fieldsched provides a fluent API for extracting structured field
// schedules (per-field game rows with time slots and team pairs) from PDF
// match-programme documents.
//
// Basic usage:
//
//	sched, warnings, err := fieldsched.Open("programme.pdf").Schedule()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", fieldsched.FormatWarnings(warnings))
//	}
//
// With options:
//
//	sched, _, err := fieldsched.FromJSON("programme.json").
//	    Pages(1, 2).
//	    Tolerance(0.2).
//	    Schedule()
//
// For advanced use cases, the lower-level schedule, fields, layout, reader
// and pdfjson packages are also available.
package fieldsched

import (
	"github.com/tlindfors/fieldsched/model"
	"github.com/tlindfors/fieldsched/schedule"
)

// Warning is a non-fatal extraction condition; see the schedule package.
type Warning = schedule.Warning

// FormatWarnings joins warnings into a single human-readable string.
func FormatWarnings(warnings []Warning) string {
	return schedule.FormatWarnings(warnings)
}

// Open opens a PDF match programme and returns an Extractor for fluent
// configuration. The file is read when a terminal operation such as
// Schedule() is called.
//
// Example:
//
//	sched, warnings, err := fieldsched.Open("programme.pdf").Schedule()
func Open(filename string) *Extractor {
	return &Extractor{
		source:   sourcePDF,
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromJSON creates an Extractor over an upstream JSON fragment document
// (the pdf2json-style contract read by the pdfjson package).
//
// Example:
//
//	sched, warnings, err := fieldsched.FromJSON("programme.json").Schedule()
func FromJSON(filename string) *Extractor {
	return &Extractor{
		source:   sourceJSON,
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromDocument creates an Extractor over already-materialized fragment
// pages. Useful when fragments come from a custom source or from tests.
func FromDocument(pages []model.PageFragments) *Extractor {
	return &Extractor{
		source:  sourceDocument,
		pages:   pages,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustSchedule wraps a call to Schedule() and panics on error, discarding
// warnings. It is intended for scripts and tests.
//
// Example:
//
//	sched := fieldsched.MustSchedule(fieldsched.Open("programme.pdf").Schedule())
func MustSchedule(sched *model.Schedule, _ []Warning, err error) *model.Schedule {
	if err != nil {
		panic(err)
	}
	return sched
}
