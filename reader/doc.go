// Package reader extracts positioned text fragments directly from a PDF's
// text layer, so the engine can run without the upstream JSON extraction
// step.
//
//	pages, err := reader.Open("programme.pdf")
//
// Coordinates are converted from the PDF's bottom-up point space into the
// engine's top-down reading order, and per-word runs on the same baseline
// are merged into fragments. PDF points are much coarser than the compact
// units of JSON fragment documents; use [RecommendedLineTolerance] for
// line grouping on pages this package produces.
package reader
