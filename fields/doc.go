// Package fields detects field-name lines and resolves sibling field
// columns in a schedule page.
//
// Detection is data driven: a [Catalogue] holds the venue name matchers,
// the zone letter pairing table, and the empirical offsets used when a
// sibling column header is missing from the document. Catalogues load from
// YAML so new venues are additions to data, not code:
//
//	cat, err := fields.LoadCatalogue("catalogue.yaml")
//	detector := fields.NewDetector(cat)
//
// The per-line result is a tagged [Detection]: no field, a single field, or
// a left/right pair. When a field like "GARAM MASALA 1B" appears without
// its paired "1A" column, [Detector.Detect] may synthesize the missing
// sibling via [SynthesizeMissingSibling] - a deliberately isolated recovery
// step for a known omission in the source documents.
package fields
