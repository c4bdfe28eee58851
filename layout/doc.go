// Package layout groups positioned text fragments into horizontal lines.
//
// The [LineGrouper] walks fragments in reading order and starts a new line
// whenever a fragment's Y coordinate drifts beyond a tolerance from the
// first fragment of the current line. Anchoring the tolerance to the line
// start means small baseline drift cannot accumulate into oversized lines.
//
//	grouper := layout.NewLineGrouper()
//	lines := grouper.Group(page.Fragments)
//
// Each resulting [Line] has its fragments sorted left to right, ready for
// column-block segmentation and row extraction.
package layout
