// Package schedule turns pages of positioned text fragments into a
// structured field schedule.
//
// The [Engine] runs the full pipeline per page: line grouping, field-name
// detection, header resolution, and row extraction. Block state is a
// two-slot (left/right) state machine scoped to one page pass: a
// field-name line replaces both slots, the following line is consumed as
// the header line, and every later line is matched against the active
// blocks until the next field-name line.
//
//	engine := schedule.NewEngine()
//	sched, warnings := engine.Extract(pages, "programme.pdf")
//
// Extraction never fails on malformed content: sparse headers, rows
// without a valid time slot, and unresolved siblings degrade to "nothing
// produced" plus a collected [Warning]. A document whose layout matches
// nothing still completes with zero games.
package schedule
