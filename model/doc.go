// Package model defines the core data types for field schedule extraction.
//
// The types flow through the pipeline in this order:
//
//   - [TextFragment] - one positioned piece of text from a page's text layer
//   - [PageFragments] - all fragments of one page with page dimensions
//   - [FieldBlock] - the header context (field name, game duration, game
//     type, year) governing subsequent game rows until the next field line
//   - [GameRecord] - one extracted game row (time slot plus two team names)
//   - [Schedule] - the full extraction result for one document
//
// All types are plain values with JSON tags on the output types; they carry
// no behavior beyond small sorting and accessor helpers.
package model
