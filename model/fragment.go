package model

import "sort"

// TextFragment represents a positioned piece of text from a page's text
// layer. Coordinates follow reading order: X grows rightward and Y grows
// down the page. Width is the rendered width of the text in the same units.
type TextFragment struct {
	Text  string
	X     float64
	Y     float64
	Width float64
}

// Right returns the X coordinate of the fragment's right edge.
func (f TextFragment) Right() float64 {
	return f.X + f.Width
}

// PageFragments holds the text fragments of one page together with the
// page dimensions, in the units the fragments are expressed in.
type PageFragments struct {
	// Number is the 1-based page number within the document
	Number int

	// Width and Height are the page dimensions
	Width  float64
	Height float64

	// Fragments are the page's text fragments in reading order
	// (sorted by Y, then X)
	Fragments []TextFragment
}

// MidX returns the horizontal midpoint of the page, used to split
// side-by-side field blocks when no explicit column boundary is known.
func (p PageFragments) MidX() float64 {
	return p.Width / 2
}

// SortFragments sorts fragments into reading order: ascending Y, then
// ascending X for fragments at the same Y. The sort is stable so fragments
// at identical positions keep their original relative order.
func SortFragments(fragments []TextFragment) {
	sort.SliceStable(fragments, func(i, j int) bool {
		if fragments[i].Y != fragments[j].Y {
			return fragments[i].Y < fragments[j].Y
		}
		return fragments[i].X < fragments[j].X
	})
}
