package core

import "image"

// Bitmap is a pre-rendered glyph image plus the metadata it was rendered
// from. Pixel surfaces blit Img; cell surfaces fall back to Char/Fg.
type Bitmap struct {
	Img    *image.RGBA
	Width  int
	Height int

	Char rune
	Fg   Color
}

// Surface receives draw operations from the canvas and ruler views.
// Implementations draw to an image, a terminal, or record operations
// for tests. Coordinates are pixels; surfaces clip out-of-bounds draws
// silently so a render frame always completes.
type Surface interface {
	// FillRect fills a rectangle with a solid color.
	FillRect(r RectF, c Color)

	// Blit draws a glyph bitmap with its top-left corner at (x, y).
	Blit(x, y float64, bm *Bitmap)
}

// ColorMap maps sequence characters to display colors. Lookup keys are
// uppercase-folded by the caller; unrecognized characters fall back to
// the neutral color.
type ColorMap struct {
	colors   map[rune]Color
	fallback Color
}

// NewColorMap creates a color map with the given entries and fallback.
func NewColorMap(colors map[rune]Color, fallback Color) ColorMap {
	m := make(map[rune]Color, len(colors))
	for r, c := range colors {
		m[r] = c
	}
	return ColorMap{colors: m, fallback: fallback}
}

// DefaultNucleotideColors returns the standard nucleotide palette.
func DefaultNucleotideColors() ColorMap {
	return NewColorMap(map[rune]Color{
		'A': {R: 0, G: 180, B: 0},
		'T': {R: 200, G: 0, B: 0},
		'U': {R: 200, G: 0, B: 0},
		'C': {R: 0, G: 0, B: 200},
		'G': {R: 230, G: 140, B: 0},
		'-': {R: 150, G: 150, B: 150},
		'N': {R: 120, G: 120, B: 120},
	}, ColorNeutral)
}

// Get returns the color for a character, or the fallback.
func (m ColorMap) Get(r rune) Color {
	if c, ok := m.colors[r]; ok {
		return c
	}
	return m.fallback
}

// Has returns true if the character has an explicit color.
func (m ColorMap) Has(r rune) bool {
	_, ok := m.colors[r]
	return ok
}

// Fallback returns the neutral fallback color.
func (m ColorMap) Fallback() Color {
	return m.fallback
}

// Len returns the number of explicit entries.
func (m ColorMap) Len() int {
	return len(m.colors)
}

// Colors returns a copy of the explicit entries, for persistence.
func (m ColorMap) Colors() map[rune]Color {
	out := make(map[rune]Color, len(m.colors))
	for r, c := range m.colors {
		out[r] = c
	}
	return out
}
