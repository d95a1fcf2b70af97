// Package viewport tracks the zoom and horizontal scroll state of the
// sequence canvas and provides the pixel/column coordinate math.
package viewport

import "math"

// Trailing padding reserved to the right of the content so the coarsest
// display mode never triggers an unwanted scrollbar.
const (
	// TrailingPadLinePx is the padding used in Line mode.
	TrailingPadLinePx = 80.0
	// TrailingPadTextPx is the padding used in Text and Box modes.
	TrailingPadTextPx = 30.0
)

// MaxCharWidth is the hard upper zoom bound in pixels per column.
const MaxCharWidth = 90.0

// epsilonCharWidth guards every division by char width.
const epsilonCharWidth = 1e-6

// State is the viewport: pixels per column, horizontal scroll offset,
// and visible pixel width. It is exclusively owned by the canvas and
// mutated every animation frame during zoom.
type State struct {
	charWidth    float64
	scrollPx     float64
	visibleWidth float64
}

// New creates a viewport with the given char width and visible width.
func New(charWidth, visibleWidth float64) *State {
	s := &State{visibleWidth: visibleWidth}
	s.SetCharWidth(charWidth)
	if s.visibleWidth < 0 {
		s.visibleWidth = 0
	}
	return s
}

// CharWidth returns the current pixels per column.
func (s *State) CharWidth() float64 {
	return s.charWidth
}

// SetCharWidth updates the char width, clamped to a small positive
// epsilon so column math never divides by zero.
func (s *State) SetCharWidth(w float64) {
	if w < epsilonCharWidth {
		w = epsilonCharWidth
	}
	s.charWidth = w
}

// ScrollPx returns the horizontal scroll offset in pixels.
func (s *State) ScrollPx() float64 {
	return s.scrollPx
}

// VisibleWidth returns the visible pixel width.
func (s *State) VisibleWidth() float64 {
	return s.visibleWidth
}

// Resize updates the visible pixel width.
func (s *State) Resize(width float64) {
	if width < 0 {
		width = 0
	}
	s.visibleWidth = width
}

// SetScrollPx sets the scroll offset, clamped to the scrollable range
// of the given content width.
func (s *State) SetScrollPx(px, contentWidth float64) {
	maxScroll := contentWidth - s.visibleWidth
	if maxScroll < 0 {
		maxScroll = 0
	}
	if px < 0 {
		px = 0
	}
	if px > maxScroll {
		px = maxScroll
	}
	s.scrollPx = px
}

// ScrollBy shifts the scroll offset by a pixel delta.
func (s *State) ScrollBy(delta, contentWidth float64) {
	s.SetScrollPx(s.scrollPx+delta, contentWidth)
}

// ColumnAt returns the column index containing a content-space pixel.
func (s *State) ColumnAt(contentPx float64) int {
	return int(math.Floor(contentPx / s.charWidth))
}

// ColumnLeftPx returns the left edge of a column in content pixels.
func (s *State) ColumnLeftPx(col int) float64 {
	return float64(col) * s.charWidth
}

// ContentAt converts a viewport-local x pixel to a fractional content
// position.
func (s *State) ContentAt(viewX float64) float64 {
	return (s.scrollPx + viewX) / s.charWidth
}

// VisibleColumns returns the half-open column window [first, last)
// exposed by the viewport for a row of the given length. Render cost
// downstream is bounded by last-first, never by the row length.
func (s *State) VisibleColumns(rowLength int) (first, last int) {
	return s.ExposedColumns(rowLength, s.scrollPx, s.scrollPx+s.visibleWidth)
}

// ExposedColumns returns the half-open column window covered by an
// arbitrary exposed pixel interval [left, right) in content space.
func (s *State) ExposedColumns(rowLength int, left, right float64) (first, last int) {
	if rowLength <= 0 || right <= left {
		return 0, 0
	}
	first = int(math.Floor(left / s.charWidth))
	if first < 0 {
		first = 0
	}
	last = int(math.Ceil(right / s.charWidth))
	if last > rowLength {
		last = rowLength
	}
	if last < first {
		last = first
	}
	return first, last
}

// ContentWidth returns the full scrollable width for a content length,
// including the trailing padding.
func ContentWidth(maxLen int, charWidth, trailingPad float64) float64 {
	if maxLen <= 0 {
		return 0
	}
	return float64(maxLen)*charWidth + trailingPad
}

// MinCharWidth returns the smallest char width that still fills the
// viewport (minus trailing padding) with the longest row. The result is
// never less than the epsilon guard.
func MinCharWidth(maxLen int, visibleWidth, trailingPad float64) float64 {
	if maxLen <= 0 || visibleWidth <= 0 {
		return epsilonCharWidth
	}
	available := visibleWidth - trailingPad
	if available <= 0 {
		return epsilonCharWidth
	}
	mcw := available / float64(maxLen)
	if mcw < epsilonCharWidth {
		return epsilonCharWidth
	}
	return mcw
}

// ApplyCharWidth changes the char width while keeping the pivot content
// position at the same screen pixel. This is the load-bearing contract
// of zoom-to-cursor: the pivot's view-space x before and after the
// change agree within half a pixel.
func (s *State) ApplyCharWidth(newWidth, pivotNt float64, maxLen int, trailingPad float64) {
	pivotScreenX := pivotNt*s.charWidth - s.scrollPx

	s.SetCharWidth(newWidth)

	contentWidth := ContentWidth(maxLen, s.charWidth, trailingPad)
	ideal := pivotNt*s.charWidth - pivotScreenX

	maxScroll := contentWidth - s.visibleWidth
	if maxScroll < 0 {
		maxScroll = 0
	}
	if ideal < 0 {
		ideal = 0
	}
	if ideal > maxScroll {
		ideal = maxScroll
	}

	// Sub-half-pixel adjustments cause jitter, not correction.
	if math.Abs(ideal-s.scrollPx) < 0.5 {
		return
	}
	s.scrollPx = ideal
}

// CenterOn scrolls so the given content position sits at the viewport
// center, clamped to the scrollable range.
func (s *State) CenterOn(pivotNt float64, maxLen int, trailingPad float64) {
	contentWidth := ContentWidth(maxLen, s.charWidth, trailingPad)
	ideal := pivotNt*s.charWidth - s.visibleWidth/2.0
	s.SetScrollPx(ideal, contentWidth)
}
