package ruler

import (
	"math"

	"github.com/dshills/seqscope/internal/render/core"
)

// dragThresholdPx separates a click from a drag on the navigation
// ruler. Pointer travel under this many pixels is a click.
const dragThresholdPx = 3.0

// GestureKind classifies a completed navigation pointer gesture.
type GestureKind uint8

const (
	// GestureNone means the pointer release produced no action.
	GestureNone GestureKind = iota
	// GestureCenter is a click: center the viewport on a column.
	GestureCenter
	// GestureRange is a drag: zoom the viewport to a column range.
	GestureRange
)

// Gesture is the result of a completed navigation pointer interaction.
type Gesture struct {
	Kind     GestureKind
	Column   int
	StartCol int
	EndCol   int
}

// NavigationView maps the whole content onto a fixed pixel strip and
// interprets pointer gestures on it. The tick layout depends only on
// the strip width and the content length, so it is memoized and
// recomputed only when either changes.
type NavigationView struct {
	widthPx    float64
	contentLen int

	layout      Layout
	layoutValid bool

	pressed bool
	pressX  float64
	lastX   float64
}

// NewNavigationView creates a navigation view for the given strip width.
func NewNavigationView(widthPx float64) *NavigationView {
	return &NavigationView{widthPx: widthPx}
}

// Resize updates the strip width, invalidating the memoized layout.
func (v *NavigationView) Resize(widthPx float64) {
	if widthPx == v.widthPx {
		return
	}
	v.widthPx = widthPx
	v.layoutValid = false
}

// SetContentLength updates the content length, invalidating the
// memoized layout.
func (v *NavigationView) SetContentLength(n int) {
	if n == v.contentLen {
		return
	}
	v.contentLen = n
	v.layoutValid = false
}

// Layout returns the tick layout for the full content span, computing
// it at most once per (width, length) pair.
func (v *NavigationView) Layout() Layout {
	if !v.layoutValid {
		v.layout = ComputeTickLayout(0, v.contentLen, v.widthPx, v.contentLen > ladderSpan)
		v.layout.Labels = PlaceLabels(v.layout.Labels)
		v.layoutValid = true
	}
	return v.layout
}

// ColumnAt converts a strip pixel to a content column, clamped into the
// content.
func (v *NavigationView) ColumnAt(px float64) int {
	if v.contentLen < 1 || v.widthPx <= 0 {
		return 0
	}
	col := int(math.Floor(px / v.widthPx * float64(v.contentLen)))
	if col < 0 {
		col = 0
	}
	if col >= v.contentLen {
		col = v.contentLen - 1
	}
	return col
}

// PxOf converts a content column to its strip pixel.
func (v *NavigationView) PxOf(col int) float64 {
	if v.contentLen < 1 {
		return 0
	}
	return float64(col) / float64(v.contentLen) * v.widthPx
}

// WindowRect returns the strip-space rectangle covering the columns the
// main viewport currently shows, for the overlay drawn on the ruler.
// Height is left to the caller; the rect carries x and width.
func (v *NavigationView) WindowRect(snap core.ViewSnapshot) core.RectF {
	if v.contentLen < 1 || snap.CharWidth <= 0 {
		return core.RectF{}
	}
	firstPx := snap.ScrollPx / snap.CharWidth
	lastPx := (snap.ScrollPx + snap.ViewWidthPx) / snap.CharWidth
	x := v.PxOf(int(firstPx))
	right := v.PxOf(int(math.Ceil(lastPx)))
	if right > v.widthPx {
		right = v.widthPx
	}
	if right < x {
		right = x
	}
	return core.RectF{X: x, Y: 0, W: right - x, H: 0}
}

// PointerDown begins a gesture at a strip pixel.
func (v *NavigationView) PointerDown(x float64) {
	v.pressed = true
	v.pressX = x
	v.lastX = x
}

// PointerMove extends a gesture and reports the provisional column
// range once the travel passes the drag threshold. Callers use it to
// draw the rubber band.
func (v *NavigationView) PointerMove(x float64) (startCol, endCol int, dragging bool) {
	if !v.pressed {
		return 0, 0, false
	}
	v.lastX = x
	if math.Abs(x-v.pressX) < dragThresholdPx {
		return 0, 0, false
	}
	a := v.ColumnAt(v.pressX)
	b := v.ColumnAt(x)
	if b < a {
		a, b = b, a
	}
	return a, b, true
}

// DragSpan returns the strip-pixel extent of an in-progress drag, for
// the rubber band overlay. Inactive until the travel passes the drag
// threshold.
func (v *NavigationView) DragSpan() (leftPx, rightPx float64, active bool) {
	if !v.pressed || math.Abs(v.lastX-v.pressX) < dragThresholdPx {
		return 0, 0, false
	}
	if v.lastX < v.pressX {
		return v.lastX, v.pressX, true
	}
	return v.pressX, v.lastX, true
}

// PointerUp completes the gesture: travel under the threshold is a
// click that centers the viewport, anything longer is a range zoom.
func (v *NavigationView) PointerUp(x float64) Gesture {
	if !v.pressed {
		return Gesture{Kind: GestureNone}
	}
	v.pressed = false

	if math.Abs(x-v.pressX) < dragThresholdPx {
		return Gesture{Kind: GestureCenter, Column: v.ColumnAt(x)}
	}
	a := v.ColumnAt(v.pressX)
	b := v.ColumnAt(x)
	if b < a {
		a, b = b, a
	}
	return Gesture{Kind: GestureRange, StartCol: a, EndCol: b}
}
