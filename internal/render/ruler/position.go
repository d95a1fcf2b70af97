package ruler

import (
	"math"

	"github.com/dshills/seqscope/internal/render/core"
)

// PositionView lays out the ruler above the canvas. It covers only the
// visible column window, in viewport-local pixels, and recomputes every
// frame because scroll and zoom change continuously.
type PositionView struct{}

// NewPositionView creates a position ruler view.
func NewPositionView() *PositionView {
	return &PositionView{}
}

// Layout computes ticks and labels for the visible window described by
// the snapshot. Selection endpoint labels are injected with priority so
// the ends of a selection are always readable; ordinary tick labels
// that would crowd them are dropped.
func (v *PositionView) Layout(snap core.ViewSnapshot) Layout {
	if snap.MaxLength < 1 || snap.CharWidth <= 0 || snap.ViewWidthPx <= 0 {
		return Layout{Step: 1, MinorStep: 1}
	}

	first := int(math.Floor(snap.ScrollPx / snap.CharWidth))
	if first < 0 {
		first = 0
	}
	last := int(math.Ceil((snap.ScrollPx + snap.ViewWidthPx) / snap.CharWidth))
	if last > snap.MaxLength {
		last = snap.MaxLength
	}
	if last <= first {
		return Layout{Step: 1, MinorStep: 1}
	}

	spanPx := float64(last-first) * snap.CharWidth
	lay := ComputeTickLayout(first, last, spanPx, snap.MaxLength > ladderSpan)

	// Shift from span-local to viewport-local pixels.
	offset := float64(first)*snap.CharWidth - snap.ScrollPx
	for i := range lay.Ticks {
		lay.Ticks[i].Px += offset
	}
	for i := range lay.Labels {
		lay.Labels[i].Px += offset
	}

	if snap.HasSelection {
		lay.Labels = append(lay.Labels, v.selectionLabels(snap)...)
	}
	lay.Labels = PlaceLabels(lay.Labels)
	return lay
}

// selectionLabels builds the two endpoint labels for the selection, in
// viewport-local pixels at the centers of the endpoint columns. The
// labels show 1-based positions.
func (v *PositionView) selectionLabels(snap core.ViewSnapshot) []Label {
	labels := make([]Label, 0, 2)
	for _, col := range []int{snap.SelStart, snap.SelEnd} {
		px := (float64(col)+0.5)*snap.CharWidth - snap.ScrollPx
		labels = append(labels, Label{
			Position:  col,
			Text:      FormatLabel(col+1, false),
			Px:        px,
			Selection: true,
		})
	}
	if snap.SelStart == snap.SelEnd {
		return labels[:1]
	}
	return labels
}
