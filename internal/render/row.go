// Package render composes the sequence canvas: rows, viewport, zoom,
// selection, and the level-of-detail pipeline that turns them into
// surface operations.
package render

import (
	"github.com/dshills/seqscope/internal/render/core"
	"github.com/dshills/seqscope/internal/render/glyph"
	"github.com/dshills/seqscope/internal/render/lod"
	"github.com/dshills/seqscope/internal/render/selection"
	"github.com/dshills/seqscope/internal/render/viewport"
	"github.com/dshills/seqscope/internal/store"
)

// Painting colors not derived from the nucleotide palette.
var (
	lineBrush     = core.Color{R: 160, G: 160, B: 160}
	selectionWash = core.Color{R: 173, G: 216, B: 230}
)

// RowRenderer draws one sequence row onto a surface. Work is strictly
// bounded by the visible column window, never by the row length.
type RowRenderer struct {
	Glyphs     *glyph.Cache
	Colors     core.ColorMap
	CharHeight float64
}

// Render draws the row at the given top edge in the display mode the
// decision selects. The selection wash, when the range lands on this
// row, is painted beneath the row content.
func (r *RowRenderer) Render(dst core.Surface, seq store.Sequence, vp *viewport.State, d lod.Decision, rowTop float64, sel selection.Range, hasSel bool) error {
	first, last := vp.VisibleColumns(seq.Length)
	if first >= last {
		return nil
	}

	// The wash exists only where individual columns are discernible;
	// Line mode shows the selection through the ruler labels instead.
	if hasSel && d.Mode != lod.ModeLine {
		r.paintSelection(dst, seq, vp, rowTop, sel)
	}

	switch d.Mode {
	case lod.ModeText:
		return r.renderText(dst, seq, vp, d, rowTop, first, last)
	case lod.ModeBox:
		r.renderBoxes(dst, seq, vp, d, rowTop, first, last)
	default:
		r.renderLine(dst, seq, vp, d, rowTop, first, last)
	}
	return nil
}

func (r *RowRenderer) paintSelection(dst core.Surface, seq store.Sequence, vp *viewport.State, rowTop float64, sel selection.Range) {
	start, end := sel.StartCol, sel.EndCol
	if end >= seq.Length {
		end = seq.Length - 1
	}
	if end < start {
		return
	}
	wash := core.RectF{
		X: vp.ColumnLeftPx(start) - vp.ScrollPx(),
		Y: rowTop,
		W: float64(end-start+1) * vp.CharWidth(),
		H: r.CharHeight,
	}
	visible := core.RectF{X: 0, Y: rowTop, W: vp.VisibleWidth(), H: r.CharHeight}
	clipped := wash.Intersection(visible)
	if !clipped.IsEmpty() {
		dst.FillRect(clipped, selectionWash)
	}
}

func (r *RowRenderer) renderText(dst core.Surface, seq store.Sequence, vp *viewport.State, d lod.Decision, rowTop float64, first, last int) error {
	desc := core.FontDesc{Family: "Go Mono", Size: int(d.FontSize)}
	cw := vp.CharWidth()

	for col := first; col < last; col++ {
		ch := rune(seq.Chars[col])
		fg := r.Colors.Get(rune(seq.Upper[col]))
		bm, err := r.Glyphs.Get(ch, desc, fg)
		if err != nil {
			return err
		}
		x := vp.ColumnLeftPx(col) - vp.ScrollPx() + (cw-float64(bm.Width))/2.0
		y := rowTop + (r.CharHeight-float64(bm.Height))/2.0
		dst.Blit(x, y, bm)
	}
	return nil
}

func (r *RowRenderer) renderBoxes(dst core.Surface, seq store.Sequence, vp *viewport.State, d lod.Decision, rowTop float64, first, last int) {
	cw := vp.CharWidth()
	y := rowTop + (r.CharHeight-d.BoxHeight)/2.0

	// Adjacent same-colored boxes merge into one fill.
	runStart := first
	runColor := r.Colors.Get(rune(seq.Upper[first]))
	flush := func(endCol int) {
		dst.FillRect(core.RectF{
			X: vp.ColumnLeftPx(runStart) - vp.ScrollPx(),
			Y: y,
			W: float64(endCol-runStart) * cw,
			H: d.BoxHeight,
		}, runColor)
	}
	for col := first + 1; col < last; col++ {
		c := r.Colors.Get(rune(seq.Upper[col]))
		if c != runColor {
			flush(col)
			runStart = col
			runColor = c
		}
	}
	flush(last)
}

func (r *RowRenderer) renderLine(dst core.Surface, seq store.Sequence, vp *viewport.State, d lod.Decision, rowTop float64, first, last int) {
	left := vp.ColumnLeftPx(first) - vp.ScrollPx()
	right := vp.ColumnLeftPx(last) - vp.ScrollPx()
	dst.FillRect(core.RectF{
		X: left,
		Y: rowTop + (r.CharHeight-d.LineHeight)/2.0,
		W: right - left,
		H: d.LineHeight,
	}, lineBrush)
}
