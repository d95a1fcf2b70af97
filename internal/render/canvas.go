package render

import (
	"github.com/dshills/seqscope/internal/render/core"
	"github.com/dshills/seqscope/internal/render/glyph"
	"github.com/dshills/seqscope/internal/render/lod"
	"github.com/dshills/seqscope/internal/render/selection"
	"github.com/dshills/seqscope/internal/render/viewport"
	"github.com/dshills/seqscope/internal/render/zoom"
	"github.com/dshills/seqscope/internal/store"
)

// Canvas is the zoomable sequence view. It owns the viewport, the zoom
// controller, and the selection gesture, and renders the store's rows
// through the level-of-detail pipeline. All methods are called from the
// UI goroutine; the canvas itself is not locked.
type Canvas struct {
	store  *store.Store
	vp     *viewport.State
	sel    *selection.Model
	zoom   *zoom.Controller
	policy lod.Policy
	rows   RowRenderer

	maxMode    lod.Mode
	charHeight float64

	// OnSelectionChanged fires after every selection mutation, with the
	// normalized range and whether a selection exists.
	OnSelectionChanged func(selection.Range, bool)
}

// Options configures a canvas.
type Options struct {
	BaseCharWidth float64
	CharHeight    float64
	ViewWidthPx   float64
	Zoom          zoom.Config
	Colors        core.ColorMap
}

// NewCanvas creates a canvas over a sequence store.
func NewCanvas(st *store.Store, glyphs *glyph.Cache, opts Options) *Canvas {
	if opts.BaseCharWidth <= 0 {
		opts.BaseCharWidth = 12.0
	}
	if opts.CharHeight <= 0 {
		opts.CharHeight = 18.0
	}
	if opts.Colors.Len() == 0 {
		opts.Colors = core.DefaultNucleotideColors()
	}
	if opts.Zoom == (zoom.Config{}) {
		opts.Zoom = zoom.DefaultConfig()
	}
	return &Canvas{
		store:  st,
		vp:     viewport.New(opts.BaseCharWidth, opts.ViewWidthPx),
		sel:    selection.New(),
		zoom:   zoom.NewController(opts.Zoom),
		policy: lod.NewPolicy(opts.BaseCharWidth, opts.CharHeight),
		rows: RowRenderer{
			Glyphs:     glyphs,
			Colors:     opts.Colors,
			CharHeight: opts.CharHeight,
		},
		maxMode:    lod.ModeText,
		charHeight: opts.CharHeight,
	}
}

// Viewport exposes the viewport state for rulers and tests.
func (c *Canvas) Viewport() *viewport.State {
	return c.vp
}

// Zoom exposes the zoom controller, mainly so tests can inject a clock.
func (c *Canvas) Zoom() *zoom.Controller {
	return c.zoom
}

// SetMaxMode sets the display mode ceiling. The natural mode can only
// be coarsened by this, never refined.
func (c *Canvas) SetMaxMode(m lod.Mode) {
	c.maxMode = m
}

// MaxMode returns the display mode ceiling.
func (c *Canvas) MaxMode() lod.Mode {
	return c.maxMode
}

// SetColors swaps the nucleotide palette, for live palette reload.
func (c *Canvas) SetColors(m core.ColorMap) {
	c.rows.Colors = m
}

// Colors returns the active nucleotide palette.
func (c *Canvas) Colors() core.ColorMap {
	return c.rows.Colors
}

// Resize updates the visible width of the canvas.
func (c *Canvas) Resize(widthPx float64) {
	c.vp.Resize(widthPx)
}

// Decision returns the level-of-detail decision for the current zoom.
func (c *Canvas) Decision() lod.Decision {
	return c.policy.EvaluateWithMax(c.vp.CharWidth(), c.maxMode)
}

// trailingPad returns the right-hand content padding for the current
// display mode.
func (c *Canvas) trailingPad() float64 {
	if c.Decision().Mode == lod.ModeLine {
		return viewport.TrailingPadLinePx
	}
	return viewport.TrailingPadTextPx
}

// minCharWidth returns the smallest width that still fills the viewport
// with the longest row. The clamp always reserves the Line-mode pad:
// zooming out far enough lands in Line mode, and its larger pad must
// already be accounted for or the bottom of the zoom range would
// overflow.
func (c *Canvas) minCharWidth() float64 {
	pad := c.trailingPad()
	if viewport.TrailingPadLinePx > pad {
		pad = viewport.TrailingPadLinePx
	}
	return viewport.MinCharWidth(c.store.MaxLength(), c.vp.VisibleWidth(), pad)
}

// contentWidth returns the scrollable width at the current zoom.
func (c *Canvas) contentWidth() float64 {
	return viewport.ContentWidth(c.store.MaxLength(), c.vp.CharWidth(), c.trailingPad())
}

// Scroll shifts the viewport horizontally by a pixel delta.
func (c *Canvas) Scroll(deltaPx float64) {
	c.vp.ScrollBy(deltaPx, c.contentWidth())
}

// Wheel handles a wheel event at a viewport-local x position. Without
// the zoom modifier the event is not consumed and the caller should
// scroll instead. With it, the delta retargets the zoom animation
// toward the pivot: an in-flight pivot first, else the selection
// center, else the content under the pointer.
func (c *Canvas) Wheel(deltaY, pointerX float64, zoomModifier bool) bool {
	if !zoomModifier || deltaY == 0 {
		return false
	}

	pivot, ok := c.zoom.PivotInFlight()
	if !ok {
		pivot, ok = c.sel.Center(c.store.MaxLength())
	}
	if !ok {
		pivot = c.vp.ContentAt(pointerX)
	}

	target := c.zoom.TargetFor(c.vp.CharWidth(), deltaY, c.minCharWidth())
	c.zoom.StartOrRetarget(c.vp.CharWidth(), target, pivot)
	return true
}

// Advance samples the zoom animation and applies the frame's width to
// the viewport, holding the pivot's screen position fixed. It returns
// true while more frames are needed.
func (c *Canvas) Advance() bool {
	w, pivot, active := c.zoom.Sample()
	if w <= 0 {
		return false
	}
	c.vp.ApplyCharWidth(w, pivot, c.store.MaxLength(), c.trailingPad())
	return active
}

// ZoomToRange fits a closed column span to the viewport immediately,
// without animation, and centers it.
func (c *Canvas) ZoomToRange(startCol, endCol int) {
	c.zoom.Cancel()
	target := c.zoom.RangeTarget(c.vp.VisibleWidth(), startCol, endCol, c.minCharWidth())
	if endCol < startCol {
		startCol, endCol = endCol, startCol
	}
	mid := float64(startCol+endCol+1) / 2.0
	c.vp.SetCharWidth(target)
	c.vp.CenterOn(mid, c.store.MaxLength(), c.trailingPad())
}

// CenterOnColumn scrolls the viewport so the column sits at its center,
// without changing zoom.
func (c *Canvas) CenterOnColumn(col int) {
	c.vp.CenterOn(float64(col)+0.5, c.store.MaxLength(), c.trailingPad())
}

// PointerDown starts a selection gesture at viewport-local coordinates.
// A press outside the rows or past the content clears the selection.
func (c *Canvas) PointerDown(x, y float64) {
	row := int(y / c.charHeight)
	if y < 0 {
		row = -1
	}
	col := c.vp.ColumnAt(c.vp.ScrollPx() + x)

	if col >= c.store.MaxLength() {
		c.sel.Clear()
		c.notifySelection()
		return
	}
	c.sel.Start(row, col, c.store.RowCount())
	c.notifySelection()
}

// PointerMove extends the selection gesture to a new position.
func (c *Canvas) PointerMove(x, y float64) {
	if !c.sel.Active() {
		return
	}
	row := int(y / c.charHeight)
	if y < 0 {
		row = -1
	}
	col := c.vp.ColumnAt(c.vp.ScrollPx() + x)
	c.sel.Update(row, col, c.store.RowCount(), c.store.MaxLength())
	c.notifySelection()
}

// PointerUp completes the selection gesture. The selection persists
// until the next press or an explicit clear.
func (c *Canvas) PointerUp() {}

// Clear removes all rows and the selection, returning the canvas to
// its empty state for a fresh load.
func (c *Canvas) Clear() {
	c.zoom.Cancel()
	c.store.Clear()
	c.sel.Clear()
	c.vp.SetScrollPx(0, 0)
	c.notifySelection()
}

// ClearSelection removes any selection.
func (c *Canvas) ClearSelection() {
	if !c.sel.Active() {
		return
	}
	c.sel.Clear()
	c.notifySelection()
}

// CurrentSelection returns the normalized selection range, if any.
func (c *Canvas) CurrentSelection() (selection.Range, bool) {
	return c.sel.Current()
}

func (c *Canvas) notifySelection() {
	if c.OnSelectionChanged == nil {
		return
	}
	r, ok := c.sel.Current()
	c.OnSelectionChanged(r, ok)
}

// Render draws every row through the level-of-detail pipeline.
func (c *Canvas) Render(dst core.Surface) error {
	d := c.Decision()
	sel, hasSel := c.sel.Current()

	for i, seq := range c.store.Rows() {
		rowTop := float64(i) * c.charHeight
		rowSel := hasSel && sel.ContainsRow(i)
		if err := c.rows.Render(dst, seq, c.vp, d, rowTop, sel, rowSel); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot captures the view state consumed by the rulers and the
// header panel.
func (c *Canvas) Snapshot() core.ViewSnapshot {
	sel, hasSel := c.sel.Current()
	return core.ViewSnapshot{
		RowCount:       c.store.RowCount(),
		MaxLength:      c.store.MaxLength(),
		CharWidth:      c.vp.CharWidth(),
		ScrollPx:       c.vp.ScrollPx(),
		ViewWidthPx:    c.vp.VisibleWidth(),
		ContentWidthPx: c.contentWidth(),
		SelStart:       sel.StartCol,
		SelEnd:         sel.EndCol,
		HasSelection:   hasSel,
	}
}
