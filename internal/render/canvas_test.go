package render

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/dshills/seqscope/internal/render/backend"
	"github.com/dshills/seqscope/internal/render/glyph"
	"github.com/dshills/seqscope/internal/render/lod"
	"github.com/dshills/seqscope/internal/render/selection"
	"github.com/dshills/seqscope/internal/store"
)

type testClock struct {
	t time.Time
}

func newTestClock() *testClock {
	return &testClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *testClock) now() time.Time {
	return c.t
}

func (c *testClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestCanvas(t *testing.T, rows []string, viewWidth float64) (*Canvas, *testClock) {
	t.Helper()
	st := store.New()
	for i, chars := range rows {
		st.Add("row"+string(rune('a'+i)), chars)
	}
	glyphs, err := glyph.NewCache()
	if err != nil {
		t.Fatalf("glyph cache: %v", err)
	}
	c := NewCanvas(st, glyphs, Options{
		BaseCharWidth: 12.0,
		CharHeight:    18.0,
		ViewWidthPx:   viewWidth,
	})
	clk := newTestClock()
	c.Zoom().SetClock(clk.now)
	return c, clk
}

func longRow(n int) string {
	return strings.Repeat("ACGT", n/4+1)[:n]
}

func TestWheelWithoutModifierNotConsumed(t *testing.T) {
	c, _ := newTestCanvas(t, []string{"ACGT"}, 800)

	if c.Wheel(120, 400, false) {
		t.Error("wheel without the zoom modifier must not be consumed")
	}
	if c.Wheel(0, 400, true) {
		t.Error("zero delta must not start a zoom")
	}
}

func TestWheelZoomKeepsPointerPixelFixed(t *testing.T) {
	c, clk := newTestCanvas(t, []string{longRow(10000)}, 800)

	pivot := c.Viewport().ContentAt(400)
	before := pivot*c.Viewport().CharWidth() - c.Viewport().ScrollPx()

	if !c.Wheel(120, 400, true) {
		t.Fatal("modified wheel should be consumed")
	}
	clk.advance(200 * time.Millisecond)
	c.Advance()

	after := pivot*c.Viewport().CharWidth() - c.Viewport().ScrollPx()
	if math.Abs(after-before) > 1.0 {
		t.Errorf("pivot pixel moved from %.2f to %.2f", before, after)
	}
	if c.Viewport().CharWidth() <= 12.0 {
		t.Error("zoom in did not increase char width")
	}
}

func TestWheelPivotPrefersSelectionCenter(t *testing.T) {
	c, clk := newTestCanvas(t, []string{longRow(10000)}, 800)

	// Select columns 10..19: center is 15.
	c.PointerDown(10*12.0, 5)
	c.PointerMove(20*12.0, 5)
	c.PointerMove(19*12.0+6, 5)

	c.Wheel(120, 700, true)
	clk.advance(200 * time.Millisecond)
	c.Advance()

	// The selection center, not the pointer position, stayed put.
	sel, ok := c.CurrentSelection()
	if !ok {
		t.Fatal("selection lost")
	}
	center := float64(sel.StartCol+sel.EndCol+1) / 2.0
	screen := center*c.Viewport().CharWidth() - c.Viewport().ScrollPx()
	if math.Abs(screen-center*12.0) > 1.0 {
		t.Errorf("selection center moved: now at %.2f, was %.2f", screen, center*12.0)
	}
}

func TestAdvanceIdleWithoutAnimation(t *testing.T) {
	c, _ := newTestCanvas(t, []string{"ACGT"}, 800)
	if c.Advance() {
		t.Error("Advance with no animation should be idle")
	}
}

func TestZoomToRangeFitsSpan(t *testing.T) {
	c, _ := newTestCanvas(t, []string{longRow(10000)}, 800)

	c.ZoomToRange(200, 499)
	want := 800.0 / 299.0
	if got := c.Viewport().CharWidth(); math.Abs(got-want) > 1e-9 {
		t.Errorf("char width = %.4f, want %.4f", got, want)
	}

	first, last := c.Viewport().VisibleColumns(10000)
	if first > 200 || last < 500 {
		t.Errorf("visible window [%d, %d) does not cover the range", first, last)
	}
}

func TestSelectionGestureAndCallback(t *testing.T) {
	c, _ := newTestCanvas(t, []string{"ACGTACGTACGT"}, 800)

	var fired int
	var lastOK bool
	c.OnSelectionChanged = func(_ selection.Range, ok bool) {
		fired++
		lastOK = ok
	}

	c.PointerDown(5*12.0, 9.0)
	c.PointerMove(2*12.0, 9.0)
	c.PointerUp()

	sel, ok := c.CurrentSelection()
	if !ok {
		t.Fatal("no selection after gesture")
	}
	if sel.StartCol != 2 || sel.EndCol != 5 {
		t.Errorf("selection = (%d, %d), want (2, 5)", sel.StartCol, sel.EndCol)
	}
	if fired != 2 || !lastOK {
		t.Errorf("callback fired %d times, lastOK=%v", fired, lastOK)
	}

	// Pressing past the content is a deselect gesture.
	c.PointerDown(700, 9.0)
	if _, ok := c.CurrentSelection(); ok {
		t.Error("press past the content should clear the selection")
	}
	if lastOK {
		t.Error("clear should notify with ok=false")
	}
}

func TestRenderLineModeOneFillPerRow(t *testing.T) {
	c, _ := newTestCanvas(t, []string{longRow(500), longRow(300)}, 800)

	// Deep zoom-out: font tapers under the box threshold.
	c.Viewport().SetCharWidth(0.5)
	if c.Decision().Mode != lod.ModeLine {
		t.Fatalf("mode = %v, want line", c.Decision().Mode)
	}

	s := backend.NewNullSurface()
	if err := c.Render(s); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(s.Fills) != 2 {
		t.Errorf("fills = %d, want one line per row", len(s.Fills))
	}
	if len(s.Blits) != 0 {
		t.Errorf("line mode blitted %d glyphs", len(s.Blits))
	}
}

func TestRenderBoxModeMergesColorRuns(t *testing.T) {
	c, _ := newTestCanvas(t, []string{"AATT"}, 800)

	// Scale 0.5 of base: font 5.4pt, box mode.
	c.Viewport().SetCharWidth(6.0)
	if c.Decision().Mode != lod.ModeBox {
		t.Fatalf("mode = %v, want box", c.Decision().Mode)
	}

	s := backend.NewNullSurface()
	if err := c.Render(s); err != nil {
		t.Fatalf("Render: %v", err)
	}
	// AA and TT merge into one fill each.
	if len(s.Fills) != 2 {
		t.Errorf("fills = %d, want 2 merged runs", len(s.Fills))
	}
}

func TestRenderTextModeBlitsVisibleColumnsOnly(t *testing.T) {
	c, _ := newTestCanvas(t, []string{longRow(1000)}, 48)

	// Scale 2.0: 12pt text mode; only two 24px columns fit in 48px.
	c.Viewport().SetCharWidth(24.0)
	if c.Decision().Mode != lod.ModeText {
		t.Fatalf("mode = %v, want text", c.Decision().Mode)
	}

	s := backend.NewNullSurface()
	if err := c.Render(s); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(s.Blits) != 2 {
		t.Errorf("blits = %d, want 2 visible columns", len(s.Blits))
	}
}

func TestMaxModeCoarsensRendering(t *testing.T) {
	c, _ := newTestCanvas(t, []string{"ACGT"}, 800)

	c.SetMaxMode(lod.ModeLine)
	if c.Decision().Mode != lod.ModeLine {
		t.Errorf("mode = %v, want forced line", c.Decision().Mode)
	}

	// The ceiling never refines past the natural mode.
	c.Viewport().SetCharWidth(0.5)
	c.SetMaxMode(lod.ModeText)
	if c.Decision().Mode != lod.ModeLine {
		t.Errorf("mode = %v, ceiling must not refine", c.Decision().Mode)
	}
}

func TestSelectionWashDrawnBeforeRowContent(t *testing.T) {
	c, _ := newTestCanvas(t, []string{"AAAA"}, 800)
	c.Viewport().SetCharWidth(6.0) // box mode

	c.PointerDown(6.0, 9.0)
	c.PointerMove(18.0, 9.0)

	s := backend.NewNullSurface()
	if err := c.Render(s); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(s.Fills) < 2 {
		t.Fatalf("fills = %d, want wash plus content", len(s.Fills))
	}
	wash := s.Fills[0]
	if wash.Color != (selectionWash) {
		t.Errorf("first fill color = %v, want the selection wash", wash.Color)
	}
	// Columns 1..3 at 6px each.
	if wash.Rect.X != 6.0 || wash.Rect.W != 18.0 {
		t.Errorf("wash rect = %+v", wash.Rect)
	}
}
