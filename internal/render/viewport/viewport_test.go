package viewport

import (
	"math"
	"testing"
)

func TestColumnAtFloorProperty(t *testing.T) {
	widths := []float64{0.42, 1.0, 3.7, 12.0, 90.0}
	pixels := []float64{0, 0.5, 11.99, 12.0, 1234.56, 99999.1}

	for _, cw := range widths {
		s := New(cw, 800)
		for _, px := range pixels {
			col := s.ColumnAt(px)
			left := s.ColumnLeftPx(col)
			if left > px || px >= left+cw {
				t.Errorf("cw=%.2f px=%.2f: column %d covers [%.4f, %.4f)", cw, px, col, left, left+cw)
			}
		}
	}
}

func TestSetCharWidthEpsilonClamp(t *testing.T) {
	s := New(0, 800)
	if s.CharWidth() <= 0 {
		t.Fatalf("CharWidth = %g, want positive", s.CharWidth())
	}
	// Column math survives a zero request.
	_ = s.ColumnAt(100)
}

func TestVisibleColumnsWindow(t *testing.T) {
	s := New(10.0, 100.0)
	s.SetScrollPx(25.0, ContentWidth(1000, 10.0, TrailingPadTextPx))

	first, last := s.VisibleColumns(1000)
	if first != 2 {
		t.Errorf("first = %d, want 2", first)
	}
	// Window [25, 125) touches columns 2..12 inclusive.
	if last != 13 {
		t.Errorf("last = %d, want 13", last)
	}
}

func TestVisibleColumnsClampedToRow(t *testing.T) {
	s := New(10.0, 500.0)

	first, last := s.VisibleColumns(20)
	if first != 0 || last != 20 {
		t.Errorf("window = [%d, %d), want [0, 20)", first, last)
	}

	if f, l := s.VisibleColumns(0); f != 0 || l != 0 {
		t.Errorf("empty row window = [%d, %d)", f, l)
	}
}

func TestScrollClamping(t *testing.T) {
	s := New(10.0, 100.0)
	content := ContentWidth(50, 10.0, TrailingPadTextPx) // 530

	s.SetScrollPx(-10, content)
	if s.ScrollPx() != 0 {
		t.Errorf("negative scroll = %.2f, want 0", s.ScrollPx())
	}
	s.SetScrollPx(10000, content)
	if s.ScrollPx() != 430 {
		t.Errorf("over-scroll = %.2f, want 430", s.ScrollPx())
	}

	// Content narrower than the viewport pins scroll at zero.
	s.SetScrollPx(50, 80)
	if s.ScrollPx() != 0 {
		t.Errorf("narrow content scroll = %.2f, want 0", s.ScrollPx())
	}
}

func TestMinCharWidth(t *testing.T) {
	got := MinCharWidth(1000, 1030, TrailingPadTextPx)
	if got != 1.0 {
		t.Errorf("MinCharWidth = %.4f, want 1.0", got)
	}

	// Degenerate inputs fall back to the epsilon guard.
	if got := MinCharWidth(0, 1030, TrailingPadTextPx); got != epsilonCharWidth {
		t.Errorf("zero length = %g", got)
	}
	if got := MinCharWidth(1000, 10, TrailingPadTextPx); got != epsilonCharWidth {
		t.Errorf("tiny viewport = %g", got)
	}
}

func TestApplyCharWidthKeepsPivotFixed(t *testing.T) {
	const maxLen = 100000

	s := New(2.0, 800.0)
	s.SetScrollPx(5000.0, ContentWidth(maxLen, 2.0, TrailingPadTextPx))

	pivot := s.ContentAt(400.0)
	before := pivot*s.CharWidth() - s.ScrollPx()

	for _, w := range []float64{2.44, 3.0, 5.5, 12.0, 7.1, 2.0} {
		s.ApplyCharWidth(w, pivot, maxLen, TrailingPadTextPx)
		after := pivot*s.CharWidth() - s.ScrollPx()
		if math.Abs(after-before) > 1.0 {
			t.Errorf("width %.2f: pivot moved from %.3f to %.3f", w, before, after)
		}
	}
}

func TestApplyCharWidthClampsNearEdges(t *testing.T) {
	const maxLen = 100

	// Pivot at the very first column, viewport already at the left edge:
	// scroll must not go negative.
	s := New(5.0, 400.0)
	s.ApplyCharWidth(10.0, 0.0, maxLen, TrailingPadTextPx)
	if s.ScrollPx() < 0 {
		t.Errorf("scroll went negative: %.2f", s.ScrollPx())
	}

	// Zooming out until the content fits pins scroll at zero.
	s = New(10.0, 800.0)
	s.SetScrollPx(200.0, ContentWidth(maxLen, 10.0, TrailingPadTextPx))
	s.ApplyCharWidth(1.0, 50.0, maxLen, TrailingPadTextPx)
	if s.ScrollPx() != 0 {
		t.Errorf("scroll after fit-all zoom = %.2f, want 0", s.ScrollPx())
	}
}

func TestApplyCharWidthSkipsSubPixelJitter(t *testing.T) {
	const maxLen = 10000

	s := New(4.0, 800.0)
	s.SetScrollPx(1000.0, ContentWidth(maxLen, 4.0, TrailingPadTextPx))

	// A width change so small the ideal scroll moves under half a pixel
	// leaves scroll untouched.
	pivot := s.ContentAt(400.0)
	s.ApplyCharWidth(4.0+0.0001, pivot, maxLen, TrailingPadTextPx)
	if s.ScrollPx() != 1000.0 {
		t.Errorf("scroll = %.4f, want unchanged 1000", s.ScrollPx())
	}
}

func TestCenterOn(t *testing.T) {
	const maxLen = 10000

	s := New(2.0, 800.0)
	s.CenterOn(1000.0, maxLen, TrailingPadTextPx)
	if got := s.ScrollPx(); got != 1600.0 {
		t.Errorf("scroll = %.2f, want 1600", got)
	}

	// Centering near the start clamps at zero.
	s.CenterOn(10.0, maxLen, TrailingPadTextPx)
	if s.ScrollPx() != 0 {
		t.Errorf("scroll = %.2f, want 0", s.ScrollPx())
	}
}
