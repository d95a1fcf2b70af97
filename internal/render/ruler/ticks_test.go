package ruler

import "testing"

func TestStepForSnapsToDecadeValues(t *testing.T) {
	tests := []struct {
		span int
		want int
	}{
		{1000, 100},
		{1200, 100},   // raw 120, norm 1.2 -> 1
		{2000, 200},   // raw 200, norm 2 -> 2
		{5000, 500},   // raw 500, norm 5 -> 5
		{8000, 1000},  // raw 800, norm 8 -> 10
		{1500, 100},   // raw 150, norm 1.5 inclusive -> 1
		{1501, 200},   // just past the 1.5 boundary
	}
	for _, tt := range tests {
		if got := StepFor(tt.span); got != tt.want {
			t.Errorf("StepFor(%d) = %d, want %d", tt.span, got, tt.want)
		}
	}
}

func TestStepForMegabaseLadder(t *testing.T) {
	if got := StepFor(1_000_000); got != 100_000 {
		t.Errorf("StepFor(1M) = %d, want 100000", got)
	}
	if got := StepFor(5_000_000); got != 500_000 {
		t.Errorf("StepFor(5M) = %d, want 500000", got)
	}
	if got := StepFor(20_000_000); got != 2_000_000 {
		t.Errorf("StepFor(20M) = %d, want 2000000", got)
	}
}

func TestStepForSmallSpanCap(t *testing.T) {
	// A span of 100 would raw-snap to 10 already; 100-or-less never
	// exceeds 10 regardless.
	for _, span := range []int{100, 80, 50} {
		if got := StepFor(span); got > 10 {
			t.Errorf("StepFor(%d) = %d, want <= 10", span, got)
		}
	}
	if got := StepFor(1); got != 1 {
		t.Errorf("StepFor(1) = %d, want 1", got)
	}
}

func TestStepForSubMegabaseFloor(t *testing.T) {
	// Spans in the hundreds of kilobases keep a readable 10K floor.
	if got := StepFor(150_000); got < 10_000 {
		t.Errorf("StepFor(150K) = %d, want >= 10000", got)
	}
}

func TestMinorStep(t *testing.T) {
	if got := MinorStepFor(100); got != 20 {
		t.Errorf("MinorStepFor(100) = %d, want 20", got)
	}
	if got := MinorStepFor(2); got != 1 {
		t.Errorf("MinorStepFor(2) = %d, want 1", got)
	}
}

func TestComputeTickLayoutMegabase(t *testing.T) {
	lay := ComputeTickLayout(0, 1_000_000, 1000.0, true)

	if lay.Step != 100_000 {
		t.Fatalf("Step = %d, want 100000", lay.Step)
	}
	majors := 0
	for _, tk := range lay.Ticks {
		if tk.Major {
			majors++
		}
		if tk.Px < 0 || tk.Px > 1000.0 {
			t.Errorf("tick at %d has out-of-strip px %.2f", tk.Position, tk.Px)
		}
	}
	// 0, 100K .. 1M inclusive.
	if majors != 11 {
		t.Errorf("major ticks = %d, want 11", majors)
	}
}

func TestComputeTickLayoutEndSnap(t *testing.T) {
	// Span 1040 steps by 100; the last aligned major (1000) sits within
	// half a step of the end and snaps onto it.
	lay := ComputeTickLayout(0, 1040, 1000.0, false)

	sawEnd := false
	for _, tk := range lay.Ticks {
		if !tk.Major {
			continue
		}
		if tk.Position == 1000 {
			t.Error("major at 1000 should have snapped to the end")
		}
		if tk.Position == 1040 {
			sawEnd = true
		}
	}
	if !sawEnd {
		t.Error("span end is not ticked")
	}
}

func TestComputeTickLayoutEndAppended(t *testing.T) {
	// Span 1060: the last aligned major (1000) is farther than half a
	// step from the end, so the end gets its own tick.
	lay := ComputeTickLayout(0, 1060, 1000.0, false)

	saw1000, sawEnd := false, false
	for _, tk := range lay.Ticks {
		if tk.Major && tk.Position == 1000 {
			saw1000 = true
		}
		if tk.Major && tk.Position == 1060 {
			sawEnd = true
		}
	}
	if !saw1000 || !sawEnd {
		t.Errorf("want majors at both 1000 and 1060 (got %v, %v)", saw1000, sawEnd)
	}
}

func TestFormatLabel(t *testing.T) {
	if got := FormatLabel(0, false); got != "1" {
		t.Errorf("origin label = %q, want \"1\"", got)
	}
	if got := FormatLabel(0, true); got != "1" {
		t.Errorf("origin label with K = %q, want \"1\"", got)
	}
	if got := FormatLabel(500, false); got != "500" {
		t.Errorf("label = %q, want \"500\"", got)
	}
	if got := FormatLabel(1_500_000, true); got != "1500K" {
		t.Errorf("label = %q, want \"1500K\"", got)
	}
	// Non-multiples of 1000 round instead of truncating.
	if got := FormatLabel(1_999_750, true); got != "2000K" {
		t.Errorf("label = %q, want \"2000K\"", got)
	}
	if got := FormatLabel(1_400, true); got != "1K" {
		t.Errorf("label = %q, want \"1K\"", got)
	}
}

func TestPlaceLabelsDropsCrowded(t *testing.T) {
	labels := []Label{
		{Text: "1", Px: 0},
		{Text: "100", Px: 15},  // crowds the first
		{Text: "200", Px: 100},
	}
	placed := PlaceLabels(labels)
	if len(placed) != 2 {
		t.Fatalf("placed = %d labels, want 2", len(placed))
	}
	for _, p := range placed {
		if p.Text == "100" {
			t.Error("crowded label survived")
		}
	}
}

func TestPlaceLabelsSelectionWins(t *testing.T) {
	labels := []Label{
		{Text: "100", Px: 50},
		{Text: "42", Px: 55, Selection: true},
	}
	placed := PlaceLabels(labels)

	if len(placed) != 1 {
		t.Fatalf("placed = %d labels, want 1", len(placed))
	}
	if !placed[0].Selection {
		t.Error("selection label should win placement")
	}
}
