package zoom

import (
	"math"
	"testing"
	"time"
)

// fakeClock steps time manually for deterministic animation sampling.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) now() time.Time {
	return f.t
}

func (f *fakeClock) advance(d time.Duration) {
	f.t = f.t.Add(d)
}

func newTestController(clk *fakeClock) *Controller {
	c := NewController(DefaultConfig())
	c.SetClock(clk.now)
	return c
}

func TestWheelFactorSingleNotch(t *testing.T) {
	clk := newFakeClock()
	c := newTestController(clk)

	if got := c.WheelFactor(120); math.Abs(got-1.22) > 1e-9 {
		t.Errorf("one notch in = %.4f, want 1.22", got)
	}

	clk.advance(time.Second)
	if got := c.WheelFactor(-120); math.Abs(got-1.0/1.22) > 1e-9 {
		t.Errorf("one notch out = %.4f, want %.4f", got, 1.0/1.22)
	}
}

func TestWheelStreakAccelerates(t *testing.T) {
	clk := newFakeClock()
	c := newTestController(clk)

	c.WheelFactor(120)
	clk.advance(50 * time.Millisecond)
	second := c.WheelFactor(120)
	clk.advance(50 * time.Millisecond)
	third := c.WheelFactor(120)

	if math.Abs(second-1.22*1.06) > 1e-9 {
		t.Errorf("second notch = %.4f, want %.4f", second, 1.22*1.06)
	}
	if math.Abs(third-1.22*1.06*1.06) > 1e-9 {
		t.Errorf("third notch = %.4f, want %.4f", third, 1.22*1.06*1.06)
	}
}

func TestWheelStreakResets(t *testing.T) {
	clk := newFakeClock()
	c := newTestController(clk)

	c.WheelFactor(120)
	clk.advance(50 * time.Millisecond)
	c.WheelFactor(120)

	// Direction reversal resets the streak.
	clk.advance(50 * time.Millisecond)
	if got := c.WheelFactor(-120); math.Abs(got-1.0/1.22) > 1e-9 {
		t.Errorf("reversed notch = %.4f, want %.4f", got, 1.0/1.22)
	}

	// So does a pause longer than the streak window.
	clk.advance(time.Second)
	if got := c.WheelFactor(-120); math.Abs(got-1.0/1.22) > 1e-9 {
		t.Errorf("stale notch = %.4f, want %.4f", got, 1.0/1.22)
	}
}

func TestWheelFactorFractionalNotch(t *testing.T) {
	clk := newFakeClock()
	c := newTestController(clk)

	// Half a notch applies the square root of the per-step factor.
	got := c.WheelFactor(60)
	want := math.Pow(1.22, 0.5)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("half notch = %.4f, want %.4f", got, want)
	}
}

func TestTargetForClampsAtFloor(t *testing.T) {
	clk := newFakeClock()
	c := newTestController(clk)

	// Zooming out from just above the floor lands exactly on it.
	got := c.TargetFor(0.5, -120, 0.42)
	if got != 0.42 {
		t.Errorf("target = %.4f, want floor 0.42", got)
	}

	clk.advance(time.Second)
	if got := c.TargetFor(85.0, 120, 0.42); got != 90.0 {
		t.Errorf("target = %.4f, want ceiling 90", got)
	}
}

func TestTargetForCompoundsOnAnimationTarget(t *testing.T) {
	clk := newFakeClock()
	c := newTestController(clk)

	first := c.TargetFor(10.0, 120, 0.42)
	c.StartOrRetarget(10.0, first, 100.0)

	// A second notch mid-animation builds on the previous target, not
	// on the half-animated display width.
	clk.advance(50 * time.Millisecond)
	second := c.TargetFor(10.5, 120, 0.42)
	want := first * 1.22 * 1.06
	if math.Abs(second-want) > 1e-9 {
		t.Errorf("compounded target = %.4f, want %.4f", second, want)
	}
}

func TestAnimationEaseOutCubic(t *testing.T) {
	clk := newFakeClock()
	c := newTestController(clk)
	c.StartOrRetarget(10.0, 20.0, 50.0)

	clk.advance(90 * time.Millisecond)
	w, pivot, active := c.Sample()
	if !active {
		t.Fatal("animation should still be in flight at half duration")
	}
	if pivot != 50.0 {
		t.Errorf("pivot = %.2f, want 50", pivot)
	}
	// Ease-out at t=0.5 is 1-(0.5)^3 = 0.875 of the way there.
	want := 10.0 + 10.0*0.875
	if math.Abs(w-want) > 1e-9 {
		t.Errorf("width at half duration = %.4f, want %.4f", w, want)
	}

	// Ease-out is front-loaded: past half the progress by half the time.
	if w <= 15.0 {
		t.Errorf("ease-out should be front-loaded, got %.4f", w)
	}
}

func TestAnimationCompletes(t *testing.T) {
	clk := newFakeClock()
	c := newTestController(clk)
	c.StartOrRetarget(10.0, 20.0, 50.0)

	clk.advance(200 * time.Millisecond)
	w, _, active := c.Sample()
	if active {
		t.Error("animation should have completed")
	}
	if w != 20.0 {
		t.Errorf("final width = %.4f, want 20", w)
	}

	// The controller goes idle after reporting the final frame.
	if _, _, active := c.Sample(); active {
		t.Error("controller should be idle after completion")
	}
	if c.Animating() {
		t.Error("Animating should be false after completion")
	}
}

func TestRetargetKeepsPivotAndRemainingCurve(t *testing.T) {
	clk := newFakeClock()
	c := newTestController(clk)
	c.StartOrRetarget(10.0, 20.0, 50.0)

	clk.advance(90 * time.Millisecond)
	w1, _, _ := c.Sample()

	// Retarget with a different pivot: only the end value changes. The
	// in-flight pivot and the remaining timeline stay.
	c.StartOrRetarget(w1, 30.0, 999.0)
	w2, pivot, active := c.Sample()
	if !active {
		t.Fatal("retargeted animation should be active")
	}
	if pivot != 50.0 {
		t.Errorf("pivot = %.2f, want in-flight 50", pivot)
	}
	// Same curve progress (0.875), new end value.
	want := 10.0 + (30.0-10.0)*0.875
	if math.Abs(w2-want) > 1e-9 {
		t.Errorf("width after retarget = %.4f, want %.4f", w2, want)
	}

	// The animation still finishes on the original timeline.
	clk.advance(90 * time.Millisecond)
	w3, _, active := c.Sample()
	if active {
		t.Error("retarget must not extend the animation")
	}
	if w3 != 30.0 {
		t.Errorf("final width = %.4f, want 30", w3)
	}
}

func TestRangeTarget(t *testing.T) {
	c := NewController(DefaultConfig())

	// A drag spanning 299 columns into an 800px viewport.
	got := c.RangeTarget(800.0, 200, 499, 0.42)
	want := 800.0 / 299.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("RangeTarget = %.4f, want %.4f", got, want)
	}

	// Reversed endpoints span the same columns.
	if rev := c.RangeTarget(800.0, 499, 200, 0.42); rev != got {
		t.Errorf("reversed span = %.4f, want %.4f", rev, got)
	}

	// A zero-distance drag acts as one column and clamps at the ceiling.
	if got := c.RangeTarget(800.0, 42, 42, 0.42); got != 90.0 {
		t.Errorf("single column = %.4f, want 90", got)
	}
}

func TestCancelDropsAnimation(t *testing.T) {
	clk := newFakeClock()
	c := newTestController(clk)
	c.StartOrRetarget(10.0, 20.0, 50.0)
	c.Cancel()

	if c.Animating() {
		t.Error("Cancel should stop the animation")
	}
	if _, _, active := c.Sample(); active {
		t.Error("Sample after Cancel should be idle")
	}
}
