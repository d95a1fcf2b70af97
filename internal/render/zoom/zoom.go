// Package zoom drives the char width of the viewport: wheel streaks,
// drag-to-range targets, and the short ease-out animation between them.
package zoom

import (
	"math"
	"time"
)

// Config holds the tunable zoom parameters.
type Config struct {
	// BaseFactor is the multiplicative zoom per single wheel notch.
	BaseFactor float64

	// AccelFactor compounds on BaseFactor for every consecutive notch
	// in an unbroken streak.
	AccelFactor float64

	// NotchUnit is the wheel delta of one physical notch.
	NotchUnit float64

	// MaxCharWidth is the hard upper zoom bound in pixels per column.
	MaxCharWidth float64

	// Duration is the length of the zoom animation.
	Duration time.Duration

	// StreakWindow is the longest pause between wheel events that still
	// extends a streak.
	StreakWindow time.Duration
}

// DefaultConfig returns the stock zoom tuning.
func DefaultConfig() Config {
	return Config{
		BaseFactor:   1.22,
		AccelFactor:  1.06,
		NotchUnit:    120.0,
		MaxCharWidth: 90.0,
		Duration:     180 * time.Millisecond,
		StreakWindow: 300 * time.Millisecond,
	}
}

// Animation is one in-flight char width transition. It is a pure
// mapping from time to width; the caller applies the sampled width to
// the viewport each frame.
type Animation struct {
	from     float64
	to       float64
	pivotNt  float64
	start    time.Time
	duration time.Duration
}

// Target returns the end width of the animation.
func (a *Animation) Target() float64 {
	return a.to
}

// PivotNt returns the content position held fixed during the animation.
func (a *Animation) PivotNt() float64 {
	return a.pivotNt
}

// At samples the animated width at the given time using an ease-out
// cubic curve, and reports whether the animation has finished.
func (a *Animation) At(now time.Time) (float64, bool) {
	elapsed := now.Sub(a.start)
	if elapsed >= a.duration || a.duration <= 0 {
		return a.to, true
	}
	if elapsed < 0 {
		return a.from, false
	}
	t := float64(elapsed) / float64(a.duration)
	p := 1.0 - math.Pow(1.0-t, 3.0)
	return a.from + (a.to-a.from)*p, false
}

// Controller owns the wheel streak state and the current animation.
// It is exclusively owned by the canvas, like the viewport it drives.
type Controller struct {
	cfg       Config
	now       func() time.Time
	anim      *Animation
	streak    int
	lastDir   int
	lastWheel time.Time
}

// NewController creates a zoom controller with the given tuning.
func NewController(cfg Config) *Controller {
	if cfg.BaseFactor <= 1.0 {
		cfg.BaseFactor = 1.22
	}
	if cfg.AccelFactor < 1.0 {
		cfg.AccelFactor = 1.06
	}
	if cfg.NotchUnit <= 0 {
		cfg.NotchUnit = 120.0
	}
	if cfg.MaxCharWidth <= 0 {
		cfg.MaxCharWidth = 90.0
	}
	if cfg.Duration <= 0 {
		cfg.Duration = 180 * time.Millisecond
	}
	if cfg.StreakWindow <= 0 {
		cfg.StreakWindow = 300 * time.Millisecond
	}
	return &Controller{cfg: cfg, now: time.Now}
}

// SetClock replaces the time source. Tests use this to step frames
// deterministically.
func (c *Controller) SetClock(fn func() time.Time) {
	if fn != nil {
		c.now = fn
	}
}

// Animating reports whether a zoom animation is in flight.
func (c *Controller) Animating() bool {
	if c.anim == nil {
		return false
	}
	if _, done := c.anim.At(c.now()); done {
		return false
	}
	return true
}

// PivotInFlight returns the pivot of the running animation, if any.
// A wheel event during an animation retargets the width but keeps
// zooming toward the same spot.
func (c *Controller) PivotInFlight() (float64, bool) {
	if !c.Animating() {
		return 0, false
	}
	return c.anim.PivotNt(), true
}

// WheelFactor converts a wheel delta to a multiplicative width factor,
// advancing the streak state. Consecutive notches in the same direction
// inside the streak window compound the acceleration; a reversal or a
// pause resets it.
func (c *Controller) WheelFactor(deltaY float64) float64 {
	if deltaY == 0 {
		return 1.0
	}
	now := c.now()
	dir := 1
	if deltaY < 0 {
		dir = -1
	}
	if dir != c.lastDir || now.Sub(c.lastWheel) > c.cfg.StreakWindow {
		c.streak = 0
	} else {
		c.streak++
	}
	c.lastDir = dir
	c.lastWheel = now

	perStep := c.cfg.BaseFactor * math.Pow(c.cfg.AccelFactor, float64(c.streak))
	steps := math.Abs(deltaY) / c.cfg.NotchUnit
	factor := math.Pow(perStep, steps)
	if dir < 0 {
		factor = 1.0 / factor
	}
	return factor
}

// TargetFor applies a wheel delta to a base width and clamps the result
// into [minWidth, MaxCharWidth]. The base width is the target of any
// in-flight animation, so rapid notches accumulate instead of fighting
// the animation.
func (c *Controller) TargetFor(currentWidth, deltaY, minWidth float64) float64 {
	base := currentWidth
	if c.Animating() {
		base = c.anim.Target()
	}
	return clampWidth(base*c.WheelFactor(deltaY), minWidth, c.cfg.MaxCharWidth)
}

// RangeTarget returns the width that fits a dragged column range into
// the given viewport width, clamped like any other target. The span is
// the column distance |end - start|, never below one.
func (c *Controller) RangeTarget(viewportPx float64, startCol, endCol int, minWidth float64) float64 {
	span := float64(endCol - startCol)
	if span < 0 {
		span = -span
	}
	if span < 1 {
		span = 1
	}
	return clampWidth(viewportPx/span, minWidth, c.cfg.MaxCharWidth)
}

// StartOrRetarget begins an animation toward the target width, or
// redirects the running one. A retarget replaces only the end value:
// the pivot, start time, and remaining curve stay, so bursts of events
// read as continuous acceleration instead of restarts.
func (c *Controller) StartOrRetarget(currentWidth, targetWidth, pivotNt float64) {
	if c.Animating() {
		c.anim.to = targetWidth
		return
	}
	c.anim = &Animation{
		from:     currentWidth,
		to:       targetWidth,
		pivotNt:  pivotNt,
		start:    c.now(),
		duration: c.cfg.Duration,
	}
}

// Sample returns the animated width and pivot for the current frame.
// When the animation completes, the final width is reported once with
// animating=false and the controller goes idle.
func (c *Controller) Sample() (width, pivotNt float64, active bool) {
	if c.anim == nil {
		return 0, 0, false
	}
	w, done := c.anim.At(c.now())
	pivot := c.anim.PivotNt()
	if done {
		c.anim = nil
		return w, pivot, false
	}
	return w, pivot, true
}

// Cancel drops any in-flight animation, leaving the viewport wherever
// the last sample put it.
func (c *Controller) Cancel() {
	c.anim = nil
}

func clampWidth(w, minWidth, maxWidth float64) float64 {
	if w < minWidth {
		return minWidth
	}
	if w > maxWidth {
		return maxWidth
	}
	return w
}
