// Package ruler computes tick and label layout for the navigation and
// position rulers. Both rulers share one step engine; they differ only
// in the span they cover and how they map positions to pixels.
package ruler

import (
	"math"
	"strconv"
)

// targetTickCount is the number of major intervals the step aims for.
const targetTickCount = 10

// Step overrides keyed by the span being divided.
const (
	ladderSpan    = 1_000_000
	ladderMinStep = 100_000
	floorSpan     = 100_000
	floorStep     = 10_000
	capSpan       = 100
	capStep       = 10
)

// StepFor returns the major tick step for a span of columns. The raw
// step span/10 snaps to a 1/2/5 decade value, then three span-dependent
// overrides apply: megabase spans stay on the coarse ladder starting at
// 100K, spans above 100K never drop below 10K steps, and tiny spans cap
// at 10 so short sequences still show several ticks. The step is never
// below 1.
func StepFor(span int) int {
	if span < 1 {
		return 1
	}
	raw := float64(span) / targetTickCount
	step := snap125(raw)

	switch {
	case span >= ladderSpan:
		if step < ladderMinStep {
			step = ladderMinStep
		}
	case span >= floorSpan:
		if step < floorStep {
			step = floorStep
		}
	case span <= capSpan:
		if step > capStep {
			step = capStep
		}
	}
	if step < 1 {
		step = 1
	}
	return step
}

// snap125 rounds a raw step to the nearest 1/2/5 decade value.
func snap125(raw float64) int {
	if raw <= 1 {
		return 1
	}
	magnitude := math.Pow(10, math.Floor(math.Log10(raw)))
	norm := raw / magnitude
	var snapped float64
	switch {
	case norm <= 1.5:
		snapped = 1
	case norm <= 3:
		snapped = 2
	case norm <= 7:
		snapped = 5
	default:
		snapped = 10
	}
	return int(snapped * magnitude)
}

// MinorStepFor returns the minor tick step for a major step.
func MinorStepFor(step int) int {
	minor := step / 5
	if minor < 1 {
		minor = 1
	}
	return minor
}

// Tick is one tick mark in ruler pixel space.
type Tick struct {
	// Position is the 0-based column the tick marks.
	Position int
	// Px is the tick's x coordinate in the ruler's pixel space.
	Px float64
	// Major distinguishes labeled major ticks from minor ones.
	Major bool
}

// Label is one rendered tick label.
type Label struct {
	Position int
	Text     string
	Px       float64
	// Selection marks the label as a selection endpoint, which wins
	// placement over ordinary tick labels.
	Selection bool
}

// Layout is the computed tick and label set for one ruler span.
type Layout struct {
	Step      int
	MinorStep int
	Ticks     []Tick
	Labels    []Label
}

// ComputeTickLayout lays out ticks for the column span [start, end]
// mapped linearly onto [0, pixelWidth). The final major tick snaps to
// the span end when the last step-aligned tick lands within half a step
// of it, so the end of the content is always labeled instead of an
// awkward near-end value.
func ComputeTickLayout(start, end int, pixelWidth float64, useK bool) Layout {
	if end < start {
		start, end = end, start
	}
	span := end - start
	if span < 1 || pixelWidth <= 0 {
		return Layout{Step: 1, MinorStep: 1}
	}

	step := StepFor(span)
	minor := MinorStepFor(step)
	pxPerUnit := pixelWidth / float64(span)

	toPx := func(pos int) float64 {
		return float64(pos-start) * pxPerUnit
	}

	var lay Layout
	lay.Step = step
	lay.MinorStep = minor

	firstMinor := ceilMultiple(start, minor)
	for pos := firstMinor; pos <= end; pos += minor {
		if pos%step == 0 {
			continue
		}
		lay.Ticks = append(lay.Ticks, Tick{Position: pos, Px: toPx(pos)})
	}

	lastMajor := -1
	firstMajor := ceilMultiple(start, step)
	for pos := firstMajor; pos <= end; pos += step {
		lay.Ticks = append(lay.Ticks, Tick{Position: pos, Px: toPx(pos), Major: true})
		lastMajor = pos
	}

	// Snap the trailing major tick to the span end.
	if lastMajor >= 0 && end-lastMajor > 0 && end-lastMajor <= step/2 {
		for i := range lay.Ticks {
			if lay.Ticks[i].Major && lay.Ticks[i].Position == lastMajor {
				lay.Ticks[i].Position = end
				lay.Ticks[i].Px = toPx(end)
			}
		}
	} else if lastMajor < end {
		lay.Ticks = append(lay.Ticks, Tick{Position: end, Px: toPx(end), Major: true})
	}

	for _, tk := range lay.Ticks {
		if !tk.Major {
			continue
		}
		lay.Labels = append(lay.Labels, Label{
			Position: tk.Position,
			Text:     FormatLabel(tk.Position, useK),
			Px:       tk.Px,
		})
	}
	return lay
}

// ceilMultiple returns the smallest multiple of step that is >= v.
func ceilMultiple(v, step int) int {
	if step < 1 {
		step = 1
	}
	if v <= 0 {
		return 0
	}
	return ((v + step - 1) / step) * step
}

// FormatLabel renders a 0-based column position as its 1-based display
// value. Position zero always reads "1". With the K suffix enabled
// (megabase content) values print in rounded thousands, so an
// end-snapped tick just shy of a kilobase boundary reads as the
// boundary.
func FormatLabel(pos int, useK bool) string {
	if pos == 0 {
		return "1"
	}
	if useK {
		return strconv.Itoa(int(math.Round(float64(pos)/1000.0))) + "K"
	}
	return strconv.Itoa(pos)
}

// labelHalfWidthPx is the half-extent reserved around a label center.
const labelHalfWidthPx = 20.0

// PlaceLabels filters labels so none overlap. Selection endpoint labels
// are placed first and always survive; ordinary labels are placed in
// order and dropped when they crowd an already placed one.
func PlaceLabels(labels []Label) []Label {
	var placed []Label

	fits := func(px float64) bool {
		for _, p := range placed {
			if math.Abs(p.Px-px) < 2*labelHalfWidthPx {
				return false
			}
		}
		return true
	}

	for _, l := range labels {
		if l.Selection {
			placed = append(placed, l)
		}
	}
	for _, l := range labels {
		if l.Selection {
			continue
		}
		if fits(l.Px) {
			placed = append(placed, l)
		}
	}
	return placed
}
