// Package lod selects the level of detail for sequence rendering.
//
// The policy is a pure function from the current zoom ratio to a font
// size and a display mode. Modes form a closed, ranked enum so "is this
// mode at least as detailed as that one" is an ordinary comparison.
package lod

// Mode is the rendering fidelity tier. Higher values carry more detail.
type Mode uint8

const (
	// ModeLine draws one neutral rectangle for the whole row.
	ModeLine Mode = iota
	// ModeBox draws a colored rectangle per column.
	ModeBox
	// ModeText draws a glyph per column.
	ModeText
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeText:
		return "text"
	case ModeBox:
		return "box"
	case ModeLine:
		return "line"
	default:
		return "line"
	}
}

// AtLeast returns true if m carries at least as much detail as other.
func (m Mode) AtLeast(other Mode) bool {
	return m >= other
}

// Coarser returns the less detailed of two modes.
func Coarser(a, b Mode) Mode {
	if b < a {
		return b
	}
	return a
}

// Font size tier boundaries, in zoom-scale units.
const (
	scaleSnap12 = 1.8
	scaleSnap10 = 1.2
	scaleSnap8  = 0.7
)

// Mode thresholds in font points. Inclusive on the upper tier: a font
// size of exactly 8.0 is Text, 5.0 is Box.
const (
	textThreshold = 8.0
	boxThreshold  = 5.0
)

// Decision is the numeric display state derived from one char width.
type Decision struct {
	FontSize   float64
	Mode       Mode
	BoxHeight  float64
	LineHeight float64
}

// Policy maps char width to font size and display mode.
type Policy struct {
	// BaseCharWidth is the char width at 1.0 zoom.
	BaseCharWidth float64
	// CharHeight is the fixed row height in pixels.
	CharHeight float64
	// BaseFontSize is the font size at 1.0 zoom.
	BaseFontSize float64
}

// NewPolicy creates a policy for the given base geometry.
// The base font size is 60% of the row height, matching the glyph cell.
func NewPolicy(baseCharWidth, charHeight float64) Policy {
	if baseCharWidth <= 0 {
		baseCharWidth = 12.0
	}
	if charHeight < 1 {
		charHeight = 1
	}
	return Policy{
		BaseCharWidth: baseCharWidth,
		CharHeight:    charHeight,
		BaseFontSize:  charHeight * 0.6,
	}
}

// FontSize returns the snapped font size for a char width.
// Sizes snap to 12/10/8pt at generous zoom and taper linearly below,
// never under 1pt.
func (p Policy) FontSize(charWidth float64) float64 {
	base := p.BaseCharWidth
	if base <= 0 {
		base = 12.0
	}
	if charWidth <= 0 {
		charWidth = 0.001
	}
	scale := charWidth / base

	switch {
	case scale >= scaleSnap12:
		return 12.0
	case scale >= scaleSnap10:
		return 10.0
	case scale >= scaleSnap8:
		return 8.0
	default:
		return max(1.0, p.BaseFontSize*scale)
	}
}

// ModeFor returns the natural display mode for a font size.
func (p Policy) ModeFor(fontSize float64) Mode {
	switch {
	case fontSize >= textThreshold:
		return ModeText
	case fontSize >= boxThreshold:
		return ModeBox
	default:
		return ModeLine
	}
}

// Evaluate computes the full display decision for a char width.
func (p Policy) Evaluate(charWidth float64) Decision {
	size := p.FontSize(charWidth)
	return Decision{
		FontSize:   size,
		Mode:       p.ModeFor(size),
		BoxHeight:  max(min(p.CharHeight*0.7, size), 1.0),
		LineHeight: p.CharHeight * 0.3,
	}
}

// EvaluateWithMax computes the display decision under an optional
// maximum-mode override. The override can only force a coarser mode;
// it never promotes past what the zoom level warrants.
func (p Policy) EvaluateWithMax(charWidth float64, maxMode Mode) Decision {
	d := p.Evaluate(charWidth)
	d.Mode = Coarser(d.Mode, maxMode)
	return d
}
