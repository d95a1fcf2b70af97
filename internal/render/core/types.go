// Package core provides shared types for the render subsystem.
// This package breaks import cycles between the canvas, the rulers,
// and the drawing surfaces.
package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color represents a 24-bit RGB color value.
type Color struct {
	R, G, B uint8
}

// Common colors.
var (
	ColorBlack   = Color{R: 0, G: 0, B: 0}
	ColorWhite   = Color{R: 255, G: 255, B: 255}
	ColorGray    = Color{R: 128, G: 128, B: 128}
	ColorNeutral = Color{R: 50, G: 50, B: 50}
)

// ColorFromRGB creates a color from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromHex creates a color from a hex string.
// Supports formats: "#RGB", "#RRGGBB", "RGB", "RRGGBB".
func ColorFromHex(hex string) (Color, error) {
	hex = strings.TrimPrefix(hex, "#")

	var r, g, b uint64
	var err error

	switch len(hex) {
	case 3:
		r, err = strconv.ParseUint(string(hex[0])+string(hex[0]), 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid hex color: %s", hex)
		}
		g, err = strconv.ParseUint(string(hex[1])+string(hex[1]), 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid hex color: %s", hex)
		}
		b, err = strconv.ParseUint(string(hex[2])+string(hex[2]), 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid hex color: %s", hex)
		}
	case 6:
		r, err = strconv.ParseUint(hex[0:2], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid hex color: %s", hex)
		}
		g, err = strconv.ParseUint(hex[2:4], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid hex color: %s", hex)
		}
		b, err = strconv.ParseUint(hex[4:6], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid hex color: %s", hex)
		}
	default:
		return Color{}, fmt.Errorf("invalid hex color length: %s", hex)
	}

	return Color{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
}

// Equals returns true if two colors are equal.
func (c Color) Equals(other Color) bool {
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// String returns the hex representation of the color.
func (c Color) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// colorful converts to a go-colorful color for perceptual math.
func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// fromColorful converts back from a go-colorful color, clamping to sRGB.
func fromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

// Blend blends two colors in Lab space.
// Amount 0.0 = c, 1.0 = other.
func (c Color) Blend(other Color, amount float64) Color {
	if amount <= 0 {
		return c
	}
	if amount >= 1 {
		return other
	}
	return fromColorful(c.colorful().BlendLab(other.colorful(), amount))
}

// Lighten returns a lighter version of the color.
// Amount should be 0.0 to 1.0.
func (c Color) Lighten(amount float64) Color {
	return c.Blend(ColorWhite, amount)
}

// Darken returns a darker version of the color.
// Amount should be 0.0 to 1.0.
func (c Color) Darken(amount float64) Color {
	return c.Blend(ColorBlack, amount)
}

// RectF represents an axis-aligned rectangle in pixel coordinates.
type RectF struct {
	X, Y float64 // Top-left corner
	W, H float64
}

// NewRectF creates a rectangle from position and size.
func NewRectF(x, y, w, h float64) RectF {
	return RectF{X: x, Y: y, W: w, H: h}
}

// Right returns the right edge (exclusive).
func (r RectF) Right() float64 {
	return r.X + r.W
}

// Bottom returns the bottom edge (exclusive).
func (r RectF) Bottom() float64 {
	return r.Y + r.H
}

// IsEmpty returns true if the rectangle has no area.
func (r RectF) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersects returns true if two rectangles overlap.
func (r RectF) Intersects(other RectF) bool {
	return r.X < other.Right() && r.Right() > other.X &&
		r.Y < other.Bottom() && r.Bottom() > other.Y
}

// Intersection returns the overlapping region of two rectangles.
func (r RectF) Intersection(other RectF) RectF {
	if !r.Intersects(other) {
		return RectF{}
	}
	x := max(r.X, other.X)
	y := max(r.Y, other.Y)
	return RectF{
		X: x,
		Y: y,
		W: min(r.Right(), other.Right()) - x,
		H: min(r.Bottom(), other.Bottom()) - y,
	}
}

// FontDesc identifies a font face for glyph rendering.
type FontDesc struct {
	Family string
	// Size is the point size. Sizes below Text-mode thresholds never
	// reach the glyph cache, so the space of sizes stays small.
	Size   int
	Bold   bool
	Italic bool
}

// ViewSnapshot is a read-only copy of canvas state taken once per repaint.
// Ruler views consume it to stay pixel-synchronized without mutating the
// canvas; this pull-based read replaces cross-widget signal wiring.
type ViewSnapshot struct {
	RowCount       int
	MaxLength      int
	CharWidth      float64
	ScrollPx       float64
	ViewWidthPx    float64
	ContentWidthPx float64

	// Selection column range (inclusive, 0-based). Valid when HasSelection.
	SelStart     int
	SelEnd       int
	HasSelection bool
}
