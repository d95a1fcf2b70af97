// Package backend provides the surfaces the canvas renders onto: an
// in-memory image, a tcell terminal, and a recording null surface for
// tests.
package backend

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/dshills/seqscope/internal/render/core"
)

// FillOp records one FillRect call on a NullSurface.
type FillOp struct {
	Rect  core.RectF
	Color core.Color
}

// BlitOp records one Blit call on a NullSurface.
type BlitOp struct {
	X, Y   float64
	Bitmap *core.Bitmap
}

// NullSurface records draw operations without rasterizing anything.
// Tests assert on the recorded stream.
type NullSurface struct {
	Fills []FillOp
	Blits []BlitOp
}

// NewNullSurface creates an empty recording surface.
func NewNullSurface() *NullSurface {
	return &NullSurface{}
}

// FillRect records the fill.
func (s *NullSurface) FillRect(r core.RectF, c core.Color) {
	s.Fills = append(s.Fills, FillOp{Rect: r, Color: c})
}

// Blit records the blit.
func (s *NullSurface) Blit(x, y float64, bm *core.Bitmap) {
	s.Blits = append(s.Blits, BlitOp{X: x, Y: y, Bitmap: bm})
}

// Reset drops the recorded operations.
func (s *NullSurface) Reset() {
	s.Fills = s.Fills[:0]
	s.Blits = s.Blits[:0]
}

// ImageSurface rasterizes draw operations into an RGBA image, used for
// offscreen export.
type ImageSurface struct {
	Img *image.RGBA
}

// NewImageSurface creates a surface of the given pixel size filled with
// the background color.
func NewImageSurface(width, height int, bg core.Color) *ImageSurface {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(toRGBA(bg)), image.Point{}, draw.Src)
	return &ImageSurface{Img: img}
}

// FillRect fills the rectangle, clipped to the image bounds.
func (s *ImageSurface) FillRect(r core.RectF, c core.Color) {
	rect := image.Rect(int(r.X), int(r.Y), int(r.Right()+0.5), int(r.Bottom()+0.5))
	rect = rect.Intersect(s.Img.Bounds())
	if rect.Empty() {
		return
	}
	draw.Draw(s.Img, rect, image.NewUniform(toRGBA(c)), image.Point{}, draw.Src)
}

// Blit alpha-composites a glyph bitmap at the given position.
func (s *ImageSurface) Blit(x, y float64, bm *core.Bitmap) {
	if bm == nil || bm.Img == nil {
		return
	}
	dst := image.Rect(int(x), int(y), int(x)+bm.Width, int(y)+bm.Height)
	draw.Draw(s.Img, dst, bm.Img, image.Point{}, draw.Over)
}

func toRGBA(c core.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}
