// Package glyph rasterizes sequence characters into reusable bitmaps.
//
// Text mode asks for the same few runes at the same size thousands of
// times per repaint, so every rendered glyph is cached by its full
// visual identity (rune, face variant, size, color) and handed out by
// pointer. Hitting the cache is the common case; rasterization happens
// once per distinct glyph.
package glyph

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/dshills/seqscope/internal/render/core"
)

type glyphKey struct {
	ch     rune
	family string
	size   int
	bold   bool
	italic bool
	fg     core.Color
}

type faceKey struct {
	size   int
	bold   bool
	italic bool
}

// Cache is a thread-safe glyph bitmap cache backed by the Go Mono
// font family.
type Cache struct {
	mu    sync.Mutex
	fonts map[[2]bool]*opentype.Font
	faces map[faceKey]font.Face
	bits  map[glyphKey]*core.Bitmap
}

// NewCache parses the embedded font variants and returns an empty cache.
func NewCache() (*Cache, error) {
	sources := map[[2]bool][]byte{
		{false, false}: gomono.TTF,
		{true, false}:  gomonobold.TTF,
		{false, true}:  gomonoitalic.TTF,
		{true, true}:   gomonobolditalic.TTF,
	}
	fonts := make(map[[2]bool]*opentype.Font, len(sources))
	for variant, ttf := range sources {
		f, err := opentype.Parse(ttf)
		if err != nil {
			return nil, fmt.Errorf("parse font variant bold=%v italic=%v: %w", variant[0], variant[1], err)
		}
		fonts[variant] = f
	}
	return &Cache{
		fonts: fonts,
		faces: make(map[faceKey]font.Face),
		bits:  make(map[glyphKey]*core.Bitmap),
	}, nil
}

// Len returns the number of cached bitmaps.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.bits)
}

// Clear drops all cached bitmaps, keeping the parsed fonts and faces.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bits = make(map[glyphKey]*core.Bitmap)
}

// Get returns the bitmap for a character in the given font and color.
// Repeated calls with identical arguments return the same pointer.
func (c *Cache) Get(ch rune, desc core.FontDesc, fg core.Color) (*core.Bitmap, error) {
	if desc.Size < 1 {
		desc.Size = 1
	}
	key := glyphKey{
		ch:     ch,
		family: desc.Family,
		size:   desc.Size,
		bold:   desc.Bold,
		italic: desc.Italic,
		fg:     fg,
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if b, ok := c.bits[key]; ok {
		return b, nil
	}
	b, err := c.rasterize(ch, desc, fg)
	if err != nil {
		return nil, err
	}
	c.bits[key] = b
	return b, nil
}

// face returns the cached face for a size and variant, creating it on
// first use. Caller holds the lock.
func (c *Cache) face(size int, bold, italic bool) (font.Face, error) {
	fk := faceKey{size: size, bold: bold, italic: italic}
	if f, ok := c.faces[fk]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(c.fonts[[2]bool{bold, italic}], &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create %dpt face: %w", size, err)
	}
	c.faces[fk] = f
	return f, nil
}

// rasterize draws one glyph into a fresh RGBA image. Caller holds the
// lock.
func (c *Cache) rasterize(ch rune, desc core.FontDesc, fg core.Color) (*core.Bitmap, error) {
	face, err := c.face(desc.Size, desc.Bold, desc.Italic)
	if err != nil {
		return nil, err
	}

	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	height := (metrics.Ascent + metrics.Descent).Ceil()
	advance, ok := face.GlyphAdvance(ch)
	if !ok {
		advance, _ = face.GlyphAdvance('?')
		ch = '?'
	}
	width := advance.Ceil()
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{R: fg.R, G: fg.G, B: fg.B, A: 255}),
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: fixed.I(ascent)},
	}
	d.DrawString(string(ch))

	return &core.Bitmap{
		Img:    img,
		Width:  width,
		Height: height,
		Char:   ch,
		Fg:     fg,
	}, nil
}
