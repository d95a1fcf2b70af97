package backend

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/seqscope/internal/render/core"
)

// Terminal owns the tcell screen lifecycle.
type Terminal struct {
	screen tcell.Screen
}

// NewTerminal initializes a tcell screen with mouse reporting enabled.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	screen.Clear()
	return &Terminal{screen: screen}, nil
}

// Screen returns the underlying tcell screen.
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}

// Size returns the terminal size in cells.
func (t *Terminal) Size() (int, int) {
	return t.screen.Size()
}

// Show flushes pending drawing to the terminal.
func (t *Terminal) Show() {
	t.screen.Show()
}

// Clear erases the screen buffer.
func (t *Terminal) Clear() {
	t.screen.Clear()
}

// PollEvent blocks for the next input or resize event.
func (t *Terminal) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

// PostEvent injects an event into the queue, used to wake the loop.
func (t *Terminal) PostEvent(ev tcell.Event) error {
	return t.screen.PostEvent(ev)
}

// Fini restores the terminal. Safe to call once at shutdown.
func (t *Terminal) Fini() {
	t.screen.Fini()
}

// TerminalSurface adapts the pixel-space drawing interface onto a cell
// grid. The canvas keeps all of its math in logical pixels; this
// surface quantizes to cells at the last step using a fixed pixels-per
// -cell scale.
type TerminalSurface struct {
	screen  tcell.Screen
	cellW   float64
	cellH   float64
	originX int
	originY int
}

// NewTerminalSurface creates a surface drawing onto the screen with the
// given logical pixels per cell.
func NewTerminalSurface(screen tcell.Screen, cellW, cellH float64) *TerminalSurface {
	if cellW <= 0 {
		cellW = 1
	}
	if cellH <= 0 {
		cellH = 1
	}
	return &TerminalSurface{screen: screen, cellW: cellW, cellH: cellH}
}

// SetOrigin offsets all drawing by a cell position, so panels can share
// one screen.
func (s *TerminalSurface) SetOrigin(x, y int) {
	s.originX = x
	s.originY = y
}

// FillRect paints the covered cells with the color as background.
func (s *TerminalSurface) FillRect(r core.RectF, c core.Color) {
	if r.IsEmpty() {
		return
	}
	x0 := int(r.X / s.cellW)
	x1 := int((r.Right() - 0.001) / s.cellW)
	y0 := int(r.Y / s.cellH)
	y1 := int((r.Bottom() - 0.001) / s.cellH)

	style := tcell.StyleDefault.Background(toTcell(c))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if x < 0 || y < 0 {
				continue
			}
			s.screen.SetContent(s.originX+x, s.originY+y, ' ', nil, style)
		}
	}
}

// Blit draws the bitmap's source rune at the covered cell in the
// bitmap's foreground color. Glyph pixels collapse to one cell.
func (s *TerminalSurface) Blit(x, y float64, bm *core.Bitmap) {
	if bm == nil {
		return
	}
	cx := int(x / s.cellW)
	cy := int(y / s.cellH)
	if cx < 0 || cy < 0 {
		return
	}
	style := tcell.StyleDefault.Foreground(toTcell(bm.Fg))
	s.screen.SetContent(s.originX+cx, s.originY+cy, bm.Char, nil, style)
}

// DrawLabel writes text starting at a pixel x on a cell row, advancing
// by display width so wide runes stay aligned.
func (s *TerminalSurface) DrawLabel(x float64, row int, text string, fg core.Color) {
	cx := int(x / s.cellW)
	style := tcell.StyleDefault.Foreground(toTcell(fg))
	for _, r := range text {
		if cx >= 0 {
			s.screen.SetContent(s.originX+cx, s.originY+row, r, nil, style)
		}
		cx += runewidth.RuneWidth(r)
	}
}

// CellAt converts a cell coordinate back to the logical pixel at its
// top-left corner, for routing mouse events into pixel space.
func (s *TerminalSurface) CellAt(cellX, cellY int) (float64, float64) {
	return float64(cellX-s.originX) * s.cellW, float64(cellY-s.originY) * s.cellH
}

func toTcell(c core.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
