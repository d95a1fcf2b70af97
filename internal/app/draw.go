package app

import (
	"github.com/dshills/seqscope/internal/render/core"
)

// Panel text colors.
var (
	headerFg = core.Color{R: 220, G: 220, B: 220}
	rulerFg  = core.Color{R: 170, G: 170, B: 170}
	tickFg   = core.Color{R: 110, G: 110, B: 110}
	selFg    = core.Color{R: 90, G: 170, B: 210}
	windowBg = core.Color{R: 60, G: 60, B: 70}
	dragBg   = core.Color{R: 50, G: 80, B: 110}
)

// draw repaints the whole screen: header IDs, position ruler, canvas
// rows, and the navigation ruler.
func (a *App) draw() {
	a.term.Clear()

	a.drawHeader()
	a.drawPositionRuler()
	a.drawCanvas()
	a.drawNavigationRuler()

	a.term.Show()
}

func (a *App) drawHeader() {
	a.surface.SetOrigin(0, 1)
	for i, id := range a.seqs.IDs() {
		if i+1 >= a.cellsH-1 {
			break
		}
		if len(id) > headerCells-1 {
			id = id[:headerCells-1]
		}
		a.surface.DrawLabel(0, i, id, headerFg)
	}
}

func (a *App) drawPositionRuler() {
	a.surface.SetOrigin(headerCells, 0)
	lay := a.pos.Layout(a.canvas.Snapshot())

	for _, tk := range lay.Ticks {
		if !tk.Major {
			continue
		}
		a.surface.DrawLabel(tk.Px, 0, "|", tickFg)
	}
	for _, l := range lay.Labels {
		fg := rulerFg
		if l.Selection {
			fg = selFg
		}
		a.surface.DrawLabel(l.Px, 0, l.Text, fg)
	}
}

func (a *App) drawCanvas() {
	a.surface.SetOrigin(headerCells, 1)
	if err := a.canvas.Render(a.surface); err != nil {
		a.log.Error("render: %v", err)
	}
}

func (a *App) drawNavigationRuler() {
	a.surface.SetOrigin(headerCells, a.cellsH-1)

	// Viewport window highlight under the ticks.
	win := a.nav.WindowRect(a.canvas.Snapshot())
	if win.W > 0 {
		win.H = cellHeightPx
		a.surface.FillRect(win, windowBg)
	}

	// Rubber band while dragging a zoom range.
	if left, right, ok := a.nav.DragSpan(); ok {
		a.surface.FillRect(core.RectF{X: left, Y: 0, W: right - left, H: cellHeightPx}, dragBg)
	}

	lay := a.nav.Layout()
	for _, tk := range lay.Ticks {
		if !tk.Major {
			continue
		}
		a.surface.DrawLabel(tk.Px, 0, "|", tickFg)
	}
	for _, l := range lay.Labels {
		a.surface.DrawLabel(l.Px, 0, l.Text, rulerFg)
	}
}
