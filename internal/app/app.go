package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/seqscope/internal/config"
	"github.com/dshills/seqscope/internal/event"
	"github.com/dshills/seqscope/internal/fasta"
	"github.com/dshills/seqscope/internal/render"
	"github.com/dshills/seqscope/internal/render/backend"
	"github.com/dshills/seqscope/internal/render/core"
	"github.com/dshills/seqscope/internal/render/glyph"
	"github.com/dshills/seqscope/internal/render/lod"
	"github.com/dshills/seqscope/internal/render/ruler"
	"github.com/dshills/seqscope/internal/render/selection"
	"github.com/dshills/seqscope/internal/render/zoom"
	"github.com/dshills/seqscope/internal/store"
)

// ErrQuit signals a clean user-requested shutdown.
var ErrQuit = errors.New("quit requested")

// Terminal cell geometry in logical pixels. At base zoom one sequence
// column occupies exactly one cell.
const (
	cellWidthPx  = 12.0
	cellHeightPx = 18.0
)

// headerCells is the width of the row-ID panel on the left.
const headerCells = 14

// frameInterval paces zoom animation redraws.
const frameInterval = 16 * time.Millisecond

// mouseRegion identifies which panel a pointer gesture started in.
type mouseRegion int

const (
	regionNone mouseRegion = iota
	regionCanvas
	regionNav
)

// App owns the interactive viewer: the terminal, the canvas, both
// rulers, and the event hub the panels communicate through.
type App struct {
	log    *Logger
	cfg    config.Config
	hub    *event.Hub
	seqs   *store.Store
	canvas *render.Canvas
	nav    *ruler.NavigationView
	pos    *ruler.PositionView

	term    *backend.Terminal
	surface *backend.TerminalSurface
	watcher *config.PaletteWatcher

	// paletteCh hands reloaded palettes from the watcher goroutine to
	// the event loop, which owns the canvas. Capacity one: a newer
	// palette supersedes one still waiting.
	paletteCh chan core.ColorMap

	cellsW int
	cellsH int

	dragRegion mouseRegion
}

// New builds the viewer from configuration and parsed sequence records.
// The terminal is not touched until Run.
func New(cfg config.Config, log *Logger, records []fasta.Record) (*App, error) {
	if len(records) == 0 {
		return nil, fasta.ErrNoSequences
	}

	seqs := store.New()
	for _, rec := range records {
		seqs.Add(rec.ID, rec.Sequence)
	}

	colors, err := config.LoadPalette(cfg.Palette.Path)
	if err != nil {
		return nil, fmt.Errorf("load palette: %w", err)
	}
	glyphs, err := glyph.NewCache()
	if err != nil {
		return nil, fmt.Errorf("glyph cache: %w", err)
	}

	canvas := render.NewCanvas(seqs, glyphs, render.Options{
		BaseCharWidth: cfg.View.BaseCharWidth,
		CharHeight:    cfg.View.CharHeight,
		Zoom: zoom.Config{
			BaseFactor:   cfg.Zoom.BaseFactor,
			AccelFactor:  cfg.Zoom.AccelFactor,
			MaxCharWidth: cfg.Zoom.MaxCharWidth,
			Duration:     time.Duration(cfg.Zoom.DurationMs) * time.Millisecond,
		},
		Colors: colors,
	})
	canvas.SetMaxMode(parseMode(cfg.View.MaxMode))

	hub := event.NewHub()
	canvas.OnSelectionChanged = func(r selection.Range, ok bool) {
		hub.Publish(event.Event{
			Topic: event.TopicSelection,
			Payload: event.SelectionPayload{
				RowStart: r.RowStart,
				RowEnd:   r.RowEnd,
				StartCol: r.StartCol,
				EndCol:   r.EndCol,
				Active:   ok,
			},
		})
	}

	a := &App{
		log:       log.WithComponent("app"),
		cfg:       cfg,
		hub:       hub,
		seqs:      seqs,
		canvas:    canvas,
		nav:       ruler.NewNavigationView(0),
		pos:       ruler.NewPositionView(),
		paletteCh: make(chan core.ColorMap, 1),
	}
	a.nav.SetContentLength(seqs.MaxLength())

	if cfg.Palette.Watch && cfg.Palette.Path != "" {
		w, err := config.WatchPalette(cfg.Palette.Path, a.onPaletteReload, func(err error) {
			a.log.Warn("palette watch: %v", err)
		})
		if err != nil {
			return nil, fmt.Errorf("watch palette: %w", err)
		}
		a.watcher = w
	}

	hub.Publish(event.Event{Topic: event.TopicSequences, Payload: seqs.RowCount()})
	log.Info("loaded %d sequences, longest %d", seqs.RowCount(), seqs.MaxLength())
	return a, nil
}

// Hub returns the app's event hub.
func (a *App) Hub() *event.Hub {
	return a.hub
}

// Canvas returns the sequence canvas.
func (a *App) Canvas() *render.Canvas {
	return a.canvas
}

// onPaletteReload runs on the watcher goroutine. The canvas is owned by
// the event loop, so the palette is only queued here; the loop applies
// it. The watcher is the sole sender, so draining then sending on the
// one-slot channel never blocks.
func (a *App) onPaletteReload(m core.ColorMap) {
	select {
	case <-a.paletteCh:
	default:
	}
	a.paletteCh <- m
}

// applyPalette installs a reloaded palette. Event-loop goroutine only.
func (a *App) applyPalette(m core.ColorMap) {
	a.canvas.SetColors(m)
	a.hub.Publish(event.Event{Topic: event.TopicPalette, Payload: m.Len()})
	a.log.Info("palette reloaded with %d entries", m.Len())
}

// parseMode maps a config mode name to its display mode ceiling.
func parseMode(s string) lod.Mode {
	switch s {
	case "line":
		return lod.ModeLine
	case "box":
		return lod.ModeBox
	default:
		return lod.ModeText
	}
}

// Run takes over the terminal and blocks until the user quits or an
// unrecoverable error occurs.
func (a *App) Run() error {
	term, err := backend.NewTerminal()
	if err != nil {
		return err
	}
	a.term = term
	a.surface = backend.NewTerminalSurface(term.Screen(), cellWidthPx, cellHeightPx)
	defer a.shutdown()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go term.Screen().ChannelEvents(events, quit)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	a.layout()
	a.draw()

	animating := false
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := a.handleEvent(ev); err != nil {
				close(quit)
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}
			animating = a.canvas.Advance() || animating
			a.draw()
		case m := <-a.paletteCh:
			a.applyPalette(m)
			a.draw()
		case <-ticker.C:
			if !animating {
				continue
			}
			animating = a.canvas.Advance()
			a.publishView()
			a.draw()
		}
	}
}

func (a *App) shutdown() {
	if a.watcher != nil {
		a.watcher.Close()
	}
	if a.term != nil {
		a.term.Fini()
	}
}

// layout recomputes panel geometry from the terminal size.
func (a *App) layout() {
	a.cellsW, a.cellsH = a.term.Size()
	contentCells := a.cellsW - headerCells
	if contentCells < 1 {
		contentCells = 1
	}
	widthPx := float64(contentCells) * cellWidthPx
	a.canvas.Resize(widthPx)
	a.nav.Resize(widthPx)
	a.nav.SetContentLength(a.seqs.MaxLength())
}

func (a *App) handleEvent(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.layout()
		return nil
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
		return nil
	default:
		return nil
	}
}

func (a *App) handleKey(ev *tcell.EventKey) error {
	switch ev.Key() {
	case tcell.KeyEscape:
		if _, ok := a.canvas.CurrentSelection(); ok {
			a.canvas.ClearSelection()
			return nil
		}
		return ErrQuit
	case tcell.KeyCtrlC:
		return ErrQuit
	case tcell.KeyLeft:
		a.canvas.Scroll(-4 * cellWidthPx)
		a.publishView()
		return nil
	case tcell.KeyRight:
		a.canvas.Scroll(4 * cellWidthPx)
		a.publishView()
		return nil
	case tcell.KeyHome:
		a.canvas.Scroll(-1e12)
		a.publishView()
		return nil
	case tcell.KeyEnd:
		a.canvas.Scroll(1e12)
		a.publishView()
		return nil
	}

	switch ev.Rune() {
	case 'q':
		return ErrQuit
	case '+', '=':
		a.canvas.Wheel(120, a.canvas.Viewport().VisibleWidth()/2, true)
	case '-':
		a.canvas.Wheel(-120, a.canvas.Viewport().VisibleWidth()/2, true)
	case 't':
		a.canvas.SetMaxMode(lod.ModeText)
	case 'b':
		a.canvas.SetMaxMode(lod.ModeBox)
	case 'l':
		a.canvas.SetMaxMode(lod.ModeLine)
	}
	return nil
}

// regionAt classifies a cell position: top row is the position ruler,
// bottom row the navigation ruler, the rest the canvas.
func (a *App) regionAt(cx, cy int) mouseRegion {
	if cx < headerCells {
		return regionNone
	}
	if cy == a.cellsH-1 {
		return regionNav
	}
	if cy >= 1 && cy < a.cellsH-1 {
		return regionCanvas
	}
	return regionNone
}

// panelPx converts a cell position to panel-local logical pixels.
func panelPx(cx, cy int, topRow int) (float64, float64) {
	return float64(cx-headerCells) * cellWidthPx, float64(cy-topRow) * cellHeightPx
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	cx, cy := ev.Position()
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		a.wheel(120, cx, ev.Modifiers())
	case buttons&tcell.WheelDown != 0:
		a.wheel(-120, cx, ev.Modifiers())
	case buttons&tcell.Button1 != 0:
		a.pointerDownOrDrag(cx, cy)
	case buttons == tcell.ButtonNone && a.dragRegion != regionNone:
		a.pointerUp(cx)
	}
}

func (a *App) wheel(deltaY float64, cx int, mods tcell.ModMask) {
	x, _ := panelPx(cx, 0, 0)
	if a.canvas.Wheel(deltaY, x, mods&tcell.ModCtrl != 0) {
		return
	}
	// Unmodified wheel scrolls horizontally.
	a.canvas.Scroll(-deltaY / 120.0 * 4 * cellWidthPx)
	a.publishView()
}

func (a *App) pointerDownOrDrag(cx, cy int) {
	if a.dragRegion == regionNone {
		a.dragRegion = a.regionAt(cx, cy)
		switch a.dragRegion {
		case regionNav:
			x, _ := panelPx(cx, cy, a.cellsH-1)
			a.nav.PointerDown(x)
		case regionCanvas:
			x, y := panelPx(cx, cy, 1)
			a.canvas.PointerDown(x, y)
		}
		return
	}

	switch a.dragRegion {
	case regionNav:
		x, _ := panelPx(cx, cy, a.cellsH-1)
		a.nav.PointerMove(x)
	case regionCanvas:
		x, y := panelPx(cx, cy, 1)
		a.canvas.PointerMove(x, y)
	}
}

func (a *App) pointerUp(cx int) {
	region := a.dragRegion
	a.dragRegion = regionNone

	switch region {
	case regionNav:
		x, _ := panelPx(cx, 0, 0)
		switch g := a.nav.PointerUp(x); g.Kind {
		case ruler.GestureCenter:
			a.canvas.CenterOnColumn(g.Column)
			a.publishView()
		case ruler.GestureRange:
			a.canvas.ZoomToRange(g.StartCol, g.EndCol)
			a.publishView()
		}
	case regionCanvas:
		a.canvas.PointerUp()
	}
}

func (a *App) publishView() {
	snap := a.canvas.Snapshot()
	first, last := a.canvas.Viewport().VisibleColumns(snap.MaxLength)
	a.hub.Publish(event.Event{
		Topic: event.TopicView,
		Payload: event.ViewPayload{
			CharWidth: snap.CharWidth,
			ScrollPx:  snap.ScrollPx,
			FirstCol:  first,
			LastCol:   last,
		},
	})
}
