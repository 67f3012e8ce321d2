// Package capture implements a backend that performs no terminal I/O.
// Drawing accumulates into in-memory frames and input is scripted by the
// test, which makes whole-application runs deterministic and observable.
package capture

import (
	"sync"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/lixenwraith/scrim/event"
	"github.com/lixenwraith/scrim/geom"
	"github.com/lixenwraith/scrim/theme"
)

// DefaultSize is the frame size used when New is given a zero size
var DefaultSize = geom.New(120, 80)

// DefaultObservedStyle is the brush active before any SetColor call
var DefaultObservedStyle = ObservedStyle{
	Colors: theme.ColorPair{
		Front: theme.Dark(theme.White),
		Back:  theme.Dark(theme.Black),
	},
}

// Backend records drawing into ObservedScreen frames and replays scripted
// events. It satisfies backend.Backend.
type Backend struct {
	size    geom.Vec2
	current *ObservedScreen
	last    *ObservedScreen
	style   *ObservedStyle

	mu          sync.Mutex
	queue       []event.Event
	exitOnEmpty bool
}

// New creates a capture backend with the given frame size. A zero size
// selects DefaultSize.
func New(size geom.Vec2) *Backend {
	if size == geom.Zero {
		size = DefaultSize
	}
	style := DefaultObservedStyle
	return &Backend{
		size:        size,
		current:     NewObservedScreen(size),
		style:       &style,
		exitOnEmpty: true,
	}
}

// InjectEvent queues an event for PollEvent. Safe from any goroutine.
func (b *Backend) InjectEvent(ev event.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queue = append(b.queue, ev)
}

// SetExitOnEmpty controls what PollEvent does once the script runs dry.
// When true, the default, it synthesizes Exit so a stepping controller
// terminates instead of idling. Single-step tests turn it off to let a
// step finish its redraw with the queue drained.
func (b *Backend) SetExitOnEmpty(on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.exitOnEmpty = on
}

// PollEvent returns the next scripted event without blocking
func (b *Backend) PollEvent() (event.Event, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.queue) == 0 {
		if b.exitOnEmpty {
			return event.Exit(), true
		}
		return event.Event{}, false
	}
	ev := b.queue[0]
	b.queue = b.queue[1:]
	return ev, true
}

// StartInput is a no-op, scripted input needs no reader goroutine
func (b *Backend) StartInput(stop <-chan struct{}) {}

// ScreenSize returns the fixed frame size
func (b *Backend) ScreenSize() geom.Vec2 {
	return b.size
}

// HasColors reports color support, always true for captured frames
func (b *Backend) HasColors() bool {
	return true
}

// SetColor changes the brush colors and returns the previous pair. The
// brush is copied on change so cells printed earlier keep their style.
func (b *Backend) SetColor(p theme.ColorPair) theme.ColorPair {
	prev := b.style.Colors
	if p != prev {
		b.style = &ObservedStyle{Colors: p, Effects: b.style.Effects}
	}
	return prev
}

// SetEffect adds an effect to the brush
func (b *Backend) SetEffect(e theme.Effect) {
	if b.style.Effects.Has(e) {
		return
	}
	b.style = &ObservedStyle{Colors: b.style.Colors, Effects: b.style.Effects | e}
}

// UnsetEffect removes an effect from the brush
func (b *Backend) UnsetEffect(e theme.Effect) {
	if !b.style.Effects.Has(e) {
		return
	}
	b.style = &ObservedStyle{Colors: b.style.Colors, Effects: b.style.Effects &^ e}
}

// PrintAt records text into the current frame. Wide glyphs occupy one
// begin cell plus continuation cells for their extra columns. Printing
// outside the frame is a programming error and panics.
func (b *Backend) PrintAt(pos geom.Vec2, text string) {
	x := pos.X
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		glyph := g.Str()
		w := runewidth.StringWidth(glyph)
		if w == 0 {
			continue
		}
		b.current.setAt(geom.New(x, pos.Y), &ObservedCell{
			Pos:   geom.New(x, pos.Y),
			Style: b.style,
			Glyph: glyph,
		})
		for i := 1; i < w; i++ {
			b.current.setAt(geom.New(x+i, pos.Y), &ObservedCell{
				Pos:          geom.New(x+i, pos.Y),
				Style:        b.style,
				Continuation: true,
			})
		}
		x += w
	}
}

// Clear fills the current frame with glyph-free cells in the given color
func (b *Backend) Clear(c theme.Color) {
	style := &ObservedStyle{Colors: theme.ColorPair{Front: c, Back: c}}
	b.current.Clear(style)
}

// Refresh snapshots the current frame as the last completed one
func (b *Backend) Refresh() {
	b.last = b.current.Clone()
}

// LastFrame returns the frame recorded by the most recent Refresh, nil
// before the first one
func (b *Backend) LastFrame() *ObservedScreen {
	return b.last
}

// CurrentFrame returns the live frame drawing goes into
func (b *Backend) CurrentFrame() *ObservedScreen {
	return b.current
}

// Finish is a no-op, there is no terminal to restore
func (b *Backend) Finish() {}
