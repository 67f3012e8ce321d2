// Package term implements the terminal backend on top of tcell. It owns
// the real screen: raw mode, color output, mouse reporting and the input
// goroutine all live here.
package term

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/lixenwraith/scrim/event"
	"github.com/lixenwraith/scrim/geom"
	"github.com/lixenwraith/scrim/theme"
)

// Backend drives a tcell screen. It satisfies backend.Backend.
type Backend struct {
	screen tcell.Screen
	events chan event.Event

	colors  theme.ColorPair
	effects theme.Effect
	style   tcell.Style

	// buttons is the last seen held-button mask, used to turn tcell's
	// stateless mouse reports into press, hold and release events. Only
	// the input goroutine touches it.
	buttons tcell.ButtonMask

	finish sync.Once
}

// New opens the default terminal screen
func New() (*Backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewForScreen(screen)
}

// NewForScreen initializes the given screen and wraps it. Tests pass a
// tcell simulation screen here.
func NewForScreen(screen tcell.Screen) (*Backend, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.Clear()

	return &Backend{
		screen: screen,
		events: make(chan event.Event, 256),
		style:  tcell.StyleDefault,
	}, nil
}

// StartInput launches the input goroutine. It blocks on the screen's
// event stream and exits when the stream ends after Finish, or when stop
// closes while the controller is no longer draining.
func (b *Backend) StartInput(stop <-chan struct{}) {
	go func() {
		for {
			tev := b.screen.PollEvent()
			if tev == nil {
				return
			}
			ev, ok := b.decode(tev)
			if !ok {
				continue
			}
			select {
			case b.events <- ev:
			case <-stop:
				return
			}
		}
	}()
}

// PollEvent returns a pending event without blocking
func (b *Backend) PollEvent() (event.Event, bool) {
	select {
	case ev := <-b.events:
		return ev, true
	default:
		return event.Event{}, false
	}
}

func (b *Backend) decode(tev tcell.Event) (event.Event, bool) {
	switch tev := tev.(type) {
	case *tcell.EventResize:
		return event.Resize(), true
	case *tcell.EventKey:
		return decodeKey(tev)
	case *tcell.EventMouse:
		return b.decodeMouse(tev)
	}
	return event.Event{}, false
}

func decodeMod(m tcell.ModMask) event.Modifier {
	var mod event.Modifier
	if m&tcell.ModShift != 0 {
		mod |= event.ModShift
	}
	if m&tcell.ModAlt != 0 {
		mod |= event.ModAlt
	}
	if m&tcell.ModCtrl != 0 {
		mod |= event.ModCtrl
	}
	return mod
}

func decodeKey(tev *tcell.EventKey) (event.Event, bool) {
	mod := decodeMod(tev.Modifiers())

	switch key := tev.Key(); key {
	case tcell.KeyRune:
		return event.Event{Type: event.EventKey, Key: event.KeyRune, Rune: tev.Rune(), Mod: mod}, true
	case tcell.KeyCtrlC:
		return event.Exit(), true
	case tcell.KeyEnter:
		return event.Event{Type: event.EventKey, Key: event.KeyEnter, Mod: mod}, true
	case tcell.KeyTab:
		return event.Event{Type: event.EventKey, Key: event.KeyTab, Mod: mod}, true
	case tcell.KeyBacktab:
		return event.Event{Type: event.EventKey, Key: event.KeyBacktab, Mod: mod}, true
	case tcell.KeyEscape:
		return event.Event{Type: event.EventKey, Key: event.KeyEscape, Mod: mod}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return event.Event{Type: event.EventKey, Key: event.KeyBackspace, Mod: mod}, true
	case tcell.KeyDelete:
		return event.Event{Type: event.EventKey, Key: event.KeyDelete, Mod: mod}, true
	case tcell.KeyInsert:
		return event.Event{Type: event.EventKey, Key: event.KeyInsert, Mod: mod}, true
	case tcell.KeyUp:
		return event.Event{Type: event.EventKey, Key: event.KeyUp, Mod: mod}, true
	case tcell.KeyDown:
		return event.Event{Type: event.EventKey, Key: event.KeyDown, Mod: mod}, true
	case tcell.KeyLeft:
		return event.Event{Type: event.EventKey, Key: event.KeyLeft, Mod: mod}, true
	case tcell.KeyRight:
		return event.Event{Type: event.EventKey, Key: event.KeyRight, Mod: mod}, true
	case tcell.KeyHome:
		return event.Event{Type: event.EventKey, Key: event.KeyHome, Mod: mod}, true
	case tcell.KeyEnd:
		return event.Event{Type: event.EventKey, Key: event.KeyEnd, Mod: mod}, true
	case tcell.KeyPgUp:
		return event.Event{Type: event.EventKey, Key: event.KeyPageUp, Mod: mod}, true
	case tcell.KeyPgDn:
		return event.Event{Type: event.EventKey, Key: event.KeyPageDown, Mod: mod}, true
	default:
		if key >= tcell.KeyF1 && key <= tcell.KeyF12 {
			return event.Event{
				Type: event.EventKey,
				Key:  event.KeyF1 + event.Key(key-tcell.KeyF1),
				Mod:  mod,
			}, true
		}
		if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
			return event.Event{
				Type: event.EventKey,
				Key:  event.KeyRune,
				Rune: rune('a' + key - tcell.KeyCtrlA),
				Mod:  mod | event.ModCtrl,
			}, true
		}
	}
	return event.Event{}, false
}

func (b *Backend) decodeMouse(tev *tcell.EventMouse) (event.Event, bool) {
	x, y := tev.Position()
	pos := geom.New(x, y)
	btns := tev.Buttons()

	if btns&tcell.WheelUp != 0 {
		return event.MousePress(pos, event.MouseBtnWheelUp), true
	}
	if btns&tcell.WheelDown != 0 {
		return event.MousePress(pos, event.MouseBtnWheelDown), true
	}

	held := btns & (tcell.Button1 | tcell.Button2 | tcell.Button3)
	prev := b.buttons
	b.buttons = held

	for _, m := range [...]struct {
		mask tcell.ButtonMask
		btn  event.MouseButton
	}{
		{tcell.Button1, event.MouseBtnLeft},
		{tcell.Button2, event.MouseBtnRight},
		{tcell.Button3, event.MouseBtnMiddle},
	} {
		switch {
		case held&m.mask != 0 && prev&m.mask == 0:
			return event.MousePress(pos, m.btn), true
		case held&m.mask == 0 && prev&m.mask != 0:
			return event.MouseRelease(pos, m.btn), true
		case held&m.mask != 0:
			return event.Event{
				Type:   event.EventMouse,
				Pos:    pos,
				Btn:    m.btn,
				Action: event.MouseActionHold,
			}, true
		}
	}
	return event.Event{}, false
}

// ScreenSize returns the current terminal size
func (b *Backend) ScreenSize() geom.Vec2 {
	w, h := b.screen.Size()
	return geom.New(w, h)
}

// HasColors reports whether the terminal supports colors
func (b *Backend) HasColors() bool {
	return b.screen.Colors() > 0
}

// SetColor changes the drawing colors and returns the previous pair
func (b *Backend) SetColor(p theme.ColorPair) theme.ColorPair {
	prev := b.colors
	b.colors = p
	b.rebuildStyle()
	return prev
}

// SetEffect enables a text effect for subsequent prints
func (b *Backend) SetEffect(e theme.Effect) {
	b.effects |= e
	b.rebuildStyle()
}

// UnsetEffect disables a text effect
func (b *Backend) UnsetEffect(e theme.Effect) {
	b.effects &^= e
	b.rebuildStyle()
}

func (b *Backend) rebuildStyle() {
	style := tcell.StyleDefault.
		Foreground(toTcell(b.colors.Front)).
		Background(toTcell(b.colors.Back))
	if b.effects.Has(theme.EffectReverse) {
		style = style.Reverse(true)
	}
	if b.effects.Has(theme.EffectBold) {
		style = style.Bold(true)
	}
	if b.effects.Has(theme.EffectItalic) {
		style = style.Italic(true)
	}
	if b.effects.Has(theme.EffectUnderline) {
		style = style.Underline(true)
	}
	b.style = style
}

func toTcell(c theme.Color) tcell.Color {
	switch c.Mode {
	case theme.ColorModeDark:
		return tcell.PaletteColor(int(c.Base))
	case theme.ColorModeLight:
		return tcell.PaletteColor(int(c.Base) + 8)
	case theme.ColorModeRGB:
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
	return tcell.ColorDefault
}

// PrintAt draws text, advancing by display width so wide glyphs land on
// the right cells
func (b *Backend) PrintAt(pos geom.Vec2, text string) {
	x := pos.X
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		runes := g.Runes()
		w := runewidth.StringWidth(g.Str())
		if w == 0 {
			continue
		}
		b.screen.SetContent(x, pos.Y, runes[0], runes[1:], b.style)
		x += w
	}
}

// Clear fills the screen with the given color
func (b *Backend) Clear(c theme.Color) {
	tc := toTcell(c)
	b.screen.Fill(' ', tcell.StyleDefault.Foreground(tc).Background(tc))
}

// Refresh pushes buffered drawing to the terminal
func (b *Backend) Refresh() {
	b.screen.Show()
}

// Finish restores the terminal. Safe to call more than once; the first
// call also ends the input goroutine by closing the event stream.
func (b *Backend) Finish() {
	b.finish.Do(func() {
		b.screen.Fini()
	})
}
