package scrim

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/lixenwraith/scrim/backend"
	"github.com/lixenwraith/scrim/backend/term"
	"github.com/lixenwraith/scrim/event"
	"github.com/lixenwraith/scrim/geom"
	"github.com/lixenwraith/scrim/theme"
)

// ScreenId identifies one screen compositor owned by the App
type ScreenId int

const debugViewName = "_scrim_debug_view"

// cbSinkSize bounds the async callback channel; a full sink blocks the
// sender until the controller drains it
const cbSinkSize = 128

// App is the root controller. It owns the backend, a list of screen
// compositors with one active at a time, the menubar and the global
// callback table, and it runs the event loop.
//
// All methods must be called from the goroutine running the loop; other
// goroutines reach the App only through CbSink.
type App struct {
	theme           theme.Theme
	screens         []*StackView
	globalCallbacks map[event.Event][]Callback
	menubar         *Menubar

	// Layer sizes from the last draw; a change forces a backend clear
	lastSizes []geom.Vec2

	autorefresh  bool
	activeScreen ScreenId
	running      bool

	backend backend.Backend

	cbSink    chan Callback
	stop      chan struct{}
	closeOnce sync.Once
}

// New creates a root controller over the given backend and starts the
// backend's input goroutine. The controller starts with one empty screen
// and the default theme.
func New(b backend.Backend) *App {
	a := &App{
		theme:           theme.Default(),
		screens:         []*StackView{NewStackView()},
		globalCallbacks: make(map[event.Event][]Callback),
		menubar:         NewMenubar(),
		running:         true,
		backend:         b,
		cbSink:          make(chan Callback, cbSinkSize),
		stop:            make(chan struct{}),
	}
	b.StartInput(a.stop)
	return a
}

// NewTerm creates a root controller over the real terminal
func NewTerm() (*App, error) {
	b, err := term.New()
	if err != nil {
		return nil, fmt.Errorf("open terminal backend: %w", err)
	}
	return New(b), nil
}

// CbSink returns the sender half of the async callback channel. Any
// goroutine may push callbacks into it; they run on the loop goroutine,
// in order of arrival, during the next step.
func (a *App) CbSink() chan<- Callback {
	return a.cbSink
}

// Menubar returns the menu bar, for populating it with menus
func (a *App) Menubar() *Menubar {
	return a.menubar
}

// SelectMenubar moves input focus to the menubar
func (a *App) SelectMenubar() {
	a.menubar.TakeFocus(DirNone)
}

// SetAutohideMenu controls the menubar autohide feature.
//
// When enabled (default), the bar is only visible while in use. When
// disabled, it is always visible and reserves the top row.
func (a *App) SetAutohideMenu(autohide bool) {
	a.menubar.SetAutohide(autohide)
}

// CurrentTheme returns the active theme
func (a *App) CurrentTheme() *theme.Theme {
	return &a.theme
}

// SetTheme replaces the active theme and clears the screen so stale
// colors never linger
func (a *App) SetTheme(th theme.Theme) {
	a.theme = th
	a.Clear()
}

// LoadThemeFile loads a YAML theme file and applies it. On error the
// current theme stays active.
func (a *App) LoadThemeFile(path string) error {
	th, err := theme.LoadFile(path)
	if err != nil {
		return err
	}
	a.SetTheme(th)
	return nil
}

// LoadThemeData parses YAML theme data and applies it. On error the
// current theme stays active.
func (a *App) LoadThemeData(data []byte) error {
	th, err := theme.Load(data)
	if err != nil {
		return err
	}
	a.SetTheme(th)
	return nil
}

// Clear fills the whole backend surface with the theme background.
// Callers rarely need this directly; resizes and theme changes trigger
// it on their own.
func (a *App) Clear() {
	a.backend.Clear(a.theme.Palette.Get(theme.RoleBackground))
}

// SetAutorefresh enables periodic redraws even without input
func (a *App) SetAutorefresh(autorefresh bool) {
	a.autorefresh = autorefresh
}

// Screen returns the currently active screen
func (a *App) Screen() *StackView {
	return a.screens[a.activeScreen]
}

// ActiveScreenId returns the id of the currently active screen
func (a *App) ActiveScreenId() ScreenId {
	return a.activeScreen
}

// AddScreen adds a new empty screen and returns its id
func (a *App) AddScreen() ScreenId {
	a.screens = append(a.screens, NewStackView())
	return ScreenId(len(a.screens) - 1)
}

// AddActiveScreen adds a new empty screen and makes it active
func (a *App) AddActiveScreen() ScreenId {
	id := a.AddScreen()
	a.SetScreen(id)
	return id
}

// SetScreen makes the given screen active. Panics on an unknown id.
func (a *App) SetScreen(id ScreenId) {
	if id < 0 || int(id) >= len(a.screens) {
		panic(fmt.Sprintf("set invalid screen id %d with only %d screens present", id, len(a.screens)))
	}
	a.activeScreen = id
}

// CallOn runs fn on every view of the active screen matched by sel
func (a *App) CallOn(sel Selector, fn func(View)) {
	a.Screen().CallOnAny(sel, fn)
}

// CallOnName runs fn on every view registered under the given name
func (a *App) CallOnName(name string, fn func(View)) {
	a.CallOn(ByName(name), fn)
}

// Focus moves input focus to the view matched by sel
func (a *App) Focus(sel Selector) error {
	return a.Screen().FocusView(sel)
}

// FocusName moves input focus to the view registered under the given
// name
func (a *App) FocusName(name string) error {
	return a.Focus(ByName(name))
}

// AddGlobalCallback registers cb to run when the given event is ignored
// by the whole view tree. Multiple callbacks for one event run in
// registration order.
func (a *App) AddGlobalCallback(ev event.Event, cb Callback) {
	a.globalCallbacks[ev] = append(a.globalCallbacks[ev], cb)
}

// ClearGlobalCallbacks removes every callback tied to the given event
func (a *App) ClearGlobalCallbacks(ev event.Event) {
	delete(a.globalCallbacks, ev)
}

// AddLayer pushes a centered floating layer on the active screen
func (a *App) AddLayer(v View) {
	a.Screen().AddLayer(v)
}

// AddFullscreenLayer pushes a layer covering the whole active screen
func (a *App) AddFullscreenLayer(v View) {
	a.Screen().AddFullscreenLayer(v)
}

// PopLayer removes the front layer from the active screen
func (a *App) PopLayer() View {
	return a.Screen().PopLayer()
}

// RepositionLayer moves a floating layer of the active screen to a new
// anchor
func (a *App) RepositionLayer(layer LayerPosition, position Position) {
	a.Screen().RepositionLayer(layer, position)
}

// ShowDebugConsole pushes a fullscreen layer rendering the process-wide
// log buffer
func (a *App) ShowDebugConsole() {
	a.AddFullscreenLayer(Named(debugViewName, NewDebugView()))
}

// ToggleDebugConsole shows the debug console, or removes it when already
// visible
func (a *App) ToggleDebugConsole() {
	if pos, ok := a.Screen().FindLayerFromName(debugViewName); ok {
		a.Screen().RemoveLayer(pos)
	} else {
		a.ShowDebugConsole()
	}
}

// onIgnoredEvent runs the global callbacks registered for an event no
// view consumed
func (a *App) onIgnoredEvent(ev event.Event) {
	registered := a.globalCallbacks[ev]
	if len(registered) == 0 {
		return
	}
	// Callbacks may mutate the table, so iterate over a copy
	list := make([]Callback, len(registered))
	copy(list, registered)
	for _, cb := range list {
		cb(a)
	}
}

// OnEvent dispatches one event:
//
//  1. Exit stops the loop.
//  2. A resize marks the active screen's background dirty.
//  3. A focus-grabbing press on row 0 selects the pinned menubar.
//  4. A menubar holding focus receives the event alone; otherwise the
//     active screen does, relativized past the menubar's reserved row.
//  5. Events the screen ignored go to the global callbacks.
func (a *App) OnEvent(ev event.Event) {
	if ev.Type == event.EventExit {
		a.Quit()
	}

	if ev.Type == event.EventResize {
		// A resize only exposes background; the full backend clear
		// happens in draw, and only when the recomputed layer sizes
		// actually differ from the previous frame
		a.Screen().bgDirty = true
	}

	if ev.GrabsFocus() && !a.menubar.Autohide() &&
		!a.menubar.HasSubmenu() && ev.Pos.Y == 0 {
		a.SelectMenubar()
	}

	if a.menubar.ReceiveEvents() {
		a.menubar.OnEvent(ev).Process(a)
		return
	}

	res := a.Screen().OnEvent(ev.Relativized(geom.New(0, a.menubarOffset())))
	if !res.IsConsumed() {
		a.onIgnoredEvent(ev)
		return
	}
	res.Process(a)
}

// menubarOffset returns the rows the menubar reserves above the screen
func (a *App) menubarOffset() int {
	if a.menubar.Autohide() {
		return 0
	}
	return 1
}

// ScreenSize returns the terminal size in cells
func (a *App) ScreenSize() geom.Vec2 {
	return a.backend.ScreenSize()
}

func (a *App) layout() {
	size := a.ScreenSize().SaturatingSub(geom.New(0, a.menubarOffset()))
	a.Screen().Layout(size)
}

func (a *App) draw() {
	sizes := a.Screen().LayerSizes()
	if !slices.Equal(a.lastSizes, sizes) {
		a.Clear()
		a.lastSizes = sizes
	}

	printer := NewPrinter(a.backend, &a.theme, a.ScreenSize())
	selected := a.menubar.ReceiveEvents()

	// The screen background goes down before the menubar so a pinned
	// bar is never painted over
	svPrinter := printer.Offset(geom.New(0, a.menubarOffset())).FocusedIf(!selected)
	a.Screen().DrawBg(svPrinter)

	if a.menubar.Visible() {
		a.menubar.Draw(printer.FocusedIf(selected))
	}

	a.Screen().DrawFg(svPrinter)
}

// IsRunning reports true until Quit is called
func (a *App) IsRunning() bool {
	return a.running
}

// Run draws once, then loops Step until Quit is called. After it returns
// it can be called again for a fresh loop.
func (a *App) Run() {
	a.running = true

	a.refresh()

	for a.running {
		a.Step()
	}
}

// Step performs a single pass of the event loop: drain pending input,
// drain pending async callbacks, then redraw if anything happened or
// autorefresh is on, else sleep briefly.
func (a *App) Step() {
	boring := true

	for {
		ev, ok := a.backend.PollEvent()
		if !ok {
			break
		}
		boring = false
		a.OnEvent(ev)

		if !a.running {
			return
		}
	}

drain:
	for {
		select {
		case cb := <-a.cbSink:
			boring = false
			cb(a)

			if !a.running {
				return
			}
		default:
			break drain
		}
	}

	if a.autorefresh || !boring {
		a.refresh()
	}

	if boring {
		time.Sleep(30 * time.Millisecond)
	}
}

// refresh rebuilds the frame from the current view tree state
func (a *App) refresh() {
	a.layout()
	a.draw()
	a.backend.Refresh()
}

// Quit stops the event loop
func (a *App) Quit() {
	a.running = false
}

// Close stops the backend input goroutine and releases the terminal.
// Safe to call more than once.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		close(a.stop)
		a.backend.Finish()
	})
}
