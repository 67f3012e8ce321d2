package scrim

import (
	"testing"

	"github.com/lixenwraith/scrim/backend/capture"
	"github.com/lixenwraith/scrim/event"
	"github.com/lixenwraith/scrim/geom"
)

// newCaptureApp builds a controller over a capture backend with the
// exit-on-empty escape hatch disabled, so a Step with a drained script
// finishes its redraw instead of quitting.
func newCaptureApp(size geom.Vec2) (*App, *capture.Backend) {
	b := capture.New(size)
	b.SetExitOnEmpty(false)
	return New(b), b
}

func TestMenuTreeBuilders(t *testing.T) {
	tree := NewMenuTree().
		Leaf("new", nil).
		Delimiter().
		Subtree("recent", NewMenuTree().Leaf("one", nil))

	if got := tree.Len(); got != 3 {
		t.Fatalf("Expected the tree to hold 3 items, got %d", got)
	}
	if !tree.children[0].IsLeaf() || tree.children[0].Label() != "new" {
		t.Error("Expected the first item to be the leaf \"new\"")
	}
	if !tree.children[1].IsDelimiter() {
		t.Error("Expected the second item to be a delimiter")
	}
	if !tree.children[2].IsSubtree() || tree.children[2].Label() != "recent" {
		t.Error("Expected the third item to be the subtree \"recent\"")
	}

	tree.Clear()
	if !tree.IsEmpty() {
		t.Errorf("Expected a cleared tree to be empty, got %d items", tree.Len())
	}
}

func TestMenuPopupNavigationSkipsDelimiters(t *testing.T) {
	popup := NewMenuPopup(NewMenuTree().
		Leaf("a", nil).
		Delimiter().
		Leaf("b", nil))

	steps := []struct {
		name string
		key  event.Key
		want int
	}{
		{"down skips the delimiter", event.KeyDown, 2},
		{"down wraps to the top", event.KeyDown, 0},
		{"up wraps to the bottom", event.KeyUp, 2},
		{"up skips the delimiter", event.KeyUp, 0},
		{"page down stops at the end", event.KeyPageDown, 2},
		{"page up stops at the start", event.KeyPageUp, 0},
		{"end jumps to the last item", event.KeyEnd, 2},
		{"home jumps to the first item", event.KeyHome, 0},
	}
	for _, step := range steps {
		popup.OnEvent(event.FromKey(step.key))
		if popup.focus != step.want {
			t.Errorf("Expected focus %d when %s, got %d", step.want, step.name, popup.focus)
		}
	}
}

func TestMenuPopupAllDelimiterMenu(t *testing.T) {
	popup := NewMenuPopup(NewMenuTree().Delimiter().Delimiter())

	popup.OnEvent(event.FromKey(event.KeyDown))
	popup.OnEvent(event.FromKey(event.KeyUp))
	if popup.focus != 0 {
		t.Errorf("Expected focus to stay at 0 with nothing selectable, got %d", popup.focus)
	}
	if res := popup.OnEvent(event.FromKey(event.KeyEnter)); res.IsConsumed() {
		t.Error("Expected Enter on a delimiter to be ignored")
	}
}

func TestMenuPopupSubmitOrder(t *testing.T) {
	a, _ := newCaptureApp(geom.Zero)
	var order []string
	tree := NewMenuTree().Leaf("act", func(*App) {
		order = append(order, "leaf")
	})
	popup := NewMenuPopup(tree).OnAction(func(app *App) {
		if got := app.Screen().Len(); got != 0 {
			t.Errorf("Expected the popup popped before callbacks, %d layers remain", got)
		}
		order = append(order, "action")
	})
	a.AddLayer(popup)

	res := popup.OnEvent(event.FromKey(event.KeyEnter))
	if !res.IsConsumed() {
		t.Fatal("Expected Enter on a leaf to be consumed")
	}
	res.Process(a)

	if len(order) != 2 || order[0] != "action" || order[1] != "leaf" {
		t.Errorf("Expected callbacks in order [action leaf], got %v", order)
	}
}

func TestMenuPopupDismissOrder(t *testing.T) {
	a, _ := newCaptureApp(geom.Zero)
	dismissed := false
	popup := NewMenuPopup(NewMenuTree().Leaf("x", nil)).OnDismiss(func(app *App) {
		if app.Screen().Len() != 1 {
			t.Error("Expected the dismiss callback to run before the pop")
		}
		dismissed = true
	})
	a.AddLayer(popup)

	popup.OnEvent(event.FromKey(event.KeyEscape)).Process(a)

	if !dismissed {
		t.Error("Expected the dismiss callback to run")
	}
	if got := a.Screen().Len(); got != 0 {
		t.Errorf("Expected the popup to be popped, %d layers remain", got)
	}
}

func TestMenuPopupMouseFocusAndSubmit(t *testing.T) {
	a, _ := newCaptureApp(geom.Zero)
	activated := false
	tree := NewMenuTree().
		Leaf("a", nil).
		Delimiter().
		Leaf("b", func(*App) { activated = true })
	popup := NewMenuPopup(tree)
	a.AddLayer(popup)
	popup.Layout(geom.New(10, 5))

	popup.OnEvent(event.MousePress(geom.New(2, 3), event.MouseBtnLeft))
	if popup.focus != 2 {
		t.Errorf("Expected the press to focus row 2, got %d", popup.focus)
	}

	popup.OnEvent(event.MousePress(geom.New(2, 2), event.MouseBtnLeft))
	if popup.focus != 2 {
		t.Errorf("Expected a press on the delimiter to keep focus 2, got %d", popup.focus)
	}

	res := popup.OnEvent(event.MouseRelease(geom.New(2, 3), event.MouseBtnLeft))
	if !res.IsConsumed() {
		t.Fatal("Expected the release on the focused row to submit")
	}
	res.Process(a)
	if !activated {
		t.Error("Expected the leaf callback to run")
	}
	if got := a.Screen().Len(); got != 0 {
		t.Errorf("Expected the popup to be popped, %d layers remain", got)
	}
}

func TestMenuPopupDismissOnOutsidePress(t *testing.T) {
	cases := []struct {
		name string
		pos  geom.Vec2
	}{
		{"far outside", geom.New(30, 8)},
		{"top-left corner", geom.New(0, 0)},
		{"bottom-right corner", geom.New(9, 4)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a, _ := newCaptureApp(geom.Zero)
			dismissed := false
			popup := NewMenuPopup(NewMenuTree().Leaf("x", nil)).
				OnDismiss(func(*App) { dismissed = true })
			a.AddLayer(popup)
			popup.Layout(geom.New(10, 5))

			res := popup.OnEvent(event.MousePress(tc.pos, event.MouseBtnLeft))
			if !res.IsConsumed() {
				t.Fatal("Expected an outside press to be consumed")
			}
			res.Process(a)
			if !dismissed {
				t.Error("Expected the dismiss callback to run")
			}
			if got := a.Screen().Len(); got != 0 {
				t.Errorf("Expected the popup to be popped, %d layers remain", got)
			}
		})
	}
}

// newSubmenuApp pushes a popup holding one subtree onto a 40x12 screen at
// an absolute anchor, ready for the subtree to be opened.
func newSubmenuApp() (*App, *capture.Backend) {
	a, b := newCaptureApp(geom.New(40, 12))
	menu := NewMenuTree().
		Subtree("outer", NewMenuTree().Leaf("inner", nil))
	a.Screen().AddLayerAt(PositionAbsolute(geom.New(3, 2)), NewMenuPopup(menu))
	return a, b
}

func TestSubmenuOpensChainedToParent(t *testing.T) {
	a, b := newSubmenuApp()

	b.InjectEvent(event.FromKey(event.KeyRight))
	a.Step()

	if got := a.Screen().Len(); got != 2 {
		t.Fatalf("Expected the subtree to open a second layer, got %d", got)
	}
	// The parent sits at (3,2) and is 12 columns wide plus a column of
	// shadow; the child anchors just past its right edge, level with the
	// focused row.
	if got := a.Screen().Offset(); got != geom.New(15, 2) {
		t.Errorf("Expected the child popup at (15,2), got %v", got)
	}

	hits := b.LastFrame().FindOccurrences("inner")
	if len(hits) != 1 {
		t.Fatalf("Expected the subtree item drawn once, got %d hits", len(hits))
	}
	if got := hits[0].Min(); got != geom.New(17, 3) {
		t.Errorf("Expected the subtree item at (17,3), got %v", got)
	}
}

func TestSubmenuLeftReturnsToParent(t *testing.T) {
	a, b := newSubmenuApp()

	b.InjectEvent(event.FromKey(event.KeyRight))
	b.InjectEvent(event.FromKey(event.KeyLeft))
	a.Step()

	if got := a.Screen().Len(); got != 1 {
		t.Fatalf("Expected Left to close the child popup, got %d layers", got)
	}
	if got := a.Screen().Offset(); got != geom.New(3, 2) {
		t.Errorf("Expected the parent popup back at (3,2), got %v", got)
	}
}

func TestMenubarOpensMenuUnderTitle(t *testing.T) {
	a, b := newCaptureApp(geom.New(40, 10))
	a.Menubar().
		AddSubtree("File", NewMenuTree().Leaf("New", nil)).
		AddSubtree("Edit", NewMenuTree().Leaf("Undo", nil))
	a.SelectMenubar()

	b.InjectEvent(event.FromKey(event.KeyRight))
	b.InjectEvent(event.FromKey(event.KeyEnter))
	a.Step()

	if !a.Menubar().HasSubmenu() {
		t.Fatal("Expected Enter to open the selected menu")
	}
	if got := a.Screen().Len(); got != 1 {
		t.Fatalf("Expected one popup layer, got %d", got)
	}
	// " File " is 6 columns wide, so the Edit menu opens at column 6, one
	// row below the autohidden bar
	if got := a.Screen().Offset(); got != geom.New(6, 1) {
		t.Errorf("Expected the popup at (6,1), got %v", got)
	}

	b.InjectEvent(event.FromKey(event.KeyEscape))
	a.Step()

	if got := a.Screen().Len(); got != 0 {
		t.Errorf("Expected Escape to close the popup, got %d layers", got)
	}
	if !a.Menubar().ReceiveEvents() {
		t.Error("Expected the bar to regain focus after the dismissal")
	}
}

func TestMenubarRightMovesToNextMenu(t *testing.T) {
	a, b := newCaptureApp(geom.New(40, 10))
	a.Menubar().
		AddSubtree("File", NewMenuTree().Leaf("New", nil)).
		AddSubtree("Edit", NewMenuTree().Leaf("Undo", nil))
	a.SelectMenubar()

	b.InjectEvent(event.FromKey(event.KeyEnter))
	b.InjectEvent(event.FromKey(event.KeyRight))
	a.Step()

	if got := a.Menubar().focus; got != 1 {
		t.Errorf("Expected Right to move the bar selection to 1, got %d", got)
	}
	if !a.Menubar().HasSubmenu() {
		t.Fatal("Expected the neighbouring menu to be open")
	}
	if got := a.Screen().Len(); got != 1 {
		t.Fatalf("Expected exactly one popup layer, got %d", got)
	}
	if got := a.Screen().Offset(); got != geom.New(6, 1) {
		t.Errorf("Expected the Edit popup at (6,1), got %v", got)
	}
}

func TestMenubarLeafActionHidesBar(t *testing.T) {
	a, b := newCaptureApp(geom.New(40, 10))
	ran := false
	a.Menubar().AddSubtree("File", NewMenuTree().Leaf("New", func(*App) { ran = true }))
	a.SelectMenubar()

	b.InjectEvent(event.FromKey(event.KeyEnter))
	b.InjectEvent(event.FromKey(event.KeyEnter))
	a.Step()

	if !ran {
		t.Error("Expected the leaf callback to run")
	}
	if got := a.Screen().Len(); got != 0 {
		t.Errorf("Expected the popup to be gone, got %d layers", got)
	}
	if a.Menubar().Visible() {
		t.Error("Expected the autohidden bar to vanish after the action")
	}
}

func TestMenubarPinnedDraw(t *testing.T) {
	a, b := newCaptureApp(geom.New(40, 10))
	a.SetAutohideMenu(false)
	a.Menubar().AddSubtree("File", NewMenuTree().Leaf("New", nil))

	b.InjectEvent(event.Refresh())
	a.Step()

	hits := b.LastFrame().FindOccurrences(" File ")
	if len(hits) != 1 {
		t.Fatalf("Expected the pinned bar drawn once, got %d hits", len(hits))
	}
	if got := hits[0].Min(); got != geom.Zero {
		t.Errorf("Expected the bar title at the origin, got %v", got)
	}
}

func TestMenubarMousePressOpensMenu(t *testing.T) {
	a, b := newCaptureApp(geom.New(40, 10))
	a.SetAutohideMenu(false)
	a.Menubar().AddSubtree("File", NewMenuTree().Leaf("New", nil))

	b.InjectEvent(event.MousePress(geom.New(1, 0), event.MouseBtnLeft))
	a.Step()

	if !a.Menubar().HasSubmenu() {
		t.Fatal("Expected the press on the bar to open its menu")
	}
	if got := a.Screen().Len(); got != 1 {
		t.Fatalf("Expected one popup layer, got %d", got)
	}
	// With the bar pinned the screen starts below it, so screen row 0
	// already sits under the titles
	if got := a.Screen().Offset(); got != geom.Zero {
		t.Errorf("Expected the popup at the screen origin, got %v", got)
	}
}

func TestMenubarLeftRightSkipEmpty(t *testing.T) {
	m := NewMenubar().
		AddSubtree("a", NewMenuTree()).
		AddSubtree("b", NewMenuTree().Leaf("x", nil)).
		AddSubtree("c", NewMenuTree())
	m.TakeFocus(DirNone)

	m.OnEvent(event.FromKey(event.KeyRight))
	if m.focus != 1 {
		t.Errorf("Expected Right to land on the only non-empty menu, got %d", m.focus)
	}
	m.OnEvent(event.FromKey(event.KeyRight))
	if m.focus != 1 {
		t.Errorf("Expected Right to wrap back to the non-empty menu, got %d", m.focus)
	}
	m.OnEvent(event.FromKey(event.KeyLeft))
	if m.focus != 1 {
		t.Errorf("Expected Left to wrap back to the non-empty menu, got %d", m.focus)
	}
}

func TestMenubarEscapeReleasesFocus(t *testing.T) {
	a, _ := newCaptureApp(geom.New(40, 10))
	a.Menubar().AddSubtree("File", NewMenuTree().Leaf("New", nil))
	a.SelectMenubar()

	res := a.Menubar().OnEvent(event.FromKey(event.KeyEscape))
	if !res.IsConsumed() {
		t.Fatal("Expected Escape to be consumed")
	}
	res.Process(a)

	if a.Menubar().ReceiveEvents() {
		t.Error("Expected the bar to give up focus")
	}
	if a.Menubar().Visible() {
		t.Error("Expected the autohidden bar to vanish")
	}
}
