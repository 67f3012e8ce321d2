package scrim

import (
	"testing"

	"github.com/lixenwraith/scrim/backend/capture"
	"github.com/lixenwraith/scrim/event"
	"github.com/lixenwraith/scrim/geom"
	"github.com/lixenwraith/scrim/theme"
)

func popContent(t *testing.T, s *StackView) string {
	t.Helper()
	v := s.PopLayer()
	if v == nil {
		t.Fatal("Expected a layer to pop, got nil")
	}
	tv, ok := v.(*TextView)
	if !ok {
		t.Fatalf("Expected popped view to be a *TextView, got %T", v)
	}
	return tv.Content()
}

func TestMoveLayer(t *testing.T) {
	stack := NewStackView()
	stack.AddLayer(NewTextView("1"))
	stack.AddLayer(NewTextView("2"))
	stack.AddLayer(NewTextView("3"))

	stack.MoveLayer(FromFront(0), FromBack(0))
	stack.MoveLayer(FromBack(0), FromFront(0))
	stack.MoveLayer(FromFront(1), FromFront(0))

	if got := popContent(t, stack); got != "2" {
		t.Errorf("Expected front layer to be %q, got %q", "2", got)
	}
}

func TestMoveByName(t *testing.T) {
	stack := NewStackView()
	stack.AddNamedLayer("layer_1", NewTextView("1"))
	stack.AddNamedLayer("layer_2", NewTextView("2"))
	stack.AddNamedLayer("layer_3", NewTextView("3"))

	stack.MoveNamedToFront("layer_2")
	if got := popContent(t, stack); got != "2" {
		t.Errorf("Expected front layer to be %q, got %q", "2", got)
	}

	stack.MoveNamedToBack("layer_2")
	if got := popContent(t, stack); got != "3" {
		t.Errorf("Expected front layer to be %q, got %q", "3", got)
	}
	if got := popContent(t, stack); got != "1" {
		t.Errorf("Expected front layer to be %q, got %q", "1", got)
	}
}

func TestStackDiscipline(t *testing.T) {
	stack := NewStackView()
	stack.AddLayer(NewTextView("a"))
	stack.AddFullscreenLayer(NewTextView("b"))
	stack.AddLayer(NewTextView("c"))

	if got := popContent(t, stack); got != "c" {
		t.Errorf("Expected front layer to be %q, got %q", "c", got)
	}

	stack.AddLayer(NewTextView("d"))
	if got := popContent(t, stack); got != "d" {
		t.Errorf("Expected front layer to be %q, got %q", "d", got)
	}
	if got := popContent(t, stack); got != "b" {
		t.Errorf("Expected front layer to be %q, got %q", "b", got)
	}
	if got := popContent(t, stack); got != "a" {
		t.Errorf("Expected front layer to be %q, got %q", "a", got)
	}

	if v := stack.PopLayer(); v != nil {
		t.Errorf("Expected nil from an empty stack, got %v", v)
	}
}

type focusProbe struct {
	TextView
	calls  int
	accept bool
}

func (f *focusProbe) TakeFocus(Direction) bool {
	f.calls++
	return f.accept
}

func TestFirstLayoutHandsOutFocus(t *testing.T) {
	probe := &focusProbe{accept: true}
	stack := NewStackView()
	stack.AddLayer(probe)

	if probe.calls != 0 {
		t.Fatalf("Expected no focus offer before layout, got %d", probe.calls)
	}

	stack.Layout(geom.New(40, 10))
	if probe.calls != 1 {
		t.Errorf("Expected exactly one focus offer after first layout, got %d", probe.calls)
	}

	stack.Layout(geom.New(40, 10))
	stack.Layout(geom.New(30, 8))
	if probe.calls != 1 {
		t.Errorf("Expected no further focus offers, got %d", probe.calls)
	}
}

func TestDecliningFocusStillClearsVirgin(t *testing.T) {
	probe := &focusProbe{accept: false}
	stack := NewStackView()
	stack.AddLayer(probe)

	stack.Layout(geom.New(40, 10))
	stack.Layout(geom.New(40, 10))
	if probe.calls != 1 {
		t.Errorf("Expected one focus offer even when declined, got %d", probe.calls)
	}
}

func TestOffsetChaining(t *testing.T) {
	stack := NewStackView()
	stack.AddLayerAt(PositionAbsolute(geom.New(2, 3)), NewTextView("x"))
	stack.AddLayerAt(PositionParent(geom.New(1, 1)), NewTextView("y"))
	stack.Layout(geom.New(40, 10))

	if got := stack.Offset(); got != geom.New(3, 4) {
		t.Errorf("Expected chained offset (3,4), got %v", got)
	}
}

func TestFullscreenResetsChain(t *testing.T) {
	stack := NewStackView()
	stack.AddLayerAt(PositionAbsolute(geom.New(5, 5)), NewTextView("x"))
	stack.AddFullscreenLayer(NewTextView("y"))
	stack.Layout(geom.New(40, 10))

	if got := stack.Offset(); got != geom.Zero {
		t.Errorf("Expected fullscreen front layer at origin, got %v", got)
	}
}

func TestFindLayerFromName(t *testing.T) {
	stack := NewStackView()
	stack.AddLayer(NewTextView("back"))
	stack.AddLayer(Named("text", NewTextView("middle")))
	stack.AddLayer(NewTextView("front"))

	pos, ok := stack.FindLayerFromName("text")
	if !ok {
		t.Fatal("Expected to find the named view")
	}
	if pos != FromBack(1) {
		t.Errorf("Expected position FromBack(1), got %v", pos)
	}

	if _, ok := stack.FindLayerFromName("missing"); ok {
		t.Error("Expected not to find an unknown name")
	}
}

func TestRepositionFloating(t *testing.T) {
	b := capture.New(geom.New(12, 4))
	th := theme.Default()
	p := NewPrinter(b, &th, b.ScreenSize())

	stack := NewStackView()
	stack.AddLayerAt(PositionAbsolute(geom.New(0, 0)), NewTextView("x"))
	stack.Layout(b.ScreenSize())

	stack.DrawBg(p)
	b.PrintAt(geom.New(0, 0), "M")
	stack.DrawBg(p)
	if glyph, _ := b.CurrentFrame().At(geom.Zero).BeginGlyph(); glyph != "M" {
		t.Errorf("Expected a clean background to leave the marker, got %q", glyph)
	}

	stack.RepositionLayer(FromFront(0), PositionAbsolute(geom.New(3, 1)))
	stack.DrawBg(p)
	if glyph, _ := b.CurrentFrame().At(geom.Zero).BeginGlyph(); glyph != " " {
		t.Errorf("Expected repositioning to repaint the background, got %q", glyph)
	}

	if got := stack.Offset(); got != geom.New(3, 1) {
		t.Errorf("Expected new offset (3,1), got %v", got)
	}
}

func TestRepositionFullscreenIsNoop(t *testing.T) {
	stack := NewStackView()
	stack.AddFullscreenLayer(NewTextView("x"))
	stack.Layout(geom.New(20, 5))

	stack.bgDirty = false
	stack.RepositionLayer(FromFront(0), PositionAbsolute(geom.New(3, 1)))

	if stack.bgDirty {
		t.Error("Expected repositioning a fullscreen layer to change nothing")
	}
	if got := stack.Offset(); got != geom.Zero {
		t.Errorf("Expected fullscreen layer to stay at origin, got %v", got)
	}
}

func TestResizeMarksBackgroundDirty(t *testing.T) {
	stack := NewStackView()
	stack.AddFullscreenLayer(NewTextView("x"))
	stack.Layout(geom.New(20, 5))
	stack.bgDirty = false

	stack.OnEvent(event.Resize())
	if !stack.bgDirty {
		t.Error("Expected a resize to mark the background dirty")
	}
}

func TestEmptyStackIgnoresEvents(t *testing.T) {
	stack := NewStackView()
	if res := stack.OnEvent(event.Char('x')); res.IsConsumed() {
		t.Error("Expected an empty stack to ignore events")
	}
}

func TestRequiredSizeIsMaxOfLayers(t *testing.T) {
	stack := NewStackView()
	stack.AddFullscreenLayer(NewTextView("abcde"))
	stack.AddFullscreenLayer(NewTextView("ab\ncd\nef"))

	got := stack.RequiredSize(geom.New(80, 24))
	if got != geom.New(5, 3) {
		t.Errorf("Expected required size (5,3), got %v", got)
	}
}
