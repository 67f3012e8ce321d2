package scrim

import (
	"testing"

	"github.com/lixenwraith/scrim/backend/capture"
	"github.com/lixenwraith/scrim/event"
	"github.com/lixenwraith/scrim/geom"
	"github.com/lixenwraith/scrim/theme"
)

func typeString(e *EditView, s string) {
	for _, r := range s {
		e.OnEvent(event.Char(r))
	}
}

func TestEditTypingAndSubmit(t *testing.T) {
	a, _ := newCaptureApp(geom.Zero)
	var submitted string
	e := NewEditView().OnSubmit(func(_ *App, content string) {
		submitted = content
	})
	e.Layout(geom.New(10, 1))

	typeString(e, "hi")
	if got := e.Content(); got != "hi" {
		t.Errorf("Expected content %q, got %q", "hi", got)
	}

	res := e.OnEvent(event.FromKey(event.KeyEnter))
	if !res.IsConsumed() {
		t.Fatal("Expected Enter to be consumed with a submit callback set")
	}
	res.Process(a)
	if submitted != "hi" {
		t.Errorf("Expected %q submitted, got %q", "hi", submitted)
	}
}

func TestEditEnterWithoutSubmitIsIgnored(t *testing.T) {
	e := NewEditView()
	e.Layout(geom.New(10, 1))

	if res := e.OnEvent(event.FromKey(event.KeyEnter)); res.IsConsumed() {
		t.Error("Expected Enter to be ignored without a submit callback")
	}
}

func TestEditDeletion(t *testing.T) {
	e := NewEditView()
	e.Layout(geom.New(10, 1))
	e.SetContent("abc")

	e.OnEvent(event.FromKey(event.KeyBackspace))
	if got := e.Content(); got != "ab" {
		t.Errorf("Expected backspace to leave %q, got %q", "ab", got)
	}

	e.OnEvent(event.FromKey(event.KeyHome))
	e.OnEvent(event.FromKey(event.KeyDelete))
	if got := e.Content(); got != "b" {
		t.Errorf("Expected delete at the front to leave %q, got %q", "b", got)
	}

	if res := e.OnEvent(event.FromKey(event.KeyLeft)); res.IsConsumed() {
		t.Error("Expected Left at the front to be ignored")
	}
	e.OnEvent(event.FromKey(event.KeyEnd))
	if res := e.OnEvent(event.FromKey(event.KeyRight)); res.IsConsumed() {
		t.Error("Expected Right at the end to be ignored")
	}
}

func TestEditCursorMovesByGrapheme(t *testing.T) {
	e := NewEditView()
	e.Layout(geom.New(10, 1))
	e.SetContent("a日b")

	if got := e.Cursor(); got != 5 {
		t.Fatalf("Expected the cursor at byte 5, got %d", got)
	}

	moves := []struct {
		key  event.Key
		want int
	}{
		{event.KeyLeft, 4},
		{event.KeyLeft, 1},
		{event.KeyLeft, 0},
		{event.KeyRight, 1},
		{event.KeyRight, 4},
	}
	for _, mv := range moves {
		e.OnEvent(event.FromKey(mv.key))
		if got := e.Cursor(); got != mv.want {
			t.Errorf("Expected the cursor at byte %d, got %d", mv.want, got)
		}
	}

	e.OnEvent(event.FromKey(event.KeyEnd))
	e.OnEvent(event.FromKey(event.KeyBackspace))
	e.OnEvent(event.FromKey(event.KeyBackspace))
	if got := e.Content(); got != "a" {
		t.Errorf("Expected backspace to remove whole graphemes, got %q", got)
	}
}

func TestEditScrollsToKeepCursorVisible(t *testing.T) {
	b := capture.New(geom.New(5, 1))
	th := theme.Default()
	e := NewEditView()
	e.Layout(geom.New(5, 1))
	e.SetContent("abcdefghij")

	if e.offset != 6 {
		t.Fatalf("Expected the front scrolled to byte 6, got %d", e.offset)
	}

	e.Draw(NewPrinter(b, &th, b.ScreenSize()))
	if got := b.CurrentFrame().AsStrings()[0]; got != "ghij_" {
		t.Errorf("Expected the tail with the end cursor %q, got %q", "ghij_", got)
	}

	e.OnEvent(event.FromKey(event.KeyHome))
	if e.offset != 0 {
		t.Fatalf("Expected Home to scroll back to the front, got offset %d", e.offset)
	}
	e.Draw(NewPrinter(b, &th, b.ScreenSize()))
	if got := b.CurrentFrame().AsStrings()[0]; got != "abcde" {
		t.Errorf("Expected the front of the content %q, got %q", "abcde", got)
	}
}

func TestEditSecretRendersStars(t *testing.T) {
	b := capture.New(geom.New(6, 1))
	th := theme.Default()
	e := NewEditView().Secret()
	e.Layout(geom.New(6, 1))
	e.SetContent("abc")

	e.Draw(NewPrinter(b, &th, b.ScreenSize()))
	if got := b.CurrentFrame().AsStrings()[0]; got != "***___" {
		t.Errorf("Expected masked content %q, got %q", "***___", got)
	}
}

func TestEditDisabledRefusesFocus(t *testing.T) {
	e := NewEditView().Disabled()
	if e.TakeFocus(DirNone) {
		t.Error("Expected a disabled view to refuse focus")
	}
	e.SetEnabled(true)
	if !e.TakeFocus(DirNone) {
		t.Error("Expected an enabled view to accept focus")
	}
}

func TestEditReportsChanges(t *testing.T) {
	a, _ := newCaptureApp(geom.Zero)
	var gotContent string
	var gotCursor int
	e := NewEditView().OnEdit(func(_ *App, content string, cursor int) {
		gotContent = content
		gotCursor = cursor
	})
	e.Layout(geom.New(10, 1))

	res := e.OnEvent(event.Char('x'))
	if !res.IsConsumed() {
		t.Fatal("Expected the insertion to be consumed")
	}
	res.Process(a)

	if gotContent != "x" || gotCursor != 1 {
		t.Errorf("Expected the change reported as (%q, 1), got (%q, %d)", "x", gotContent, gotCursor)
	}
}

func TestEditDrawAtWrongWidthPanics(t *testing.T) {
	b := capture.New(geom.New(10, 1))
	th := theme.Default()
	e := NewEditView()
	e.Layout(geom.New(5, 1))

	defer func() {
		if recover() == nil {
			t.Error("Expected drawing at a width the layout never promised to panic")
		}
	}()
	e.Draw(NewPrinter(b, &th, geom.New(4, 1)))
}
