package scrim

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/scrim/event"
	"github.com/lixenwraith/scrim/geom"
	"github.com/lixenwraith/scrim/logbuf"
	"github.com/lixenwraith/scrim/theme"
)

// DebugView renders the process-wide log buffer, newest records at the
// bottom. Push it as a fullscreen layer to inspect an application's logs
// without leaving the UI.
type DebugView struct{}

// NewDebugView creates a view over the shared log buffer
func NewDebugView() *DebugView {
	return &DebugView{}
}

func formatRecord(rec logbuf.Record) string {
	return fmt.Sprintf("%s | [%s] %s",
		rec.Time.Format("15:04:05.000"), rec.Level, rec.Message)
}

// Draw prints the tail of the buffer that fits the granted height
func (d *DebugView) Draw(p *Printer) {
	records := logbuf.Records()
	skipped := len(records) - p.Size().Y
	if skipped < 0 {
		skipped = 0
	}
	p.WithColor(theme.StylePrimary(), func(p *Printer) {
		for i, rec := range records[skipped:] {
			p.Print(geom.New(0, i), formatRecord(rec))
		}
	})
}

func (d *DebugView) Layout(size geom.Vec2) {}

// RequiredSize reports the widest buffered line and one row per record
func (d *DebugView) RequiredSize(constraint geom.Vec2) geom.Vec2 {
	records := logbuf.Records()
	w := 1
	for _, rec := range records {
		if lw := runewidth.StringWidth(formatRecord(rec)); lw > w {
			w = lw
		}
	}
	return geom.New(w, len(records))
}

func (d *DebugView) OnEvent(ev event.Event) EventResult {
	return Ignored()
}

func (d *DebugView) TakeFocus(source Direction) bool {
	return false
}

func (d *DebugView) CallOnAny(sel Selector, fn func(View)) {
	if sel.Matches(d) {
		fn(d)
	}
}

func (d *DebugView) FocusView(sel Selector) error {
	if sel.Matches(d) {
		return nil
	}
	return ErrViewNotFound
}
