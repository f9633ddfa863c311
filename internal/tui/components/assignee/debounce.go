package assignee

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// searchTickMsg is delivered after the debounce interval has elapsed. It
// carries the generation it was scheduled under; a tick whose generation is
// no longer current belongs to a superseded edit and is dropped on arrival.
type searchTickMsg struct {
	widgetID string
	gen      int
	query    string
}

// debouncer arms at most one live tick per widget. Scheduling bumps the
// generation, which implicitly cancels anything still pending: bubbletea
// timers cannot be stopped, so stale ticks fire and are discarded instead.
// All ticks arrive on the single program event loop, so generation checks
// never race.
type debouncer struct {
	gen int
}

func (d *debouncer) schedule(widgetID string, interval time.Duration, query string) tea.Cmd {
	d.gen++
	gen := d.gen
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return searchTickMsg{widgetID: widgetID, gen: gen, query: query}
	})
}

func (d *debouncer) cancel() {
	d.gen++
}

// current reports whether the tick is the latest scheduled one.
func (d *debouncer) current(msg searchTickMsg) bool {
	return msg.gen == d.gen
}
