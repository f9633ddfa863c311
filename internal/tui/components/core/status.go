// Package core contains shared chrome components, currently the status bar.
package core

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/wbh1/jiratui/internal/pubsub"
	"github.com/wbh1/jiratui/internal/status"
)

const messageTTL = 5 * time.Second

type statusEventMsg struct {
	message status.Message
}

type clearTickMsg struct {
	gen int
}

// StatusBar shows the most recent status message at the bottom of the
// screen. Messages expire after a short interval.
type StatusBar struct {
	events  <-chan pubsub.Event[status.Message]
	current *status.Message
	// clearGen invalidates expiry ticks the same way the autocomplete
	// invalidates debounce ticks: a tick carrying an old generation is
	// ignored, so a fresh message is never cleared by an older timer.
	clearGen int
	width    int
}

func NewStatusBar(ctx context.Context, svc status.Service) StatusBar {
	return StatusBar{events: svc.Subscribe(ctx)}
}

func (s StatusBar) Init() tea.Cmd {
	return s.waitForEvent()
}

func (s StatusBar) Update(msg tea.Msg) (StatusBar, tea.Cmd) {
	switch msg := msg.(type) {
	case statusEventMsg:
		s.current = &msg.message
		s.clearGen++
		gen := s.clearGen
		return s, tea.Batch(
			s.waitForEvent(),
			tea.Tick(messageTTL, func(time.Time) tea.Msg {
				return clearTickMsg{gen: gen}
			}),
		)
	case clearTickMsg:
		if msg.gen == s.clearGen {
			s.current = nil
		}
		return s, nil
	}
	return s, nil
}

func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

func (s StatusBar) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		event, ok := <-s.events
		if !ok {
			return nil
		}
		return statusEventMsg{message: event.Payload}
	}
}

var (
	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	levelColors = map[status.Level]lipgloss.Color{
		status.LevelInfo:  lipgloss.Color("4"),
		status.LevelWarn:  lipgloss.Color("3"),
		status.LevelError: lipgloss.Color("1"),
		status.LevelDebug: lipgloss.Color("241"),
	}
)

func (s StatusBar) View() string {
	if s.current == nil {
		return barStyle.Width(s.width).Render("")
	}
	style := barStyle
	if color, ok := levelColors[s.current.Level]; ok {
		style = style.Foreground(color)
	}
	text := s.current.Text
	if s.width > 2 {
		text = truncate.StringWithTail(text, uint(s.width-2), "…")
	}
	return style.Width(s.width).Render(text)
}
