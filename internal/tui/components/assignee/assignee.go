// Package assignee implements the debounced, server-backed autocomplete
// used everywhere an assignee is picked: the filter bar, the work item
// details pane and the create form. The widget never talks to the network
// itself; it emits UserSearchRequestedMsg and a host feeds results back
// through SetOptions, which is the seam that lets the same widget serve
// both Jira Cloud and Data Center.
package assignee

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wbh1/jiratui/internal/tui/util"
)

// UserSearchRequestedMsg is the widget's one externally observable event,
// posted after the user has typed enough characters and stayed idle for the
// debounce interval. The host performs the actual search and calls
// SetOptions with the results.
type UserSearchRequestedMsg struct {
	// For is the id of the widget that requested the search, so hosts with
	// several assignee pickers can route results back to the right one.
	For string
	// Query is the trimmed search text.
	Query string
	// ScopeIssueKey optionally narrows the search to users assignable to
	// one issue. Passed through to the API unchanged.
	ScopeIssueKey string
}

// Options configures a widget instance.
type Options struct {
	Placeholder      string
	MinTermLength    int
	DebounceInterval time.Duration
	// ScopeIssueKey is attached to every search request from this widget.
	ScopeIssueKey string
	MaxVisible    int
}

const defaultMaxVisible = 6

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Confirm key.Binding
	Dismiss key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous option"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next option"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "dismiss"),
	),
}

// Model is the bubbletea component. All of its state transitions run on the
// single program event loop, so no locking is needed.
type Model struct {
	id       string
	opts     Options
	input    textinput.Model
	state    State
	debounce debouncer

	// lastText mirrors the input's value as of the previous update. Edits
	// are detected by comparing against it, and the guarded programmatic
	// write keeps it in sync so a component-internal write never reads as
	// a user edit on the next pass.
	lastText string

	width int
}

func New(id string, opts Options) Model {
	if opts.MaxVisible <= 0 {
		opts.MaxVisible = defaultMaxVisible
	}
	input := textinput.New()
	input.Placeholder = opts.Placeholder
	input.Prompt = ""
	return Model{
		id:    id,
		opts:  opts,
		input: input,
		state: NewState(opts.MinTermLength),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case searchTickMsg:
		if msg.widgetID != m.id || !m.debounce.current(msg) {
			return m, nil
		}
		return m, util.CmdHandler(UserSearchRequestedMsg{
			For:           m.id,
			Query:         msg.query,
			ScopeIssueKey: m.opts.ScopeIssueKey,
		})

	case tea.KeyMsg:
		if !m.input.Focused() {
			return m, nil
		}
		if m.state.Visible() {
			switch {
			case key.Matches(msg, keys.Down):
				m.state.MoveHighlight(1)
				return m, nil
			case key.Matches(msg, keys.Up):
				m.state.MoveHighlight(-1)
				return m, nil
			case key.Matches(msg, keys.Confirm):
				if chosen, ok := m.state.ConfirmSelection(m.state.Highlighted()); ok {
					// The confirm is terminal: drop any tick still pending
					// from typing that preceded it, and write the label
					// without registering an edit. Only genuine new
					// keystrokes may reopen the list.
					m.debounce.cancel()
					m.writeInputQuiet(chosen.Label)
				}
				return m, nil
			case key.Matches(msg, keys.Dismiss):
				m.state.Dismiss()
				return m, nil
			}
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if value := m.input.Value(); value != m.lastText {
			m.lastText = value
			query, search := m.state.OnTextChanged(value)
			if search {
				return m, tea.Batch(cmd, m.debounce.schedule(m.id, m.opts.DebounceInterval, query))
			}
			m.debounce.cancel()
		}
		return m, cmd
	}

	return m, nil
}

// SetOptions replaces the option list with fresh search results. Hosts are
// responsible for dropping out-of-order responses before calling this.
func (m *Model) SetOptions(options []Candidate) {
	m.state.SetOptions(options)
}

// Preselect restores a previously chosen assignee without user interaction.
func (m *Model) Preselect(id string) bool {
	chosen, ok := m.state.Preselect(id)
	if ok {
		m.debounce.cancel()
		m.writeInputQuiet(chosen.Label)
	}
	return ok
}

// Dismiss hides the option list, leaving any selection in place. Hosts call
// this when a search fails so a broken new search does not erase a prior
// valid pick.
func (m *Model) Dismiss() {
	m.state.Dismiss()
}

// Reset clears text, options and selection.
func (m *Model) Reset() {
	m.debounce.cancel()
	m.state.Reset()
	m.writeInputQuiet("")
}

// Selection returns the chosen user's identifier, or "" when none.
func (m Model) Selection() string {
	return m.state.Selection()
}

// SelectionLabel returns the display name recorded when the selection was
// made.
func (m Model) SelectionLabel() string {
	return m.state.SelectionLabel()
}

func (m Model) Value() string {
	return m.input.Value()
}

func (m Model) ListVisible() bool {
	return m.state.Visible()
}

// SetScopeIssueKey changes the issue scope attached to subsequent searches.
func (m *Model) SetScopeIssueKey(issueKey string) {
	m.opts.ScopeIssueKey = issueKey
}

func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

func (m *Model) Blur() {
	m.input.Blur()
	m.state.Dismiss()
}

func (m Model) Focused() bool {
	return m.input.Focused()
}

func (m *Model) SetWidth(width int) {
	m.width = width
	m.input.Width = width
}

// writeInputQuiet is the single guarded primitive for component-internal
// text writes. Syncing lastText is what keeps the write from registering as
// a user edit on the next update; the sync happens immediately, so the
// suppression cannot leak into later genuine keystrokes.
func (m *Model) writeInputQuiet(text string) {
	m.input.SetValue(text)
	m.input.CursorEnd()
	m.lastText = text
	m.state.SetTextQuiet(text)
}

var (
	optionStyle = lipgloss.NewStyle().PaddingLeft(1)

	highlightedStyle = lipgloss.NewStyle().
				PaddingLeft(1).
				Foreground(lipgloss.Color("212")).
				Bold(true)

	listStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, true).
			BorderForeground(lipgloss.Color("240"))
)

func (m Model) View() string {
	view := m.input.View()
	if !m.state.Visible() {
		return view
	}

	options := m.state.Options()
	start := 0
	if m.state.Highlighted() >= m.opts.MaxVisible {
		start = m.state.Highlighted() - m.opts.MaxVisible + 1
	}
	end := min(start+m.opts.MaxVisible, len(options))

	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		style := optionStyle
		if i == m.state.Highlighted() {
			style = highlightedStyle
		}
		rows = append(rows, style.Render(options[i].Label))
	}
	list := listStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	return lipgloss.JoinVertical(lipgloss.Left, view, list)
}
