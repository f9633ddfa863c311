package assignee

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWidget(t *testing.T) Model {
	t.Helper()
	m := New("test-assignee", Options{
		Placeholder:      "Search assignees...",
		MinTermLength:    3,
		DebounceInterval: 50 * time.Millisecond,
	})
	m.Focus()
	return m
}

// typeText feeds each rune as a keystroke, as a user would.
func typeText(m Model, text string) Model {
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func press(m Model, keyType tea.KeyType) (Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: keyType})
}

// fireTick delivers the currently pending debounce tick, as the bubbletea
// runtime would after the idle interval.
func fireTick(m Model, query string) (Model, tea.Cmd) {
	return m.Update(searchTickMsg{widgetID: m.id, gen: m.debounce.gen, query: query})
}

func runCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestSearchIsDebounced(t *testing.T) {
	t.Parallel()

	t.Run("short input never requests a search", func(t *testing.T) {
		t.Parallel()
		m := newTestWidget(t)
		m = typeText(m, "ad")

		// Even a tick that slips through must be recognised as stale.
		_, cmd := m.Update(searchTickMsg{widgetID: m.id, gen: 1, query: "ad"})
		assert.Nil(t, runCmd(cmd))
	})

	t.Run("only the last query of a burst fires", func(t *testing.T) {
		t.Parallel()
		m := newTestWidget(t)
		m = typeText(m, "adam")

		// The tick scheduled for "ada" is superseded by the one for "adam".
		staleGen := m.debounce.gen - 1
		_, cmd := m.Update(searchTickMsg{widgetID: m.id, gen: staleGen, query: "ada"})
		assert.Nil(t, runCmd(cmd))

		m, cmd = fireTick(m, "adam")
		msg := runCmd(cmd)
		require.IsType(t, UserSearchRequestedMsg{}, msg)
		req := msg.(UserSearchRequestedMsg)
		assert.Equal(t, "adam", req.Query)
		assert.Equal(t, "test-assignee", req.For)
	})

	t.Run("ticks for other widget instances are ignored", func(t *testing.T) {
		t.Parallel()
		m := newTestWidget(t)
		m = typeText(m, "adam")

		_, cmd := m.Update(searchTickMsg{widgetID: "someone-else", gen: m.debounce.gen, query: "adam"})
		assert.Nil(t, runCmd(cmd))
	})

	t.Run("an unfocused widget ignores keystrokes", func(t *testing.T) {
		t.Parallel()
		m := New("test-assignee", Options{MinTermLength: 3, DebounceInterval: 50 * time.Millisecond})
		m = typeText(m, "adam")
		assert.Empty(t, m.Value())
	})

	t.Run("scope issue key rides along on every request", func(t *testing.T) {
		t.Parallel()
		m := New("details-assignee", Options{
			MinTermLength:    3,
			DebounceInterval: 50 * time.Millisecond,
			ScopeIssueKey:    "ABC-1",
		})
		m.Focus()
		m = typeText(m, "adam")

		_, cmd := fireTick(m, "adam")
		msg := runCmd(cmd)
		require.IsType(t, UserSearchRequestedMsg{}, msg)
		assert.Equal(t, "ABC-1", msg.(UserSearchRequestedMsg).ScopeIssueKey)
	})
}

func TestKeyboardNavigation(t *testing.T) {
	t.Parallel()

	t.Run("arrows move the highlight with clamping", func(t *testing.T) {
		t.Parallel()
		m := newTestWidget(t)
		m.SetOptions(candidates())

		m, _ = press(m, tea.KeyUp)
		assert.Equal(t, 0, m.state.Highlighted())

		m, _ = press(m, tea.KeyDown)
		m, _ = press(m, tea.KeyDown)
		m, _ = press(m, tea.KeyDown)
		assert.Equal(t, 2, m.state.Highlighted())
	})

	t.Run("escape dismisses without touching the selection", func(t *testing.T) {
		t.Parallel()
		m := newTestWidget(t)
		m.SetOptions(candidates())
		m, _ = press(m, tea.KeyEnter)
		require.Equal(t, "id-1", m.Selection())

		m.SetOptions(candidates())
		m, _ = press(m, tea.KeyEscape)
		assert.False(t, m.ListVisible())
		assert.Equal(t, "id-1", m.Selection())
	})
}

func TestSingleEnterSelectsOption(t *testing.T) {
	t.Parallel()

	// Regression: selecting an option must be terminal. Historically the
	// programmatic label write re-entered the change handler, re-ran the
	// search and made the suggestion list re-appear.
	m := newTestWidget(t)
	m = typeText(m, "adam")

	m.SetOptions([]Candidate{
		{Label: "Adam Smith", ID: "id-1"},
		{Label: "Adam Jones", ID: "id-2"},
	})
	require.True(t, m.ListVisible())

	// The tick scheduled by the pre-confirm typing is still pending.
	pendingGen := m.debounce.gen

	m, cmd := press(m, tea.KeyEnter)
	assert.Nil(t, runCmd(cmd))
	assert.False(t, m.ListVisible())
	assert.Equal(t, "id-1", m.Selection())
	assert.Equal(t, "Adam Smith", m.Value())

	// When that tick fires after the confirm it must be dead.
	_, cmd = m.Update(searchTickMsg{widgetID: m.id, gen: pendingGen, query: "adam"})
	assert.Nil(t, runCmd(cmd), "pending debounce must not survive a confirm")
	assert.False(t, m.ListVisible())

	// A second enter with the list hidden changes nothing.
	m, cmd = press(m, tea.KeyEnter)
	assert.Nil(t, runCmd(cmd))
	assert.False(t, m.ListVisible())
	assert.Equal(t, "id-1", m.Selection())
}

func TestTypingAfterSelectionStartsOver(t *testing.T) {
	t.Parallel()
	m := newTestWidget(t)
	m = typeText(m, "adam")
	m.SetOptions(candidates())
	m, _ = press(m, tea.KeyEnter)
	require.Equal(t, "id-1", m.Selection())

	// A genuine keystroke invalidates the pick and schedules a new search.
	m = typeText(m, "x")
	assert.Empty(t, m.Selection())

	_, cmd := fireTick(m, "Adam Smithx")
	msg := runCmd(cmd)
	require.IsType(t, UserSearchRequestedMsg{}, msg)
}

func TestPreselectWidget(t *testing.T) {
	t.Parallel()
	m := newTestWidget(t)
	m.SetOptions(candidates())

	require.True(t, m.Preselect("id-2"))
	assert.Equal(t, "id-2", m.Selection())
	assert.Equal(t, "Adam Jones", m.Value())
	assert.False(t, m.ListVisible())

	assert.False(t, m.Preselect("id-99"))
}

func TestResetWidget(t *testing.T) {
	t.Parallel()
	m := newTestWidget(t)
	m = typeText(m, "adam")
	m.SetOptions(candidates())
	m, _ = press(m, tea.KeyEnter)

	m.Reset()
	assert.Empty(t, m.Selection())
	assert.Empty(t, m.Value())
	assert.False(t, m.ListVisible())
}

// Full walkthrough of the intended interaction.
func TestAssigneeSearchScenario(t *testing.T) {
	t.Parallel()
	m := newTestWidget(t)

	// "ad" is below the minimum term length: nothing may fire.
	m = typeText(m, "ad")
	_, cmd := m.Update(searchTickMsg{widgetID: m.id, gen: m.debounce.gen - 1, query: "ad"})
	require.Nil(t, runCmd(cmd))

	// "adam" reaches the threshold; after the idle interval exactly one
	// request fires, carrying the last query typed.
	m = typeText(m, "am")
	m, cmd = fireTick(m, "adam")
	msg := runCmd(cmd)
	require.IsType(t, UserSearchRequestedMsg{}, msg)
	require.Equal(t, "adam", msg.(UserSearchRequestedMsg).Query)

	// Results arrive: list visible, highlight at the top.
	m.SetOptions([]Candidate{
		{Label: "Adam Smith", ID: "id-1"},
		{Label: "Adam Jones", ID: "id-2"},
	})
	require.True(t, m.ListVisible())
	require.Equal(t, 0, m.state.Highlighted())

	// Confirm the first option.
	pendingGen := m.debounce.gen
	m, _ = press(m, tea.KeyEnter)
	assert.False(t, m.ListVisible())
	assert.Equal(t, "id-1", m.Selection())
	assert.Equal(t, "Adam Smith", m.Value())

	// Idle ticks with no new keystrokes leave the widget hidden.
	for range 2 {
		var tickCmd tea.Cmd
		m, tickCmd = m.Update(searchTickMsg{widgetID: m.id, gen: pendingGen, query: "adam"})
		assert.Nil(t, runCmd(tickCmd))
		assert.False(t, m.ListVisible())
	}
}
