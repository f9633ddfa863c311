package assignee

import (
	"strings"

	"github.com/wbh1/jiratui/internal/tui/util"
)

// Candidate is one selectable search result.
type Candidate struct {
	Label string
	ID    string
}

// State owns the selection, option list, highlight and visibility of one
// assignee autocomplete instance. It is pure bookkeeping: transitions are
// computed here and rendering is a projection of the resulting state, so
// there are no watcher-style side effects to feed back into search logic.
type State struct {
	minTermLength int

	text        string
	options     []Candidate
	selection   string
	label       string
	highlighted int
	visible     bool
}

func NewState(minTermLength int) State {
	return State{minTermLength: minTermLength}
}

// OnTextChanged records a genuine user edit. It unconditionally clears any
// prior selection (typing invalidates a pick) and reports whether a search
// should be scheduled for the trimmed query. Programmatic writes must go
// through SetTextQuiet instead; routing them here would re-trigger the
// search pipeline the write originated from.
func (s *State) OnTextChanged(text string) (query string, search bool) {
	s.text = text
	s.selection = ""
	s.label = ""

	query = strings.TrimSpace(text)
	if len(query) >= s.minTermLength {
		return query, true
	}
	s.visible = false
	return "", false
}

// SetTextQuiet updates the raw text mirror without any of OnTextChanged's
// side effects. Used for component-internal writes (confirm, preselect,
// reset).
func (s *State) SetTextQuiet(text string) {
	s.text = text
}

// SetOptions replaces the option list wholesale. A non-empty list becomes
// visible with the highlight on the first entry; an empty list hides the
// widget. Stale-response ordering is the caller's concern: whatever arrives
// here is applied, last write wins.
func (s *State) SetOptions(options []Candidate) {
	if len(options) == 0 {
		s.options = nil
		s.visible = false
		return
	}
	s.options = make([]Candidate, len(options))
	copy(s.options, options)
	s.highlighted = 0
	s.visible = true
}

// MoveHighlight moves the highlight by delta, clamped at the list
// boundaries. No-op while the list is hidden.
func (s *State) MoveHighlight(delta int) {
	if !s.visible {
		return
	}
	s.highlighted = util.Clamp(s.highlighted+delta, 0, len(s.options)-1)
}

// ConfirmSelection finalises the candidate at index and hides the list.
// The candidate list is dropped; only the identifier and label survive the
// confirm. An out-of-range index is silently ignored: under fast input the
// index can go stale between render and confirm.
func (s *State) ConfirmSelection(index int) (Candidate, bool) {
	if !s.visible || index < 0 || index >= len(s.options) {
		return Candidate{}, false
	}
	chosen := s.options[index]
	s.selection = chosen.ID
	s.label = chosen.Label
	s.text = chosen.Label
	s.options = nil
	s.visible = false
	return chosen, true
}

// Dismiss hides the list without touching the selection.
func (s *State) Dismiss() {
	s.visible = false
}

// Reset clears selection, options and text.
func (s *State) Reset() {
	s.text = ""
	s.options = nil
	s.selection = ""
	s.label = ""
	s.highlighted = 0
	s.visible = false
}

// Preselect picks the candidate with the given id from the currently-known
// options, as when restoring a previously chosen assignee from external
// state. Returns false when the id is not present.
func (s *State) Preselect(id string) (Candidate, bool) {
	for _, option := range s.options {
		if option.ID == id {
			s.selection = option.ID
			s.label = option.Label
			s.text = option.Label
			s.visible = false
			return option, true
		}
	}
	return Candidate{}, false
}

// Selection returns the chosen candidate's identifier, or "" when nothing
// is selected.
func (s *State) Selection() string {
	return s.selection
}

// SelectionLabel returns the display label recorded at selection time.
func (s *State) SelectionLabel() string {
	return s.label
}

func (s *State) Visible() bool {
	return s.visible
}

func (s *State) Highlighted() int {
	return s.highlighted
}

// Options returns the current option list. Callers must not retain the
// slice across updates; it is replaced wholesale on every search response.
func (s *State) Options() []Candidate {
	return s.options
}
