// Package filters implements the search filter bar: project selector,
// work item key input and the assignee autocomplete.
package filters

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/wbh1/jiratui/internal/config"
	"github.com/wbh1/jiratui/internal/jira"
	"github.com/wbh1/jiratui/internal/tui/components/assignee"
	"github.com/wbh1/jiratui/internal/tui/util"
)

// Field identifies one focusable field in the bar.
type Field int

const (
	FieldProject Field = iota
	FieldWorkItemKey
	FieldAssignee
	fieldCount
)

type keyMap struct {
	NextField key.Binding
	PrevField key.Binding
}

var keys = keyMap{
	NextField: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous field"),
	),
}

// Model is the filter bar.
type Model struct {
	project     projectSelect
	workItemKey textinput.Model
	assignee    assignee.Model

	focus Field
	width int
}

func New(cfg *config.Config) Model {
	workItemKey := textinput.New()
	workItemKey.Placeholder = "e.g. ABC-1234"
	workItemKey.Prompt = ""

	a := assignee.New("filter-assignee", assignee.Options{
		Placeholder:      "Search assignees...",
		MinTermLength:    cfg.Search.MinTermLength,
		DebounceInterval: cfg.DebounceInterval(),
	})

	m := Model{
		project:     newProjectSelect(),
		workItemKey: workItemKey,
		assignee:    a,
	}
	m.setFocus(FieldProject)
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		// Tab moves between fields unless the assignee list is open and
		// consuming navigation keys.
		switch {
		case key.Matches(keyMsg, keys.NextField) && !m.assignee.ListVisible():
			m.setFocus((m.focus + 1) % fieldCount)
			return m, nil
		case key.Matches(keyMsg, keys.PrevField) && !m.assignee.ListVisible():
			m.setFocus((m.focus + fieldCount - 1) % fieldCount)
			return m, nil
		}
	}

	var cmds []tea.Cmd
	switch m.focus {
	case FieldProject:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			m.project.handleKey(keyMsg)
		}
	case FieldWorkItemKey:
		var cmd tea.Cmd
		m.workItemKey, cmd = m.workItemKey.Update(msg)
		cmds = append(cmds, cmd)
	}

	// The assignee widget also consumes its own debounce ticks, which can
	// arrive while focus is elsewhere.
	var cmd tea.Cmd
	m.assignee, cmd = m.assignee.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// SetProjects replaces the selectable projects, e.g. after the startup fetch.
func (m *Model) SetProjects(projects []jira.Project) {
	m.project.setProjects(projects)
}

// SetAssigneeOptions forwards fresh search results to the assignee widget.
func (m *Model) SetAssigneeOptions(options []assignee.Candidate) {
	m.assignee.SetOptions(options)
}

// DismissAssignee hides the assignee suggestion list, keeping any selection.
func (m *Model) DismissAssignee() {
	m.assignee.Dismiss()
}

// AssigneeListVisible reports whether the assignee suggestion list is open.
func (m Model) AssigneeListVisible() bool {
	return m.assignee.ListVisible()
}

// AssigneeSelection returns the chosen assignee's identifier, or "".
func (m Model) AssigneeSelection() string {
	return m.assignee.Selection()
}

// Selection reports the chosen filter values.
func (m Model) Selection() (projectKey, workItemKey, assigneeID string) {
	return m.project.selectedKey, strings.TrimSpace(m.workItemKey.Value()), m.assignee.Selection()
}

func (m *Model) SetWidth(width int) {
	m.width = width
	fieldWidth := max(18, width/3-4)
	m.workItemKey.Width = fieldWidth
	m.assignee.SetWidth(fieldWidth)
}

func (m *Model) setFocus(field Field) {
	m.focus = field
	m.workItemKey.Blur()
	m.assignee.Blur()
	m.project.focused = false
	switch field {
	case FieldProject:
		m.project.focused = true
	case FieldWorkItemKey:
		m.workItemKey.Focus()
	case FieldAssignee:
		m.assignee.Focus()
	}
}

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			PaddingRight(1)

	focusedLabelStyle = labelStyle.
				Foreground(lipgloss.Color("212")).
				Bold(true)

	fieldStyle = lipgloss.NewStyle().PaddingRight(2)
)

func (m Model) View() string {
	render := func(field Field, label, body string) string {
		style := labelStyle
		if m.focus == field {
			style = focusedLabelStyle
		}
		return fieldStyle.Render(lipgloss.JoinVertical(lipgloss.Left, style.Render(label), body))
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		render(FieldProject, "Project", m.project.view()),
		render(FieldWorkItemKey, "Work Item Key", m.workItemKey.View()),
		render(FieldAssignee, "Assignee", m.assignee.View()),
	)
}

// projectSelect is a small type-to-search selector over the fetched project
// list. Filtering is local fuzzy matching; the list is already complete.
type projectSelect struct {
	projects    []jira.Project
	filter      string
	matches     []jira.Project
	highlighted int
	open        bool
	focused     bool
	selectedKey string
}

func newProjectSelect() projectSelect {
	return projectSelect{}
}

func (p *projectSelect) setProjects(projects []jira.Project) {
	p.projects = projects
	p.refilter()
}

func (p *projectSelect) handleKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "enter":
		if p.open && p.highlighted < len(p.matches) {
			p.selectedKey = p.matches[p.highlighted].Key
			p.open = false
			p.filter = ""
		} else {
			p.open = true
			p.refilter()
		}
	case "esc":
		p.open = false
		p.filter = ""
	case "up":
		if p.open {
			p.highlighted = util.Clamp(p.highlighted-1, 0, len(p.matches)-1)
		}
	case "down":
		if p.open {
			p.highlighted = util.Clamp(p.highlighted+1, 0, len(p.matches)-1)
		}
	case "backspace":
		if p.open && p.filter != "" {
			p.filter = p.filter[:len(p.filter)-1]
			p.refilter()
		}
	default:
		if p.open && msg.Type == tea.KeyRunes {
			p.filter += string(msg.Runes)
			p.refilter()
		}
	}
}

// refilter narrows the project list to fuzzy matches of the typed filter,
// best match first.
func (p *projectSelect) refilter() {
	if p.filter == "" {
		p.matches = p.projects
		p.highlighted = 0
		return
	}
	type scored struct {
		project jira.Project
		rank    int
	}
	var hits []scored
	for _, project := range p.projects {
		target := fmt.Sprintf("%s %s", project.Key, project.Name)
		rank := fuzzy.RankMatchNormalizedFold(p.filter, target)
		if rank >= 0 {
			hits = append(hits, scored{project: project, rank: rank})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].rank < hits[j].rank })
	p.matches = make([]jira.Project, len(hits))
	for i, hit := range hits {
		p.matches[i] = hit.project
	}
	p.highlighted = 0
}

var (
	projectOptionStyle      = lipgloss.NewStyle().PaddingLeft(1)
	projectHighlightedStyle = projectOptionStyle.
				Foreground(lipgloss.Color("212")).
				Bold(true)
)

func (p projectSelect) view() string {
	prompt := "Select a project"
	if p.selectedKey != "" {
		prompt = p.selectedKey
	}
	if p.open && p.filter != "" {
		prompt = p.filter
	}
	if !p.open {
		return prompt
	}

	maxRows := min(len(p.matches), 6)
	rows := make([]string, 0, maxRows+1)
	rows = append(rows, prompt)
	start := 0
	if p.highlighted >= maxRows {
		start = p.highlighted - maxRows + 1
	}
	for i := start; i < min(start+maxRows, len(p.matches)); i++ {
		project := p.matches[i]
		line := fmt.Sprintf("(%s) %s", project.Key, project.Name)
		if i == p.highlighted {
			rows = append(rows, projectHighlightedStyle.Render(line))
		} else {
			rows = append(rows, projectOptionStyle.Render(line))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
