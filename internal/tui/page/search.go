// Package page contains the top-level screens of the application.
package page

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wbh1/jiratui/internal/jira"
	"github.com/wbh1/jiratui/internal/status"
	"github.com/wbh1/jiratui/internal/tui/components/assignee"
	"github.com/wbh1/jiratui/internal/tui/components/filters"
	"github.com/wbh1/jiratui/internal/tui/styles"
)

// searcher is the slice of the Jira client the page needs; narrowed for
// tests.
type searcher interface {
	AssignableUsers(ctx context.Context, query, issueKey string) ([]jira.User, error)
	Projects(ctx context.Context) ([]jira.Project, error)
	SearchIssues(ctx context.Context, jql string) ([]jira.Issue, error)
}

type projectsLoadedMsg struct {
	projects []jira.Project
	err      error
}

// userSearchResultMsg carries assignable-user search results back from the
// network, tagged with the sequence number of the request that produced
// them. Responses are not guaranteed to arrive in request order; the
// sequence number lets the page drop anything but the latest.
type userSearchResultMsg struct {
	seq       int
	forWidget string
	users     []jira.User
	err       error
}

type issueResultsMsg struct {
	seq    int
	issues []jira.Issue
	err    error
}

type searchKeyMap struct {
	RunSearch key.Binding
}

var searchKeys = searchKeyMap{
	RunSearch: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "run search"),
	),
}

// SearchModel is the main screen: the filter bar on top, search results
// below.
type SearchModel struct {
	client    searcher
	statusSvc status.Service
	styling   styles.Styling

	filters filters.Model
	results []jira.Issue

	// userSearchSeq and issueSearchSeq implement last-write-wins over
	// out-of-order responses: every request gets the next number and only
	// the newest outstanding one may apply its result.
	userSearchSeq  int
	issueSearchSeq int

	width  int
	height int
}

func NewSearch(client searcher, statusSvc status.Service, filterBar filters.Model, styling styles.Styling) SearchModel {
	return SearchModel{
		client:    client,
		statusSvc: statusSvc,
		styling:   styling,
		filters:   filterBar,
	}
}

func (m SearchModel) Init() tea.Cmd {
	return m.loadProjects()
}

func (m SearchModel) Update(msg tea.Msg) (SearchModel, tea.Cmd) {
	switch msg := msg.(type) {
	case assignee.UserSearchRequestedMsg:
		m.userSearchSeq++
		return m, m.searchUsers(m.userSearchSeq, msg)

	case userSearchResultMsg:
		if msg.seq != m.userSearchSeq {
			// A newer request is outstanding; this response is stale.
			return m, nil
		}
		if msg.err != nil {
			m.statusSvc.Error(fmt.Sprintf("assignee search failed: %v", msg.err))
			m.filters.DismissAssignee()
			return m, nil
		}
		options := make([]assignee.Candidate, len(msg.users))
		for i, user := range msg.users {
			options[i] = assignee.Candidate{Label: user.DisplayName, ID: user.ID()}
		}
		m.filters.SetAssigneeOptions(options)
		return m, nil

	case projectsLoadedMsg:
		if msg.err != nil {
			m.statusSvc.Error(fmt.Sprintf("loading projects failed: %v", msg.err))
			return m, nil
		}
		m.filters.SetProjects(msg.projects)
		m.statusSvc.Info(fmt.Sprintf("Loaded %d projects", len(msg.projects)))
		return m, nil

	case issueResultsMsg:
		if msg.seq != m.issueSearchSeq {
			return m, nil
		}
		if msg.err != nil {
			m.statusSvc.Error(fmt.Sprintf("search failed: %v", msg.err))
			return m, nil
		}
		m.results = msg.issues
		m.statusSvc.Info(fmt.Sprintf("%d work items", len(msg.issues)))
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, searchKeys.RunSearch) {
			m.issueSearchSeq++
			return m, m.searchIssues(m.issueSearchSeq)
		}
	}

	var cmd tea.Cmd
	m.filters, cmd = m.filters.Update(msg)
	return m, cmd
}

func (m *SearchModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.filters.SetWidth(width)
}

func (m SearchModel) loadProjects() tea.Cmd {
	return func() tea.Msg {
		projects, err := m.client.Projects(context.Background())
		return projectsLoadedMsg{projects: projects, err: err}
	}
}

func (m SearchModel) searchUsers(seq int, req assignee.UserSearchRequestedMsg) tea.Cmd {
	return func() tea.Msg {
		users, err := m.client.AssignableUsers(context.Background(), req.Query, req.ScopeIssueKey)
		return userSearchResultMsg{seq: seq, forWidget: req.For, users: users, err: err}
	}
}

func (m SearchModel) searchIssues(seq int) tea.Cmd {
	projectKey, workItemKey, assigneeID := m.filters.Selection()
	jql := buildJQL(projectKey, workItemKey, assigneeID)
	return func() tea.Msg {
		issues, err := m.client.SearchIssues(context.Background(), jql)
		return issueResultsMsg{seq: seq, issues: issues, err: err}
	}
}

// buildJQL assembles the search expression from the filter selections.
// Values are quoted; a fully empty filter set orders recent work first.
func buildJQL(projectKey, workItemKey, assigneeID string) string {
	var clauses []string
	if projectKey != "" {
		clauses = append(clauses, fmt.Sprintf("project = %q", projectKey))
	}
	if workItemKey != "" {
		clauses = append(clauses, fmt.Sprintf("key = %q", workItemKey))
	}
	if assigneeID != "" {
		clauses = append(clauses, fmt.Sprintf("assignee = %q", assigneeID))
	}
	expr := strings.Join(clauses, " AND ")
	if expr == "" {
		return "order by created DESC"
	}
	return expr + " order by created DESC"
}

var (
	resultKeyStyle     = lipgloss.NewStyle().Bold(true).PaddingRight(1)
	resultSummaryStyle = lipgloss.NewStyle().PaddingLeft(1)
	emptyResultsStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(1, 0)
)

func (m SearchModel) View() string {
	sections := []string{m.filters.View()}
	if len(m.results) == 0 {
		sections = append(sections, emptyResultsStyle.Render("No work items. ctrl+s searches with the current filters."))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	for _, issue := range m.results {
		line := lipgloss.JoinHorizontal(
			lipgloss.Top,
			resultKeyStyle.Render(issue.Key),
			m.styling.TypeStyle(issue.Fields.IssueType.Name).Render(issue.Fields.IssueType.Name),
			m.styling.StatusStyle(issue.Fields.Status.Name).PaddingLeft(1).Render(issue.Fields.Status.Name),
			resultSummaryStyle.Render(issue.Fields.Summary),
		)
		sections = append(sections, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
