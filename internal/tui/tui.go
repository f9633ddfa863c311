// Package tui assembles the application's bubbletea model tree.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wbh1/jiratui/internal/config"
	"github.com/wbh1/jiratui/internal/jira"
	"github.com/wbh1/jiratui/internal/status"
	"github.com/wbh1/jiratui/internal/tui/components/core"
	"github.com/wbh1/jiratui/internal/tui/components/filters"
	"github.com/wbh1/jiratui/internal/tui/page"
	"github.com/wbh1/jiratui/internal/tui/styles"
)

type Model struct {
	search    page.SearchModel
	statusBar core.StatusBar

	width  int
	height int
}

func New(ctx context.Context, cfg *config.Config, client *jira.Client, statusSvc status.Service) Model {
	styling := styles.Resolve(cfg.Styling)
	return Model{
		search:    page.NewSearch(client, statusSvc, filters.New(cfg), styling),
		statusBar: core.NewStatusBar(ctx, statusSvc),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.search.Init(), m.statusBar.Init())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.search.SetSize(msg.Width, msg.Height-1)
		m.statusBar.SetWidth(msg.Width)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	cmds = append(cmds, cmd)
	m.statusBar, cmd = m.statusBar.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, m.search.View(), m.statusBar.View())
}
