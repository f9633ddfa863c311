// Package styles holds the color lookup tables for rendering work items.
// User overrides from the config file are resolved once at startup; rendering
// code receives the resolved Styling value and never consults config.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wbh1/jiratui/internal/config"
)

var defaultStatusColors = map[string]string{
	"done":        "2",
	"in_review":   "108",
	"in_progress": "4",
	"to_do":       "3",
}

var defaultTypeColors = map[string]string{
	"bug":  "1",
	"epic": "3",
	"task": "4",
}

// Styling resolves work-item status and type names to lipgloss colors.
type Styling struct {
	statusColors map[string]string
	typeColors   map[string]string
}

// Resolve merges user overrides from the config over the defaults. Keys in
// the config's styling section are expected in lowercase with underscores,
// e.g. "in_progress".
func Resolve(cfg config.StylingConfig) Styling {
	s := Styling{
		statusColors: make(map[string]string, len(defaultStatusColors)),
		typeColors:   make(map[string]string, len(defaultTypeColors)),
	}
	for k, v := range defaultStatusColors {
		s.statusColors[k] = v
	}
	for k, v := range cfg.WorkItemStatusColors {
		if v != "" {
			s.statusColors[k] = v
		}
	}
	for k, v := range defaultTypeColors {
		s.typeColors[k] = v
	}
	for k, v := range cfg.WorkItemTypeColors {
		if v != "" {
			s.typeColors[k] = v
		}
	}
	return s
}

// StatusStyle returns the style for a work item status as named by Jira,
// e.g. "In Progress".
func (s Styling) StatusStyle(statusName string) lipgloss.Style {
	return colorStyle(s.statusColors[normalizeKey(statusName)])
}

// TypeStyle returns the style for a work item type name, e.g. "Bug".
func (s Styling) TypeStyle(typeName string) lipgloss.Style {
	return colorStyle(s.typeColors[normalizeKey(typeName)])
}

func colorStyle(color string) lipgloss.Style {
	if color == "" {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func normalizeKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}
