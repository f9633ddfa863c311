package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/wbh1/jiratui/internal/config"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	t.Run("defaults apply without overrides", func(t *testing.T) {
		t.Parallel()
		s := Resolve(config.StylingConfig{})
		assert.Equal(t, "2", s.statusColors["done"])
		assert.Equal(t, "1", s.typeColors["bug"])
	})

	t.Run("config overrides win", func(t *testing.T) {
		t.Parallel()
		s := Resolve(config.StylingConfig{
			WorkItemStatusColors: map[string]string{"done": "#00FF00"},
			WorkItemTypeColors:   map[string]string{"bug": "#FF0000"},
		})
		assert.Equal(t, "#00FF00", s.statusColors["done"])
		assert.Equal(t, "#FF0000", s.typeColors["bug"])
		// Untouched entries keep their defaults.
		assert.Equal(t, "4", s.statusColors["in_progress"])
	})

	t.Run("empty override values are ignored", func(t *testing.T) {
		t.Parallel()
		s := Resolve(config.StylingConfig{
			WorkItemStatusColors: map[string]string{"done": ""},
		})
		assert.Equal(t, "2", s.statusColors["done"])
	})
}

func TestStatusStyle(t *testing.T) {
	t.Parallel()
	s := Resolve(config.StylingConfig{})

	t.Run("status names are normalized", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, s.StatusStyle("in_progress"), s.StatusStyle("In Progress"))
	})

	t.Run("unknown names get an unstyled renderer", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, lipgloss.NewStyle(), s.StatusStyle("Blocked By Vendor"))
	})
}
