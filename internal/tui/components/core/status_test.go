package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbh1/jiratui/internal/status"
)

func TestStatusBarShowsLatestMessage(t *testing.T) {
	t.Parallel()
	svc := status.NewService()
	bar := NewStatusBar(t.Context(), svc)
	bar.SetWidth(80)

	svc.Error("search failed")

	msg := bar.Init()()
	require.IsType(t, statusEventMsg{}, msg)

	bar, _ = bar.Update(msg)
	assert.Contains(t, bar.View(), "search failed")
}

func TestStatusBarExpiry(t *testing.T) {
	t.Parallel()
	svc := status.NewService()
	bar := NewStatusBar(t.Context(), svc)
	bar.SetWidth(80)

	bar, _ = bar.Update(statusEventMsg{message: status.Message{
		Level:     status.LevelInfo,
		Text:      "first",
		Timestamp: time.Now(),
	}})
	firstGen := bar.clearGen

	// A newer message arrives before the first expiry tick fires.
	bar, _ = bar.Update(statusEventMsg{message: status.Message{
		Level:     status.LevelInfo,
		Text:      "second",
		Timestamp: time.Now(),
	}})

	// The stale tick must not clear the newer message.
	bar, _ = bar.Update(clearTickMsg{gen: firstGen})
	assert.Contains(t, bar.View(), "second")

	bar, _ = bar.Update(clearTickMsg{gen: bar.clearGen})
	assert.NotContains(t, bar.View(), "second")
}
