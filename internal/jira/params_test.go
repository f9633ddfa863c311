package jira

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssignableSearchParams(t *testing.T) {
	t.Parallel()

	t.Run("cloud sends the text under query", func(t *testing.T) {
		t.Parallel()
		params := AssignableSearchParams("adam", "", VariantCloud)
		assert.Equal(t, "adam", params.Get("query"))
		assert.False(t, params.Has("username"))
	})

	t.Run("data center sends the text under username", func(t *testing.T) {
		t.Parallel()
		params := AssignableSearchParams("adam", "", VariantDataCenter)
		assert.Equal(t, "adam", params.Get("username"))
		assert.False(t, params.Has("query"))
	})

	t.Run("empty text omits both parameter names", func(t *testing.T) {
		t.Parallel()
		for _, variant := range []Variant{VariantCloud, VariantDataCenter} {
			params := AssignableSearchParams("", "", variant)
			assert.False(t, params.Has("query"), "variant %s", variant)
			assert.False(t, params.Has("username"), "variant %s", variant)
		}
	})

	t.Run("whitespace-only text is treated as empty", func(t *testing.T) {
		t.Parallel()
		params := AssignableSearchParams("   ", "", VariantCloud)
		assert.Empty(t, params)
	})

	t.Run("text is trimmed before it goes on the wire", func(t *testing.T) {
		t.Parallel()
		params := AssignableSearchParams("  adam ", "", VariantDataCenter)
		assert.Equal(t, "adam", params.Get("username"))
	})

	t.Run("issue key is passed through unchanged for both variants", func(t *testing.T) {
		t.Parallel()
		for _, variant := range []Variant{VariantCloud, VariantDataCenter} {
			params := AssignableSearchParams("adam", "ABC-1", variant)
			assert.Equal(t, "ABC-1", params.Get("issueKey"), "variant %s", variant)
		}
	})

	t.Run("issue key without text still scopes the listing", func(t *testing.T) {
		t.Parallel()
		params := AssignableSearchParams("", "ABC-1", VariantDataCenter)
		assert.Equal(t, "ABC-1", params.Get("issueKey"))
		assert.False(t, params.Has("username"))
	})
}
