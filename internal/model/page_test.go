package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrawledPageBody(t *testing.T) {
	t.Parallel()

	html := CrawledPage{HTML: "<p>hi</p>", Markdown: "ignored", Format: PageFormatHTML}
	assert.Equal(t, "<p>hi</p>", html.Body())

	md := CrawledPage{HTML: "ignored", Markdown: "# hi", Format: PageFormatMarkdown}
	assert.Equal(t, "# hi", md.Body())
}

func TestRecentTurns(t *testing.T) {
	t.Parallel()

	history := make([]ConversationTurn, 15)
	for i := range history {
		history[i] = ConversationTurn{Role: RoleUser, Content: string(rune('a' + i))}
	}

	t.Run("keeps last ten in order", func(t *testing.T) {
		t.Parallel()
		got := RecentTurns(history, 10)
		assert.Len(t, got, 10)
		assert.Equal(t, "f", got[0].Content)
		assert.Equal(t, "o", got[9].Content)
	})

	t.Run("short history unchanged", func(t *testing.T) {
		t.Parallel()
		got := RecentTurns(history[:3], 10)
		assert.Equal(t, history[:3], got)
	})

	t.Run("zero limit", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, RecentTurns(history, 0))
	})
}

func TestRoleLabel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "User", RoleUser.Label())
	assert.Equal(t, "Assistant", RoleAssistant.Label())
	assert.Equal(t, "User", Role("system").Label())
}

func TestRetrievalResultHasContent(t *testing.T) {
	t.Parallel()

	var nilResult *RetrievalResult
	assert.False(t, nilResult.HasContent())
	assert.False(t, (&RetrievalResult{PrimaryURL: "https://x"}).HasContent())
	assert.True(t, (&RetrievalResult{Content: "text"}).HasContent())
}
