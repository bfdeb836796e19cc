package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateMessagesTokenCount(t *testing.T) {
	messages := []Message{
		UserText(strings.Repeat("a", 40)),
		{Role: RoleAssistant, Content: []ContentBlock{ToolUseBlock("c1", "abcd", []byte(`{"q":"x"}`))}},
		{Role: RoleUser, Content: []ContentBlock{ToolResultBlock("c1", strings.Repeat("b", 8), false)}},
	}
	// 3 * 10 overhead + 10 text + 20 + 1 + 2 + 2
	assert.Equal(t, 65, EstimateMessagesTokenCount("", messages))
}

func TestTrimMessagesToFitContext(t *testing.T) {
	big := strings.Repeat("x", 400)

	t.Run("fits without trimming", func(t *testing.T) {
		messages := []Message{UserText("hi"), AssistantText("hello"), UserText("again")}
		res := TrimMessagesToFitContext("", messages, 1000)
		assert.Equal(t, 0, res.TrimmedCount)
		assert.Len(t, res.Messages, 3)
	})

	t.Run("drops oldest and keeps a leading user message", func(t *testing.T) {
		messages := []Message{
			UserText(big), AssistantText(big),
			UserText(big), AssistantText(big),
			UserText("latest"),
		}
		res := TrimMessagesToFitContext("", messages, 300)
		require.NotEmpty(t, res.Messages)
		assert.Equal(t, RoleUser, res.Messages[0].Role)
		assert.Equal(t, "latest", res.Messages[len(res.Messages)-1].Content[0].Text)
		assert.Positive(t, res.TrimmedCount)
		assert.LessOrEqual(t, res.EstimatedTokens, 240)
	})

	t.Run("never removes the final message", func(t *testing.T) {
		messages := []Message{UserText(big), AssistantText(big), UserText(big)}
		res := TrimMessagesToFitContext("", messages, 10)
		require.Len(t, res.Messages, 1)
		assert.Equal(t, big, res.Messages[0].Content[0].Text)
	})
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", TruncateText("short", 10))
	assert.Equal(t, "abc... [truncated]", TruncateText("abcdef", 3))
	assert.Equal(t, "abcdef", TruncateText("abcdef", 0))
}

func TestMessageResponseHelpers(t *testing.T) {
	resp := &MessageResponse{Content: []ContentBlock{
		TextBlock("first"),
		ToolUseBlock("c1", "search_web", []byte(`{}`)),
		TextBlock(" second"),
	}}

	text, ok := resp.FirstText()
	assert.True(t, ok)
	assert.Equal(t, "first", text)
	assert.Equal(t, "first second", resp.JoinedText())
	require.Len(t, resp.ToolUses(), 1)
	assert.Equal(t, "c1", resp.ToolUses()[0].ID)

	_, ok = (&MessageResponse{}).FirstText()
	assert.False(t, ok)
}
