package llm

import "unicode/utf8"

const (
	// DefaultContextLength is used when model context length is unknown.
	DefaultContextLength = 128000

	// TokenEstimateRatio estimates ~4 characters per token.
	TokenEstimateRatio = 4

	// SafetyMarginRatio reserves space for the response and overhead.
	SafetyMarginRatio = 0.80
)

// EstimateTokenCount gives a rough token count for a piece of text.
func EstimateTokenCount(text string) int {
	return utf8.RuneCountInString(text) / TokenEstimateRatio
}

// EstimateMessagesTokenCount estimates total tokens across all messages.
func EstimateMessagesTokenCount(system string, messages []Message) int {
	total := EstimateTokenCount(system)
	for _, msg := range messages {
		// role and structure overhead
		total += 10
		for _, block := range msg.Content {
			switch block.Type {
			case BlockText:
				total += EstimateTokenCount(block.Text)
			case BlockToolUse:
				total += 20
				total += EstimateTokenCount(block.Name)
				total += EstimateTokenCount(string(block.Input))
			case BlockToolResult:
				total += EstimateTokenCount(block.Content)
			}
		}
	}
	return total
}

// TrimMessagesResult contains the result of trimming messages.
type TrimMessagesResult struct {
	Messages        []Message
	TrimmedCount    int
	EstimatedTokens int
}

// TrimMessagesToFitContext drops the oldest messages until the estimate fits
// within the safety margin of contextLength. The final message is never
// removed, and the kept list always starts with a user message.
func TrimMessagesToFitContext(system string, messages []Message, contextLength int) TrimMessagesResult {
	if contextLength <= 0 {
		contextLength = DefaultContextLength
	}
	maxTokens := int(float64(contextLength) * SafetyMarginRatio)

	current := EstimateMessagesTokenCount(system, messages)
	if current <= maxTokens {
		return TrimMessagesResult{Messages: messages, EstimatedTokens: current}
	}

	result := messages
	trimmed := 0
	for current > maxTokens && len(result) > 1 {
		result = result[1:]
		trimmed++
		// the model API rejects a conversation opening with an assistant turn
		for len(result) > 1 && result[0].Role != RoleUser {
			result = result[1:]
			trimmed++
		}
		current = EstimateMessagesTokenCount(system, result)
	}

	out := make([]Message, len(result))
	copy(out, result)
	return TrimMessagesResult{Messages: out, TrimmedCount: trimmed, EstimatedTokens: current}
}

// TruncateText shortens text to maxChars runes, marking the cut.
func TruncateText(text string, maxChars int) string {
	if maxChars <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	return string(runes[:maxChars]) + "... [truncated]"
}
