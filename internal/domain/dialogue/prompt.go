package dialogue

import (
	"strings"

	"github.com/janhq/jan-assistant/internal/domain/tool"
)

const promptPreamble = "You are a helpful personal AI assistant. Be friendly and conversational."

const promptClosing = `When the user asks you to perform these tasks, use the appropriate tool.
For simple greetings and conversation, just respond naturally without using tools.`

// SystemPrompt renders the fixed instruction string for the given tools.
func SystemPrompt(specs []tool.Spec) string {
	var sb strings.Builder
	sb.WriteString(promptPreamble)
	sb.WriteString("\n")
	if len(specs) > 0 {
		sb.WriteString("You have access to tools for:\n")
		for _, spec := range specs {
			sb.WriteString("- ")
			sb.WriteString(firstSentence(spec.Description))
			sb.WriteString(" (")
			sb.WriteString(spec.Name)
			sb.WriteString(")\n")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(promptClosing)
	return sb.String()
}

func firstSentence(description string) string {
	description = strings.TrimSpace(description)
	if idx := strings.Index(description, ". "); idx > 0 {
		return description[:idx]
	}
	return strings.TrimSuffix(description, ".")
}
