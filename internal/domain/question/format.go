package question

import (
	"fmt"
	"strings"
	"time"
)

// FormatClarifying renders a clarifying question prompt.
func FormatClarifying(r Record) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "❓ Question: %s\n", r.Question)
	if r.Context != "" {
		fmt.Fprintf(&sb, "📝 Context: %s\n", r.Context)
	}
	fmt.Fprintf(&sb, "🏷️ Type: %s\n", r.QuestionType)
	if r.Required {
		sb.WriteString("⚠️ This question is required to proceed.\n")
	}
	fmt.Fprintf(&sb, "Question ID: %s\n", r.ID)
	sb.WriteString("\nPlease provide your answer:")
	return sb.String()
}

// FormatPersonal renders a personal information request.
func FormatPersonal(r Record) string {
	var sb strings.Builder
	sb.WriteString("🔒 Personal Information Request\n\n")
	fmt.Fprintf(&sb, "Information needed: %s\n", r.InfoType)
	fmt.Fprintf(&sb, "Question: %s\n", r.Question)
	if r.Purpose != "" {
		fmt.Fprintf(&sb, "Purpose: %s\n", r.Purpose)
	}
	if r.Required {
		sb.WriteString("⚠️ This information is required to proceed.\n")
	} else {
		sb.WriteString("ℹ️ This information is optional.\n")
	}
	fmt.Fprintf(&sb, "Question ID: %s\n", r.ID)
	sb.WriteString("\nPlease provide your answer:")
	return sb.String()
}

// FormatPreference renders a numbered preference question.
func FormatPreference(r Record) string {
	var sb strings.Builder
	sb.WriteString("🎯 Preference Question\n\n")
	fmt.Fprintf(&sb, "Question: %s\n", r.Question)
	if r.Context != "" {
		fmt.Fprintf(&sb, "Context: %s\n", r.Context)
	}
	sb.WriteString("\nAvailable options:\n")
	for i, option := range r.Options {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, option)
	}
	fmt.Fprintf(&sb, "Question ID: %s\n", r.ID)
	sb.WriteString("\nPlease select your preference (enter the number or option name):")
	return sb.String()
}

// FormatConfirmation renders a confirmation request.
func FormatConfirmation(r Record) string {
	var sb strings.Builder
	sb.WriteString("✅ Confirmation Required\n\n")
	fmt.Fprintf(&sb, "Action: %s\n", r.Action)
	if r.Context != "" {
		fmt.Fprintf(&sb, "Details: %s\n", r.Context)
	}
	if r.Consequences != "" {
		fmt.Fprintf(&sb, "Consequences: %s\n", r.Consequences)
	}
	fmt.Fprintf(&sb, "Question ID: %s\n", r.ID)
	sb.WriteString("\nDo you want to proceed? (yes/no)")
	return sb.String()
}

// FormatRecorded confirms a stored answer.
func FormatRecorded(r Record) string {
	return "✅ Response recorded: " + r.Response
}

// FormatNotFound renders an unknown question id.
func FormatNotFound(id string) string {
	return fmt.Sprintf("Error: Question ID %s not found.", id)
}

// FormatPending renders the unanswered questions.
func FormatPending(records []Record) string {
	if len(records) == 0 {
		return "No pending questions."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 Pending Questions (%d total):\n\n", len(records))
	for i, r := range records {
		required := "No"
		if r.Required {
			required = "Yes"
		}
		fmt.Fprintf(&sb, "%d. %s\n", i+1, r.Question)
		fmt.Fprintf(&sb, "   ID: %s\n", r.ID)
		fmt.Fprintf(&sb, "   Type: %s\n", r.QuestionType)
		fmt.Fprintf(&sb, "   Required: %s\n", required)
		fmt.Fprintf(&sb, "   Time: %s\n\n", r.AskedAt.Format(time.RFC3339))
	}
	return sb.String()
}

// FormatPreferences renders the recorded preferences.
func FormatPreferences(prefs []Preference) string {
	if len(prefs) == 0 {
		return "No preferences recorded."
	}
	var sb strings.Builder
	sb.WriteString("🎯 User Preferences:\n\n")
	for _, p := range prefs {
		fmt.Fprintf(&sb, "- %s: %s\n", p.Type, p.Value)
	}
	return sb.String()
}
