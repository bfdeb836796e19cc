package email

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// DefaultFrom is used when no sender address is configured.
const DefaultFrom = "onboarding@resend.dev"

var (
	// ErrNotConfigured is returned by the stub sender when no provider key is set.
	ErrNotConfigured = errors.New("RESEND_API_KEY not found in environment variables")
	// ErrMissingFields is returned when recipients, subject or body are empty.
	ErrMissingFields = errors.New("missing required fields (to, subject, body)")
)

// Message is one outbound email.
type Message struct {
	From    string
	To      []string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers messages through an email provider and returns the
// provider-assigned id.
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// Unavailable is the Sender used when the provider is not configured.
type Unavailable struct{}

// Send always fails with ErrNotConfigured.
func (Unavailable) Send(context.Context, Message) (string, error) {
	return "", ErrNotConfigured
}

var fallbackReplacer = strings.NewReplacer(
	"<br>", "\n",
	"<br/>", "\n",
	"<br />", "\n",
	"</p>", "\n",
	"<p>", "",
)

// PlainTextFallback derives a text body from HTML by rewriting line breaks and
// paragraph tags. Other markup is left untouched.
func PlainTextFallback(html string) string {
	return fallbackReplacer.Replace(html)
}

// WrapParagraph wraps plain text in a paragraph unless it already looks like HTML.
func WrapParagraph(body string) string {
	if strings.Contains(body, "<") && strings.Contains(body, ">") {
		return body
	}
	return "<p>" + body + "</p>"
}

// Mailer composes messages and hands them to a Sender.
type Mailer struct {
	sender Sender
	from   string
}

// NewMailer creates a Mailer. A nil sender behaves like Unavailable.
func NewMailer(sender Sender, from string) *Mailer {
	if sender == nil {
		sender = Unavailable{}
	}
	if strings.TrimSpace(from) == "" {
		from = DefaultFrom
	}
	return &Mailer{sender: sender, from: from}
}

// Send delivers an HTML body. plainText overrides the derived fallback when
// non-nil.
func (m *Mailer) Send(ctx context.Context, to []string, subject, body string, plainText *string) (string, error) {
	recipients := make([]string, 0, len(to))
	for _, addr := range to {
		if addr = strings.TrimSpace(addr); addr != "" {
			recipients = append(recipients, addr)
		}
	}
	if len(recipients) == 0 || strings.TrimSpace(subject) == "" || strings.TrimSpace(body) == "" {
		return "", ErrMissingFields
	}

	text := PlainTextFallback(body)
	if plainText != nil {
		text = *plainText
	}
	msg := Message{From: m.from, To: recipients, Subject: subject, HTML: body, Text: text}

	id, err := m.sender.Send(ctx, msg)
	if err != nil {
		return "", err
	}
	if id == "" {
		id = "Unknown"
	}
	return fmt.Sprintf("Email sent successfully! id=%s to=%s subject=%s", id, strings.Join(recipients, ", "), subject), nil
}
