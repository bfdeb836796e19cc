package resend

import (
	"context"
	"fmt"
	"time"

	resendsdk "github.com/resend/resend-go/v2"

	"github.com/janhq/jan-assistant/internal/domain/email"
	"github.com/janhq/jan-assistant/internal/infrastructure/metrics"
)

// Sender delivers email through the Resend API.
type Sender struct {
	client *resendsdk.Client
}

// NewSender creates a Sender for the given API key.
func NewSender(apiKey string) *Sender {
	return NewSenderWithClient(resendsdk.NewClient(apiKey))
}

// NewSenderWithClient wraps an existing SDK client.
func NewSenderWithClient(client *resendsdk.Client) *Sender {
	return &Sender{client: client}
}

var _ email.Sender = (*Sender)(nil)

// Send posts one message and returns the Resend id.
func (s *Sender) Send(ctx context.Context, msg email.Message) (string, error) {
	start := time.Now()
	status := "success"
	defer func() {
		metrics.RecordProviderRequest("email", "resend", status)
		metrics.RecordExternalProviderLatency("resend", time.Since(start).Seconds())
	}()

	sent, err := s.client.Emails.SendWithContext(ctx, &resendsdk.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	})
	if err != nil {
		status = "error"
		return "", fmt.Errorf("resend send: %w", err)
	}
	return sent.Id, nil
}
