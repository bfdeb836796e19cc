package tools

import (
	"context"

	"github.com/janhq/jan-assistant/internal/domain/email"
	"github.com/janhq/jan-assistant/internal/domain/tool"
)

type sendEmailArgs struct {
	To        []string `json:"to" validate:"required,min=1,dive,email"`
	Subject   string   `json:"subject" validate:"required"`
	Body      string   `json:"body" validate:"required"`
	PlainText *string  `json:"plain_text"`
}

type sendSimpleEmailArgs struct {
	To      string `json:"to" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

func emailTools(mailer *email.Mailer) []binding {
	return []binding{
		{
			spec: tool.Spec{
				Name:        "send_email",
				Description: "Send an email to one or more recipients. The body may be HTML; a plain-text version is derived unless given.",
				Action:      "sending email",
				Params: []tool.Param{
					{Name: "to", Type: tool.TypeArray, Items: tool.TypeString, Description: "Recipient email addresses", Required: true},
					{Name: "subject", Type: tool.TypeString, Description: "Email subject line", Required: true},
					{Name: "body", Type: tool.TypeString, Description: "Email body (HTML or plain text)", Required: true},
					{Name: "plain_text", Type: tool.TypeString, Description: "Optional plain text version of the body"},
				},
			},
			handler: bound(func(ctx context.Context, in sendEmailArgs) (string, error) {
				return mailer.Send(ctx, in.To, in.Subject, email.WrapParagraph(in.Body), in.PlainText)
			}),
		},
		{
			spec: tool.Spec{
				Name:        "send_simple_email",
				Description: "Send a simple email to a single recipient.",
				Action:      "sending email",
				Params: []tool.Param{
					{Name: "to", Type: tool.TypeString, Description: "Recipient email address", Required: true},
					{Name: "subject", Type: tool.TypeString, Description: "Email subject line", Required: true},
					{Name: "message", Type: tool.TypeString, Description: "Plain text message", Required: true},
				},
			},
			handler: bound(func(ctx context.Context, in sendSimpleEmailArgs) (string, error) {
				plain := in.Message
				return mailer.Send(ctx, []string{in.To}, in.Subject, "<p>"+in.Message+"</p>", &plain)
			}),
		},
	}
}
