package tools

import (
	"context"
	"errors"

	"github.com/janhq/jan-assistant/internal/domain/question"
	"github.com/janhq/jan-assistant/internal/domain/tool"
)

type clarifyingArgs struct {
	Question     string `json:"question" validate:"required"`
	Context      string `json:"context"`
	QuestionType string `json:"question_type"`
	Required     bool   `json:"required"`
}

type personalArgs struct {
	InfoType string `json:"info_type" validate:"required"`
	Purpose  string `json:"purpose"`
	Required bool   `json:"required"`
}

type preferenceArgs struct {
	PreferenceType string   `json:"preference_type" validate:"required"`
	Options        []string `json:"options" validate:"required,min=1"`
	Context        string   `json:"context"`
}

type confirmationArgs struct {
	Action       string `json:"action" validate:"required"`
	Details      string `json:"details"`
	Consequences string `json:"consequences"`
}

type responseArgs struct {
	QuestionID string `json:"question_id" validate:"required"`
	Response   string `json:"response" validate:"required"`
}

func questionTools(book *question.Book) []binding {
	return []binding{
		{
			spec: tool.Spec{
				Name:        "ask_clarifying_question",
				Description: "Ask the user a clarifying question when a request is ambiguous.",
				Action:      "asking question",
				Params: []tool.Param{
					{Name: "question", Type: tool.TypeString, Description: "The question to ask", Required: true},
					{Name: "context", Type: tool.TypeString, Description: "Why the question is being asked"},
					{Name: "question_type", Type: tool.TypeString, Description: "Category of the question (default general)", Default: "general"},
					{Name: "required", Type: tool.TypeBoolean, Description: "Whether an answer is needed to proceed", Default: false},
				},
			},
			handler: bound(func(_ context.Context, in clarifyingArgs) (string, error) {
				return question.FormatClarifying(book.AskClarifying(in.Question, in.Context, in.QuestionType, in.Required)), nil
			}),
		},
		{
			spec: tool.Spec{
				Name:        "ask_personal_information",
				Description: "Ask the user for personal information such as name, email, phone or address.",
				Action:      "asking for personal information",
				Params: []tool.Param{
					{Name: "info_type", Type: tool.TypeString, Description: "Kind of information: name, email, phone, address, birthday, ...", Required: true},
					{Name: "purpose", Type: tool.TypeString, Description: "What the information is needed for"},
					{Name: "required", Type: tool.TypeBoolean, Description: "Whether the information is required (default true)", Default: true},
				},
			},
			handler: bound(func(_ context.Context, in personalArgs) (string, error) {
				return question.FormatPersonal(book.AskPersonal(in.InfoType, in.Purpose, in.Required)), nil
			}),
		},
		{
			spec: tool.Spec{
				Name:        "ask_preference_question",
				Description: "Ask the user to choose between options.",
				Action:      "asking preference question",
				Params: []tool.Param{
					{Name: "preference_type", Type: tool.TypeString, Description: "What the preference is about", Required: true},
					{Name: "options", Type: tool.TypeArray, Items: tool.TypeString, Description: "Options to choose from", Required: true},
					{Name: "context", Type: tool.TypeString, Description: "Additional context"},
				},
			},
			handler: bound(func(_ context.Context, in preferenceArgs) (string, error) {
				return question.FormatPreference(book.AskPreference(in.PreferenceType, in.Options, in.Context)), nil
			}),
		},
		{
			spec: tool.Spec{
				Name:        "ask_confirmation",
				Description: "Ask the user to confirm an action before doing it.",
				Action:      "asking for confirmation",
				Params: []tool.Param{
					{Name: "action", Type: tool.TypeString, Description: "The action to confirm", Required: true},
					{Name: "details", Type: tool.TypeString, Description: "Details of the action"},
					{Name: "consequences", Type: tool.TypeString, Description: "What happens if confirmed"},
				},
			},
			handler: bound(func(_ context.Context, in confirmationArgs) (string, error) {
				return question.FormatConfirmation(book.AskConfirmation(in.Action, in.Details, in.Consequences)), nil
			}),
		},
		{
			spec: tool.Spec{
				Name:        "get_user_response",
				Description: "Record the user's answer to a pending question.",
				Action:      "recording response",
				Params: []tool.Param{
					{Name: "question_id", Type: tool.TypeString, Description: "Question ID from the prompt", Required: true},
					{Name: "response", Type: tool.TypeString, Description: "The user's answer", Required: true},
				},
			},
			handler: bound(func(_ context.Context, in responseArgs) (string, error) {
				r, err := book.Answer(in.QuestionID, in.Response)
				if errors.Is(err, question.ErrNotFound) {
					return question.FormatNotFound(in.QuestionID), nil
				}
				if err != nil {
					return "", err
				}
				return question.FormatRecorded(r), nil
			}),
		},
		{
			spec: tool.Spec{
				Name:        "list_pending_questions",
				Description: "List questions the user has not answered yet.",
				Action:      "listing pending questions",
			},
			handler: bound(func(context.Context, noArgs) (string, error) {
				return question.FormatPending(book.Pending()), nil
			}),
		},
		{
			spec: tool.Spec{
				Name:        "get_user_preferences",
				Description: "Show the preferences the user has chosen so far.",
				Action:      "getting preferences",
			},
			handler: bound(func(context.Context, noArgs) (string, error) {
				return question.FormatPreferences(book.Preferences()), nil
			}),
		},
	}
}
