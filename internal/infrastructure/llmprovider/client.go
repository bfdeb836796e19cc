package llmprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/janhq/jan-assistant/internal/domain/llm"
	"github.com/janhq/jan-assistant/internal/infrastructure/metrics"
)

// Client implements llm.Provider against an OpenAI-compatible
// /v1/chat/completions endpoint such as jan llm-api.
type Client struct {
	httpClient *resty.Client
}

// NewClient creates a Resty-backed client.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 75 * time.Second
	}
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout).
		SetRetryCount(0)
	if apiKey != "" {
		httpClient.SetAuthToken(apiKey)
	}
	return &Client{httpClient: httpClient}
}

// Ensure interface compliance.
var _ llm.Provider = (*Client)(nil)

// CreateMessage translates the request to a chat completion and back.
func (c *Client) CreateMessage(ctx context.Context, req llm.MessageRequest) (*llm.MessageResponse, error) {
	body, err := toChatRequest(req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	status := "success"
	defer func() {
		metrics.RecordProviderRequest("model", "openai", status)
		metrics.RecordExternalProviderLatency("openai", time.Since(start).Seconds())
	}()

	var completion chatResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&completion).
		Post("/v1/chat/completions")
	if err != nil {
		status = "error"
		return nil, err
	}
	if resp.IsError() {
		status = "error"
		return nil, fmt.Errorf("llm api error: %d %s", resp.StatusCode(), resp.String())
	}
	if len(completion.Choices) == 0 {
		status = "error"
		return nil, fmt.Errorf("llm api returned no choices")
	}
	return fromChatResponse(&completion), nil
}

type chatRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens,omitempty"`
	Messages  []chatMessage `json:"messages"`
	Tools     []chatTool    `json:"tools,omitempty"`
}

type chatMessage struct {
	Role       string         `json:"role"`
	Content    *string        `json:"content"`
	ToolCalls  []chatToolCall `json:"tool_calls,omitempty"`
	ToolCallID string         `json:"tool_call_id,omitempty"`
}

type chatToolCall struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Function chatFunctionCall `json:"function"`
}

type chatFunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type chatTool struct {
	Type     string          `json:"type"`
	Function chatFunctionDef `json:"function"`
}

type chatFunctionDef struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

func toChatRequest(req llm.MessageRequest) (chatRequest, error) {
	out := chatRequest{Model: req.Model, MaxTokens: req.MaxTokens}
	if req.System != "" {
		out.Messages = append(out.Messages, chatMessage{Role: "system", Content: strPtr(req.System)})
	}

	for _, msg := range req.Messages {
		switch msg.Role {
		case llm.RoleAssistant:
			entry := chatMessage{Role: "assistant"}
			var text strings.Builder
			for _, block := range msg.Content {
				switch block.Type {
				case llm.BlockText:
					text.WriteString(block.Text)
				case llm.BlockToolUse:
					args := string(block.Input)
					if args == "" {
						args = "{}"
					}
					entry.ToolCalls = append(entry.ToolCalls, chatToolCall{
						ID:       block.ID,
						Type:     "function",
						Function: chatFunctionCall{Name: block.Name, Arguments: args},
					})
				}
			}
			if text.Len() > 0 || len(entry.ToolCalls) == 0 {
				entry.Content = strPtr(text.String())
			}
			out.Messages = append(out.Messages, entry)
		case llm.RoleUser:
			// Tool results become one "tool" message each; plain text stays a user message.
			var text strings.Builder
			for _, block := range msg.Content {
				switch block.Type {
				case llm.BlockToolResult:
					out.Messages = append(out.Messages, chatMessage{
						Role:       "tool",
						Content:    strPtr(block.Content),
						ToolCallID: block.ToolUseID,
					})
				case llm.BlockText:
					text.WriteString(block.Text)
				}
			}
			if text.Len() > 0 {
				out.Messages = append(out.Messages, chatMessage{Role: "user", Content: strPtr(text.String())})
			}
		default:
			return out, fmt.Errorf("unsupported message role %q", msg.Role)
		}
	}

	for _, def := range req.Tools {
		out.Tools = append(out.Tools, chatTool{
			Type: "function",
			Function: chatFunctionDef{
				Name:        def.Name,
				Description: def.Description,
				Parameters:  def.InputSchema,
			},
		})
	}
	return out, nil
}

func fromChatResponse(completion *chatResponse) *llm.MessageResponse {
	choice := completion.Choices[0]
	resp := &llm.MessageResponse{
		ID:         completion.ID,
		Model:      completion.Model,
		StopReason: stopReason(choice.FinishReason),
		Usage: llm.Usage{
			InputTokens:  completion.Usage.PromptTokens,
			OutputTokens: completion.Usage.CompletionTokens,
		},
	}
	if choice.Message.Content != nil && *choice.Message.Content != "" {
		resp.Content = append(resp.Content, llm.TextBlock(*choice.Message.Content))
	}
	for _, call := range choice.Message.ToolCalls {
		args := json.RawMessage(call.Function.Arguments)
		if !json.Valid(args) {
			args = json.RawMessage(`{}`)
		}
		resp.Content = append(resp.Content, llm.ToolUseBlock(call.ID, call.Function.Name, args))
	}
	return resp
}

func stopReason(finish string) llm.StopReason {
	switch finish {
	case "tool_calls", "function_call":
		return llm.StopToolUse
	case "length":
		return llm.StopMaxTokens
	case "stop":
		return llm.StopEndTurn
	default:
		return llm.StopReason(finish)
	}
}

func strPtr(s string) *string {
	return &s
}
