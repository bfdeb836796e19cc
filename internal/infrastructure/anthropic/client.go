package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/janhq/jan-assistant/internal/domain/llm"
	"github.com/janhq/jan-assistant/internal/infrastructure/metrics"
)

// Client implements llm.Provider on the Anthropic Messages API.
type Client struct {
	sdk sdk.Client
}

// NewClient builds a client. The SDK's own retry loop is disabled; a failed
// call surfaces to the dialogue loop as is.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if strings.TrimSpace(baseURL) != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(timeout))
	}
	return &Client{sdk: sdk.NewClient(opts...)}
}

var _ llm.Provider = (*Client)(nil)

// CreateMessage sends one Messages API request.
func (c *Client) CreateMessage(ctx context.Context, req llm.MessageRequest) (*llm.MessageResponse, error) {
	params, err := toParams(req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	status := "success"
	defer func() {
		metrics.RecordProviderRequest("model", "anthropic", status)
		metrics.RecordExternalProviderLatency("anthropic", time.Since(start).Seconds())
	}()

	msg, err := c.sdk.Messages.New(ctx, params)
	if err != nil {
		status = "error"
		return nil, fmt.Errorf("anthropic messages: %w", err)
	}
	return fromMessage(msg), nil
}

func toParams(req llm.MessageRequest) (sdk.MessageNewParams, error) {
	params := sdk.MessageNewParams{
		Model:     sdk.Model(req.Model),
		MaxTokens: int64(req.MaxTokens),
	}
	if req.System != "" {
		params.System = []sdk.TextBlockParam{{Text: req.System}}
	}

	for _, msg := range req.Messages {
		blocks := make([]sdk.ContentBlockParamUnion, 0, len(msg.Content))
		for _, block := range msg.Content {
			switch block.Type {
			case llm.BlockText:
				blocks = append(blocks, sdk.NewTextBlock(block.Text))
			case llm.BlockToolUse:
				input := block.Input
				if len(input) == 0 {
					input = json.RawMessage(`{}`)
				}
				blocks = append(blocks, sdk.NewToolUseBlock(block.ID, input, block.Name))
			case llm.BlockToolResult:
				blocks = append(blocks, sdk.NewToolResultBlock(block.ToolUseID, block.Content, block.IsError))
			default:
				return params, fmt.Errorf("unsupported content block type %q", block.Type)
			}
		}
		switch msg.Role {
		case llm.RoleUser:
			params.Messages = append(params.Messages, sdk.NewUserMessage(blocks...))
		case llm.RoleAssistant:
			params.Messages = append(params.Messages, sdk.NewAssistantMessage(blocks...))
		default:
			return params, fmt.Errorf("unsupported message role %q", msg.Role)
		}
	}

	for _, def := range req.Tools {
		tool := sdk.ToolParam{
			Name:        def.Name,
			Description: sdk.String(def.Description),
			InputSchema: sdk.ToolInputSchemaParam{
				Properties: def.InputSchema["properties"],
				Required:   requiredNames(def.InputSchema["required"]),
			},
		}
		params.Tools = append(params.Tools, sdk.ToolUnionParam{OfTool: &tool})
	}
	return params, nil
}

func requiredNames(v any) []string {
	switch names := v.(type) {
	case []string:
		return names
	case []any:
		out := make([]string, 0, len(names))
		for _, n := range names {
			if s, ok := n.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func fromMessage(msg *sdk.Message) *llm.MessageResponse {
	resp := &llm.MessageResponse{
		ID:         msg.ID,
		Model:      string(msg.Model),
		StopReason: llm.StopReason(msg.StopReason),
		Usage: llm.Usage{
			InputTokens:  int(msg.Usage.InputTokens),
			OutputTokens: int(msg.Usage.OutputTokens),
		},
	}
	for _, block := range msg.Content {
		switch block.Type {
		case "text":
			resp.Content = append(resp.Content, llm.TextBlock(block.Text))
		case "tool_use":
			resp.Content = append(resp.Content, llm.ToolUseBlock(block.ID, block.Name, block.Input))
		}
	}
	return resp
}
