package dialogue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/janhq/jan-assistant/internal/domain/conversation"
	"github.com/janhq/jan-assistant/internal/domain/llm"
	"github.com/janhq/jan-assistant/internal/domain/tool"
)

var (
	// ErrProviderUnavailable is returned when no model provider is configured.
	ErrProviderUnavailable = errors.New("model provider not available")
	// ErrEmptyResponse is returned when the model reply carries no text.
	ErrEmptyResponse = errors.New("model returned no text content")
)

// MaxModelCalls bounds the model calls of one user turn: one that may request
// tools and one that consumes their results. Tool requests in the second
// response are discarded.
const MaxModelCalls = 2

// Observer receives per-call and per-turn notifications, typically metrics.
type Observer interface {
	ModelCallFinished(status string, elapsed time.Duration, usage llm.Usage)
	TurnFinished(status string, toolCalls int)
}

// Config holds the static settings of a Loop.
type Config struct {
	Model         string
	ModelName     string
	MaxTokens     int
	ContextTokens int
	ModelTimeout  time.Duration
	SystemPrompt  string
}

// Loop runs the tool-augmented dialogue protocol for one user turn at a time.
type Loop struct {
	provider llm.Provider
	registry *tool.Registry
	cfg      Config
	observer Observer
	log      zerolog.Logger
}

// Round is the structured outcome of one user turn.
type Round struct {
	Reply       string
	ModelCalls  int
	ToolResults []tool.Result
	// Discarded lists tool requests from the second response that were not executed.
	Discarded []tool.Call
	Usage     llm.Usage
}

// NewLoop wires a dialogue loop. provider may be nil, in which case every turn
// reports ErrProviderUnavailable.
func NewLoop(provider llm.Provider, registry *tool.Registry, cfg Config, observer Observer, log zerolog.Logger) *Loop {
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = SystemPrompt(registry.Specs())
	}
	if cfg.ModelName == "" {
		cfg.ModelName = cfg.Model
	}
	return &Loop{
		provider: provider,
		registry: registry,
		cfg:      cfg,
		observer: observer,
		log:      log.With().Str("component", "dialogue-loop").Logger(),
	}
}

// ModelName is the human readable model name used in error replies.
func (l *Loop) ModelName() string {
	return l.cfg.ModelName
}

// Respond runs one turn and always returns a user visible string.
func (l *Loop) Respond(ctx context.Context, history []conversation.Turn, userText string) string {
	round, err := l.Run(ctx, history, userText)
	if err != nil {
		l.logger(ctx).Error().Err(err).Msg("turn failed")
		return fmt.Sprintf("Error processing with %s: %s", l.cfg.ModelName, err.Error())
	}
	return round.Reply
}

// Run executes one turn: a first model call, at most one round of tool
// dispatch, and a second model call consuming the tool results.
func (l *Loop) Run(ctx context.Context, history []conversation.Turn, userText string) (round *Round, err error) {
	round = &Round{}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("unexpected failure: %v", rec)
		}
		if l.observer != nil {
			status := "success"
			if err != nil {
				status = "error"
			}
			l.observer.TurnFinished(status, len(round.ToolResults))
		}
	}()

	if l.provider == nil {
		return round, ErrProviderUnavailable
	}
	logger := l.logger(ctx)

	messages := BuildMessages(history, userText)
	trimmed := llm.TrimMessagesToFitContext(l.cfg.SystemPrompt, messages, l.cfg.ContextTokens)
	if trimmed.TrimmedCount > 0 {
		logger.Debug().Int("trimmed", trimmed.TrimmedCount).Int("estimated_tokens", trimmed.EstimatedTokens).Msg("trimmed history to fit context")
	}
	messages = trimmed.Messages

	first, err := l.call(ctx, round, messages)
	if err != nil {
		return round, err
	}

	toolUses := first.ToolUses()
	if first.StopReason != llm.StopToolUse && len(toolUses) == 0 {
		text, ok := first.FirstText()
		if !ok {
			return round, ErrEmptyResponse
		}
		round.Reply = text
		return round, nil
	}

	// Text interleaved with tool requests is only a fallback.
	fallback := first.JoinedText()
	for _, block := range toolUses {
		call := tool.CallFromBlock(block)
		result := l.registry.Dispatch(ctx, call)
		logger.Debug().Str("tool", call.Name).Str("call_id", call.ID).Bool("is_error", result.IsError).Msg("tool dispatched")
		round.ToolResults = append(round.ToolResults, result)
	}
	if len(round.ToolResults) == 0 {
		round.Reply = fallback
		return round, nil
	}

	resultBlocks := make([]llm.ContentBlock, 0, len(round.ToolResults))
	for _, result := range round.ToolResults {
		resultBlocks = append(resultBlocks, result.Block())
	}
	messages = append(messages,
		llm.Message{Role: llm.RoleAssistant, Content: first.Content},
		llm.Message{Role: llm.RoleUser, Content: resultBlocks},
	)

	second, err := l.call(ctx, round, messages)
	if err != nil {
		return round, err
	}
	for _, block := range second.ToolUses() {
		round.Discarded = append(round.Discarded, tool.CallFromBlock(block))
	}
	if len(round.Discarded) > 0 {
		logger.Warn().Int("discarded", len(round.Discarded)).Msg("second model response requested tools; one tool round per turn, requests not executed")
	}

	text, ok := second.FirstText()
	if !ok {
		return round, ErrEmptyResponse
	}
	round.Reply = text
	return round, nil
}

func (l *Loop) call(ctx context.Context, round *Round, messages []llm.Message) (*llm.MessageResponse, error) {
	if round.ModelCalls >= MaxModelCalls {
		return nil, fmt.Errorf("model call limit of %d reached", MaxModelCalls)
	}
	round.ModelCalls++

	callCtx := ctx
	if l.cfg.ModelTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, l.cfg.ModelTimeout)
		defer cancel()
	}

	req := llm.MessageRequest{
		Model:     l.cfg.Model,
		MaxTokens: l.cfg.MaxTokens,
		System:    l.cfg.SystemPrompt,
		Messages:  messages,
		Tools:     l.registry.Definitions(),
	}

	start := time.Now()
	resp, err := l.provider.CreateMessage(callCtx, req)
	elapsed := time.Since(start)
	if err != nil {
		l.observeModel("error", elapsed, llm.Usage{})
		return nil, err
	}
	if resp == nil {
		l.observeModel("error", elapsed, llm.Usage{})
		return nil, ErrEmptyResponse
	}
	l.observeModel("success", elapsed, resp.Usage)
	round.Usage.InputTokens += resp.Usage.InputTokens
	round.Usage.OutputTokens += resp.Usage.OutputTokens

	l.logger(ctx).Debug().
		Int("call", round.ModelCalls).
		Str("stop_reason", string(resp.StopReason)).
		Int("blocks", len(resp.Content)).
		Dur("elapsed", elapsed).
		Msg("model call completed")
	return resp, nil
}

func (l *Loop) observeModel(status string, elapsed time.Duration, usage llm.Usage) {
	if l.observer != nil {
		l.observer.ModelCallFinished(status, elapsed, usage)
	}
}

func (l *Loop) logger(ctx context.Context) *zerolog.Logger {
	if lg := zerolog.Ctx(ctx); lg != nil && lg.GetLevel() != zerolog.Disabled {
		return lg
	}
	return &l.log
}

// BuildMessages replays completed turns oldest first, then appends the new
// user text. Empty replies are not replayed; the Messages API rejects blank
// text blocks.
func BuildMessages(history []conversation.Turn, userText string) []llm.Message {
	messages := make([]llm.Message, 0, len(history)*2+1)
	for _, turn := range history {
		messages = append(messages, llm.UserText(turn.UserText))
		if turn.AssistantText != nil && strings.TrimSpace(*turn.AssistantText) != "" {
			messages = append(messages, llm.AssistantText(*turn.AssistantText))
		}
	}
	return append(messages, llm.UserText(userText))
}
