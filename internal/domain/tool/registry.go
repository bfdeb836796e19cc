package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/janhq/jan-assistant/internal/domain/llm"
)

// ErrDuplicateTool is returned when two tools share a name.
var ErrDuplicateTool = errors.New("duplicate tool name")

// Args is the decoded argument mapping of a call, with defaults applied.
type Args map[string]any

// Handler executes one tool. A returned error becomes an "Error <action>: ..."
// result; it never aborts the turn.
type Handler func(ctx context.Context, args Args) (string, error)

// Observer receives one notification per dispatched call.
type Observer interface {
	ToolCallFinished(name string, status string, elapsed time.Duration)
}

// Dispatch statuses reported to the Observer.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusUnknown = "unknown"
)

type entry struct {
	spec    Spec
	handler Handler
}

// Registry maps tool names to executors. It is filled at startup and read-only
// afterwards.
type Registry struct {
	mu       sync.RWMutex
	order    []string
	entries  map[string]entry
	timeout  time.Duration
	maxChars int
	observer Observer
	log      zerolog.Logger
}

// Option customises a Registry.
type Option func(*Registry)

// WithTimeout bounds every handler invocation.
func WithTimeout(d time.Duration) Option {
	return func(r *Registry) { r.timeout = d }
}

// WithMaxResultChars truncates result content longer than n runes.
func WithMaxResultChars(n int) Option {
	return func(r *Registry) { r.maxChars = n }
}

// WithObserver attaches a dispatch observer, typically metrics.
func WithObserver(o Observer) Option {
	return func(r *Registry) { r.observer = o }
}

// WithLogger sets the registry logger.
func WithLogger(log zerolog.Logger) Option {
	return func(r *Registry) { r.log = log.With().Str("component", "tool-registry").Logger() }
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		entries: make(map[string]entry),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a tool. Names are unique and a required parameter may not
// declare a default.
func (r *Registry) Register(spec Spec, handler Handler) error {
	if err := spec.validate(); err != nil {
		return err
	}
	if handler == nil {
		return fmt.Errorf("%w: %s has no handler", ErrInvalidSpec, spec.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[spec.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTool, spec.Name)
	}
	r.entries[spec.Name] = entry{spec: spec, handler: handler}
	r.order = append(r.order, spec.Name)
	return nil
}

// Specs returns the registered specs in registration order.
func (r *Registry) Specs() []Spec {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Spec, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.entries[name].spec)
	}
	return out
}

// Definitions returns the model-facing tool list in registration order.
func (r *Registry) Definitions() []llm.ToolDefinition {
	specs := r.Specs()
	out := make([]llm.ToolDefinition, 0, len(specs))
	for _, spec := range specs {
		out = append(out, spec.Definition())
	}
	return out
}

// Lookup returns the spec registered under name.
func (r *Registry) Lookup(name string) (Spec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	return e.spec, ok
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Dispatch executes call and always returns exactly one Result for it.
func (r *Registry) Dispatch(ctx context.Context, call Call) (result Result) {
	start := time.Now()
	result = Result{CallID: call.ID, ToolName: call.Name}

	r.mu.RLock()
	e, ok := r.entries[call.Name]
	r.mu.RUnlock()
	if !ok {
		result.Content = fmt.Sprintf("Unknown tool: %s", call.Name)
		result.IsError = true
		r.log.Warn().Str("tool", call.Name).Str("call_id", call.ID).Msg("model requested unknown tool")
		r.observe(call.Name, StatusUnknown, start)
		return result
	}

	action := e.spec.action()
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error().Str("tool", call.Name).Interface("panic", rec).Msg("tool handler panicked")
			result.Content = fmt.Sprintf("Error %s: %v", action, rec)
			result.IsError = true
			r.observe(call.Name, StatusError, start)
		}
	}()

	args, err := decodeArgs(e.spec, call.Input)
	if err != nil {
		return r.fail(result, action, err, start)
	}

	callCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	r.log.Debug().Str("tool", call.Name).Str("call_id", call.ID).Msg("dispatching tool")
	content, err := e.handler(callCtx, args)
	if err != nil {
		return r.fail(result, action, err, start)
	}

	result.Content = llm.TruncateText(content, r.maxChars)
	r.observe(call.Name, StatusSuccess, start)
	return result
}

func (r *Registry) fail(result Result, action string, err error, start time.Time) Result {
	r.log.Warn().Err(err).Str("tool", result.ToolName).Str("call_id", result.CallID).Msg("tool call failed")
	result.Content = llm.TruncateText(fmt.Sprintf("Error %s: %s", action, err.Error()), r.maxChars)
	result.IsError = true
	r.observe(result.ToolName, StatusError, start)
	return result
}

func (r *Registry) observe(name, status string, start time.Time) {
	if r.observer != nil {
		r.observer.ToolCallFinished(name, status, time.Since(start))
	}
}

// decodeArgs parses the raw input, fills defaults for omitted optional
// parameters and coerces loosely typed values to their declared types.
func decodeArgs(spec Spec, raw json.RawMessage) (Args, error) {
	args := Args{}
	trimmed := strings.TrimSpace(string(raw))
	if trimmed != "" && trimmed != "null" {
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
	}
	for _, p := range spec.Params {
		value, present := args[p.Name]
		if !present || value == nil {
			if p.Default != nil {
				args[p.Name] = p.Default
			}
			continue
		}
		args[p.Name] = coerce(p, value)
	}
	return args, nil
}

func coerce(p Param, value any) any {
	switch p.Type {
	case TypeInteger:
		if s, ok := value.(string); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
				return n
			}
		}
	case TypeNumber:
		if s, ok := value.(string); ok {
			if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
				return f
			}
		}
	case TypeBoolean:
		if s, ok := value.(string); ok {
			if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
				return b
			}
		}
	case TypeArray:
		if s, ok := value.(string); ok {
			return []any{s}
		}
	}
	return value
}
