// Package tools binds the assistant's executors to tool specs and registers
// them with a tool.Registry.
package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/janhq/jan-assistant/internal/domain/document"
	"github.com/janhq/jan-assistant/internal/domain/email"
	"github.com/janhq/jan-assistant/internal/domain/meeting"
	"github.com/janhq/jan-assistant/internal/domain/pizza"
	"github.com/janhq/jan-assistant/internal/domain/question"
	"github.com/janhq/jan-assistant/internal/domain/search"
	"github.com/janhq/jan-assistant/internal/domain/tool"
)

// Deps holds the services executors run against. Nil groups are skipped.
type Deps struct {
	Mailer    *email.Mailer
	Search    *search.Service
	Scheduler meeting.Scheduler
	// Location interprets meeting dates and times.
	Location  *time.Location
	Orders    *pizza.OrderBook
	Documents *document.Loader
	Questions *question.Book
}

type binding struct {
	spec    tool.Spec
	handler tool.Handler
}

// Register adds every tool group backed by deps, in a fixed order.
func Register(reg *tool.Registry, deps Deps) error {
	var bindings []binding
	if deps.Mailer != nil {
		bindings = append(bindings, emailTools(deps.Mailer)...)
	}
	if deps.Search != nil {
		bindings = append(bindings, searchTools(deps.Search)...)
	}
	if deps.Scheduler != nil {
		loc := deps.Location
		if loc == nil {
			loc = time.UTC
		}
		bindings = append(bindings, meetingTools(deps.Scheduler, loc)...)
	}
	if deps.Orders != nil {
		bindings = append(bindings, pizzaTools(deps.Orders)...)
	}
	if deps.Documents != nil {
		bindings = append(bindings, documentTools(deps.Documents)...)
	}
	if deps.Questions != nil {
		bindings = append(bindings, questionTools(deps.Questions)...)
	}

	for _, b := range bindings {
		if err := reg.Register(b.spec, b.handler); err != nil {
			return fmt.Errorf("register %s: %w", b.spec.Name, err)
		}
	}
	return nil
}

// bound adapts a typed executor to a tool.Handler: args are decoded into a
// fresh T and validated before fn runs.
func bound[T any](fn func(ctx context.Context, in T) (string, error)) tool.Handler {
	return func(ctx context.Context, args tool.Args) (string, error) {
		var in T
		if err := tool.Bind(args, &in); err != nil {
			return "", err
		}
		return fn(ctx, in)
	}
}
