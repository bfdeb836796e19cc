package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/janhq/jan-assistant/internal/config"
	"github.com/janhq/jan-assistant/internal/domain/dialogue"
	"github.com/janhq/jan-assistant/internal/domain/document"
	"github.com/janhq/jan-assistant/internal/domain/email"
	"github.com/janhq/jan-assistant/internal/domain/llm"
	"github.com/janhq/jan-assistant/internal/domain/meeting"
	"github.com/janhq/jan-assistant/internal/domain/pizza"
	"github.com/janhq/jan-assistant/internal/domain/question"
	"github.com/janhq/jan-assistant/internal/domain/search"
	"github.com/janhq/jan-assistant/internal/domain/tool"
	"github.com/janhq/jan-assistant/internal/infrastructure/anthropic"
	"github.com/janhq/jan-assistant/internal/infrastructure/gcalendar"
	"github.com/janhq/jan-assistant/internal/infrastructure/llmprovider"
	"github.com/janhq/jan-assistant/internal/infrastructure/metrics"
	"github.com/janhq/jan-assistant/internal/infrastructure/pdf"
	"github.com/janhq/jan-assistant/internal/infrastructure/resend"
	searchclient "github.com/janhq/jan-assistant/internal/infrastructure/search"
	"github.com/janhq/jan-assistant/internal/tools"
)

// application holds the wired components shared by the commands.
type application struct {
	cfg      *config.Config
	log      zerolog.Logger
	registry *tool.Registry
	loop     *dialogue.Loop
}

func newApplication(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*application, error) {
	zlog.Logger = log

	loc, err := time.LoadLocation(cfg.CalendarTimezone)
	if err != nil {
		return nil, fmt.Errorf("CALENDAR_TIMEZONE %q: %w", cfg.CalendarTimezone, err)
	}

	registry := tool.NewRegistry(
		tool.WithTimeout(cfg.ToolTimeout),
		tool.WithMaxResultChars(cfg.MaxToolResultChars),
		tool.WithObserver(metrics.Observer{}),
		tool.WithLogger(log),
	)

	catalogue, err := pizza.DefaultCatalogue()
	if err != nil {
		return nil, fmt.Errorf("load pizza catalogue: %w", err)
	}

	deps := tools.Deps{
		Mailer:    email.NewMailer(newEmailSender(cfg, log), cfg.EmailFrom),
		Search:    search.NewService(newSearcher(cfg)),
		Scheduler: newScheduler(ctx, cfg, loc, log),
		Location:  loc,
		Orders:    pizza.NewOrderBook(catalogue),
		Documents: document.NewLoader(pdf.NewExtractor(), document.NewStore()),
		Questions: question.NewBook(),
	}
	if err := tools.Register(registry, deps); err != nil {
		return nil, err
	}
	log.Debug().Int("tools", registry.Len()).Msg("tool registry ready")

	loop := dialogue.NewLoop(newProvider(cfg), registry, dialogue.Config{
		Model:         cfg.Model,
		ModelName:     cfg.ModelName,
		MaxTokens:     cfg.MaxTokens,
		ContextTokens: cfg.ContextTokens,
		ModelTimeout:  cfg.ModelTimeout,
	}, metrics.Observer{}, log)

	return &application{cfg: cfg, log: log, registry: registry, loop: loop}, nil
}

// serveMetrics starts the Prometheus endpoint when METRICS_ADDR is set.
func (a *application) serveMetrics(ctx context.Context) {
	if a.cfg.MetricsAddr == "" {
		return
	}
	go func() {
		if err := metrics.Serve(ctx, a.cfg.MetricsAddr, a.log); err != nil {
			a.log.Error().Err(err).Msg("metrics endpoint stopped")
		}
	}()
}

// newProvider returns nil when no key is configured; the loop then reports
// the provider as unavailable on every turn.
func newProvider(cfg *config.Config) llm.Provider {
	key := cfg.ModelAPIKey()
	if key == "" {
		return nil
	}
	if cfg.LLMProvider == config.ProviderOpenAI {
		return llmprovider.NewClient(cfg.OpenAIBaseURL, key, cfg.ModelTimeout)
	}
	return anthropic.NewClient(key, cfg.AnthropicBaseURL, cfg.ModelTimeout)
}

func newEmailSender(cfg *config.Config, log zerolog.Logger) email.Sender {
	if strings.TrimSpace(cfg.ResendAPIKey) == "" {
		log.Warn().Msg("RESEND_API_KEY not set, email tools will report an error")
		return email.Unavailable{}
	}
	return resend.NewSender(cfg.ResendAPIKey)
}

func newSearcher(cfg *config.Config) search.Searcher {
	return searchclient.NewSearchClient(searchclient.ClientConfig{
		Engine:        searchclient.Engine(cfg.SearchEngine),
		SerperAPIKey:  cfg.SerperAPIKey,
		DuckDuckGoURL: cfg.DuckDuckGoURL,
		HTTPTimeout:   cfg.SearchTimeout,
	})
}

func newScheduler(ctx context.Context, cfg *config.Config, loc *time.Location, log zerolog.Logger) meeting.Scheduler {
	if cfg.SchedulerBackend != config.SchedulerGoogle {
		return meeting.NewStore(loc)
	}
	svc, err := gcalendar.NewService(ctx, cfg.GoogleCredentialsFile, cfg.GoogleTokenFile)
	if err != nil {
		log.Warn().Err(err).Msg("google calendar unavailable, meeting tools will report an error; run `assistant calendar-auth`")
		return meeting.Unavailable{Err: fmt.Errorf("google calendar not configured: %w", err)}
	}
	return gcalendar.NewScheduler(svc, cfg.GoogleCalendarID, loc)
}
