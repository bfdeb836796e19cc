package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/janhq/jan-assistant/internal/domain/conversation"
)

const (
	promptPrefix = "🤖 You: "
	replyPrefix  = "🤖 Assistant: "
	goodbye      = "👋 Goodbye! Thanks for using the AI Personal Assistant!"
	rule         = "=============================================================="
)

var quitWords = map[string]struct{}{"quit": {}, "exit": {}, "bye": {}}

// Responder produces the reply for one user turn. It never fails; failures
// are rendered into the reply.
type Responder interface {
	Respond(ctx context.Context, history []conversation.Turn, text string) string
	ModelName() string
}

// Config holds the presentation settings of a Session.
type Config struct {
	Name          string
	Version       string
	HistoryWindow int
}

// Session is the interactive read-reply loop on a pair of streams.
type Session struct {
	cfg       Config
	responder Responder
	history   *conversation.History
	in        io.Reader
	out       io.Writer
	log       zerolog.Logger
}

// NewSession creates a session reading lines from in and writing to out.
func NewSession(cfg Config, responder Responder, in io.Reader, out io.Writer, log zerolog.Logger) *Session {
	if cfg.Name == "" {
		cfg.Name = "AI Personal Assistant"
	}
	if cfg.HistoryWindow < 0 {
		cfg.HistoryWindow = 0
	}
	return &Session{
		cfg:       cfg,
		responder: responder,
		history:   conversation.NewHistory(),
		in:        in,
		out:       out,
		log:       log.With().Str("component", "cli-session").Logger(),
	}
}

// History exposes the turns recorded so far.
func (s *Session) History() *conversation.History {
	return s.history
}

// Run prints the banner and handles lines until a quit word, end of input
// or ctx cancellation. A pending turn always completes before Run returns.
func (s *Session) Run(ctx context.Context) error {
	sessionID := uuid.NewString()
	logger := s.log.With().Str("session_id", sessionID).Logger()
	ctx = logger.WithContext(ctx)
	logger.Info().Str("model", s.responder.ModelName()).Msg("session started")

	s.printBanner()

	lines, readErr := s.readLines(ctx)
	for {
		fmt.Fprint(s.out, promptPrefix)

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out, "\n"+goodbye)
			return nil
		case line, ok = <-lines:
		}
		if !ok {
			fmt.Fprintln(s.out, "\n"+goodbye)
			return <-readErr
		}

		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}
		if _, quit := quitWords[strings.ToLower(text)]; quit {
			fmt.Fprintln(s.out, goodbye)
			return nil
		}

		s.turn(ctx, text)
	}
}

func (s *Session) turn(ctx context.Context, text string) {
	turn := s.history.Begin(text)
	window := s.history.Window(s.cfg.HistoryWindow)

	logger := zerolog.Ctx(ctx).With().Int("turn", s.history.Len()).Logger()
	logger.Debug().Int("history_turns", len(window)).Msg("processing turn")

	fmt.Fprint(s.out, replyPrefix)
	reply := s.responder.Respond(logger.WithContext(ctx), window, text)
	fmt.Fprintln(s.out, reply)
	fmt.Fprintln(s.out)

	s.history.Complete(turn, reply)
}

// readLines feeds stdin lines into a channel so the loop can also watch ctx.
// The channel closes at end of input; the scanner error, if any, follows on
// the error channel.
func (s *Session) readLines(ctx context.Context) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- nil
				return
			}
		}
		errc <- scanner.Err()
	}()
	return lines, errc
}

func (s *Session) printBanner() {
	title := s.cfg.Name
	if s.cfg.Version != "" {
		title += " v" + s.cfg.Version
	}
	fmt.Fprintln(s.out, "🤖"+rule[:60])
	fmt.Fprintf(s.out, "   %s\n", title)
	fmt.Fprintf(s.out, "   Powered by %s\n", s.responder.ModelName())
	fmt.Fprintln(s.out, "   Your intelligent personal assistant")
	fmt.Fprintln(s.out, rule)
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "📧 Email Management    📄 PDF Reading & Q&A    🌐 Web Search")
	fmt.Fprintln(s.out, "📅 Meeting Scheduling  🍕 Pizza Ordering       ❓ Smart Questions")
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "I can help you with emails, web search, meetings, pizza orders,")
	fmt.Fprintln(s.out, "and much more! Just chat with me naturally.")
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "Type 'quit' to exit")
	fmt.Fprintln(s.out, rule)
	fmt.Fprintln(s.out)
}
