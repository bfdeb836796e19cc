package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/jan-assistant/internal/domain/conversation"
)

type echoResponder struct {
	seen     [][]conversation.Turn
	hasLogID bool
}

func (r *echoResponder) Respond(ctx context.Context, history []conversation.Turn, text string) string {
	r.seen = append(r.seen, history)
	var buf bytes.Buffer
	probe := zerolog.Ctx(ctx).Output(&buf)
	probe.Info().Msg("probe")
	r.hasLogID = strings.Contains(buf.String(), "session_id")
	return fmt.Sprintf("echo %d: %s", len(history), text)
}

func (r *echoResponder) ModelName() string { return "TestModel" }

func runSession(t *testing.T, input string, window int) (string, *echoResponder, *Session) {
	t.Helper()
	responder := &echoResponder{}
	var out bytes.Buffer
	s := NewSession(Config{Version: "1.0.0", HistoryWindow: window}, responder, strings.NewReader(input), &out, zerolog.New(io.Discard))
	require.NoError(t, s.Run(context.Background()))
	return out.String(), responder, s
}

func TestSession_QuitWords(t *testing.T) {
	for _, word := range []string{"quit", "EXIT", "  Bye  "} {
		t.Run(word, func(t *testing.T) {
			out, responder, _ := runSession(t, word+"\nhello\n", 10)
			assert.Contains(t, out, goodbye)
			assert.Empty(t, responder.seen)
		})
	}
}

func TestSession_TurnsAndHistory(t *testing.T) {
	out, responder, s := runSession(t, "hi\n\n   \nhow are you\nquit\n", 10)

	assert.Contains(t, out, "Powered by TestModel")
	assert.Contains(t, out, replyPrefix+"echo 0: hi\n")
	assert.Contains(t, out, replyPrefix+"echo 1: how are you\n")

	require.Len(t, responder.seen, 2)
	assert.Empty(t, responder.seen[0], "the in-flight turn is not replayed")
	require.Len(t, responder.seen[1], 1)
	assert.Equal(t, "hi", responder.seen[1][0].UserText)
	assert.True(t, responder.hasLogID)

	assert.Equal(t, 2, s.History().Len())
}

func TestSession_HistoryWindow(t *testing.T) {
	_, responder, _ := runSession(t, "a\nb\nc\nd\nquit\n", 2)

	require.Len(t, responder.seen, 4)
	last := responder.seen[3]
	require.Len(t, last, 2)
	assert.Equal(t, "b", last[0].UserText)
	assert.Equal(t, "c", last[1].UserText)
}

func TestSession_EndOfInput(t *testing.T) {
	out, responder, _ := runSession(t, "hello", 10)
	assert.Len(t, responder.seen, 1)
	assert.True(t, strings.HasSuffix(out, goodbye+"\n"))
}

func TestSession_ContextCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	s := NewSession(Config{}, &echoResponder{}, pr, &out, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("session did not stop after cancel")
	}
	assert.Contains(t, out.String(), goodbye)
}
