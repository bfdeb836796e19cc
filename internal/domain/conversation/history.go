package conversation

import (
	"sync"
	"time"
)

// DefaultWindow is the number of completed turns replayed as model context.
const DefaultWindow = 10

// Turn is one user submission and the assistant reply attached to it.
type Turn struct {
	Timestamp     time.Time
	UserText      string
	AssistantText *string
}

// Completed reports whether the assistant reply has been attached.
func (t *Turn) Completed() bool {
	return t.AssistantText != nil
}

// History is the ordered, append-only transcript of a session.
type History struct {
	mu    sync.RWMutex
	turns []*Turn
	now   func() time.Time
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{now: time.Now}
}

// Begin records a new turn for text and returns it.
func (h *History) Begin(text string) *Turn {
	h.mu.Lock()
	defer h.mu.Unlock()
	turn := &Turn{Timestamp: h.now(), UserText: text}
	h.turns = append(h.turns, turn)
	return turn
}

// Complete attaches the assistant reply. A turn is completed at most once.
func (h *History) Complete(turn *Turn, reply string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if turn == nil || turn.AssistantText != nil {
		return
	}
	turn.AssistantText = &reply
}

// Window returns copies of the last n completed turns, oldest first.
// Turns still waiting for a reply are skipped.
func (h *History) Window(n int) []Turn {
	if n <= 0 {
		return nil
	}
	h.mu.RLock()
	defer h.mu.RUnlock()

	var out []Turn
	for i := len(h.turns) - 1; i >= 0 && len(out) < n; i-- {
		if h.turns[i].Completed() {
			out = append(out, *h.turns[i])
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Len returns the number of turns recorded, completed or not.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.turns)
}
