// Package tracker keeps advisory bookkeeping of in-flight turns. It does not
// gate access; it exists so the internal API can show what is running when
// diagnosing contention or timeouts.
package tracker

import (
	"sort"
	"sync"
	"time"
)

const previewLen = 80

// Turn describes one in-flight turn.
type Turn struct {
	RequestID string    `json:"request_id"`
	SessionID string    `json:"session_id"`
	Preview   string    `json:"preview"`
	StartedAt time.Time `json:"started_at"`
}

// Tracker is safe for concurrent use. It is constructed once at process start
// and passed to whoever needs it; there is no package-level instance.
type Tracker struct {
	mu    sync.Mutex
	turns map[string]Turn
}

// New creates an empty Tracker.
func New() *Tracker {
	return &Tracker{turns: make(map[string]Turn)}
}

// Begin records a turn as in-flight. The message is truncated to a short
// preview; full content never lands in diagnostics.
func (t *Tracker) Begin(requestID, sessionID, message string) {
	preview := message
	if runes := []rune(preview); len(runes) > previewLen {
		preview = string(runes[:previewLen]) + "..."
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.turns[requestID] = Turn{
		RequestID: requestID,
		SessionID: sessionID,
		Preview:   preview,
		StartedAt: time.Now(),
	}
}

// End removes a turn from the in-flight set. Callers defer this on every
// exit path so completed and failed turns are cleared alike.
func (t *Tracker) End(requestID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.turns, requestID)
}

// Active returns a snapshot of in-flight turns, oldest first.
func (t *Tracker) Active() []Turn {
	t.mu.Lock()
	defer t.mu.Unlock()
	turns := make([]Turn, 0, len(t.turns))
	for _, turn := range t.turns {
		turns = append(turns, turn)
	}
	sort.Slice(turns, func(i, j int) bool {
		if !turns[i].StartedAt.Equal(turns[j].StartedAt) {
			return turns[i].StartedAt.Before(turns[j].StartedAt)
		}
		return turns[i].RequestID < turns[j].RequestID
	})
	return turns
}

// Len reports how many turns are currently in flight.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.turns)
}
