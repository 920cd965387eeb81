// Package transcript holds the append-only conversation record of one
// widget mount.
package transcript

import (
	"strings"
	"sync"

	"github.com/pfcsearch/widget-runtime/internal/domain/models"
)

// Transcript is an ordered, append-only sequence of messages plus a pending
// flag that is true exactly while one send is outstanding. Entries are never
// mutated, removed or reordered. The first entry is always the synthesized
// assistant greeting.
type Transcript struct {
	mu       sync.Mutex
	messages []models.Message
	pending  bool
}

// New creates a transcript opened with the given assistant greeting.
func New(greeting string) *Transcript {
	t := &Transcript{}
	t.messages = append(t.messages, models.NewAssistantMessage(greeting))
	return t
}

// AppendUser appends a user turn.
func (t *Transcript) AppendUser(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = append(t.messages, models.NewUserMessage(text))
}

// AppendAssistant appends an assistant turn.
func (t *Transcript) AppendAssistant(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = append(t.messages, models.NewAssistantMessage(text))
}

// Messages returns a copy of the transcript.
func (t *Transcript) Messages() []models.Message {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]models.Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of transcript entries.
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.messages)
}

// Pending reports whether a send is outstanding.
func (t *Transcript) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}

// BeginSend marks a send as outstanding. It returns false, without changing
// state, when one is already outstanding; at most one request is in flight
// per transcript.
func (t *Transcript) BeginSend() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending {
		return false
	}
	t.pending = true
	return true
}

// EndSend clears the pending flag. Every send attempt clears it exactly once
// on its resolution path.
func (t *Transcript) EndSend() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = false
}

// Sendable reports whether the given raw input would be accepted: trimmed
// non-empty and no send outstanding.
func (t *Transcript) Sendable(raw string) bool {
	if strings.TrimSpace(raw) == "" {
		return false
	}
	return !t.Pending()
}
