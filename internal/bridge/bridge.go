// Package bridge is the boundary to the native desktop host. The host is an
// opaque collaborator: it emits named intervention events and answers
// input-frequency queries. Nothing here assumes delivery ordering or
// deduplication beyond "at least one event per intervention".
package bridge

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// Kind is the payload of an intervention trigger.
type Kind string

const (
	// KindNotification asks for a weak intervention: an OS notification.
	KindNotification Kind = "notification"
	// KindOverlay asks for a strong intervention: a blocking overlay.
	KindOverlay Kind = "overlay"
)

// ParseKind maps a raw host payload to a Kind.
func ParseKind(raw string) (Kind, error) {
	switch Kind(raw) {
	case KindNotification, KindOverlay:
		return Kind(raw), nil
	default:
		return "", fmt.Errorf("unknown intervention payload %q", raw)
	}
}

// Event is one intervention trigger received from the host.
type Event struct {
	Kind       Kind
	ReceivedAt time.Time
}

// Source delivers intervention events. The channel is closed when the host
// connection goes away.
type Source interface {
	Events() <-chan Event
}

// Notifier delivers an OS-level notification. Actual delivery is the host's
// job; this is only the seam the UI calls through.
type Notifier interface {
	Notify(title, body string) error
}

// NopNotifier drops notifications, for tests and headless runs.
type NopNotifier struct{}

func (NopNotifier) Notify(string, string) error { return nil }

// ErrClosed is returned by Emit once the source has been closed.
var ErrClosed = errors.New("event source closed")

// ChanSource is a Source fed by Emit. Host integrations push decoded events
// into it; tests drive it directly.
type ChanSource struct {
	ch     chan Event
	mu     sync.Mutex
	closed bool
}

// NewChanSource returns a buffered source so a slow consumer does not block
// the host callback.
func NewChanSource() *ChanSource {
	return &ChanSource{ch: make(chan Event, 16)}
}

func (s *ChanSource) Events() <-chan Event { return s.ch }

// Emit decodes and queues a raw host payload. Unknown payloads are
// rejected; a full buffer drops the event rather than blocking the host.
// Lines arriving after Close are dropped with ErrClosed.
func (s *ChanSource) Emit(raw string) error {
	kind, err := ParseKind(raw)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	select {
	case s.ch <- Event{Kind: kind, ReceivedAt: time.Now()}:
	default:
	}
	return nil
}

// Close closes the event channel. Safe to call more than once and
// concurrently with Emit.
func (s *ChanSource) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}
