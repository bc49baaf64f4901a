package daemon

import (
	"sync"

	"github.com/edgelink/edgelinkd/internal/types"
)

// Status is a point-in-time snapshot published after every handled event
// (spec.md §4.3 "Status broadcast").
type Status struct {
	Controlling  *types.MachineId
	ControlledBy *types.MachineId
	SessionCount int
	CursorX      int32
	CursorY      int32
}

// StatusBroadcaster is a single-producer, multi-observer channel. Losing an
// observer — a full subscriber channel — is never an error; the publish is
// non-blocking and simply drops the update for that one slow observer.
type StatusBroadcaster struct {
	mu          sync.Mutex
	subscribers map[chan Status]struct{}
}

// NewStatusBroadcaster creates an empty broadcaster.
func NewStatusBroadcaster() *StatusBroadcaster {
	return &StatusBroadcaster{subscribers: make(map[chan Status]struct{})}
}

// Subscribe registers a new observer and returns its channel plus an
// unsubscribe function. The channel has a small buffer so a burst of
// publishes doesn't immediately starve a momentarily-busy observer.
func (b *StatusBroadcaster) Subscribe() (<-chan Status, func()) {
	ch := make(chan Status, 4)
	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	b.mu.Unlock()
	unsubscribe := func() {
		b.mu.Lock()
		delete(b.subscribers, ch)
		b.mu.Unlock()
	}
	return ch, unsubscribe
}

// Publish delivers st to every current observer, dropping it for any
// observer whose channel is currently full.
func (b *StatusBroadcaster) Publish(st Status) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subscribers {
		select {
		case ch <- st:
		default:
		}
	}
}
