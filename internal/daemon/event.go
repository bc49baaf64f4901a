package daemon

import (
	"github.com/edgelink/edgelinkd/internal/session"
	"github.com/edgelink/edgelinkd/internal/types"
)

// Event is the sum type of everything the daemon's event loop consumes. Every
// I/O source (accept loop, per-peer control reader, per-peer input reader,
// the capture feed) runs as its own background task and delivers into the
// loop's queue rather than mutating daemon state directly (spec.md §4.3).
type Event interface {
	daemonEvent()
}

// IncomingConnectionEvent names an inbound connection by remote address.
// No task currently emits it and the event loop ignores it: the daemon never
// sees a connection before its handshake has completed (completed handshakes
// arrive as SessionReadyEvent), and half-handshaken connections are purely
// background-task-local state.
type IncomingConnectionEvent struct {
	RemoteAddr string
}

func (IncomingConnectionEvent) daemonEvent() {}

// CapturedInputEvent carries one locally captured input event.
type CapturedInputEvent struct {
	Event types.CapturedEvent
}

func (CapturedInputEvent) daemonEvent() {}

// PeerControlEvent carries one control message received from a peer's
// control-stream reader task.
type PeerControlEvent struct {
	Peer    types.MachineId
	Message types.ControlMessage
}

func (PeerControlEvent) daemonEvent() {}

// PeerInputEvent carries one input message received from a peer's
// input-stream reader task.
type PeerInputEvent struct {
	Peer    types.MachineId
	Message types.InputMessage
}

func (PeerInputEvent) daemonEvent() {}

// PeerDisconnectedEvent reports that a peer's control-stream reader detected
// connection loss or a codec error. A Bye message arrives as a
// PeerControlEvent and is handled there.
type PeerDisconnectedEvent struct {
	Peer types.MachineId
}

func (PeerDisconnectedEvent) daemonEvent() {}

// SessionReadyEvent reports that a handshake task (inbound accept or
// outbound connector) finished successfully and handed over a live session
// for the core to adopt.
type SessionReadyEvent struct {
	Session *session.Session
}

func (SessionReadyEvent) daemonEvent() {}

// ShutdownEvent is the only event that terminates the loop.
type ShutdownEvent struct{}

func (ShutdownEvent) daemonEvent() {}
