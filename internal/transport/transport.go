// Package transport provides a QUIC-backed framed transport: an Endpoint
// that both listens and dials, and per-connection control (bidirectional)
// and input (unidirectional) substreams carrying wire-protocol frames.
package transport

import (
	"context"
	"io"

	"github.com/edgelink/edgelinkd/internal/wire"
)

// ALPN is the token identifying this protocol during the TLS handshake.
const ALPN = "cross-control/0.1"

// ControlStream is the bidirectional substream carrying ControlMessage
// frames in both directions.
type ControlStream interface {
	Sender() *wire.ControlSender
	Receiver() *wire.ControlReceiver
	io.Closer
}

// InputStream is the unidirectional substream a controller opens to send
// InputMessage frames to the peer it controls.
type InputStream interface {
	Sender() *wire.InputSender
	io.Closer
}

// InputStreamReceiver is the matching receiving end of an InputStream,
// accepted by the controlled peer.
type InputStreamReceiver interface {
	Receiver() *wire.InputReceiver
	io.Closer
}

// Connection is one established peer connection, exposing the control and
// input substreams described in spec.md §4.1.
type Connection interface {
	// OpenControlStream opens the bidirectional control stream as the
	// initiator of the handshake.
	OpenControlStream(ctx context.Context) (ControlStream, error)
	// AcceptControlStream accepts the peer-opened control stream as the
	// handshake responder.
	AcceptControlStream(ctx context.Context) (ControlStream, error)
	// OpenInputStream opens the unidirectional input stream. Called by the
	// controller immediately before sending Enter.
	OpenInputStream(ctx context.Context) (InputStream, error)
	// AcceptInputStream accepts the peer-opened input stream. Called by the
	// controlled peer in a background task after handling Enter — it may
	// not be visible to the accept queue until the first input byte
	// arrives, so this must never be awaited on the core's event loop.
	AcceptInputStream(ctx context.Context) (InputStreamReceiver, error)
	// RemoteAddress returns a human-readable remote endpoint description.
	RemoteAddress() string
	// Close closes the connection with a benign application-level reason.
	Close(reason string) error
}

// Endpoint is a shared, cheaply-clonable transport endpoint that can both
// accept inbound connections and dial outbound ones.
type Endpoint interface {
	// Dial opens a new connection to addr.
	Dial(ctx context.Context, addr string) (Connection, error)
	// Accept blocks until an inbound connection arrives.
	Accept(ctx context.Context) (Connection, error)
	// Close shuts the endpoint down; pending Accept calls return an error.
	Close() error
}
