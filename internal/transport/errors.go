package transport

import (
	"errors"
	"fmt"

	"github.com/edgelink/edgelinkd/internal/types"
)

// ErrConnection wraps a transport-level failure (dial, accept, stream
// open/close). Surfaced as PeerDisconnected by the daemon; never fatal.
var ErrConnection = errors.New("transport: connection error")

// ErrHandshake wraps a protocol-level handshake failure distinct from a
// version mismatch (malformed Hello/Welcome, unexpected message).
var ErrHandshake = errors.New("transport: handshake error")

// VersionMismatchError is returned when a peer's ProtocolVersion.Major
// differs from ours.
type VersionMismatchError struct {
	Remote types.ProtocolVersion
	Local  types.ProtocolVersion
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("transport: protocol version mismatch: remote=%d.%d local=%d.%d",
		e.Remote.Major, e.Remote.Minor, e.Local.Major, e.Local.Minor)
}
