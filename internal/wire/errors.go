// Package wire implements the deterministic, length-prefixed binary wire
// protocol: a u32 big-endian frame length followed by a compact binary
// encoding of a ControlMessage or InputMessage. Two implementations of this
// package, given the same value, must produce byte-identical output.
package wire

import "errors"

// MaxMessageSize is the largest payload (after the length prefix) this
// protocol permits. Larger frames fail fast: Serialization on send without
// writing, Deserialization on receive without reading the body.
const MaxMessageSize = 1 << 20 // 1 MiB

var (
	// ErrSerialization means a value could not be encoded (e.g. it would
	// exceed MaxMessageSize).
	ErrSerialization = errors.New("wire: serialization error")
	// ErrDeserialization means the received bytes could not be decoded, or
	// announced a frame length over MaxMessageSize.
	ErrDeserialization = errors.New("wire: deserialization error")
	// ErrStreamClosed is returned by Read* when the stream ended mid-frame
	// (after some but not all of the length-prefix or payload was read).
	// A clean end-of-stream before any length bytes is reported as io.EOF,
	// not this error — it means "no more messages", not a protocol fault.
	ErrStreamClosed = errors.New("wire: stream closed mid-frame")
)
