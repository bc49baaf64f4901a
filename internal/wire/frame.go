package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// WriteFrame writes payload prefixed with its big-endian u32 length.
// Fails with ErrSerialization, without writing anything, if payload exceeds
// MaxMessageSize.
func WriteFrame(w io.Writer, payload []byte) error {
	if len(payload) > MaxMessageSize {
		return fmt.Errorf("%w: frame of %d bytes exceeds max %d", ErrSerialization, len(payload), MaxMessageSize)
	}
	var hdr [4]byte
	binary.BigEndian.PutUint32(hdr[:], uint32(len(payload)))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	if len(payload) == 0 {
		return nil
	}
	_, err := w.Write(payload)
	return err
}

// ReadFrame reads one length-prefixed payload. A clean end-of-stream before
// any length bytes are read returns io.EOF verbatim ("no more messages").
// End-of-stream mid-frame (partial length or partial payload) returns
// ErrStreamClosed. A length header over MaxMessageSize returns
// ErrDeserialization without attempting to read the body.
func ReadFrame(r io.Reader) ([]byte, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: %v", ErrStreamClosed, err)
	}
	length := binary.BigEndian.Uint32(hdr[:])
	if length > MaxMessageSize {
		return nil, fmt.Errorf("%w: announced frame length %d exceeds max %d", ErrDeserialization, length, MaxMessageSize)
	}
	if length == 0 {
		return nil, nil
	}
	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: %v", ErrStreamClosed, err)
		}
		return nil, err
	}
	return payload, nil
}
