package wire

import (
	"io"

	"github.com/edgelink/edgelinkd/internal/log"
	"github.com/edgelink/edgelinkd/internal/types"
)

// ControlSender writes ControlMessage frames onto a stream.
type ControlSender struct {
	w   io.Writer
	raw log.RawLogger
}

// NewControlSender wraps w.
func NewControlSender(w io.Writer) *ControlSender { return &ControlSender{w: w} }

// SetRawLogger attaches a trace-level frame dumper; nil disables it.
func (s *ControlSender) SetRawLogger(raw log.RawLogger) { s.raw = raw }

// Send encodes and frames msg.
func (s *ControlSender) Send(msg types.ControlMessage) error {
	payload, err := EncodeControlMessage(msg)
	if err != nil {
		return err
	}
	if s.raw != nil {
		s.raw.Log(false, controlKindLabel(payload), payload)
	}
	return WriteFrame(s.w, payload)
}

// ControlReceiver reads ControlMessage frames from a stream.
type ControlReceiver struct {
	r   io.Reader
	raw log.RawLogger
}

// NewControlReceiver wraps r.
func NewControlReceiver(r io.Reader) *ControlReceiver { return &ControlReceiver{r: r} }

// SetRawLogger attaches a trace-level frame dumper; nil disables it.
func (r *ControlReceiver) SetRawLogger(raw log.RawLogger) { r.raw = raw }

// Recv reads and decodes the next frame. Returns io.EOF when the stream
// ends cleanly between frames.
func (r *ControlReceiver) Recv() (types.ControlMessage, error) {
	payload, err := ReadFrame(r.r)
	if err != nil {
		return nil, err
	}
	if r.raw != nil {
		r.raw.Log(true, controlKindLabel(payload), payload)
	}
	return DecodeControlMessage(payload)
}

// InputSender writes InputMessage frames onto a stream.
type InputSender struct {
	w   io.Writer
	raw log.RawLogger
}

// NewInputSender wraps w.
func NewInputSender(w io.Writer) *InputSender { return &InputSender{w: w} }

// SetRawLogger attaches a trace-level frame dumper; nil disables it.
func (s *InputSender) SetRawLogger(raw log.RawLogger) { s.raw = raw }

// Send encodes and frames msg.
func (s *InputSender) Send(msg types.InputMessage) error {
	payload, err := EncodeInputMessage(msg)
	if err != nil {
		return err
	}
	if s.raw != nil {
		s.raw.Log(false, inputKindLabel(payload), payload)
	}
	return WriteFrame(s.w, payload)
}

// InputReceiver reads InputMessage frames from a stream.
type InputReceiver struct {
	r   io.Reader
	raw log.RawLogger
}

// NewInputReceiver wraps r.
func NewInputReceiver(r io.Reader) *InputReceiver { return &InputReceiver{r: r} }

// SetRawLogger attaches a trace-level frame dumper; nil disables it.
func (r *InputReceiver) SetRawLogger(raw log.RawLogger) { r.raw = raw }

// Recv reads and decodes the next frame. Returns io.EOF when the stream
// ends cleanly between frames.
func (r *InputReceiver) Recv() (types.InputMessage, error) {
	payload, err := ReadFrame(r.r)
	if err != nil {
		return types.InputMessage{}, err
	}
	if r.raw != nil {
		r.raw.Log(true, inputKindLabel(payload), payload)
	}
	return DecodeInputMessage(payload)
}
