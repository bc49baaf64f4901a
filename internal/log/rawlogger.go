package log

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"
)

// RawLogger dumps raw wire-frame payloads, for trace-level debugging of the
// control/input codec without needing a packet capture. kind names the
// frame's decoded message type (e.g. "Hello", "Input(device=3,events=1)"),
// letting a trace session correlate lines with the codec without re-parsing
// the hex dump by hand.
type RawLogger interface {
	Log(recv bool, kind string, data []byte)
}

// rawLogger implements RawLogger with thread-safe log.
type rawLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// NewRaw creates a new RawLogger. If writer is nil, returns a no-op logger.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w}
}

// Log emits a single-line raw frame-payload log with timestamp, decoded
// kind, and hex dump. recv=true means the payload was read off the stream;
// recv=false means it was just written.
func (r *rawLogger) Log(recv bool, kind string, data []byte) {
	if len(data) == 0 {
		return
	}
	if r.w == nil {
		return
	}

	dir := "send"
	if recv {
		dir = "recv"
	}

	var hexbuf bytes.Buffer
	const hexdigits = "0123456789abcdef"
	for i, b := range data {
		if i > 0 {
			hexbuf.WriteByte(' ')
		}
		hexbuf.WriteByte(hexdigits[b>>4])
		hexbuf.WriteByte(hexdigits[b&0x0f])
	}

	line := fmt.Sprintf("%s %s %s frame: %d bytes, hex: %s\n",
		time.Now().Format("2006/01/02 15:04:05"),
		dir,
		kind,
		len(data),
		hexbuf.String())

	r.mu.Lock()
	_, _ = r.w.Write([]byte(line))
	r.mu.Unlock()
}
