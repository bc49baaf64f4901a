package adminapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"strings"
	"time"
)

// Client is the low-level admin-protocol client used by the CLI's
// stop/status/pair subcommands.
type Client struct {
	addr         string
	dialTimeout  time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
}

// NewClient creates a Client dialing addr ("host:port") with sane defaults.
func NewClient(addr string) *Client {
	return &Client{
		addr:         addr,
		dialTimeout:  3 * time.Second,
		readTimeout:  5 * time.Second,
		writeTimeout: 5 * time.Second,
	}
}

// Do sends path/payload and returns the single-line response body, with the
// trailing newline trimmed.
func (c *Client) Do(path, payload string) (string, error) {
	return c.DoCtx(context.Background(), path, payload)
}

// DoCtx is like Do but honors ctx and the client's configured timeouts.
func (c *Client) DoCtx(ctx context.Context, path, payload string) (string, error) {
	d := &net.Dialer{Timeout: c.dialTimeout}
	conn, err := d.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return "", fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	line := path
	if payload != "" {
		line = path + " " + payload
	}
	if c.writeTimeout > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	}
	if _, err := conn.Write([]byte(line + "\x00")); err != nil {
		return "", fmt.Errorf("write: %w", err)
	}

	if c.readTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(c.readTimeout))
	}
	body, err := io.ReadAll(conn)
	if err != nil && len(body) == 0 {
		return "", fmt.Errorf("read: %w", err)
	}
	return strings.TrimSuffix(string(body), "\n"), nil
}

// DecodeError attempts to parse resp as an *Error problem body; ok is false
// if resp isn't one (i.e. the call actually succeeded).
func DecodeError(resp string) (apiErr *Error, ok bool) {
	var e Error
	if json.Unmarshal([]byte(resp), &e) != nil || e.Status == 0 {
		return nil, false
	}
	return &e, true
}
