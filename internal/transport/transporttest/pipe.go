// Package transporttest provides an in-memory transport.Endpoint backed by
// net.Pipe, so daemon and session tests can exercise the full handshake,
// control, and input substream lifecycle without a real QUIC socket. It
// mirrors the mock-the-collaborator approach cross-control-input/src/mock.rs
// uses for capture/emulation, applied here to the transport layer.
package transporttest

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/edgelink/edgelinkd/internal/transport"
	"github.com/edgelink/edgelinkd/internal/wire"
)

// Network is a shared in-memory registry of addressable fake endpoints.
// Dialing an address registered by another Endpoint on the same Network
// delivers a paired connection to that endpoint's Accept.
type Network struct {
	mu        sync.Mutex
	endpoints map[string]*Endpoint
}

// NewNetwork creates an empty in-memory network.
func NewNetwork() *Network {
	return &Network{endpoints: make(map[string]*Endpoint)}
}

// Endpoint creates and registers a new fake endpoint at addr.
func (n *Network) Endpoint(addr string) *Endpoint {
	e := &Endpoint{
		network:  n,
		addr:     addr,
		acceptCh: make(chan *fakeConnection, 16),
		closed:   make(chan struct{}),
	}
	n.mu.Lock()
	n.endpoints[addr] = e
	n.mu.Unlock()
	return e
}

func (n *Network) lookup(addr string) (*Endpoint, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	e, ok := n.endpoints[addr]
	return e, ok
}

// Endpoint is a transport.Endpoint backed by an in-memory Network.
type Endpoint struct {
	network  *Network
	addr     string
	acceptCh chan *fakeConnection
	closed   chan struct{}
	once     sync.Once
}

var _ transport.Endpoint = (*Endpoint)(nil)

func (e *Endpoint) Dial(ctx context.Context, addr string) (transport.Connection, error) {
	target, ok := e.network.lookup(addr)
	if !ok {
		return nil, fmt.Errorf("transporttest: no endpoint registered at %q", addr)
	}
	dialerSide, acceptorSide := newFakeConnectionPair(e.addr, addr)
	select {
	case target.acceptCh <- acceptorSide:
	case <-target.closed:
		return nil, fmt.Errorf("transporttest: endpoint %q is closed", addr)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return dialerSide, nil
}

func (e *Endpoint) Accept(ctx context.Context) (transport.Connection, error) {
	select {
	case c := <-e.acceptCh:
		return c, nil
	case <-e.closed:
		return nil, fmt.Errorf("transporttest: endpoint %q is closed", e.addr)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (e *Endpoint) Close() error {
	e.once.Do(func() { close(e.closed) })
	return nil
}

// fakeConnection is one side of a paired in-memory connection. Opening a
// control or input stream creates a fresh net.Pipe and hands one end to the
// peer's matching Accept call over a one-slot buffered channel, so Open
// returns without waiting for Accept and Accept only unblocks once Open has
// actually been called — matching spec.md
// §4.2's requirement that the input stream be accepted asynchronously
// rather than assumed present.
type fakeConnection struct {
	localAddr, remoteAddr string
	controlCh             chan net.Conn
	inputCh               chan net.Conn
}

var _ transport.Connection = (*fakeConnection)(nil)

func newFakeConnectionPair(dialerAddr, acceptorAddr string) (dialer, acceptor *fakeConnection) {
	controlCh := make(chan net.Conn, 1)
	inputCh := make(chan net.Conn, 1)
	dialer = &fakeConnection{localAddr: dialerAddr, remoteAddr: acceptorAddr, controlCh: controlCh, inputCh: inputCh}
	acceptor = &fakeConnection{localAddr: acceptorAddr, remoteAddr: dialerAddr, controlCh: controlCh, inputCh: inputCh}
	return dialer, acceptor
}

func (c *fakeConnection) OpenControlStream(ctx context.Context) (transport.ControlStream, error) {
	local, remote := net.Pipe()
	select {
	case c.controlCh <- remote:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return &fakeControlStream{conn: local}, nil
}

func (c *fakeConnection) AcceptControlStream(ctx context.Context) (transport.ControlStream, error) {
	select {
	case conn := <-c.controlCh:
		return &fakeControlStream{conn: conn}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *fakeConnection) OpenInputStream(ctx context.Context) (transport.InputStream, error) {
	local, remote := net.Pipe()
	select {
	case c.inputCh <- remote:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return &fakeInputStream{conn: local}, nil
}

func (c *fakeConnection) AcceptInputStream(ctx context.Context) (transport.InputStreamReceiver, error) {
	select {
	case conn := <-c.inputCh:
		return &fakeInputStreamReceiver{conn: conn}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *fakeConnection) RemoteAddress() string { return c.remoteAddr }

func (c *fakeConnection) Close(reason string) error { return nil }

type fakeControlStream struct{ conn net.Conn }

func (s *fakeControlStream) Sender() *wire.ControlSender     { return wire.NewControlSender(s.conn) }
func (s *fakeControlStream) Receiver() *wire.ControlReceiver { return wire.NewControlReceiver(s.conn) }
func (s *fakeControlStream) Close() error                    { return s.conn.Close() }

type fakeInputStream struct{ conn net.Conn }

func (s *fakeInputStream) Sender() *wire.InputSender { return wire.NewInputSender(s.conn) }
func (s *fakeInputStream) Close() error               { return s.conn.Close() }

type fakeInputStreamReceiver struct{ conn net.Conn }

func (s *fakeInputStreamReceiver) Receiver() *wire.InputReceiver {
	return wire.NewInputReceiver(s.conn)
}
func (s *fakeInputStreamReceiver) Close() error { return s.conn.Close() }
