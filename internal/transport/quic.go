package transport

import (
	"context"
	"crypto/tls"
	"fmt"

	quic "github.com/quic-go/quic-go"

	"github.com/edgelink/edgelinkd/internal/wire"
)

// quicEndpoint is the quic-go backed Endpoint. A *quic.Transport is cheaply
// clonable in the sense the spec wants (spec.md §9 "shared transport
// handle"): callers obtain one via NewQUICEndpoint and may hand the same
// *quicEndpoint value to multiple goroutines freely, since quic-go's own
// Listener/Transport types are already safe for concurrent use.
type quicEndpoint struct {
	transport  *quic.Transport
	listener   *quic.Listener
	serverConf *tls.Config
	clientConf *tls.Config
	quicConf   *quic.Config
}

// NewQUICEndpoint binds a UDP socket at bindAddr and prepares an endpoint
// able to both accept (using serverConf) and dial (using clientConf).
func NewQUICEndpoint(bindAddr string, serverConf, clientConf *tls.Config) (Endpoint, error) {
	udpConn, err := newUDPConn(bindAddr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	t := &quic.Transport{Conn: udpConn}
	quicConf := &quic.Config{
		MaxIdleTimeout:  keepAliveIdleTimeout,
		KeepAlivePeriod: keepAlivePeriod,
	}
	ln, err := t.Listen(serverConf, quicConf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return &quicEndpoint{
		transport:  t,
		listener:   ln,
		serverConf: serverConf,
		clientConf: clientConf,
		quicConf:   quicConf,
	}, nil
}

func (e *quicEndpoint) Dial(ctx context.Context, addr string) (Connection, error) {
	udpAddr, err := resolveUDPAddr(addr)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve %s: %v", ErrConnection, addr, err)
	}
	conn, err := e.transport.Dial(ctx, udpAddr, e.clientConf, e.quicConf)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %v", ErrConnection, addr, err)
	}
	return &quicConnection{conn: conn}, nil
}

func (e *quicEndpoint) Accept(ctx context.Context) (Connection, error) {
	conn, err := e.listener.Accept(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: accept: %v", ErrConnection, err)
	}
	return &quicConnection{conn: conn}, nil
}

func (e *quicEndpoint) Close() error {
	_ = e.listener.Close()
	return e.transport.Close()
}

type quicConnection struct {
	conn *quic.Conn
}

func (c *quicConnection) OpenControlStream(ctx context.Context) (ControlStream, error) {
	s, err := c.conn.OpenStreamSync(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: open control stream: %v", ErrConnection, err)
	}
	return &quicControlStream{stream: s}, nil
}

func (c *quicConnection) AcceptControlStream(ctx context.Context) (ControlStream, error) {
	s, err := c.conn.AcceptStream(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: accept control stream: %v", ErrConnection, err)
	}
	return &quicControlStream{stream: s}, nil
}

func (c *quicConnection) OpenInputStream(ctx context.Context) (InputStream, error) {
	s, err := c.conn.OpenUniStreamSync(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: open input stream: %v", ErrConnection, err)
	}
	return &quicInputStream{stream: s}, nil
}

func (c *quicConnection) AcceptInputStream(ctx context.Context) (InputStreamReceiver, error) {
	s, err := c.conn.AcceptUniStream(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: accept input stream: %v", ErrConnection, err)
	}
	return &quicInputStreamReceiver{stream: s}, nil
}

func (c *quicConnection) RemoteAddress() string {
	return c.conn.RemoteAddr().String()
}

func (c *quicConnection) Close(reason string) error {
	return c.conn.CloseWithError(0, reason)
}

type quicControlStream struct {
	stream *quic.Stream
}

func (s *quicControlStream) Sender() *wire.ControlSender     { return wire.NewControlSender(s.stream) }
func (s *quicControlStream) Receiver() *wire.ControlReceiver { return wire.NewControlReceiver(s.stream) }
func (s *quicControlStream) Close() error                    { return s.stream.Close() }

type quicInputStream struct {
	stream *quic.SendStream
}

func (s *quicInputStream) Sender() *wire.InputSender { return wire.NewInputSender(s.stream) }
func (s *quicInputStream) Close() error              { return s.stream.Close() }

type quicInputStreamReceiver struct {
	stream *quic.ReceiveStream
}

func (s *quicInputStreamReceiver) Receiver() *wire.InputReceiver {
	return wire.NewInputReceiver(s.stream)
}
func (s *quicInputStreamReceiver) Close() error {
	s.stream.CancelRead(0)
	return nil
}
