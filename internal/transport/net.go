package transport

import (
	"net"
	"time"
)

// keepAliveIdleTimeout bounds how long a silent peer is tolerated before
// the QUIC transport itself declares the connection dead (spec.md §5
// "Cancellation and timeouts": "a silent peer is only detected by
// transport-level keep-alive... or by the application Ping/Pong facility").
const keepAliveIdleTimeout = 30 * time.Second

// keepAlivePeriod is how often quic-go sends a keep-alive PING frame to
// prevent keepAliveIdleTimeout from firing on an otherwise-healthy link.
const keepAlivePeriod = 10 * time.Second

func newUDPConn(bindAddr string) (*net.UDPConn, error) {
	addr, err := net.ResolveUDPAddr("udp", bindAddr)
	if err != nil {
		return nil, err
	}
	return net.ListenUDP("udp", addr)
}

func resolveUDPAddr(addr string) (*net.UDPAddr, error) {
	return net.ResolveUDPAddr("udp", addr)
}
