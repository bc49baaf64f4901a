// Package adminapi implements the small local control-plane protocol the
// CLI uses to query or stop a running daemon, and that a remote peer's CLI
// dials to fetch a fingerprint during pairing. Framing is adapted from the
// teacher's internal/server/api: a request is "<path>[ SP <payload>]\x00",
// a response is one JSON line followed by connection close.
package adminapi

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
)

// Server accepts admin connections and dispatches them through a Router.
// There is no authentication: both the stop/status path (loopback) and the
// pairing path (fingerprint is public information, that's the point of
// TOFU) need none, per spec.md's accept-all pairing model.
type Server struct {
	addr   string
	ln     net.Listener
	logger *slog.Logger
	router *Router
}

// New creates a Server that will listen on addr ("host:port") once Start is
// called.
func New(addr string, logger *slog.Logger) *Server {
	return &Server{addr: addr, logger: logger, router: NewRouter()}
}

// Router exposes the router for handler registration before Start.
func (s *Server) Router() *Router { return s.router }

// Addr returns the actual listening address once Start has succeeded.
func (s *Server) Addr() string {
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return s.addr
}

// Start listens on the configured address and serves requests in the
// background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.ln = ln
	go s.serve()
	return nil
}

// Close stops accepting new connections.
func (s *Server) Close() error {
	if s.ln == nil {
		return nil
	}
	return s.ln.Close()
}

func (s *Server) serve() {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			s.logger.Warn("admin accept failed", "error", err)
			return
		}
		go s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := s.logger.With("remote", conn.RemoteAddr().String())
	r := bufio.NewReader(conn)

	reqLine, err := r.ReadString('\x00')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			logger.Warn("admin read failed", "error", err)
		}
		return
	}
	reqLine = strings.TrimSuffix(reqLine, "\x00")
	if reqLine == "" {
		s.writeError(conn, errBadRequest("empty request"))
		return
	}

	path, payload := reqLine, ""
	if i := strings.IndexByte(reqLine, ' '); i >= 0 {
		path, payload = reqLine[:i], reqLine[i+1:]
	}

	handler, params := s.router.Match(path)
	if handler == nil {
		s.writeError(conn, errNotFound(fmt.Sprintf("unknown path: %s", path)))
		return
	}

	req := &Request{Ctx: ctx, Params: params, Payload: payload}
	res := &Response{}
	if err := handler(req, res, logger); err != nil {
		s.writeError(conn, err)
		return
	}
	s.writeOK(conn, res.JSON)
}

func (s *Server) writeError(w io.Writer, err error) {
	body, _ := json.Marshal(wrapError(err))
	fmt.Fprintf(w, "%s\n", body)
}

func (s *Server) writeOK(w io.Writer, body string) {
	if body == "" {
		fmt.Fprintln(w)
		return
	}
	fmt.Fprintf(w, "%s\n", body)
}
