// Package daemon implements the single-threaded event loop that owns every
// peer session and the cursor focus (spec.md §4.3). It is the one place in
// the system that mutates session-routing state; everything else is a
// background task that turns I/O into an Event and hands it to the loop.
package daemon

import (
	"context"
	"log/slog"
	"sync"

	"github.com/edgelink/edgelinkd/internal/inputbackend"
	"github.com/edgelink/edgelinkd/internal/log"
	"github.com/edgelink/edgelinkd/internal/session"
	"github.com/edgelink/edgelinkd/internal/transport"
	"github.com/edgelink/edgelinkd/internal/types"
)

// eventQueueCapacity is the bound on the event channel (spec.md §5: "a
// bounded multi-producer channel of DaemonEvents (capacity ≥ 1024)").
const eventQueueCapacity = 1024

// Daemon is the single owner of all peer sessions and the cursor focus.
type Daemon struct {
	id     types.MachineId
	cfg    Config
	logger *slog.Logger
	raw    log.RawLogger

	capture   inputbackend.Capture
	emulation inputbackend.Emulation
	endpoint  transport.Endpoint

	status *StatusBroadcaster

	events chan Event
	ctx    context.Context

	// Everything below is mutated exclusively inside Run's loop goroutine.
	sessions     map[types.MachineId]*session.Session
	peerIdByName map[string]types.MachineId
	adjacency    *adjacencyMap
	pressed      hotkeySet
	cursorX      int32
	cursorY      int32
	controlling  *types.MachineId
	controlledBy *types.MachineId
	entryEdge    *types.ScreenEdge

	statusMu   sync.Mutex
	lastStatus Status
}

// New constructs a Daemon. capture, emulation, and endpoint are owned
// exclusively by the daemon from this point on (spec.md §4.4). raw, if
// non-nil, is attached to every session this daemon creates so their wire
// frames are mirrored to it (trace-level diagnostics); pass log.NewRaw(nil)
// to disable.
func New(id types.MachineId, cfg Config, capture inputbackend.Capture, emulation inputbackend.Emulation, endpoint transport.Endpoint, logger *slog.Logger, raw log.RawLogger) *Daemon {
	if logger == nil {
		logger = slog.Default()
	}
	if raw == nil {
		raw = log.NewRaw(nil)
	}
	return &Daemon{
		id:           id,
		cfg:          cfg,
		logger:       logger,
		raw:          raw,
		capture:      capture,
		emulation:    emulation,
		endpoint:     endpoint,
		status:       NewStatusBroadcaster(),
		events:       make(chan Event, eventQueueCapacity),
		sessions:     make(map[types.MachineId]*session.Session),
		peerIdByName: make(map[string]types.MachineId),
		pressed:      make(hotkeySet),
	}
}

// Subscribe registers an external observer of daemon status.
func (d *Daemon) Subscribe() (<-chan Status, func()) { return d.status.Subscribe() }

// Status returns the most recently published status snapshot.
func (d *Daemon) Status() Status {
	d.statusMu.Lock()
	defer d.statusMu.Unlock()
	return d.lastStatus
}

// Shutdown requests an orderly stop. Safe to call from any goroutine.
func (d *Daemon) Shutdown() {
	select {
	case d.events <- ShutdownEvent{}:
	default:
		// Queue is saturated; a direct send would block the caller
		// indefinitely under the spec's back-pressure model, so fall back
		// to a blocking send in its own goroutine rather than dropping the
		// only path to a clean stop.
		go func() { d.events <- ShutdownEvent{} }()
	}
}

// Run executes the startup sequence (spec.md §4.3 "Startup") and then the
// event loop until a Shutdown event is processed or ctx is cancelled.
func (d *Daemon) Run(ctx context.Context) error {
	d.ctx = ctx
	d.cursorX = int32(d.cfg.Screen.Width / 2)
	d.cursorY = int32(d.cfg.Screen.Height / 2)
	d.adjacency = buildAdjacencyMap(d.cfg.Name, d.cfg.Screens, d.cfg.ScreenAdjacency)

	captureSink := make(chan types.CapturedEvent, eventQueueCapacity)
	if err := d.capture.Start(ctx, captureSink); err != nil {
		return err
	}
	go d.pumpCapture(ctx, captureSink)

	go d.acceptLoop(ctx)

	for _, sc := range d.cfg.Screens {
		if sc.Address == "" {
			continue
		}
		go d.connect(ctx, sc)
	}

	go func() {
		<-ctx.Done()
		d.Shutdown()
	}()

	d.publishStatus()
	for {
		select {
		case ev := <-d.events:
			if _, isShutdown := ev.(ShutdownEvent); isShutdown {
				d.handleShutdown()
				return nil
			}
			d.handleEvent(ev)
			d.publishStatus()
		case <-ctx.Done():
			d.handleShutdown()
			return nil
		}
	}
}

func (d *Daemon) pumpCapture(ctx context.Context, sink <-chan types.CapturedEvent) {
	for {
		select {
		case ev, ok := <-sink:
			if !ok {
				return
			}
			select {
			case d.events <- CapturedInputEvent{Event: ev}:
			case <-ctx.Done():
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (d *Daemon) acceptLoop(ctx context.Context) {
	for {
		conn, err := d.endpoint.Accept(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			d.logger.Warn("accept failed", "error", err)
			continue
		}
		go d.handshakeResponder(ctx, conn)
	}
}

func (d *Daemon) connect(ctx context.Context, sc ScreenConfig) {
	conn, err := d.endpoint.Dial(ctx, sc.Address)
	if err != nil {
		d.logger.Warn("dial failed", "screen", sc.Name, "addr", sc.Address, "error", err)
		return
	}
	sess := session.New(conn, d.logger, d.raw)
	if err := sess.HandshakeInitiator(ctx, d.id, d.cfg.Name, d.cfg.Screen); err != nil {
		d.logger.Warn("handshake (initiator) failed", "screen", sc.Name, "error", err)
		return
	}
	d.adoptSession(ctx, sess)
}

func (d *Daemon) handshakeResponder(ctx context.Context, conn transport.Connection) {
	sess := session.New(conn, d.logger, d.raw)
	if err := sess.HandshakeResponder(ctx, d.id, d.cfg.Name, d.cfg.Screen); err != nil {
		d.logger.Warn("handshake (responder) failed", "remote", conn.RemoteAddress(), "error", err)
		return
	}
	d.adoptSession(ctx, sess)
}

// adoptSession announces local devices, hands the control receiver off to a
// dedicated reader task, and emits SessionReady. Per spec.md §9 "Ownership
// of streams", control and input are never read from the same task.
func (d *Daemon) adoptSession(ctx context.Context, sess *session.Session) {
	if err := sess.AnnounceDevices(d.cfg.LocalDevices); err != nil {
		d.logger.Warn("announce devices failed", "remote", sess.RemoteName(), "error", err)
		return
	}
	go d.pumpControl(ctx, sess)
	select {
	case d.events <- SessionReadyEvent{Session: sess}:
	case <-ctx.Done():
	}
}

func (d *Daemon) pumpControl(ctx context.Context, sess *session.Session) {
	recv := sess.ControlReceiver()
	for {
		msg, err := recv.Recv()
		if err != nil {
			select {
			case d.events <- PeerDisconnectedEvent{Peer: sess.RemoteMachineId()}:
			case <-ctx.Done():
			}
			return
		}
		select {
		case d.events <- PeerControlEvent{Peer: sess.RemoteMachineId(), Message: msg}:
		case <-ctx.Done():
			return
		}
	}
}

// pumpInput accepts the peer-opened input stream asynchronously (it may not
// appear in the QUIC accept queue until the peer's first data byte) and
// pumps every received InputMessage into the event queue.
func (d *Daemon) pumpInput(ctx context.Context, peer types.MachineId, sess *session.Session) {
	recv, err := sess.Connection().AcceptInputStream(ctx)
	if err != nil {
		d.logger.Warn("accept input stream failed", "peer", peer, "error", err)
		return
	}
	sess.SetInboundInput(recv)
	receiver := sess.InboundInputReceiver()
	for {
		msg, err := receiver.Recv()
		if err != nil {
			return
		}
		select {
		case d.events <- PeerInputEvent{Peer: peer, Message: msg}:
		case <-ctx.Done():
			return
		}
	}
}

func (d *Daemon) publishStatus() {
	st := Status{
		Controlling:  d.controlling,
		ControlledBy: d.controlledBy,
		SessionCount: len(d.sessions),
		CursorX:      d.cursorX,
		CursorY:      d.cursorY,
	}
	d.statusMu.Lock()
	d.lastStatus = st
	d.statusMu.Unlock()
	d.status.Publish(st)
}

func (d *Daemon) handleShutdown() {
	for _, sess := range d.sessions {
		_ = sess.Disconnect()
	}
	if err := d.capture.Shutdown(); err != nil {
		d.logger.Warn("capture shutdown failed", "error", err)
	}
	if err := d.emulation.Shutdown(); err != nil {
		d.logger.Warn("emulation shutdown failed", "error", err)
	}
	_ = d.endpoint.Close()
}
