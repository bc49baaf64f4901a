package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/edgelink/edgelinkd/internal/log"
	"github.com/edgelink/edgelinkd/internal/transport"
	"github.com/edgelink/edgelinkd/internal/types"
	"github.com/edgelink/edgelinkd/internal/wire"
)

// Session is the per-connection state described in spec.md §3/§4.2.
type Session struct {
	mu sync.Mutex

	conn    transport.Connection
	control transport.ControlStream

	// outboundInput is present only while state == StateControlling.
	outboundInput transport.InputStream
	// inboundInput is owned by a reader task the daemon spawns on Enter;
	// the session only stores it so Disconnect/HandleLeave can close it.
	inboundInput transport.InputStreamReceiver

	state State

	remoteId     types.MachineId
	remoteName   string
	remoteScreen types.ScreenGeometry

	// deviceMap translates a remote DeviceId to the VirtualDeviceId our
	// emulation backend allocated when mirroring it.
	deviceMap map[types.DeviceId]types.VirtualDeviceId

	logger *slog.Logger
	raw    log.RawLogger
}

// New wraps an established transport.Connection. The connection must not
// yet have a control stream opened or accepted. raw, if non-nil, receives a
// copy of every control/input frame sent or received on this session's
// streams (trace-level wire diagnostics); pass log.NewRaw(nil) to disable.
func New(conn transport.Connection, logger *slog.Logger, raw log.RawLogger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		conn:      conn,
		state:     StateConnected,
		deviceMap: make(map[types.DeviceId]types.VirtualDeviceId),
		logger:    logger.With("remote_addr", conn.RemoteAddress()),
		raw:       raw,
	}
}

// Connection returns the underlying transport connection, so the daemon can
// accept the peer-opened input stream asynchronously on Enter.
func (s *Session) Connection() transport.Connection { return s.conn }

// State returns the session's current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// RemoteMachineId returns the peer's MachineId, valid once past HelloSent.
func (s *Session) RemoteMachineId() types.MachineId {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remoteId
}

// RemoteName returns the peer's human name.
func (s *Session) RemoteName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remoteName
}

// RemoteScreen returns the peer's screen geometry as exchanged in the
// handshake (or a later ScreenUpdate).
func (s *Session) RemoteScreen() types.ScreenGeometry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remoteScreen
}

// SetRemoteScreen records a ScreenUpdate.
func (s *Session) SetRemoteScreen(g types.ScreenGeometry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remoteScreen = g
}

// HandshakeInitiator opens the control stream, exchanges Hello/Welcome as
// the initiator, and records the peer's identity. Returns
// *transport.VersionMismatchError if the peer's major version differs.
func (s *Session) HandshakeInitiator(ctx context.Context, ourId types.MachineId, ourName string, ourScreen types.ScreenGeometry) error {
	control, err := s.conn.OpenControlStream(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.control = control
	s.mu.Unlock()

	sender := s.ControlSender()
	if err := sender.Send(types.HelloMessage{
		Version: types.CurrentProtocolVersion, MachineId: ourId, Name: ourName, Screen: ourScreen,
	}); err != nil {
		return fmt.Errorf("%w: send hello: %v", transport.ErrHandshake, err)
	}
	s.setState(StateHelloSent)

	msg, err := s.ControlReceiver().Recv()
	if err != nil {
		return fmt.Errorf("%w: recv welcome: %v", transport.ErrHandshake, err)
	}
	welcome, ok := msg.(types.WelcomeMessage)
	if !ok {
		return fmt.Errorf("%w: expected Welcome, got %T", transport.ErrHandshake, msg)
	}
	if welcome.Version.Major != types.CurrentProtocolVersion.Major {
		return &transport.VersionMismatchError{Remote: welcome.Version, Local: types.CurrentProtocolVersion}
	}
	s.recordPeer(welcome.MachineId, welcome.Name, welcome.Screen)
	s.setState(StateIdle)
	return nil
}

// HandshakeResponder accepts the control stream, exchanges Hello/Welcome as
// the responder, and records the peer's identity.
func (s *Session) HandshakeResponder(ctx context.Context, ourId types.MachineId, ourName string, ourScreen types.ScreenGeometry) error {
	control, err := s.conn.AcceptControlStream(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.control = control
	s.mu.Unlock()

	msg, err := s.ControlReceiver().Recv()
	if err != nil {
		return fmt.Errorf("%w: recv hello: %v", transport.ErrHandshake, err)
	}
	hello, ok := msg.(types.HelloMessage)
	if !ok {
		return fmt.Errorf("%w: expected Hello, got %T", transport.ErrHandshake, msg)
	}
	s.setState(StateHelloSent)
	if hello.Version.Major != types.CurrentProtocolVersion.Major {
		return &transport.VersionMismatchError{Remote: hello.Version, Local: types.CurrentProtocolVersion}
	}

	if err := s.ControlSender().Send(types.WelcomeMessage{
		Version: types.CurrentProtocolVersion, MachineId: ourId, Name: ourName, Screen: ourScreen,
	}); err != nil {
		return fmt.Errorf("%w: send welcome: %v", transport.ErrHandshake, err)
	}
	s.recordPeer(hello.MachineId, hello.Name, hello.Screen)
	s.setState(StateIdle)
	return nil
}

func (s *Session) recordPeer(id types.MachineId, name string, screen types.ScreenGeometry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remoteId = id
	s.remoteName = name
	s.remoteScreen = screen
}

func (s *Session) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// ControlSender returns the control stream's sender, valid once the
// handshake has completed. The returned sender mirrors every frame to the
// session's RawLogger, if one is attached.
func (s *Session) ControlSender() *wire.ControlSender {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.control == nil {
		return nil
	}
	sender := s.control.Sender()
	sender.SetRawLogger(s.raw)
	return sender
}

// ControlReceiver hands off the control stream's receiver. Call once after
// handshake and pump it from a dedicated reader task — do not read control
// and input on the same task (spec.md §9). The returned receiver mirrors
// every frame to the session's RawLogger, if one is attached.
func (s *Session) ControlReceiver() *wire.ControlReceiver {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.control == nil {
		return nil
	}
	receiver := s.control.Receiver()
	receiver.SetRawLogger(s.raw)
	return receiver
}

// AnnounceDevices sends one DeviceAnnounce per local device.
func (s *Session) AnnounceDevices(devices []types.DeviceInfo) error {
	sender := s.ControlSender()
	for _, d := range devices {
		if err := sender.Send(types.DeviceAnnounceMessage{Info: d}); err != nil {
			return err
		}
	}
	return nil
}

// SendEnter opens the outbound input stream, sends Enter, and transitions
// to Controlling. Permitted only from Idle. The caller (daemon core) must
// not latch its own `controlling` field until EnterAck is observed.
func (s *Session) SendEnter(ctx context.Context, edge types.ScreenEdge, position int32) error {
	s.mu.Lock()
	if s.state != StateIdle {
		from := s.state
		s.mu.Unlock()
		return &InvalidTransitionError{Operation: "send_enter", From: from}
	}
	s.mu.Unlock()

	input, err := s.conn.OpenInputStream(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.outboundInput = input
	s.mu.Unlock()

	if err := s.ControlSender().Send(types.EnterMessage{Edge: edge, Position: position}); err != nil {
		return err
	}
	s.setState(StateControlling)
	return nil
}

// HandleEnter transitions Idle→Controlled on receipt of Enter and sends
// EnterAck. The caller is responsible for accepting the inbound input
// stream asynchronously via Connection().AcceptInputStream.
func (s *Session) HandleEnter() error {
	s.mu.Lock()
	if s.state != StateIdle {
		from := s.state
		s.mu.Unlock()
		return &InvalidTransitionError{Operation: "handle_enter", From: from}
	}
	s.state = StateControlled
	s.mu.Unlock()

	return s.ControlSender().Send(types.EnterAckMessage{})
}

// SetControlling latches Controlling when EnterAck arrives. SendEnter
// already moved the session to Controlling optimistically; this confirms
// it and is a no-op if so.
func (s *Session) SetControlling() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateIdle {
		s.state = StateControlling
	}
}

// SetInboundInput stores the accepted inbound input stream receiver so it
// can be torn down on HandleLeave/Disconnect.
func (s *Session) SetInboundInput(r transport.InputStreamReceiver) {
	s.mu.Lock()
	s.inboundInput = r
	s.mu.Unlock()
}

// InboundInputReceiver returns the current inbound input receiver, or nil
// if none is open. The returned receiver mirrors every frame to the
// session's RawLogger, if one is attached.
func (s *Session) InboundInputReceiver() *wire.InputReceiver {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inboundInput == nil {
		return nil
	}
	receiver := s.inboundInput.Receiver()
	receiver.SetRawLogger(s.raw)
	return receiver
}

// Leave sends Leave{edge, position} and returns the session to Idle.
// Permitted from Controlling or Controlled: a controller releasing
// voluntarily, or a controlled peer performing a reverse-barrier handoff
// back to its controller, both reduce to the same transition.
func (s *Session) Leave(edge types.ScreenEdge, position int32) error {
	s.mu.Lock()
	if s.state != StateControlling && s.state != StateControlled {
		from := s.state
		s.mu.Unlock()
		return &InvalidTransitionError{Operation: "leave", From: from}
	}
	s.mu.Unlock()

	if err := s.ControlSender().Send(types.LeaveMessage{Edge: edge, Position: position}); err != nil {
		return err
	}
	s.teardownFocusStreams()
	s.setState(StateIdle)
	return nil
}

// HandleLeave consumes a received Leave and returns the session to Idle.
func (s *Session) HandleLeave() error {
	s.mu.Lock()
	if s.state != StateControlling && s.state != StateControlled {
		from := s.state
		s.mu.Unlock()
		return &InvalidTransitionError{Operation: "handle_leave", From: from}
	}
	s.mu.Unlock()

	s.teardownFocusStreams()
	s.setState(StateIdle)
	return nil
}

func (s *Session) teardownFocusStreams() {
	s.mu.Lock()
	out := s.outboundInput
	in := s.inboundInput
	s.outboundInput = nil
	s.inboundInput = nil
	s.mu.Unlock()
	if out != nil {
		_ = out.Close()
	}
	if in != nil {
		_ = in.Close()
	}
}

// SendInput encodes and sends msg on the outbound input stream. Silently
// succeeds if no stream is currently open — a race with release is common
// and non-fatal.
func (s *Session) SendInput(msg types.InputMessage) error {
	s.mu.Lock()
	out := s.outboundInput
	s.mu.Unlock()
	if out == nil {
		return nil
	}
	sender := out.Sender()
	sender.SetRawLogger(s.raw)
	return sender.Send(msg)
}

// MapDevice records that remote DeviceId id is mirrored locally as vid.
func (s *Session) MapDevice(id types.DeviceId, vid types.VirtualDeviceId) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deviceMap[id] = vid
}

// UnmapDevice removes and returns the VirtualDeviceId mirroring remote
// DeviceId id, if any.
func (s *Session) UnmapDevice(id types.DeviceId) (types.VirtualDeviceId, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	vid, ok := s.deviceMap[id]
	if ok {
		delete(s.deviceMap, id)
	}
	return vid, ok
}

// ResolveDevice translates a remote DeviceId to its mirrored VirtualDeviceId.
func (s *Session) ResolveDevice(id types.DeviceId) (types.VirtualDeviceId, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	vid, ok := s.deviceMap[id]
	return vid, ok
}

// VirtualDevices returns every VirtualDeviceId currently mirrored from this
// peer, for teardown on disconnect.
func (s *Session) VirtualDevices() []types.VirtualDeviceId {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.VirtualDeviceId, 0, len(s.deviceMap))
	for _, vid := range s.deviceMap {
		out = append(out, vid)
	}
	return out
}

// Disconnect sends Bye and closes the connection with a benign reason.
func (s *Session) Disconnect() error {
	s.mu.Lock()
	control := s.control
	s.state = StateDisconnecting
	s.mu.Unlock()

	if control != nil {
		sender := control.Sender()
		sender.SetRawLogger(s.raw)
		_ = sender.Send(types.ByeMessage{})
	}
	s.teardownFocusStreams()
	return s.conn.Close("bye")
}
