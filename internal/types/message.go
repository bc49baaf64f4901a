package types

// ControlMessage is the sum type carried on the bidirectional control
// stream. Wire discriminants are stable ordinals assigned in this
// declaration order (spec.md §3/§6): Hello, Welcome, DeviceAnnounce,
// DeviceGone, ScreenUpdate, Enter, EnterAck, Leave, Ping, Pong, Bye.
type ControlMessage interface {
	controlMessage()
}

// HelloMessage opens a handshake as the initiator.
type HelloMessage struct {
	Version  ProtocolVersion
	MachineId MachineId
	Name     string
	Screen   ScreenGeometry
}

func (HelloMessage) controlMessage() {}

// WelcomeMessage answers a Hello as the responder.
type WelcomeMessage struct {
	Version  ProtocolVersion
	MachineId MachineId
	Name     string
	Screen   ScreenGeometry
}

func (WelcomeMessage) controlMessage() {}

// DeviceAnnounceMessage announces one locally-owned device to the peer.
type DeviceAnnounceMessage struct {
	Info DeviceInfo
}

func (DeviceAnnounceMessage) controlMessage() {}

// DeviceGoneMessage retracts a previously announced device.
type DeviceGoneMessage struct {
	DeviceId DeviceId
}

func (DeviceGoneMessage) controlMessage() {}

// ScreenUpdateMessage notifies the peer of a change to our screen geometry.
type ScreenUpdateMessage struct {
	Screen ScreenGeometry
}

func (ScreenUpdateMessage) controlMessage() {}

// EnterMessage requests that the peer accept focus; sent by the controller
// immediately after opening the outbound input stream.
type EnterMessage struct {
	Edge     ScreenEdge
	Position int32
}

func (EnterMessage) controlMessage() {}

// EnterAckMessage confirms a peer accepted an EnterMessage.
type EnterAckMessage struct{}

func (EnterAckMessage) controlMessage() {}

// LeaveMessage returns focus; sent by either the controlled peer (reverse
// barrier) or the controller (release/hotkey).
type LeaveMessage struct {
	Edge     ScreenEdge
	Position int32
}

func (LeaveMessage) controlMessage() {}

// PingMessage requests a Pong echoing the same Seq.
type PingMessage struct {
	Seq uint64
}

func (PingMessage) controlMessage() {}

// PongMessage answers a Ping, echoing its Seq.
type PongMessage struct {
	Seq uint64
}

func (PongMessage) controlMessage() {}

// ByeMessage announces a graceful disconnect.
type ByeMessage struct{}

func (ByeMessage) controlMessage() {}
