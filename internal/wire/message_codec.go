package wire

import "github.com/edgelink/edgelinkd/internal/types"

// ControlMessage discriminants, stable ordinals in spec.md §3 declaration
// order: Hello, Welcome, DeviceAnnounce, DeviceGone, ScreenUpdate, Enter,
// EnterAck, Leave, Ping, Pong, Bye.
const (
	controlKindHello uint8 = iota
	controlKindWelcome
	controlKindDeviceAnnounce
	controlKindDeviceGone
	controlKindScreenUpdate
	controlKindEnter
	controlKindEnterAck
	controlKindLeave
	controlKindPing
	controlKindPong
	controlKindBye
)

func putMachineId(e *encoder, id types.MachineId) {
	e.buf.Write([]byte(id.String()))
	// Fixed 36-byte canonical hyphenated form, written without a length
	// prefix since the format is constant width; getMachineId reads exactly
	// machineIdWireLen bytes.
}

// machineIdWireLen is the length of the canonical hyphenated-hex rendering
// written by putMachineId (8-4-4-4-12 hex digits plus four hyphens).
const machineIdWireLen = 36

func getMachineId(d *decoder) (types.MachineId, error) {
	if d.pos+machineIdWireLen > len(d.buf) {
		return types.MachineId{}, d.err("machine id")
	}
	s := string(d.buf[d.pos : d.pos+machineIdWireLen])
	d.pos += machineIdWireLen
	return types.ParseMachineId(s)
}

func putScreenGeometry(e *encoder, g types.ScreenGeometry) {
	e.PutUvarint(uint64(g.Width))
	e.PutUvarint(uint64(g.Height))
	e.PutInt32(g.OriginX)
	e.PutInt32(g.OriginY)
}

func getScreenGeometry(d *decoder) (types.ScreenGeometry, error) {
	w, err := d.GetUvarint()
	if err != nil {
		return types.ScreenGeometry{}, err
	}
	h, err := d.GetUvarint()
	if err != nil {
		return types.ScreenGeometry{}, err
	}
	ox, err := d.GetInt32()
	if err != nil {
		return types.ScreenGeometry{}, err
	}
	oy, err := d.GetInt32()
	if err != nil {
		return types.ScreenGeometry{}, err
	}
	return types.ScreenGeometry{Width: uint32(w), Height: uint32(h), OriginX: ox, OriginY: oy}, nil
}

func putDeviceInfo(e *encoder, info types.DeviceInfo) {
	e.PutUvarint(uint64(info.DeviceId))
	e.PutString(info.Name)
	e.PutUvarint(uint64(len(info.Capabilities)))
	for _, c := range info.Capabilities {
		e.PutUint8(uint8(c))
	}
}

func getDeviceInfo(d *decoder) (types.DeviceInfo, error) {
	id, err := d.GetUvarint()
	if err != nil {
		return types.DeviceInfo{}, err
	}
	name, err := d.GetString()
	if err != nil {
		return types.DeviceInfo{}, err
	}
	n, err := d.GetUvarint()
	if err != nil {
		return types.DeviceInfo{}, err
	}
	caps := make([]types.Capability, 0, n)
	for i := uint64(0); i < n; i++ {
		c, err := d.GetUint8()
		if err != nil {
			return types.DeviceInfo{}, err
		}
		caps = append(caps, types.Capability(c))
	}
	return types.DeviceInfo{DeviceId: types.DeviceId(id), Name: name, Capabilities: caps}, nil
}

func putScreenEdge(e *encoder, edge types.ScreenEdge) { e.PutUint8(uint8(edge)) }

func getScreenEdge(d *decoder) (types.ScreenEdge, error) {
	v, err := d.GetUint8()
	return types.ScreenEdge(v), err
}

// EncodeControlMessage renders msg into its deterministic binary payload
// (not yet length-prefixed — pair with WriteFrame).
func EncodeControlMessage(msg types.ControlMessage) ([]byte, error) {
	e := &encoder{}
	switch m := msg.(type) {
	case types.HelloMessage:
		e.PutUint8(controlKindHello)
		putHelloWelcomeBody(e, m.Version, m.MachineId, m.Name, m.Screen)
	case types.WelcomeMessage:
		e.PutUint8(controlKindWelcome)
		putHelloWelcomeBody(e, m.Version, m.MachineId, m.Name, m.Screen)
	case types.DeviceAnnounceMessage:
		e.PutUint8(controlKindDeviceAnnounce)
		putDeviceInfo(e, m.Info)
	case types.DeviceGoneMessage:
		e.PutUint8(controlKindDeviceGone)
		e.PutUvarint(uint64(m.DeviceId))
	case types.ScreenUpdateMessage:
		e.PutUint8(controlKindScreenUpdate)
		putScreenGeometry(e, m.Screen)
	case types.EnterMessage:
		e.PutUint8(controlKindEnter)
		putScreenEdge(e, m.Edge)
		e.PutInt32(m.Position)
	case types.EnterAckMessage:
		e.PutUint8(controlKindEnterAck)
	case types.LeaveMessage:
		e.PutUint8(controlKindLeave)
		putScreenEdge(e, m.Edge)
		e.PutInt32(m.Position)
	case types.PingMessage:
		e.PutUint8(controlKindPing)
		e.PutUvarint(m.Seq)
	case types.PongMessage:
		e.PutUint8(controlKindPong)
		e.PutUvarint(m.Seq)
	case types.ByeMessage:
		e.PutUint8(controlKindBye)
	default:
		return nil, ErrSerialization
	}
	if e.buf.Len() > MaxMessageSize {
		return nil, ErrSerialization
	}
	return e.Bytes(), nil
}

func putHelloWelcomeBody(e *encoder, version types.ProtocolVersion, id types.MachineId, name string, screen types.ScreenGeometry) {
	e.PutUvarint(uint64(version.Major))
	e.PutUvarint(uint64(version.Minor))
	putMachineId(e, id)
	e.PutString(name)
	putScreenGeometry(e, screen)
}

func getHelloWelcomeBody(d *decoder) (types.ProtocolVersion, types.MachineId, string, types.ScreenGeometry, error) {
	var version types.ProtocolVersion
	major, err := d.GetUvarint()
	if err != nil {
		return version, types.MachineId{}, "", types.ScreenGeometry{}, err
	}
	minor, err := d.GetUvarint()
	if err != nil {
		return version, types.MachineId{}, "", types.ScreenGeometry{}, err
	}
	version = types.ProtocolVersion{Major: uint16(major), Minor: uint16(minor)}
	id, err := getMachineId(d)
	if err != nil {
		return version, types.MachineId{}, "", types.ScreenGeometry{}, err
	}
	name, err := d.GetString()
	if err != nil {
		return version, types.MachineId{}, "", types.ScreenGeometry{}, err
	}
	screen, err := getScreenGeometry(d)
	if err != nil {
		return version, types.MachineId{}, "", types.ScreenGeometry{}, err
	}
	return version, id, name, screen, nil
}

// DecodeControlMessage parses the payload produced by EncodeControlMessage.
func DecodeControlMessage(payload []byte) (types.ControlMessage, error) {
	d := newDecoder(payload)
	kind, err := d.GetUint8()
	if err != nil {
		return nil, err
	}
	var msg types.ControlMessage
	switch kind {
	case controlKindHello:
		version, id, name, screen, err := getHelloWelcomeBody(d)
		if err != nil {
			return nil, err
		}
		msg = types.HelloMessage{Version: version, MachineId: id, Name: name, Screen: screen}
	case controlKindWelcome:
		version, id, name, screen, err := getHelloWelcomeBody(d)
		if err != nil {
			return nil, err
		}
		msg = types.WelcomeMessage{Version: version, MachineId: id, Name: name, Screen: screen}
	case controlKindDeviceAnnounce:
		info, err := getDeviceInfo(d)
		if err != nil {
			return nil, err
		}
		msg = types.DeviceAnnounceMessage{Info: info}
	case controlKindDeviceGone:
		id, err := d.GetUvarint()
		if err != nil {
			return nil, err
		}
		msg = types.DeviceGoneMessage{DeviceId: types.DeviceId(id)}
	case controlKindScreenUpdate:
		screen, err := getScreenGeometry(d)
		if err != nil {
			return nil, err
		}
		msg = types.ScreenUpdateMessage{Screen: screen}
	case controlKindEnter:
		edge, err := getScreenEdge(d)
		if err != nil {
			return nil, err
		}
		pos, err := d.GetInt32()
		if err != nil {
			return nil, err
		}
		msg = types.EnterMessage{Edge: edge, Position: pos}
	case controlKindEnterAck:
		msg = types.EnterAckMessage{}
	case controlKindLeave:
		edge, err := getScreenEdge(d)
		if err != nil {
			return nil, err
		}
		pos, err := d.GetInt32()
		if err != nil {
			return nil, err
		}
		msg = types.LeaveMessage{Edge: edge, Position: pos}
	case controlKindPing:
		seq, err := d.GetUvarint()
		if err != nil {
			return nil, err
		}
		msg = types.PingMessage{Seq: seq}
	case controlKindPong:
		seq, err := d.GetUvarint()
		if err != nil {
			return nil, err
		}
		msg = types.PongMessage{Seq: seq}
	case controlKindBye:
		msg = types.ByeMessage{}
	default:
		return nil, ErrDeserialization
	}
	if !d.Done() {
		return nil, ErrDeserialization
	}
	return msg, nil
}

// EncodeInputMessage renders msg into its deterministic binary payload.
func EncodeInputMessage(msg types.InputMessage) ([]byte, error) {
	if len(msg.Events) == 0 {
		return nil, ErrSerialization
	}
	e := &encoder{}
	e.PutUvarint(uint64(msg.DeviceId))
	e.PutInt64(msg.TimestampMicros)
	e.PutUvarint(uint64(len(msg.Events)))
	for _, ev := range msg.Events {
		if err := putInputEvent(e, ev); err != nil {
			return nil, err
		}
	}
	if e.buf.Len() > MaxMessageSize {
		return nil, ErrSerialization
	}
	return e.Bytes(), nil
}

// DecodeInputMessage parses the payload produced by EncodeInputMessage.
func DecodeInputMessage(payload []byte) (types.InputMessage, error) {
	d := newDecoder(payload)
	devID, err := d.GetUvarint()
	if err != nil {
		return types.InputMessage{}, err
	}
	ts, err := d.GetInt64()
	if err != nil {
		return types.InputMessage{}, err
	}
	n, err := d.GetUvarint()
	if err != nil {
		return types.InputMessage{}, err
	}
	if n == 0 {
		return types.InputMessage{}, ErrDeserialization
	}
	events := make([]types.InputEvent, 0, n)
	for i := uint64(0); i < n; i++ {
		ev, err := getInputEvent(d)
		if err != nil {
			return types.InputMessage{}, err
		}
		events = append(events, ev)
	}
	if !d.Done() {
		return types.InputMessage{}, ErrDeserialization
	}
	return types.InputMessage{DeviceId: types.DeviceId(devID), TimestampMicros: ts, Events: events}, nil
}
