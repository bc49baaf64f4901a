package wire_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/edgelink/edgelinkd/internal/types"
	"github.com/edgelink/edgelinkd/internal/wire"
)

func sampleControlMessages() []types.ControlMessage {
	id := types.NewMachineId()
	screen := types.ScreenGeometry{Width: 1920, Height: 1080}
	return []types.ControlMessage{
		types.HelloMessage{Version: types.CurrentProtocolVersion, MachineId: id, Name: "alpha", Screen: screen},
		types.WelcomeMessage{Version: types.CurrentProtocolVersion, MachineId: id, Name: "beta", Screen: screen},
		types.DeviceAnnounceMessage{Info: types.DeviceInfo{DeviceId: 1, Name: "kbd", Capabilities: []types.Capability{types.CapabilityKeyboard}}},
		types.DeviceGoneMessage{DeviceId: 1},
		types.ScreenUpdateMessage{Screen: screen},
		types.EnterMessage{Edge: types.EdgeRight, Position: 540},
		types.EnterAckMessage{},
		types.LeaveMessage{Edge: types.EdgeLeft, Position: 0},
		types.PingMessage{Seq: 7},
		types.PongMessage{Seq: 7},
		types.ByeMessage{},
	}
}

func TestControlMessageRoundTrip(t *testing.T) {
	for _, msg := range sampleControlMessages() {
		payload, err := wire.EncodeControlMessage(msg)
		require.NoError(t, err)

		decoded, err := wire.DecodeControlMessage(payload)
		require.NoError(t, err)
		require.Equal(t, msg, decoded)

		reencoded, err := wire.EncodeControlMessage(decoded)
		require.NoError(t, err)
		require.Equal(t, payload, reencoded, "encode(decode(encode(m))) must equal encode(m)")
	}
}

func TestInputMessageRoundTrip(t *testing.T) {
	msg := types.InputMessage{
		DeviceId:        2,
		TimestampMicros: 123456789,
		Events: []types.InputEvent{
			types.KeyEvent{Code: types.KeyLeftCtrl, Pressed: true},
			types.MouseMoveEvent{DX: -12, DY: 34},
			types.MouseMoveAbsoluteEvent{X: 0.25, Y: 0.75},
			types.MouseButtonEvent{Button: types.MouseButtonLeft, Pressed: false},
			types.ScrollEvent{Axis: types.ScrollAxisVertical, Sign: -1, Amount: 1.5},
			types.KeyEvent{Code: types.NewUnknownKeyCode(0xdead), Pressed: true},
		},
	}

	payload, err := wire.EncodeInputMessage(msg)
	require.NoError(t, err)

	decoded, err := wire.DecodeInputMessage(payload)
	require.NoError(t, err)
	require.Equal(t, msg, decoded)

	reencoded, err := wire.EncodeInputMessage(decoded)
	require.NoError(t, err)
	require.Equal(t, payload, reencoded)
}

func TestInputMessageRejectsEmptyBatch(t *testing.T) {
	_, err := wire.EncodeInputMessage(types.InputMessage{DeviceId: 1})
	require.ErrorIs(t, err, wire.ErrSerialization)
}

func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, wire.WriteFrame(&buf, []byte("hello")))
	require.NoError(t, wire.WriteFrame(&buf, []byte("world")))

	first, err := wire.ReadFrame(&buf)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), first)

	second, err := wire.ReadFrame(&buf)
	require.NoError(t, err)
	require.Equal(t, []byte("world"), second)

	_, err = wire.ReadFrame(&buf)
	require.ErrorIs(t, err, io.EOF, "clean end-of-stream between frames must be io.EOF, not an error")
}

func TestFrameRejectsOversizePayload(t *testing.T) {
	var buf bytes.Buffer
	oversize := make([]byte, wire.MaxMessageSize+1)
	err := wire.WriteFrame(&buf, oversize)
	require.ErrorIs(t, err, wire.ErrSerialization)
	require.Zero(t, buf.Len(), "oversize frame must not write anything")
}

func TestFrameRejectsOversizeAnnouncedLength(t *testing.T) {
	var hdr [4]byte
	hdr[0] = 0xFF // length far above MaxMessageSize
	r := bytes.NewReader(hdr[:])
	_, err := wire.ReadFrame(r)
	require.ErrorIs(t, err, wire.ErrDeserialization)
}

func TestFrameMidFrameCloseIsStreamClosed(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, wire.WriteFrame(&buf, []byte("hello")))
	truncated := bytes.NewReader(buf.Bytes()[:6])
	_, err := wire.ReadFrame(truncated)
	require.ErrorIs(t, err, wire.ErrStreamClosed)
}

func TestScreenEdgeOppositeInvolution(t *testing.T) {
	for _, e := range []types.ScreenEdge{types.EdgeLeft, types.EdgeRight, types.EdgeTop, types.EdgeBottom} {
		require.Equal(t, e, e.Opposite().Opposite())
	}
}
