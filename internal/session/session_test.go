package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/edgelink/edgelinkd/internal/session"
	"github.com/edgelink/edgelinkd/internal/transport"
	"github.com/edgelink/edgelinkd/internal/transport/transporttest"
	"github.com/edgelink/edgelinkd/internal/types"
)

// dialPair establishes a connected pair of fake connections and wraps them
// in Sessions, but does not run the handshake.
func dialPair(t *testing.T, ctx context.Context) (a, b *session.Session) {
	t.Helper()
	net := transporttest.NewNetwork()
	epA := net.Endpoint("a")
	epB := net.Endpoint("b")

	type acceptResult struct {
		conn transport.Connection
		err  error
	}
	acceptedCh := make(chan acceptResult, 1)
	go func() {
		c, err := epB.Accept(ctx)
		acceptedCh <- acceptResult{conn: c, err: err}
	}()

	dialedConn, err := epA.Dial(ctx, "b")
	require.NoError(t, err)
	r := <-acceptedCh
	require.NoError(t, r.err)

	return session.New(dialedConn, nil, nil), session.New(r.conn, nil, nil)
}

func handshake(t *testing.T, ctx context.Context, a, b *session.Session) (idA, idB types.MachineId) {
	t.Helper()
	idA = types.NewMachineId()
	idB = types.NewMachineId()
	screen := types.ScreenGeometry{Width: 1920, Height: 1080}

	errCh := make(chan error, 1)
	go func() {
		errCh <- b.HandshakeResponder(ctx, idB, "b", screen)
	}()
	require.NoError(t, a.HandshakeInitiator(ctx, idA, "a", screen))
	require.NoError(t, <-errCh)
	return idA, idB
}

func TestHandshakeRecordsPeerIdentity(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	a, b := dialPair(t, ctx)
	idA, idB := handshake(t, ctx, a, b)

	require.Equal(t, session.StateIdle, a.State())
	require.Equal(t, session.StateIdle, b.State())
	require.Equal(t, idB, a.RemoteMachineId())
	require.Equal(t, idA, b.RemoteMachineId())
	require.Equal(t, "b", a.RemoteName())
	require.Equal(t, "a", b.RemoteName())
}

func TestEnterAckLeaveRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	a, b := dialPair(t, ctx)
	handshake(t, ctx, a, b)

	// b's control reader, running in the background, observes Enter and
	// replies EnterAck — mirroring how the daemon pumps a session's
	// control receiver from a dedicated reader task.
	bRecvErrCh := make(chan error, 1)
	go func() {
		recv := b.ControlReceiver()
		msg, err := recv.Recv()
		if err != nil {
			bRecvErrCh <- err
			return
		}
		enter, ok := msg.(types.EnterMessage)
		if !ok {
			bRecvErrCh <- assertionError{"expected EnterMessage"}
			return
		}
		bRecvErrCh <- b.HandleEnter()
		_ = enter
	}()

	// b must accept the inbound input stream asynchronously, exactly as
	// spec.md §4.2 requires; a's SendEnter opens the stream without waiting
	// for this accept, since the fake transport holds one pending stream.
	bAcceptCh := make(chan error, 1)
	go func() {
		recv, err := b.Connection().AcceptInputStream(ctx)
		if err != nil {
			bAcceptCh <- err
			return
		}
		b.SetInboundInput(recv)
		bAcceptCh <- nil
	}()

	require.NoError(t, a.SendEnter(ctx, types.EdgeRight, 540))
	require.Equal(t, session.StateControlling, a.State())
	require.NoError(t, <-bRecvErrCh)
	require.NoError(t, <-bAcceptCh)
	require.Equal(t, session.StateControlled, b.State())

	// a observes EnterAck on its own control receiver.
	aRecv := a.ControlReceiver()
	msg, err := aRecv.Recv()
	require.NoError(t, err)
	require.IsType(t, types.EnterAckMessage{}, msg)
	a.SetControlling()
	require.Equal(t, session.StateControlling, a.State())

	// Input flows from a to b.
	require.NoError(t, a.SendInput(types.InputMessage{
		DeviceId:        1,
		TimestampMicros: 1,
		Events:          []types.InputEvent{types.KeyEvent{Code: types.KeyA, Pressed: true}},
	}))
	inputMsg, err := b.InboundInputReceiver().Recv()
	require.NoError(t, err)
	require.Equal(t, types.DeviceId(1), inputMsg.DeviceId)

	// Release: a leaves voluntarily.
	require.NoError(t, a.Leave(types.EdgeLeft, 0))
	require.Equal(t, session.StateIdle, a.State())

	leaveMsg, err := b.ControlReceiver().Recv()
	require.NoError(t, err)
	require.IsType(t, types.LeaveMessage{}, leaveMsg)
	require.NoError(t, b.HandleLeave())
	require.Equal(t, session.StateIdle, b.State())
}

func TestSendEnterRejectedOutsideIdle(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	a, b := dialPair(t, ctx)
	handshake(t, ctx, a, b)

	go func() {
		_, _ = b.Connection().AcceptInputStream(ctx)
	}()
	go func() {
		msg, err := b.ControlReceiver().Recv()
		if err == nil {
			if _, ok := msg.(types.EnterMessage); ok {
				_ = b.HandleEnter()
			}
		}
	}()

	require.NoError(t, a.SendEnter(ctx, types.EdgeRight, 0))
	err := a.SendEnter(ctx, types.EdgeRight, 0)
	require.Error(t, err)
	var invalidTransition *session.InvalidTransitionError
	require.ErrorAs(t, err, &invalidTransition)
}

type assertionError struct{ msg string }

func (e assertionError) Error() string { return e.msg }
