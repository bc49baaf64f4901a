package daemon_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/edgelink/edgelinkd/internal/daemon"
	"github.com/edgelink/edgelinkd/internal/inputbackend/mock"
	"github.com/edgelink/edgelinkd/internal/transport/transporttest"
	"github.com/edgelink/edgelinkd/internal/types"
)

const screenWidth, screenHeight = 1920, 1080

func screenGeometry() types.ScreenGeometry {
	return types.ScreenGeometry{Width: screenWidth, Height: screenHeight}
}

type harness struct {
	daemon    *daemon.Daemon
	feed      chan<- types.CapturedEvent
	capture   *mock.Capture
	emulation *mock.Emulation
	id        types.MachineId
}

func newHarness(t *testing.T, net *transporttest.Network, addr string, cfg daemon.Config) *harness {
	t.Helper()
	capture, feed := mock.NewCapture()
	emulation := mock.NewEmulation()
	id := types.NewMachineId()
	ep := net.Endpoint(addr)
	d := daemon.New(id, cfg, capture, emulation, ep, nil, nil)
	return &harness{daemon: d, feed: feed, capture: capture, emulation: emulation, id: id}
}

func twoPeerConfigs() (a, b daemon.Config) {
	a = daemon.Config{
		Name:          "A",
		Screen:        screenGeometry(),
		ReleaseHotkey: []types.KeyCode{types.KeyLeftCtrl, types.KeyLeftShift, types.KeyEscape},
		Screens: []daemon.ScreenConfig{
			{Name: "B", Address: "B", Position: types.PositionRight},
		},
	}
	b = daemon.Config{
		Name:          "B",
		Screen:        screenGeometry(),
		ReleaseHotkey: []types.KeyCode{types.KeyLeftCtrl, types.KeyLeftShift, types.KeyEscape},
		Screens: []daemon.ScreenConfig{
			{Name: "A", Position: types.PositionLeft},
		},
	}
	return a, b
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	require.Fail(t, "condition not met within timeout")
}

func runDaemons(ctx context.Context, t *testing.T, daemons ...*daemon.Daemon) {
	t.Helper()
	for _, d := range daemons {
		d := d
		go func() { _ = d.Run(ctx) }()
	}
}

func TestTwoPeerHandshake(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	net := transporttest.NewNetwork()
	cfgA, cfgB := twoPeerConfigs()
	ha := newHarness(t, net, "A", cfgA)
	hb := newHarness(t, net, "B", cfgB)
	runDaemons(ctx, t, ha.daemon, hb.daemon)

	waitFor(t, 5*time.Second, func() bool {
		return ha.daemon.Status().SessionCount == 1 && hb.daemon.Status().SessionCount == 1
	})
	require.Nil(t, ha.daemon.Status().Controlling)
	require.Nil(t, ha.daemon.Status().ControlledBy)
	require.Nil(t, hb.daemon.Status().Controlling)
	require.Nil(t, hb.daemon.Status().ControlledBy)
}

func devicePair() []types.DeviceInfo {
	return []types.DeviceInfo{
		{DeviceId: 1, Name: "keyboard", Capabilities: []types.Capability{types.CapabilityKeyboard}},
		{DeviceId: 2, Name: "mouse", Capabilities: []types.Capability{types.CapabilityRelativeMouse, types.CapabilityScroll}},
	}
}

func TestDeviceMirroring(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	net := transporttest.NewNetwork()
	cfgA, cfgB := twoPeerConfigs()
	cfgA.LocalDevices = devicePair()
	cfgB.LocalDevices = devicePair()
	ha := newHarness(t, net, "A", cfgA)
	hb := newHarness(t, net, "B", cfgB)
	runDaemons(ctx, t, ha.daemon, hb.daemon)

	waitFor(t, 1*time.Second, func() bool {
		return len(ha.emulation.Handle().Devices()) == 2 && len(hb.emulation.Handle().Devices()) == 2
	})
}

func feedMouseMoves(feed chan<- types.CapturedEvent, dx, dy int32, n int, every time.Duration) {
	for i := 0; i < n; i++ {
		feed <- types.CapturedEvent{DeviceId: 2, TimestampMicros: int64(i), Event: types.MouseMoveEvent{DX: dx, DY: dy}}
		if every > 0 {
			time.Sleep(every)
		}
	}
}

func feedHotkeyChord(feed chan<- types.CapturedEvent, codes ...types.KeyCode) {
	for _, c := range codes {
		feed <- types.CapturedEvent{DeviceId: 1, Event: types.KeyEvent{Code: c, Pressed: true}}
	}
}

func TestFocusHandoffAndHotkeyRelease(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	net := transporttest.NewNetwork()
	cfgA, cfgB := twoPeerConfigs()
	cfgA.LocalDevices = devicePair()
	cfgB.LocalDevices = devicePair()
	ha := newHarness(t, net, "A", cfgA)
	hb := newHarness(t, net, "B", cfgB)
	runDaemons(ctx, t, ha.daemon, hb.daemon)

	waitFor(t, 5*time.Second, func() bool {
		return ha.daemon.Status().SessionCount == 1 && hb.daemon.Status().SessionCount == 1
	})

	feedMouseMoves(ha.feed, 500, 0, 5, 20*time.Millisecond)

	waitFor(t, 5*time.Second, func() bool {
		st := ha.daemon.Status()
		return st.Controlling != nil && *st.Controlling == hb.id && hb.daemon.Status().ControlledBy != nil
	})

	feedHotkeyChord(ha.feed, types.KeyLeftCtrl, types.KeyLeftShift, types.KeyEscape)

	waitFor(t, 5*time.Second, func() bool {
		st := ha.daemon.Status()
		return st.Controlling == nil && hb.daemon.Status().ControlledBy == nil
	})
	st := ha.daemon.Status()
	require.Equal(t, int32(screenWidth/2), st.CursorX)
	require.Equal(t, int32(screenHeight/2), st.CursorY)
}

func TestInputDelivery(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	net := transporttest.NewNetwork()
	cfgA, cfgB := twoPeerConfigs()
	cfgA.LocalDevices = devicePair()
	cfgB.LocalDevices = devicePair()
	ha := newHarness(t, net, "A", cfgA)
	hb := newHarness(t, net, "B", cfgB)
	runDaemons(ctx, t, ha.daemon, hb.daemon)

	waitFor(t, 5*time.Second, func() bool { return ha.daemon.Status().SessionCount == 1 })
	feedMouseMoves(ha.feed, 500, 0, 5, 20*time.Millisecond)
	waitFor(t, 5*time.Second, func() bool { return ha.daemon.Status().Controlling != nil })

	for i := 0; i < 5; i++ {
		ha.feed <- types.CapturedEvent{DeviceId: 1, Event: types.KeyEvent{Code: types.KeyA, Pressed: true}}
	}

	waitFor(t, 5*time.Second, func() bool {
		for _, inj := range hb.emulation.Handle().InjectedEvents() {
			if ke, ok := inj.Event.(types.KeyEvent); ok && ke.Code == types.KeyA && ke.Pressed {
				return true
			}
		}
		return false
	})
}

func threeScreenConfigs() (a, b, c daemon.Config) {
	a = daemon.Config{
		Name:   "A",
		Screen: screenGeometry(),
		Screens: []daemon.ScreenConfig{
			{Name: "B", Address: "B", Position: types.PositionAbove},
			{Name: "C", Address: "C", Position: types.PositionRight},
		},
	}
	b = daemon.Config{
		Name:   "B",
		Screen: screenGeometry(),
		Screens: []daemon.ScreenConfig{
			{Name: "A", Position: types.PositionBelow},
		},
	}
	c = daemon.Config{
		Name:   "C",
		Screen: screenGeometry(),
		Screens: []daemon.ScreenConfig{
			{Name: "A", Position: types.PositionLeft},
		},
	}
	return a, b, c
}

func TestCursorReturnsFromControlledPeer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	net := transporttest.NewNetwork()
	cfgA, cfgB, cfgC := threeScreenConfigs()
	ha := newHarness(t, net, "A", cfgA)
	hb := newHarness(t, net, "B", cfgB)
	hc := newHarness(t, net, "C", cfgC)
	runDaemons(ctx, t, ha.daemon, hb.daemon, hc.daemon)

	waitFor(t, 5*time.Second, func() bool { return ha.daemon.Status().SessionCount == 2 })

	feedMouseMoves(ha.feed, 0, -500, 5, 20*time.Millisecond)
	waitFor(t, 5*time.Second, func() bool {
		st := ha.daemon.Status()
		return st.Controlling != nil && *st.Controlling == hb.id
	})

	// B's cursor warped onto its bottom edge (the edge bordering A, below
	// it). First move it off that edge so entry-edge suppression clears,
	// then drive it back down to the same edge to trigger the reverse
	// barrier that hands focus back to A.
	feedMouseMoves(ha.feed, 0, -200, 1, 0)
	feedMouseMoves(ha.feed, 0, 500, 5, 10*time.Millisecond)

	waitFor(t, 5*time.Second, func() bool {
		return ha.daemon.Status().Controlling == nil
	})
}

func TestMultiHopRouting(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	net := transporttest.NewNetwork()
	cfgA := daemon.Config{
		Name:   "A",
		Screen: screenGeometry(),
		Screens: []daemon.ScreenConfig{
			{Name: "B", Address: "B", Position: types.PositionRight},
			{Name: "C", Address: "C", Position: types.PositionBelow},
		},
		ScreenAdjacency: []daemon.AdjacencyConfig{
			{Screen: "B", Neighbor: "C", Position: types.PositionBelow},
		},
	}
	cfgB := daemon.Config{
		Name:   "B",
		Screen: screenGeometry(),
		Screens: []daemon.ScreenConfig{
			{Name: "A", Position: types.PositionLeft},
			// B borders C geometrically (below it) even though B holds no
			// direct session with C — only A does, and routes through the
			// adjacency graph.
			{Name: "C", Position: types.PositionBelow},
		},
	}
	cfgC := daemon.Config{
		Name:   "C",
		Screen: screenGeometry(),
		Screens: []daemon.ScreenConfig{
			{Name: "A", Position: types.PositionAbove},
		},
	}
	ha := newHarness(t, net, "A", cfgA)
	hb := newHarness(t, net, "B", cfgB)
	hc := newHarness(t, net, "C", cfgC)
	runDaemons(ctx, t, ha.daemon, hb.daemon, hc.daemon)

	waitFor(t, 5*time.Second, func() bool { return ha.daemon.Status().SessionCount == 2 })

	feedMouseMoves(ha.feed, 500, 0, 5, 20*time.Millisecond)
	waitFor(t, 5*time.Second, func() bool {
		st := ha.daemon.Status()
		return st.Controlling != nil && *st.Controlling == hb.id
	})

	// B's cursor warped onto its left edge (bordering A). Move off it so
	// entry-edge suppression clears, then drive down to B's bottom edge,
	// whose adjacency entry on A points at C: a multi-hop handoff.
	feedMouseMoves(ha.feed, 200, 0, 1, 0)
	feedMouseMoves(ha.feed, 0, 500, 5, 10*time.Millisecond)

	waitFor(t, 5*time.Second, func() bool {
		st := ha.daemon.Status()
		return st.Controlling != nil && *st.Controlling == hc.id
	})
	require.Nil(t, hb.daemon.Status().ControlledBy)
}
