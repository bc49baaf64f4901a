// Package mock provides in-memory Capture and Emulation backends for
// daemon-level tests, grounded on
// cross-control-input/src/mock.rs's MockCapture/MockEmulation.
package mock

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/edgelink/edgelinkd/internal/inputbackend"
	"github.com/edgelink/edgelinkd/internal/types"
)

// Capture is a mock inputbackend.Capture. Tests inject events through the
// channel returned by NewCapture;
// Start forwards them to the daemon's sink until Shutdown is called.
type Capture struct {
	feed chan types.CapturedEvent

	mu       sync.Mutex
	barriers map[types.BarrierId]types.Barrier
	nextId   uint32

	released atomic.Bool
	shutdown atomic.Bool
}

var _ inputbackend.Capture = (*Capture)(nil)

// NewCapture creates a mock capture backend and the channel tests use to
// feed it events.
func NewCapture() (*Capture, chan<- types.CapturedEvent) {
	feed := make(chan types.CapturedEvent, 1024)
	return &Capture{
		feed:     feed,
		barriers: make(map[types.BarrierId]types.Barrier),
		nextId:   1,
	}, feed
}

// WasReleased reports whether Release has been called.
func (c *Capture) WasReleased() bool { return c.released.Load() }

func (c *Capture) Start(ctx context.Context, sink chan<- types.CapturedEvent) error {
	go func() {
		for {
			select {
			case ev, ok := <-c.feed:
				if !ok {
					return
				}
				if c.shutdown.Load() {
					return
				}
				select {
				case sink <- ev:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

func (c *Capture) AddBarrier(barrier types.Barrier) (types.BarrierId, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := types.BarrierId(c.nextId)
	c.nextId++
	c.barriers[id] = barrier
	return id, nil
}

func (c *Capture) RemoveBarrier(id types.BarrierId) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.barriers[id]; !ok {
		return &inputbackend.BarrierNotFoundError{Id: id}
	}
	delete(c.barriers, id)
	return nil
}

func (c *Capture) Release() error {
	c.released.Store(true)
	return nil
}

func (c *Capture) Shutdown() error {
	c.shutdown.Store(true)
	return nil
}

// InjectedEvent is one recorded call to Emulation.Inject.
type InjectedEvent struct {
	Device types.VirtualDeviceId
	Event  types.InputEvent
}

// Emulation is a mock inputbackend.Emulation. Use Handle to observe what was
// created, injected, or destroyed from a test.
type Emulation struct {
	mu       sync.Mutex
	devices  map[types.VirtualDeviceId]types.DeviceInfo
	injected []InjectedEvent
	nextId   uint32
	shutdown bool
}

var _ inputbackend.Emulation = (*Emulation)(nil)

// NewEmulation creates a mock emulation backend.
func NewEmulation() *Emulation {
	return &Emulation{devices: make(map[types.VirtualDeviceId]types.DeviceInfo)}
}

// Handle returns an observer for this backend's state. Safe to call from
// another goroutine while the daemon is running.
func (e *Emulation) Handle() *EmulationHandle { return &EmulationHandle{e: e} }

func (e *Emulation) CreateDevice(info types.DeviceInfo) (types.VirtualDeviceId, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nextId++
	id := types.VirtualDeviceId(e.nextId)
	e.devices[id] = info
	return id, nil
}

func (e *Emulation) Inject(device types.VirtualDeviceId, event types.InputEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.injected = append(e.injected, InjectedEvent{Device: device, Event: event})
	return nil
}

func (e *Emulation) DestroyDevice(device types.VirtualDeviceId) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.devices, device)
	return nil
}

func (e *Emulation) Shutdown() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.shutdown = true
	return nil
}

// EmulationHandle is a read-only observer of an Emulation's state.
type EmulationHandle struct{ e *Emulation }

func (h *EmulationHandle) Devices() map[types.VirtualDeviceId]types.DeviceInfo {
	h.e.mu.Lock()
	defer h.e.mu.Unlock()
	out := make(map[types.VirtualDeviceId]types.DeviceInfo, len(h.e.devices))
	for k, v := range h.e.devices {
		out[k] = v
	}
	return out
}

func (h *EmulationHandle) InjectedEvents() []InjectedEvent {
	h.e.mu.Lock()
	defer h.e.mu.Unlock()
	out := make([]InjectedEvent, len(h.e.injected))
	copy(out, h.e.injected)
	return out
}

func (h *EmulationHandle) IsShutdown() bool {
	h.e.mu.Lock()
	defer h.e.mu.Unlock()
	return h.e.shutdown
}
