// Package inputbackend defines the platform-abstracted contracts the daemon
// uses to capture physical input and emulate virtual input. Concrete
// backends (evdev/uinput on Linux, Raw Input/SendInput on Windows) implement
// these interfaces; the daemon core never reaches past them into platform
// APIs directly (spec.md §4.4).
package inputbackend

import (
	"context"
	"errors"
	"fmt"

	"github.com/edgelink/edgelinkd/internal/types"
)

// Capture captures physical input devices and holds the barriers used for
// cursor-edge detection. Implementations grab physical keyboards/mice and
// forward events on the channel passed to Start; barrier crossings are
// detected by the daemon from the forwarded MouseMove events.
type Capture interface {
	// Start begins capturing input, sending events to sink. sink is never
	// closed by the caller; the backend stops sending once Shutdown returns.
	Start(ctx context.Context, sink chan<- types.CapturedEvent) error

	// AddBarrier registers a barrier for cursor-edge detection and returns
	// its assigned id.
	AddBarrier(barrier types.Barrier) (types.BarrierId, error)

	// RemoveBarrier removes a previously registered barrier.
	RemoveBarrier(id types.BarrierId) error

	// Release gives input control back to the local machine (stops
	// forwarding captured input as if it were local).
	Release() error

	// Shutdown releases all grabbed devices and any other held resources.
	Shutdown() error
}

// Emulation creates virtual input devices and injects events on the
// controlled machine.
type Emulation interface {
	// CreateDevice creates a virtual device mirroring the given physical
	// device description and returns its id.
	CreateDevice(info types.DeviceInfo) (types.VirtualDeviceId, error)

	// Inject delivers an input event to a previously created virtual
	// device.
	Inject(device types.VirtualDeviceId, event types.InputEvent) error

	// DestroyDevice destroys a virtual device.
	DestroyDevice(device types.VirtualDeviceId) error

	// Shutdown destroys all virtual devices and releases resources.
	Shutdown() error
}

var (
	ErrDeviceOpen          = errors.New("inputbackend: failed to open device")
	ErrDeviceGrab          = errors.New("inputbackend: failed to grab device")
	ErrVirtualDeviceCreate = errors.New("inputbackend: failed to create virtual device")
	ErrInject              = errors.New("inputbackend: failed to inject event")
	ErrUnavailable         = errors.New("inputbackend: backend not available on this platform")
)

// BarrierNotFoundError is returned by RemoveBarrier for an unknown id.
type BarrierNotFoundError struct {
	Id types.BarrierId
}

func (e *BarrierNotFoundError) Error() string {
	return fmt.Sprintf("inputbackend: barrier not found: %d", e.Id)
}
