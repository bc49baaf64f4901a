package types

// InputEvent is the sum type of everything capture can produce and
// emulation can inject. Wire discriminants are stable ordinals assigned in
// this declaration order (spec.md §6): Key, MouseMove, MouseMoveAbsolute,
// MouseButton, Scroll.
type InputEvent interface {
	inputEvent()
}

// KeyEvent is a single key transition.
type KeyEvent struct {
	Code    KeyCode
	Pressed bool
}

func (KeyEvent) inputEvent() {}

// MouseMoveEvent is a relative pointer motion.
type MouseMoveEvent struct {
	DX, DY int32
}

func (MouseMoveEvent) inputEvent() {}

// MouseMoveAbsoluteEvent positions the pointer at a normalised coordinate
// in [0.0, 1.0] on each axis, independent of the target screen's pixel
// dimensions.
type MouseMoveAbsoluteEvent struct {
	X, Y float64
}

func (MouseMoveAbsoluteEvent) inputEvent() {}

// MouseButtonCode names a mouse button.
type MouseButtonCode uint8

const (
	MouseButtonLeft MouseButtonCode = iota
	MouseButtonRight
	MouseButtonMiddle
	MouseButtonExtra1
	MouseButtonExtra2
)

func (b MouseButtonCode) String() string {
	switch b {
	case MouseButtonLeft:
		return "Left"
	case MouseButtonRight:
		return "Right"
	case MouseButtonMiddle:
		return "Middle"
	case MouseButtonExtra1:
		return "Extra1"
	case MouseButtonExtra2:
		return "Extra2"
	default:
		return "Unknown"
	}
}

// MouseButtonEvent is a single mouse button transition.
type MouseButtonEvent struct {
	Button  MouseButtonCode
	Pressed bool
}

func (MouseButtonEvent) inputEvent() {}

// ScrollAxis is the axis a Scroll event moves along.
type ScrollAxis uint8

const (
	ScrollAxisVertical ScrollAxis = iota
	ScrollAxisHorizontal
)

// ScrollEvent is a single scroll-wheel tick or trackpad scroll sample.
// Sign is +1 or -1; Amount is the magnitude along Axis.
type ScrollEvent struct {
	Axis   ScrollAxis
	Sign   int8
	Amount float64
}

func (ScrollEvent) inputEvent() {}

// CapturedEvent is produced by capture and consumed by the daemon core.
type CapturedEvent struct {
	DeviceId       DeviceId
	TimestampMicros int64
	Event          InputEvent
}

// InputMessage carries a non-empty, ordered batch of events for one remote
// device. Batching must preserve within-batch order and never cross device
// boundaries.
type InputMessage struct {
	DeviceId        DeviceId
	TimestampMicros int64
	Events          []InputEvent
}
