package wire

import "github.com/edgelink/edgelinkd/internal/types"

// InputEvent discriminants, stable ordinals in spec.md §3 declaration
// order: Key, MouseMove, MouseMoveAbsolute, MouseButton, Scroll.
const (
	eventKindKey uint8 = iota
	eventKindMouseMove
	eventKindMouseMoveAbsolute
	eventKindMouseButton
	eventKindScroll
)

func putKeyCode(e *encoder, k types.KeyCode) {
	e.PutUvarint(uint64(k.Ordinal()))
	e.PutUvarint(uint64(k.Raw()))
}

func getKeyCode(d *decoder) (types.KeyCode, error) {
	ord, err := d.GetUvarint()
	if err != nil {
		return types.KeyCode{}, err
	}
	raw, err := d.GetUvarint()
	if err != nil {
		return types.KeyCode{}, err
	}
	k, ok := types.KeyCodeFromOrdinal(uint16(ord), uint32(raw))
	if !ok {
		return types.NewUnknownKeyCode(uint32(raw)), nil
	}
	return k, nil
}

func putInputEvent(e *encoder, ev types.InputEvent) error {
	switch v := ev.(type) {
	case types.KeyEvent:
		e.PutUint8(eventKindKey)
		putKeyCode(e, v.Code)
		e.PutBool(v.Pressed)
	case types.MouseMoveEvent:
		e.PutUint8(eventKindMouseMove)
		e.PutInt32(v.DX)
		e.PutInt32(v.DY)
	case types.MouseMoveAbsoluteEvent:
		e.PutUint8(eventKindMouseMoveAbsolute)
		e.PutFloat64(v.X)
		e.PutFloat64(v.Y)
	case types.MouseButtonEvent:
		e.PutUint8(eventKindMouseButton)
		e.PutUint8(uint8(v.Button))
		e.PutBool(v.Pressed)
	case types.ScrollEvent:
		e.PutUint8(eventKindScroll)
		e.PutUint8(uint8(v.Axis))
		e.PutUint8(uint8(v.Sign))
		e.PutFloat64(v.Amount)
	default:
		return ErrSerialization
	}
	return nil
}

func getInputEvent(d *decoder) (types.InputEvent, error) {
	kind, err := d.GetUint8()
	if err != nil {
		return nil, err
	}
	switch kind {
	case eventKindKey:
		code, err := getKeyCode(d)
		if err != nil {
			return nil, err
		}
		pressed, err := d.GetBool()
		if err != nil {
			return nil, err
		}
		return types.KeyEvent{Code: code, Pressed: pressed}, nil
	case eventKindMouseMove:
		dx, err := d.GetInt32()
		if err != nil {
			return nil, err
		}
		dy, err := d.GetInt32()
		if err != nil {
			return nil, err
		}
		return types.MouseMoveEvent{DX: dx, DY: dy}, nil
	case eventKindMouseMoveAbsolute:
		x, err := d.GetFloat64()
		if err != nil {
			return nil, err
		}
		y, err := d.GetFloat64()
		if err != nil {
			return nil, err
		}
		return types.MouseMoveAbsoluteEvent{X: x, Y: y}, nil
	case eventKindMouseButton:
		btn, err := d.GetUint8()
		if err != nil {
			return nil, err
		}
		pressed, err := d.GetBool()
		if err != nil {
			return nil, err
		}
		return types.MouseButtonEvent{Button: types.MouseButtonCode(btn), Pressed: pressed}, nil
	case eventKindScroll:
		axis, err := d.GetUint8()
		if err != nil {
			return nil, err
		}
		sign, err := d.GetUint8()
		if err != nil {
			return nil, err
		}
		amount, err := d.GetFloat64()
		if err != nil {
			return nil, err
		}
		return types.ScrollEvent{Axis: types.ScrollAxis(axis), Sign: int8(sign), Amount: amount}, nil
	default:
		return nil, ErrDeserialization
	}
}
