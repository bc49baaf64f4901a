package wire

import "fmt"

// controlKindLabel names payload's discriminant byte for trace-level raw
// frame logs, without paying for a full DecodeControlMessage.
func controlKindLabel(payload []byte) string {
	if len(payload) == 0 {
		return "empty"
	}
	switch payload[0] {
	case controlKindHello:
		return "Hello"
	case controlKindWelcome:
		return "Welcome"
	case controlKindDeviceAnnounce:
		return "DeviceAnnounce"
	case controlKindDeviceGone:
		return "DeviceGone"
	case controlKindScreenUpdate:
		return "ScreenUpdate"
	case controlKindEnter:
		return "Enter"
	case controlKindEnterAck:
		return "EnterAck"
	case controlKindLeave:
		return "Leave"
	case controlKindPing:
		return "Ping"
	case controlKindPong:
		return "Pong"
	case controlKindBye:
		return "Bye"
	default:
		return fmt.Sprintf("unknown(%d)", payload[0])
	}
}

// inputKindLabel summarizes an InputMessage payload's device and event count
// without running the per-event decode loop. Malformed payloads (the raw
// logger runs ahead of DecodeInputMessage's own error handling) are reported
// as such rather than panicking the logger.
func inputKindLabel(payload []byte) string {
	d := newDecoder(payload)
	devID, err := d.GetUvarint()
	if err != nil {
		return "Input(malformed)"
	}
	if _, err := d.GetInt64(); err != nil {
		return "Input(malformed)"
	}
	n, err := d.GetUvarint()
	if err != nil {
		return "Input(malformed)"
	}
	return fmt.Sprintf("Input(device=%d,events=%d)", devID, n)
}
