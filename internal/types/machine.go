// Package types holds the value types shared by both sides of the wire:
// machine and device identifiers, input events, screen geometry, and the
// control/input message catalog.
package types

import "github.com/google/uuid"

// MachineId is an opaque 128-bit identifier, generated once per install and
// persisted. Equality is identity.
type MachineId uuid.UUID

// NewMachineId generates a fresh random MachineId.
func NewMachineId() MachineId {
	return MachineId(uuid.New())
}

// ParseMachineId parses the canonical hyphenated-hex form.
func ParseMachineId(s string) (MachineId, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return MachineId{}, err
	}
	return MachineId(id), nil
}

// String renders the canonical hyphenated hex form.
func (m MachineId) String() string {
	return uuid.UUID(m).String()
}

// IsZero reports whether m is the zero-value MachineId.
func (m MachineId) IsZero() bool {
	return m == MachineId{}
}

// DeviceId is unique within one machine's announced device set and never
// reused across a session's lifetime.
type DeviceId uint32

// VirtualDeviceId is unique within one machine's emulation backend,
// allocated by that backend when a remote device is mirrored.
type VirtualDeviceId uint32

// ProtocolVersion is exchanged during handshake; sessions reject peers with
// a different Major.
type ProtocolVersion struct {
	Major uint16
	Minor uint16
}

// CurrentProtocolVersion is the version this implementation speaks.
var CurrentProtocolVersion = ProtocolVersion{Major: 0, Minor: 1}
