// Package session implements the per-peer state machine: handshake, device
// announcement, enter/leave focus handoff, and input send/receive. A
// Session owns the two substreams and the remote→local virtual-device map
// for one peer; it never references the daemon core directly (spec.md §9
// "cyclic references" design note) — all session→core communication is the
// daemon reading events the session's reader tasks deliver, and all
// core→session communication is a direct method call the daemon makes while
// it holds the session.
package session

import "fmt"

// State is the session's position in its lifecycle (spec.md §4.2):
//
//	Connected ── hello sent/received ──► HelloSent
//	HelloSent ── welcome received/sent ─► Idle
//	Idle      ── send_enter ───────────► Controlling
//	Idle      ── handle_enter ─────────► Controlled
//	Controlling ── leave/peer-loss ────► Idle
//	Controlled  ── handle_leave/loss ──► Idle
//	*          ── disconnect called ───► Disconnecting (terminal)
type State uint8

const (
	StateConnected State = iota
	StateHelloSent
	StateIdle
	StateControlling
	StateControlled
	StateDisconnecting
)

func (s State) String() string {
	switch s {
	case StateConnected:
		return "Connected"
	case StateHelloSent:
		return "HelloSent"
	case StateIdle:
		return "Idle"
	case StateControlling:
		return "Controlling"
	case StateControlled:
		return "Controlled"
	case StateDisconnecting:
		return "Disconnecting"
	default:
		return "Unknown"
	}
}

// InvalidTransitionError is returned when an operation is attempted from a
// state that doesn't permit it (e.g. send_enter while already Controlling).
type InvalidTransitionError struct {
	Operation string
	From      State
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("session: invalid transition: %s from state %s", e.Operation, e.From)
}
