// Package pidfile writes and reads the running daemon's PID, and delivers
// the termination signal the "stop" CLI subcommand needs when the admin API
// itself can't be reached. There is no teacher equivalent (the teacher
// doesn't daemonize); this follows spec.md §6's one-paragraph description in
// the teacher's plain, small-file style.
package pidfile

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Write records pid at path, creating the file if necessary.
func Write(path string, pid int) error {
	return os.WriteFile(path, []byte(strconv.Itoa(pid)), 0o644)
}

// Read returns the PID recorded at path.
func Read(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid pid file %s: %w", path, err)
	}
	return pid, nil
}

// Remove deletes the PID file, ignoring a not-exist error.
func Remove(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Terminate asks the process recorded at path to exit, then removes the
// file. It is the stop CLI's fallback for when the admin API's "stop"
// route can't be reached (e.g. the daemon wedged before the event loop
// started).
func Terminate(path string) error {
	pid, err := Read(path)
	if err != nil {
		return err
	}
	if err := terminate(pid); err != nil {
		return fmt.Errorf("terminate pid %d: %w", pid, err)
	}
	return Remove(path)
}
