//go:build !windows

package pidfile

import "golang.org/x/sys/unix"

func terminate(pid int) error {
	return unix.Kill(pid, unix.SIGTERM)
}
