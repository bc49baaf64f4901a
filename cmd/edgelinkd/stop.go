package main

import (
	"fmt"
	"log/slog"

	"github.com/edgelink/edgelinkd/internal/adminapi"
	"github.com/edgelink/edgelinkd/internal/pidfile"
)

// StopCmd asks a running daemon to exit via its admin API, falling back to
// a raw SIGTERM against the recorded PID if the admin API can't be reached.
type StopCmd struct{}

func (c *StopCmd) Run(cli *CLI, logger *slog.Logger) error {
	addr, err := adminAddr(cli)
	if err != nil {
		return err
	}
	client := adminapi.NewClient(addr)
	if _, err := client.Do("stop", ""); err == nil {
		fmt.Println("daemon stopped")
		return nil
	}

	logger.Warn("admin API unreachable, falling back to pid file")
	pidPath, err := runtimePIDPath()
	if err != nil {
		return fmt.Errorf("locate pid file: %w", err)
	}
	if err := pidfile.Terminate(pidPath); err != nil {
		return fmt.Errorf("terminate daemon: %w", err)
	}
	fmt.Println("daemon terminated")
	return nil
}
