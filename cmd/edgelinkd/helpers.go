package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/edgelink/edgelinkd/internal/config"
	"github.com/edgelink/edgelinkd/internal/configpaths"
)

// configFileDir returns the directory holding the config file at path, used
// as the directory for co-located state (machine-id, edgelink.crt/.key).
func configFileDir(path string) string {
	return filepath.Dir(path)
}

// runtimePIDPath returns the path edgelinkd.pid is written to and read from:
// in $XDG_RUNTIME_DIR when set, otherwise in the platform config directory.
func runtimePIDPath() (string, error) {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "edgelinkd.pid"), nil
	}
	dir, err := configpaths.DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "edgelinkd.pid"), nil
}

// adminAddr resolves the address the stop/status CLI subcommands dial for a
// same-host daemon: always loopback, since the admin listener itself binds
// to cfg.Daemon.Bind (so that a remote "pair ADDR" can reach it too) but a
// same-host operator always has a route to 127.0.0.1.
func adminAddr(cli *CLI) (string, error) {
	cfg, err := config.Load(resolveConfigPath(cli.ConfigPath))
	if err != nil {
		return "", fmt.Errorf("load config: %w", err)
	}
	return fmt.Sprintf("127.0.0.1:%d", cfg.Daemon.AdminPort), nil
}
