package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/edgelink/edgelinkd/internal/certgen"
	"github.com/edgelink/edgelinkd/internal/config"
	"github.com/edgelink/edgelinkd/internal/configpaths"
)

// GenerateCertCmd regenerates this machine's self-signed TLS certificate,
// overwriting whatever edgelink.crt/.key previously existed.
type GenerateCertCmd struct {
	Output string `name:"output" help:"Directory to write edgelink.crt/.key into (default: platform config dir)." type:"path"`
}

func (c *GenerateCertCmd) Run(cli *CLI, logger *slog.Logger) error {
	dir := c.Output
	if dir == "" {
		d, err := configpaths.DefaultConfigDir()
		if err != nil {
			return fmt.Errorf("resolve config dir: %w", err)
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	cfg, err := config.Load(resolveConfigPath(cli.ConfigPath))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	name := config.ResolveName(cfg.Identity)

	gen, err := certgen.Generate(name)
	if err != nil {
		return fmt.Errorf("generate certificate: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "edgelink.crt"), gen.CertPEM, 0o644); err != nil {
		return fmt.Errorf("write cert: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "edgelink.key"), gen.KeyPEM, 0o600); err != nil {
		return fmt.Errorf("write key: %w", err)
	}

	logger.Info("generated TLS certificate", "dir", dir, "fingerprint", gen.Fingerprint)
	fmt.Println(gen.Fingerprint)
	return nil
}
