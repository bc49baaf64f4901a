package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/edgelink/edgelinkd/internal/adminapi"
	"github.com/edgelink/edgelinkd/internal/certgen"
	"github.com/edgelink/edgelinkd/internal/config"
	"github.com/edgelink/edgelinkd/internal/configpaths"
	"github.com/edgelink/edgelinkd/internal/daemon"
	"github.com/edgelink/edgelinkd/internal/identity"
	"github.com/edgelink/edgelinkd/internal/inputbackend/mock"
	"github.com/edgelink/edgelinkd/internal/log"
	"github.com/edgelink/edgelinkd/internal/pidfile"
	"github.com/edgelink/edgelinkd/internal/transport"
)

// StartCmd runs the daemon in the foreground until interrupted or stopped
// via the admin API.
type StartCmd struct{}

// Run is called by Kong when "start" is invoked.
func (c *StartCmd) Run(cli *CLI, logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configDir, err := resolveConfigDir(cli.ConfigPath)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}

	cfg, err := config.Load(resolveConfigPath(cli.ConfigPath))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	id, err := identity.LoadOrCreate(configDir)
	if err != nil {
		return fmt.Errorf("load identity: %w", err)
	}

	name := config.ResolveName(cfg.Identity)
	gen, err := certgen.LoadOrGenerate(configDir, name)
	if err != nil {
		return fmt.Errorf("load TLS certificate: %w", err)
	}
	tlsCert, err := certgen.TLSCertificate(gen)
	if err != nil {
		return fmt.Errorf("parse TLS certificate: %w", err)
	}
	logger.Info("machine identity", "id", id, "name", name, "fingerprint", gen.Fingerprint)

	bindAddr := fmt.Sprintf("%s:%d", cfg.Daemon.Bind, cfg.Daemon.Port)
	endpoint, err := transport.NewQUICEndpoint(bindAddr,
		transport.ServerTLSConfig(tlsCert),
		clientTLSConfig(tlsCert),
	)
	if err != nil {
		return fmt.Errorf("start QUIC endpoint: %w", err)
	}

	capture, _ := mock.NewCapture()
	emulation := mock.NewEmulation()
	logger.Warn("no native capture backend is wired; local input will never be captured (internal/inputbackend is interfaces-only, per spec)")

	daemonCfg, err := config.ToDaemonConfig(cfg, nil)
	if err != nil {
		return fmt.Errorf("translate config: %w", err)
	}

	d := daemon.New(id, daemonCfg, capture, emulation, endpoint, logger, rawLogger)

	adminAddr := fmt.Sprintf("%s:%d", cfg.Daemon.Bind, cfg.Daemon.AdminPort)
	adminSrv := adminapi.New(adminAddr, logger)
	adminapi.RegisterDaemonRoutes(adminSrv.Router(), d, gen.Fingerprint)
	if err := adminSrv.Start(); err != nil {
		return fmt.Errorf("start admin API: %w", err)
	}
	defer adminSrv.Close()
	logger.Info("admin API listening", "addr", adminSrv.Addr())

	pidPath, err := runtimePIDPath()
	if err == nil {
		if err := pidfile.Write(pidPath, os.Getpid()); err != nil {
			logger.Warn("failed to write pid file", "error", err)
		}
		defer func() { _ = pidfile.Remove(pidPath) }()
	}

	logger.Info("starting edgelinkd", "name", daemonCfg.Name, "bind", bindAddr)
	return d.Run(ctx)
}

func clientTLSConfig(cert tls.Certificate) *tls.Config {
	return transport.ClientTLSConfig(cert, transport.AcceptAllVerifier)
}

func resolveConfigDir(userPath string) (string, error) {
	if userPath != "" {
		return configFileDir(userPath), nil
	}
	return configpaths.DefaultConfigDir()
}

func resolveConfigPath(userPath string) string {
	if userPath != "" {
		return userPath
	}
	p, err := configpaths.DefaultConfigPath("toml")
	if err != nil {
		return ""
	}
	return p
}
