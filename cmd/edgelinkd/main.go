// Command edgelinkd runs the virtual-KVM daemon and its companion CLI
// (start/stop/status/generate-cert/pair/config init), grounded on the
// teacher's cmd/viiper/viiper.go top-level Kong wiring.
package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/edgelink/edgelinkd/internal/log"
)

// CLI is the top-level command tree.
type CLI struct {
	ConfigPath string `name:"config" help:"Path to the daemon config file (default: platform config dir)." type:"path"`
	LogLevel   string `name:"log-level" default:"info" help:"trace, debug, info, warn, or error."`
	LogFile    string `name:"log-file" help:"Write logs to this file instead of stdout/stderr."`
	RawLog     string `name:"raw-log" help:"Write raw wire-frame dumps to this file (trace diagnostics)."`

	Start        StartCmd        `cmd:"" help:"Run the daemon in the foreground."`
	Stop         StopCmd         `cmd:"" help:"Stop a running daemon."`
	Status       StatusCmd       `cmd:"" help:"Query a running daemon's status."`
	GenerateCert GenerateCertCmd `cmd:"" name:"generate-cert" help:"Regenerate this machine's TLS certificate."`
	Pair         PairCmd         `cmd:"" help:"Fetch a remote machine's certificate fingerprint for pairing."`
	Config       ConfigCmd       `cmd:"" help:"Configuration file management."`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("edgelinkd"),
		kong.Description("Virtual KVM daemon: cursor-barrier focus handoff across machines."),
		kong.UsageOnError(),
	)

	logger, rawLogger, closeFiles, err := log.SetupLogger(cli.LogLevel, cli.LogFile, cli.RawLog)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to set up logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	ctx.Bind(logger)
	ctx.Bind(&cli)
	ctx.BindTo(rawLogger, (*log.RawLogger)(nil))

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}
