package main

import "github.com/edgelink/edgelinkd/internal/config"

// ConfigCmd groups configuration file management subcommands.
type ConfigCmd struct {
	Init config.InitCommand `cmd:"" help:"Write a starter config file."`
}
