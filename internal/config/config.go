// Package config defines the on-disk configuration shape and loads it from
// JSON, YAML, or TOML, following the same layered-default pattern as
// cross-control-daemon's config.rs: missing fields keep their defaults and
// only a config file that exists at all is consulted.
package config

// DaemonConfig controls the network and logging surface of the daemon.
type DaemonConfig struct {
	Port        int    `toml:"port" yaml:"port" json:"port" default:"24800" help:"UDP port the QUIC endpoint listens and dials on."`
	AdminPort   int    `toml:"admin_port" yaml:"admin_port" json:"admin_port" default:"24801" help:"TCP port the local admin protocol (stop/status/pair) listens on."`
	Bind        string `toml:"bind" yaml:"bind" json:"bind" default:"0.0.0.0" help:"Address the QUIC endpoint binds to."`
	Discovery   bool   `toml:"discovery" yaml:"discovery" json:"discovery" default:"true" help:"Reserved; no peer discovery is performed and peers come only from screens entries."`
	LogLevel    string `toml:"log_level" yaml:"log_level" json:"log_level" default:"info" help:"trace, debug, info, warn, or error."`
	ScreenWidth uint32 `toml:"screen_width" yaml:"screen_width" json:"screen_width" default:"1920" help:"Local screen width in pixels."`
	ScreenHeight uint32 `toml:"screen_height" yaml:"screen_height" json:"screen_height" default:"1080" help:"Local screen height in pixels."`
}

// IdentityConfig names this machine. An empty Name falls back to the host
// name, and failing that to "cross-control" (resolved by ResolveName, not
// here, so Default() stays pure).
type IdentityConfig struct {
	Name string `toml:"name" yaml:"name" json:"name" help:"This machine's name, as referenced by Screens/ScreenAdjacency on every machine in the mesh."`
}

// InputConfig carries input-layer settings not tied to a specific screen.
type InputConfig struct {
	ReleaseHotkey []string `toml:"release_hotkey" yaml:"release_hotkey" json:"release_hotkey" help:"Key names that, all held together, force an immediate release back to the controlling machine."`
}

// ScreenConfig describes one neighbouring machine: its name, how to reach
// it, and where its screen sits relative to ours.
type ScreenConfig struct {
	Name        string `toml:"name" yaml:"name" json:"name"`
	Address     string `toml:"address,omitempty" yaml:"address,omitempty" json:"address,omitempty" help:"host:port to dial. Omit if this machine only ever accepts a connection from the neighbour."`
	Position    string `toml:"position" yaml:"position" json:"position" help:"Left, Right, Above, or Below, relative to this machine's screen."`
	Fingerprint string `toml:"fingerprint,omitempty" yaml:"fingerprint,omitempty" json:"fingerprint,omitempty" help:"Expected TLS certificate fingerprint (SHA256:xx:xx:...). Recorded only; connections are not checked against it."`
}

// ScreenAdjacencyConfig overrides the auto-generated symmetric inverse of a
// Screens entry, used for multi-hop routing where the natural "go back the
// way you came" edge isn't the correct next hop.
type ScreenAdjacencyConfig struct {
	Screen   string `toml:"screen" yaml:"screen" json:"screen"`
	Neighbor string `toml:"neighbor" yaml:"neighbor" json:"neighbor"`
	Position string `toml:"position" yaml:"position" json:"position"`
}

// Config is the complete on-disk configuration for one daemon instance.
// There is no clipboard section: clipboard synchronisation is out of scope.
type Config struct {
	Daemon          DaemonConfig            `toml:"daemon" yaml:"daemon" json:"daemon"`
	Identity        IdentityConfig          `toml:"identity" yaml:"identity" json:"identity"`
	Input           InputConfig             `toml:"input" yaml:"input" json:"input"`
	Screens         []ScreenConfig          `toml:"screens" yaml:"screens" json:"screens"`
	ScreenAdjacency []ScreenAdjacencyConfig `toml:"screen_adjacency" yaml:"screen_adjacency" json:"screen_adjacency"`
}

// Default returns the configuration used when no config file is found.
func Default() Config {
	return Config{
		Daemon: DaemonConfig{
			Port:         24800,
			AdminPort:    24801,
			Bind:         "0.0.0.0",
			Discovery:    true,
			LogLevel:     "info",
			ScreenWidth:  1920,
			ScreenHeight: 1080,
		},
		Input: InputConfig{
			ReleaseHotkey: []string{"LeftCtrl", "LeftShift", "Escape"},
		},
	}
}
