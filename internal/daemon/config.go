package daemon

import "github.com/edgelink/edgelinkd/internal/types"

// ScreenConfig describes one neighbouring screen from this machine's point
// of view (spec.md §6 "[[screens]] entries").
type ScreenConfig struct {
	Name string
	// Address is present on the side that should dial and empty on the
	// listening side.
	Address     string
	Position    types.Position
	Fingerprint string
}

// AdjacencyConfig describes a remote-to-remote edge used for multi-hop
// routing (spec.md §6 "[[screen_adjacency]] entries").
type AdjacencyConfig struct {
	Screen   string
	Neighbor string
	Position types.Position
}

// Config is everything the daemon core needs at startup that setup shims
// (config loading, identity, cert material) produce. The daemon never reads
// a config file itself.
type Config struct {
	Name            string
	Screen          types.ScreenGeometry
	ReleaseHotkey   []types.KeyCode
	Screens         []ScreenConfig
	ScreenAdjacency []AdjacencyConfig
	LocalDevices    []types.DeviceInfo
}
