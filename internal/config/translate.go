package config

import (
	"fmt"

	"github.com/edgelink/edgelinkd/internal/daemon"
	"github.com/edgelink/edgelinkd/internal/types"
)

// ToDaemonConfig converts the on-disk shape (strings, for human editing)
// into the daemon core's typed Config. localDevices comes from whatever
// inputbackend.Capture the caller constructs, since device enumeration is a
// backend concern this package has no part in.
func ToDaemonConfig(cfg Config, localDevices []types.DeviceInfo) (daemon.Config, error) {
	hotkey := make([]types.KeyCode, 0, len(cfg.Input.ReleaseHotkey))
	for _, name := range cfg.Input.ReleaseHotkey {
		code, ok := types.ParseKeyCodeName(name)
		if !ok {
			return daemon.Config{}, fmt.Errorf("release_hotkey: unknown key %q", name)
		}
		hotkey = append(hotkey, code)
	}

	screens := make([]daemon.ScreenConfig, 0, len(cfg.Screens))
	for _, sc := range cfg.Screens {
		pos, ok := types.ParsePosition(sc.Position)
		if !ok {
			return daemon.Config{}, fmt.Errorf("screens[%s]: unknown position %q", sc.Name, sc.Position)
		}
		screens = append(screens, daemon.ScreenConfig{
			Name:        sc.Name,
			Address:     sc.Address,
			Position:    pos,
			Fingerprint: sc.Fingerprint,
		})
	}

	adjacency := make([]daemon.AdjacencyConfig, 0, len(cfg.ScreenAdjacency))
	for _, a := range cfg.ScreenAdjacency {
		pos, ok := types.ParsePosition(a.Position)
		if !ok {
			return daemon.Config{}, fmt.Errorf("screen_adjacency[%s->%s]: unknown position %q", a.Screen, a.Neighbor, a.Position)
		}
		adjacency = append(adjacency, daemon.AdjacencyConfig{
			Screen:   a.Screen,
			Neighbor: a.Neighbor,
			Position: pos,
		})
	}

	return daemon.Config{
		Name: ResolveName(cfg.Identity),
		Screen: types.ScreenGeometry{
			Width:  cfg.Daemon.ScreenWidth,
			Height: cfg.Daemon.ScreenHeight,
		},
		ReleaseHotkey:   hotkey,
		Screens:         screens,
		ScreenAdjacency: adjacency,
		LocalDevices:    localDevices,
	}, nil
}
