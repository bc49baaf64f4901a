// Package identity loads or creates the persistent MachineId every other
// machine in the mesh uses to recognise this one, grounded on
// cross-control-daemon's setup.rs::load_or_create_machine_id.
package identity

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/edgelink/edgelinkd/internal/types"
)

const fileName = "machine-id"

// LoadOrCreate reads configDir/machine-id, creating both the directory and
// a fresh random MachineId if either is missing.
func LoadOrCreate(configDir string) (types.MachineId, error) {
	path := filepath.Join(configDir, fileName)

	if content, err := os.ReadFile(path); err == nil {
		id, err := types.ParseMachineId(strings.TrimSpace(string(content)))
		if err != nil {
			return types.MachineId{}, fmt.Errorf("invalid %s: %w", path, err)
		}
		return id, nil
	} else if !os.IsNotExist(err) {
		return types.MachineId{}, fmt.Errorf("read %s: %w", path, err)
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return types.MachineId{}, fmt.Errorf("create config dir: %w", err)
	}
	id := types.NewMachineId()
	if err := os.WriteFile(path, []byte(id.String()), 0o600); err != nil {
		return types.MachineId{}, fmt.Errorf("write %s: %w", path, err)
	}
	return id, nil
}
