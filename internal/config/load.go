package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// Load reads the config file at path, or returns Default() if path is empty
// or does not exist. Format is chosen from the file extension.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".json":
		err = json.Unmarshal(data, &cfg)
	case ".toml", "":
		err = toml.Unmarshal(data, &cfg)
	default:
		err = toml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ResolveName returns the configured identity name, falling back to the
// host name and finally to "cross-control" (setup.rs load_or_create semantics).
func ResolveName(cfg IdentityConfig) string {
	if cfg.Name != "" {
		return cfg.Name
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "cross-control"
}
