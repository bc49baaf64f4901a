package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/edgelink/edgelinkd/internal/configpaths"
)

// InitCommand scaffolds a configuration file, grounded on the teacher's
// reflection-based "config init" but driven off this package's own struct
// tags rather than Kong's.
type InitCommand struct {
	Format string `help:"Output format" enum:"json,yaml,toml" default:"toml"`
	Output string `help:"Destination file path (defaults to the platform config dir)"`
	Force  bool   `help:"Overwrite if the file already exists"`
}

// Run writes a scaffold Config, with scalar fields defaulted from struct
// tags, one example Screens entry to edit in place, and an empty
// ScreenAdjacency list.
func (c *InitCommand) Run() error {
	format := normalizeFormat(c.Format)
	if format == "" {
		return fmt.Errorf("unsupported format: %s", c.Format)
	}

	root := buildMapFromStruct(reflect.TypeOf(Config{}))
	root["screens"] = []any{
		map[string]any{
			"name":     "neighbour",
			"address":  "neighbour.local:24800",
			"position": "Right",
		},
	}
	root["screen_adjacency"] = []any{}

	dest := c.Output
	if dest == "" {
		p, err := configpaths.DefaultConfigPath(format)
		if err != nil {
			return err
		}
		dest = p
	}
	if !c.Force {
		if _, err := os.Stat(dest); err == nil {
			return errors.New("destination exists; use --force to overwrite")
		}
	}
	if err := configpaths.EnsureDir(dest); err != nil {
		return err
	}

	var data []byte
	var err error
	switch format {
	case "json":
		data, err = json.MarshalIndent(root, "", "  ")
	case "yaml":
		data, err = yaml.Marshal(root)
	case "toml":
		data, err = toml.Marshal(root)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0o644)
}

func normalizeFormat(f string) string {
	switch strings.ToLower(f) {
	case "json":
		return "json"
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	default:
		return ""
	}
}

// buildMapFromStruct walks t's fields, reading the "toml" tag for the key
// name (all three encoders key off it via struct field order here, since we
// build a plain map rather than marshal the struct itself) and "default"
// for scalar values. ReleaseHotkey gets its default key list here; other
// slice fields are left for the caller to fill in.
func buildMapFromStruct(t reflect.Type) map[string]any {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	out := map[string]any{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		key := f.Tag.Get("toml")
		if idx := strings.IndexByte(key, ','); idx >= 0 {
			key = key[:idx]
		}
		if key == "" {
			key = strings.ToLower(f.Name)
		}

		ft := f.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct {
			out[key] = buildMapFromStruct(ft)
			continue
		}
		if ft.Kind() == reflect.Slice {
			// Screens and ScreenAdjacency are handled by the caller.
			if f.Name == "ReleaseHotkey" {
				out[key] = []string{"LeftCtrl", "LeftShift", "Escape"}
			}
			continue
		}

		val := defaultValueForField(ft, f.Tag.Get("default"))
		if val != nil {
			out[key] = val
		}
	}
	return out
}

func defaultValueForField(t reflect.Type, def string) any {
	switch t.Kind() {
	case reflect.String:
		return def
	case reflect.Bool:
		if def == "" {
			return false
		}
		b, err := strconv.ParseBool(def)
		if err != nil {
			return false
		}
		return b
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if def == "" {
			return 0
		}
		n, err := strconv.ParseInt(def, 10, 64)
		if err != nil {
			return 0
		}
		return n
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if def == "" {
			return 0
		}
		n, err := strconv.ParseUint(def, 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return nil
	}
}
