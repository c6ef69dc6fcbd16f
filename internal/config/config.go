package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/tdhctl/internal/tdh"
)

// Config drives the tdhctl binary: output shaping for one-shot listings
// and the listener surface for serve mode.
type Config struct {
	App          string
	Addr         string
	CORSOrigins  []string
	Format       string // text | json
	Schema       string // provider filter: schema source name, empty matches all
	NameContains string // provider filter: case-insensitive substring, empty matches all
}

func Default() Config {
	return Config{
		App:    "tdhctl",
		Addr:   ":9460",
		Format: "text",
	}
}

type fileConfig struct {
	App          string   `toml:"app"`
	Addr         string   `toml:"addr"`
	CORSOrigins  []string `toml:"cors_origins"`
	Format       string   `toml:"format"`
	Schema       string   `toml:"schema"`
	NameContains string   `toml:"name_contains"`
}

// Load reads path and overlays only the keys it defines onto the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("app") {
		if app := strings.TrimSpace(raw.App); app != "" {
			cfg.App = app
		}
	}

	if meta.IsDefined("addr") {
		cfg.Addr = strings.TrimSpace(raw.Addr)
	}

	if meta.IsDefined("cors_origins") {
		cfg.CORSOrigins = normalizeOrigins(raw.CORSOrigins)
	}

	if meta.IsDefined("format") {
		cfg.Format = strings.ToLower(strings.TrimSpace(raw.Format))
	}

	if meta.IsDefined("schema") {
		cfg.Schema = strings.ToLower(strings.TrimSpace(raw.Schema))
	}

	if meta.IsDefined("name_contains") {
		cfg.NameContains = strings.TrimSpace(raw.NameContains)
	}

	return cfg, nil
}

// Validate rejects values the binary cannot honor.
func (c Config) Validate() error {
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown format %q", c.Format)
	}
	if c.Schema != "" {
		if _, err := tdh.ParseSchemaSource(c.Schema); err != nil {
			return fmt.Errorf("config: schema filter: %w", err)
		}
	}
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("config: addr must not be empty")
	}
	return nil
}

// Matches applies the provider filters.
func (c Config) Matches(p tdh.Provider) bool {
	if c.Schema != "" {
		want, err := tdh.ParseSchemaSource(c.Schema)
		if err != nil || p.Schema != want {
			return false
		}
	}
	if c.NameContains != "" &&
		!strings.Contains(strings.ToLower(p.Name), strings.ToLower(c.NameContains)) {
		return false
	}
	return true
}

func normalizeOrigins(in []string) []string {
	if len(in) == 0 {
		return []string{}
	}
	out := make([]string, 0, len(in))
	for _, origin := range in {
		v := strings.TrimSpace(origin)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
