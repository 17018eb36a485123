package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/ritzau/folia-viewer/pkg/geometry"
	"github.com/ritzau/folia-viewer/pkg/layout"
	"github.com/spf13/pflag"
)

// DefaultConfigFile is read from the working directory when present.
const DefaultConfigFile = "folia-viewer.toml"

// EnvPrefix prefixes every environment override. Nested keys are separated
// by a double underscore, e.g. FOLIA_VIEWER_LAYOUT__BOX_WIDTH=1200.
const EnvPrefix = "FOLIA_VIEWER_"

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig            `koanf:"server"`
	Provider ProviderConfig          `koanf:"provider"`
	Layout   layout.Config           `koanf:"layout"`
	View     geometry.ViewportConfig `koanf:"view"`

	Verbosity  string `koanf:"verbosity"`
	VerboseCnt int    `koanf:"verbose"`
	LogJSON    bool   `koanf:"log_json"`
}

// ServerConfig configures the web viewer.
type ServerConfig struct {
	Host        string `koanf:"host"`
	Port        int    `koanf:"port"`
	OpenBrowser bool   `koanf:"open"`
}

// ProviderConfig selects where graph data comes from: a catalog API base
// URL or a recorded JSON response on disk.
type ProviderConfig struct {
	URL   string `koanf:"url"`
	File  string `koanf:"file"`
	Watch bool   `koanf:"watch"`
}

// flagKeys maps CLI flag names to config keys. Flags not listed are not
// configuration (e.g. --config itself).
var flagKeys = map[string]string{
	"host":          "server.host",
	"port":          "server.port",
	"open":          "server.open",
	"provider-url":  "provider.url",
	"provider-file": "provider.file",
	"watch":         "provider.watch",
	"seed":          "layout.seed",
	"iterations":    "layout.iterations",
	"initial-scale": "view.initial_scale",
	"verbosity":     "verbosity",
	"verbose":       "verbose",
	"log-json":      "log_json",
}

func defaults() map[string]interface{} {
	l := layout.DefaultConfig()
	v := geometry.DefaultViewportConfig()

	lanes := make([]string, len(l.Lanes))
	for i, t := range l.Lanes {
		lanes[i] = string(t)
	}

	return map[string]interface{}{
		"server.host": "localhost",
		"server.port": 8080,
		"server.open": false,

		"provider.url":   "",
		"provider.file":  "",
		"provider.watch": false,

		"layout.box_width":           l.BoxWidth,
		"layout.box_height":          l.BoxHeight,
		"layout.iterations":          l.Iterations,
		"layout.attraction":          l.Attraction,
		"layout.repulsion":           l.Repulsion,
		"layout.ideal_length":        l.IdealLength,
		"layout.temperature_ratio":   l.TemperatureRatio,
		"layout.convergence_epsilon": l.ConvergenceEpsilon,
		"layout.node_size":           l.NodeSize,
		"layout.margin":              l.Margin,
		"layout.collision_passes":    l.CollisionPasses,
		"layout.lane_jitter":         l.LaneJitter,
		"layout.lanes":               lanes,
		"layout.seed":                l.Seed,

		"view.initial_scale": v.InitialScale,
		"view.min_scale":     v.MinScale,
		"view.max_scale":     v.MaxScale,
		"view.zoom_factor":   v.ZoomFactor,

		"verbosity": "",
		"verbose":   0,
		"log_json":  false,
	}
}

// Load loads configuration from defaults, config file, .env, environment
// variables, and flags.
// Priority: Flags > Env > Config File > Defaults
func Load(f *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config File - explicit --config must exist, the default is optional
	path, explicit := configPath(f)
	if err := loadFile(k, path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	// 3. .env in the working directory feeds the environment layer
	_ = godotenv.Load()

	// 4. Environment Variables
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 5. Flags
	if f != nil {
		if err := k.Load(posflag.ProviderWithFlag(f, ".", k, func(fl *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[fl.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(f, fl)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if c.Provider.URL != "" && c.Provider.File != "" {
		return errors.New("provider.url and provider.file are mutually exclusive")
	}
	if c.Provider.Watch && c.Provider.File == "" {
		return errors.New("provider.watch requires provider.file")
	}
	if err := c.Layout.Validate(); err != nil {
		return fmt.Errorf("invalid layout config: %w", err)
	}
	if err := c.View.Validate(); err != nil {
		return fmt.Errorf("invalid view config: %w", err)
	}
	return nil
}

func configPath(f *pflag.FlagSet) (string, bool) {
	if f != nil {
		if fl := f.Lookup("config"); fl != nil && fl.Value.String() != "" {
			return fl.Value.String(), true
		}
	}
	return DefaultConfigFile, false
}

func loadFile(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	return nil
}

// envKey turns FOLIA_VIEWER_LAYOUT__BOX_WIDTH into layout.box_width.
// Lane lists are comma separated.
func envKey(key, value string) (string, interface{}) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	key = strings.ReplaceAll(key, "__", ".")
	if key == "layout.lanes" {
		return key, strings.Split(value, ",")
	}
	return key, value
}
