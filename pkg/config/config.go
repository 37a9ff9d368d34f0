// Package config loads application settings. Precedence, lowest to highest:
// built-in defaults, an optional YAML file, then QRFORM_* environment
// variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-qrform/pkg/render"
)

// Env variable names recognized by Load.
const (
	EnvRenderers  = "QRFORM_RENDERERS"
	EnvSizePx     = "QRFORM_SIZE_PX"
	EnvOutputDir  = "QRFORM_OUTPUT_DIR"
	EnvListenAddr = "QRFORM_LISTEN_ADDR"
)

// Config holds the settings shared by the TUI and web entry points.
type Config struct {
	// Renderers is the backend priority order for the fallback chain.
	Renderers []string `yaml:"renderers"`
	// SizePx is the edge length of generated images.
	SizePx int `yaml:"size_px"`
	// OutputDir receives exported PNG files.
	OutputDir string `yaml:"output_dir"`
	// ListenAddr is the bind address of the web preview. Loopback by default;
	// there is deliberately no remote-serving story here.
	ListenAddr string `yaml:"listen_addr"`
}

// Default returns the built-in settings: local encoder first, then the two
// remote image services.
func Default() Config {
	return Config{
		Renderers:  []string{"qrpng", "qrserver", "quickchart"},
		SizePx:     render.DefaultSizePx,
		OutputDir:  ".",
		ListenAddr: "127.0.0.1:8475",
	}
}

// Load builds the effective configuration. An empty path skips the file
// layer; a named file that does not exist is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(EnvRenderers); ok {
		var names []string
		for _, name := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(name); trimmed != "" {
				names = append(names, trimmed)
			}
		}
		c.Renderers = names
	}
	if v, ok := os.LookupEnv(EnvSizePx); ok {
		size, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvSizePx, err)
		}
		c.SizePx = size
	}
	if v, ok := os.LookupEnv(EnvOutputDir); ok {
		c.OutputDir = v
	}
	if v, ok := os.LookupEnv(EnvListenAddr); ok {
		c.ListenAddr = v
	}
	return nil
}

// Validate checks the settings that have hard bounds.
func (c Config) Validate() error {
	if len(c.Renderers) == 0 {
		return fmt.Errorf("config: at least one renderer is required")
	}
	if c.SizePx < render.MinSizePx || c.SizePx > render.MaxSizePx {
		return fmt.Errorf("config: size_px %d out of range [%d, %d]", c.SizePx, render.MinSizePx, render.MaxSizePx)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("config: output_dir is required")
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("config: listen_addr is required")
	}
	return nil
}
