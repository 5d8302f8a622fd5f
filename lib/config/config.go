// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the config file used by Load.
const EnvironmentVariable = "DYNVIEW_CONFIG"

// Config is the master configuration for dynview.
type Config struct {
	// Paths configures directory locations.
	Paths PathsConfig `yaml:"paths"`

	// Log configures the command logger.
	Log LogConfig `yaml:"log"`

	// Cache configures the parsed-document cache.
	Cache CacheConfig `yaml:"cache"`

	// Viewer configures the interactive grid viewer.
	Viewer ViewerConfig `yaml:"viewer"`

	// Render configures one-shot rendering.
	Render RenderConfig `yaml:"render"`
}

// PathsConfig configures directory locations.
type PathsConfig struct {
	// Root is the base directory for dynview data.
	// Default: ~/.cache/dynview
	Root string `yaml:"root"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error. Default: info
	Level string `yaml:"level"`

	// Format is one of auto, text, json. auto picks text on a
	// terminal and json otherwise. Default: auto
	Format string `yaml:"format"`
}

// CacheConfig configures the parsed-document cache.
type CacheConfig struct {
	// Enabled turns the cache on. Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the bbolt database file.
	// Default: ${DYNVIEW_ROOT}/documents.db
	Path string `yaml:"path"`
}

// ViewerConfig configures the interactive viewer.
type ViewerConfig struct {
	// Columns is the grid column count. Default: 1
	Columns int `yaml:"columns"`

	// PageSize is the number of grid rows PageUp/PageDown move; 0
	// moves by a screenful. Default: 0
	PageSize int `yaml:"page_size"`

	// Width fixes the viewer width; 0 follows the terminal.
	Width int `yaml:"width"`
}

// RenderConfig configures one-shot rendering.
type RenderConfig struct {
	// Width is the render width in columns. Default: 80
	Width int `yaml:"width"`
}

// Default returns the default configuration. LoadFile decodes the file
// over these values, so absent keys keep their defaults.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultRoot := filepath.Join(homeDir, ".cache", "dynview")

	return &Config{
		Paths: PathsConfig{Root: defaultRoot},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
		Cache: CacheConfig{
			Enabled: true,
			Path:    "${DYNVIEW_ROOT}/documents.db",
		},
		Viewer: ViewerConfig{Columns: 1},
		Render: RenderConfig{Width: 80},
	}
}

// Load loads configuration from the file named by DYNVIEW_CONFIG. It
// fails when the variable is unset.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your dynview.yaml config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. Unknown keys
// are errors.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.expandVariables()
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"DYNVIEW_ROOT": c.Paths.Root,
		"HOME":         os.Getenv("HOME"),
	}

	c.Paths.Root = expandVars(c.Paths.Root, vars)
	vars["DYNVIEW_ROOT"] = c.Paths.Root // Update for dependent paths.

	c.Cache.Path = expandVars(c.Cache.Path, vars)
}

// Expand applies path expansion to a Config built in code rather than
// loaded from a file.
func (c *Config) Expand() {
	c.expandVariables()
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		name := parts[1]
		defaultValue := parts[2]

		// Provided vars first, then the environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Paths.Root == "" {
		errs = append(errs, errors.New("paths.root is required"))
	}

	levels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(levels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of: %v", levels))
	}
	formats := []string{"auto", "text", "json"}
	if !slices.Contains(formats, c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format must be one of: %v", formats))
	}

	if c.Cache.Enabled && c.Cache.Path == "" {
		errs = append(errs, errors.New("cache.path is required when the cache is enabled"))
	}

	if c.Viewer.Columns < 1 {
		errs = append(errs, fmt.Errorf("viewer.columns must be at least 1, got %d", c.Viewer.Columns))
	}
	if c.Viewer.PageSize < 0 {
		errs = append(errs, fmt.Errorf("viewer.page_size must not be negative, got %d", c.Viewer.PageSize))
	}
	if c.Viewer.Width < 0 {
		errs = append(errs, fmt.Errorf("viewer.width must not be negative, got %d", c.Viewer.Width))
	}
	if c.Render.Width < 1 {
		errs = append(errs, fmt.Errorf("render.width must be at least 1, got %d", c.Render.Width))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
