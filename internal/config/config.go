// Package config provides configuration loading and defaults for colorgen.
//
// Configuration is read from colorgen.toml in the working directory and can
// be overridden by a .env file, by COLORGEN_* environment variables and
// finally by command-line flags. A missing config file means defaults.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/joho/godotenv"
	"tools.zach/dev/colorschemes/internal/atomicfile"
	"tools.zach/dev/colorschemes/internal/logger"
	"tools.zach/dev/colorschemes/internal/paths"
)

// CurrentVersion is the config schema version written by [Config.Save].
const CurrentVersion = 1

// ///////////////////////////////////////////////
// Configuration Types
// ///////////////////////////////////////////////

// Config represents the top-level tool configuration.
type Config struct {
	// Version is the config schema version.
	Version int `toml:"version"`
	// Catalog holds destination settings.
	Catalog CatalogConfig `toml:"catalog"`
	// Schemes holds scheme table selection settings.
	Schemes SchemesConfig `toml:"schemes"`
	// Log holds logging settings.
	Log LogConfig `toml:"log"`
}

// CatalogConfig holds destination settings.
type CatalogConfig struct {
	// Path is the .xcassets folder written to when no argument is given.
	Path string `toml:"path"`
}

// SchemesConfig selects and validates the scheme table.
type SchemesConfig struct {
	// File is a TOML scheme table. Empty uses the built-in table.
	File string `toml:"file"`
	// Only lists glob patterns of scheme names to generate. Empty means all.
	Only []string `toml:"only"`
	// StrictHex rejects colors without a leading "#".
	StrictHex bool `toml:"strict_hex"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is the minimum log level (trace, debug, info, warn, error).
	Level string `toml:"level"`
	// File additionally writes logs to this path, rotated by size.
	File string `toml:"file,omitempty"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation.
	MaxSizeMB int `toml:"max_size_mb"`
}

// ///////////////////////////////////////////////
// Default Configuration
// ///////////////////////////////////////////////

// DefaultConfig returns a Config populated with defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Catalog: CatalogConfig{
			Path: paths.DefaultCatalog,
		},
		Schemes: SchemesConfig{
			Only: []string{},
		},
		Log: LogConfig{
			Level:     "warn",
			MaxSizeMB: 10,
		},
	}
}

// ///////////////////////////////////////////////
// Loading and Saving
// ///////////////////////////////////////////////

// Load reads and parses the configuration file at path.
// If the file doesn't exist, returns DefaultConfig.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Version > CurrentVersion {
		return nil, fmt.Errorf("config version %d is newer than supported version %d", cfg.Version, CurrentVersion)
	}
	cfg.Version = CurrentVersion

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to disk as TOML using atomic file write.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err := atomicfile.Write(path, buf.Bytes(), 0o644)
	return err
}

// ///////////////////////////////////////////////
// Environment Overrides
// ///////////////////////////////////////////////

// Environment variables read by [Config.ApplyEnv].
const (
	EnvCatalog     = "COLORGEN_CATALOG"
	EnvSchemesFile = "COLORGEN_SCHEMES_FILE"
	EnvOnly        = "COLORGEN_ONLY"
	EnvStrictHex   = "COLORGEN_STRICT_HEX"
	EnvLogLevel    = "COLORGEN_LOG_LEVEL"
	EnvLogFile     = "COLORGEN_LOG_FILE"
)

// Environment returns override values from the .env file at dotenvPath
// (if present) with the process environment layered on top.
func Environment(dotenvPath string) (map[string]string, error) {
	env := map[string]string{}
	if dotenvPath != "" {
		values, err := godotenv.Read(dotenvPath)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read %s: %w", dotenvPath, err)
		}
		for k, v := range values {
			env[k] = v
		}
	}
	for _, key := range []string{EnvCatalog, EnvSchemesFile, EnvOnly, EnvStrictHex, EnvLogLevel, EnvLogFile} {
		if v, ok := os.LookupEnv(key); ok {
			env[key] = v
		}
	}
	return env, nil
}

// ApplyEnv overlays COLORGEN_* values from env onto c and re-validates.
func (c *Config) ApplyEnv(env map[string]string) error {
	if v, ok := env[EnvCatalog]; ok && v != "" {
		c.Catalog.Path = v
	}
	if v, ok := env[EnvSchemesFile]; ok {
		c.Schemes.File = v
	}
	if v, ok := env[EnvOnly]; ok {
		c.Schemes.Only = splitList(v)
	}
	if v, ok := env[EnvStrictHex]; ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvStrictHex, v, err)
		}
		c.Schemes.StrictHex = b
	}
	if v, ok := env[EnvLogLevel]; ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := env[EnvLogFile]; ok {
		c.Log.File = v
	}
	return c.Validate()
}

// splitList splits a comma-separated list, dropping empty items. Commas
// inside {...} belong to a glob alternation and do not split.
func splitList(s string) []string {
	items := []string{}
	add := func(item string) {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				add(s[start:i])
				start = i + 1
			}
		}
	}
	add(s[start:])
	return items
}

// ///////////////////////////////////////////////
// Validation
// ///////////////////////////////////////////////

// Validate checks that all configuration values are within acceptable ranges.
func (c *Config) Validate() error {
	if !paths.IsCatalog(c.Catalog.Path) {
		return fmt.Errorf("invalid catalog.path %q: must end with %s", c.Catalog.Path, paths.CatalogExt)
	}

	for _, p := range c.Schemes.Only {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid schemes.only pattern %q", p)
		}
	}

	if !logger.ValidLevel(c.Log.Level) {
		return fmt.Errorf("invalid log.level %q: must be trace, debug, info, warn, or error", c.Log.Level)
	}

	if c.Log.MaxSizeMB <= 0 {
		return fmt.Errorf("log.max_size_mb must be > 0, got %d", c.Log.MaxSizeMB)
	}

	return nil
}
