// Package config loads the schemasynth.toml project file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-sql-driver/mysql"

	"schemasynth/internal/dialect"
	"schemasynth/internal/logging"
	"schemasynth/internal/output"
)

// DefaultFile is the project file name looked up when none is given.
const DefaultFile = "schemasynth.toml"

// Config is the project configuration.
type Config struct {
	Dialect       string         `toml:"dialect"`
	Baseline      []string       `toml:"baseline"`      // glob patterns of baseline schema files
	Contributions []string       `toml:"contributions"` // glob patterns of contribution files
	Output        string         `toml:"output"`        // empty = stdout
	Format        string         `toml:"format"`        // sql|json
	Database      DatabaseConfig `toml:"database"`
	Log           LogConfig      `toml:"log"`

	// configDir is the directory containing the TOML file, used to resolve relative paths.
	configDir string
}

// DatabaseConfig points at an optional live baseline.
type DatabaseConfig struct {
	DSN string `toml:"dsn"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the configuration used when no project file exists.
func Default() *Config {
	return &Config{
		Dialect: string(dialect.MySQL),
		Format:  string(output.FormatSQL),
		Log:     LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads a TOML project file, applies defaults, resolves relative paths
// against the file's directory and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if unknown := md.Undecoded(); len(unknown) > 0 {
		keys := make([]string, len(unknown))
		for i, k := range unknown {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	cfg.configDir = filepath.Dir(absPath)

	for i, p := range cfg.Baseline {
		cfg.Baseline[i] = cfg.resolvePath(p)
	}
	for i, p := range cfg.Contributions {
		cfg.Contributions[i] = cfg.resolvePath(p)
	}
	if cfg.Output != "" {
		cfg.Output = cfg.resolvePath(cfg.Output)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every value that can be checked without I/O.
func (c *Config) Validate() error {
	c.Dialect = strings.ToLower(strings.TrimSpace(c.Dialect))
	if _, err := dialect.GetDialect(dialect.Type(c.Dialect)); err != nil {
		return fmt.Errorf("dialect: %w", err)
	}

	switch output.Format(strings.ToLower(c.Format)) {
	case "", output.FormatSQL, output.FormatJSON:
	default:
		return fmt.Errorf("format must be one of: sql, json")
	}

	if c.Database.DSN != "" {
		if _, err := mysql.ParseDSN(c.Database.DSN); err != nil {
			return fmt.Errorf("database.dsn: %w", err)
		}
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		return fmt.Errorf("log.format: %w", err)
	}
	return nil
}

// resolvePath resolves a path relative to the config file directory.
func (c *Config) resolvePath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.configDir, p)
}
