// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure. It is constructed once
// and passed explicitly into the pipeline; there is no process-wide
// configuration state.
type Config struct {
	Auth   AuthConfig   `toml:"auth"`
	Run    RunConfig    `toml:"run"`
	Cache  CacheConfig  `toml:"cache"`
	Export ExportConfig `toml:"export"`
}

// AuthConfig carries the Filmweb session cookies. All three cookie
// values come from a logged-in browser session and can be invalidated
// server-side at any time.
type AuthConfig struct {
	Username string `toml:"username"`
	Token    string `toml:"token"`
	Session  string `toml:"session"`
	JWT      string `toml:"jwt"`
}

type RunConfig struct {
	Workers  int    `toml:"workers"`
	LogLevel string `toml:"log_level"`
	Quiet    bool   `toml:"quiet"`
}

// CacheConfig controls the sqlite-backed IMDb lookup cache.
// An empty path disables caching.
type CacheConfig struct {
	Path string `toml:"path"`
}

type ExportConfig struct {
	Dir string `toml:"dir"`
}

// Load reads and parses the configuration file. A missing file is not
// an error: every option can be supplied through flags or environment
// variables instead.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyDefaults(&cfg)
			return &cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Substitute environment variables
	content := substituteEnvVars(string(data))

	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Run.Workers == 0 {
		cfg.Run.Workers = 6
	}
	if cfg.Run.LogLevel == "" {
		cfg.Run.LogLevel = "info"
	}
	if cfg.Export.Dir == "" {
		cfg.Export.Dir = "exports"
	}
}

// Validate checks that the configuration is complete enough to run an
// export. Called after flag and environment overrides are merged in.
func (c *Config) Validate() error {
	if c.Auth.Token == "" {
		return fmt.Errorf("auth: missing _fwuser_token cookie value")
	}
	if c.Auth.Session == "" {
		return fmt.Errorf("auth: missing _fwuser_sessionId cookie value")
	}
	if c.Auth.JWT == "" {
		return fmt.Errorf("auth: missing JWT cookie value")
	}
	if c.Run.Workers < 1 || c.Run.Workers > 8 {
		return fmt.Errorf("run: workers must be between 1 and 8, got %d", c.Run.Workers)
	}
	return nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1] // Strip ${ and }
		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		return match // Leave unchanged if not found
	})
}
