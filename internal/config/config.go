// Package config handles the slackstatus configuration file and the
// per-account credentials it points at.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/matsen/slackstatus/internal/status"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "slackstatus"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"

	// DefaultWorkers keeps dispatch sequential unless configured otherwise.
	DefaultWorkers = 1
	// MaxWorkers bounds parallel dispatch.
	MaxWorkers = 16
	// DefaultTimeoutSeconds is the per-request HTTP timeout.
	DefaultTimeoutSeconds = 30
)

// DefaultTokenEnvs are the environment variables read when no accounts are configured.
var DefaultTokenEnvs = []string{"SLACK_TOKEN_1", "SLACK_TOKEN_2"}

// ErrInvalidConfig is returned when the config file fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Config represents $XDG_CONFIG_HOME/slackstatus/config.yml.
type Config struct {
	Accounts       []AccountEntry           `yaml:"accounts,omitempty"`
	Workers        int                      `yaml:"workers,omitempty"`
	TimeoutSeconds int                      `yaml:"timeout_seconds,omitempty"`
	Presets        map[string]status.Preset `yaml:"presets,omitempty"`
}

// AccountEntry names one workspace and the environment variable holding its token.
type AccountEntry struct {
	Name     string `yaml:"name,omitempty"`
	TokenEnv string `yaml:"token_env"`
}

// ConfigPath returns the path to the config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/slackstatus/config.yml.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads the config file at path. An empty path means ConfigPath().
// A missing default config yields Default(); a missing explicit path is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = ConfigPath()
		if path == "" {
			return Default(), nil
		}
	}
	path = ExpandPath(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if len(cfg.Accounts) == 0 {
		for _, env := range DefaultTokenEnvs {
			cfg.Accounts = append(cfg.Accounts, AccountEntry{TokenEnv: env})
		}
	}
	for i := range cfg.Accounts {
		if cfg.Accounts[i].Name == "" {
			cfg.Accounts[i].Name = fmt.Sprintf("workspace-%d", i+1)
		}
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = DefaultTimeoutSeconds
	}
}

// Validate checks account entries and the worker bound. Presets are
// validated when the resolver is built.
func (c *Config) Validate() error {
	seen := make(map[string]bool)
	for i, a := range c.Accounts {
		if strings.TrimSpace(a.TokenEnv) == "" {
			return fmt.Errorf("%w: account entry %d must have 'token_env'", ErrInvalidConfig, i+1)
		}
		if seen[a.Name] {
			return fmt.Errorf("%w: duplicate account name %q", ErrInvalidConfig, a.Name)
		}
		seen[a.Name] = true
	}
	if c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers must be at most %d, got %d", ErrInvalidConfig, MaxWorkers, c.Workers)
	}
	return nil
}

// Timeout returns the HTTP timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
