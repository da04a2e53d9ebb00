// Package config provides reading and writing of darc configuration.
// Supports both global (~/.darc/config.yaml) and local (.darc/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.darc/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is repository-specific config in .darc/config.yaml
	ScopeLocal
)

// User identifies who is working with the catalog. The name is stamped on
// owner/created_by/modified_by and is the identity detail views require.
type User struct {
	Name string `yaml:"name,omitempty"`
}

// Search holds search defaults.
type Search struct {
	CaseSensitive *bool `yaml:"case_sensitive,omitempty"`
}

// Render holds tree rendering options.
type Render struct {
	Indent *string `yaml:"indent,omitempty"`
}

// Limits holds size limit configuration options.
type Limits struct {
	MaxName *int `yaml:"max_name,omitempty"`
	MaxSlug *int `yaml:"max_slug,omitempty"`
	MaxLog  *int `yaml:"max_log,omitempty"`
}

// Default values applied when not configured.
const (
	DefaultIndent  = "\t"
	DefaultMaxName = 255
	DefaultMaxSlug = 255
	DefaultMaxLog  = 1024 * 1024 // 1 MB of provenance per file
)

// Validation bounds for configuration values.
const (
	MinMaxName = 1
	MaxMaxName = 4096
	MinMaxSlug = 1
	MaxMaxSlug = 1024
	MinMaxLog  = 1
	MaxMaxLog  = 64 * 1024 * 1024
	MaxIndent  = 16
)

// Config contains configuration for darc.
type Config struct {
	User   User   `yaml:"user,omitempty"`
	Search Search `yaml:"search,omitempty"`
	Render Render `yaml:"render,omitempty"`
	Limits Limits `yaml:"limits,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if err := bounded("max_name", c.Limits.MaxName, MinMaxName, MaxMaxName); err != nil {
		return err
	}
	if err := bounded("max_slug", c.Limits.MaxSlug, MinMaxSlug, MaxMaxSlug); err != nil {
		return err
	}
	if err := bounded("max_log", c.Limits.MaxLog, MinMaxLog, MaxMaxLog); err != nil {
		return err
	}
	if c.Render.Indent != nil {
		v := *c.Render.Indent
		if v == "" || len(v) > MaxIndent || strings.ContainsAny(v, "\r\n") {
			return fmt.Errorf("%w: indent must be 1-%d characters without line breaks",
				ErrInvalidValue, MaxIndent)
		}
	}
	return nil
}

func bounded(name string, v *int, lo, hi int) error {
	if v == nil {
		return nil
	}
	if *v < lo || *v > hi {
		return fmt.Errorf("%w: %s must be between %d and %d, got %d",
			ErrInvalidValue, name, lo, hi, *v)
	}
	return nil
}

// UserName returns the configured user name, or "" when unset.
func (c *Config) UserName() string {
	return c.User.Name
}

// CaseSensitive returns whether search matches case (defaults to false).
func (c *Config) CaseSensitive() bool {
	if c.Search.CaseSensitive == nil {
		return false
	}
	return *c.Search.CaseSensitive
}

// Indent returns the tree indent unit (defaults to a tab).
func (c *Config) Indent() string {
	if c.Render.Indent == nil {
		return DefaultIndent
	}
	return *c.Render.Indent
}

// MaxName returns the maximum name/title length in characters (defaults to 255).
func (c *Config) MaxName() int {
	if c.Limits.MaxName == nil {
		return DefaultMaxName
	}
	return *c.Limits.MaxName
}

// MaxSlug returns the maximum slug length (defaults to 255).
func (c *Config) MaxSlug() int {
	if c.Limits.MaxSlug == nil {
		return DefaultMaxSlug
	}
	return *c.Limits.MaxSlug
}

// MaxLog returns the maximum provenance log size in bytes (defaults to 1 MB).
func (c *Config) MaxLog() int {
	if c.Limits.MaxLog == nil {
		return DefaultMaxLog
	}
	return *c.Limits.MaxLog
}

// LocalPath returns the path to the local (repository) config file.
func LocalPath() string {
	return filepath.Join(".darc", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.darc/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".darc", "config.yaml")
}

// Path returns the local config path (for backwards compatibility).
func Path() string {
	return LocalPath()
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	// Check if local config exists
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	// Fall back to global
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
