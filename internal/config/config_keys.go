// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic. This separation allows config.go to focus on YAML structure
// and loading, while this file handles the MCP and CLI interface where config
// is accessed by string keys (e.g., "limits.max_name").
//
// Design: Pointers are used for optional fields so we can distinguish between
// "not set" (nil) and "explicitly set to zero/false". This enables proper
// defaulting - we only apply defaults when the user hasn't set a value.

package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"user.name",
		"search.case_sensitive",
		"render.indent",
		"limits.max_name", "limits.max_slug", "limits.max_log",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string. The indent is
// returned escaped so a tab is visible.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "user.name":
		return c.User.Name, nil
	case "search.case_sensitive":
		return strconv.FormatBool(c.CaseSensitive()), nil
	case "render.indent":
		return escapeIndent(c.Indent()), nil
	case "limits.max_name":
		return strconv.Itoa(c.MaxName()), nil
	case "limits.max_slug":
		return strconv.Itoa(c.MaxSlug()), nil
	case "limits.max_log":
		return strconv.Itoa(c.MaxLog()), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key. For render.indent the two
// characters `\t` are accepted in place of a literal tab.
func (c *Config) Set(key, value string) error {
	switch key {
	case "user.name":
		c.User.Name = strings.TrimSpace(value)
	case "search.case_sensitive":
		v := strings.ToLower(value)
		if v != "true" && v != "false" {
			return fmt.Errorf("%w: search.case_sensitive must be true or false", ErrInvalidValue)
		}
		b := v == "true"
		c.Search.CaseSensitive = &b
	case "render.indent":
		v := strings.ReplaceAll(value, `\t`, "\t")
		c.Render.Indent = &v
	case "limits.max_name":
		n, err := positive(key, value)
		if err != nil {
			return err
		}
		c.Limits.MaxName = &n
	case "limits.max_slug":
		n, err := positive(key, value)
		if err != nil {
			return err
		}
		c.Limits.MaxSlug = &n
	case "limits.max_log":
		n, err := positive(key, value)
		if err != nil {
			return err
		}
		c.Limits.MaxLog = &n
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return c.Validate()
}

func positive(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", ErrInvalidValue, key)
	}
	return n, nil
}

func escapeIndent(s string) string {
	return strings.ReplaceAll(s, "\t", `\t`)
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	out := make(map[string]string, len(ValidKeys()))
	for _, k := range ValidKeys() {
		out[k], _ = c.Get(k)
	}
	return out
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "user.name":
		return c.User.Name != ""
	case "search.case_sensitive":
		return c.Search.CaseSensitive != nil
	case "render.indent":
		return c.Render.Indent != nil
	case "limits.max_name":
		return c.Limits.MaxName != nil
	case "limits.max_slug":
		return c.Limits.MaxSlug != nil
	case "limits.max_log":
		return c.Limits.MaxLog != nil
	default:
		return false
	}
}
