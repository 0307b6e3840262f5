// Package config holds wallsift's runtime configuration: built-in
// defaults, the optional TOML config file, and the validation every other
// component relies on having already happened.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/pelletier/go-toml/v2"
)

// Config is the fully resolved configuration a run executes with.
// Precedence is defaults, then the config file, then command-line flags;
// merging happens in the cmd layer.
type Config struct {
	// Patterns are the trigger expressions, one space each, in screen
	// order from the top.
	Patterns []string

	// File is the input file; empty means standard input.
	File string

	// Follow keeps reading File as it grows instead of stopping at its
	// end.
	Follow bool

	// Command, when set, is run under a pty and supplies the input.
	Command string

	// RestartOnFind restarts a space whenever its pattern matches again,
	// without waiting for the region to fill.
	RestartOnFind bool

	// ClearOnRestart blanks a space's region when it restarts.
	ClearOnRestart bool

	// HistoryLines is how many recent lines are replayed into a space on
	// activation.
	HistoryLines int

	// LogFile and LogLevel configure the debug log. An empty LogFile
	// disables logging unless Debug forces a default path.
	LogFile  string
	LogLevel string
	Debug    bool

	compiled []*regexp.Regexp
}

// fileConfig is the subset settable from the TOML config file.
type fileConfig struct {
	HistoryLines   *int  `toml:"history_lines"`
	RestartOnFind  *bool `toml:"restart_on_find"`
	ClearOnRestart *bool `toml:"clear_on_restart"`
	Log            struct {
		File  string `toml:"file"`
		Level string `toml:"level"`
	} `toml:"log"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{LogLevel: "info"}
}

// DefaultPath returns the conventional config file location, or an empty
// string when the user config directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "wallsift", "config.toml")
}

// LoadFile merges the TOML file at path into cfg. A missing file is not an
// error; a malformed one is.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if fc.HistoryLines != nil {
		cfg.HistoryLines = *fc.HistoryLines
	}
	if fc.RestartOnFind != nil {
		cfg.RestartOnFind = *fc.RestartOnFind
	}
	if fc.ClearOnRestart != nil {
		cfg.ClearOnRestart = *fc.ClearOnRestart
	}
	if fc.Log.File != "" {
		cfg.LogFile = fc.Log.File
	}
	if fc.Log.Level != "" {
		cfg.LogLevel = fc.Log.Level
	}
	return nil
}

// Validate checks everything the display engine assumes is already true:
// at least one pattern, every pattern compilable, a non-negative history
// size, and input modes that do not conflict.
func (c *Config) Validate() error {
	if len(c.Patterns) == 0 {
		return fmt.Errorf("at least one pattern is required")
	}
	c.compiled = make([]*regexp.Regexp, 0, len(c.Patterns))
	for _, p := range c.Patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		c.compiled = append(c.compiled, re)
	}
	if c.HistoryLines < 0 {
		return fmt.Errorf("history must be non-negative, got %d", c.HistoryLines)
	}
	if c.Command != "" && c.File != "" {
		return fmt.Errorf("-file and -cmd are mutually exclusive")
	}
	if c.Follow && c.File == "" {
		return fmt.Errorf("-follow requires -file")
	}
	return nil
}

// Triggers returns the compiled patterns. Only valid after Validate has
// succeeded.
func (c *Config) Triggers() []*regexp.Regexp {
	return c.compiled
}
