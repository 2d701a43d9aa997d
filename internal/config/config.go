// Package config loads dsinit's own settings from a TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/dpshade/dsinit/internal/errors"
)

// EnvConfigPath overrides the default settings file location.
const EnvConfigPath = "DSINIT_CONFIG"

// UI modes
const (
	ModeLine = "line"
	ModeTUI  = "tui"
)

// StylePlain disables markdown rendering of the summary.
const StylePlain = "plain"

// StyleAuto picks a glamour style from the terminal.
const StyleAuto = "auto"

// Config holds the tool settings. None of them change the scaffold itself.
type Config struct {
	UI     UIConfig     `toml:"ui"`
	Output OutputConfig `toml:"output"`
	Log    LogConfig    `toml:"log"`
}

type UIConfig struct {
	Mode string `toml:"mode"`
}

type OutputConfig struct {
	Style    string `toml:"style"`
	Quiet    bool   `toml:"quiet"`
	WordWrap int    `toml:"word_wrap"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

const DefaultConfigToml = `# dsinit configuration

[ui]
# "line" asks one question per line, "tui" opens a form
mode = "line"

[output]
# "auto", "plain" or a glamour style name ("dark", "light", "notty", ...)
style = "auto"
quiet = false
word_wrap = 80

[log]
level = "warn"
`

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		UI:     UIConfig{Mode: ModeLine},
		Output: OutputConfig{Style: StyleAuto, WordWrap: 80},
		Log:    LogConfig{Level: "warn"},
	}
}

// DefaultPath returns $DSINIT_CONFIG, or config.toml under the user config dir.
func DefaultPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "dsinit", "config.toml")
}

// Load reads settings from path over the defaults. When explicit is false a
// missing file is not an error.
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return Config{}, errors.ConfigError("failed to read config file", err).WithContext("path", path)
	}
	if _, err := toml.Decode(string(raw), &cfg); err != nil {
		return Config{}, errors.ConfigError("failed to parse config file", err).WithContext("path", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.ConfigError(err.Error(), nil).WithContext("path", path)
	}
	return cfg, nil
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	switch c.UI.Mode {
	case ModeLine, ModeTUI:
	default:
		return fmt.Errorf("unknown ui.mode %q", c.UI.Mode)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log.level %q", c.Log.Level)
	}
	if c.Output.WordWrap < 0 {
		return fmt.Errorf("output.word_wrap must not be negative")
	}
	return nil
}
