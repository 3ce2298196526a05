// Package config loads stagehand's own settings and the user's stage file.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/stagehand/pkg/errors"
	"github.com/arthur-debert/stagehand/pkg/logging"
)

// Settings are the tool's own knobs, as opposed to the stage file that
// describes what to build. They merge, in order: built-in defaults, the
// user config file, and STAGEHAND_-prefixed environment variables.
type Settings struct {
	// OutputRoot is the default staging root when -o is not given.
	OutputRoot string `koanf:"output_root"`
	// NoColor disables styled preview output.
	NoColor bool `koanf:"no_color"`
	// Vars seeds the template variable context; --var flags override it.
	Vars map[string]interface{} `koanf:"vars"`
}

// SettingsPath returns the user config file location. The environment is
// consulted directly so tests overriding XDG_CONFIG_HOME behave, since the
// xdg package caches its values at init.
func SettingsPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "stagehand", "config.toml")
	}
	return filepath.Join(xdg.ConfigHome, "stagehand", "config.toml")
}

// LoadSettings builds the merged settings.
func LoadSettings() (*Settings, error) {
	logger := logging.GetLogger("config.settings")
	k := koanf.New(".")

	// 1. Built-in defaults
	defaults := map[string]interface{}{
		"output_root": "",
		"no_color":    false,
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load default settings")
	}

	// 2. User config file, if present
	path := SettingsPath()
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad,
				"failed to load settings from %s", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded settings file")
	}

	// 3. Environment overrides: STAGEHAND_NO_COLOR, STAGEHAND_OUTPUT_ROOT
	envProvider := env.Provider("STAGEHAND_", ".", func(key string) string {
		return strings.ToLower(strings.TrimPrefix(key, "STAGEHAND_"))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment settings")
	}

	var settings Settings
	if err := k.Unmarshal("", &settings); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse settings")
	}
	if settings.Vars == nil {
		settings.Vars = make(map[string]interface{})
	}
	return &settings, nil
}
