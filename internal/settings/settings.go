// Package settings loads tool-wide defaults for ipforge from an optional
// settings file and IPFORGE_* environment variables.
package settings

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

const (
	// FileName is the settings file base name; viper tries every supported
	// extension (yaml, yml, toml, json).
	FileName  = "ipforge"
	EnvPrefix = "IPFORGE"
)

// Settings are the values the command line falls back to when a flag is not
// given.
type Settings struct {
	BuildDir  string `mapstructure:"build_dir"`
	BuildName string `mapstructure:"build_name"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	// Header is an extra comment line written at the top of every
	// generated file.
	Header string `mapstructure:"header"`

	// File is the settings file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

// Defaults returns the settings used when nothing else is configured.
func Defaults() Settings {
	return Settings{
		BuildDir:  "build",
		BuildName: "ipforge",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads settings. An explicit path must exist; otherwise the settings
// file is searched for in dirs (default "." and "$HOME/.ipforge") and may be
// absent. Environment variables override file values.
func Load(path string, dirs ...string) (*Settings, error) {
	v := viper.New()
	d := Defaults()
	v.SetDefault("build_dir", d.BuildDir)
	v.SetDefault("build_name", d.BuildName)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("header", d.Header)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("settings file: %w", err)
		}
		v.SetConfigFile(path)
	} else {
		if len(dirs) == 0 {
			dirs = []string{".", "$HOME/.ipforge"}
		}
		v.SetConfigName(FileName)
		for _, dir := range dirs {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read settings: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	s.File = v.ConfigFileUsed()
	return &s, nil
}
