// Package config loads sass-dep's .sass-dep.toml configuration file,
// merging it with environment variables and CLI flags via viper's
// precedence rules: explicit CLI flags win, then SASSDEP_* env vars,
// then the config file, then these defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/sassdep/sass-dep/internal/diag"
)

// Config is sass-dep's full resolved configuration.
type Config struct {
	LoadPaths  []string   `mapstructure:"load_paths"`
	Extensions []string   `mapstructure:"extensions"`
	Thresholds Thresholds `mapstructure:"thresholds"`
}

// Thresholds controls flag-assignment sensitivity.
type Thresholds struct {
	HighFanIn  int `mapstructure:"high_fan_in"`
	HighFanOut int `mapstructure:"high_fan_out"`
}

// Defaults returns sass-dep's built-in configuration.
func Defaults() Config {
	return Config{
		Extensions: []string{"scss", "sass"},
		Thresholds: Thresholds{HighFanIn: 5, HighFanOut: 10},
	}
}

// Overrides carries CLI-flag values that take precedence over the
// config file and environment when set.
type Overrides struct {
	ExtraLoadPaths []string // from repeated -I flags, appended after the file's load_paths
}

// Load reads configPath (if it exists) merged with SASSDEP_* environment
// variables, falling back to Defaults for anything unset. An explicit
// configPath that does not exist is a *diag.ConfigError; the implicit
// default path (".sass-dep.toml" in the working directory) is optional
// and silently skipped when absent.
func Load(configPath string, overrides Overrides) (*Config, error) {
	v := viper.New()
	def := Defaults()
	v.SetDefault("load_paths", def.LoadPaths)
	v.SetDefault("extensions", def.Extensions)
	v.SetDefault("thresholds.high_fan_in", def.Thresholds.HighFanIn)
	v.SetDefault("thresholds.high_fan_out", def.Thresholds.HighFanOut)

	v.SetEnvPrefix("SASSDEP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := configPath != ""
	if !explicit {
		configPath = ".sass-dep.toml"
	}
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	_, statErr := os.Stat(configPath)
	switch {
	case statErr == nil:
		if err := v.ReadInConfig(); err != nil {
			return nil, diag.NewConfigError("reading %s: %v", configPath, err)
		}
	case explicit:
		return nil, diag.NewConfigError("config file %s: %v", configPath, statErr)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, diag.NewConfigError("parsing %s: %v", configPath, err)
	}

	cfg.LoadPaths = append(append([]string{}, cfg.LoadPaths...), overrides.ExtraLoadPaths...)
	return &cfg, nil
}

// DefaultPath returns the conventional config file path under root.
func DefaultPath(root string) string {
	return filepath.Join(root, ".sass-dep.toml")
}
