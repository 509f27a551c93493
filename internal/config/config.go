// Package config loads CLI settings from an optional YAML file with
// GITREPO_* environment overrides.
package config

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	OutputText = "text"
	OutputYAML = "yaml"
)

type Config struct {
	Git    GitConfig    `yaml:"git"`
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
	Watch  WatchConfig  `yaml:"watch"`
}

type GitConfig struct {
	Binary          string        `yaml:"binary" env:"GITREPO_GIT_BINARY" env-default:"git"`
	Timeout         time.Duration `yaml:"timeout" env:"GITREPO_GIT_TIMEOUT" env-default:"30s"`
	PrimaryBranches []string      `yaml:"primary_branches" env:"GITREPO_PRIMARY_BRANCHES" env-default:"master,main"`
}

type OutputConfig struct {
	Format string `yaml:"format" env:"GITREPO_OUTPUT" env-default:"text"`
	Color  bool   `yaml:"color" env:"GITREPO_COLOR"`
	// Style is a chroma style name used for highlighted diffs.
	Style string `yaml:"style" env:"GITREPO_STYLE" env-default:"github"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"GITREPO_LOG_LEVEL" env-default:"info"`
}

type WatchConfig struct {
	Delay time.Duration `yaml:"delay" env:"GITREPO_WATCH_DELAY" env-default:"350ms"`
}

// Load is Read followed by Validate.
func Load(path string) (Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Read reads path when it is not empty, then applies the environment and
// defaults on top. The result is not validated, so callers can apply their
// own overrides first.
func Read(path string) (Config, error) {
	var cfg Config
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Git.Binary) == "" {
		return ErrMissingGitBinary
	}
	if c.Git.Timeout <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTimeout, c.Git.Timeout)
	}
	if !slices.Contains([]string{OutputText, OutputYAML}, c.Output.Format) {
		return fmt.Errorf("%w: %q", ErrInvalidOutput, c.Output.Format)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel maps Log.Level onto slog levels.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Log.Level)
	}
	return level, nil
}

// Usage describes every environment variable for --help output.
func Usage() string {
	var cfg Config
	var b strings.Builder
	header := "Environment variables:"
	f := cleanenv.FUsage(&b, &cfg, &header)
	f()
	return b.String()
}
