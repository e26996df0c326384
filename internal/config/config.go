// Package config loads the .tableaux.yaml configuration file and applies
// TABLEAUX_* environment overrides on top of it.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPath     = ".tableaux.yaml"
	DefaultMaxNodes = 20000
	EnvPrefix       = "TABLEAUX_"
)

// ColorMode selects when output is colored.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Enabled reports whether output written to f should be colored.
func (m ColorMode) Enabled(f *os.File) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if f == nil || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type Config struct {
	// System is the default logic, e.g. "classical" or "S4".
	System string `yaml:"system" env:"SYSTEM"`
	// MaxNodes bounds the size of one tableau. Zero disables the bound.
	MaxNodes int `yaml:"max_nodes" env:"MAX_NODES"`
	// MaxSteps bounds the expansion steps of one tableau. Zero disables it.
	MaxSteps int       `yaml:"max_steps" env:"MAX_STEPS"`
	Color    ColorMode `yaml:"color" env:"COLOR"`
	LogLevel string    `yaml:"log_level" env:"LOG_LEVEL"`
}

func Default() Config {
	return Config{
		System:   "classical",
		MaxNodes: DefaultMaxNodes,
		Color:    ColorAuto,
		LogLevel: "warn",
	}
}

// Load reads the configuration at path and then applies the process
// environment. A missing file is not an error; the defaults are used.
func Load(path string) (Config, error) {
	return load(path, nil)
}

// LoadWithEnv is like Load but reads overrides from environ instead of the
// process environment.
func LoadWithEnv(path string, environ map[string]string) (Config, error) {
	if environ == nil {
		environ = map[string]string{}
	}
	return load(path, environ)
}

func load(path string, environ map[string]string) (Config, error) {
	if path == "" {
		path = DefaultPath
	}
	cfg := Default()

	f, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("open config: %w", err)
	default:
		defer f.Close()
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q", c.Color)
	}
	if c.MaxNodes < 0 {
		return fmt.Errorf("max_nodes must not be negative, got %d", c.MaxNodes)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("max_steps must not be negative, got %d", c.MaxSteps)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	return nil
}

// Level returns the configured log level, falling back to warn.
func (c Config) Level() zapcore.Level {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.WarnLevel
	}
	return lvl
}

// Write stores c as YAML at path, replacing any existing file.
func Write(path string, c Config) error {
	if path == "" {
		path = DefaultPath
	}
	d, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(d); err != nil {
		return err
	}
	return nil
}
