package repl

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/metaphox/ember/eval"
)

// DefaultConfigName is looked up in the user's home directory.
const DefaultConfigName = ".ember.yaml"

// Config holds REPL settings. Zero values fall back to DefaultConfig.
type Config struct {
	Prompt       string `yaml:"prompt"`
	HistoryFile  string `yaml:"history_file"`
	Scoping      string `yaml:"scoping"`
	MaxCallDepth int    `yaml:"max_call_depth"`
	LogLevel     string `yaml:"log_level"`
	ShowAST      bool   `yaml:"show_ast"`
}

// DefaultConfig returns the settings used when no file is present.
func DefaultConfig() Config {
	return Config{
		Prompt:       "ember> ",
		HistoryFile:  defaultHistoryPath(),
		Scoping:      eval.DynamicScoping.String(),
		MaxCallDepth: eval.DefaultMaxDepth,
		LogLevel:     "warn",
	}
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ember_history")
}

// DefaultConfigPath returns $HOME/.ember.yaml, or "" without a home dir.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DefaultConfigName)
}

// LoadConfig reads a YAML config file over the defaults. A missing file is
// not an error when optional is true. Unknown keys are rejected.
func LoadConfig(path string, optional bool) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	cfg, err = DecodeConfig(f)
	if err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// DecodeConfig reads YAML from r over the defaults and validates it.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the enumerated fields.
func (c Config) Validate() error {
	if _, err := eval.ParseScoping(c.Scoping); err != nil {
		return err
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.MaxCallDepth < 0 {
		return fmt.Errorf("max_call_depth must not be negative, got %d", c.MaxCallDepth)
	}
	return nil
}

// ParseLevel maps debug, info, warn or error to a slog level. Empty means warn.
func ParseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelWarn, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelWarn, fmt.Errorf("unknown log level %q", s)
	}
	return lvl, nil
}

// NewLogger builds a text logger on w at the configured level.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	lvl, err := ParseLevel(c.LogLevel)
	if err != nil {
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// InterpreterOptions translates the config into evaluator options.
func (c Config) InterpreterOptions(log *slog.Logger) []eval.Option {
	scoping, _ := eval.ParseScoping(c.Scoping)
	return []eval.Option{
		eval.WithScoping(scoping),
		eval.WithMaxDepth(c.MaxCallDepth),
		eval.WithLogger(log),
	}
}
