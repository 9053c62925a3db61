package repl

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kr/pretty"
)

func TestDecodeConfig(t *testing.T) {
	src := "prompt: '> '\nscoping: lexical\nmax_call_depth: 20\nlog_level: debug\nshow_ast: true\n"
	got, err := DecodeConfig(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	want := DefaultConfig()
	want.Prompt = "> "
	want.Scoping = "lexical"
	want.MaxCallDepth = 20
	want.LogLevel = "debug"
	want.ShowAST = true
	if diff := pretty.Diff(want, got); len(diff) != 0 {
		t.Errorf("config mismatch:\n%s", strings.Join(diff, "\n"))
	}
}

func TestDecodeConfig_Empty(t *testing.T) {
	got, err := DecodeConfig(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if diff := pretty.Diff(DefaultConfig(), got); len(diff) != 0 {
		t.Errorf("empty file should give defaults:\n%s", strings.Join(diff, "\n"))
	}
}

func TestDecodeConfig_Rejects(t *testing.T) {
	tests := map[string]string{
		"unknown key":    "colour: red\n",
		"bad scoping":    "scoping: static\n",
		"bad log level":  "log_level: loud\n",
		"negative depth": "max_call_depth: -1\n",
		"wrong type":     "max_call_depth: deep\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeConfig(strings.NewReader(src)); err == nil {
				t.Errorf("expected an error for %q", src)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.yaml")

	cfg, err := LoadConfig(missing, true)
	if err != nil {
		t.Fatalf("optional missing file: %v", err)
	}
	if cfg.Prompt != DefaultConfig().Prompt {
		t.Errorf("prompt %q", cfg.Prompt)
	}

	if _, err := LoadConfig(missing, false); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("required missing file: got %v", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("scoping: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(bad, true); err == nil || !strings.HasPrefix(err.Error(), "config: parse ") {
		t.Errorf("malformed file: got %v", err)
	}

	good := filepath.Join(dir, "good.yaml")
	if err := os.WriteFile(good, []byte("history_file: ''\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadConfig(good, false)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HistoryFile != "" {
		t.Errorf("history_file should be cleared, got %q", cfg.HistoryFile)
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"":      slog.LevelWarn,
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected an error")
	}
}
