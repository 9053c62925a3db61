package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ember.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_ExitCodes(t *testing.T) {
	cfg := writeConfig(t, "history_file: ''\n")
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"one-shot ok", []string{"-config", cfg, "-e", "1 + 1"}, 0},
		{"one-shot lexical", []string{"-config", cfg, "-scoping", "lexical", "-e", "(FN (a) -> a)(3)"}, 0},
		{"one-shot eval error", []string{"-config", cfg, "-e", "y"}, 1},
		{"one-shot parse error", []string{"-config", cfg, "-e", "1 +"}, 1},
		{"bad scoping flag", []string{"-config", cfg, "-scoping", "static", "-e", "1"}, 2},
		{"bad log level flag", []string{"-config", cfg, "-log-level", "loud", "-e", "1"}, 2},
		{"unknown flag", []string{"-bogus"}, 2},
		{"missing config", []string{"-config", filepath.Join(t.TempDir(), "nope.yaml"), "-e", "1"}, 1},
		{"invalid config", []string{"-config", writeConfig(t, "colour: red\n"), "-e", "1"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(tt.args); got != tt.want {
				t.Errorf("run(%q) = %d, want %d", tt.args, got, tt.want)
			}
		})
	}
}
