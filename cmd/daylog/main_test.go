package main

import (
	"context"
	"path/filepath"
	"testing"
)

// isolate keeps user config files and the working directory out of the run.
func isolate(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	chdir(t, t.TempDir())
}

func TestRunExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"version", []string{"version"}, 0},
		{"unknown command", []string{"frobnicate"}, exitUsage},
		{"bad flag", []string{"show", "-bogus"}, exitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			if got := run(context.Background(), tt.args); got != tt.want {
				t.Errorf("run(%q): got %d, want %d", tt.args, got, tt.want)
			}
		})
	}
}

func TestRunInterrupted(t *testing.T) {
	isolate(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if got := run(ctx, []string{"frobnicate"}); got != exitInterrupted {
		t.Errorf("run after cancel: got %d, want %d", got, exitInterrupted)
	}
}
