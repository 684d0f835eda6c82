package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{" ERROR ", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"", log.InfoLevel},
		{"verbose", log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q): got %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFormatter(t *testing.T) {
	tests := []struct {
		input string
		want  log.Formatter
	}{
		{"json", log.JSONFormatter},
		{"logfmt", log.LogfmtFormatter},
		{"text", log.TextFormatter},
		{"", log.TextFormatter},
	}

	for _, tt := range tests {
		if got := ParseFormatter(tt.input); got != tt.want {
			t.Errorf("ParseFormatter(%q): got %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestFromConfigRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := FromConfig(&buf, "warn", "text", false, false)

	logger.Info("hidden")
	logger.Warn("shown", "file", "todo.txt")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message should be filtered, got %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "file=todo.txt") {
		t.Errorf("expected warn message with field, got %q", out)
	}
	if !strings.Contains(out, "daylog") {
		t.Errorf("expected prefix in output, got %q", out)
	}
}

func TestFromConfigJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := FromConfig(&buf, "info", "json", false, false)
	logger.Info("added task", "section", "Work")

	out := buf.String()
	if !strings.Contains(out, `"msg":"added task"`) {
		t.Errorf("expected JSON message, got %q", out)
	}
	if !strings.Contains(out, `"section":"Work"`) {
		t.Errorf("expected JSON field, got %q", out)
	}
}
