package main

import (
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}

	for in, want := range tests {
		if got := parseLogLevel(in); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRedactURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"redis://:hunter2@cache:6379/0", "redis://:xxxxx@cache:6379/0"},
		{"redis://cache:6379", "redis://cache:6379"},
	}

	for _, tt := range tests {
		if got := redactURL(tt.in); got != tt.want {
			t.Errorf("redactURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeError(t *testing.T) {
	err := errors.New(`failed to connect to user=app password=hunter2 database=appdb`)

	got := sanitizeError(err, "hunter2", "")
	if strings.Contains(got, "hunter2") {
		t.Errorf("secret leaked: %s", got)
	}
	if !strings.Contains(got, "[redacted]") {
		t.Errorf("expected redaction marker, got %s", got)
	}

	if sanitizeError(nil, "x") != "" {
		t.Error("nil error should sanitize to empty string")
	}
}
