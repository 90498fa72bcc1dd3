package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"DEBUG", DEBUG},
		{"warn", WARN},
		{"ERROR", ERROR},
		{"", INFO},
		{"verbose", INFO},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFileLoggerWritesStructuredEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "daybook.log")
	l, err := New(Config{Level: INFO, FilePath: path, MaxSize: 1, MaxAge: 1, MaxBackups: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	l.Debug("hidden")
	l.WithFields(F("component", "store")).Info("task added", F("id", "abc"))
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 entry below DEBUG threshold, got %d: %q", len(lines), data)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("entry is not JSON: %v", err)
	}
	if entry["msg"] != "task added" || entry["id"] != "abc" || entry["component"] != "store" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestGlobalFunctionsWithoutInit(t *testing.T) {
	// Must not panic before Init.
	Info("noop")
	WithFields(F("k", "v")).Warn("noop")
}

func TestCallerPointsAtCallSite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daybook.log")
	l, err := New(Config{Level: DEBUG, FilePath: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	prev := globalLogger
	globalLogger = l
	defer func() { globalLogger = prev }()

	l.Info("instance")
	l.WithFields(F("k", "v")).Warn("with fields")
	Error("global")
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("entries = %d, want 3", len(lines))
	}
	for _, line := range lines {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("entry is not JSON: %v", err)
		}
		caller, _ := entry["caller"].(string)
		if !strings.HasPrefix(caller, "logger/logger_test.go:") {
			t.Errorf("%v: caller = %q", entry["msg"], caller)
		}
	}
}
