package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/existflow/daybook/internal/calendar"
)

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("DAYBOOK_DATA_DIR", "")
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if !cfg.ConfirmDelete || cfg.LogLevel != "INFO" || cfg.Week() != calendar.Monday {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DAYBOOK_DATA_DIR", dir)
	t.Setenv("DAYBOOK_LOG_LEVEL", "DEBUG")
	t.Setenv("DAYBOOK_WEEK_START", "sunday")

	cfg := DefaultConfig()
	if cfg.DataDir != dir {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, dir)
	}
	if cfg.DatabasePath() != filepath.Join(dir, "daybook.sqlite") {
		t.Errorf("DatabasePath = %q", cfg.DatabasePath())
	}
	if cfg.LogFile != filepath.Join(dir, "logs", "daybook.log") {
		t.Errorf("LogFile = %q", cfg.LogFile)
	}
	if cfg.LogLevel != "DEBUG" || cfg.Week() != calendar.Sunday {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	cfg.ConfirmDelete = false
	cfg.WeekStart = "sunday"
	cfg.LogConsole = true

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	again, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.ConfirmDelete || again.WeekStart != "sunday" || !again.LogConsole {
		t.Errorf("values not persisted: %+v", again)
	}
}

func TestLoadFromInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("week_start: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Errorf("expected parse error")
	}
}
