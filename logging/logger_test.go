package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewFileLogger(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Dir = dir
	cfg.App = "test"
	cfg.Level = "debug"

	logger, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("debug line")
	logger.Error("error line")
	_ = logger.Sync()

	all, err := os.ReadFile(filepath.Join(dir, "test.log"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(all), "debug line") || !strings.Contains(string(all), "error line") {
		t.Errorf("main log = %q", all)
	}

	errs, err := os.ReadFile(filepath.Join(dir, "test_error.log"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(errs), "debug line") || !strings.Contains(string(errs), "ERROR") {
		t.Errorf("error log = %q", errs)
	}
}

func TestConsoleLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(Config{Level: "warn", Console: true}, &buf)
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	_ = logger.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("console output = %q", out)
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New(Config{Level: "loud", Console: true}); err == nil {
		t.Error("New accepted invalid level")
	}

	logger, err := New(Config{})
	if err != nil {
		t.Fatal(err)
	}
	if logger.Core().Enabled(-1) {
		t.Error("logger without sinks should discard")
	}
}
