package logging

import "testing"

func TestNew(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "unknown", ""} {
		for _, format := range []string{"json", "console"} {
			logger, err := New(level, format, "roommaker")
			if err != nil {
				t.Fatalf("New(%q, %q): %v", level, format, err)
			}
			if logger == nil {
				t.Fatalf("expected logger")
			}
		}
	}
}

func TestNewDefault(t *testing.T) {
	logger, err := NewDefault("roommaker")
	if err != nil {
		t.Fatalf("NewDefault: %v", err)
	}
	logger.Info("smoke")
}
