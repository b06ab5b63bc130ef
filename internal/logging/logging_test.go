package logging

import "testing"

func TestNewLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		logger, err := New(level)
		if err != nil {
			t.Errorf("New(%q) failed: %v", level, err)
			continue
		}
		if logger == nil {
			t.Errorf("New(%q) returned nil logger", level)
		}
	}
}

func TestNewInvalidLevel(t *testing.T) {
	if _, err := New("loud"); err == nil {
		t.Error("Expected error for unknown level")
	}
}
