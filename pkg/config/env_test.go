package config

import (
	"testing"
	"time"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("TEST_STRING", "value")

	if got := GetEnvString("TEST_STRING", "default"); got != "value" {
		t.Errorf("expected value, got %s", got)
	}
	if got := GetEnvString("TEST_STRING_MISSING", "default"); got != "default" {
		t.Errorf("expected default, got %s", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected int
	}{
		{"valid", "42", 42},
		{"invalid", "not-a-number", 7},
		{"empty", "", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv("TEST_INT", tt.value)
			}
			if got := GetEnvInt("TEST_INT", 7); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestGetEnvFloat(t *testing.T) {
	t.Setenv("TEST_FLOAT", "0.7")
	if got := GetEnvFloat("TEST_FLOAT", 0.5); got != 0.7 {
		t.Errorf("expected 0.7, got %f", got)
	}

	t.Setenv("TEST_FLOAT", "warm")
	if got := GetEnvFloat("TEST_FLOAT", 0.5); got != 0.5 {
		t.Errorf("expected default 0.5, got %f", got)
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "31s")
	if got := GetEnvDuration("TEST_DURATION", time.Minute); got != 31*time.Second {
		t.Errorf("expected 31s, got %v", got)
	}

	t.Setenv("TEST_DURATION", "forever")
	if got := GetEnvDuration("TEST_DURATION", time.Minute); got != time.Minute {
		t.Errorf("expected default 1m, got %v", got)
	}
}
