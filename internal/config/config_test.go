package config

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected logrus.Level
	}{
		{
			name:     "debug level",
			input:    "debug",
			expected: logrus.DebugLevel,
		},
		{
			name:     "warn level",
			input:    "warn",
			expected: logrus.WarnLevel,
		},
		{
			name:     "unknown falls back to info",
			input:    "loud",
			expected: logrus.InfoLevel,
		},
		{
			name:     "empty falls back to info",
			input:    "",
			expected: logrus.InfoLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLogLevel(tt.input); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("SHOPFLOOR_TEST_KEY", "value")
	if got := getEnv("SHOPFLOOR_TEST_KEY", "fallback"); got != "value" {
		t.Errorf("expected value, got %s", got)
	}
	if got := getEnv("SHOPFLOOR_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("expected fallback, got %s", got)
	}
}
