package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/milk9111/topdown/config"
)

func TestNewLevels(t *testing.T) {
	cases := []struct {
		name    string
		cfg     config.LoggingConfig
		enabled zapcore.Level
		skipped zapcore.Level
	}{
		{"debug console", config.LoggingConfig{Level: "debug", Format: "console"}, zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{"warn json", config.LoggingConfig{Level: "warn", Format: "json"}, zapcore.WarnLevel, zapcore.InfoLevel},
		{"unknown falls back to info", config.LoggingConfig{Level: "chatty"}, zapcore.InfoLevel, zapcore.DebugLevel},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			log, err := New(tc.cfg)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			core := log.Core()
			if !core.Enabled(tc.enabled) {
				t.Fatalf("level %v disabled", tc.enabled)
			}
			if core.Enabled(tc.skipped) {
				t.Fatalf("level %v enabled", tc.skipped)
			}
		})
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatal("OrNop(nil) returned nil")
	}
	log, err := New(config.LoggingConfig{Level: "info"})
	if err != nil {
		t.Fatal(err)
	}
	if OrNop(log) != log {
		t.Fatal("OrNop replaced a live logger")
	}
}
