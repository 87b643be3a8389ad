package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLoggerLevels(t *testing.T) {
	cases := []struct {
		env, level string
		enabled    zapcore.Level
		disabled   zapcore.Level
	}{
		{"production", "", zapcore.InfoLevel, zapcore.DebugLevel},
		{"", "", zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{"production", "warn", zapcore.WarnLevel, zapcore.InfoLevel},
		{"development", "error", zapcore.ErrorLevel, zapcore.WarnLevel},
	}
	for _, tc := range cases {
		l, err := newLogger(tc.env, tc.level)
		if err != nil {
			t.Fatalf("newLogger(%q, %q): %v", tc.env, tc.level, err)
		}
		if !l.Core().Enabled(tc.enabled) || l.Core().Enabled(tc.disabled) {
			t.Errorf("newLogger(%q, %q): wrong level", tc.env, tc.level)
		}
	}
	if _, err := newLogger("", "loud"); err == nil {
		t.Error("unknown level accepted")
	}
}

func TestGlobalHelpers(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	prev := Logger
	Logger = zap.New(core)
	t.Cleanup(func() { Logger = prev })

	Debug("hidden")
	Info("recipe created", zap.Uint("recipe_id", 7))
	Named("http").Warn("request", zap.Int("status", 404))

	entries := logs.AllUntimed()
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Message != "recipe created" || entries[0].ContextMap()["recipe_id"] != uint64(7) {
		t.Errorf("first entry = %+v", entries[0])
	}
	if entries[1].LoggerName != "http" || entries[1].Level != zapcore.WarnLevel {
		t.Errorf("second entry = %+v", entries[1])
	}
}
