package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNew(t *testing.T) {
	t.Run("drops time and filters by level", func(t *testing.T) {
		t.Setenv(LevelEnv, "warn")
		var buf bytes.Buffer
		log := New(&buf, false)

		log.Info("hidden")
		log.Warn("shown", "network", "sepolia")

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, "msg=shown network=sepolia")
		assert.NotContains(t, out, "time=")
	})

	t.Run("debug flag wins over env", func(t *testing.T) {
		t.Setenv(LevelEnv, "error")
		var buf bytes.Buffer
		New(&buf, true).Debug("details")

		assert.Contains(t, buf.String(), "msg=details")
		assert.Contains(t, buf.String(), "source=logger_test.go")
	})
}
