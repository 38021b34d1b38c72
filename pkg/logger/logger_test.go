package logger_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/limbo/healthlog/pkg/cleanup"
	"github.com/limbo/healthlog/pkg/config"
	"github.com/limbo/healthlog/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		Input    string
		Expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tc := range testCases {
		t.Run(tc.Input, func(t *testing.T) {
			assert.Equal(t, tc.Expected, logger.ParseLevel(tc.Input))
		})
	}
}

func TestHandlerFormatAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(logger.NewHandler(&buf, config.LogConfig{Level: "warn", Format: "json"}))
	l.Info("dropped")
	l.Warn("kept", slog.String("request_id", "abc"))
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), `"msg":"kept"`)
	assert.Contains(t, buf.String(), `"request_id":"abc"`)
}

func TestNewWritesToFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	path := filepath.Join(t.TempDir(), "logs", "healthlog.log")

	l := logger.New(config.LogConfig{Level: "info", Format: "json", File: path})
	l.Info("record created", slog.String("uid", "owner"))
	cleanup.CleanUp()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "record created")
}
