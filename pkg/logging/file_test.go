package logging

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T, format Format, level Level) (*FileLogger, string) {
	t.Helper()

	logPath := filepath.Join(t.TempDir(), "test.log")
	logger, err := NewFileLogger(FileLoggerConfig{
		Path:       logPath,
		Format:     format,
		Level:      level,
		MaxSizeMB:  1,
		MaxBackups: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { logger.Close() })

	return logger, logPath
}

func TestFileLoggerJSON(t *testing.T) {
	logger, logPath := newTestLogger(t, FormatJSON, InfoLevel)

	logger.Info(context.Background(), "comparison started", Fields{"source": "/a", "dest": "/b"})

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "comparison started", entry["message"])
	assert.Equal(t, "/a", entry["source"])
}

func TestFileLoggerText(t *testing.T) {
	logger, logPath := newTestLogger(t, FormatText, InfoLevel)

	logger.Warn(context.Background(), "skipping unreadable directory", Fields{"dir": "/x"})

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)

	line := string(data)
	assert.Contains(t, line, "[warn]")
	assert.Contains(t, line, "skipping unreadable directory")
	assert.Contains(t, line, "dir=/x")
}

func TestFileLoggerLevelFiltering(t *testing.T) {
	logger, logPath := newTestLogger(t, FormatJSON, WarnLevel)

	ctx := context.Background()
	logger.Debug(ctx, "debug message", nil)
	logger.Info(ctx, "info message", nil)
	logger.Warn(ctx, "warn message", nil)

	data, _ := os.ReadFile(logPath)
	content := string(data)
	assert.NotContains(t, content, "debug message")
	assert.NotContains(t, content, "info message")
	assert.Contains(t, content, "warn message")
}

func TestFileLoggerWithFields(t *testing.T) {
	logger, logPath := newTestLogger(t, FormatJSON, InfoLevel)

	scoped := logger.WithFields(Fields{"report_id": "abc123"})
	scoped.Info(context.Background(), "tree scanned", Fields{"files": 3})

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "abc123", entry["report_id"])
	assert.Equal(t, float64(3), entry["files"])
}

func TestFileLoggerError(t *testing.T) {
	logger, logPath := newTestLogger(t, FormatJSON, InfoLevel)

	logger.Error(context.Background(), "cannot compare file", os.ErrPermission, nil)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "error", entry["level"])
	errText, _ := entry["error"].(string)
	assert.True(t, strings.Contains(errText, "permission"))
}

func TestNullLogger(t *testing.T) {
	logger := NewNullLogger()
	ctx := context.Background()

	// All calls are no-ops and must not panic
	logger.Debug(ctx, "msg", nil)
	logger.Info(ctx, "msg", Fields{"k": "v"})
	logger.Warn(ctx, "msg", nil)
	logger.Error(ctx, "msg", os.ErrNotExist, nil)
	assert.Same(t, logger, logger.WithFields(Fields{"k": "v"}))
	assert.NoError(t, logger.Close())
}
