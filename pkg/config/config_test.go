package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestValidateBlockSize(t *testing.T) {
	cfg := Default()
	cfg.Compare.BlockSize = 100
	assert.Error(t, cfg.Validate())
}

func TestValidateOutputFormat(t *testing.T) {
	cfg := Default()
	cfg.Output.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidateLogSettings(t *testing.T) {
	cfg := Default()
	cfg.Logging.Format = "yaml"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Compare.Sorted = true
	cfg.Compare.BlockSize = 8192
	cfg.Output.Stats = true

	require.NoError(t, SaveToFile(cfg, path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadFromFileInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("compare: ["), 0o644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestLoadFromFileRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  format: csv\n"), 0o644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}
