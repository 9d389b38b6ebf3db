package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default("/srv/workspace")

	assert.Equal(t, "/srv/workspace", cfg.Workspace)
	assert.Equal(t, filepath.Join("/srv/workspace", ".filewarden", "manifest.db"), cfg.Manifest.Path)
	assert.Equal(t, []string{"*.*"}, cfg.Scan.Patterns)
	assert.Equal(t, DefaultHashLength, cfg.Scan.HashLength)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.NoError(t, cfg.Validate())
}

func TestParseFillsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("workspace: /data/files\n"))
	require.NoError(t, err)

	assert.Equal(t, "/data/files", cfg.Workspace)
	assert.Equal(t, filepath.Join("/data/files", ".filewarden", "manifest.db"), cfg.Manifest.Path)
	assert.Equal(t, []string{"*.*"}, cfg.Scan.Patterns)
	assert.Equal(t, DefaultHashLength, cfg.Scan.HashLength)
}

func TestParseExplicitValues(t *testing.T) {
	data := []byte(`
workspace: /data/files
manifest:
  path: /var/lib/filewarden/manifest.db
scan:
  patterns: ["*.go", "*.md"]
  hash_length: 32
logging:
  level: debug
  format: json
`)

	cfg, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/filewarden/manifest.db", cfg.Manifest.Path)
	assert.Equal(t, []string{"*.go", "*.md"}, cfg.Scan.Patterns)
	assert.Equal(t, 32, cfg.Scan.HashLength)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.NoError(t, cfg.Validate())
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("workspace: [unclosed"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filewarden.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workspace: /data/files\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/files", cfg.Workspace)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateFailures(t *testing.T) {
	cfg := Default("/srv/workspace")
	cfg.Scan.HashLength = 0
	assert.Error(t, cfg.Validate())

	cfg = Default("/srv/workspace")
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())

	var nilCfg *Config
	assert.Error(t, nilCfg.Validate())
}
