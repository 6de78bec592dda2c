package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  mode: debug
backend:
  kind: local
local:
  dir: /tmp/inv
  encryption_key: s3cret
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, BackendLocal, cfg.Backend.Kind)
	assert.Equal(t, "/tmp/inv", cfg.Local.Dir)
	assert.Equal(t, "s3cret", cfg.Local.EncryptionKey)
	assert.Equal(t, "json", cfg.Log.Format)

	// untouched keys keep their defaults
	assert.Equal(t, "Etfs", cfg.Remote.ETFCollection)
	assert.Equal(t, "Acciones", cfg.Remote.StockCollection)
	assert.Equal(t, "investments", cfg.Local.Key)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, BackendRemote, cfg.Backend.Kind)
	assert.Equal(t, "data/investments.db", cfg.Database.Path)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("INVEST_SERVER_PORT", "9100")
	t.Setenv("INVEST_BACKEND_KIND", "LOCAL")

	cfg, err := Load(writeConfig(t, "server:\n  port: 9090\n"))
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, BackendLocal, cfg.Backend.Kind)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	_, err := Load(writeConfig(t, "backend:\n  kind: firebase\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "remote:\n  etf_collection: all\n  stock_collection: all\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "server:\n  port: 70000\n"))
	assert.Error(t, err)
}
