package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "FRIZZLY API", cfg.Server.Name)
	assert.Equal(t, 5000, cfg.Gateway.Port)
	assert.Equal(t, "mongo", cfg.Store.Driver)
	assert.Equal(t, "serviceAccountKey.json", cfg.MongoDB.CredentialsFile)
	assert.Equal(t, 5*time.Second, cfg.Probe.Timeout)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "0.0.0.0:5000", cfg.Gateway.Addr())
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
gateway:
  port: 8080
  platform: PythonAnywhere
store:
  driver: memory
mongodb:
  database: groceries
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	t.Setenv("FRIZZLY_GATEWAY_DEBUG", "true")
	t.Setenv("MONGO_URI", "mongodb://probe-host:27017/")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Gateway.Port)
	assert.Equal(t, "PythonAnywhere", cfg.Gateway.Platform)
	assert.True(t, cfg.Gateway.Debug)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, "groceries", cfg.MongoDB.Database)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "mongodb://probe-host:27017/", cfg.Probe.MongoURI)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gateway: [port"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_SampleConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config", "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Gateway.Port)
	assert.Equal(t, 5001, cfg.Probe.Port)
	assert.Equal(t, 15*time.Second, cfg.Probe.Interval)
	assert.Empty(t, cfg.Etcd.Endpoints)
	assert.Equal(t, int64(30), cfg.Etcd.LeaseTTL)
}
