package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chainalign.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: debug
server:
  addr: ":9000"
store:
  backend: redis
redis:
  ttl: 1h
catalog:
  cache_ttl: 30s
`), 0644))

	t.Setenv("CHAINALIGN_REDIS_ADDR", "redis.internal:6380")
	t.Setenv("CHAINALIGN_SERVER_ADDR", ":9100")
	t.Setenv("CHAINALIGN_LIBRARY_DIR", "/srv/chainsets")

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ":9100", cfg.Server.Addr, "environment overrides the file")
	assert.Equal(t, BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "redis.internal:6380", cfg.Redis.Addr)
	assert.Equal(t, time.Hour, cfg.Redis.TTL)
	assert.Equal(t, 30*time.Second, cfg.Catalog.CacheTTL)
	assert.Equal(t, "chainalign:session:", cfg.Redis.Prefix)
	assert.Equal(t, "/srv/chainsets", cfg.Library.Dir)
}

func TestLoad_DefaultLocation(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.Mkdir(".chainalign", 0755))
	require.NoError(t, os.WriteFile(filepath.Join(".chainalign", "config.yaml"), []byte("store:\n  backend: file\n"), 0644))

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, BackendFile, cfg.Store.Backend)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "an explicit config file must exist")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  backend: postgres\n"), 0644))
	_, err = Load(New(), path)
	assert.ErrorContains(t, err, "invalid store backend")
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())

	cfg.MCP.Transport = "websocket"
	assert.ErrorContains(t, cfg.Validate(), "invalid mcp transport")

	cfg = Defaults()
	cfg.Catalog.CacheTTL = -time.Second
	assert.Error(t, cfg.Validate())
}
