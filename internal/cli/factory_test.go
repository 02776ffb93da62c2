package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/chainalign/internal/config"
	"github.com/aretw0/chainalign/internal/logging"
	"github.com/aretw0/chainalign/pkg/adapters/file"
	"github.com/aretw0/chainalign/pkg/catalog"
	"github.com/aretw0/chainalign/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	_, err := NewLogger("debug")
	require.NoError(t, err)

	_, err = NewLogger("loud")
	assert.Error(t, err)
}

func TestCatalogSource(t *testing.T) {
	logger := logging.NewNop()

	cfg := config.Defaults()
	assert.Nil(t, CatalogSource(cfg, logger))

	cfg.Catalog.URL = "http://catalog.invalid"
	_, cached := CatalogSource(cfg, logger).(*catalog.CachedSource)
	assert.True(t, cached)

	cfg.Catalog.Path = "units.yaml"
	_, fromFile := CatalogSource(cfg, logger).(*file.CatalogSource)
	assert.True(t, fromFile, "a catalog path wins over a url")
}

func TestLoadCatalog(t *testing.T) {
	ctx := context.Background()
	logger := logging.NewNop()

	cat, err := LoadCatalog(ctx, config.Defaults(), logger)
	require.NoError(t, err)
	assert.NotZero(t, cat.Len())

	path := filepath.Join(t.TempDir(), "units.yaml")
	require.NoError(t, os.WriteFile(path, []byte("models:\n  - id: x\n    input_type: text\n    output_type: text\n"), 0644))
	cfg := config.Defaults()
	cfg.Catalog.Path = path

	cat, err = LoadCatalog(ctx, cfg, logger)
	require.NoError(t, err)
	assert.Equal(t, 1, cat.Len())
}

func TestNewBackend(t *testing.T) {
	ctx := context.Background()
	logger := logging.NewNop()

	t.Run("memory", func(t *testing.T) {
		b, err := NewBackend(ctx, config.Defaults(), logger)
		require.NoError(t, err)
		assert.Nil(t, b.Locker)
		assert.NoError(t, b.Close())
	})

	t.Run("file", func(t *testing.T) {
		cfg := config.Defaults()
		cfg.Store.Backend = config.BackendFile
		cfg.Store.Dir = t.TempDir()

		b, err := NewBackend(ctx, cfg, logger)
		require.NoError(t, err)

		svc := NewService(b, cfg, nil, logger)
		resp, err := svc.Start(ctx, domain.StartSessionRequest{ModelChains: [][]string{{"GPT-4"}, {"PaLM 2"}}})
		require.NoError(t, err)

		_, err = os.Stat(filepath.Join(cfg.Store.Dir, resp.SessionID+".json"))
		assert.NoError(t, err)
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := config.Defaults()
		cfg.Store.Backend = config.BackendRedis
		cfg.Redis.Addr = mr.Addr()
		cfg.Server.Seed = 3

		b, err := NewBackend(ctx, cfg, logger)
		require.NoError(t, err)
		defer b.Close()
		require.NotNil(t, b.Locker)

		svc := NewService(b, cfg, nil, logger)
		resp, err := svc.Start(ctx, domain.StartSessionRequest{ModelChains: [][]string{{"GPT-4"}, {"PaLM 2"}}})
		require.NoError(t, err)

		ids, err := b.Store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, resp.SessionID)
	})

	t.Run("redis unreachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		cfg := config.Defaults()
		cfg.Store.Backend = config.BackendRedis
		cfg.Redis.Addr = addr

		_, err := NewBackend(ctx, cfg, logger)
		assert.ErrorContains(t, err, "failed to connect to redis")
	})
}
