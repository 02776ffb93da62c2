package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/chainalign/internal/config"
	"github.com/aretw0/chainalign/internal/logging"
	"github.com/aretw0/chainalign/pkg/adapters/file"
	httpAdapter "github.com/aretw0/chainalign/pkg/adapters/http"
	"github.com/aretw0/chainalign/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/chainalign/pkg/adapters/redis"
	"github.com/aretw0/chainalign/pkg/catalog"
	"github.com/aretw0/chainalign/pkg/ports"
	"github.com/aretw0/chainalign/pkg/session"
)

// NewLogger builds the application logger for a level name.
func NewLogger(level string) (*slog.Logger, error) {
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return logging.New(lvl), nil
}

// CatalogSource picks the unit source from configuration: a catalog file, a remote
// service (cached), or nil for the built-in catalog.
func CatalogSource(cfg config.Config, logger *slog.Logger) ports.CatalogSource {
	switch {
	case cfg.Catalog.Path != "":
		return file.NewCatalogSource(cfg.Catalog.Path)
	case cfg.Catalog.URL != "":
		client := httpAdapter.NewClient(cfg.Catalog.URL, httpAdapter.WithClientLogger(logger))
		if cfg.Catalog.CacheTTL == 0 {
			return client
		}
		return catalog.NewCachedSource(client, cfg.Catalog.CacheTTL, catalog.WithCacheLogger(logger))
	}
	return nil
}

// LoadCatalog resolves the configured catalog.
func LoadCatalog(ctx context.Context, cfg config.Config, logger *slog.Logger) (*catalog.Catalog, error) {
	src := CatalogSource(cfg, logger)
	if src == nil {
		return catalog.Builtin()
	}
	cat, err := catalog.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	logger.Debug("Catalog loaded", "units", cat.Len())
	return cat, nil
}

// Backend bundles the session persistence chosen by configuration.
type Backend struct {
	Store  ports.SessionStore
	Locker ports.DistributedLocker
	close  func() error
}

// Close releases backend connections.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// NewBackend opens the configured session store (and distributed locker for redis).
func NewBackend(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Backend, error) {
	switch cfg.Store.Backend {
	case config.BackendRedis:
		store := redisAdapter.New(cfg.Redis.Addr, "", 0,
			redisAdapter.WithTTL(cfg.Redis.TTL),
			redisAdapter.WithPrefix(cfg.Redis.Prefix),
		)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		b := &Backend{Store: store, close: store.Close}
		if cfg.Redis.Lock {
			b.Locker = redisAdapter.NewLocker(store.Client(), cfg.Redis.Prefix)
		}
		logger.Info("Using redis session store", "addr", cfg.Redis.Addr, "locking", cfg.Redis.Lock)
		return b, nil
	case config.BackendFile:
		logger.Info("Using file session store", "dir", cfg.Store.Dir)
		return &Backend{Store: file.New(cfg.Store.Dir)}, nil
	default:
		return &Backend{Store: memory.NewStore()}, nil
	}
}

// NewService wires a session service over backend.
func NewService(b *Backend, cfg config.Config, rec session.Recorder, logger *slog.Logger) *session.Service {
	mgrOpts := []session.Option{session.WithLogger(logger)}
	if b.Locker != nil {
		mgrOpts = append(mgrOpts, session.WithLocker(b.Locker))
	}

	svcOpts := []session.ServiceOption{session.WithServiceLogger(logger)}
	if rec != nil {
		svcOpts = append(svcOpts, session.WithRecorder(rec))
	}
	if cfg.Server.Seed != 0 {
		svcOpts = append(svcOpts, session.WithSeed(cfg.Server.Seed))
	}

	return session.NewService(session.NewManager(b.Store, mgrOpts...), svcOpts...)
}
