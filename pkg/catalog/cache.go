package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/chainalign/internal/logging"
	"github.com/aretw0/chainalign/pkg/domain"
	"github.com/aretw0/chainalign/pkg/ports"
	gocache "github.com/patrickmn/go-cache"
)

const (
	// DefaultCacheTTL is how long a fetched catalog is served before refetching.
	DefaultCacheTTL = 10 * time.Minute
	// DefaultCleanupInterval is how often expired entries are purged.
	DefaultCleanupInterval = 30 * time.Minute

	cacheKey = "catalog"
)

// CachedSource memoizes a CatalogSource for a TTL.
// Only successful fetches are cached; an error is returned as-is and retried on the next call.
type CachedSource struct {
	src    ports.CatalogSource
	cache  *gocache.Cache
	logger *slog.Logger
}

// CacheOption configures a CachedSource.
type CacheOption func(*CachedSource)

// WithCacheLogger sets the logger used for cache hits and misses.
func WithCacheLogger(logger *slog.Logger) CacheOption {
	return func(c *CachedSource) {
		c.logger = logger
	}
}

// NewCachedSource wraps src with an in-memory cache.
func NewCachedSource(src ports.CatalogSource, ttl time.Duration, opts ...CacheOption) *CachedSource {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	c := &CachedSource{
		src:    src,
		cache:  gocache.New(ttl, DefaultCleanupInterval),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the cached units or fetches them from the wrapped source.
func (c *CachedSource) Fetch(ctx context.Context) ([]domain.Unit, error) {
	if v, found := c.cache.Get(cacheKey); found {
		if units, ok := v.([]domain.Unit); ok {
			c.logger.Debug("catalog cache hit", "units", len(units))
			return copyUnits(units), nil
		}
	}

	units, err := c.src.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("catalog cache miss", "units", len(units))
	c.cache.Set(cacheKey, copyUnits(units), gocache.DefaultExpiration)
	return units, nil
}

// Invalidate drops the cached catalog.
func (c *CachedSource) Invalidate() {
	c.cache.Delete(cacheKey)
}

func copyUnits(units []domain.Unit) []domain.Unit {
	out := make([]domain.Unit, len(units))
	copy(out, units)
	return out
}
