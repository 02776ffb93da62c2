package chainalign

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/chainalign/internal/logging"
	"github.com/aretw0/chainalign/pkg/catalog"
	"github.com/aretw0/chainalign/pkg/domain"
	"github.com/aretw0/chainalign/pkg/ports"
	"github.com/aretw0/chainalign/pkg/registry"
	"github.com/aretw0/chainalign/pkg/validation"
)

// Composer is the high-level entry point for the chainalign library.
// It owns a catalog and a chain set built on top of it.
type Composer struct {
	catalog  *catalog.Catalog
	registry *registry.Registry
	source   ports.CatalogSource
	service  ports.SessionService
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
}

// Option defines a functional option for configuring the Composer.
type Option func(*Composer)

// WithCatalogSource replaces the built-in catalog with units fetched from src.
func WithCatalogSource(src ports.CatalogSource) Option {
	return func(c *Composer) {
		c.source = src
	}
}

// WithSessionService sets the service chain sets are submitted to.
func WithSessionService(svc ports.SessionService) Option {
	return func(c *Composer) {
		c.service = svc
	}
}

// WithLifecycleHooks registers observability hooks on every chain editor.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Composer) {
		c.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Composer) {
		c.logger = logger
	}
}

// New loads the catalog and creates a chain set holding one empty chain.
// Without WithCatalogSource the embedded built-in catalog is used.
func New(ctx context.Context, opts ...Option) (*Composer, error) {
	c := &Composer{
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	var err error
	if c.source != nil {
		c.catalog, err = catalog.Load(ctx, c.source)
	} else {
		c.catalog, err = catalog.Builtin()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	regOpts := []registry.Option{
		registry.WithLogger(c.logger),
		registry.WithLifecycleHooks(c.hooks),
	}
	if c.service != nil {
		regOpts = append(regOpts, registry.WithSessionService(c.service))
	}
	c.registry = registry.New(c.catalog, regOpts...)

	c.logger.Debug("Composer ready", "units", c.catalog.Len())
	return c, nil
}

// Catalog returns the loaded catalog.
func (c *Composer) Catalog() *catalog.Catalog {
	return c.catalog
}

// Chains returns the chain set.
func (c *Composer) Chains() *registry.Registry {
	return c.registry
}

// Compose replaces the contents of chain id with the referenced units (ids or names).
func (c *Composer) Compose(id domain.ChainID, refs ...string) error {
	units, err := c.catalog.ResolveAll(refs)
	if err != nil {
		return err
	}
	return c.registry.Replace(id, units)
}

// Validate checks the committed chain set.
func (c *Composer) Validate() validation.Report {
	return c.registry.Validate()
}

// Submit validates the chain set and starts a comparison session.
func (c *Composer) Submit(ctx context.Context) (*domain.StartSessionResponse, error) {
	return c.registry.Submit(ctx)
}
