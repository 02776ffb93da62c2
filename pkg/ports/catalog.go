package ports

import (
	"context"

	"github.com/aretw0/chainalign/pkg/domain"
)

// CatalogSource supplies the list of units chains can be built from.
// Implementations must fail the whole fetch on any malformed record.
type CatalogSource interface {
	Fetch(ctx context.Context) ([]domain.Unit, error)
}

// CatalogSourceFunc adapts a function to CatalogSource.
type CatalogSourceFunc func(ctx context.Context) ([]domain.Unit, error)

// Fetch calls f.
func (f CatalogSourceFunc) Fetch(ctx context.Context) ([]domain.Unit, error) {
	return f(ctx)
}
