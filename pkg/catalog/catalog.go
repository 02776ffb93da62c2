package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/chainalign/pkg/domain"
	"github.com/aretw0/chainalign/pkg/ports"
)

// ErrDuplicateUnit is returned when two catalog records share an ID.
var ErrDuplicateUnit = errors.New("duplicate unit id")

// Catalog is a read-only index over the available units.
// It is built once per fetch and shared by every chain editor; it is never mutated,
// so concurrent readers need no locking.
type Catalog struct {
	units  []domain.Unit
	byID   map[string]int
	byName map[string]int
}

// New indexes units. Unit IDs must be unique and media types valid.
func New(units []domain.Unit) (*Catalog, error) {
	c := &Catalog{
		units:  make([]domain.Unit, len(units)),
		byID:   make(map[string]int, len(units)),
		byName: make(map[string]int, len(units)),
	}
	copy(c.units, units)

	for i, u := range c.units {
		if u.ID == "" {
			return nil, fmt.Errorf("unit %d: missing id", i)
		}
		if !u.InputType.Valid() || !u.OutputType.Valid() {
			return nil, fmt.Errorf("unit %q: %w: %q -> %q", u.ID, domain.ErrUnknownMediaType, u.InputType, u.OutputType)
		}
		if _, exists := c.byID[u.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateUnit, u.ID)
		}
		c.byID[u.ID] = i
		if _, exists := c.byName[u.Name]; !exists {
			c.byName[u.Name] = i
		}
	}

	return c, nil
}

// Load fetches units from src and indexes them. A failed fetch yields no catalog at all.
func Load(ctx context.Context, src ports.CatalogSource) (*Catalog, error) {
	units, err := src.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	return New(units)
}

// Len returns the number of units.
func (c *Catalog) Len() int {
	return len(c.units)
}

// Units returns every unit in catalog order.
func (c *Catalog) Units() []domain.Unit {
	out := make([]domain.Unit, len(c.units))
	copy(out, c.units)
	return out
}

// ByID looks a unit up by its identifier.
func (c *Catalog) ByID(id string) (domain.Unit, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Unit{}, false
	}
	return c.units[i], true
}

// ByName looks a unit up by its display name (first match wins).
func (c *Catalog) ByName(name string) (domain.Unit, bool) {
	i, ok := c.byName[name]
	if !ok {
		return domain.Unit{}, false
	}
	return c.units[i], true
}

// Resolve accepts either an ID or a display name.
func (c *Catalog) Resolve(ref string) (domain.Unit, error) {
	if u, ok := c.ByID(ref); ok {
		return u, nil
	}
	if u, ok := c.ByName(ref); ok {
		return u, nil
	}
	return domain.Unit{}, fmt.Errorf("%w: %q", domain.ErrUnknownUnit, ref)
}

// ResolveAll resolves a list of references, failing on the first unknown one.
func (c *Catalog) ResolveAll(refs []string) ([]domain.Unit, error) {
	units := make([]domain.Unit, 0, len(refs))
	for _, ref := range refs {
		u, err := c.Resolve(ref)
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, nil
}

// Query filters units by media type. Empty fields match anything.
type Query struct {
	Input  domain.MediaType
	Output domain.MediaType
}

// Filter returns the units matching q, in catalog order.
func (c *Catalog) Filter(q Query) []domain.Unit {
	out := make([]domain.Unit, 0)
	for _, u := range c.units {
		if q.Input != "" && u.InputType != q.Input {
			continue
		}
		if q.Output != "" && u.OutputType != q.Output {
			continue
		}
		out = append(out, u)
	}
	return out
}

// Consumers returns the units that accept media as input.
func (c *Catalog) Consumers(media domain.MediaType) []domain.Unit {
	return c.Filter(Query{Input: media})
}

// HasConsumer reports whether any unit accepts media as input.
func (c *Catalog) HasConsumer(media domain.MediaType) bool {
	for _, u := range c.units {
		if u.InputType == media {
			return true
		}
	}
	return false
}

// ByProvider returns the units of a provider (case-insensitive).
func (c *Catalog) ByProvider(provider string) []domain.Unit {
	out := make([]domain.Unit, 0)
	for _, u := range c.units {
		if strings.EqualFold(u.Provider, provider) {
			out = append(out, u)
		}
	}
	return out
}

// ByCapability returns the units advertising a capability.
func (c *Catalog) ByCapability(capability string) []domain.Unit {
	out := make([]domain.Unit, 0)
	for _, u := range c.units {
		if u.HasCapability(capability) {
			out = append(out, u)
		}
	}
	return out
}
