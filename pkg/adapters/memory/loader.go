package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/aretw0/chainalign/pkg/catalog"
	"github.com/aretw0/chainalign/pkg/domain"
)

// Source implements ports.CatalogSource over a fixed set of units.
type Source struct {
	units []domain.Unit
}

// NewSource creates a catalog source serving units as given.
func NewSource(units ...domain.Unit) *Source {
	return &Source{units: append([]domain.Unit(nil), units...)}
}

// NewSourceFromJSON decodes raw unit records keyed by unit id, the way a remote
// catalog would deliver them. Records are decoded in key order and a single bad
// record fails the whole source.
func NewSourceFromJSON(data map[string]string) (*Source, error) {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	records := make([]map[string]any, 0, len(keys))
	for _, k := range keys {
		var rec map[string]any
		if err := json.Unmarshal([]byte(data[k]), &rec); err != nil {
			return nil, fmt.Errorf("failed to parse unit %s: %w", k, err)
		}
		if _, ok := rec["id"]; !ok {
			rec["id"] = k
		}
		records = append(records, rec)
	}

	units, err := catalog.Decode(records)
	if err != nil {
		return nil, err
	}
	return &Source{units: units}, nil
}

// Fetch returns a copy of the units.
func (s *Source) Fetch(ctx context.Context) ([]domain.Unit, error) {
	return append([]domain.Unit(nil), s.units...), nil
}
