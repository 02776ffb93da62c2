package file

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/chainalign/pkg/catalog"
	"github.com/aretw0/chainalign/pkg/domain"
	"github.com/aretw0/chainalign/pkg/registry"
	"gopkg.in/yaml.v3"
)

// ChainSet is the on-disk layout of a chain-set document:
//
//	chains:
//	  - [gpt-4, tts-1]
//	  - [claude-3-haiku, eleven_v3]
//
// Entries are unit ids or display names.
type ChainSet struct {
	Chains [][]string `yaml:"chains" json:"chains"`
}

// ParseChainSet decodes a chain-set document.
func ParseChainSet(data []byte) (*ChainSet, error) {
	var set ChainSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse chain set: %w", err)
	}
	return &set, nil
}

// LoadChainSet reads a chain-set document from path.
func LoadChainSet(path string) (*ChainSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chain set: %w", err)
	}
	return ParseChainSet(data)
}

// SaveChainSet writes a chain-set document to path atomically.
func SaveChainSet(path string, set *ChainSet) error {
	data, err := yaml.Marshal(set)
	if err != nil {
		return fmt.Errorf("failed to encode chain set: %w", err)
	}
	return writeAtomic(path, data)
}

// Resolve looks every reference up in cat. Any unknown reference fails the whole set.
func (s *ChainSet) Resolve(cat *catalog.Catalog) ([][]domain.Unit, error) {
	chains := make([][]domain.Unit, len(s.Chains))
	for i, refs := range s.Chains {
		units, err := cat.ResolveAll(refs)
		if err != nil {
			return nil, fmt.Errorf("chain %d: %w", i+1, err)
		}
		chains[i] = units
	}
	return chains, nil
}

// Apply loads the document into reg: the existing chains are overwritten in id order and
// chains are added or removed so the registry ends up holding exactly the document's chains.
// An empty document leaves one empty chain.
func (s *ChainSet) Apply(reg *registry.Registry) error {
	chains, err := s.Resolve(reg.Catalog())
	if err != nil {
		return err
	}
	if len(chains) == 0 {
		chains = [][]domain.Unit{nil}
	}

	ids := reg.IDs()
	for len(ids) < len(chains) {
		ids = append(ids, reg.AddChain())
	}
	for _, id := range ids[len(chains):] {
		if err := reg.RemoveChain(id); err != nil {
			return err
		}
	}

	for i, units := range chains {
		if err := reg.Replace(ids[i], units); err != nil {
			return err
		}
	}
	return nil
}

// Capture builds a document from the committed chains of reg, using unit ids.
func Capture(reg *registry.Registry) *ChainSet {
	snaps := reg.Chains()
	set := &ChainSet{Chains: make([][]string, len(snaps))}
	for i, snap := range snaps {
		ids := make([]string, len(snap.Units))
		for j, u := range snap.Units {
			ids[j] = u.ID
		}
		set.Chains[i] = ids
	}
	return set
}

// CatalogSource implements ports.CatalogSource over a catalog file (YAML or JSON).
type CatalogSource struct {
	Path string
}

// NewCatalogSource creates a catalog source reading path on every fetch.
func NewCatalogSource(path string) *CatalogSource {
	return &CatalogSource{Path: path}
}

// Fetch reads and decodes the catalog file.
func (c *CatalogSource) Fetch(ctx context.Context) ([]domain.Unit, error) {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return catalog.ParseYAML(data)
}
