package loam

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/chainalign/pkg/adapters/file"
	"github.com/aretw0/loam"
)

// DefaultDir is where named chain sets are kept when no directory is configured.
const DefaultDir = ".chainalign/library"

// ErrInvalidName is returned for chain-set names that cannot be used as document ids.
var ErrInvalidName = errors.New("invalid chain set name")

// ChainSetMetadata is the front matter of a stored chain-set document.
// The document body holds a free-form note.
type ChainSetMetadata struct {
	Name   string     `json:"name" mapstructure:"name"`
	Chains [][]string `json:"chains" mapstructure:"chains"`
}

// Entry is a stored chain set.
type Entry struct {
	Name string
	Note string
	Set  *file.ChainSet
}

// Library keeps named chain sets as documents in a Loam repository.
type Library struct {
	Repo *loam.TypedRepository[ChainSetMetadata]
}

// New wraps an existing typed repository.
func New(repo *loam.TypedRepository[ChainSetMetadata]) *Library {
	return &Library{Repo: repo}
}

// Open initializes a Loam repository in dir (DefaultDir when empty) without versioning.
func Open(dir string) (*Library, error) {
	if dir == "" {
		dir = DefaultDir
	}
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid library path: %w", err)
	}

	repo, err := loam.Init(absPath,
		loam.WithVersioning(false),
		loam.WithForceTemp(false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[ChainSetMetadata](repo)), nil
}

// Save stores set under name, replacing any previous document with that name.
func (l *Library) Save(ctx context.Context, name string, set *file.ChainSet, note string) error {
	if err := checkName(name); err != nil {
		return err
	}
	var chains [][]string
	if set != nil {
		chains = set.Chains
	}
	if chains == nil {
		chains = [][]string{}
	}

	err := l.Repo.Save(ctx, &loam.DocumentModel[ChainSetMetadata]{
		ID:      name,
		Content: note,
		Data:    ChainSetMetadata{Name: name, Chains: chains},
	})
	if err != nil {
		return fmt.Errorf("loam save failed for %s: %w", name, err)
	}
	return nil
}

// Load returns the chain set stored under name.
func (l *Library) Load(ctx context.Context, name string) (*Entry, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	doc, err := l.Repo.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("loam get failed for %s: %w", name, err)
	}

	entry := &Entry{
		Name: documentName(doc.ID, doc.Data),
		Note: strings.TrimSpace(doc.Content),
		Set:  &file.ChainSet{Chains: doc.Data.Chains},
	}
	return entry, nil
}

// List returns the names of stored chain sets, sorted.
func (l *Library) List(ctx context.Context) ([]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]struct{}, len(docs))
	names := make([]string, 0, len(docs))
	for _, doc := range docs {
		name := documentName(doc.ID, doc.Data)
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// documentName prefers the name recorded in front matter and falls back to the
// document id without its extension.
func documentName(id string, meta ChainSetMetadata) string {
	if meta.Name != "" {
		return meta.Name
	}
	return strings.TrimSuffix(id, filepath.Ext(id))
}

func checkName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
