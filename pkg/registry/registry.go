package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/aretw0/chainalign/internal/logging"
	"github.com/aretw0/chainalign/pkg/catalog"
	"github.com/aretw0/chainalign/pkg/domain"
	"github.com/aretw0/chainalign/pkg/editor"
	"github.com/aretw0/chainalign/pkg/ports"
	"github.com/aretw0/chainalign/pkg/validation"
)

// ErrNoService is returned by Submit when no session service was configured.
var ErrNoService = errors.New("no session service configured")

// Origin is the revision origin used for contents written by the registry itself.
const Origin = "registry"

// Snapshot is the committed state of one chain.
type Snapshot struct {
	ID       domain.ChainID  `json:"id"`
	Units    []domain.Unit   `json:"units"`
	Revision domain.Revision `json:"revision"`
}

type chain struct {
	id       domain.ChainID
	editor   *editor.Editor
	units    []domain.Unit
	revision domain.Revision
}

// Registry manages the chains of a chain set.
type Registry struct {
	mu      sync.RWMutex
	catalog *catalog.Catalog
	chains  map[domain.ChainID]*chain
	lastID  domain.ChainID
	active  domain.ChainID
	seq     uint64

	service ports.SessionService
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
}

// New creates a registry holding a single empty chain.
func New(cat *catalog.Catalog, opts ...Option) *Registry {
	r := &Registry{
		catalog: cat,
		chains:  make(map[domain.ChainID]*chain),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.active = r.AddChain()
	return r
}

// Catalog returns the catalog chains are composed from.
func (r *Registry) Catalog() *catalog.Catalog {
	return r.catalog
}

// AddChain appends a new empty chain and returns its identifier.
func (r *Registry) AddChain() domain.ChainID {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	id := r.lastID
	c := &chain{id: id}
	c.editor = editor.New(r.catalog, nil,
		editor.WithOrigin(id.String()),
		editor.WithOnChange(func(commit domain.Commit) {
			if err := r.UpdateChain(id, commit); err != nil {
				r.logger.Warn("Dropped commit from detached editor", "chain", id.String(), "error", err)
			}
		}),
		editor.WithLifecycleHooks(r.hooks),
		editor.WithLogger(r.logger),
	)
	r.chains[id] = c

	r.logger.Debug("Chain added", "chain", id.String(), "chains", len(r.chains))
	return id
}

// RemoveChain deletes a chain. The last remaining chain cannot be removed.
// When the active chain is removed, focus moves to the next chain, or the previous
// one when it was the last.
func (r *Registry) RemoveChain(id domain.ChainID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.chains[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrChainNotFound, id)
	}
	if len(r.chains) == 1 {
		return fmt.Errorf("%w: %s", domain.ErrLastChain, id)
	}

	ids := r.sortedIDs()
	delete(r.chains, id)

	if r.active == id {
		i := sort.Search(len(ids), func(i int) bool { return ids[i] >= id })
		if i+1 < len(ids) {
			r.active = ids[i+1]
		} else {
			r.active = ids[i-1]
		}
	}

	r.logger.Debug("Chain removed", "chain", id.String(), "chains", len(r.chains))
	return nil
}

// UpdateChain stores the committed contents of a chain and re-broadcasts them to the
// chain's editor. Editors call it from their change callback; the editor recognises
// its own revision and keeps its links.
func (r *Registry) UpdateChain(id domain.ChainID, commit domain.Commit) error {
	r.mu.Lock()
	c, ok := r.chains[id]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", domain.ErrChainNotFound, id)
	}
	c.units = cloneUnits(commit.Units)
	c.revision = commit.Revision
	ed := c.editor
	r.mu.Unlock()

	ed.Sync(cloneUnits(commit.Units), commit.Revision)
	return nil
}

// Replace overwrites a chain from outside its editor, for example when loading a saved
// chain set. The editor rebuilds its links from units.
func (r *Registry) Replace(id domain.ChainID, units []domain.Unit) error {
	r.mu.Lock()
	r.seq++
	rev := domain.Revision{Origin: Origin, Seq: r.seq}
	r.mu.Unlock()

	return r.UpdateChain(id, domain.Commit{Units: units, Revision: rev})
}

// Editor returns the editor driving a chain.
func (r *Registry) Editor(id domain.ChainID) (*editor.Editor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.chains[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrChainNotFound, id)
	}
	return c.editor, nil
}

// Chain returns the committed state of one chain.
func (r *Registry) Chain(id domain.ChainID) (Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.chains[id]
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: %s", domain.ErrChainNotFound, id)
	}
	return c.snapshot(), nil
}

// Service returns the session service chains are submitted to, or nil.
func (r *Registry) Service() ports.SessionService {
	return r.service
}

// IDs returns the chain identifiers in ascending order.
func (r *Registry) IDs() []domain.ChainID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedIDs()
}

// Chains returns the committed state of every chain, ordered by identifier.
func (r *Registry) Chains() []Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Snapshot, 0, len(r.chains))
	for _, id := range r.sortedIDs() {
		out = append(out, r.chains[id].snapshot())
	}
	return out
}

// Len returns the number of chains.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.chains)
}

// Validate runs the chain-set validation over the committed chains.
func (r *Registry) Validate() validation.Report {
	snaps := r.Chains()
	chains := make([][]domain.Unit, len(snaps))
	for i, s := range snaps {
		chains[i] = s.Units
	}
	return validation.ValidateChainSet(chains)
}

// Submit validates the chain set and, only when it is valid, starts a comparison
// session with one list of unit names per chain. Validation failures are returned as
// *validation.AggregateError and never reach the service.
func (r *Registry) Submit(ctx context.Context) (*domain.StartSessionResponse, error) {
	snaps := r.Chains()
	chains := make([][]domain.Unit, len(snaps))
	names := make([][]string, len(snaps))
	for i, s := range snaps {
		chains[i] = s.Units
		names[i] = domain.Names(s.Units)
	}

	report := validation.ValidateChainSet(chains)
	if !report.Valid {
		r.logger.Info("Chain set rejected", "issues", len(report.Issues))
		return nil, report.Err()
	}
	if r.service == nil {
		return nil, ErrNoService
	}

	resp, err := r.service.Start(ctx, domain.StartSessionRequest{ModelChains: names})
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	r.logger.Info("Session started", "session_id", resp.SessionID, "chains", resp.NumChains)
	return resp, nil
}

func (r *Registry) sortedIDs() []domain.ChainID {
	ids := make([]domain.ChainID, 0, len(r.chains))
	for id := range r.chains {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (c *chain) snapshot() Snapshot {
	return Snapshot{ID: c.id, Units: cloneUnits(c.units), Revision: c.revision}
}

func cloneUnits(units []domain.Unit) []domain.Unit {
	out := make([]domain.Unit, len(units))
	copy(out, units)
	return out
}
