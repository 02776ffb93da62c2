package registry

import (
	"fmt"

	"github.com/aretw0/chainalign/pkg/domain"
)

// Active returns the chain currently holding focus.
func (r *Registry) Active() domain.ChainID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// Focus moves focus to a chain.
func (r *Registry) Focus(id domain.ChainID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.chains[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrChainNotFound, id)
	}
	r.active = id
	return nil
}

// Next moves focus to the following chain, wrapping around, and returns it.
func (r *Registry) Next() domain.ChainID {
	return r.step(1)
}

// Prev moves focus to the preceding chain, wrapping around, and returns it.
func (r *Registry) Prev() domain.ChainID {
	return r.step(-1)
}

func (r *Registry) step(delta int) domain.ChainID {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := r.sortedIDs()
	i := 0
	for n, id := range ids {
		if id == r.active {
			i = n
			break
		}
	}
	i = (i + delta + len(ids)) % len(ids)
	r.active = ids[i]
	return r.active
}
