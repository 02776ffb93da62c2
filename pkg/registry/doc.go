// Package registry holds the set of chains composed for one comparison session.
//
// Each chain is driven by its own editor.Editor. Editors push settled contents back
// through UpdateChain, and the registry re-broadcasts every stored value to the owning
// editor, which recognises its own revisions and ignores them. Chain identifiers are
// allocated monotonically and never reused, so stale references to a removed chain fail
// with domain.ErrChainNotFound instead of silently addressing a neighbour.
//
// The registry itself is safe for concurrent use. The editors it hands out are not and
// must be driven from a single event loop.
package registry
