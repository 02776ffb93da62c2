package domain

import "fmt"

// ChainID identifies a chain inside a chain set.
// Identifiers are allocated monotonically and never reused.
type ChainID uint64

func (id ChainID) String() string {
	return fmt.Sprintf("chain-%d", uint64(id))
}

// Revision tags a committed chain with where it came from.
// Origin names the writer (an editor or the registry itself); Seq increases per writer.
type Revision struct {
	Origin string `json:"origin"`
	Seq    uint64 `json:"seq"`
}

// IsZero reports whether the revision was never assigned.
func (r Revision) IsZero() bool {
	return r.Origin == "" && r.Seq == 0
}

func (r Revision) String() string {
	return fmt.Sprintf("%s@%d", r.Origin, r.Seq)
}

// Commit is the settled contents of a chain as emitted upward by an editor.
type Commit struct {
	Units    []Unit   `json:"units"`
	Revision Revision `json:"revision"`
}
