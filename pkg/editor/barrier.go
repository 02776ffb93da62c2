package editor

import "sort"

// batch is a completion barrier: the set of link positions whose removal or reset
// transition must finish before the chain is truncated and committed.
type batch struct {
	epoch   uint64
	members []int
	marked  map[int]struct{}
	waiting map[int]struct{}
	min     int

	// dropsUnits is set when at least one filled link belongs to the batch,
	// meaning the committed contents change once the barrier releases.
	dropsUnits bool
}

func newBatch(epoch uint64) *batch {
	return &batch{
		epoch:   epoch,
		marked:  make(map[int]struct{}),
		waiting: make(map[int]struct{}),
		min:     -1,
	}
}

func (b *batch) add(pos int) {
	if _, dup := b.marked[pos]; dup {
		return
	}
	b.marked[pos] = struct{}{}
	b.members = append(b.members, pos)
	b.waiting[pos] = struct{}{}
	if b.min < 0 || pos < b.min {
		b.min = pos
	}
}

func (b *batch) isWaiting(pos int) bool {
	_, ok := b.waiting[pos]
	return ok
}

// settle checks a position off and reports whether the whole batch has now settled.
func (b *batch) settle(pos int) bool {
	delete(b.waiting, pos)
	return len(b.waiting) == 0
}

func (b *batch) empty() bool {
	return len(b.members) == 0
}

func (b *batch) positions() []int {
	out := make([]int, len(b.members))
	copy(out, b.members)
	sort.Ints(out)
	return out
}
