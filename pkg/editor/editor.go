package editor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/chainalign/internal/logging"
	"github.com/aretw0/chainalign/pkg/catalog"
	"github.com/aretw0/chainalign/pkg/domain"
)

// Editor is the state machine of a single chain.
type Editor struct {
	catalog *catalog.Catalog
	links   []domain.Link
	pending *batch

	// epoch is the last transition epoch handed out.
	epoch uint64

	origin   string
	seq      uint64
	onChange func(domain.Commit)

	hooks  domain.LifecycleHooks
	logger *slog.Logger
	ctx    context.Context
}

// New creates an editor over cat, seeded with units.
// The seed is not committed; it is assumed to already be known to the owner.
func New(cat *catalog.Catalog, units []domain.Unit, opts ...Option) *Editor {
	e := &Editor{
		catalog: cat,
		origin:  "editor",
		logger:  logging.NewNop(),
		ctx:     context.Background(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.rebuild(units)
	return e
}

// Links returns a snapshot of the chain's links.
func (e *Editor) Links() []domain.Link {
	out := make([]domain.Link, len(e.links))
	copy(out, e.links)
	return out
}

// Len returns the number of links, including a trailing empty link.
func (e *Editor) Len() int {
	return len(e.links)
}

// Units returns the units of the chain as currently displayed, marked links included.
func (e *Editor) Units() []domain.Unit {
	return domain.Units(e.links)
}

// Revision returns the revision of the last commit this editor emitted.
func (e *Editor) Revision() domain.Revision {
	return domain.Revision{Origin: e.origin, Seq: e.seq}
}

// Settled reports whether no transition is in flight.
func (e *Editor) Settled() bool {
	if e.pending != nil {
		return false
	}
	for _, l := range e.links {
		if !l.Settled() {
			return false
		}
	}
	return true
}

// Pending returns a ticket for every transition the editor is still waiting on.
func (e *Editor) Pending() []domain.Ticket {
	var tickets []domain.Ticket
	for i, l := range e.links {
		switch l.State {
		case domain.TransitionEntering:
			tickets = append(tickets, domain.Ticket{Position: i, Epoch: l.Epoch})
		case domain.TransitionExiting, domain.TransitionResetting:
			if e.pending != nil && e.pending.epoch == l.Epoch && e.pending.isWaiting(i) {
				tickets = append(tickets, domain.Ticket{Position: i, Epoch: l.Epoch})
			}
		}
	}
	return tickets
}

// AvailableUnits returns the catalog units that may be placed at pos.
// The first position accepts any unit; later positions require a unit consuming the
// previous link's output and yield nothing while the previous link is empty. When the
// following link holds a unit, candidates must also feed it.
func (e *Editor) AvailableUnits(pos int) []domain.Unit {
	if pos < 0 || pos >= len(e.links) {
		return nil
	}

	var q catalog.Query
	if pos > 0 {
		prev := e.links[pos-1]
		if !prev.Filled() {
			return []domain.Unit{}
		}
		q.Input = prev.Unit.OutputType
	}
	if pos+1 < len(e.links) && e.links[pos+1].Filled() {
		q.Output = e.links[pos+1].Unit.InputType
	}

	return e.catalog.Filter(q)
}

// Select assigns unit to the link at pos.
//
// If the following unit can no longer consume the new output, every link after pos is
// scheduled for removal (the last one is reset in place when filled) and the commit waits
// for that batch to settle. Otherwise the change is committed at once, and selecting into
// the last link appends an entering empty link when the catalog can continue the chain.
func (e *Editor) Select(pos int, unit domain.Unit) error {
	if pos < 0 || pos >= len(e.links) {
		return fmt.Errorf("%w: %d (chain has %d links)", domain.ErrPositionOutOfRange, pos, len(e.links))
	}
	if pos > 0 {
		if prev := e.links[pos-1]; prev.Filled() && !prev.Unit.Feeds(unit) {
			return fmt.Errorf("%w: %s expects %s but %s outputs %s",
				domain.ErrIncompatibleUnit, unit.Name, unit.InputType, prev.Unit.Name, prev.Unit.OutputType)
		}
	}

	e.supersede()

	u := unit
	e.links[pos] = domain.Link{Unit: &u, State: domain.TransitionIdle}

	next := pos + 1
	last := len(e.links) - 1

	switch {
	case next <= last && e.links[next].Filled() && !unit.Feeds(*e.links[next].Unit):
		e.markFrom(next)
	case next > last && e.catalog.HasConsumer(unit.OutputType):
		e.links = append(e.links, domain.Link{
			State: domain.TransitionEntering,
			Epoch: e.nextEpoch(),
		})
	}

	e.repair()
	e.afterEdit()
	return nil
}

// DeleteFrom schedules every link from pos onward for removal.
// The last link is reset in place when filled and left alone when it is the trailing
// empty link, so the chain keeps its open end. Deleting only the trailing empty link
// is a no-op.
func (e *Editor) DeleteFrom(pos int) error {
	if pos < 0 || pos >= len(e.links) {
		return fmt.Errorf("%w: %d (chain has %d links)", domain.ErrPositionOutOfRange, pos, len(e.links))
	}
	if !e.links[pos].Filled() {
		return nil
	}

	e.supersede()
	e.markFrom(pos)
	e.repair()
	e.afterEdit()
	return nil
}

// Settle reports that the transition identified by t finished.
// It returns false for stale tickets: unknown positions, superseded epochs, links that
// already settled, or members of an abandoned batch.
func (e *Editor) Settle(t domain.Ticket) bool {
	if t.Position < 0 || t.Position >= len(e.links) {
		return false
	}
	l := &e.links[t.Position]
	if l.Epoch != t.Epoch || l.Settled() {
		e.logger.Debug("Ignoring stale transition signal", "origin", e.origin, "position", t.Position, "epoch", t.Epoch)
		return false
	}

	switch l.State {
	case domain.TransitionEntering:
		l.State = domain.TransitionIdle
		return true

	case domain.TransitionExiting, domain.TransitionResetting:
		b := e.pending
		if b == nil || b.epoch != t.Epoch || !b.isWaiting(t.Position) {
			return false
		}
		if b.settle(t.Position) {
			e.release()
		}
		return true
	}

	return false
}

// Sync reconciles externally supplied contents with the editor.
// A revision this editor emitted itself (or an older one of its own) is an echo and is
// ignored; anything else rebuilds the links from scratch, abandoning any pending batch.
// It reports whether the links were rebuilt.
func (e *Editor) Sync(units []domain.Unit, rev domain.Revision) bool {
	echo := rev.Origin == e.origin && rev.Seq <= e.seq && !rev.IsZero()

	if e.hooks.OnSync != nil {
		e.hooks.OnSync(e.ctx, &domain.SyncEvent{
			EventBase: e.event(domain.EventSync),
			Revision:  rev,
			Echo:      echo,
		})
	}

	if echo {
		return false
	}

	e.logger.Debug("Rebuilding chain from external update", "origin", e.origin, "revision", rev.String(), "units", len(units))
	e.rebuild(units)
	return true
}

func (e *Editor) rebuild(units []domain.Unit) {
	e.pending = nil
	e.links = make([]domain.Link, 0, len(units)+1)
	for i := range units {
		u := units[i]
		e.links = append(e.links, domain.Link{Unit: &u, State: domain.TransitionIdle})
	}
	if e.continues(units) {
		e.links = append(e.links, domain.Link{State: domain.TransitionIdle})
	}
}

// continues reports whether a chain ending in units should carry a trailing empty link.
func (e *Editor) continues(units []domain.Unit) bool {
	if len(units) == 0 {
		return true
	}
	return e.catalog.HasConsumer(units[len(units)-1].OutputType)
}

func (e *Editor) nextEpoch() uint64 {
	e.epoch++
	return e.epoch
}

// mark schedules the link at pos in the pending batch, opening one if needed.
func (e *Editor) mark(pos int, state domain.TransitionState) {
	if e.pending == nil {
		e.pending = newBatch(e.nextEpoch())
	}
	l := &e.links[pos]
	l.State = state
	l.Epoch = e.pending.epoch
	if l.Filled() {
		e.pending.dropsUnits = true
	}
	e.pending.add(pos)
}

// markFrom schedules links from pos to the end, applying the trailing-link exception.
func (e *Editor) markFrom(pos int) {
	last := len(e.links) - 1
	for i := pos; i <= last; i++ {
		switch {
		case i < last:
			e.mark(i, domain.TransitionExiting)
		case e.links[i].Filled():
			e.mark(i, domain.TransitionResetting)
		}
	}
}

// repair schedules removal from the first adjacent pair that is still incompatible,
// and drops a trailing empty link nothing in the catalog could fill.
// Incompatible pairs only survive when a superseded batch put its links back.
func (e *Editor) repair() {
	for i := 1; i < len(e.links); i++ {
		prev, cur := e.links[i-1], e.links[i]
		if !prev.Filled() || !cur.Filled() || !prev.Settled() || !cur.Settled() {
			continue
		}
		if !prev.Unit.Feeds(*cur.Unit) {
			e.markFrom(i)
			return
		}
	}

	last := len(e.links) - 1
	tail := e.links[last]
	if last == 0 || tail.Filled() || removing(tail) {
		return
	}
	if !e.continues(domain.Units(e.links[:last])) {
		e.mark(last, domain.TransitionExiting)
	}
}

func removing(l domain.Link) bool {
	return l.State == domain.TransitionExiting || l.State == domain.TransitionResetting
}

// supersede abandons the pending batch: its links return to idle and its epoch is
// retired, so completion signals still in flight for it are ignored.
func (e *Editor) supersede() {
	b := e.pending
	if b == nil {
		return
	}
	e.pending = nil

	for _, pos := range b.members {
		if pos < len(e.links) && e.links[pos].Epoch == b.epoch {
			e.links[pos].State = domain.TransitionIdle
			e.links[pos].Epoch = 0
		}
	}

	e.logger.Debug("Abandoned pending batch", "origin", e.origin, "epoch", b.epoch, "positions", b.positions())
	if e.hooks.OnBatchSettled != nil {
		e.hooks.OnBatchSettled(e.ctx, &domain.BatchEvent{
			EventBase: e.event(domain.EventBatchSettled),
			Epoch:     b.epoch,
			Positions: b.positions(),
			Abandoned: true,
		})
	}
}

// afterEdit commits immediately unless a batch that removes units is pending.
func (e *Editor) afterEdit() {
	b := e.pending
	if b != nil && b.empty() {
		e.pending = nil
		b = nil
	}

	if b != nil {
		e.logger.Debug("Waiting on transition batch", "origin", e.origin, "epoch", b.epoch, "positions", b.positions())
		if e.hooks.OnBatchStart != nil {
			e.hooks.OnBatchStart(e.ctx, &domain.BatchEvent{
				EventBase: e.event(domain.EventBatchStart),
				Epoch:     b.epoch,
				Positions: b.positions(),
			})
		}
		if b.dropsUnits {
			return
		}
	}

	e.commit()
}

// release runs once every member of the pending batch settled: the chain is cut just
// before the batch, the open end restored, and the result committed.
func (e *Editor) release() {
	b := e.pending
	e.pending = nil

	e.links = e.links[:b.min]
	if e.continues(domain.Units(e.links)) {
		e.links = append(e.links, domain.Link{State: domain.TransitionIdle})
	}

	e.logger.Debug("Transition batch settled", "origin", e.origin, "epoch", b.epoch, "links", len(e.links))
	if e.hooks.OnBatchSettled != nil {
		e.hooks.OnBatchSettled(e.ctx, &domain.BatchEvent{
			EventBase: e.event(domain.EventBatchSettled),
			Epoch:     b.epoch,
			Positions: b.positions(),
		})
	}

	if b.dropsUnits {
		e.commit()
	}
}

func (e *Editor) commit() {
	e.seq++
	c := domain.Commit{
		Units:    domain.Units(e.links),
		Revision: domain.Revision{Origin: e.origin, Seq: e.seq},
	}

	if e.hooks.OnCommit != nil {
		e.hooks.OnCommit(e.ctx, &domain.CommitEvent{
			EventBase: e.event(domain.EventCommit),
			Revision:  c.Revision,
			Units:     domain.Names(c.Units),
		})
	}

	if e.onChange != nil {
		e.onChange(c)
	}
}

func (e *Editor) event(t domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: time.Now(),
		Type:      t,
		Origin:    e.origin,
	}
}
