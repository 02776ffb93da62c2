package editor

import (
	"context"
	"testing"

	"github.com/aretw0/chainalign/pkg/catalog"
	"github.com/aretw0/chainalign/pkg/domain"
	"github.com/aretw0/chainalign/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	m1 = domain.Unit{ID: "m1", Name: "M1", Provider: "test", InputType: domain.MediaText, OutputType: domain.MediaText}
	m2 = domain.Unit{ID: "m2", Name: "M2", Provider: "test", InputType: domain.MediaText, OutputType: domain.MediaText}
	m3 = domain.Unit{ID: "m3", Name: "M3", Provider: "test", InputType: domain.MediaText, OutputType: domain.MediaImage}
	v1 = domain.Unit{ID: "v1", Name: "V1", Provider: "test", InputType: domain.MediaImage, OutputType: domain.MediaText}

	// imageOut has no image consumer, so chains ending in image are closed.
	imageOut = domain.Unit{ID: "m2i", Name: "M2", Provider: "test", InputType: domain.MediaText, OutputType: domain.MediaImage}
)

func newCatalog(t testing.TB, units ...domain.Unit) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(units)
	require.NoError(t, err)
	return cat
}

// recorder collects every commit an editor emits.
type recorder struct {
	commits []domain.Commit
}

func (r *recorder) onChange(c domain.Commit) {
	r.commits = append(r.commits, c)
}

func (r *recorder) last(t *testing.T) []string {
	t.Helper()
	require.NotEmpty(t, r.commits, "expected at least one commit")
	return domain.Names(r.commits[len(r.commits)-1].Units)
}

// fataler is satisfied by both *testing.T and *rapid.T.
type fataler interface {
	Helper()
	Fatalf(format string, args ...any)
}

func settleAll(t fataler, e *Editor) {
	t.Helper()
	for i := 0; i < 64; i++ {
		pending := e.Pending()
		if len(pending) == 0 {
			return
		}
		e.Settle(pending[0])
	}
	t.Fatalf("editor did not settle: %v", e.Pending())
}

func TestNew_TrailingLink(t *testing.T) {
	cat := newCatalog(t, m1, imageOut)

	t.Run("empty chain has one open link", func(t *testing.T) {
		e := New(cat, nil)
		require.Equal(t, 1, e.Len())
		assert.False(t, e.Links()[0].Filled())
		assert.True(t, e.Settled())
	})

	t.Run("continuable chain is open", func(t *testing.T) {
		e := New(cat, []domain.Unit{m1})
		require.Equal(t, 2, e.Len())
		assert.True(t, e.Links()[0].Filled())
		assert.False(t, e.Links()[1].Filled())
	})

	t.Run("chain ending in an unconsumed medium is closed", func(t *testing.T) {
		e := New(cat, []domain.Unit{m1, imageOut})
		assert.Equal(t, 2, e.Len())
		assert.Equal(t, []string{"M1", "M2"}, domain.Names(e.Units()))
	})
}

func TestSelect_ClosesChainWithoutConsumer(t *testing.T) {
	rec := &recorder{}
	e := New(newCatalog(t, m1, imageOut), []domain.Unit{m1}, WithOnChange(rec.onChange))

	require.NoError(t, e.Select(1, imageOut))

	assert.Equal(t, 2, e.Len(), "no empty link may follow an image output")
	assert.Equal(t, []string{"M1", "M2"}, domain.Names(e.Units()))
	assert.True(t, e.Settled())
	require.Len(t, rec.commits, 1)
	assert.Equal(t, []string{"M1", "M2"}, rec.last(t))
	assert.Equal(t, uint64(1), rec.commits[0].Revision.Seq)
}

func TestSelect_IncompatibleSuccessorIsRemoved(t *testing.T) {
	rec := &recorder{}
	e := New(newCatalog(t, m1, m2, m3, v1), []domain.Unit{m1, m2}, WithOnChange(rec.onChange))
	require.Equal(t, 3, e.Len())

	require.NoError(t, e.Select(0, m3))

	assert.Empty(t, rec.commits, "commit must wait for the removal to finish")
	links := e.Links()
	assert.Equal(t, domain.TransitionExiting, links[1].State)
	assert.Equal(t, domain.TransitionIdle, links[2].State, "trailing empty link is left alone")

	pending := e.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, 1, pending[0].Position)

	assert.True(t, e.Settle(pending[0]))

	require.Equal(t, 2, e.Len())
	assert.Equal(t, []string{"M3"}, domain.Names(e.Units()))
	assert.False(t, e.Links()[1].Filled())
	assert.True(t, e.Settled())
	require.Len(t, rec.commits, 1)
	assert.Equal(t, []string{"M3"}, rec.last(t))

	assert.False(t, e.Settle(pending[0]), "a ticket settles only once")
}

func TestSelect_Errors(t *testing.T) {
	e := New(newCatalog(t, m1, m3, v1), []domain.Unit{m3})

	err := e.Select(5, m1)
	assert.ErrorIs(t, err, domain.ErrPositionOutOfRange)

	err = e.Select(-1, m1)
	assert.ErrorIs(t, err, domain.ErrPositionOutOfRange)

	err = e.Select(1, m1)
	assert.ErrorIs(t, err, domain.ErrIncompatibleUnit)
	assert.Equal(t, []string{"M3"}, domain.Names(e.Units()))
}

func TestSelect_AppendsEnteringLink(t *testing.T) {
	rec := &recorder{}
	e := New(newCatalog(t, m1, m2), []domain.Unit{m1}, WithOnChange(rec.onChange))

	require.NoError(t, e.Select(1, m2))

	require.Equal(t, 3, e.Len())
	assert.Equal(t, domain.TransitionEntering, e.Links()[2].State)
	require.Len(t, rec.commits, 1, "adding a unit commits at once")
	assert.Equal(t, []string{"M1", "M2"}, rec.last(t))

	pending := e.Pending()
	require.Len(t, pending, 1)
	assert.True(t, e.Settle(pending[0]))
	assert.True(t, e.Settled())
	assert.Len(t, rec.commits, 1, "settling an entering link does not commit")
}

func TestSelect_CompatibleReplacementCommitsImmediately(t *testing.T) {
	rec := &recorder{}
	e := New(newCatalog(t, m1, m2), []domain.Unit{m1, m1}, WithOnChange(rec.onChange))

	require.NoError(t, e.Select(0, m2))

	assert.True(t, e.Settled())
	assert.Equal(t, []string{"M2", "M1"}, rec.last(t))
}

func TestDeleteFrom(t *testing.T) {
	t.Run("removes the tail once every link settled", func(t *testing.T) {
		rec := &recorder{}
		e := New(newCatalog(t, m1, m2), []domain.Unit{m1, m2, m1}, WithOnChange(rec.onChange))
		require.Equal(t, 4, e.Len())

		require.NoError(t, e.DeleteFrom(1))
		pending := e.Pending()
		require.Len(t, pending, 2)

		// Completion order does not matter.
		assert.True(t, e.Settle(pending[1]))
		assert.Empty(t, rec.commits)
		assert.True(t, e.Settle(pending[0]))

		assert.Equal(t, 2, e.Len())
		assert.Equal(t, []string{"M1"}, domain.Names(e.Units()))
		require.Len(t, rec.commits, 1)
		assert.Equal(t, []string{"M1"}, rec.last(t))
	})

	t.Run("filled last link is reset in place", func(t *testing.T) {
		rec := &recorder{}
		e := New(newCatalog(t, m1, imageOut), []domain.Unit{m1, imageOut}, WithOnChange(rec.onChange))
		require.Equal(t, 2, e.Len())

		require.NoError(t, e.DeleteFrom(1))
		assert.Equal(t, domain.TransitionResetting, e.Links()[1].State)

		settleAll(t, e)
		assert.Equal(t, 2, e.Len(), "the reset link reopens the chain")
		assert.Equal(t, []string{"M1"}, rec.last(t))
	})

	t.Run("deleting everything leaves one open link", func(t *testing.T) {
		rec := &recorder{}
		e := New(newCatalog(t, m1), []domain.Unit{m1, m1}, WithOnChange(rec.onChange))

		require.NoError(t, e.DeleteFrom(0))
		settleAll(t, e)

		require.Equal(t, 1, e.Len())
		assert.False(t, e.Links()[0].Filled())
		require.Len(t, rec.commits, 1)
		assert.Empty(t, rec.commits[0].Units)
	})

	t.Run("trailing empty link is a no-op", func(t *testing.T) {
		rec := &recorder{}
		e := New(newCatalog(t, m1), []domain.Unit{m1}, WithOnChange(rec.onChange))

		require.NoError(t, e.DeleteFrom(1))
		assert.True(t, e.Settled())
		assert.Empty(t, rec.commits)
		assert.Equal(t, 2, e.Len())
	})

	t.Run("out of range", func(t *testing.T) {
		e := New(newCatalog(t, m1), nil)
		assert.ErrorIs(t, e.DeleteFrom(3), domain.ErrPositionOutOfRange)
	})
}

func TestSettle_StaleTickets(t *testing.T) {
	e := New(newCatalog(t, m1, m2, m3, v1), []domain.Unit{m1, m2})
	require.NoError(t, e.Select(0, m3))

	ticket := e.Pending()[0]

	assert.False(t, e.Settle(domain.Ticket{Position: ticket.Position, Epoch: ticket.Epoch + 7}))
	assert.False(t, e.Settle(domain.Ticket{Position: 42, Epoch: ticket.Epoch}))
	assert.False(t, e.Settle(domain.Ticket{Position: 0, Epoch: ticket.Epoch}), "idle link is not part of the batch")
	assert.False(t, e.Settled())

	assert.True(t, e.Settle(ticket))
	assert.True(t, e.Settled())
}

func TestCancellation(t *testing.T) {
	t.Run("new selection abandons the pending batch", func(t *testing.T) {
		rec := &recorder{}
		e := New(newCatalog(t, m1, m2, m3, v1), []domain.Unit{m1, m2}, WithOnChange(rec.onChange))

		require.NoError(t, e.Select(0, m3))
		stale := e.Pending()[0]

		require.NoError(t, e.Select(0, m1))

		assert.True(t, e.Settled())
		assert.False(t, e.Settle(stale), "signals from the abandoned batch are ignored")
		assert.Equal(t, []string{"M1", "M2"}, domain.Names(e.Units()))
		require.Len(t, rec.commits, 1)
		assert.Equal(t, []string{"M1", "M2"}, rec.last(t))
	})

	t.Run("newest action wins", func(t *testing.T) {
		rec := &recorder{}
		e := New(newCatalog(t, m1, m2, m3, v1), []domain.Unit{m1, m2}, WithOnChange(rec.onChange))

		require.NoError(t, e.Select(0, m3))
		require.NoError(t, e.Select(1, v1))

		assert.True(t, e.Settled())
		assert.Equal(t, []string{"M3", "V1"}, rec.last(t))
	})

	t.Run("restored incompatibility is removed again", func(t *testing.T) {
		rec := &recorder{}
		e := New(newCatalog(t, m1, m2, m3, v1), []domain.Unit{m1, m2, m2}, WithOnChange(rec.onChange))

		require.NoError(t, e.Select(0, m3))
		first := e.Pending()
		require.Len(t, first, 2)

		// M2 still feeds M1, but M3 no longer feeds the restored M2.
		require.NoError(t, e.Select(2, m1))
		second := e.Pending()
		require.Len(t, second, 2)
		assert.NotEqual(t, first[0].Epoch, second[0].Epoch)
		assert.Empty(t, rec.commits)

		settleAll(t, e)
		assert.Equal(t, []string{"M3"}, domain.Names(e.Units()))
		require.Len(t, rec.commits, 1)
		assert.Equal(t, []string{"M3"}, rec.last(t))
	})
}

func TestSync(t *testing.T) {
	cat := newCatalog(t, m1, m2, m3, v1)

	t.Run("own revision is an echo", func(t *testing.T) {
		rec := &recorder{}
		e := New(cat, []domain.Unit{m1}, WithOrigin("chain-1"), WithOnChange(rec.onChange))
		require.NoError(t, e.Select(1, m2))
		settleAll(t, e)

		c := rec.commits[0]
		assert.False(t, e.Sync(c.Units, c.Revision))
		assert.Equal(t, 3, e.Len(), "an echo leaves the links untouched")
	})

	t.Run("external revision rebuilds", func(t *testing.T) {
		e := New(cat, []domain.Unit{m1}, WithOrigin("chain-1"))
		require.NoError(t, e.Select(1, m2))

		rebuilt := e.Sync([]domain.Unit{m3}, domain.Revision{Origin: "registry", Seq: 1})
		assert.True(t, rebuilt)
		assert.Equal(t, []string{"M3"}, domain.Names(e.Units()))
		assert.True(t, e.Settled())
	})

	t.Run("rebuild abandons the pending batch", func(t *testing.T) {
		e := New(cat, []domain.Unit{m1, m2}, WithOrigin("chain-1"))
		require.NoError(t, e.Select(0, m3))
		stale := e.Pending()[0]

		assert.True(t, e.Sync([]domain.Unit{m1}, domain.Revision{}))
		assert.True(t, e.Settled())
		assert.False(t, e.Settle(stale))
		assert.Equal(t, 2, e.Len())
	})
}

func TestAvailableUnits(t *testing.T) {
	cat := newCatalog(t, m1, m2, m3, v1)

	e := New(cat, []domain.Unit{m1})
	assert.Len(t, e.AvailableUnits(0), 4, "first position offers the full catalog")
	assert.Equal(t, []string{"M1", "M2", "M3"}, domain.Names(e.AvailableUnits(1)))
	assert.Nil(t, e.AvailableUnits(9))

	e = New(cat, []domain.Unit{m3, v1})
	assert.Equal(t, []string{"M3"}, domain.Names(e.AvailableUnits(0)), "must still feed the next unit")
	assert.Equal(t, []string{"V1"}, domain.Names(e.AvailableUnits(1)))
}

func TestLifecycleHooks(t *testing.T) {
	var (
		starts  []*domain.BatchEvent
		settles []*domain.BatchEvent
		commits []*domain.CommitEvent
		syncs   []*domain.SyncEvent
	)
	hooks := domain.LifecycleHooks{
		OnBatchStart:   func(_ context.Context, ev *domain.BatchEvent) { starts = append(starts, ev) },
		OnBatchSettled: func(_ context.Context, ev *domain.BatchEvent) { settles = append(settles, ev) },
		OnCommit:       func(_ context.Context, ev *domain.CommitEvent) { commits = append(commits, ev) },
		OnSync:         func(_ context.Context, ev *domain.SyncEvent) { syncs = append(syncs, ev) },
	}

	e := New(newCatalog(t, m1, m2, m3, v1), []domain.Unit{m1, m2},
		WithOrigin("chain-7"), WithLifecycleHooks(hooks))

	require.NoError(t, e.Select(0, m3))
	require.Len(t, starts, 1)
	assert.Equal(t, []int{1}, starts[0].Positions)
	assert.Equal(t, domain.EventBatchStart, starts[0].Type)

	settleAll(t, e)
	require.Len(t, settles, 1)
	assert.False(t, settles[0].Abandoned)
	require.Len(t, commits, 1)
	assert.Equal(t, []string{"M3"}, commits[0].Units)
	assert.Equal(t, "chain-7", commits[0].Origin)

	e.Sync(nil, commits[0].Revision)
	require.Len(t, syncs, 1)
	assert.True(t, syncs[0].Echo)

	require.NoError(t, e.Select(0, m1))
	require.NoError(t, e.Select(1, m3))
	require.NoError(t, e.DeleteFrom(0))
	require.NoError(t, e.Select(0, m2))
	require.GreaterOrEqual(t, len(settles), 2)
	assert.True(t, settles[len(settles)-1].Abandoned)
}

func TestCommitsKeepChainValid(t *testing.T) {
	rec := &recorder{}
	e := New(newCatalog(t, m1, m2, m3, v1), nil, WithOnChange(rec.onChange))

	require.NoError(t, e.Select(0, m1))
	require.NoError(t, e.Select(1, m3))
	require.NoError(t, e.Select(2, v1))
	require.NoError(t, e.Select(0, m3))
	settleAll(t, e)

	for _, c := range rec.commits {
		assert.True(t, validation.CheckChain(c.Units).Valid, "commit %v", domain.Names(c.Units))
	}
}
