package entity

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robinpie/ath/scheduler"
)

func newTestScheduler() *scheduler.Scheduler {
	return scheduler.New(zerolog.Nop())
}

func awaitDeath(t *testing.T, e *Entity) {
	t.Helper()
	done := make(chan struct{})
	e.OnDeath(func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("entity never died")
	}
}

func TestDieIsIdempotent(t *testing.T) {
	sched := newTestScheduler()
	sched.Lock()
	e := NewThis(sched)
	calls := 0
	e.OnDeath(func() { calls++ })
	e.Die()
	e.Die()
	sched.Unlock()
	awaitDeath(t, e)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, 1, calls)
	assert.False(t, e.Alive())
}

func TestOnDeathAfterDeathStillFiresAsync(t *testing.T) {
	sched := newTestScheduler()
	sched.Lock()
	e := NewThis(sched)
	e.Die()
	fired := false
	e.OnDeath(func() { fired = true })
	// Must not be synchronous: no tick has run yet.
	assert.False(t, fired)
	sched.Unlock()
	awaitDeath(t, e)
}

func TestAndWaitsForAllOperands(t *testing.T) {
	sched := newTestScheduler()
	sched.Lock()
	a := NewThis(sched)
	b := NewThis(sched)
	composite := And(sched, []*Entity{a, b})
	a.Die()
	sched.Unlock()
	time.Sleep(20 * time.Millisecond)
	assert.True(t, composite.Alive())

	sched.Lock()
	b.Die()
	sched.Unlock()
	awaitDeath(t, composite)
}

func TestOrFiresOnFirstOperand(t *testing.T) {
	sched := newTestScheduler()
	sched.Lock()
	a := NewThis(sched)
	b := NewThis(sched)
	composite := Or(sched, []*Entity{a, b})
	a.Die()
	sched.Unlock()
	awaitDeath(t, composite)
	assert.True(t, b.Alive())
}

func TestNotDiesNextTickRegardlessOfOperand(t *testing.T) {
	sched := newTestScheduler()
	sched.Lock()
	operand := NewThis(sched)
	composite := Not(sched, operand)
	sched.Unlock()
	awaitDeath(t, composite)
	assert.True(t, operand.Alive())
}

func TestTableRebindKillsPredecessor(t *testing.T) {
	sched := newTestScheduler()
	sched.Lock()
	table := NewTable(sched)
	first := NewThis(sched)
	table.Bind("x", first)
	second := NewThis(sched)
	table.Bind("x", second)
	sched.Unlock()

	awaitDeath(t, first)
	assert.True(t, second.Alive())

	bound, ok := table.Get("x")
	require.True(t, ok)
	assert.Same(t, second, bound)
}

func TestTableDieUnknownName(t *testing.T) {
	sched := newTestScheduler()
	sched.Lock()
	table := NewTable(sched)
	sched.Unlock()
	err := table.Die("nope")
	assert.Error(t, err)
}
