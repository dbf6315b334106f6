package entity

import (
	"fmt"
	"sync"

	"github.com/robinpie/ath/scheduler"
)

// Table is the program's entity table (spec.md §3.3): every named entity a
// program has created, plus which of those names are branches (so ~ATH can
// choose branch mode over wait mode).
type Table struct {
	sched *scheduler.Scheduler

	mu       sync.Mutex
	byName   map[string]*Entity
	branches map[string]bool
}

// NewTable creates an empty Table bound to sched.
func NewTable(sched *scheduler.Scheduler) *Table {
	return &Table{
		sched:    sched,
		byName:   make(map[string]*Entity),
		branches: make(map[string]bool),
	}
}

// Bind installs e under name, killing whatever entity previously held that
// name (spec.md §4.5: re-importing a name that is already bound kills the
// predecessor before the new entity takes the name).
func (t *Table) Bind(name string, e *Entity) {
	e.Name = name
	t.mu.Lock()
	prev := t.byName[name]
	t.byName[name] = e
	t.mu.Unlock()
	if prev != nil {
		prev.Die()
	}
}

// MarkBranch records that name refers to a branch entity, for IsBranch.
func (t *Table) MarkBranch(name string) {
	t.mu.Lock()
	t.branches[name] = true
	t.mu.Unlock()
}

// IsBranch reports whether name was bound via bifurcation.
func (t *Table) IsBranch(name string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.branches[name]
}

// Get looks up the entity bound to name.
func (t *Table) Get(name string) (*Entity, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.byName[name]
	return e, ok
}

// Die kills the entity bound to name, or reports an error if no such entity
// was ever bound (spec.md's DIE target must name a live binding).
func (t *Table) Die(name string) error {
	e, ok := t.Get(name)
	if !ok {
		return fmt.Errorf("entity.Table: %q is not bound to an entity", name)
	}
	e.Die()
	return nil
}

// All returns every entity currently bound to a name, dead or alive, for
// final program cleanup (spec.md §4.9's drain). A predecessor replaced by
// Bind is not included.
func (t *Table) All() []*Entity {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*Entity, 0, len(t.byName))
	for _, e := range t.byName {
		out = append(out, e)
	}
	return out
}

// Alive returns every entity currently alive.
func (t *Table) Alive() []*Entity {
	all := t.All()
	out := all[:0]
	for _, e := range all {
		if e.Alive() {
			out = append(out, e)
		}
	}
	return out
}
