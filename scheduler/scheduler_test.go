package scheduler

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func newTestScheduler() *Scheduler {
	return New(zerolog.Nop())
}

func TestSubmitRunsUnderTheExecutionToken(t *testing.T) {
	s := newTestScheduler()
	s.Lock()

	var ran int32
	done := make(chan struct{})
	s.Submit(func() {
		ran = 1
		close(done)
	})

	// The submitted task cannot run while we hold the token.
	select {
	case <-done:
		t.Fatal("task ran before the holder released the token")
	case <-time.After(20 * time.Millisecond):
	}

	s.Unlock()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task never ran")
	}
	assert.Equal(t, int32(1), ran)
}

func TestAwaitCloseReleasesAndReacquiresToken(t *testing.T) {
	s := newTestScheduler()
	s.Lock()

	ch := make(chan struct{})
	otherRan := make(chan struct{})
	s.Submit(func() { close(otherRan) })

	// AwaitClose must release the token so the submitted task can run.
	go func() {
		time.Sleep(10 * time.Millisecond)
		close(ch)
	}()
	s.AwaitClose(ch)

	select {
	case <-otherRan:
	default:
		t.Fatal("submitted task never got a chance to run while we were awaiting")
	}
	s.Unlock()
}

func TestTickYieldsExactlyOnce(t *testing.T) {
	s := newTestScheduler()
	s.Lock()
	before := s.Ticks()
	s.Tick()
	assert.Equal(t, before+1, s.Ticks())
	s.Unlock()
}

func TestSpawnBranchRunsConcurrentlyButSerialized(t *testing.T) {
	s := newTestScheduler()
	s.Lock()

	order := make(chan string, 2)
	s.SpawnBranch(func() {
		order <- "branch"
	})
	order <- "parent"
	s.Unlock()

	got := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case v := <-order:
			got[v] = true
		case <-time.After(time.Second):
			t.Fatal("branch never ran")
		}
	}
	assert.True(t, got["parent"])
	assert.True(t, got["branch"])
}
