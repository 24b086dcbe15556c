package session_test

import (
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/darkking4096/Agente-IA/pkg/domain/types"
	"github.com/darkking4096/Agente-IA/pkg/session"
)

func TestAcquireCreatesOnFirstContact(t *testing.T) {
	store := session.New()

	sess, release := store.Acquire("5511988887777")
	defer release()

	gt.Value(t, sess.Phone).Equal(types.Phone("5511988887777"))
	gt.Value(t, sess.State).Equal(types.StateNew)
	gt.Value(t, sess.TurnCount).Equal(0)
	gt.Value(t, store.Len()).Equal(1)
}

func TestAcquireReturnsSameSession(t *testing.T) {
	store := session.New()

	sess1, release1 := store.Acquire("5511988887777")
	sess1.Facts.Name = "Maria Silva"
	release1()

	sess2, release2 := store.Acquire("5511988887777")
	defer release2()

	gt.Value(t, sess2.Facts.Name).Equal("Maria Silva")
}

func TestSameIdentityIsSerialized(t *testing.T) {
	store := session.New()

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess, release := store.Acquire("5511988887777")
			defer release()

			// TurnCount is only safe to read-modify-write because the
			// identity lock is held.
			current := sess.TurnCount
			time.Sleep(time.Millisecond)
			sess.TurnCount = current + 1
		}()
	}
	wg.Wait()

	sess, release := store.Acquire("5511988887777")
	defer release()
	gt.Value(t, sess.TurnCount).Equal(workers)
}

func TestDifferentIdentitiesDoNotBlock(t *testing.T) {
	store := session.New()

	_, releaseA := store.Acquire("5511911112222")

	done := make(chan struct{})
	go func() {
		_, releaseB := store.Acquire("5511933334444")
		releaseB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Acquire for a different identity blocked")
	}

	releaseA()
}

func TestPeekDoesNotCreate(t *testing.T) {
	store := session.New()

	_, ok := store.Peek("5511988887777")
	gt.Bool(t, ok).False()
	gt.Value(t, store.Len()).Equal(0)

	sess, release := store.Acquire("5511988887777")
	sess.TurnCount = 3
	release()

	copied, ok := store.Peek("5511988887777")
	gt.Bool(t, ok).True()
	gt.Value(t, copied.TurnCount).Equal(3)
}

func TestResetDestroysSession(t *testing.T) {
	store := session.New()

	sess, release := store.Acquire("5511988887777")
	sess.Facts.Name = "Maria Silva"
	release()

	gt.Bool(t, store.Reset("5511988887777")).True()
	gt.Value(t, store.Len()).Equal(0)
	gt.Bool(t, store.Reset("5511988887777")).False()

	// Next contact starts from scratch.
	fresh, release := store.Acquire("5511988887777")
	defer release()
	gt.Value(t, fresh.Facts.Name).Equal("")
	gt.Value(t, fresh.State).Equal(types.StateNew)
}

func TestEvictIdleRemovesOnlyStaleSessions(t *testing.T) {
	store := session.New()

	stale, release := store.Acquire("5511911112222")
	stale.LastActivity = time.Now().Add(-7 * time.Hour)
	release()

	active, release := store.Acquire("5511933334444")
	active.LastActivity = time.Now()
	release()

	evicted := store.EvictIdle(6 * time.Hour)
	gt.Value(t, evicted).Equal(1)
	gt.Value(t, store.Len()).Equal(1)

	_, ok := store.Peek("5511911112222")
	gt.Bool(t, ok).False()
	_, ok = store.Peek("5511933334444")
	gt.Bool(t, ok).True()
}

func TestEvictIdleNeverRemovesMidTurn(t *testing.T) {
	store := session.New()

	sess, release := store.Acquire("5511911112222")
	sess.LastActivity = time.Now().Add(-7 * time.Hour)

	evictDone := make(chan int, 1)
	go func() {
		evictDone <- store.EvictIdle(6 * time.Hour)
	}()

	// The reaper must wait for the in-flight turn. Finish it with a
	// refreshed timestamp, as a real turn would.
	time.Sleep(50 * time.Millisecond)
	sess.LastActivity = time.Now()
	release()

	gt.Value(t, <-evictDone).Equal(0)
	gt.Value(t, store.Len()).Equal(1)
}
