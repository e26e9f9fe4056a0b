package telegram

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestSessionManager_IsAllowed(t *testing.T) {
	t.Run("empty whitelist allows all", func(t *testing.T) {
		sm := newSessionManager(nil)
		if !sm.isAllowed(123) {
			t.Error("expected all users allowed with nil whitelist")
		}
		if !sm.isAllowed(456) {
			t.Error("expected all users allowed with nil whitelist")
		}
	})

	t.Run("empty slice allows all", func(t *testing.T) {
		sm := newSessionManager([]int64{})
		if !sm.isAllowed(123) {
			t.Error("expected all users allowed with empty whitelist")
		}
	})

	t.Run("whitelist restricts", func(t *testing.T) {
		sm := newSessionManager([]int64{100, 200})
		if !sm.isAllowed(100) {
			t.Error("expected user 100 allowed")
		}
		if !sm.isAllowed(200) {
			t.Error("expected user 200 allowed")
		}
		if sm.isAllowed(300) {
			t.Error("expected user 300 denied")
		}
	})
}

func TestSessionManager_BeginEnd(t *testing.T) {
	sm := newSessionManager(nil)

	if !sm.begin(100) {
		t.Fatal("first begin should succeed")
	}
	if sm.begin(100) {
		t.Error("second begin for the same user should fail")
	}
	if !sm.begin(200) {
		t.Error("other users should not be blocked")
	}

	sm.end(100)
	if !sm.begin(100) {
		t.Error("begin should succeed after end")
	}
}

func TestSessionManager_ConcurrentBegin(t *testing.T) {
	sm := newSessionManager(nil)

	var wins atomic.Int32
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if sm.begin(42) {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := wins.Load(); got != 1 {
		t.Errorf("expected exactly one winner, got %d", got)
	}
}
