package backend

import (
	"sync"
	"testing"
	"time"
)

func TestLoopRunsPostedTasksInOrder(t *testing.T) {
	l := NewLoop(4)
	defer func() {
		l.Stop()
		l.Wait()
	}()

	var got []int
	for i := 0; i < 5; i++ {
		i := i
		if !l.Post(func() { got = append(got, i) }) {
			t.Fatalf("expected post %d to succeed", i)
		}
	}
	if !l.Do(func() {}) {
		t.Fatalf("expected Do to run")
	}
	if len(got) != 5 {
		t.Fatalf("expected 5 tasks, got %d", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("expected task %d at position %d, got %d", i, i, v)
		}
	}
}

func TestLoopScheduleRunsAfterDelay(t *testing.T) {
	l := NewLoop(4)
	defer func() {
		l.Stop()
		l.Wait()
	}()

	done := make(chan struct{})
	l.Schedule(10*time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timeout waiting for scheduled task")
	}
}

func TestLoopScheduleCancel(t *testing.T) {
	l := NewLoop(4)
	defer func() {
		l.Stop()
		l.Wait()
	}()

	var mu sync.Mutex
	ran := false
	cancel := l.Schedule(20*time.Millisecond, func() {
		mu.Lock()
		ran = true
		mu.Unlock()
	})
	cancel()
	cancel()
	time.Sleep(60 * time.Millisecond)
	l.Do(func() {})
	mu.Lock()
	defer mu.Unlock()
	if ran {
		t.Fatalf("expected cancelled task not to run")
	}
}

func TestLoopStopDropsPendingTimers(t *testing.T) {
	l := NewLoop(4)
	ran := make(chan struct{}, 1)
	l.Schedule(20*time.Millisecond, func() { ran <- struct{}{} })
	l.Stop()
	l.Wait()
	select {
	case <-ran:
		t.Fatalf("expected no task after stop")
	case <-time.After(60 * time.Millisecond):
	}
	if l.Post(func() {}) {
		t.Fatalf("expected post after stop to fail")
	}
	l.Schedule(0, func() { t.Fatalf("should not run") })()
}

func TestLoopShortTimersAreForgotten(t *testing.T) {
	l := NewLoop(64)
	defer func() {
		l.Stop()
		l.Wait()
	}()

	const n = 200
	ran := 0
	for i := 0; i < n; i++ {
		l.Schedule(time.Nanosecond, func() { ran++ })
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		var count int
		l.Do(func() { count = ran })
		if count == n {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected %d tasks to run, got %d", n, count)
		}
		time.Sleep(time.Millisecond)
	}

	l.mu.Lock()
	tracked := len(l.timers)
	l.mu.Unlock()
	if tracked != 0 {
		t.Fatalf("expected fired timers to be forgotten, %d still tracked", tracked)
	}
}
