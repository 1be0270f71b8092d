package gate

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestRun_Success(t *testing.T) {
	t.Parallel()

	g := New(time.Second, 2)

	got, err := Run(g, func() (string, error) {
		return "rendered", nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got != "rendered" {
		t.Errorf("Run = %q, want %q", got, "rendered")
	}
}

func TestRun_WorkError(t *testing.T) {
	t.Parallel()

	g := New(time.Second, 2)
	boom := errors.New("engine exploded")

	_, err := Run(g, func() (int, error) {
		return 0, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Run = %v, want wrapped work error", err)
	}
	if errors.Is(err, ErrRenderTimeout) {
		t.Error("work error misreported as timeout")
	}
}

func TestRun_TimeoutWithinBudget(t *testing.T) {
	t.Parallel()

	const budget = 50 * time.Millisecond
	g := New(budget, 2)

	start := time.Now()
	_, err := Run(g, func() (int, error) {
		time.Sleep(10 * budget)
		return 42, nil
	})
	elapsed := time.Since(start)

	if !errors.Is(err, ErrRenderTimeout) {
		t.Fatalf("Run = %v, want ErrRenderTimeout", err)
	}
	// Budget plus a scheduling epsilon, well under the work's sleep.
	if elapsed > 5*budget {
		t.Errorf("caller waited %v, want about %v", elapsed, budget)
	}
}

// A timed-out work unit is not cancelled: it completes in the background.
// This is the deliberate best-effort cache warm, and the one resource risk
// the slot cap exists to bound.
func TestRun_TimedOutWorkCompletes(t *testing.T) {
	t.Parallel()

	g := New(20*time.Millisecond, 2)
	var completed atomic.Bool

	_, err := Run(g, func() (int, error) {
		time.Sleep(100 * time.Millisecond)
		completed.Store(true)
		return 1, nil
	})
	if !errors.Is(err, ErrRenderTimeout) {
		t.Fatalf("Run = %v, want ErrRenderTimeout", err)
	}
	if completed.Load() {
		t.Fatal("work completed before the caller timed out")
	}

	deadline := time.Now().Add(2 * time.Second)
	for !completed.Load() {
		if time.Now().After(deadline) {
			t.Fatal("abandoned work never completed")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// Abandoned work keeps its admission slot, so a full gate rejects new
// callers within their budget instead of stacking unbounded goroutines.
func TestRun_FullGateRejectsAdmission(t *testing.T) {
	t.Parallel()

	g := New(20*time.Millisecond, 1)
	release := make(chan struct{})

	// Occupy the only slot past its caller's timeout.
	_, err := Run(g, func() (int, error) {
		<-release
		return 0, nil
	})
	if !errors.Is(err, ErrRenderTimeout) {
		t.Fatalf("first Run = %v, want ErrRenderTimeout", err)
	}

	start := time.Now()
	_, err = Run(g, func() (int, error) { return 0, nil })
	if !errors.Is(err, ErrRenderTimeout) {
		t.Fatalf("second Run = %v, want ErrRenderTimeout (admission)", err)
	}
	if elapsed := time.Since(start); elapsed > 200*time.Millisecond {
		t.Errorf("admission wait took %v, want about the budget", elapsed)
	}

	close(release)
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	g := New(0, 0)
	if g.Budget() != DefaultBudget {
		t.Errorf("budget = %v, want %v", g.Budget(), DefaultBudget)
	}
	if cap(g.slots) != DefaultMaxConcurrent {
		t.Errorf("slot cap = %d, want %d", cap(g.slots), DefaultMaxConcurrent)
	}
}
