// Package gate bounds the wall-clock wait and the concurrency of render
// work units.
package gate

import (
	"errors"
	"fmt"
	"time"
)

// ErrRenderTimeout reports work that exceeded its budget. The work itself
// keeps running in the background.
var ErrRenderTimeout = errors.New("render timed out")

// Default bounds applied when the caller configures none.
const (
	DefaultBudget        = 3 * time.Second
	DefaultMaxConcurrent = 4
)

// Gate runs work units concurrently with their callers, bounding both how
// long a caller waits and how many units may be in flight at once.
//
// A timed-out unit is not cancelled: it finishes in the background and its
// result warms the cache for the next pass. It keeps holding its admission
// slot until then, so the slot count also bounds abandoned work instead of
// letting it pile up.
type Gate struct {
	budget time.Duration
	slots  chan struct{}
}

// New creates a Gate with the given wait budget and concurrency cap.
// Non-positive values fall back to the package defaults.
func New(budget time.Duration, maxConcurrent int) *Gate {
	if budget <= 0 {
		budget = DefaultBudget
	}
	if maxConcurrent < 1 {
		maxConcurrent = DefaultMaxConcurrent
	}
	return &Gate{
		budget: budget,
		slots:  make(chan struct{}, maxConcurrent),
	}
}

// Budget returns the per-call wait budget.
func (g *Gate) Budget() time.Duration {
	return g.budget
}

// Run executes work on the gate and waits up to the budget for its result.
// The budget covers admission too: when every slot is held, the caller
// gives up after the same deadline. On timeout the zero value and
// ErrRenderTimeout come back while the work continues in the background.
// Errors from the work are returned wrapped, without retry.
func Run[T any](g *Gate, work func() (T, error)) (T, error) {
	var zero T

	timer := time.NewTimer(g.budget)
	defer timer.Stop()

	select {
	case g.slots <- struct{}{}:
	case <-timer.C:
		return zero, fmt.Errorf("%w after %s: all render slots busy", ErrRenderTimeout, g.budget)
	}

	type outcome struct {
		value T
		err   error
	}
	done := make(chan outcome, 1)

	go func() {
		defer func() { <-g.slots }()
		v, err := work()
		done <- outcome{value: v, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			return zero, fmt.Errorf("render failed: %w", out.err)
		}
		return out.value, nil
	case <-timer.C:
		return zero, fmt.Errorf("%w after %s", ErrRenderTimeout, g.budget)
	}
}
