package simulation

import (
	"context"
	"fmt"
	"time"
)

// Outcomes recorded per operation.
const (
	OutcomeSuccess   = "success"
	OutcomeFault     = "fault"
	OutcomeError     = "error"
	OutcomeCancelled = "cancelled"
)

// Observer receives the outcome and duration of each simulated operation.
type Observer interface {
	ObserveOperation(op Operation, outcome string, elapsed time.Duration)
}

// Engine applies latency and fault injection uniformly to simulated operations.
type Engine struct {
	latency  LatencyPolicy
	faults   FaultPolicy
	clock    Clock
	observer Observer
}

// NewEngine creates an Engine. Nil arguments fall back to no latency, no faults and the wall clock.
func NewEngine(latency LatencyPolicy, faults FaultPolicy, clock Clock, observer Observer) *Engine {
	if latency == nil {
		latency = NoLatency{}
	}
	if faults == nil {
		faults = NoFaults{}
	}
	if clock == nil {
		clock = RealClock{}
	}
	return &Engine{latency: latency, faults: faults, clock: clock, observer: observer}
}

// Immediate is an Engine without latency or faults, used by tests and tooling.
func Immediate() *Engine {
	return NewEngine(nil, nil, nil, nil)
}

// Clock returns the engine's clock.
func (e *Engine) Clock() Clock {
	return e.clock
}

// Now returns the current time on the engine's clock.
func (e *Engine) Now() time.Time {
	return e.clock.Now()
}

// Fault asks the fault policy whether op fails now.
func (e *Engine) Fault(op Operation) error {
	if err := e.faults.Inject(op); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Wait blocks for the latency of op, returning early with the context error on cancellation.
func (e *Engine) Wait(ctx context.Context, op Operation) error {
	d := e.latency.Delay(op)
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-e.clock.After(d):
		return nil
	}
}

// Do runs fn as the committing step of op. A fault skips fn; otherwise fn runs
// before the latency so cancellation during the wait never undoes its effects.
func (e *Engine) Do(ctx context.Context, op Operation, fn func() error) (err error) {
	start := e.clock.Now()
	outcome := OutcomeSuccess
	defer func() {
		e.Observe(op, outcome, e.clock.Now().Sub(start))
	}()

	if faultErr := e.Fault(op); faultErr != nil {
		outcome = OutcomeFault
		if err := e.Wait(ctx, op); err != nil {
			outcome = OutcomeCancelled
			return err
		}
		return faultErr
	}

	if err := fn(); err != nil {
		outcome = OutcomeError
		return err
	}

	if err := e.Wait(ctx, op); err != nil {
		outcome = OutcomeCancelled
		return err
	}
	return nil
}

// Observe forwards an outcome to the observer, if any.
func (e *Engine) Observe(op Operation, outcome string, elapsed time.Duration) {
	if e.observer != nil {
		e.observer.ObserveOperation(op, outcome, elapsed)
	}
}
