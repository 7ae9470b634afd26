package simulation

import (
	"errors"
	"math/rand/v2"
)

// ErrTransientFailure is returned for injected, retryable failures
var ErrTransientFailure = errors.New("transient failure")

// FaultPolicy decides whether an operation fails. A nil error means no fault.
type FaultPolicy interface {
	Inject(op Operation) error
}

// NoFaults never fails.
type NoFaults struct{}

func (NoFaults) Inject(Operation) error { return nil }

// FaultFunc adapts a function to FaultPolicy.
type FaultFunc func(op Operation) error

func (f FaultFunc) Inject(op Operation) error { return f(op) }

// RandomFaults fails operations with probability Rate.
// When Ops is non-empty only the listed operations are affected.
type RandomFaults struct {
	Rate float64
	Ops  map[Operation]bool
}

func (r RandomFaults) Inject(op Operation) error {
	if r.Rate <= 0 {
		return nil
	}
	if len(r.Ops) > 0 && !r.Ops[op] {
		return nil
	}
	if rand.Float64() < r.Rate {
		return ErrTransientFailure
	}
	return nil
}

// AlwaysFail fails every operation in Ops, or every operation when Ops is empty.
func AlwaysFail(ops ...Operation) FaultFunc {
	set := make(map[Operation]bool, len(ops))
	for _, op := range ops {
		set[op] = true
	}
	return func(op Operation) error {
		if len(set) == 0 || set[op] {
			return ErrTransientFailure
		}
		return nil
	}
}
