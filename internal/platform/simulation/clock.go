// Package simulation centralizes the artificial latency and fault injection applied
// to every simulated blockchain and audit provider operation.
package simulation

import "time"

// Clock abstracts time so tests can control latency.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

// RealClock is the wall clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now().UTC() }

func (RealClock) After(d time.Duration) <-chan time.Time { return time.After(d) }
