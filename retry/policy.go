// Package retry determines when a failed job is next attempted.
package retry

import (
	"math"
	"math/rand"
	"time"
)

// Policy is an interface for determining when a failed job should next be
// attempted.
type Policy interface {
	// NextRetry returns the time at which a job should be attempted again.
	//
	// failures is the number of attempts that have already failed, not
	// including the attempt that failed with cause.
	NextRetry(now time.Time, failures int, cause error) time.Time
}

// DefaultPolicy is the retry policy used when none is configured.
var DefaultPolicy Policy = ExponentialBackoff{
	Min:    1 * time.Second,
	Max:    5 * time.Minute,
	Jitter: 0.1,
}

// ExponentialBackoff is a retry policy that uses exponential backoff.
type ExponentialBackoff struct {
	Min    time.Duration
	Max    time.Duration
	Jitter float64
}

// NextRetry returns the time at which the job should next be attempted.
func (p ExponentialBackoff) NextRetry(
	now time.Time,
	failures int,
	_ error,
) time.Time {
	return now.Add(
		p.delay(failures),
	)
}

// delay returns the time to delay a job that has already failed n times.
func (p ExponentialBackoff) delay(n int) time.Duration {
	s := math.Pow(2, float64(n)) * p.Min.Seconds()

	if s > p.Max.Seconds() {
		s = p.Max.Seconds()
	}

	s *= 1 + (rand.Float64() * p.Jitter)

	return time.Duration(
		s * float64(time.Second),
	)
}

// FixedDelay is a retry policy that always waits the same amount of time
// before the next attempt.
type FixedDelay struct {
	Delay time.Duration
}

// NextRetry returns the time at which the job should next be attempted.
func (p FixedDelay) NextRetry(now time.Time, _ int, _ error) time.Time {
	return now.Add(p.Delay)
}

// Immediate is a retry policy that makes a failed job due again straight away.
var Immediate Policy = FixedDelay{}
