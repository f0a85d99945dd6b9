// Package backoff implements the jittered exponential backoff used to
// space out retries after a retryable flush failure. Like internal/buffer
// it is a lock-free leaf package: the caller holds the client's mutex
// around every call.
package backoff

import (
	"math/rand/v2"
	"time"
)

// MaxConsecutiveFailures is the number of retryable failures, in a row,
// after which a flush gives up retrying the batch and spills it to disk
// instead of backing off further.
const MaxConsecutiveFailures = 5

// Base is the backoff unit: delay doubles from here on each consecutive
// failure, before jitter is applied.
const Base = time.Second

// Delay computes the jittered backoff delay for the nth consecutive
// failure (failures >= 1). Jitter spreads retries across roughly
// [0.5, 1.0) of the unjittered exponential delay; it is not required to
// be cryptographically random, only to avoid synchronized retry storms
// across many clients failing at once.
func Delay(failures int) time.Duration {
	if failures < 1 {
		failures = 1
	}
	shift := failures - 1
	if shift > 30 { // guard against overflow on pathological inputs
		shift = 30
	}
	base := Base * time.Duration(1<<uint(shift))
	jitter := 0.5 + rand.Float64()*0.5
	return time.Duration(float64(base) * jitter)
}
