// Package buffer implements the bounded event queue and double-buffer
// hand-off used by the client's flush path. It is deliberately not
// self-locking: every exported method assumes the caller already holds
// the client's single mutex, matching the single-lock concurrency model
// the rest of this SDK is built around.
package buffer

import "github.com/peekapi-dev/sdk-go/types"

// Buffer is a bounded, caller-locked queue of pending events plus a
// recycled "spare" slice used to avoid allocating a fresh backing array
// on every flush.
type Buffer struct {
	events []types.RequestEvent
	spare  []types.RequestEvent
	cap    int
}

// New returns a Buffer with the given hard capacity and an initial
// allocation sized for batchSize events.
func New(cap, batchSize int) *Buffer {
	return &Buffer{
		events: make([]types.RequestEvent, 0, batchSize),
		spare:  make([]types.RequestEvent, 0, batchSize),
		cap:    cap,
	}
}

// Len reports the number of currently buffered events.
func (b *Buffer) Len() int { return len(b.events) }

// Full reports whether the buffer is at its hard capacity.
func (b *Buffer) Full() bool { return len(b.events) >= b.cap }

// Push appends event, returning false without mutating the buffer if it
// is already at capacity.
func (b *Buffer) Push(event types.RequestEvent) bool {
	if b.Full() {
		return false
	}
	b.events = append(b.events, event)
	return true
}

// Swap hands the current events slice to the caller for sending and
// installs the recycled spare (cleared) as the new active slice. The
// caller is responsible for returning the drained slice via Recycle once
// it is no longer needed.
func (b *Buffer) Swap() []types.RequestEvent {
	taken := b.spare
	b.spare = nil
	out := b.events
	b.events = taken
	return out
}

// Recycle clears sent and, if no spare is currently held, installs it as
// the new spare so its backing array can be reused by the next Swap.
func (b *Buffer) Recycle(sent []types.RequestEvent) {
	sent = sent[:0]
	if len(b.spare) == 0 && cap(b.spare) == 0 {
		b.spare = sent
	}
}

// Requeue reinserts up to len(events) of events at the front of the
// buffer, bounded by remaining capacity. It is used after a retryable
// flush failure to put undelivered events back at the head of the queue.
func (b *Buffer) Requeue(events []types.RequestEvent) {
	space := b.cap - len(b.events)
	if space <= 0 || len(events) == 0 {
		return
	}
	n := len(events)
	if n > space {
		n = space
	}
	merged := make([]types.RequestEvent, 0, n+len(b.events))
	merged = append(merged, events[:n]...)
	merged = append(merged, b.events...)
	b.events = merged
}

// Drain removes and returns all buffered events, leaving the buffer empty.
func (b *Buffer) Drain() []types.RequestEvent {
	out := b.events
	b.events = nil
	return out
}

// Load appends events from a recovered batch, stopping once the buffer
// reaches capacity, and reports how many were actually admitted.
func (b *Buffer) Load(events []types.RequestEvent) int {
	admitted := 0
	for _, e := range events {
		if b.Full() {
			break
		}
		b.events = append(b.events, e)
		admitted++
	}
	return admitted
}
