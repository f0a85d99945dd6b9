// Package peekapi is the core of PeekAPI's server-side request-analytics
// SDK: a buffered, failure-tolerant event shipper. Events are accumulated
// in memory and flushed to the ingestion endpoint on a background
// goroutine; undelivered batches are persisted to a local spill file and
// recovered on the next startup.
package peekapi

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/peekapi-dev/sdk-go/internal/backoff"
	"github.com/peekapi-dev/sdk-go/internal/buffer"
	"github.com/peekapi-dev/sdk-go/internal/logging"
	"github.com/peekapi-dev/sdk-go/internal/metrics"
	"github.com/peekapi-dev/sdk-go/internal/sanitize"
	"github.com/peekapi-dev/sdk-go/internal/sender"
	"github.com/peekapi-dev/sdk-go/internal/spill"
	"github.com/peekapi-dev/sdk-go/internal/ssrf"
	"github.com/peekapi-dev/sdk-go/types"
)

// Client is a buffered, failure-tolerant analytics event shipper. All
// mutable state tracked across goroutines (the event buffer and its
// spare, consecutive failure count, backoff deadline, and the
// flush-in-flight/wake flags) lives behind a single mutex, matching the
// single-lock design the rest of this package is built around — no
// per-component locking anywhere beneath it.
type Client struct {
	mu   sync.Mutex
	cond *sync.Cond

	buf                 *buffer.Buffer
	consecutiveFailures int
	backoffUntil        time.Time
	flushInFlight       bool
	wake                bool

	closed atomic.Bool
	wg     sync.WaitGroup

	cfg      types.Config
	sender   *sender.Sender
	store    *spill.Store
	archiver *spill.Archiver
	logger   *logging.Logger
	metrics  *metrics.Metrics
}

// New validates opts, loads any previously spilled events from disk, and
// starts the background flush loop. Returns a *ConfigError if apiKey or
// the resolved endpoint is invalid, or if a configured S3 archive cannot
// be set up.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, &ConfigError{Field: "api_key", Err: errors.New("api key is required")}
	}
	for _, r := range apiKey {
		if r == 0 || r == '\r' || r == '\n' {
			return nil, &ConfigError{Field: "api_key", Err: errors.New("api key contains invalid characters")}
		}
	}

	s := resolveSettings(apiKey, opts)
	cfg := s.cfg

	endpoint, err := ssrf.ValidateEndpoint(cfg.Endpoint)
	if err != nil {
		return nil, &ConfigError{Field: "endpoint", Err: err}
	}
	cfg.Endpoint = endpoint

	if cfg.StoragePath == "" {
		cfg.StoragePath = defaultStoragePath(endpoint)
	}

	c := &Client{
		buf:     buffer.New(cfg.MaxBufferSize, cfg.BatchSize),
		cfg:     cfg,
		sender:  sender.New(cfg.Endpoint, cfg.APIKey, Version),
		store:   spill.New(cfg.StoragePath, cfg.MaxStorageBytes),
		logger:  logging.New(cfg.Debug),
		metrics: metrics.New(s.registerer),
	}
	c.backoffUntil = time.Now()
	c.cond = sync.NewCond(&c.mu)

	if s.archive != nil {
		archiver, err := spill.NewArchiver(context.Background(), *s.archive)
		if err != nil {
			return nil, &ConfigError{Field: "s3_archive", Err: err}
		}
		c.archiver = archiver
	}

	c.loadFromDisk()

	c.wg.Add(1)
	go c.backgroundLoop()

	return c, nil
}

// defaultStoragePath derives "<temp dir>/peekapi-events-<hash>.jsonl",
// where hash is the first 4 bytes (8 hex characters) of SHA-256(endpoint)
// — enough to give distinct endpoints distinct spill files without
// leaking the endpoint itself into a filename.
func defaultStoragePath(endpoint string) string {
	sum := sha256.Sum256([]byte(endpoint))
	return filepath.Join(os.TempDir(), fmt.Sprintf("peekapi-events-%s.jsonl", hex.EncodeToString(sum[:4])))
}

// Track buffers an analytics event for later delivery. It never blocks on
// network I/O and never panics; oversized events, and events that arrive
// while the buffer is full, are dropped, optionally logged if debug is
// enabled.
func (c *Client) Track(event types.RequestEvent) {
	if c.closed.Load() {
		return
	}

	sanitized, ok := sanitize.Event(event, c.cfg.MaxEventBytes, time.Now())
	if !ok {
		c.metrics.IncDropped(metrics.DropReasonOversized)
		c.logger.Debug("dropping oversized event", nil)
		return
	}

	c.mu.Lock()
	if c.buf.Full() {
		c.wake = true
		c.mu.Unlock()
		c.cond.Signal()
		c.metrics.IncDropped(metrics.DropReasonBufferFull)
		c.logger.Debug("buffer full, dropping event", nil)
		return
	}
	c.buf.Push(sanitized)
	depth := c.buf.Len()
	shouldFlush := depth >= c.cfg.BatchSize
	if shouldFlush {
		c.wake = true
	}
	c.mu.Unlock()

	c.metrics.IncTracked()
	c.metrics.SetBufferDepth(depth)

	if shouldFlush {
		c.cond.Signal()
	}
}

// Flush synchronously attempts to deliver the current buffer. It is a
// no-op if a flush is already in flight, if the client is within its
// backoff window following consecutive failures, or if the buffer is
// empty.
func (c *Client) Flush() {
	c.mu.Lock()
	if c.flushInFlight {
		c.mu.Unlock()
		return
	}
	if c.consecutiveFailures > 0 && time.Now().Before(c.backoffUntil) {
		c.mu.Unlock()
		return
	}
	if c.buf.Len() == 0 {
		c.mu.Unlock()
		return
	}
	c.flushInFlight = true
	events := c.buf.Swap()
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), sender.SendTimeout)
	result := c.sender.Send(ctx, events)
	cancel()

	c.mu.Lock()
	c.flushInFlight = false

	switch result.Outcome {
	case sender.Ok:
		c.consecutiveFailures = 0
		c.backoffUntil = time.Now()
		c.buf.Recycle(events)
		c.mu.Unlock()
		c.metrics.IncFlushOutcome(metrics.FlushOutcomeOK)
		c.metrics.SetConsecutiveFailures(0)
		c.logger.Debug("flushed events successfully", map[string]any{"count": len(events)})

	case sender.Terminal:
		c.mu.Unlock()
		c.spillOrArchive(events)
		c.metrics.IncFlushOutcome(metrics.FlushOutcomeTerminal)
		c.logger.Debug("non-retryable flush error, persisted to disk", map[string]any{"error": result.Err})
		c.callOnError(result.Err)

	default: // sender.Retryable
		c.consecutiveFailures++
		failures := c.consecutiveFailures
		current := failures
		if failures >= backoff.MaxConsecutiveFailures {
			c.consecutiveFailures = 0
			current = 0
			c.mu.Unlock()
			c.spillOrArchive(events)
		} else {
			c.buf.Requeue(events)
			c.backoffUntil = time.Now().Add(backoff.Delay(failures))
			c.mu.Unlock()
		}
		c.metrics.IncFlushOutcome(metrics.FlushOutcomeRetryable)
		c.metrics.SetConsecutiveFailures(current)
		c.logger.Debug("flush failed", map[string]any{"error": result.Err, "consecutive_failures": failures})
		c.callOnError(result.Err)
	}
}

// Shutdown stops the background loop, performs one final flush (still
// subject to the backoff gate — a recently-failed client will not force
// one more network call past it), and persists any events still
// buffered afterward. Idempotent: a second call is a no-op.
func (c *Client) Shutdown() {
	if c.closed.Swap(true) {
		return
	}

	c.mu.Lock()
	c.wake = true
	c.mu.Unlock()
	c.cond.Signal()

	c.wg.Wait()

	c.mu.Lock()
	c.flushInFlight = false
	c.mu.Unlock()

	c.Flush()

	c.mu.Lock()
	remaining := c.buf.Drain()
	c.mu.Unlock()

	if len(remaining) > 0 {
		c.spillOrArchive(remaining)
	}

	c.sender.Close()
}

// bufferLen reports the number of events currently buffered. Used by
// tests; not part of the public API surface.
func (c *Client) bufferLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Len()
}

func (c *Client) backgroundLoop() {
	defer c.wg.Done()
	for {
		c.mu.Lock()
		deadline := time.Now().Add(c.cfg.FlushInterval)
		for !c.wake {
			remaining := time.Until(deadline)
			if remaining <= 0 {
				break
			}
			timer := time.AfterFunc(remaining, func() {
				c.mu.Lock()
				c.cond.Broadcast()
				c.mu.Unlock()
			})
			c.cond.Wait()
			timer.Stop()
		}
		c.wake = false
		closed := c.closed.Load()
		c.mu.Unlock()

		if closed {
			return
		}
		c.Flush()
	}
}

func (c *Client) loadFromDisk() {
	events, err := c.store.Load()
	if err != nil {
		c.logger.Debug("failed to load spill file", map[string]any{"error": err})
		return
	}
	if len(events) == 0 {
		return
	}
	c.mu.Lock()
	admitted := c.buf.Load(events)
	c.mu.Unlock()
	c.metrics.AddSpillLoaded(admitted)
	c.logger.Debug("recovered events from disk", map[string]any{"count": admitted})
}

// spillOrArchive persists events to the local spill file, and — if the
// local write fails for any reason (the file is at capacity, or an I/O
// error) and an S3 archiver is configured — uploads them to S3 instead as
// a best-effort backstop.
// Both paths swallow their own errors beyond a debug log: losing events
// here is already the tolerated failure mode.
func (c *Client) spillOrArchive(events []types.RequestEvent) {
	if len(events) == 0 {
		return
	}
	err := c.store.Persist(events)
	if err == nil {
		c.metrics.IncSpillWrite()
		return
	}
	c.logger.Debug("failed to persist events to disk", map[string]any{"error": err})

	if c.archiver == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), sender.SendTimeout)
	defer cancel()
	if archErr := c.archiver.Archive(ctx, events); archErr != nil {
		c.logger.Debug("failed to archive overflow events to s3", map[string]any{"error": archErr})
	}
}

func (c *Client) callOnError(err error) {
	if c.cfg.OnError != nil && err != nil {
		c.cfg.OnError(err)
	}
}
