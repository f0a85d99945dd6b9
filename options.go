package peekapi

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/peekapi-dev/sdk-go/internal/spill"
	"github.com/peekapi-dev/sdk-go/types"
)

// settings holds every construction-time knob an Option can touch: the
// resolved Config shipped to internal components, plus a couple of
// ambient-infrastructure knobs (metrics registerer, optional S3 archive)
// that don't belong on Config itself since they configure optional
// dependencies rather than shipper behavior.
type settings struct {
	cfg        types.Config
	registerer prometheus.Registerer
	archive    *spill.ArchiveConfig
}

// Option configures a Client at construction time.
type Option func(*settings)

// WithEndpoint overrides the ingestion endpoint. Defaults to the PeekAPI
// cloud endpoint. Always validated by the SSRF-safe endpoint check.
func WithEndpoint(endpoint string) Option {
	return func(s *settings) { s.cfg.Endpoint = endpoint }
}

// WithFlushInterval overrides how often the background loop flushes the
// buffer even absent a batch-size trigger. Default 15s.
func WithFlushInterval(d time.Duration) Option {
	return func(s *settings) { s.cfg.FlushInterval = d }
}

// WithBatchSize overrides the event count that triggers an immediate
// flush. Default 100; the original SDK's documented range is 100-250.
func WithBatchSize(n int) Option {
	return func(s *settings) { s.cfg.BatchSize = n }
}

// WithMaxBufferSize overrides the hard cap on in-memory buffered events.
// Default 10,000.
func WithMaxBufferSize(n int) Option {
	return func(s *settings) { s.cfg.MaxBufferSize = n }
}

// WithMaxStorageBytes overrides the spill file's size cap. Default 5MiB.
func WithMaxStorageBytes(n int64) Option {
	return func(s *settings) { s.cfg.MaxStorageBytes = n }
}

// WithMaxEventBytes overrides the per-event serialized-size cap. Default
// 64KiB. Oversized events have their metadata stripped and are retried
// once before being dropped.
func WithMaxEventBytes(n int) Option {
	return func(s *settings) { s.cfg.MaxEventBytes = n }
}

// WithCollectQueryString records whether tracked paths should carry the
// sorted query string. Off by default: each unique path+query pair becomes
// a distinct endpoint in downstream aggregation. The setting is only
// stored in the client's configuration; Track keeps the path it is given
// and nothing in this package appends a query string.
func WithCollectQueryString(enabled bool) Option {
	return func(s *settings) { s.cfg.CollectQueryString = enabled }
}

// WithDebug enables structured debug logging to stderr.
func WithDebug(enabled bool) Option {
	return func(s *settings) { s.cfg.Debug = enabled }
}

// WithStoragePath overrides the spill file path. Defaults to
// "<temp dir>/peekapi-events-<hash of endpoint>.jsonl".
func WithStoragePath(path string) Option {
	return func(s *settings) { s.cfg.StoragePath = path }
}

// WithErrorCallback registers a callback invoked whenever a flush attempt
// fails (retryable or terminal). It runs on the goroutine that performed
// the flush: the background flush loop, or the caller of Flush or
// Shutdown.
func WithErrorCallback(cb ErrorCallback) Option {
	return func(s *settings) { s.cfg.OnError = cb }
}

// WithIdentifyConsumer stores fn as the consumer-identification callback
// in the client's configuration. Defaults to DefaultIdentifyConsumer.
// Track does not call it: an event keeps whatever ConsumerID it carries.
func WithIdentifyConsumer(fn IdentifyConsumerFunc) Option {
	return func(s *settings) { s.cfg.IdentifyConsumer = fn }
}

// WithMetricsRegisterer registers optional prometheus instrumentation of
// the shipper's own operational health (queue depth, flush outcomes,
// spill activity) against reg. Unset by default, in which case every
// metrics call is a no-op.
func WithMetricsRegisterer(reg prometheus.Registerer) Option {
	return func(s *settings) { s.registerer = reg }
}

// WithS3Archive configures a best-effort S3 backstop: when the local
// spill file is full and a batch would otherwise be silently discarded,
// it is uploaded to the given bucket/prefix instead. Unset by default.
func WithS3Archive(cfg spill.ArchiveConfig) Option {
	return func(s *settings) {
		archive := cfg
		s.archive = &archive
	}
}

// resolveSettings applies opts over the documented defaults, leaving any
// endpoint/storage-path derivation that depends on validation to New.
func resolveSettings(apiKey string, opts []Option) settings {
	s := settings{cfg: types.Config{
		APIKey:           apiKey,
		FlushInterval:    types.DefaultFlushInterval,
		BatchSize:        types.DefaultBatchSize,
		MaxBufferSize:    types.DefaultMaxBufferSize,
		MaxStorageBytes:  types.DefaultMaxStorageBytes,
		MaxEventBytes:    types.DefaultMaxEventBytes,
		IdentifyConsumer: DefaultIdentifyConsumer,
	}}
	for _, opt := range opts {
		opt(&s)
	}
	if s.cfg.Endpoint == "" {
		s.cfg.Endpoint = types.DefaultEndpoint
	}
	if s.cfg.FlushInterval <= 0 {
		s.cfg.FlushInterval = types.DefaultFlushInterval
	}
	if s.cfg.BatchSize <= 0 {
		s.cfg.BatchSize = types.DefaultBatchSize
	}
	if s.cfg.MaxBufferSize <= 0 {
		s.cfg.MaxBufferSize = types.DefaultMaxBufferSize
	}
	if s.cfg.MaxStorageBytes <= 0 {
		s.cfg.MaxStorageBytes = types.DefaultMaxStorageBytes
	}
	if s.cfg.MaxEventBytes <= 0 {
		s.cfg.MaxEventBytes = types.DefaultMaxEventBytes
	}
	return s
}
