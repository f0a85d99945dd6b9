package types

import "time"

// ErrorCallback receives errors surfaced from failed flush attempts.
// Invoked on the goroutine that ran the flush (usually the background
// goroutine); implementations must not block or call back into the
// client synchronously.
type ErrorCallback func(err error)

// HeaderGetter looks up a single request header by (lowercased) name,
// returning ("", false) when the header is absent.
type HeaderGetter func(name string) (string, bool)

// IdentifyConsumerFunc derives a consumer identifier from request headers.
// get mirrors the interface DefaultIdentifyConsumer itself consumes.
type IdentifyConsumerFunc func(get HeaderGetter) (string, bool)

// Config is the fully-resolved, immutable configuration a Client operates
// with. It is produced by applying Options to a set of defaults; callers
// never construct it directly.
type Config struct {
	APIKey            string
	Endpoint          string
	FlushInterval     time.Duration
	BatchSize         int
	MaxBufferSize     int
	MaxStorageBytes   int64
	MaxEventBytes     int
	CollectQueryString bool
	Debug             bool
	StoragePath       string
	OnError           ErrorCallback
	IdentifyConsumer  IdentifyConsumerFunc
}

// Default resolved configuration values, applied when the corresponding
// Option is not supplied. BatchSize matches the zero-fallback used when
// constructing a client (see DESIGN.md); FlushInterval, MaxBufferSize,
// MaxStorageBytes, and MaxEventBytes match upstream's Options::new.
const (
	DefaultFlushInterval   = 15 * time.Second
	DefaultBatchSize       = 100
	DefaultMaxBufferSize   = 10_000
	DefaultMaxStorageBytes = 5_242_880
	DefaultMaxEventBytes   = 65_536
	DefaultEndpoint        = "https://ingest.peekapi.dev/v1/events"
)
