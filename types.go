package peekapi

import "github.com/peekapi-dev/sdk-go/types"

// RequestEvent is a single captured API request observation. It is
// re-exported from the internal types package so callers only ever need
// to import this root package.
type RequestEvent = types.RequestEvent

// ErrorCallback receives errors surfaced from failed flush attempts.
type ErrorCallback = types.ErrorCallback

// HeaderGetter looks up a single request header by name.
type HeaderGetter = types.HeaderGetter

// IdentifyConsumerFunc derives a consumer identifier from request headers.
type IdentifyConsumerFunc = types.IdentifyConsumerFunc
