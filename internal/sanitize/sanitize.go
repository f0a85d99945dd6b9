// Package sanitize normalizes and bounds a RequestEvent before it is
// admitted to the in-memory buffer: truncating oversized fields, filling
// in a timestamp, and enforcing a hard per-event serialized-size cap.
package sanitize

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/peekapi-dev/sdk-go/types"
)

const (
	// MaxPathLength is the longest path tolerated before truncation.
	MaxPathLength = 2048
	// MaxMethodLength is the longest HTTP method tolerated before truncation.
	MaxMethodLength = 16
	// MaxConsumerIDLength is the longest consumer id tolerated before truncation.
	MaxConsumerIDLength = 256
)

// Event truncates method/path/consumer_id, uppercases method, fills a
// missing timestamp, and enforces maxEventBytes by first stripping
// metadata and retrying once before reporting the event as too large to
// keep. ok is false when the event must be dropped.
func Event(event types.RequestEvent, maxEventBytes int, now time.Time) (out types.RequestEvent, ok bool) {
	out = event

	if len(out.Method) > MaxMethodLength {
		out.Method = out.Method[:MaxMethodLength]
	}
	out.Method = strings.ToUpper(out.Method)

	if len(out.Path) > MaxPathLength {
		out.Path = out.Path[:MaxPathLength]
	}

	if len(out.ConsumerID) > MaxConsumerIDLength {
		out.ConsumerID = out.ConsumerID[:MaxConsumerIDLength]
	}

	if out.Timestamp == "" {
		out.Timestamp = FormatTimestamp(now)
	}

	if raw, err := json.Marshal(out); err == nil && len(raw) <= maxEventBytes {
		return out, true
	}

	// Oversized — drop metadata and retry once before giving up.
	stripped := out
	stripped.Metadata = nil
	raw, err := json.Marshal(stripped)
	if err != nil || len(raw) > maxEventBytes {
		return types.RequestEvent{}, false
	}
	return stripped, true
}

// FormatTimestamp renders t as "YYYY-MM-DDTHH:MM:SS.mmmZ" in UTC using the
// civil-date decomposition in civildate.go rather than a date/time
// dependency, matching the original implementation's own choice to avoid
// pulling one in for a single fixed format.
func FormatTimestamp(t time.Time) string {
	u := t.UTC()
	days := uint64(u.Unix()) / 86400
	year, month, day := daysToYMD(days)
	secOfDay := uint64(u.Unix()) % 86400
	hours := secOfDay / 3600
	minutes := (secOfDay % 3600) / 60
	seconds := secOfDay % 60
	millis := u.Nanosecond() / 1_000_000

	return formatISO8601(year, month, day, hours, minutes, seconds, uint64(millis))
}
