package sanitize

import (
	"strings"
	"testing"
	"time"

	"github.com/peekapi-dev/sdk-go/types"
)

func TestEventUppercasesAndTruncatesMethod(t *testing.T) {
	event := types.RequestEvent{Method: strings.Repeat("g", 20)}
	out, ok := Event(event, types.DefaultMaxEventBytes, time.Now())
	if !ok {
		t.Fatal("expected event to be kept")
	}
	if len(out.Method) != MaxMethodLength {
		t.Fatalf("method length = %d, want %d", len(out.Method), MaxMethodLength)
	}
	if out.Method != strings.ToUpper(out.Method) {
		t.Fatalf("method not uppercased: %q", out.Method)
	}
}

func TestEventTruncatesPathAndConsumerID(t *testing.T) {
	event := types.RequestEvent{
		Method:     "get",
		Path:       strings.Repeat("a", 3000),
		ConsumerID: strings.Repeat("b", 300),
	}
	out, ok := Event(event, types.DefaultMaxEventBytes, time.Now())
	if !ok {
		t.Fatal("expected event to be kept")
	}
	if len(out.Path) != MaxPathLength {
		t.Fatalf("path length = %d, want %d", len(out.Path), MaxPathLength)
	}
	if len(out.ConsumerID) != MaxConsumerIDLength {
		t.Fatalf("consumer id length = %d, want %d", len(out.ConsumerID), MaxConsumerIDLength)
	}
}

func TestEventFillsMissingTimestamp(t *testing.T) {
	event := types.RequestEvent{Method: "GET", Path: "/x"}
	out, ok := Event(event, types.DefaultMaxEventBytes, time.Now())
	if !ok {
		t.Fatal("expected event to be kept")
	}
	if out.Timestamp == "" {
		t.Fatal("expected timestamp to be filled")
	}
}

func TestEventPreservesExistingTimestamp(t *testing.T) {
	event := types.RequestEvent{Method: "GET", Path: "/x", Timestamp: "2020-01-01T00:00:00.000Z"}
	out, ok := Event(event, types.DefaultMaxEventBytes, time.Now())
	if !ok {
		t.Fatal("expected event to be kept")
	}
	if out.Timestamp != "2020-01-01T00:00:00.000Z" {
		t.Fatalf("timestamp = %q, want unchanged", out.Timestamp)
	}
}

func TestEventStripsMetadataWhenOversized(t *testing.T) {
	event := types.RequestEvent{
		Method:   "GET",
		Path:     "/x",
		Metadata: []byte(`"` + strings.Repeat("z", 200) + `"`),
	}
	out, ok := Event(event, 150, time.Now())
	if !ok {
		t.Fatal("expected event to be kept after stripping metadata")
	}
	if out.Metadata != nil {
		t.Fatal("expected metadata to be stripped")
	}
}

func TestEventDroppedWhenStillOversizedWithoutMetadata(t *testing.T) {
	event := types.RequestEvent{
		Method: "GET",
		Path:   strings.Repeat("p", 2000),
	}
	_, ok := Event(event, 8, time.Now())
	if ok {
		t.Fatal("expected event to be dropped")
	}
}

func TestFormatTimestampShape(t *testing.T) {
	ts := FormatTimestamp(time.Date(2024, 3, 5, 12, 34, 56, 789_000_000, time.UTC))
	want := "2024-03-05T12:34:56.789Z"
	if ts != want {
		t.Fatalf("FormatTimestamp = %q, want %q", ts, want)
	}
}
