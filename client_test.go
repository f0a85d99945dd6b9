package peekapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/peekapi-dev/sdk-go/types"
)

func TestNewRejectsEmptyAPIKey(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatal("expected error for empty api key")
	}
}

func TestNewRejectsInvalidAPIKeyCharacters(t *testing.T) {
	if _, err := New("bad\x00key"); err == nil {
		t.Fatal("expected error for api key with NUL byte")
	}
}

func TestNewRejectsInvalidEndpoint(t *testing.T) {
	_, err := New("key", WithEndpoint("http://example.com/ingest"))
	if err == nil {
		t.Fatal("expected error for non-HTTPS, non-localhost endpoint")
	}
}

func TestTrackBuffersAndFlushesOnBatchSize(t *testing.T) {
	var received atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var batch []types.RequestEvent
		_ = json.NewDecoder(r.Body).Decode(&batch)
		received.Add(int32(len(batch)))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	dir := t.TempDir()
	c, err := New("test-key",
		WithEndpoint(srv.URL),
		WithBatchSize(3),
		WithStoragePath(filepath.Join(dir, "spill.jsonl")),
	)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer c.Shutdown()

	for i := 0; i < 3; i++ {
		c.Track(types.RequestEvent{Method: "get", Path: "/x", StatusCode: 200})
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if received.Load() == 3 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if got := received.Load(); got != 3 {
		t.Fatalf("server received %d events, want 3", got)
	}
}

func TestTrackUppercasesMethod(t *testing.T) {
	var gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var batch []types.RequestEvent
		_ = json.NewDecoder(r.Body).Decode(&batch)
		if len(batch) > 0 {
			gotMethod = batch[0].Method
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	dir := t.TempDir()
	c, err := New("test-key",
		WithEndpoint(srv.URL),
		WithBatchSize(1),
		WithStoragePath(filepath.Join(dir, "spill.jsonl")),
	)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer c.Shutdown()

	c.Track(types.RequestEvent{Method: "get", Path: "/x"})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && gotMethod == "" {
		time.Sleep(10 * time.Millisecond)
	}
	if gotMethod != "GET" {
		t.Fatalf("method = %q, want GET", gotMethod)
	}
}

func TestTrackDropsBeyondMaxBufferSize(t *testing.T) {
	// The endpoint refuses connections, and the batch size and flush
	// interval keep the count trigger and the timer from starting a flush.
	// Overflowing the buffer does wake the worker; its failed send requeues
	// the batch, bounded by the cap.
	dir := t.TempDir()
	c, err := New("test-key",
		WithEndpoint("https://127.0.0.1:0/unreachable"),
		WithBatchSize(1000),
		WithMaxBufferSize(2),
		WithFlushInterval(time.Hour),
		WithStoragePath(filepath.Join(dir, "spill.jsonl")),
	)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer c.Shutdown()

	for i := 0; i < 5; i++ {
		c.Track(types.RequestEvent{Method: "GET", Path: "/x"})
	}

	if got := c.bufferLen(); got != 2 {
		t.Fatalf("bufferLen() = %d, want 2 (capped)", got)
	}
}

func TestShutdownPersistsRemainingEvents(t *testing.T) {
	dir := t.TempDir()
	storagePath := filepath.Join(dir, "spill.jsonl")

	c, err := New("test-key",
		WithEndpoint("https://127.0.0.1:0/unreachable"),
		WithBatchSize(1000),
		WithFlushInterval(time.Hour),
		WithStoragePath(storagePath),
	)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	c.Track(types.RequestEvent{Method: "GET", Path: "/x"})
	c.Shutdown()

	if _, err := os.Stat(storagePath); err != nil {
		t.Fatalf("expected spill file to exist after shutdown: %v", err)
	}
}

func TestClientRecoversSpilledEventsOnRestart(t *testing.T) {
	dir := t.TempDir()
	storagePath := filepath.Join(dir, "spill.jsonl")

	a, err := New("test-key",
		WithEndpoint("https://127.0.0.1:0/unreachable"),
		WithBatchSize(1000),
		WithFlushInterval(time.Hour),
		WithStoragePath(storagePath),
	)
	if err != nil {
		t.Fatalf("New() error (client A): %v", err)
	}
	for i := 0; i < 3; i++ {
		a.Track(types.RequestEvent{Method: "GET", Path: "/x"})
	}
	a.Shutdown()

	if _, err := os.Stat(storagePath); err != nil {
		t.Fatalf("expected spill file to exist after client A shutdown: %v", err)
	}

	b, err := New("test-key",
		WithEndpoint("https://127.0.0.1:0/unreachable"),
		WithBatchSize(1000),
		WithFlushInterval(time.Hour),
		WithStoragePath(storagePath),
	)
	if err != nil {
		t.Fatalf("New() error (client B): %v", err)
	}
	defer b.Shutdown()

	if got := b.bufferLen(); got == 0 {
		t.Fatalf("bufferLen() = %d, want > 0 (events recovered from disk)", got)
	}
	if _, err := os.Stat(storagePath); !os.IsNotExist(err) {
		t.Fatalf("expected spill file to be removed after recovery, stat err = %v", err)
	}
}

func TestShutdownIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	c, err := New("test-key",
		WithEndpoint("https://127.0.0.1:0/unreachable"),
		WithStoragePath(filepath.Join(dir, "spill.jsonl")),
	)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	c.Shutdown()
	c.Shutdown() // must not panic or block
}

func TestDefaultStoragePathIsDeterministicPerEndpoint(t *testing.T) {
	a := defaultStoragePath("https://a.example.com/ingest")
	b := defaultStoragePath("https://a.example.com/ingest")
	c := defaultStoragePath("https://b.example.com/ingest")
	if a != b {
		t.Fatal("expected same endpoint to produce same storage path")
	}
	if a == c {
		t.Fatal("expected different endpoints to produce different storage paths")
	}
}
