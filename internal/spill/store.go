// Package spill implements the durable append-only spill file a client
// falls back to when a batch cannot be delivered: one JSON array per
// line, capped at a configured total size, read back and removed in full
// on the next startup.
package spill

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/peekapi-dev/sdk-go/types"
)

// Store persists undelivered batches to a single flat file.
type Store struct {
	path     string
	maxBytes int64
}

// New returns a Store writing to path, refusing further writes once the
// file reaches maxBytes.
func New(path string, maxBytes int64) *Store {
	return &Store{path: path, maxBytes: maxBytes}
}

// Path returns the configured spill file path.
func (s *Store) Path() string { return s.path }

// Persist appends events as a single JSON array line. It is a no-op for
// an empty batch, and silently does nothing (beyond the returned error,
// which callers typically only use for debug logging) if the file is
// already at its size cap — spec behavior is to drop the batch rather
// than grow the file unbounded.
func (s *Store) Persist(events []types.RequestEvent) error {
	if len(events) == 0 {
		return nil
	}

	if info, err := os.Stat(s.path); err == nil && info.Size() >= s.maxBytes {
		return fmt.Errorf("peekapi: spill file at capacity (%d bytes), dropping %d events", info.Size(), len(events))
	}

	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("peekapi: marshal events for spill: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("peekapi: open spill file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("peekapi: write spill file: %w", err)
	}
	return nil
}

// Load reads every batch previously persisted, in order, and removes the
// file afterward regardless of whether it fully parsed — a spill file is
// a best-effort recovery mechanism, not a durable log, so corrupt lines
// are skipped rather than blocking startup.
func (s *Store) Load() ([]types.RequestEvent, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("peekapi: open spill file: %w", err)
	}

	var events []types.RequestEvent
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var batch []types.RequestEvent
		if err := json.Unmarshal([]byte(line), &batch); err != nil {
			continue // skip corrupt lines
		}
		events = append(events, batch...)
	}
	f.Close()

	_ = os.Remove(s.path)

	return events, nil
}
