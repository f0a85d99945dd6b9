// Package reader loads spilled event batches from disk for operator
// inspection. It never mutates the spill file; draining a file is the
// archive command's job, not the reader's.
package reader

import (
	"bufio"
	"encoding/json"
	"os"
	"sort"
	"time"

	"github.com/peekapi-dev/sdk-go/types"
)

const timestampLayout = "2006-01-02T15:04:05.000Z"

// ReadEvents parses every JSON-array line in the spill file at path into a
// flat slice of events. A missing file is not an error: it reads as empty,
// matching the shipper's own no-op-on-absent-file semantics.
func ReadEvents(path string) ([]types.RequestEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var events []types.RequestEvent
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var batch []types.RequestEvent
		if err := json.Unmarshal(line, &batch); err != nil {
			// A corrupt or partially-written line is skipped, not fatal.
			continue
		}
		events = append(events, batch...)
	}
	if err := scanner.Err(); err != nil {
		return events, err
	}
	return events, nil
}

// Summary is a thin, table-friendly view of one event for the list command.
type Summary struct {
	Method         string  `json:"method"`
	Path           string  `json:"path"`
	StatusCode     int     `json:"status_code"`
	ResponseTimeMs float64 `json:"response_time_ms"`
	ConsumerID     string  `json:"consumer_id,omitempty"`
	Timestamp      string  `json:"timestamp"`
}

// ListSummaries reduces the events in path to their list-view shape.
func ListSummaries(path string) ([]Summary, error) {
	events, err := ReadEvents(path)
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(events))
	for _, e := range events {
		out = append(out, Summary{
			Method:         e.Method,
			Path:           e.Path,
			StatusCode:     e.StatusCode,
			ResponseTimeMs: e.ResponseTimeMs,
			ConsumerID:     e.ConsumerID,
			Timestamp:      e.Timestamp,
		})
	}
	return out, nil
}

// InspectResult is the deep view of a spill file's contents: size, event
// count, the time span it covers, and a breakdown of status codes.
type InspectResult struct {
	Path        string         `json:"path"`
	Exists      bool           `json:"exists"`
	SizeBytes   int64          `json:"size_bytes"`
	EventCount  int            `json:"event_count"`
	OldestEvent time.Time      `json:"oldest_event,omitempty"`
	NewestEvent time.Time      `json:"newest_event,omitempty"`
	StatusCodes map[int]int    `json:"status_codes,omitempty"`
	TopPaths    []PathCount    `json:"top_paths,omitempty"`
}

// PathCount pairs a path with the number of spilled events against it.
type PathCount struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

// Inspect builds an InspectResult for the spill file at path.
func Inspect(path string) (*InspectResult, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return &InspectResult{Path: path, Exists: false}, nil
	}
	if err != nil {
		return nil, err
	}

	events, err := ReadEvents(path)
	if err != nil {
		return nil, err
	}

	result := &InspectResult{
		Path:        path,
		Exists:      true,
		SizeBytes:   info.Size(),
		EventCount:  len(events),
		StatusCodes: map[int]int{},
	}

	pathCounts := map[string]int{}
	for _, e := range events {
		result.StatusCodes[e.StatusCode]++
		pathCounts[e.Path]++

		ts, parseErr := time.Parse(timestampLayout, e.Timestamp)
		if parseErr != nil {
			continue
		}
		if result.OldestEvent.IsZero() || ts.Before(result.OldestEvent) {
			result.OldestEvent = ts
		}
		if result.NewestEvent.IsZero() || ts.After(result.NewestEvent) {
			result.NewestEvent = ts
		}
	}

	for p, count := range pathCounts {
		result.TopPaths = append(result.TopPaths, PathCount{Path: p, Count: count})
	}
	sort.Slice(result.TopPaths, func(i, j int) bool {
		return result.TopPaths[i].Count > result.TopPaths[j].Count
	})
	if len(result.TopPaths) > 10 {
		result.TopPaths = result.TopPaths[:10]
	}

	return result, nil
}
