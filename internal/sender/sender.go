// Package sender implements the single HTTP POST a flush performs,
// classifying the result so the caller knows whether to retry.
package sender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/peekapi-dev/sdk-go/iox"
	"github.com/peekapi-dev/sdk-go/types"
)

// SendTimeout bounds a single ingestion request end to end.
const SendTimeout = 5 * time.Second

// SDKHeader names the header a Sender identifies itself with.
const SDKHeader = "x-apidash-sdk"

// Outcome classifies the result of a send attempt.
type Outcome int

const (
	// Ok means the batch was accepted; the client resets its failure streak.
	Ok Outcome = iota
	// Retryable means the batch should be requeued and retried after backoff.
	Retryable
	// Terminal means retrying is pointless (e.g. a 4xx); the batch is
	// spilled to disk instead.
	Terminal
)

// Result is the outcome of one Send call plus the error that produced it,
// if any.
type Result struct {
	Outcome Outcome
	Err     error
}

// Sender posts batches of events to a single configured ingestion endpoint.
type Sender struct {
	endpoint  string
	apiKey    string
	sdkHeader string
	client    *http.Client
}

// New returns a Sender that POSTs to endpoint using apiKey, identifying
// itself with sdkVersion (rendered as "go/<sdkVersion>").
func New(endpoint, apiKey, sdkVersion string) *Sender {
	return &Sender{
		endpoint:  endpoint,
		apiKey:    apiKey,
		sdkHeader: "go/" + sdkVersion,
		client:    &http.Client{Timeout: SendTimeout},
	}
}

// Send POSTs events as a single JSON array and classifies the response.
func (s *Sender) Send(ctx context.Context, events []types.RequestEvent) Result {
	body, err := json.Marshal(events)
	if err != nil {
		return Result{Outcome: Terminal, Err: fmt.Errorf("peekapi: marshal events: %w", err)}
	}

	ctx, cancel := context.WithTimeout(ctx, SendTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{Outcome: Terminal, Err: fmt.Errorf("peekapi: build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set(SDKHeader, s.sdkHeader)

	resp, err := s.client.Do(req)
	if err != nil {
		return Result{Outcome: Retryable, Err: fmt.Errorf("peekapi: transport error: %w", err)}
	}
	defer iox.DiscardClose(resp.Body)
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return Result{Outcome: Ok}
	}

	err = fmt.Errorf("peekapi: ingestion endpoint returned %d", resp.StatusCode)
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return Result{Outcome: Retryable, Err: err}
	}
	return Result{Outcome: Terminal, Err: err}
}

// Close releases idle connections held by the Sender.
func (s *Sender) Close() { s.client.CloseIdleConnections() }
