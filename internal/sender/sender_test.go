package sender

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/peekapi-dev/sdk-go/types"
)

func TestSendOkOn2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-api-key"); got != "key-1" {
			t.Errorf("x-api-key = %q, want key-1", got)
		}
		if got := r.Header.Get("x-apidash-sdk"); got != "go/0.1.0" {
			t.Errorf("x-apidash-sdk = %q, want go/0.1.0", got)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	s := New(srv.URL, "key-1", "0.1.0")
	defer s.Close()

	result := s.Send(context.Background(), []types.RequestEvent{{Method: "GET", Path: "/x"}})
	if result.Outcome != Ok {
		t.Fatalf("Outcome = %v, want Ok (err: %v)", result.Outcome, result.Err)
	}
}

func TestSendRetryableOn500(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := New(srv.URL, "key-1", "0.1.0")
	defer s.Close()

	result := s.Send(context.Background(), []types.RequestEvent{{Method: "GET"}})
	if result.Outcome != Retryable {
		t.Fatalf("Outcome = %v, want Retryable", result.Outcome)
	}
}

func TestSendRetryableOn429(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := New(srv.URL, "key-1", "0.1.0")
	defer s.Close()

	result := s.Send(context.Background(), []types.RequestEvent{{Method: "GET"}})
	if result.Outcome != Retryable {
		t.Fatalf("Outcome = %v, want Retryable", result.Outcome)
	}
}

func TestSendTerminalOn4xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	s := New(srv.URL, "key-1", "0.1.0")
	defer s.Close()

	result := s.Send(context.Background(), []types.RequestEvent{{Method: "GET"}})
	if result.Outcome != Terminal {
		t.Fatalf("Outcome = %v, want Terminal", result.Outcome)
	}
}

func TestSendRetryableOnTransportError(t *testing.T) {
	s := New("https://127.0.0.1:0/unreachable", "key-1", "0.1.0")
	defer s.Close()

	result := s.Send(context.Background(), []types.RequestEvent{{Method: "GET"}})
	if result.Outcome != Retryable {
		t.Fatalf("Outcome = %v, want Retryable", result.Outcome)
	}
}
