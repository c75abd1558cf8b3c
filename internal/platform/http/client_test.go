package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func testClient() *Client {
	return NewClient(ClientOptions{
		Timeout:         time.Second,
		RequestsPerSec:  100,
		MaxRetries:      3,
		MaxRetryTimeout: 2 * time.Second,
		InitialInterval: time.Millisecond,
	})
}

func TestGetJSONRetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	var out struct {
		Status string `json:"status"`
	}
	if err := testClient().GetJSON(context.Background(), server.URL, &out); err != nil {
		t.Fatalf("GetJSON() error = %v", err)
	}
	if out.Status != "ok" {
		t.Errorf("Status = %q, want ok", out.Status)
	}
	if got := hits.Load(); got != 3 {
		t.Errorf("server hit %d times, want 3", got)
	}
}

func TestGetJSONDoesNotRetryClientErrors(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	var out map[string]any
	err := testClient().GetJSON(context.Background(), server.URL, &out)

	var statusErr *HTTPStatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusNotFound {
		t.Fatalf("GetJSON() error = %v, want 404 HTTPStatusError", err)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hit %d times, want 1", got)
	}
}

func TestGetJSONGivesUpAfterMaxRetries(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	var out map[string]any
	if err := testClient().GetJSON(context.Background(), server.URL, &out); err == nil {
		t.Fatal("GetJSON() error = nil, want failure")
	}
	// First attempt plus three retries
	if got := hits.Load(); got != 4 {
		t.Errorf("server hit %d times, want 4", got)
	}
}

func TestGetJSONHonoursCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out map[string]any
	err := testClient().GetJSON(ctx, server.URL, &out)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("GetJSON() error = %v, want context.Canceled", err)
	}
}

func TestGetJSONBadBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	var out map[string]any
	if err := testClient().GetJSON(context.Background(), server.URL, &out); err == nil {
		t.Error("GetJSON() error = nil, want decode failure")
	}
}
