package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStreamLines_TrimsAndDropsEmptyLines(t *testing.T) {
	ts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/x-ndjson" {
			t.Errorf("Accept = %s, want application/x-ndjson", r.Header.Get("Accept"))
		}
		_, _ = w.Write([]byte(" line1 \n\nline2\n \n"))
	})

	stream, err := ts.client.StreamLines(context.Background(), "POST", "/v1/test-org/conversation/", nil, nil)
	if err != nil {
		t.Fatalf("StreamLines() error: %v", err)
	}
	defer stream.Close()

	var lines []string
	for stream.Next() {
		lines = append(lines, stream.Text())
	}
	if err := stream.Err(); err != nil {
		t.Fatalf("stream error: %v", err)
	}

	want := []string{"line1", "line2"}
	if len(lines) != len(want) {
		t.Fatalf("lines = %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("lines[%d] = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestStreamLines_NotFoundBeforeAnyLine(t *testing.T) {
	ts := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("this is stream-shaped content, not an error body"))
	})

	stream, err := ts.client.StreamLines(context.Background(), "POST", "/v1/test-org/conversation/", nil, nil)
	if stream != nil {
		t.Error("expected nil stream")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	// The stream body must not be consumed for error reporting.
	if len(apiErr.RawBody) != 0 {
		t.Errorf("RawBody = %q, want empty", apiErr.RawBody)
	}
}

func TestStreamLines_401RefreshesAndRetries(t *testing.T) {
	requests := 0
	ts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.Header.Get("Authorization") == "Bearer token-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte("event\n"))
	})

	stream, err := ts.client.StreamLines(context.Background(), "POST", "/v1/test-org/conversation/", nil, nil)
	if err != nil {
		t.Fatalf("StreamLines() error: %v", err)
	}
	defer stream.Close()

	if !stream.Next() {
		t.Fatalf("Next() = false, err: %v", stream.Err())
	}
	if stream.Text() != "event" {
		t.Errorf("Text() = %s, want event", stream.Text())
	}
	if requests != 2 {
		t.Errorf("requests = %d, want 2", requests)
	}
	if ts.exchanges != 2 {
		t.Errorf("exchanges = %d, want 2", ts.exchanges)
	}
}

func TestStreamLines_SetupRetryOnServerError(t *testing.T) {
	requests := 0
	ts := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		requests++
		if requests == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("event\n"))
	})

	stream, err := ts.client.StreamLines(context.Background(), "GET", "/v1/test-org/conversation/", nil, nil)
	if err != nil {
		t.Fatalf("StreamLines() error: %v", err)
	}
	defer stream.Close()

	if !stream.Next() {
		t.Fatalf("Next() = false, err: %v", stream.Err())
	}
	if requests != 2 {
		t.Errorf("requests = %d, want 2", requests)
	}
	if ts.waits != 1 {
		t.Errorf("waits = %d, want 1", ts.waits)
	}
}

func TestStreamLines_ContextCancelledBeforeSetup(t *testing.T) {
	ts := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("event\n"))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ts.client.StreamLines(ctx, "POST", "/v1/test-org/conversation/", nil, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestStreamLines_ContextCancelledMidStream(t *testing.T) {
	ts := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		flusher := w.(http.Flusher)
		for i := 0; i < 100; i++ {
			_, _ = fmt.Fprintf(w, "line%d\n", i)
			flusher.Flush()
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	stream, err := ts.client.StreamLines(ctx, "GET", "/v1/test-org/conversation/", nil, nil)
	if err != nil {
		t.Fatalf("StreamLines() error: %v", err)
	}
	defer stream.Close()

	if !stream.Next() {
		t.Fatalf("Next() = false, err: %v", stream.Err())
	}
	cancel()

	if stream.Next() {
		t.Error("Next() after cancel = true, want false")
	}
	if !errors.Is(stream.Err(), context.Canceled) {
		t.Errorf("Err() = %v, want context.Canceled", stream.Err())
	}
}

func TestStreamLines_EarlyCloseStopsIteration(t *testing.T) {
	ts := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("line1\nline2\nline3\n"))
	})

	stream, err := ts.client.StreamLines(context.Background(), "GET", "/v1/test-org/conversation/", nil, nil)
	if err != nil {
		t.Fatalf("StreamLines() error: %v", err)
	}

	if !stream.Next() {
		t.Fatalf("Next() = false, err: %v", stream.Err())
	}
	if err := stream.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if stream.Next() {
		t.Error("Next() after Close = true, want false")
	}
	// Close is idempotent.
	if err := stream.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}
}
