package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alphafounders/site/internal/e2etest"
	"github.com/stretchr/testify/require"
)

// testLookupEnv returns a lookupEnv for a server on a random port with an in-memory database. overrides win over the
// test defaults.
func testLookupEnv(overrides map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		if value, ok := overrides[key]; ok {
			return value, true
		}
		switch key {
		case "SITE_ADDR":
			return "localhost:0", true
		case "SITE_SQLITE_URL":
			return ":memory:", true
		case "SITE_DEBUG_ADDR":
			return "", true
		case "SITE_PHASE_SCALE":
			return "0.01", true
		case "SITE_PUBLIC_URL":
			return "https://alphafounders.test", true
		case "SITE_BOOKING_URL":
			return "https://cal.test/intro", true
		default:
			return "", false
		}
	}
}

func startTestServer(t *testing.T, overrides map[string]string) *e2etest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	server, err := e2etest.StartServer(ctx, io.Discard, testLookupEnv(overrides), run)
	require.NoError(t, err)
	return server
}

// leadSink stands in for the lead spreadsheet endpoint.
type leadSink struct {
	mu      sync.Mutex
	records []map[string]string
	server  *httptest.Server
}

func newLeadSink(t *testing.T) *leadSink {
	t.Helper()
	sink := &leadSink{mu: sync.Mutex{}, records: nil, server: nil}
	sink.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var record map[string]string
		if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		sink.mu.Lock()
		sink.records = append(sink.records, record)
		sink.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(sink.server.Close)
	return sink
}

func (s *leadSink) URL() string {
	return s.server.URL
}

func (s *leadSink) all() []map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]map[string]string(nil), s.records...)
}

// waitForLeads waits until n leads arrived and returns them.
func (s *leadSink) waitForLeads(t *testing.T, n int) []map[string]string {
	t.Helper()
	require.Eventually(t, func() bool {
		return len(s.all()) >= n
	}, 2*time.Second, 10*time.Millisecond, "expected %d leads", n)
	return s.all()
}
