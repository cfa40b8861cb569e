package leads_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alphafounders/site/internal/errors"
	"github.com/alphafounders/site/internal/leads"
	"github.com/alphafounders/site/internal/testhelpers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type submitterFunc func(ctx context.Context, record leads.Record) error

func (f submitterFunc) Submit(ctx context.Context, record leads.Record) error {
	return f(ctx, record)
}

type memoryJournal struct {
	mu         sync.Mutex
	deliveries []leads.Delivery
}

func (j *memoryJournal) Append(_ context.Context, delivery leads.Delivery) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.deliveries = append(j.deliveries, delivery)
	return nil
}

func (j *memoryJournal) all() []leads.Delivery {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]leads.Delivery(nil), j.deliveries...)
}

func TestDispatcher_Stamp(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 14, 30, 0, 0, time.FixedZone("EET", 2*60*60))
	d := leads.NewDispatcher(leads.DisabledSubmitter{}, testhelpers.NewLogger(io.Discard),
		leads.WithClock(func() time.Time { return fixed }))

	record := d.Stamp(leads.FormPDFDownload, map[string]string{
		"email":    "ada@example.com",
		"formType": "spoofed",
	})
	assert.Equal(t, leads.FormPDFDownload, record.FormType())
	assert.Equal(t, "2024-03-01T12:30:00.000Z", record["timestamp"])
	assert.Len(t, record.SubmissionID(), 36)
	assert.Equal(t, "ada@example.com", record.Email())

	other := d.Stamp(leads.FormPDFDownload, nil)
	assert.NotEqual(t, record.SubmissionID(), other.SubmissionID())
}

func TestDispatcher_DispatchDoesNotBlock(t *testing.T) {
	release := make(chan struct{})
	journal := &memoryJournal{}
	d := leads.NewDispatcher(submitterFunc(func(ctx context.Context, _ leads.Record) error {
		select {
		case <-release:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}), testhelpers.NewLogger(io.Discard), leads.WithJournal(journal))

	ctx, cancel := context.WithCancel(context.Background())
	start := time.Now()
	record := d.Dispatch(ctx, leads.FormDiagnostic, map[string]string{"email": "ada@example.com"})
	require.Less(t, time.Since(start), 100*time.Millisecond)

	// Cancelling the request context must not abort the delivery.
	cancel()
	close(release)
	d.Wait()

	deliveries := journal.all()
	require.Len(t, deliveries, 1)
	assert.Equal(t, leads.OutcomeDelivered, deliveries[0].Outcome)
	assert.Equal(t, record, deliveries[0].Record)
}

func TestDispatcher_Outcomes(t *testing.T) {
	boom := errors.NewSentinel("boom")
	tests := []struct {
		name      string
		submitter leads.Submitter
		want      leads.Outcome
	}{
		{
			name:      "delivered",
			submitter: submitterFunc(func(context.Context, leads.Record) error { return nil }),
			want:      leads.OutcomeDelivered,
		},
		{
			name:      "failed",
			submitter: submitterFunc(func(context.Context, leads.Record) error { return boom }),
			want:      leads.OutcomeFailed,
		},
		{
			name:      "panicking submitter counts as failed",
			submitter: submitterFunc(func(context.Context, leads.Record) error { panic("nil map") }),
			want:      leads.OutcomeFailed,
		},
		{
			name:      "disabled",
			submitter: leads.DisabledSubmitter{},
			want:      leads.OutcomeSkipped,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			journal := &memoryJournal{}
			reg := prometheus.NewRegistry()
			metrics := leads.MustNewMetrics(reg)
			d := leads.NewDispatcher(tt.submitter, testhelpers.NewLogger(io.Discard),
				leads.WithJournal(journal), leads.WithMetrics(metrics))

			d.Dispatch(context.Background(), leads.FormMembership, map[string]string{"email": "a@b.c"})
			d.Wait()

			deliveries := journal.all()
			require.Len(t, deliveries, 1)
			assert.Equal(t, tt.want, deliveries[0].Outcome)
			if tt.want == leads.OutcomeDelivered {
				assert.NoError(t, deliveries[0].Err)
			} else {
				assert.Error(t, deliveries[0].Err)
			}

			count, err := testutil.GatherAndCount(reg, "site_leads_deliveries_total")
			require.NoError(t, err)
			assert.Equal(t, 1, count)
		})
	}
}

func TestDispatcher_Timeout(t *testing.T) {
	journal := &memoryJournal{}
	d := leads.NewDispatcher(submitterFunc(func(ctx context.Context, _ leads.Record) error {
		<-ctx.Done()
		return ctx.Err()
	}), testhelpers.NewLogger(io.Discard), leads.WithJournal(journal), leads.WithTimeout(20*time.Millisecond))

	d.Dispatch(context.Background(), leads.FormEquityCalculator, nil)
	d.Wait()

	deliveries := journal.all()
	require.Len(t, deliveries, 1)
	assert.Equal(t, leads.OutcomeFailed, deliveries[0].Outcome)
	assert.ErrorIs(t, deliveries[0].Err, context.DeadlineExceeded)
}

func TestHTTPSubmitter(t *testing.T) {
	var (
		mu       sync.Mutex
		received leads.Record
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		mu.Lock()
		defer mu.Unlock()
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := leads.NewHTTPSubmitter(srv.URL, time.Second)
	record := leads.Record{"formType": "membership", "email": "ada@example.com"}
	require.NoError(t, s.Submit(context.Background(), record))
	mu.Lock()
	assert.Equal(t, record, received)
	mu.Unlock()
}

func TestHTTPSubmitter_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := leads.NewHTTPSubmitter(srv.URL, time.Second).Submit(context.Background(), leads.Record{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected response status")
}

func TestFormTypes(t *testing.T) {
	for _, f := range leads.FormTypes {
		assert.True(t, f.Valid())
	}
	assert.False(t, leads.FormType("newsletter").Valid())
}
