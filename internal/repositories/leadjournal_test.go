package repositories_test

import (
	"context"
	"database/sql"
	"io"
	"testing"
	"time"

	"github.com/alphafounders/site/internal/errors"
	"github.com/alphafounders/site/internal/leads"
	"github.com/alphafounders/site/internal/repositories"
	"github.com/alphafounders/site/internal/sqlite"
	"github.com/alphafounders/site/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJournal(t *testing.T) *repositories.LeadJournal {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	logger := testhelpers.NewLogger(io.Discard)
	dbs, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		cancel()
		require.NoError(t, dbs.Close())
	})
	return repositories.NewLeadJournal(dbs, logger)
}

func delivery(id string, timestamp string, outcome leads.Outcome, err error) leads.Delivery {
	return leads.Delivery{
		Record: leads.Record{
			"formType":     "diagnostic",
			"timestamp":    timestamp,
			"submissionId": id,
			"email":        "ada@example.com",
			"sector":       "fintech",
		},
		Outcome:  outcome,
		Err:      err,
		Started:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Finished: time.Date(2024, 3, 1, 12, 0, 1, 0, time.UTC),
	}
}

func TestLeadJournal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	journal := newTestJournal(t)

	require.NoError(t, journal.Append(ctx, delivery("a", "2024-03-01T12:00:00.000Z", leads.OutcomeDelivered, nil)))
	require.NoError(t, journal.Append(ctx,
		delivery("b", "2024-03-01T13:00:00.000Z", leads.OutcomeFailed, errors.NewSentinel("status 500"))))

	entries, err := journal.Recent(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "b", entries[0].SubmissionID)
	assert.Equal(t, "status 500", entries[0].Error)
	assert.Equal(t, "a", entries[1].SubmissionID)
	assert.Equal(t, "ada@example.com", entries[1].Email)

	failed, err := journal.Recent(ctx, leads.OutcomeFailed, 10)
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, "b", failed[0].SubmissionID)

	record, err := entries[1].Record()
	require.NoError(t, err)
	assert.Equal(t, "fintech", record["sector"])
}

func TestLeadJournal_AppendIsIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	journal := newTestJournal(t)

	require.NoError(t, journal.Append(ctx,
		delivery("a", "2024-03-01T12:00:00.000Z", leads.OutcomeFailed, errors.NewSentinel("timeout"))))
	require.NoError(t, journal.Append(ctx, delivery("a", "2024-03-01T12:00:00.000Z", leads.OutcomeDelivered, nil)))

	entry, err := journal.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, string(leads.OutcomeDelivered), entry.Status)
	assert.Empty(t, entry.Error)

	_, err = journal.Get(ctx, "missing")
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestLeadJournal_WithDispatcher(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	journal := newTestJournal(t)
	d := leads.NewDispatcher(leads.DisabledSubmitter{}, testhelpers.NewLogger(io.Discard), leads.WithJournal(journal))

	record := d.Dispatch(ctx, leads.FormPDFDownload, map[string]string{"email": "ada@example.com"})
	d.Wait()

	entry, err := journal.Get(ctx, record.SubmissionID())
	require.NoError(t, err)
	assert.Equal(t, string(leads.OutcomeSkipped), entry.Status)
	assert.Equal(t, "pdf_download", entry.FormType)
}
