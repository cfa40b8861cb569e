package repositories

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/alphafounders/site/internal/errors"
	"github.com/alphafounders/site/internal/leads"
	"github.com/alphafounders/site/internal/sqlite"
	"github.com/jmoiron/sqlx"
)

// JournalEntry is a row of the lead journal.
type JournalEntry struct {
	SubmissionID string `db:"submission_id"`
	FormType     string `db:"form_type"`
	Email        string `db:"email"`
	Payload      string `db:"payload"`
	Status       string `db:"status"`
	Error        string `db:"error"`
	Created      string `db:"created"`
	Finished     string `db:"finished"`
}

// Record decodes the journalled lead.
func (e JournalEntry) Record() (leads.Record, error) {
	var record leads.Record
	if err := json.Unmarshal([]byte(e.Payload), &record); err != nil {
		return nil, errors.Wrap(err, "unmarshal payload", slog.String("submissionId", e.SubmissionID))
	}
	return record, nil
}

// LeadJournal stores every dispatched lead with its delivery outcome so that failed deliveries can be followed up by
// hand.
type LeadJournal struct {
	readWrite *sqlx.DB
	readOnly  *sqlx.DB
	logger    *slog.Logger
}

func NewLeadJournal(dbs *sqlite.Database, logger *slog.Logger) *LeadJournal {
	return &LeadJournal{
		readWrite: sqlx.NewDb(dbs.ReadWrite, "sqlite3"),
		readOnly:  sqlx.NewDb(dbs.ReadOnly, "sqlite3"),
		logger:    logger.With(slog.String("source", "LeadJournal")),
	}
}

// Append implements [leads.Journal].
func (j *LeadJournal) Append(ctx context.Context, delivery leads.Delivery) error {
	payload, err := json.Marshal(delivery.Record)
	if err != nil {
		return errors.Wrap(err, "marshal record")
	}
	entry := JournalEntry{
		SubmissionID: delivery.Record.SubmissionID(),
		FormType:     string(delivery.Record.FormType()),
		Email:        delivery.Record.Email(),
		Payload:      string(payload),
		Status:       string(delivery.Outcome),
		Error:        "",
		Created:      delivery.Record[leads.KeyTimestamp],
		Finished:     delivery.Finished.UTC().Format(time.RFC3339Nano),
	}
	if delivery.Err != nil {
		entry.Error = delivery.Err.Error()
	}

	stmt := `INSERT INTO lead_journal (submission_id, form_type, email, payload, status, error, created, finished)
VALUES (:submission_id, :form_type, :email, :payload, :status, :error, :created, :finished)
ON CONFLICT (submission_id) DO UPDATE SET status = excluded.status, error = excluded.error,
                                          finished = excluded.finished`
	if _, err = j.readWrite.NamedExecContext(ctx, stmt, entry); err != nil {
		return errors.Wrap(err, "insert journal entry", slog.String("submissionId", entry.SubmissionID))
	}
	return nil
}

// Recent returns the latest entries, newest first. A non-empty status filters by outcome.
func (j *LeadJournal) Recent(ctx context.Context, status leads.Outcome, limit int) ([]JournalEntry, error) {
	var entries []JournalEntry
	stmt := `SELECT submission_id, form_type, email, payload, status, error, created, finished
FROM lead_journal
WHERE ? = '' OR status = ?
ORDER BY created DESC, submission_id
LIMIT ?`
	if err := j.readOnly.SelectContext(ctx, &entries, stmt, status, status, limit); err != nil {
		return nil, errors.Wrap(err, "select journal entries")
	}
	return entries, nil
}

// Get returns the entry for submissionID or an error wrapping sql.ErrNoRows.
func (j *LeadJournal) Get(ctx context.Context, submissionID string) (JournalEntry, error) {
	var entry JournalEntry
	stmt := `SELECT submission_id, form_type, email, payload, status, error, created, finished
FROM lead_journal
WHERE submission_id = ?`
	if err := j.readOnly.GetContext(ctx, &entry, stmt, submissionID); err != nil {
		return JournalEntry{}, errors.Wrap(err, "get journal entry", slog.String("submissionId", submissionID))
	}
	return entry, nil
}
