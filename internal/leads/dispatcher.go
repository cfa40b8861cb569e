package leads

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/alphafounders/site/internal/errors"
	"github.com/google/uuid"
)

const defaultTimeout = 10 * time.Second

// timestampLayout matches JavaScript's Date.toISOString, which the spreadsheet script parses.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Outcome is how a delivery ended.
type Outcome string

const (
	OutcomeDelivered Outcome = "delivered"
	OutcomeFailed    Outcome = "failed"
	OutcomeSkipped   Outcome = "skipped"
)

// Delivery is the journal entry of one dispatched lead.
type Delivery struct {
	Record   Record
	Outcome  Outcome
	Err      error
	Started  time.Time
	Finished time.Time
}

// Journal keeps a record of every delivery.
type Journal interface {
	Append(ctx context.Context, delivery Delivery) error
}

// Dispatcher stamps leads and delivers them in the background.
type Dispatcher struct {
	submitter Submitter
	journal   Journal
	metrics   *Metrics
	logger    *slog.Logger
	timeout   time.Duration
	now       func() time.Time
	inFlight  sync.WaitGroup
}

type Option func(*Dispatcher)

// WithJournal records every delivery in j.
func WithJournal(j Journal) Option {
	return func(d *Dispatcher) {
		d.journal = j
	}
}

// WithMetrics reports deliveries to m.
func WithMetrics(m *Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// WithTimeout bounds each delivery. The default is ten seconds.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		d.now = now
	}
}

func NewDispatcher(submitter Submitter, logger *slog.Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		submitter: submitter,
		journal:   nil,
		metrics:   nil,
		logger:    logger.With(slog.String("source", "leads.Dispatcher")),
		timeout:   defaultTimeout,
		now:       time.Now,
		inFlight:  sync.WaitGroup{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Stamp builds the record for fields with the form type, a UTC timestamp and a fresh submission id. The stamped keys
// always win over fields with the same name.
func (d *Dispatcher) Stamp(formType FormType, fields map[string]string) Record {
	record := make(Record, len(fields)+3) //nolint:mnd // stamped keys
	maps.Copy(record, fields)
	record[KeyFormType] = string(formType)
	record[KeyTimestamp] = d.now().UTC().Format(timestampLayout)
	record[KeySubmissionID] = uuid.NewString()
	return record
}

// Dispatch stamps fields and delivers the record in the background. It never blocks on the network and never
// reports the outcome, which only shows up in logs, metrics and the journal.
//
// The delivery keeps the log attributes of ctx but not its cancellation, so a visitor navigating away does not
// abort the submission.
func (d *Dispatcher) Dispatch(ctx context.Context, formType FormType, fields map[string]string) Record {
	record := d.Stamp(formType, fields)
	detached := context.WithoutCancel(ctx)

	d.inFlight.Add(1)
	d.metrics.started()
	go func() {
		defer d.inFlight.Done()
		defer d.metrics.finished()
		d.deliver(detached, record)
	}()

	return record
}

// Wait blocks until all dispatched deliveries have finished.
func (d *Dispatcher) Wait() {
	d.inFlight.Wait()
}

func (d *Dispatcher) deliver(ctx context.Context, record Record) {
	delivery := Delivery{
		Record:   record,
		Outcome:  OutcomeDelivered,
		Err:      nil,
		Started:  d.now(),
		Finished: time.Time{},
	}

	delivery.Err = d.submit(ctx, record)
	delivery.Finished = d.now()
	switch {
	case delivery.Err == nil:
	case errors.Is(delivery.Err, ErrDeliveryDisabled):
		delivery.Outcome = OutcomeSkipped
	default:
		delivery.Outcome = OutcomeFailed
	}

	d.report(ctx, delivery)
}

func (d *Dispatcher) submit(ctx context.Context, record Record) (err error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			err = errors.New("submitter panicked", slog.String("panic", fmt.Sprint(r)))
		}
	}()
	if err = d.submitter.Submit(ctx, record); err != nil {
		return errors.Wrap(err, "submit lead")
	}
	return nil
}

// report is where a delivery ends. Its error goes to the log, the metrics and the journal and is then dropped.
func (d *Dispatcher) report(ctx context.Context, delivery Delivery) {
	attrs := []slog.Attr{
		slog.String("formType", string(delivery.Record.FormType())),
		slog.String("submissionId", delivery.Record.SubmissionID()),
		slog.String("outcome", string(delivery.Outcome)),
		slog.Duration("duration", delivery.Finished.Sub(delivery.Started)),
	}
	switch delivery.Outcome {
	case OutcomeFailed:
		d.logger.LogAttrs(ctx, slog.LevelError, "lead delivery failed", append(attrs, errors.SlogError(delivery.Err))...)
	case OutcomeSkipped:
		d.logger.LogAttrs(ctx, slog.LevelDebug, "lead delivery skipped", attrs...)
	case OutcomeDelivered:
		d.logger.LogAttrs(ctx, slog.LevelInfo, "lead delivered", attrs...)
	}

	d.metrics.observe(delivery)

	if d.journal == nil {
		return
	}
	if err := d.journal.Append(ctx, delivery); err != nil {
		err = errors.Wrap(err, "append to lead journal")
		d.logger.LogAttrs(ctx, slog.LevelError, "failed to journal lead", append(attrs, errors.SlogError(err))...)
	}
}
