package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Sanjeev-Kumar78/TicketDot/internal/core"
	"github.com/Sanjeev-Kumar78/TicketDot/internal/observability"
)

// Worker drains the persist channel and batch-writes the notification log
// and journal to Postgres. The core sends on this channel BLOCKING, so if
// the worker falls behind, the engine stalls rather than lose a record.
type Worker struct {
	writer       *LogWriter
	inputChan    <-chan core.Output
	batchSize    int
	flushTimeout time.Duration
	log          zerolog.Logger
	metrics      *observability.Metrics
}

func NewWorker(
	db *sql.DB,
	inputChan <-chan core.Output,
	batchSize int,
	flushTimeout time.Duration,
	log zerolog.Logger,
	metrics *observability.Metrics,
) *Worker {
	return &Worker{
		writer:       NewLogWriter(db),
		inputChan:    inputChan,
		batchSize:    batchSize,
		flushTimeout: flushTimeout,
		log:          log,
		metrics:      metrics,
	}
}

// Run batches incoming outputs and flushes either when the batch is full
// or the flush timeout expires. Blocks until ctx is cancelled or the
// channel closes.
func (w *Worker) Run(ctx context.Context) error {
	notifBatch := make([]NotificationRow, 0, w.batchSize)
	journalBatch := make([]JournalRow, 0, w.batchSize)

	timer := time.NewTimer(w.flushTimeout)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			if len(notifBatch) > 0 {
				if err := w.flush(context.Background(), notifBatch, journalBatch); err != nil {
					w.log.Error().Err(err).Msg("final flush failed")
				}
			}
			return ctx.Err()

		case out, ok := <-w.inputChan:
			if !ok {
				if len(notifBatch) > 0 {
					if err := w.flush(context.Background(), notifBatch, journalBatch); err != nil {
						w.log.Error().Err(err).Msg("final flush failed")
					}
				}
				return nil
			}

			row, err := toNotificationRow(out)
			if err != nil {
				w.log.Error().Err(err).Uint64("sequence", out.Envelope.Sequence).Msg("encode notification")
				continue
			}
			notifBatch = append(notifBatch, row)
			if out.Journal != nil {
				journalBatch = append(journalBatch, toJournalRow(out))
			}

			if len(notifBatch) >= w.batchSize {
				if err := w.flushWithRetry(ctx, notifBatch, journalBatch); err != nil {
					w.log.Error().Err(err).Msg("batch flush failed after retries")
				}
				notifBatch = notifBatch[:0]
				journalBatch = journalBatch[:0]
				timer.Reset(w.flushTimeout)
			}

		case <-timer.C:
			if len(notifBatch) > 0 {
				if err := w.flushWithRetry(ctx, notifBatch, journalBatch); err != nil {
					w.log.Error().Err(err).Msg("timeout flush failed after retries")
				}
				notifBatch = notifBatch[:0]
				journalBatch = journalBatch[:0]
			}
			timer.Reset(w.flushTimeout)
		}
	}
}

// flushWithRetry retries with exponential backoff. The worker never drops a
// batch: it keeps retrying until the write succeeds or shutdown forces one
// final attempt.
func (w *Worker) flushWithRetry(ctx context.Context, notifs []NotificationRow, journals []JournalRow) error {
	backoff := 100 * time.Millisecond
	const maxBackoff = 30 * time.Second

	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			w.log.Warn().Int("attempt", attempt).Dur("backoff", backoff).Int("rows", len(notifs)).Msg("persistence retry")
			if w.metrics != nil {
				w.metrics.PersistRetries.Inc()
			}
			select {
			case <-ctx.Done():
				if err := w.flush(context.Background(), notifs, journals); err != nil {
					return fmt.Errorf("final flush on shutdown failed: %w", err)
				}
				return nil
			case <-time.After(backoff):
			}
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
		}

		if err := w.flush(ctx, notifs, journals); err == nil {
			if attempt > 0 {
				w.log.Info().Int("retries", attempt).Msg("persistence flush recovered")
			}
			return nil
		}
	}
}

func (w *Worker) flush(ctx context.Context, notifs []NotificationRow, journals []JournalRow) error {
	tx, err := w.writer.db.BeginTx(ctx, nil)
	if err != nil {
		w.countError()
		return err
	}
	defer tx.Rollback()

	if err := w.writer.WriteNotificationBatch(ctx, tx, notifs); err != nil {
		w.countError()
		return err
	}
	if err := w.writer.WriteJournalBatch(ctx, tx, journals); err != nil {
		w.countError()
		return err
	}
	if err := tx.Commit(); err != nil {
		w.countError()
		return err
	}

	if w.metrics != nil {
		w.metrics.PersistRowsWritten.Add(float64(len(notifs) + len(journals)))
	}
	return nil
}

func (w *Worker) countError() {
	if w.metrics != nil {
		w.metrics.PersistErrors.Inc()
	}
}

func toNotificationRow(out core.Output) (NotificationRow, error) {
	payload, err := MarshalPayload(out.Envelope.Payload)
	if err != nil {
		return NotificationRow{}, err
	}
	return NotificationRow{
		Sequence:  out.Envelope.Sequence,
		Kind:      out.Envelope.Kind.String(),
		Payload:   payload,
		Timestamp: out.Envelope.Timestamp,
	}, nil
}

func toJournalRow(out core.Output) JournalRow {
	j := out.Journal
	return JournalRow{
		JournalID:     j.JournalID.String(),
		EventRef:      j.EventRef,
		Sequence:      j.Sequence,
		DebitAccount:  j.DebitAccount.AccountPath(),
		CreditAccount: j.CreditAccount.AccountPath(),
		Amount:        j.Amount,
		JournalType:   int32(j.JournalType),
		Timestamp:     j.Timestamp,
	}
}
