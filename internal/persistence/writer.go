package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// LogWriter batch-writes notifications and journal entries to Postgres
// using multi-row INSERTs. ON CONFLICT DO NOTHING makes replayed writes
// idempotent on the sequence / journal_id keys.
type LogWriter struct {
	db *sql.DB
}

// NotificationRow is a row in ticket_log.notifications.
type NotificationRow struct {
	Sequence  uint64
	Kind      string
	Payload   []byte // JSON-encoded notification payload
	Timestamp time.Time
}

// JournalRow is a row in ticket_log.journal.
type JournalRow struct {
	JournalID     string
	EventRef      string
	Sequence      uint64
	DebitAccount  string
	CreditAccount string
	Amount        int64
	JournalType   int32
	Timestamp     int64
}

func NewLogWriter(db *sql.DB) *LogWriter {
	return &LogWriter{db: db}
}

func (w *LogWriter) DB() *sql.DB {
	return w.db
}

// WriteNotificationBatch writes a batch of notifications inside tx.
func (w *LogWriter) WriteNotificationBatch(ctx context.Context, tx *sql.Tx, rows []NotificationRow) error {
	if len(rows) == 0 {
		return nil
	}

	query := `INSERT INTO ticket_log.notifications
		(sequence, kind, payload, timestamp)
		VALUES `

	values := make([]string, 0, len(rows))
	args := make([]interface{}, 0, len(rows)*4)

	for i, r := range rows {
		base := i * 4
		values = append(values, fmt.Sprintf(
			"($%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4,
		))
		args = append(args, r.Sequence, r.Kind, r.Payload, r.Timestamp)
	}

	query += strings.Join(values, ", ")
	query += " ON CONFLICT (sequence) DO NOTHING"

	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// WriteJournalBatch writes a batch of journal entries inside tx.
func (w *LogWriter) WriteJournalBatch(ctx context.Context, tx *sql.Tx, rows []JournalRow) error {
	if len(rows) == 0 {
		return nil
	}

	query := `INSERT INTO ticket_log.journal
		(journal_id, event_ref, sequence, debit_account, credit_account, amount, journal_type, timestamp)
		VALUES `

	values := make([]string, 0, len(rows))
	args := make([]interface{}, 0, len(rows)*8)

	for i, r := range rows {
		base := i * 8
		values = append(values, fmt.Sprintf(
			"($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8,
		))
		args = append(args,
			r.JournalID, r.EventRef, r.Sequence,
			r.DebitAccount, r.CreditAccount, r.Amount,
			r.JournalType, r.Timestamp,
		)
	}

	query += strings.Join(values, ", ")
	query += " ON CONFLICT (journal_id) DO NOTHING"

	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// MarshalPayload serializes a notification payload to JSON for storage.
func MarshalPayload(payload interface{}) ([]byte, error) {
	return json.Marshal(payload)
}
