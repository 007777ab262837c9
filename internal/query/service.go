package query

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Sanjeev-Kumar78/TicketDot/internal/core"
	"github.com/Sanjeev-Kumar78/TicketDot/internal/domain"
	"github.com/Sanjeev-Kumar78/TicketDot/internal/observability"
)

// QueryService serves read-only lookups. Live state (events, tickets,
// ownership, escrow) comes from the engine through the dispatcher; journal
// history comes from the Postgres log. The db handle may be nil, in which
// case history queries are unavailable.
type QueryService struct {
	dispatcher *core.Dispatcher
	db         *sql.DB
	metrics    *observability.Metrics
}

func NewQueryService(dispatcher *core.Dispatcher, db *sql.DB, metrics *observability.Metrics) *QueryService {
	return &QueryService{dispatcher: dispatcher, db: db, metrics: metrics}
}

func (qs *QueryService) observe(endpoint string, start time.Time) {
	if qs.metrics == nil {
		return
	}
	qs.metrics.QueryRequests.WithLabelValues(endpoint).Inc()
	qs.metrics.QueryDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

// GetEvent returns one event by ID.
func (qs *QueryService) GetEvent(id uint64) (*EventResponse, error) {
	defer qs.observe("get_event", time.Now())

	evt, ok := qs.dispatcher.GetEvent(id)
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return &EventResponse{
		ID:               evt.ID,
		Name:             evt.Name,
		Organizer:        evt.Organizer,
		Price:            evt.Price,
		TotalTickets:     evt.TotalTickets,
		AvailableTickets: evt.AvailableTickets,
		TicketsSold:      evt.TicketsSold(),
		CreatedAt:        evt.CreatedAt,
		MetadataCID:      evt.MetadataCID,
		Status:           evt.Status,
	}, nil
}

// GetTicket returns one ticket by ID.
func (qs *QueryService) GetTicket(id uint64) (*TicketResponse, error) {
	defer qs.observe("get_ticket", time.Now())

	tk, ok := qs.dispatcher.GetTicket(id)
	if !ok {
		return nil, domain.ErrTicketNotFound
	}
	return &TicketResponse{
		ID:          tk.ID,
		EventID:     tk.EventID,
		Owner:       tk.Owner,
		PurchasedAt: tk.PurchasedAt,
		Status:      tk.Status,
	}, nil
}

// MyTickets lists the ticket IDs currently held by owner, ascending.
func (qs *QueryService) MyTickets(owner uuid.UUID) *TicketListResponse {
	defer qs.observe("my_tickets", time.Now())

	ids := qs.dispatcher.MyTickets(owner)
	if ids == nil {
		ids = []uint64{}
	}
	return &TicketListResponse{Owner: owner, TicketIDs: ids}
}

// Stats returns the global event and ticket counters.
func (qs *QueryService) Stats() *StatsResponse {
	defer qs.observe("stats", time.Now())

	return &StatsResponse{
		TotalEvents:  qs.dispatcher.EventCount(),
		TotalTickets: qs.dispatcher.TicketCount(),
	}
}

// Admin returns the configured admin account.
func (qs *QueryService) Admin() *AdminResponse {
	return &AdminResponse{Admin: qs.dispatcher.Admin()}
}

// Escrow returns the funds currently held for an event.
func (qs *QueryService) Escrow(eventID uint64) (*EscrowResponse, error) {
	defer qs.observe("escrow", time.Now())

	if _, ok := qs.dispatcher.GetEvent(eventID); !ok {
		return nil, domain.ErrEventNotFound
	}
	return &EscrowResponse{EventID: eventID, Balance: qs.dispatcher.EscrowBalance(eventID)}, nil
}

// JournalHistory returns the journal entries touching an account's patron
// ledger, newest first.
func (qs *QueryService) JournalHistory(ctx context.Context, account uuid.UUID, limit int) ([]JournalHistoryEntry, error) {
	defer qs.observe("journal_history", time.Now())

	if qs.db == nil {
		return nil, fmt.Errorf("journal history unavailable: no database configured")
	}
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	path := fmt.Sprintf("patron:%s", account)
	rows, err := qs.db.QueryContext(ctx, `
		SELECT journal_id, event_ref, sequence, debit_account, credit_account, amount, journal_type, timestamp
		FROM ticket_log.journal
		WHERE debit_account = $1 OR credit_account = $1
		ORDER BY sequence DESC
		LIMIT $2`,
		path, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var entries []JournalHistoryEntry
	for rows.Next() {
		var e JournalHistoryEntry
		if err := rows.Scan(
			&e.JournalID, &e.EventRef, &e.Sequence,
			&e.DebitAccount, &e.CreditAccount, &e.Amount,
			&e.JournalType, &e.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("scan journal row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
