package query

import (
	"time"

	"github.com/google/uuid"

	"github.com/Sanjeev-Kumar78/TicketDot/internal/domain"
)

// EventResponse is an event record for API queries.
type EventResponse struct {
	ID               uint64             `json:"id"`
	Name             string             `json:"name"`
	Organizer        uuid.UUID          `json:"organizer"`
	Price            int64              `json:"price"`
	TotalTickets     uint32             `json:"total_tickets"`
	AvailableTickets uint32             `json:"available_tickets"`
	TicketsSold      uint32             `json:"tickets_sold"`
	CreatedAt        time.Time          `json:"created_at"`
	MetadataCID      string             `json:"metadata_cid"`
	Status           domain.EventStatus `json:"status"`
}

// TicketResponse is a ticket record for API queries.
type TicketResponse struct {
	ID          uint64              `json:"id"`
	EventID     uint64              `json:"event_id"`
	Owner       uuid.UUID           `json:"owner"`
	PurchasedAt time.Time           `json:"purchased_at"`
	Status      domain.TicketStatus `json:"status"`
}

// TicketListResponse lists the tickets held by one account.
type TicketListResponse struct {
	Owner     uuid.UUID `json:"owner"`
	TicketIDs []uint64  `json:"ticket_ids"`
}

// StatsResponse reports global counters.
type StatsResponse struct {
	TotalEvents  uint64 `json:"total_events"`
	TotalTickets uint64 `json:"total_tickets"`
}

// AdminResponse reports the configured admin account.
type AdminResponse struct {
	Admin uuid.UUID `json:"admin"`
}

// EscrowResponse reports the funds currently held for one event.
type EscrowResponse struct {
	EventID uint64 `json:"event_id"`
	Balance int64  `json:"balance"`
}

// JournalHistoryEntry is a journal row for API queries.
type JournalHistoryEntry struct {
	JournalID     string `json:"journal_id"`
	EventRef      string `json:"event_ref"`
	Sequence      uint64 `json:"sequence"`
	DebitAccount  string `json:"debit_account"`
	CreditAccount string `json:"credit_account"`
	Amount        int64  `json:"amount"`
	JournalType   int32  `json:"journal_type"`
	Timestamp     int64  `json:"timestamp"`
}
