package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventStatus is the lifecycle state of an event. An event starts Active and
// moves to exactly one of the two terminal states; there is no way back.
type EventStatus uint8

const (
	EventActive EventStatus = iota
	EventCancelled
	EventCompleted
)

func (s EventStatus) String() string {
	switch s {
	case EventActive:
		return "active"
	case EventCancelled:
		return "cancelled"
	case EventCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the status as its string form in API responses.
func (s EventStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Terminal reports whether the status permits no further transitions.
func (s EventStatus) Terminal() bool {
	return s == EventCancelled || s == EventCompleted
}

// Event is a ticketed event record. Organizer, Price, TotalTickets,
// CreatedAt and MetadataCID are immutable after creation; AvailableTickets
// and Status are the only mutable fields.
type Event struct {
	ID               uint64      `json:"id"`
	Name             string      `json:"name"`
	Organizer        uuid.UUID   `json:"organizer"`
	Price            int64       `json:"price"`
	TotalTickets     uint32      `json:"total_tickets"`
	AvailableTickets uint32      `json:"available_tickets"`
	CreatedAt        time.Time   `json:"created_at"`
	MetadataCID      string      `json:"metadata_cid"`
	Status           EventStatus `json:"status"`
}

// TicketsSold returns the number of currently-sold (non-returned) tickets.
// AvailableTickets never exceeds TotalTickets, so this cannot underflow.
func (e *Event) TicketsSold() uint32 {
	return e.TotalTickets - e.AvailableTickets
}
