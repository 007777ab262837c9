package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TicketStatus is the lifecycle state of a ticket. Valid → Used happens at
// the gate; Valid → Refunded via pre-event self-cancellation; Used or Valid
// → Refunded via the cancelled-event refund path. Refunded is terminal.
type TicketStatus uint8

const (
	TicketValid TicketStatus = iota
	TicketUsed
	TicketRefunded
)

func (s TicketStatus) String() string {
	switch s {
	case TicketValid:
		return "valid"
	case TicketUsed:
		return "used"
	case TicketRefunded:
		return "refunded"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the status as its string form in API responses.
func (s TicketStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Ticket is a uniquely-owned ticket record. EventID and PurchasedAt are
// immutable; Owner changes on transfer, Status only moves forward.
type Ticket struct {
	ID          uint64       `json:"id"`
	EventID     uint64       `json:"event_id"`
	Owner       uuid.UUID    `json:"owner"`
	PurchasedAt time.Time    `json:"purchased_at"`
	Status      TicketStatus `json:"status"`
}
