package event

import "github.com/google/uuid"

// Notification is the interface all notification payloads implement.
type Notification interface {
	Kind() Kind
}

type EventCreated struct {
	EventID      uint64    `json:"event_id"`
	Organizer    uuid.UUID `json:"organizer"`
	Name         string    `json:"name"`
	Price        int64     `json:"price"`
	TotalTickets uint32    `json:"total_tickets"`
}

func (EventCreated) Kind() Kind { return KindEventCreated }

type TicketPurchased struct {
	TicketID uint64    `json:"ticket_id"`
	EventID  uint64    `json:"event_id"`
	Buyer    uuid.UUID `json:"buyer"`
	Price    int64     `json:"price"`
}

func (TicketPurchased) Kind() Kind { return KindTicketPurchased }

type TicketTransferred struct {
	TicketID uint64    `json:"ticket_id"`
	From     uuid.UUID `json:"from"`
	To       uuid.UUID `json:"to"`
}

func (TicketTransferred) Kind() Kind { return KindTicketTransferred }

type TicketUsed struct {
	TicketID uint64 `json:"ticket_id"`
	EventID  uint64 `json:"event_id"`
}

func (TicketUsed) Kind() Kind { return KindTicketUsed }

type EventCancelled struct {
	EventID   uint64    `json:"event_id"`
	Organizer uuid.UUID `json:"organizer"`
}

func (EventCancelled) Kind() Kind { return KindEventCancelled }

type EventCompleted struct {
	EventID uint64 `json:"event_id"`
}

func (EventCompleted) Kind() Kind { return KindEventCompleted }

type TicketRefunded struct {
	TicketID uint64    `json:"ticket_id"`
	Owner    uuid.UUID `json:"owner"`
	Amount   int64     `json:"amount"`
}

func (TicketRefunded) Kind() Kind { return KindTicketRefunded }

type TicketCancelled struct {
	TicketID     uint64    `json:"ticket_id"`
	EventID      uint64    `json:"event_id"`
	Owner        uuid.UUID `json:"owner"`
	RefundAmount int64     `json:"refund_amount"`
}

func (TicketCancelled) Kind() Kind { return KindTicketCancelled }

// EarningsWithdrawn is emitted when an organizer drains a completed event's
// escrow. It has no counterpart in the original notification set but makes
// the audit log cover every fund movement.
type EarningsWithdrawn struct {
	EventID   uint64    `json:"event_id"`
	Organizer uuid.UUID `json:"organizer"`
	Amount    int64     `json:"amount"`
}

func (EarningsWithdrawn) Kind() Kind { return KindEarningsWithdrawn }
