package state

import "github.com/Sanjeev-Kumar78/TicketDot/internal/domain"

// EventStore is exact-match storage for event records. Get returns a copy;
// mutations only take effect through Put, so a handler that bails out before
// Put leaves the store untouched.
type EventStore struct {
	events map[uint64]domain.Event
}

func NewEventStore() *EventStore {
	return &EventStore{events: make(map[uint64]domain.Event)}
}

func (s *EventStore) Get(id uint64) (domain.Event, bool) {
	evt, ok := s.events[id]
	return evt, ok
}

// Put upserts the record under its own ID.
func (s *EventStore) Put(evt domain.Event) {
	s.events[evt.ID] = evt
}

// TicketStore is exact-match storage for ticket records, with the same
// copy-on-Get / commit-on-Put contract as EventStore.
type TicketStore struct {
	tickets map[uint64]domain.Ticket
}

func NewTicketStore() *TicketStore {
	return &TicketStore{tickets: make(map[uint64]domain.Ticket)}
}

func (s *TicketStore) Get(id uint64) (domain.Ticket, bool) {
	tk, ok := s.tickets[id]
	return tk, ok
}

func (s *TicketStore) Put(tk domain.Ticket) {
	s.tickets[tk.ID] = tk
}
