package state

import "github.com/Sanjeev-Kumar78/TicketDot/internal/money"

// Counters issues strictly increasing IDs for events and tickets from two
// independent monotonic counters. Increments saturate: once a counter hits
// its ceiling it stops advancing, which halts new-entity creation rather
// than reissuing an ID.
type Counters struct {
	nextEvent  uint64
	nextTicket uint64
}

func NewCounters() *Counters {
	return &Counters{}
}

// NextEventID returns the next event ID and advances the counter.
func (c *Counters) NextEventID() uint64 {
	id := c.nextEvent
	c.nextEvent = money.SaturatingAddUint64(c.nextEvent, 1)
	return id
}

// NextTicketID returns the next ticket ID and advances the counter.
func (c *Counters) NextTicketID() uint64 {
	id := c.nextTicket
	c.nextTicket = money.SaturatingAddUint64(c.nextTicket, 1)
	return id
}

// EventCount returns the total number of events ever created.
func (c *Counters) EventCount() uint64 { return c.nextEvent }

// TicketCount returns the total number of tickets ever minted.
func (c *Counters) TicketCount() uint64 { return c.nextTicket }
