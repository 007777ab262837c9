package core

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Sanjeev-Kumar78/TicketDot/internal/clock"
	"github.com/Sanjeev-Kumar78/TicketDot/internal/domain"
	"github.com/Sanjeev-Kumar78/TicketDot/internal/event"
	"github.com/Sanjeev-Kumar78/TicketDot/internal/ledger"
	"github.com/Sanjeev-Kumar78/TicketDot/internal/money"
	"github.com/Sanjeev-Kumar78/TicketDot/internal/observability"
	"github.com/Sanjeev-Kumar78/TicketDot/internal/state"
)

// Output is what the core hands downstream after an operation commits:
// the notification envelope plus the journal entry, if funds moved.
type Output struct {
	Envelope event.Envelope
	Journal  *ledger.Journal
}

// Core is the single-threaded lifecycle engine. It owns all mutable state
// (counters, event and ticket records, the ownership index, escrow balances)
// and is the only writer to any of it. Callers serialize through Dispatcher.
type Core struct {
	sequence uint64
	counters *state.Counters
	events   *state.EventStore
	tickets  *state.TicketStore
	owners   *state.OwnershipIndex

	escrow    *ledger.BalanceTracker
	journals  *ledger.JournalGenerator
	validator *ledger.InvariantValidator
	treasury  ledger.Transferer

	admin   uuid.UUID
	clock   clock.Clock
	metrics *observability.Metrics

	persistChan chan<- Output
	publishChan chan<- Output
}

func NewCore(
	admin uuid.UUID,
	treasury ledger.Transferer,
	clk clock.Clock,
	persistChan, publishChan chan<- Output,
	metrics *observability.Metrics,
) *Core {
	escrow := ledger.NewBalanceTracker()

	return &Core{
		counters:    state.NewCounters(),
		events:      state.NewEventStore(),
		tickets:     state.NewTicketStore(),
		owners:      state.NewOwnershipIndex(),
		escrow:      escrow,
		journals:    ledger.NewJournalGenerator(),
		validator:   ledger.NewInvariantValidator(escrow),
		treasury:    treasury,
		admin:       admin,
		clock:       clk,
		metrics:     metrics,
		persistChan: persistChan,
		publishChan: publishChan,
	}
}

// ---------------------------------------------------------------------------
// Lifecycle operations
// ---------------------------------------------------------------------------

// CreateEvent registers a new event and returns its ID. The caller becomes
// the organizer.
func (c *Core) CreateEvent(caller uuid.UUID, name string, price int64, totalTickets uint32, metadataCID string) (uint64, error) {
	if err := ValidateEventInput(name, price, totalTickets, metadataCID); err != nil {
		return 0, err
	}

	id := c.counters.NextEventID()
	now := c.clock.Now()

	c.events.Put(domain.Event{
		ID:               id,
		Name:             name,
		Organizer:        caller,
		Price:            price,
		TotalTickets:     totalTickets,
		AvailableTickets: totalTickets,
		CreatedAt:        now,
		MetadataCID:      metadataCID,
		Status:           domain.EventActive,
	})

	c.emit(event.EventCreated{
		EventID:      id,
		Organizer:    caller,
		Name:         name,
		Price:        price,
		TotalTickets: totalTickets,
	}, nil)

	if c.metrics != nil {
		c.metrics.EventsCreated.Inc()
	}
	return id, nil
}

// BuyTicket sells one ticket to the caller at the event's exact price. The
// payment is collected into the event's escrow account.
func (c *Core) BuyTicket(caller uuid.UUID, eventID uint64, payment int64) (uint64, error) {
	evt, ok := c.events.Get(eventID)
	if !ok {
		return 0, domain.ErrEventNotFound
	}
	if evt.Status != domain.EventActive {
		return 0, domain.ErrEventNotActive
	}
	if evt.AvailableTickets == 0 {
		return 0, domain.ErrSoldOut
	}
	if payment != evt.Price {
		return 0, domain.ErrInsufficientPayment
	}
	if c.owners.Count(caller) >= MaxTicketsPerAccount {
		return 0, domain.ErrTooManyTickets
	}

	ticketID := c.counters.NextTicketID()
	now := c.clock.Now()

	evt.AvailableTickets--
	c.events.Put(evt)
	c.tickets.Put(domain.Ticket{
		ID:          ticketID,
		EventID:     eventID,
		Owner:       caller,
		PurchasedAt: now,
		Status:      domain.TicketValid,
	})
	c.owners.Add(caller, ticketID)

	journal := c.journals.GenerateEscrowCollect(eventID, ticketID, c.sequence, caller, evt.Price, now.UnixMicro())
	if err := c.escrow.Apply(journal); err != nil {
		panic(fmt.Sprintf("FATAL: escrow collect rejected: %v", err))
	}
	c.postCheckInvariants(eventID)

	c.emit(event.TicketPurchased{
		TicketID: ticketID,
		EventID:  eventID,
		Buyer:    caller,
		Price:    evt.Price,
	}, &journal)

	if c.metrics != nil {
		c.metrics.TicketsSold.Inc()
		c.metrics.EscrowHeld.Set(float64(c.escrow.TotalEscrow()))
	}
	return ticketID, nil
}

// TransferTicket moves a ticket from the caller to another account.
func (c *Core) TransferTicket(caller uuid.UUID, ticketID uint64, to uuid.UUID) error {
	tk, ok := c.tickets.Get(ticketID)
	if !ok {
		return domain.ErrTicketNotFound
	}
	if tk.Owner != caller {
		return domain.ErrNotTicketOwner
	}
	if tk.Status == domain.TicketUsed {
		return domain.ErrTicketAlreadyUsed
	}
	if tk.Status == domain.TicketRefunded {
		return domain.ErrTicketAlreadyRefunded
	}
	if c.owners.Count(to) >= MaxTicketsPerAccount {
		return domain.ErrTooManyTickets
	}

	tk.Owner = to
	c.tickets.Put(tk)
	c.owners.Move(caller, to, ticketID)

	c.emit(event.TicketTransferred{
		TicketID: ticketID,
		From:     caller,
		To:       to,
	}, nil)
	return nil
}

// UseTicket marks a ticket as redeemed. Only the event organizer or the
// admin may redeem; the ticket holder presents, the gate scans.
func (c *Core) UseTicket(caller uuid.UUID, ticketID uint64) error {
	tk, ok := c.tickets.Get(ticketID)
	if !ok {
		return domain.ErrTicketNotFound
	}
	evt, ok := c.events.Get(tk.EventID)
	if !ok {
		return domain.ErrEventNotFound
	}
	if caller != evt.Organizer && caller != c.admin {
		return domain.ErrNotTicketOwner
	}
	if tk.Status == domain.TicketRefunded {
		return domain.ErrTicketAlreadyRefunded
	}
	if tk.Status == domain.TicketUsed {
		return domain.ErrTicketAlreadyUsed
	}
	if evt.Status == domain.EventCancelled {
		return domain.ErrEventCancelled
	}
	if evt.Status == domain.EventCompleted {
		return domain.ErrEventCompleted
	}

	tk.Status = domain.TicketUsed
	c.tickets.Put(tk)

	c.emit(event.TicketUsed{TicketID: ticketID, EventID: tk.EventID}, nil)

	if c.metrics != nil {
		c.metrics.TicketsUsed.Inc()
	}
	return nil
}

// CancelEvent moves an active event to Cancelled. Ticket holders become
// eligible for refunds; escrowed funds stay put until they claim.
func (c *Core) CancelEvent(caller uuid.UUID, eventID uint64) error {
	evt, ok := c.events.Get(eventID)
	if !ok {
		return domain.ErrEventNotFound
	}
	if caller != evt.Organizer {
		return domain.ErrNotOrganizer
	}
	if evt.Status == domain.EventCancelled {
		return domain.ErrEventCancelled
	}
	if evt.Status == domain.EventCompleted {
		return domain.ErrEventCompleted
	}

	evt.Status = domain.EventCancelled
	c.events.Put(evt)

	c.emit(event.EventCancelled{EventID: eventID, Organizer: caller}, nil)
	return nil
}

// CompleteEvent moves an active event to Completed, unlocking the
// organizer's earnings withdrawal.
func (c *Core) CompleteEvent(caller uuid.UUID, eventID uint64) error {
	evt, ok := c.events.Get(eventID)
	if !ok {
		return domain.ErrEventNotFound
	}
	if caller != evt.Organizer {
		return domain.ErrNotOrganizer
	}
	if evt.Status == domain.EventCancelled {
		return domain.ErrEventCancelled
	}
	if evt.Status == domain.EventCompleted {
		return domain.ErrEventCompleted
	}

	evt.Status = domain.EventCompleted
	c.events.Put(evt)

	c.emit(event.EventCompleted{EventID: eventID}, nil)
	return nil
}

// RefundTicket pays the holder back the ticket price after the event was
// cancelled. The ticket is retired and leaves the owner's index; the seat
// is NOT returned to supply — the event is dead.
func (c *Core) RefundTicket(caller uuid.UUID, ticketID uint64) error {
	tk, ok := c.tickets.Get(ticketID)
	if !ok {
		return domain.ErrTicketNotFound
	}
	if tk.Owner != caller {
		return domain.ErrNotTicketOwner
	}
	if tk.Status == domain.TicketRefunded {
		return domain.ErrTicketAlreadyRefunded
	}
	evt, ok := c.events.Get(tk.EventID)
	if !ok {
		return domain.ErrEventNotFound
	}
	if evt.Status != domain.EventCancelled {
		return domain.ErrEventNotActive
	}

	amount := evt.Price
	if c.escrow.EscrowBalance(evt.ID) < amount {
		return domain.ErrInsufficientBalance
	}

	// Funds move before state commits: a failed transfer leaves the ticket
	// refundable, never the reverse.
	if err := c.treasury.Transfer(caller, amount); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrTransferFailed, err)
	}

	tk.Status = domain.TicketRefunded
	c.tickets.Put(tk)
	c.owners.Remove(caller, ticketID)

	journal := c.journals.GenerateRefund(evt.ID, ticketID, c.sequence, caller, amount, c.clock.Now().UnixMicro())
	if err := c.escrow.Apply(journal); err != nil {
		panic(fmt.Sprintf("FATAL: refund journal rejected: %v", err))
	}
	c.postCheckInvariants(evt.ID)

	c.emit(event.TicketRefunded{
		TicketID: ticketID,
		Owner:    caller,
		Amount:   amount,
	}, &journal)

	if c.metrics != nil {
		c.metrics.TicketsRefunded.Inc()
		c.metrics.EscrowHeld.Set(float64(c.escrow.TotalEscrow()))
	}
	return nil
}

// CancelTicket is a voluntary return while the event is still active: the
// holder gets the price back and the seat goes back on sale.
func (c *Core) CancelTicket(caller uuid.UUID, ticketID uint64) error {
	tk, ok := c.tickets.Get(ticketID)
	if !ok {
		return domain.ErrTicketNotFound
	}
	if tk.Owner != caller {
		return domain.ErrNotTicketOwner
	}
	if tk.Status == domain.TicketRefunded {
		return domain.ErrTicketAlreadyRefunded
	}
	if tk.Status == domain.TicketUsed {
		return domain.ErrTicketAlreadyUsed
	}
	evt, ok := c.events.Get(tk.EventID)
	if !ok {
		return domain.ErrEventNotFound
	}
	if evt.Status == domain.EventCancelled {
		return domain.ErrEventCancelled
	}
	if evt.Status == domain.EventCompleted {
		return domain.ErrEventCompleted
	}

	amount := evt.Price
	if c.escrow.EscrowBalance(evt.ID) < amount {
		return domain.ErrInsufficientBalance
	}

	if err := c.treasury.Transfer(caller, amount); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrTransferFailed, err)
	}

	tk.Status = domain.TicketRefunded
	c.tickets.Put(tk)
	c.owners.Remove(caller, ticketID)

	evt.AvailableTickets = money.SaturatingAddUint32(evt.AvailableTickets, 1)
	c.events.Put(evt)

	journal := c.journals.GenerateTicketCancel(evt.ID, ticketID, c.sequence, caller, amount, c.clock.Now().UnixMicro())
	if err := c.escrow.Apply(journal); err != nil {
		panic(fmt.Sprintf("FATAL: cancel journal rejected: %v", err))
	}
	c.postCheckInvariants(evt.ID)

	c.emit(event.TicketCancelled{
		TicketID:     ticketID,
		EventID:      evt.ID,
		Owner:        caller,
		RefundAmount: amount,
	}, &journal)

	if c.metrics != nil {
		c.metrics.TicketsRefunded.Inc()
		c.metrics.EscrowHeld.Set(float64(c.escrow.TotalEscrow()))
	}
	return nil
}

// WithdrawEarnings pays the organizer everything still held in the event's
// escrow, capped at price × tickets sold. Draining the escrow is what makes
// the operation one-shot: a second call finds a zero balance and fails.
func (c *Core) WithdrawEarnings(caller uuid.UUID, eventID uint64) (int64, error) {
	evt, ok := c.events.Get(eventID)
	if !ok {
		return 0, domain.ErrEventNotFound
	}
	if caller != evt.Organizer {
		return 0, domain.ErrNotOrganizer
	}
	if evt.Status != domain.EventCompleted {
		return 0, domain.ErrEventNotCompleted
	}

	earnings := money.SaturatingMulInt64(evt.Price, int64(evt.TicketsSold()))
	balance := c.escrow.EscrowBalance(eventID)
	if balance <= 0 {
		return 0, domain.ErrInsufficientBalance
	}
	if earnings > balance {
		// Cancel-ticket refunds before completion can leave escrow below the
		// nominal earnings figure; pay out what is actually held.
		earnings = balance
	}

	if err := c.treasury.Transfer(caller, earnings); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrTransferFailed, err)
	}

	journal := c.journals.GeneratePayout(eventID, c.sequence, caller, earnings, c.clock.Now().UnixMicro())
	if err := c.escrow.Apply(journal); err != nil {
		panic(fmt.Sprintf("FATAL: payout journal rejected: %v", err))
	}
	c.postCheckInvariants(eventID)

	c.emit(event.EarningsWithdrawn{
		EventID:   eventID,
		Organizer: caller,
		Amount:    earnings,
	}, &journal)

	if c.metrics != nil {
		c.metrics.EscrowHeld.Set(float64(c.escrow.TotalEscrow()))
	}
	return earnings, nil
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

func (c *Core) GetEvent(id uint64) (domain.Event, bool) {
	return c.events.Get(id)
}

func (c *Core) GetTicket(id uint64) (domain.Ticket, bool) {
	return c.tickets.Get(id)
}

// MyTickets returns the ticket IDs held by owner, ascending. Used tickets
// are still listed; refunded ones are not.
func (c *Core) MyTickets(owner uuid.UUID) []uint64 {
	return c.owners.Tickets(owner)
}

func (c *Core) EventCount() uint64 {
	return c.counters.EventCount()
}

func (c *Core) TicketCount() uint64 {
	return c.counters.TicketCount()
}

func (c *Core) Admin() uuid.UUID {
	return c.admin
}

func (c *Core) EscrowBalance(eventID uint64) int64 {
	return c.escrow.EscrowBalance(eventID)
}

// Sequence returns the next notification sequence number.
func (c *Core) Sequence() uint64 {
	return c.sequence
}

// ---------------------------------------------------------------------------
// Internals
// ---------------------------------------------------------------------------

// emit assigns the next sequence number, stamps the envelope, and hands the
// output downstream. Persistence gets a BLOCKING send (backpressure: the
// core stalls rather than lose a record). Publishing gets a NON-BLOCKING
// send with drop-on-full — subscribers can re-read the log.
func (c *Core) emit(payload event.Notification, journal *ledger.Journal) {
	out := Output{
		Envelope: event.Envelope{
			Sequence:  c.sequence,
			Kind:      payload.Kind(),
			Timestamp: c.clock.Now(),
			Payload:   payload,
		},
		Journal: journal,
	}
	c.sequence++

	if c.persistChan != nil {
		c.persistChan <- out
	}
	if c.publishChan != nil {
		select {
		case c.publishChan <- out:
		default:
			if c.metrics != nil {
				c.metrics.PublishDrops.Inc()
			}
		}
	}

	if c.metrics != nil {
		c.metrics.NotifySequence.Set(float64(c.sequence))
	}
}

// postCheckInvariants runs after every journal application. A violation
// here means the engine itself is broken; crashing beats corrupting money.
func (c *Core) postCheckInvariants(eventID uint64) {
	if err := c.validator.ValidateEscrowNonNegative(eventID); err != nil {
		panic(fmt.Sprintf("FATAL: invariant violated: %v", err))
	}
	if err := c.validator.ValidateZeroSum(); err != nil {
		panic(fmt.Sprintf("FATAL: invariant violated: %v", err))
	}
}
