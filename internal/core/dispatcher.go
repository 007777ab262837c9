package core

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Sanjeev-Kumar78/TicketDot/internal/domain"
	"github.com/Sanjeev-Kumar78/TicketDot/internal/observability"
)

// Dispatcher serializes all access to the Core. The engine itself is
// single-threaded; handlers from any number of HTTP goroutines funnel
// through the mutex here so that each operation observes and commits a
// consistent snapshot.
type Dispatcher struct {
	mu      sync.Mutex
	core    *Core
	metrics *observability.Metrics
}

func NewDispatcher(core *Core, metrics *observability.Metrics) *Dispatcher {
	return &Dispatcher{core: core, metrics: metrics}
}

func (d *Dispatcher) observe(op string, start time.Time, err error) {
	if d.metrics == nil {
		return
	}
	if err != nil {
		d.metrics.OpsRejected.WithLabelValues(op, err.Error()).Inc()
	} else {
		d.metrics.OpsApplied.WithLabelValues(op).Inc()
	}
	d.metrics.OpDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (d *Dispatcher) CreateEvent(caller uuid.UUID, name string, price int64, totalTickets uint32, metadataCID string) (uint64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	start := time.Now()
	id, err := d.core.CreateEvent(caller, name, price, totalTickets, metadataCID)
	d.observe("create_event", start, err)
	return id, err
}

func (d *Dispatcher) BuyTicket(caller uuid.UUID, eventID uint64, payment int64) (uint64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	start := time.Now()
	id, err := d.core.BuyTicket(caller, eventID, payment)
	d.observe("buy_ticket", start, err)
	return id, err
}

func (d *Dispatcher) TransferTicket(caller uuid.UUID, ticketID uint64, to uuid.UUID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	start := time.Now()
	err := d.core.TransferTicket(caller, ticketID, to)
	d.observe("transfer_ticket", start, err)
	return err
}

func (d *Dispatcher) UseTicket(caller uuid.UUID, ticketID uint64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	start := time.Now()
	err := d.core.UseTicket(caller, ticketID)
	d.observe("use_ticket", start, err)
	return err
}

func (d *Dispatcher) CancelEvent(caller uuid.UUID, eventID uint64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	start := time.Now()
	err := d.core.CancelEvent(caller, eventID)
	d.observe("cancel_event", start, err)
	return err
}

func (d *Dispatcher) CompleteEvent(caller uuid.UUID, eventID uint64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	start := time.Now()
	err := d.core.CompleteEvent(caller, eventID)
	d.observe("complete_event", start, err)
	return err
}

func (d *Dispatcher) RefundTicket(caller uuid.UUID, ticketID uint64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	start := time.Now()
	err := d.core.RefundTicket(caller, ticketID)
	d.observe("refund_ticket", start, err)
	return err
}

func (d *Dispatcher) CancelTicket(caller uuid.UUID, ticketID uint64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	start := time.Now()
	err := d.core.CancelTicket(caller, ticketID)
	d.observe("cancel_ticket", start, err)
	return err
}

func (d *Dispatcher) WithdrawEarnings(caller uuid.UUID, eventID uint64) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	start := time.Now()
	amount, err := d.core.WithdrawEarnings(caller, eventID)
	d.observe("withdraw_earnings", start, err)
	return amount, err
}

// Queries hold the same lock: reads must not interleave with a half-applied
// operation.

func (d *Dispatcher) GetEvent(id uint64) (domain.Event, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.core.GetEvent(id)
}

func (d *Dispatcher) GetTicket(id uint64) (domain.Ticket, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.core.GetTicket(id)
}

func (d *Dispatcher) MyTickets(owner uuid.UUID) []uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.core.MyTickets(owner)
}

func (d *Dispatcher) EventCount() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.core.EventCount()
}

func (d *Dispatcher) TicketCount() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.core.TicketCount()
}

func (d *Dispatcher) Admin() uuid.UUID {
	return d.core.Admin()
}

func (d *Dispatcher) EscrowBalance(eventID uint64) int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.core.EscrowBalance(eventID)
}
