package ledger

import (
	"fmt"

	"github.com/google/uuid"
)

// JournalType classifies an escrow fund movement.
type JournalType int32

const (
	// JournalTypeEscrowCollect records a ticket payment entering event escrow.
	JournalTypeEscrowCollect JournalType = iota
	// JournalTypeRefund records an escrow release to a holder of a ticket
	// for a cancelled event.
	JournalTypeRefund
	// JournalTypeTicketCancel records an escrow release for a pre-event
	// self-service ticket cancellation.
	JournalTypeTicketCancel
	// JournalTypePayout records the organizer withdrawal of a completed
	// event's escrow.
	JournalTypePayout
)

func (jt JournalType) String() string {
	switch jt {
	case JournalTypeEscrowCollect:
		return "escrow_collect"
	case JournalTypeRefund:
		return "refund"
	case JournalTypeTicketCancel:
		return "ticket_cancel"
	case JournalTypePayout:
		return "payout"
	default:
		return "unknown"
	}
}

// Journal is a single double-entry record: Amount moves from the credit
// account to the debit account. Every successful fund-moving operation
// produces exactly one journal.
type Journal struct {
	JournalID     uuid.UUID
	EventRef      string // idempotency-style reference: "<op>:<entity id>"
	Sequence      uint64 // notification sequence of the emitting operation
	DebitAccount  AccountKey
	CreditAccount AccountKey
	Amount        int64 // always positive
	JournalType   JournalType
	Timestamp     int64 // epoch microseconds
}

// Validate ensures the journal is well-formed. Each journal is a balanced
// transfer by construction, so Σ debits == Σ credits holds per entry.
func (j Journal) Validate() error {
	if j.Amount <= 0 {
		return fmt.Errorf("journal %s has non-positive amount: %d", j.JournalID, j.Amount)
	}
	if j.DebitAccount == j.CreditAccount {
		return fmt.Errorf("journal %s has same debit and credit account", j.JournalID)
	}
	return nil
}
