package ledger

import (
	"fmt"

	"github.com/google/uuid"
)

// JournalGenerator builds journal entries for the escrow fund movements.
// All entries share the same shapes:
//
//	collect: debit event escrow, credit patron
//	release: debit patron, credit event escrow
//
// Patron accounts are boundary accounts: their (negative or positive)
// balances mirror money that crossed into or out of the system, which is
// what keeps the global sum at zero.
type JournalGenerator struct{}

func NewJournalGenerator() *JournalGenerator {
	return &JournalGenerator{}
}

// GenerateEscrowCollect records buyer's ticket payment entering event escrow.
func (g *JournalGenerator) GenerateEscrowCollect(eventID, ticketID uint64, seq uint64, buyer uuid.UUID, price int64, ts int64) Journal {
	return Journal{
		JournalID:     uuid.New(),
		EventRef:      fmt.Sprintf("buy_ticket:%d", ticketID),
		Sequence:      seq,
		DebitAccount:  NewEventEscrowKey(eventID),
		CreditAccount: NewPatronKey(buyer),
		Amount:        price,
		JournalType:   JournalTypeEscrowCollect,
		Timestamp:     ts,
	}
}

// GenerateRefund records an escrow release to owner for a cancelled-event
// refund.
func (g *JournalGenerator) GenerateRefund(eventID, ticketID uint64, seq uint64, owner uuid.UUID, amount int64, ts int64) Journal {
	return Journal{
		JournalID:     uuid.New(),
		EventRef:      fmt.Sprintf("refund_ticket:%d", ticketID),
		Sequence:      seq,
		DebitAccount:  NewPatronKey(owner),
		CreditAccount: NewEventEscrowKey(eventID),
		Amount:        amount,
		JournalType:   JournalTypeRefund,
		Timestamp:     ts,
	}
}

// GenerateTicketCancel records an escrow release to owner for a pre-event
// ticket cancellation.
func (g *JournalGenerator) GenerateTicketCancel(eventID, ticketID uint64, seq uint64, owner uuid.UUID, amount int64, ts int64) Journal {
	return Journal{
		JournalID:     uuid.New(),
		EventRef:      fmt.Sprintf("cancel_ticket:%d", ticketID),
		Sequence:      seq,
		DebitAccount:  NewPatronKey(owner),
		CreditAccount: NewEventEscrowKey(eventID),
		Amount:        amount,
		JournalType:   JournalTypeTicketCancel,
		Timestamp:     ts,
	}
}

// GeneratePayout records the organizer withdrawal of a completed event's
// escrow.
func (g *JournalGenerator) GeneratePayout(eventID uint64, seq uint64, organizer uuid.UUID, amount int64, ts int64) Journal {
	return Journal{
		JournalID:     uuid.New(),
		EventRef:      fmt.Sprintf("withdraw_earnings:%d", eventID),
		Sequence:      seq,
		DebitAccount:  NewPatronKey(organizer),
		CreditAccount: NewEventEscrowKey(eventID),
		Amount:        amount,
		JournalType:   JournalTypePayout,
		Timestamp:     ts,
	}
}
