package ledger

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

// AccountScope is the top-level account namespace.
type AccountScope uint8

const (
	// ScopeEvent holds one escrow account per event: ticket payments
	// collected and not yet refunded or withdrawn.
	ScopeEvent AccountScope = iota
	// ScopePatron is a ticket buyer/holder boundary account. The service
	// never custodies patron funds beyond event escrow, so patron balances
	// run negative by the amount currently escrowed on their behalf.
	ScopePatron
	// ScopeExternal is a named boundary account (payouts).
	ScopeExternal
)

// AccountKey is the in-memory key for balance tracking.
type AccountKey struct {
	Scope    AccountScope
	EntityID [16]byte // UUID for patrons, big-endian event ID for events, name for external
}

// NewEventEscrowKey creates the escrow account key for an event.
func NewEventEscrowKey(eventID uint64) AccountKey {
	var entity [16]byte
	binary.BigEndian.PutUint64(entity[:8], eventID)
	return AccountKey{Scope: ScopeEvent, EntityID: entity}
}

// NewPatronKey creates the boundary account key for a ticket holder.
func NewPatronKey(account uuid.UUID) AccountKey {
	return AccountKey{Scope: ScopePatron, EntityID: account}
}

// NewExternalKey creates a named boundary account key.
func NewExternalKey(name string) AccountKey {
	var entity [16]byte
	copy(entity[:], name)
	return AccountKey{Scope: ScopeExternal, EntityID: entity}
}

// EventID recovers the event ID from an event-scoped key.
func (k AccountKey) EventID() uint64 {
	return binary.BigEndian.Uint64(k.EntityID[:8])
}

// AccountPath returns the string representation for storage and logging.
func (k AccountKey) AccountPath() string {
	switch k.Scope {
	case ScopeEvent:
		return fmt.Sprintf("event:%d:escrow", k.EventID())
	case ScopePatron:
		return fmt.Sprintf("patron:%s", uuid.UUID(k.EntityID).String())
	case ScopeExternal:
		return fmt.Sprintf("external:%s", trimName(k.EntityID))
	}
	return "unknown"
}

func trimName(b [16]byte) string {
	end := 0
	for end < len(b) && b[end] != 0 {
		end++
	}
	return string(b[:end])
}
