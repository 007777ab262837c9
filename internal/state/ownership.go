package state

import (
	"sort"

	"github.com/google/uuid"
)

// OwnershipIndex maps each account to the set of ticket IDs it currently
// holds in valid (non-refunded) state. This type is the ONLY code path that
// mutates the index; handlers never touch the underlying sets directly.
//
// Invariant: a ticket ID appears in exactly one account's set while the
// ticket is unrefunded, and in no set once refunded. The index is maintained
// incrementally — it is never rebuilt by scanning ticket records.
type OwnershipIndex struct {
	byOwner map[uuid.UUID]map[uint64]struct{}
}

func NewOwnershipIndex() *OwnershipIndex {
	return &OwnershipIndex{byOwner: make(map[uuid.UUID]map[uint64]struct{})}
}

// Count returns the number of valid tickets the account holds.
func (ix *OwnershipIndex) Count(owner uuid.UUID) int {
	return len(ix.byOwner[owner])
}

// Contains reports whether the account's set holds the ticket ID.
func (ix *OwnershipIndex) Contains(owner uuid.UUID, ticketID uint64) bool {
	_, ok := ix.byOwner[owner][ticketID]
	return ok
}

// Add inserts a ticket ID into the account's set (purchase).
func (ix *OwnershipIndex) Add(owner uuid.UUID, ticketID uint64) {
	set, ok := ix.byOwner[owner]
	if !ok {
		set = make(map[uint64]struct{})
		ix.byOwner[owner] = set
	}
	set[ticketID] = struct{}{}
}

// Remove deletes a ticket ID from the account's set (refund/cancel).
func (ix *OwnershipIndex) Remove(owner uuid.UUID, ticketID uint64) {
	if set, ok := ix.byOwner[owner]; ok {
		delete(set, ticketID)
		if len(set) == 0 {
			delete(ix.byOwner, owner)
		}
	}
}

// Move shifts a ticket ID between accounts in one step (transfer).
func (ix *OwnershipIndex) Move(from, to uuid.UUID, ticketID uint64) {
	ix.Remove(from, ticketID)
	ix.Add(to, ticketID)
}

// Tickets returns the account's valid ticket IDs in ascending order.
func (ix *OwnershipIndex) Tickets(owner uuid.UUID) []uint64 {
	set := ix.byOwner[owner]
	ids := make([]uint64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
