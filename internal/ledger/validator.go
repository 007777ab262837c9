package ledger

import "fmt"

// InvariantValidator checks escrow ledger invariants after each operation.
type InvariantValidator struct {
	tracker *BalanceTracker
}

func NewInvariantValidator(tracker *BalanceTracker) *InvariantValidator {
	return &InvariantValidator{tracker: tracker}
}

// ValidateEscrowNonNegative verifies an event's escrow never goes negative:
// no payout without a matching prior collection.
func (v *InvariantValidator) ValidateEscrowNonNegative(eventID uint64) error {
	balance := v.tracker.EscrowBalance(eventID)
	if balance < 0 {
		return fmt.Errorf("event %d has negative escrow balance: %d", eventID, balance)
	}
	return nil
}

// ValidateZeroSum verifies the ledger is globally balanced.
func (v *InvariantValidator) ValidateZeroSum() error {
	if total := v.tracker.ComputeGlobalBalance(); total != 0 {
		return fmt.Errorf("global balance is non-zero: %d", total)
	}
	return nil
}
