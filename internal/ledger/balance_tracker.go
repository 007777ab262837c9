package ledger

import "fmt"

// BalanceTracker maintains in-memory account balances. The system is
// zero-sum: every journal moves an amount between two accounts, so the sum
// over all accounts is always zero.
type BalanceTracker struct {
	balances map[AccountKey]int64
}

func NewBalanceTracker() *BalanceTracker {
	return &BalanceTracker{balances: make(map[AccountKey]int64)}
}

// Apply applies a single journal entry to balances.
func (bt *BalanceTracker) Apply(j Journal) error {
	if err := j.Validate(); err != nil {
		return fmt.Errorf("invalid journal: %w", err)
	}
	bt.balances[j.DebitAccount] += j.Amount
	bt.balances[j.CreditAccount] -= j.Amount
	return nil
}

// GetBalance returns the current balance for an account.
func (bt *BalanceTracker) GetBalance(key AccountKey) int64 {
	return bt.balances[key]
}

// EscrowBalance returns the collected-and-unrefunded amount for an event.
func (bt *BalanceTracker) EscrowBalance(eventID uint64) int64 {
	return bt.balances[NewEventEscrowKey(eventID)]
}

// TotalEscrow sums the escrow held across all events.
func (bt *BalanceTracker) TotalEscrow() int64 {
	var total int64
	for key, balance := range bt.balances {
		if key.Scope == ScopeEvent {
			total += balance
		}
	}
	return total
}

// ComputeGlobalBalance sums all account balances (zero for a zero-sum ledger).
func (bt *BalanceTracker) ComputeGlobalBalance() int64 {
	var total int64
	for _, balance := range bt.balances {
		total += balance
	}
	return total
}

// Snapshot returns a copy of all balances.
func (bt *BalanceTracker) Snapshot() map[AccountKey]int64 {
	snapshot := make(map[AccountKey]int64, len(bt.balances))
	for k, v := range bt.balances {
		snapshot[k] = v
	}
	return snapshot
}
