package core

import "github.com/Sanjeev-Kumar78/TicketDot/internal/domain"

// Input bounds. These guard against storage bloat and resource exhaustion;
// violating any of them rejects the call before anything is allocated.
const (
	MaxEventNameLen      = 200
	MaxMetadataCIDLen    = 1000
	MaxTicketsPerEvent   = 1_000_000
	MinTicketPrice       = 1
	MaxTicketsPerAccount = 1000
)

// ValidateEventInput runs the pure input checks for event creation.
func ValidateEventInput(name string, price int64, totalTickets uint32, metadataCID string) error {
	if len(name) == 0 || len(name) > MaxEventNameLen {
		return domain.ErrInvalidInput
	}
	if len(metadataCID) == 0 || len(metadataCID) > MaxMetadataCIDLen {
		return domain.ErrInvalidInput
	}
	if totalTickets == 0 || totalTickets > MaxTicketsPerEvent {
		return domain.ErrInvalidInput
	}
	if price < MinTicketPrice {
		return domain.ErrInvalidInput
	}
	return nil
}
