package domain

import "errors"

// Operation errors. All are caller-recoverable and returned verbatim by the
// core; no operation commits partial state when one of these is returned.
var (
	// Not-found
	ErrEventNotFound  = errors.New("event not found")
	ErrTicketNotFound = errors.New("ticket not found")

	// Authorization
	ErrNotTicketOwner = errors.New("caller is not the ticket owner")
	ErrNotOrganizer   = errors.New("caller is not the event organizer")

	// State preconditions
	ErrEventNotActive        = errors.New("event is not active")
	ErrEventCancelled        = errors.New("event already cancelled")
	ErrEventCompleted        = errors.New("event already completed")
	ErrEventNotCompleted     = errors.New("event not completed yet")
	ErrTicketAlreadyUsed     = errors.New("ticket already used")
	ErrTicketAlreadyRefunded = errors.New("ticket already refunded")

	// Resource limits
	ErrSoldOut             = errors.New("no tickets available")
	ErrTooManyTickets      = errors.New("account holds too many tickets")
	ErrInsufficientBalance = errors.New("insufficient escrow balance")

	// Input
	ErrInvalidInput        = errors.New("invalid input parameters")
	ErrInsufficientPayment = errors.New("payment does not match ticket price")

	// Infrastructure
	ErrTransferFailed = errors.New("currency transfer failed")
)
