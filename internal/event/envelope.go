package event

import "time"

// Envelope wraps every emitted notification.
type Envelope struct {
	// Core-assigned monotonic sequence.
	Sequence uint64

	// Payload discriminator.
	Kind Kind

	// Operation timestamp from the injected clock.
	Timestamp time.Time

	// Typed notification payload.
	Payload Notification
}
