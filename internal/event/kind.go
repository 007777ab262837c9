package event

// Kind discriminates notification payloads.
type Kind int32

const (
	KindUnknown Kind = iota
	KindEventCreated
	KindTicketPurchased
	KindTicketTransferred
	KindTicketUsed
	KindEventCancelled
	KindEventCompleted
	KindTicketRefunded
	KindTicketCancelled
	KindEarningsWithdrawn
)

func (k Kind) String() string {
	switch k {
	case KindEventCreated:
		return "EventCreated"
	case KindTicketPurchased:
		return "TicketPurchased"
	case KindTicketTransferred:
		return "TicketTransferred"
	case KindTicketUsed:
		return "TicketUsed"
	case KindEventCancelled:
		return "EventCancelled"
	case KindEventCompleted:
		return "EventCompleted"
	case KindTicketRefunded:
		return "TicketRefunded"
	case KindTicketCancelled:
		return "TicketCancelled"
	case KindEarningsWithdrawn:
		return "EarningsWithdrawn"
	default:
		return "Unknown"
	}
}
