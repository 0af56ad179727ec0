package models

// DeliveryStatus is the lifecycle state of a delivery request.
type DeliveryStatus string

const (
	StatusPending   DeliveryStatus = "pending"
	StatusAccepted  DeliveryStatus = "accepted"
	StatusInTransit DeliveryStatus = "in_transit"
	StatusDelivered DeliveryStatus = "delivered"
	StatusCancelled DeliveryStatus = "cancelled"
)

// transitions lists, per state, every state it may move to.
var transitions = map[DeliveryStatus][]DeliveryStatus{
	StatusPending:   {StatusAccepted, StatusCancelled},
	StatusAccepted:  {StatusInTransit, StatusDelivered, StatusCancelled},
	StatusInTransit: {StatusInTransit, StatusDelivered, StatusCancelled},
}

// AllStatuses returns the statuses in lifecycle order.
func AllStatuses() []DeliveryStatus {
	return []DeliveryStatus{StatusPending, StatusAccepted, StatusInTransit, StatusDelivered, StatusCancelled}
}

func (s DeliveryStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusInTransit, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s DeliveryStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is accepted from s.
func (s DeliveryStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// IsActive reports whether a porter is currently working on the request.
func (s DeliveryStatus) IsActive() bool {
	return s == StatusAccepted || s == StatusInTransit
}

// CanTransition reports whether the lifecycle permits moving from s to next.
func (s DeliveryStatus) CanTransition(next DeliveryStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsStatusUpdateTarget reports whether s may be requested through a porter status update.
func (s DeliveryStatus) IsStatusUpdateTarget() bool {
	return s == StatusInTransit || s == StatusDelivered || s == StatusCancelled
}

// IncludesPackageDetails decides whether notification copy for s mentions the package.
func (s DeliveryStatus) IncludesPackageDetails() bool {
	return s != StatusPending && s != StatusDelivered
}

// Label is the human readable form shown on request cards.
func (s DeliveryStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusAccepted:
		return "Accepted"
	case StatusInTransit:
		return "In Transit"
	case StatusDelivered:
		return "Delivered"
	case StatusCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}
