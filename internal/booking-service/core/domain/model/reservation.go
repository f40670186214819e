package model

import "time"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusInTransit = "in_transit"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// transitions holds the allowed forward moves of the reservation state
// machine. delivered is absent on purpose: it is only reachable through a
// delivery proof submission, never through a plain status update.
var transitions = map[string]map[string]bool{
	StatusPending: {
		StatusConfirmed: true,
		StatusCancelled: true,
	},
	StatusConfirmed: {
		StatusInTransit: true,
		StatusCancelled: true,
	},
	StatusInTransit: {},
	StatusDelivered: {},
	StatusCancelled: {},
}

// CanTransition reports whether a plain status update from -> to is allowed.
func CanTransition(from, to string) bool {
	allowed, ok := transitions[from]
	if !ok {
		return false
	}
	return allowed[to]
}

// IsStatus reports whether s is one of the five reservation statuses.
func IsStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInTransit, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// IsActive reports whether the reservation still occupies trip capacity.
func IsActive(status string) bool {
	return status != StatusCancelled
}

type Reservation struct {
	ID              string
	ExpeditionID    string
	TripID          string
	ClientID        string
	TransporteurID  string
	TotalPrice      float64
	PickupAddress   string
	DeliveryAddress string
	PickupDate      time.Time
	DeliveryDate    time.Time
	TrackingCode    string
	Status          string
	Version         int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
