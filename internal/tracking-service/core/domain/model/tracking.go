package model

import "time"

// Breadcrumb statuses reported by the transporteur along the route.
const (
	PointPickup    = "pickup"
	PointInTransit = "in_transit"
	PointDelivered = "delivered"
)

var AllowedPointStatuses = map[string]bool{
	PointPickup:    true,
	PointInTransit: true,
	PointDelivered: true,
}

type TrackingPoint struct {
	ID             string
	ReservationID  string
	TransporteurID string
	Latitude       float64
	Longitude      float64
	Status         string
	Address        string
	Notes          string
	CreatedAt      time.Time
}

// Reservation is the slice of the booking data this service needs to
// authorize reads and writes.
type Reservation struct {
	ID             string
	ClientID       string
	TransporteurID string
	TrackingCode   string
	Status         string
}

// Trackable reports whether the shipment is in a state where position
// updates still make sense.
func (r Reservation) Trackable() bool {
	return r.Status == "confirmed" || r.Status == "in_transit"
}

func (r Reservation) IsParty(userID string) bool {
	return r.ClientID == userID || r.TransporteurID == userID
}
