package messagebrokerdto

// ReservationStatus is published on reservation.status.<status> whenever the
// state machine moves. Consumers treat it as an at-most-once hint and re-read
// the reservation before acting on it.
type ReservationStatus struct {
	ReservationID  string `json:"reservation_id"`
	TrackingCode   string `json:"tracking_code"`
	Status         string `json:"status"`
	ClientID       string `json:"client_id"`
	TransporteurID string `json:"transporteur_id"`
	Version        int64  `json:"version"`
	Timestamp      string `json:"timestamp"`
	CorrelationID  string `json:"correlation_id"`
}

// TrackingUpdate is published by the tracking service on tracking.update and
// consumed here to notify the client side.
type TrackingUpdate struct {
	ReservationID  string  `json:"reservation_id"`
	TransporteurID string  `json:"transporteur_id"`
	ClientID       string  `json:"client_id"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	Status         string  `json:"status"`
	Address        string  `json:"address,omitempty"`
	Notes          string  `json:"notes,omitempty"`
	RecordedAt     string  `json:"recorded_at"`
}
