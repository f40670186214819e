package messagebrokerdto

// TrackingUpdate goes out on tracking.update after every accepted breadcrumb.
// The booking side consumes it to notify the client.
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
