package dto

type TrackingCreateRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Status    *string  `json:"status"`
	Notes     string   `json:"notes"`
}

type TrackingPointResponse struct {
	ID            string  `json:"id"`
	ReservationID string  `json:"reservation_id"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	Status        string  `json:"status"`
	Address       string  `json:"address,omitempty"`
	Notes         string  `json:"notes,omitempty"`
	CreatedAt     string  `json:"created_at"`
}
