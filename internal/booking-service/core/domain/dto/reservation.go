package dto

type ReservationCreateRequest struct {
	ExpeditionID *string `json:"expedition_id"`
	TripID       *string `json:"trip_id"`
}

type ReservationStatusRequest struct {
	Status  *string `json:"status"`
	Version *int64  `json:"version"`
}

type ReservationResponse struct {
	ID              string  `json:"id"`
	ExpeditionID    string  `json:"expedition_id"`
	TripID          string  `json:"trip_id"`
	ClientID        string  `json:"client_id"`
	TransporteurID  string  `json:"transporteur_id"`
	TotalPrice      float64 `json:"total_price"`
	PickupAddress   string  `json:"pickup_address,omitempty"`
	DeliveryAddress string  `json:"delivery_address,omitempty"`
	PickupDate      string  `json:"pickup_date,omitempty"`
	DeliveryDate    string  `json:"delivery_date,omitempty"`
	TrackingCode    string  `json:"tracking_code"`
	Status          string  `json:"status"`
	Version         int64   `json:"version"`
	CreatedAt       string  `json:"created_at"`
}

// ProofSubmitRequest is decoded from the multipart form of the delivery
// proof endpoint; Photo is empty on a resubmission that keeps the stored one.
type ProofSubmitRequest struct {
	RecipientName string
	SignatureData string
	Notes         string
	Photo         []byte
	PhotoName     string
	PhotoMime     string
}

type ProofResponse struct {
	ID            string `json:"id"`
	ReservationID string `json:"reservation_id"`
	PhotoURL      string `json:"photo_url"`
	RecipientName string `json:"recipient_name"`
	SignatureData string `json:"signature_data,omitempty"`
	Notes         string `json:"notes,omitempty"`
	DeliveredAt   string `json:"delivered_at"`
}
