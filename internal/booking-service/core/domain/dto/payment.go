package dto

type PaymentCreateRequest struct {
	PaymentMethod *string `json:"payment_method"`
	Currency      string  `json:"currency"`
}

type PaymentResponse struct {
	ID                 string  `json:"id"`
	ReservationID      string  `json:"reservation_id"`
	Amount             float64 `json:"amount"`
	Currency           string  `json:"currency"`
	PaymentMethod      string  `json:"payment_method"`
	CommissionAmount   float64 `json:"commission_amount"`
	TransporteurAmount float64 `json:"transporteur_amount"`
	Status             string  `json:"status"`
	ProcessedAt        string  `json:"processed_at,omitempty"`
	CreatedAt          string  `json:"created_at"`
}

// EarningsResponse aggregates a transporteur's completed payments.
type EarningsResponse struct {
	TotalEarned     float64 `json:"total_earned"`
	TotalCommission float64 `json:"total_commission"`
	CompletedCount  int     `json:"completed_count"`
	PendingAmount   float64 `json:"pending_amount"`
}
