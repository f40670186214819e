package model

import "time"

const (
	PaymentPending    = "pending"
	PaymentProcessing = "processing"
	PaymentCompleted  = "completed"
	PaymentFailed     = "failed"
	PaymentRefunded   = "refunded"
)

// CommissionRate is the flat platform cut taken from every delivery.
const CommissionRate = 0.10

var AllowedPaymentMethods = map[string]bool{
	"card":           true,
	"mobile_money":   true,
	"bank_transfer":  true,
	"cash_on_pickup": true,
}

type Payment struct {
	ID                 string
	ReservationID      string
	ClientID           string
	TransporteurID     string
	Amount             float64
	Currency           string
	PaymentMethod      string
	CommissionAmount   float64
	TransporteurAmount float64
	Status             string
	ProcessedAt        time.Time
	CreatedAt          time.Time
}

// SplitAmount computes the platform commission and the transporteur payout.
func SplitAmount(amount float64) (commission, transporteur float64) {
	commission = amount * CommissionRate
	return commission, amount - commission
}
