package websocketdto

import "encoding/json"

const (
	EventAuth              = "auth"
	EventNotification      = "notification_created"
	EventMessage           = "message_received"
	EventReservationStatus = "reservation_status_update"
	EventTrackingUpdate    = "tracking_update"
)

type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type AuthMessage struct {
	Token string `json:"token"`
}

type ReservationStatusUpdate struct {
	ReservationID string `json:"reservation_id"`
	TrackingCode  string `json:"tracking_code"`
	Status        string `json:"status"`
	Version       int64  `json:"version"`
	CorrelationID string `json:"correlation_id"`
}

type TrackingUpdate struct {
	ReservationID string  `json:"reservation_id"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	Status        string  `json:"status"`
	Address       string  `json:"address,omitempty"`
	RecordedAt    string  `json:"recorded_at"`
}

type MessageReceived struct {
	ReservationID string `json:"reservation_id"`
	SenderID      string `json:"sender_id"`
	Message       string `json:"message"`
	SentAt        string `json:"sent_at"`
}
