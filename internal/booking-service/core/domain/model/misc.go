package model

import "time"

type DeliveryProof struct {
	ID             string
	ReservationID  string
	TransporteurID string
	PhotoURL       string
	RecipientName  string
	SignatureData  string
	Notes          string
	DeliveredAt    time.Time
}

type Review struct {
	ID            string
	ReservationID string
	ReviewerID    string
	ReviewedID    string
	Rating        int
	Comment       string
	CreatedAt     time.Time
}

type Notification struct {
	ID        string
	UserID    string
	Type      string
	Title     string
	Message   string
	Data      map[string]any
	Read      bool
	CreatedAt time.Time
}

type Message struct {
	ID            string
	ReservationID string
	SenderID      string
	Message       string
	IsRead        bool
	CreatedAt     time.Time
}
