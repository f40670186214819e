package model

import "time"

const (
	RoleClient       = "client"
	RoleTransporteur = "transporteur"
)

var AllowedRoles = map[string]bool{
	RoleClient:       true,
	RoleTransporteur: true,
}

const (
	KycPending  = "pending"
	KycVerified = "verified"
	KycRejected = "rejected"
)

type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	Role         string
	CreatedAt    time.Time
}

type Profile struct {
	ID         string
	UserID     string
	FirstName  string
	LastName   string
	Phone      string
	Whatsapp   string
	AvatarURL  string
	IsVerified bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type KycDocument struct {
	ID             string
	UserID         string
	DocumentType   string
	DocumentNumber string
	FileURL        string
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
