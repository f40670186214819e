package model

import "time"

const (
	TripOpen       = "open"
	TripFull       = "full"
	TripInProgress = "in_progress"
	TripCompleted  = "completed"
	TripCancelled  = "cancelled"
)

const (
	TransportAvion   = "avion"
	TransportVoiture = "voiture"
	TransportCamion  = "camion"
	TransportBus     = "bus"
)

var AllowedTransportTypes = map[string]bool{
	TransportAvion:   true,
	TransportVoiture: true,
	TransportCamion:  true,
	TransportBus:     true,
}

var AllowedTripStatuses = map[string]bool{
	TripOpen:       true,
	TripFull:       true,
	TripInProgress: true,
	TripCompleted:  true,
	TripCancelled:  true,
}

type Trip struct {
	ID                string
	TransporteurID    string
	DepartureCity     string
	DestinationCity   string
	DepartureDate     time.Time
	ArrivalDate       time.Time
	TransportType     string
	AvailableWeightKg float64
	AvailableVolumeM3 float64
	PricePerKg        float64
	VehicleInfo       string
	Status            string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
