package model

import "time"

type Expedition struct {
	ID              string
	ClientID        string
	Title           string
	ContentType     string
	Description     string
	WeightKg        float64
	DimensionsCm    string
	DepartureCity   string
	DestinationCity string
	PreferredDate   time.Time
	TransportType   string
	MaxBudget       float64
	Photos          []string
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
