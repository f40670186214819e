package dto

type TripCreateRequest struct {
	DepartureCity     *string  `json:"departure_city"`
	DestinationCity   *string  `json:"destination_city"`
	DepartureDate     *string  `json:"departure_date"`
	ArrivalDate       string   `json:"arrival_date"`
	TransportType     *string  `json:"transport_type"`
	AvailableWeightKg *float64 `json:"available_weight_kg"`
	AvailableVolumeM3 float64  `json:"available_volume_m3"`
	PricePerKg        *float64 `json:"price_per_kg"`
	VehicleInfo       string   `json:"vehicle_info"`
}

type TripUpdateRequest struct {
	DepartureDate     *string  `json:"departure_date"`
	ArrivalDate       *string  `json:"arrival_date"`
	AvailableWeightKg *float64 `json:"available_weight_kg"`
	AvailableVolumeM3 *float64 `json:"available_volume_m3"`
	PricePerKg        *float64 `json:"price_per_kg"`
	VehicleInfo       *string  `json:"vehicle_info"`
	Status            *string  `json:"status"`
}

type TripResponse struct {
	ID                string  `json:"id"`
	TransporteurID    string  `json:"transporteur_id"`
	DepartureCity     string  `json:"departure_city"`
	DestinationCity   string  `json:"destination_city"`
	DepartureDate     string  `json:"departure_date"`
	ArrivalDate       string  `json:"arrival_date,omitempty"`
	TransportType     string  `json:"transport_type"`
	AvailableWeightKg float64 `json:"available_weight_kg"`
	AvailableVolumeM3 float64 `json:"available_volume_m3,omitempty"`
	PricePerKg        float64 `json:"price_per_kg"`
	VehicleInfo       string  `json:"vehicle_info,omitempty"`
	Status            string  `json:"status"`
	CreatedAt         string  `json:"created_at"`
}

type TripListResponse struct {
	Trips      []TripResponse `json:"trips"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// ListQuery carries the server-side filters shared by the trip and
// expedition catalogs. Zero values and "all" mean no filtering.
type ListQuery struct {
	Status        string
	TransportType string
	City          string
	MineOnly      bool
	UserID        string
	Cursor        string
	Limit         int
}
