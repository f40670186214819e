package dto

type ExpeditionCreateRequest struct {
	Title           *string  `json:"title"`
	ContentType     *string  `json:"content_type"`
	Description     string   `json:"description"`
	WeightKg        *float64 `json:"weight_kg"`
	DimensionsCm    string   `json:"dimensions_cm"`
	DepartureCity   *string  `json:"departure_city"`
	DestinationCity *string  `json:"destination_city"`
	PreferredDate   string   `json:"preferred_date"`
	TransportType   string   `json:"transport_type"`
	MaxBudget       float64  `json:"max_budget"`
	Photos          []string `json:"photos"`
}

type ExpeditionUpdateRequest struct {
	Title           *string  `json:"title"`
	Description     *string  `json:"description"`
	WeightKg        *float64 `json:"weight_kg"`
	DimensionsCm    *string  `json:"dimensions_cm"`
	PreferredDate   *string  `json:"preferred_date"`
	TransportType   *string  `json:"transport_type"`
	MaxBudget       *float64 `json:"max_budget"`
}

type ExpeditionResponse struct {
	ID              string   `json:"id"`
	ClientID        string   `json:"client_id"`
	Title           string   `json:"title"`
	ContentType     string   `json:"content_type"`
	Description     string   `json:"description,omitempty"`
	WeightKg        float64  `json:"weight_kg"`
	DimensionsCm    string   `json:"dimensions_cm,omitempty"`
	DepartureCity   string   `json:"departure_city"`
	DestinationCity string   `json:"destination_city"`
	PreferredDate   string   `json:"preferred_date,omitempty"`
	TransportType   string   `json:"transport_type,omitempty"`
	MaxBudget       float64  `json:"max_budget,omitempty"`
	Photos          []string `json:"photos,omitempty"`
	Status          string   `json:"status"`
	CreatedAt       string   `json:"created_at"`
}

type ExpeditionListResponse struct {
	Expeditions []ExpeditionResponse `json:"expeditions"`
	NextCursor  string               `json:"next_cursor,omitempty"`
}
