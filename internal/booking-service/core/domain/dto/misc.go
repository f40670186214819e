package dto

type ReviewCreateRequest struct {
	Rating  *int   `json:"rating"`
	Comment string `json:"comment"`
}

type ReviewResponse struct {
	ID            string `json:"id"`
	ReservationID string `json:"reservation_id"`
	ReviewerID    string `json:"reviewer_id"`
	ReviewedID    string `json:"reviewed_id"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment,omitempty"`
	CreatedAt     string `json:"created_at"`
}

type NotificationResponse struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
	Read      bool           `json:"read"`
	CreatedAt string         `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int                    `json:"unread_count"`
}

type MessageSendRequest struct {
	Message *string `json:"message"`
}

type MessageResponse struct {
	ID            string `json:"id"`
	ReservationID string `json:"reservation_id"`
	SenderID      string `json:"sender_id"`
	Message       string `json:"message"`
	IsRead        bool   `json:"is_read"`
	CreatedAt     string `json:"created_at"`
}

// DashboardStats is the role-scoped overview shown on the dashboards.
type DashboardStats struct {
	ExpeditionCount    int            `json:"expedition_count,omitempty"`
	TripCount          int            `json:"trip_count,omitempty"`
	ActiveReservations int            `json:"active_reservations"`
	DeliveredCount     int            `json:"delivered_count"`
	TotalAmount        float64        `json:"total_amount"`
	TopRoutes          []RouteCount   `json:"top_routes,omitempty"`
}

type RouteCount struct {
	DepartureCity   string `json:"departure_city"`
	DestinationCity string `json:"destination_city"`
	Count           int    `json:"count"`
}
