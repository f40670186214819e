package ports

import (
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/dto"
)

type IExpeditionService interface {
	Create(clientID string, req dto.ExpeditionCreateRequest) (dto.ExpeditionResponse, error)
	Get(id string) (dto.ExpeditionResponse, error)
	List(q dto.ListQuery) (dto.ExpeditionListResponse, error)
	Update(clientID, id string, req dto.ExpeditionUpdateRequest) (dto.ExpeditionResponse, error)
	Delete(clientID, id string) error
}

type ITripService interface {
	Create(transporteurID string, req dto.TripCreateRequest) (dto.TripResponse, error)
	Get(id string) (dto.TripResponse, error)
	List(q dto.ListQuery) (dto.TripListResponse, error)
	Update(transporteurID, id string, req dto.TripUpdateRequest) (dto.TripResponse, error)
	Delete(transporteurID, id string) error

	// ReconcileStatuses derives in_progress/completed from trip dates.
	ReconcileStatuses() error
}

type IReservationService interface {
	Book(clientID string, req dto.ReservationCreateRequest) (dto.ReservationResponse, error)
	Get(userID, id string) (dto.ReservationResponse, error)
	ListForUser(userID, role string) ([]dto.ReservationResponse, error)
	UpdateStatus(userID, role, id string, req dto.ReservationStatusRequest) (dto.ReservationResponse, error)
	SubmitProof(transporteurID, id string, req dto.ProofSubmitRequest) (dto.ProofResponse, error)
	GetProof(userID, id string) (dto.ProofResponse, error)
}

type IPaymentService interface {
	Create(clientID, reservationID string, req dto.PaymentCreateRequest) (dto.PaymentResponse, error)
	ListForUser(userID, role string) ([]dto.PaymentResponse, error)
	Earnings(transporteurID string) (dto.EarningsResponse, error)
}

type IReviewService interface {
	Create(reviewerID, reservationID string, req dto.ReviewCreateRequest) (dto.ReviewResponse, error)
	ListForUser(reviewedID string) ([]dto.ReviewResponse, error)
}

type INotificationService interface {
	List(userID string) (dto.NotificationListResponse, error)
	MarkRead(userID, id string) error
	MarkAllRead(userID string) error
	Delete(userID, id string) error

	// Notify is the fire-and-forget entry point used by the other services:
	// it stores the row, pushes a websocket event and never fails the caller.
	Notify(userID, notifType, title, message string, data map[string]any)
}

type IMessageService interface {
	Send(senderID, reservationID string, req dto.MessageSendRequest) (dto.MessageResponse, error)
	List(userID, reservationID string) ([]dto.MessageResponse, error)
}

type IStatsService interface {
	Dashboard(userID, role string) (dto.DashboardStats, error)
}
