package ports

import (
	"context"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/model"
)

type IExpeditionRepo interface {
	Create(ctx context.Context, m model.Expedition) (model.Expedition, error)
	GetByID(ctx context.Context, id string) (model.Expedition, error)
	List(ctx context.Context, q dto.ListQuery) ([]model.Expedition, string, error)
	Update(ctx context.Context, m model.Expedition) (model.Expedition, error)
	Delete(ctx context.Context, id, clientID string) error
}

type ITripRepo interface {
	Create(ctx context.Context, m model.Trip) (model.Trip, error)
	GetByID(ctx context.Context, id string) (model.Trip, error)
	List(ctx context.Context, q dto.ListQuery) ([]model.Trip, string, error)
	Update(ctx context.Context, m model.Trip) (model.Trip, error)
	Delete(ctx context.Context, id, transporteurID string) error

	// Reconciliation of derived statuses, run by the scheduler.
	MarkDeparted(ctx context.Context) (int64, error)
	MarkCompleted(ctx context.Context) (int64, error)
}

type IReservationRepo interface {
	// Book inserts the reservation and recomputes the trip's derived state in
	// one transaction: the trip must still be open with enough remaining
	// capacity, and flips to full when this booking exhausts it.
	Book(ctx context.Context, m model.Reservation, weightKg float64) (model.Reservation, error)

	GetByID(ctx context.Context, id string) (model.Reservation, error)
	ListForUser(ctx context.Context, userID, role string) ([]model.Reservation, error)

	// UpdateStatus performs a version-checked status write. A stale version
	// yields ErrVersionConflict instead of silently overwriting.
	UpdateStatus(ctx context.Context, id, status string, version int64) (model.Reservation, error)

	// ConfirmIfPending is used by the payment settler, which holds no version.
	ConfirmIfPending(ctx context.Context, id string) (model.Reservation, bool, error)

	// UpsertProofAndDeliver stores the delivery proof (insert or overwrite,
	// one row per reservation) and forces the reservation to delivered.
	UpsertProofAndDeliver(ctx context.Context, proof model.DeliveryProof) (model.DeliveryProof, model.Reservation, error)
	GetProof(ctx context.Context, reservationID string) (model.DeliveryProof, error)
}

type IPaymentRepo interface {
	Create(ctx context.Context, m model.Payment) (model.Payment, error)
	SetStatus(ctx context.Context, id, status string) error
	ListForUser(ctx context.Context, userID, role string) ([]model.Payment, error)
	Earnings(ctx context.Context, transporteurID string) (dto.EarningsResponse, error)
}

type IReviewRepo interface {
	Create(ctx context.Context, m model.Review) (model.Review, error)
	ListForUser(ctx context.Context, reviewedID string, limit int) ([]model.Review, error)
}

type INotificationRepo interface {
	Create(ctx context.Context, m model.Notification) (model.Notification, error)
	ListForUser(ctx context.Context, userID string, limit int) ([]model.Notification, int, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, id, userID string) error
}

type IMessageRepo interface {
	Create(ctx context.Context, m model.Message) (model.Message, error)
	ListForReservation(ctx context.Context, reservationID string) ([]model.Message, error)
	MarkRead(ctx context.Context, reservationID, readerID string) error
}

type IStatsRepo interface {
	Dashboard(ctx context.Context, userID, role string) (dto.DashboardStats, error)
}

// IProfileGuard exposes the single profile fact booking cares about: whether
// a transporteur passed KYC before it may confirm reservations.
type IProfileGuard interface {
	IsVerified(ctx context.Context, userID string) (bool, error)
}
