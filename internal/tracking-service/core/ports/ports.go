package ports

import (
	"context"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/tracking-service/core/domain/dto"
	messagebrokerdto "github.com/fami1212/maroc-senegal-parcel-connect/internal/tracking-service/core/domain/message_broker_dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/tracking-service/core/domain/model"
)

type ITrackingRepo interface {
	Append(ctx context.Context, p model.TrackingPoint) (model.TrackingPoint, error)
	// ListForReservation returns breadcrumbs newest first.
	ListForReservation(ctx context.Context, reservationID string) ([]model.TrackingPoint, error)
}

// IReservationGuard reads just enough of a reservation to authorize
// tracking access. The booking service owns the rest.
type IReservationGuard interface {
	Get(ctx context.Context, reservationID string) (model.Reservation, error)
}

// IGeocoder resolves coordinates into a human readable address.
type IGeocoder interface {
	Reverse(ctx context.Context, lat, lng float64) (string, error)
}

type IEventBroker interface {
	PublishTrackingUpdate(ctx context.Context, msg messagebrokerdto.TrackingUpdate) error
	IsAlive() bool
	Close() error
}

type ITrackingService interface {
	Record(ctx context.Context, userID, reservationID string, req dto.TrackingCreateRequest) (dto.TrackingPointResponse, error)
	List(ctx context.Context, userID, reservationID string) ([]dto.TrackingPointResponse, error)
}
