package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/mylogger"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/tracking-service/core/domain/dto"
	messagebrokerdto "github.com/fami1212/maroc-senegal-parcel-connect/internal/tracking-service/core/domain/message_broker_dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/tracking-service/core/domain/model"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/tracking-service/core/myerrors"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/tracking-service/core/ports"
)

const RoleTransporteur = "transporteur"

var (
	ErrFieldIsEmpty   = errors.New("field is empty")
	ErrBadCoordinates = errors.New("coordinates out of range")
	ErrUnknownStatus  = errors.New("unknown tracking status")
)

type TrackingService struct {
	ctx      context.Context
	mylog    mylogger.Logger
	repo     ports.ITrackingRepo
	guard    ports.IReservationGuard
	geocoder ports.IGeocoder
	mb       ports.IEventBroker
}

func NewTrackingService(ctx context.Context, mylog mylogger.Logger, repo ports.ITrackingRepo,
	guard ports.IReservationGuard, geocoder ports.IGeocoder, mb ports.IEventBroker) ports.ITrackingService {
	return &TrackingService{
		ctx:      ctx,
		mylog:    mylog,
		repo:     repo,
		guard:    guard,
		geocoder: geocoder,
		mb:       mb,
	}
}

func (ts *TrackingService) Record(_ context.Context, userID, reservationID string, req dto.TrackingCreateRequest) (dto.TrackingPointResponse, error) {
	log := ts.mylog.Action("RecordTrackingPoint")

	ctx, cancel := context.WithTimeout(ts.ctx, time.Second*15)
	defer cancel()

	if req.Latitude == nil || req.Longitude == nil || req.Status == nil {
		return dto.TrackingPointResponse{}, fmt.Errorf("latitude, longitude and status are required: %w", ErrFieldIsEmpty)
	}
	if *req.Latitude < -90 || *req.Latitude > 90 || *req.Longitude < -180 || *req.Longitude > 180 {
		return dto.TrackingPointResponse{}, ErrBadCoordinates
	}
	if !model.AllowedPointStatuses[*req.Status] {
		return dto.TrackingPointResponse{}, fmt.Errorf("%q: %w", *req.Status, ErrUnknownStatus)
	}

	reservation, err := ts.guard.Get(ctx, reservationID)
	if err != nil {
		return dto.TrackingPointResponse{}, err
	}
	if reservation.TransporteurID != userID {
		return dto.TrackingPointResponse{}, myerrors.ErrForbidden
	}
	if !reservation.Trackable() {
		return dto.TrackingPointResponse{}, myerrors.ErrNotTrackable
	}

	// Address is cosmetic, a geocoder outage must not block the breadcrumb.
	address, err := ts.geocoder.Reverse(ctx, *req.Latitude, *req.Longitude)
	if err != nil {
		log.Warn("reverse geocoding failed", "reservation_id", reservationID)
		address = fmt.Sprintf("%f, %f", *req.Latitude, *req.Longitude)
	}

	point, err := ts.repo.Append(ctx, model.TrackingPoint{
		ReservationID:  reservationID,
		TransporteurID: userID,
		Latitude:       *req.Latitude,
		Longitude:      *req.Longitude,
		Status:         *req.Status,
		Address:        address,
		Notes:          req.Notes,
	})
	if err != nil {
		log.Error("cannot store tracking point", err, "reservation_id", reservationID)
		return dto.TrackingPointResponse{}, err
	}

	if err := ts.mb.PublishTrackingUpdate(ctx, messagebrokerdto.TrackingUpdate{
		ReservationID:  reservationID,
		TransporteurID: reservation.TransporteurID,
		ClientID:       reservation.ClientID,
		Latitude:       point.Latitude,
		Longitude:      point.Longitude,
		Status:         point.Status,
		Address:        point.Address,
		Notes:          point.Notes,
		RecordedAt:     point.CreatedAt.Format(time.RFC3339),
	}); err != nil {
		log.Error("cannot publish tracking update", err, "reservation_id", reservationID)
	}

	log.Info("tracking point recorded", "reservation_id", reservationID, "status", point.Status)
	return toPointResponse(point), nil
}

func (ts *TrackingService) List(_ context.Context, userID, reservationID string) ([]dto.TrackingPointResponse, error) {
	ctx, cancel := context.WithTimeout(ts.ctx, time.Second*15)
	defer cancel()

	reservation, err := ts.guard.Get(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if !reservation.IsParty(userID) {
		return nil, myerrors.ErrForbidden
	}

	points, err := ts.repo.ListForReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	res := make([]dto.TrackingPointResponse, 0, len(points))
	for _, p := range points {
		res = append(res, toPointResponse(p))
	}
	return res, nil
}

func toPointResponse(p model.TrackingPoint) dto.TrackingPointResponse {
	return dto.TrackingPointResponse{
		ID:            p.ID,
		ReservationID: p.ReservationID,
		Latitude:      p.Latitude,
		Longitude:     p.Longitude,
		Status:        p.Status,
		Address:       p.Address,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
}
