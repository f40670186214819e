package services

import (
	"context"
	"fmt"
	"time"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/model"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/myerrors"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/ports"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/mylogger"
)

type TripService struct {
	ctx      context.Context
	mylog    mylogger.Logger
	tripRepo ports.ITripRepo
}

func NewTripService(ctx context.Context, mylog mylogger.Logger, tripRepo ports.ITripRepo) ports.ITripService {
	return &TripService{
		ctx:      ctx,
		mylog:    mylog,
		tripRepo: tripRepo,
	}
}

func (ts *TripService) Create(transporteurID string, req dto.TripCreateRequest) (dto.TripResponse, error) {
	log := ts.mylog.Action("CreateTrip")

	if err := validateTripRequest(req); err != nil {
		return dto.TripResponse{}, err
	}

	departure, err := parseDate(*req.DepartureDate)
	if err != nil {
		return dto.TripResponse{}, err
	}
	arrival, err := parseDate(req.ArrivalDate)
	if err != nil {
		return dto.TripResponse{}, err
	}
	if !arrival.IsZero() && arrival.Before(departure) {
		return dto.TripResponse{}, fmt.Errorf("arrival_date before departure_date: %w", ErrInvalidDate)
	}

	m := model.Trip{
		TransporteurID:    transporteurID,
		DepartureCity:     *req.DepartureCity,
		DestinationCity:   *req.DestinationCity,
		DepartureDate:     departure,
		ArrivalDate:       arrival,
		TransportType:     *req.TransportType,
		AvailableWeightKg: *req.AvailableWeightKg,
		AvailableVolumeM3: req.AvailableVolumeM3,
		PricePerKg:        *req.PricePerKg,
		VehicleInfo:       req.VehicleInfo,
		Status:            model.TripOpen,
	}

	ctx, cancel := context.WithTimeout(ts.ctx, time.Second*15)
	defer cancel()

	created, err := ts.tripRepo.Create(ctx, m)
	if err != nil {
		log.Error("cannot create trip", err)
		return dto.TripResponse{}, err
	}

	log.Info("trip created", "trip_id", created.ID,
		"route", created.DepartureCity+" -> "+created.DestinationCity)
	return toTripResponse(created), nil
}

func (ts *TripService) Get(id string) (dto.TripResponse, error) {
	ctx, cancel := context.WithTimeout(ts.ctx, time.Second*15)
	defer cancel()

	m, err := ts.tripRepo.GetByID(ctx, id)
	if err != nil {
		return dto.TripResponse{}, err
	}
	return toTripResponse(m), nil
}

func (ts *TripService) List(q dto.ListQuery) (dto.TripListResponse, error) {
	ctx, cancel := context.WithTimeout(ts.ctx, time.Second*15)
	defer cancel()

	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}

	list, next, err := ts.tripRepo.List(ctx, q)
	if err != nil {
		ts.mylog.Action("ListTrips").Error("cannot list trips", err)
		return dto.TripListResponse{}, err
	}

	res := dto.TripListResponse{NextCursor: next}
	for _, m := range list {
		res.Trips = append(res.Trips, toTripResponse(m))
	}
	return res, nil
}

func (ts *TripService) Update(transporteurID, id string, req dto.TripUpdateRequest) (dto.TripResponse, error) {
	log := ts.mylog.Action("UpdateTrip")

	ctx, cancel := context.WithTimeout(ts.ctx, time.Second*15)
	defer cancel()

	m, err := ts.tripRepo.GetByID(ctx, id)
	if err != nil {
		return dto.TripResponse{}, err
	}
	if m.TransporteurID != transporteurID {
		return dto.TripResponse{}, myerrors.ErrForbidden
	}

	if req.DepartureDate != nil {
		departure, err := parseDate(*req.DepartureDate)
		if err != nil {
			return dto.TripResponse{}, err
		}
		m.DepartureDate = departure
	}
	if req.ArrivalDate != nil {
		arrival, err := parseDate(*req.ArrivalDate)
		if err != nil {
			return dto.TripResponse{}, err
		}
		m.ArrivalDate = arrival
	}
	if req.AvailableWeightKg != nil {
		if *req.AvailableWeightKg <= 0 {
			return dto.TripResponse{}, ErrInvalidWeight
		}
		m.AvailableWeightKg = *req.AvailableWeightKg
	}
	if req.AvailableVolumeM3 != nil {
		m.AvailableVolumeM3 = *req.AvailableVolumeM3
	}
	if req.PricePerKg != nil {
		if *req.PricePerKg <= 0 {
			return dto.TripResponse{}, ErrInvalidPrice
		}
		m.PricePerKg = *req.PricePerKg
	}
	if req.VehicleInfo != nil {
		m.VehicleInfo = *req.VehicleInfo
	}
	if req.Status != nil {
		// Only cancellation is accepted here, the remaining statuses are
		// derived from bookings and dates.
		if *req.Status != model.TripCancelled {
			return dto.TripResponse{}, fmt.Errorf("status %q: %w", *req.Status, myerrors.ErrBadTransition)
		}
		m.Status = model.TripCancelled
	}

	updated, err := ts.tripRepo.Update(ctx, m)
	if err != nil {
		log.Error("cannot update trip", err, "trip_id", id)
		return dto.TripResponse{}, err
	}

	log.Info("trip updated", "trip_id", id, "status", updated.Status)
	return toTripResponse(updated), nil
}

func (ts *TripService) Delete(transporteurID, id string) error {
	ctx, cancel := context.WithTimeout(ts.ctx, time.Second*15)
	defer cancel()

	if err := ts.tripRepo.Delete(ctx, id, transporteurID); err != nil {
		ts.mylog.Action("DeleteTrip").Error("cannot delete trip", err, "trip_id", id)
		return err
	}
	return nil
}

// ReconcileStatuses moves open/full trips whose departure date passed to
// in_progress and in_progress trips whose arrival date passed to completed.
func (ts *TripService) ReconcileStatuses() error {
	log := ts.mylog.Action("ReconcileTripStatuses")

	ctx, cancel := context.WithTimeout(ts.ctx, time.Second*30)
	defer cancel()

	departed, err := ts.tripRepo.MarkDeparted(ctx)
	if err != nil {
		log.Error("cannot mark departed trips", err)
		return err
	}
	completed, err := ts.tripRepo.MarkCompleted(ctx)
	if err != nil {
		log.Error("cannot mark completed trips", err)
		return err
	}

	if departed > 0 || completed > 0 {
		log.Info("trip statuses reconciled", "departed", departed, "completed", completed)
	}
	return nil
}

func validateTripRequest(req dto.TripCreateRequest) error {
	if err := validateCity("departure_city", req.DepartureCity); err != nil {
		return err
	}
	if err := validateCity("destination_city", req.DestinationCity); err != nil {
		return err
	}
	if req.DepartureDate == nil || *req.DepartureDate == "" {
		return fmt.Errorf("departure_date: %w", ErrEmptyField)
	}
	if err := validateTransportType(req.TransportType); err != nil {
		return err
	}
	if req.AvailableWeightKg == nil {
		return fmt.Errorf("available_weight_kg: %w", ErrEmptyField)
	}
	if *req.AvailableWeightKg <= 0 {
		return ErrInvalidWeight
	}
	if req.PricePerKg == nil {
		return fmt.Errorf("price_per_kg: %w", ErrEmptyField)
	}
	if *req.PricePerKg <= 0 {
		return ErrInvalidPrice
	}
	return nil
}

func toTripResponse(m model.Trip) dto.TripResponse {
	return dto.TripResponse{
		ID:                m.ID,
		TransporteurID:    m.TransporteurID,
		DepartureCity:     m.DepartureCity,
		DestinationCity:   m.DestinationCity,
		DepartureDate:     formatTime(m.DepartureDate),
		ArrivalDate:       formatTime(m.ArrivalDate),
		TransportType:     m.TransportType,
		AvailableWeightKg: m.AvailableWeightKg,
		AvailableVolumeM3: m.AvailableVolumeM3,
		PricePerKg:        m.PricePerKg,
		VehicleInfo:       m.VehicleInfo,
		Status:            m.Status,
		CreatedAt:         formatTime(m.CreatedAt),
	}
}
