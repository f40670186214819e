package services

import (
	"context"
	"errors"
	"testing"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/model"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/myerrors"
)

func float64Ptr(v float64) *float64 { return &v }

func validTripRequest() dto.TripCreateRequest {
	return dto.TripCreateRequest{
		DepartureCity:     strPtr("Casablanca"),
		DestinationCity:   strPtr("Dakar"),
		DepartureDate:     strPtr("2026-09-10"),
		ArrivalDate:       "2026-09-12",
		TransportType:     strPtr("camion"),
		AvailableWeightKg: float64Ptr(120),
		PricePerKg:        float64Ptr(6),
	}
}

func TestCreateTripValidation(t *testing.T) {
	tripRepo := &mockTripRepo{
		getByIDFn: func(ctx context.Context, id string) (model.Trip, error) {
			return model.Trip{}, nil
		},
	}
	svc := NewTripService(context.Background(), testLogger(), tripRepo)

	cases := []struct {
		name   string
		mutate func(*dto.TripCreateRequest)
		want   error
	}{
		{"missing departure city", func(r *dto.TripCreateRequest) { r.DepartureCity = nil }, ErrEmptyField},
		{"zero weight", func(r *dto.TripCreateRequest) { r.AvailableWeightKg = float64Ptr(0) }, ErrInvalidWeight},
		{"negative price", func(r *dto.TripCreateRequest) { r.PricePerKg = float64Ptr(-1) }, ErrInvalidPrice},
		{"bad transport", func(r *dto.TripCreateRequest) { r.TransportType = strPtr("charrette") }, ErrUnknownStatus},
		{"garbled date", func(r *dto.TripCreateRequest) { r.DepartureDate = strPtr("someday") }, ErrInvalidDate},
		{"arrival before departure", func(r *dto.TripCreateRequest) { r.ArrivalDate = "2026-09-01" }, ErrInvalidDate},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validTripRequest()
			tc.mutate(&req)
			if _, err := svc.Create("trans-1", req); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestCreateTripStartsOpen(t *testing.T) {
	svc := NewTripService(context.Background(), testLogger(), &mockTripRepo{})

	res, err := svc.Create("trans-1", validTripRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if res.Status != model.TripOpen {
		t.Errorf("status = %q, want open", res.Status)
	}
	if res.TransporteurID != "trans-1" {
		t.Errorf("transporteur_id = %q", res.TransporteurID)
	}
}

func TestUpdateTripOnlyAcceptsCancellation(t *testing.T) {
	tripRepo := &mockTripRepo{
		getByIDFn: func(ctx context.Context, id string) (model.Trip, error) {
			return model.Trip{ID: id, TransporteurID: "trans-1", Status: model.TripOpen}, nil
		},
	}
	svc := NewTripService(context.Background(), testLogger(), tripRepo)

	_, err := svc.Update("trans-1", "trip-1", dto.TripUpdateRequest{Status: strPtr(model.TripInProgress)})
	if !errors.Is(err, myerrors.ErrBadTransition) {
		t.Fatalf("derived status write: err = %v, want ErrBadTransition", err)
	}

	res, err := svc.Update("trans-1", "trip-1", dto.TripUpdateRequest{Status: strPtr(model.TripCancelled)})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if res.Status != model.TripCancelled {
		t.Errorf("status = %q, want cancelled", res.Status)
	}
}

func TestUpdateTripForbidsOtherTransporteur(t *testing.T) {
	tripRepo := &mockTripRepo{
		getByIDFn: func(ctx context.Context, id string) (model.Trip, error) {
			return model.Trip{ID: id, TransporteurID: "owner"}, nil
		},
	}
	svc := NewTripService(context.Background(), testLogger(), tripRepo)

	_, err := svc.Update("intruder", "trip-1", dto.TripUpdateRequest{VehicleInfo: strPtr("van")})
	if !errors.Is(err, myerrors.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestReconcileStatuses(t *testing.T) {
	tripRepo := &mockTripRepo{departed: 2, completed: 1}
	svc := NewTripService(context.Background(), testLogger(), tripRepo)

	if err := svc.ReconcileStatuses(); err != nil {
		t.Fatalf("ReconcileStatuses: %v", err)
	}
}
