package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/model"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/myerrors"
)

func strPtr(s string) *string { return &s }
func int64Ptr(v int64) *int64 { return &v }

func newReservationService(t *testing.T, resRepo *mockReservationRepo, expRepo *mockExpeditionRepo,
	tripRepo *mockTripRepo, guard *mockProfileGuard, broker *mockBroker,
	notifier *mockNotifier, files *mockFileStore) *ReservationService {
	t.Helper()
	svc := NewReservationService(context.Background(), testLogger(),
		resRepo, expRepo, tripRepo, guard, broker, notifier, files)
	return svc.(*ReservationService)
}

func TestBookComputesPriceFromTripAndExpedition(t *testing.T) {
	expRepo := &mockExpeditionRepo{
		getByIDFn: func(ctx context.Context, id string) (model.Expedition, error) {
			return model.Expedition{ID: id, ClientID: "client-1", WeightKg: 12.5}, nil
		},
	}
	tripRepo := &mockTripRepo{
		getByIDFn: func(ctx context.Context, id string) (model.Trip, error) {
			return model.Trip{
				ID:              id,
				TransporteurID:  "trans-1",
				DepartureCity:   "Casablanca",
				DestinationCity: "Dakar",
				PricePerKg:      8,
				Status:          model.TripOpen,
			}, nil
		},
	}

	var booked model.Reservation
	resRepo := &mockReservationRepo{
		bookFn: func(ctx context.Context, m model.Reservation, weightKg float64) (model.Reservation, error) {
			booked = m
			m.ID = "res-1"
			m.Version = 1
			return m, nil
		},
	}
	broker := &mockBroker{}
	notifier := &mockNotifier{}

	svc := newReservationService(t, resRepo, expRepo, tripRepo, &mockProfileGuard{}, broker, notifier, &mockFileStore{})

	res, err := svc.Book("client-1", dto.ReservationCreateRequest{
		ExpeditionID: strPtr("exp-1"),
		TripID:       strPtr("trip-1"),
	})
	if err != nil {
		t.Fatalf("Book: %v", err)
	}

	if res.TotalPrice != 100 {
		t.Errorf("total price = %v, want 100", res.TotalPrice)
	}
	if booked.TotalPrice != 100 {
		t.Errorf("stored total price = %v, want 100", booked.TotalPrice)
	}
	if booked.Status != model.StatusPending {
		t.Errorf("initial status = %q, want pending", booked.Status)
	}
	if !strings.HasPrefix(booked.TrackingCode, "GC-") {
		t.Errorf("tracking code %q does not carry the GC prefix", booked.TrackingCode)
	}
	if broker.count() != 1 {
		t.Errorf("published %d status events, want 1", broker.count())
	}

	sent := notifier.sent()
	if len(sent) != 1 || sent[0].userID != "trans-1" {
		t.Errorf("transporteur was not notified: %+v", sent)
	}
}

func TestBookRejectsForeignExpedition(t *testing.T) {
	expRepo := &mockExpeditionRepo{
		getByIDFn: func(ctx context.Context, id string) (model.Expedition, error) {
			return model.Expedition{ID: id, ClientID: "someone-else"}, nil
		},
	}
	tripRepo := &mockTripRepo{
		getByIDFn: func(ctx context.Context, id string) (model.Trip, error) {
			t.Fatal("trip must not be loaded for a foreign expedition")
			return model.Trip{}, nil
		},
	}

	svc := newReservationService(t, &mockReservationRepo{}, expRepo, tripRepo,
		&mockProfileGuard{}, &mockBroker{}, &mockNotifier{}, &mockFileStore{})

	_, err := svc.Book("client-1", dto.ReservationCreateRequest{
		ExpeditionID: strPtr("exp-1"),
		TripID:       strPtr("trip-1"),
	})
	if !errors.Is(err, myerrors.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestBookRejectsClosedTrip(t *testing.T) {
	expRepo := &mockExpeditionRepo{
		getByIDFn: func(ctx context.Context, id string) (model.Expedition, error) {
			return model.Expedition{ID: id, ClientID: "client-1", WeightKg: 3}, nil
		},
	}
	tripRepo := &mockTripRepo{
		getByIDFn: func(ctx context.Context, id string) (model.Trip, error) {
			return model.Trip{ID: id, Status: model.TripFull}, nil
		},
	}

	svc := newReservationService(t, &mockReservationRepo{}, expRepo, tripRepo,
		&mockProfileGuard{}, &mockBroker{}, &mockNotifier{}, &mockFileStore{})

	_, err := svc.Book("client-1", dto.ReservationCreateRequest{
		ExpeditionID: strPtr("exp-1"),
		TripID:       strPtr("trip-1"),
	})
	if !errors.Is(err, myerrors.ErrTripNotOpen) {
		t.Fatalf("err = %v, want ErrTripNotOpen", err)
	}
}

func TestUpdateStatusRejectsDelivered(t *testing.T) {
	svc := newReservationService(t, &mockReservationRepo{}, &mockExpeditionRepo{}, &mockTripRepo{},
		&mockProfileGuard{}, &mockBroker{}, &mockNotifier{}, &mockFileStore{})

	_, err := svc.UpdateStatus("trans-1", RoleTransporteur, "res-1", dto.ReservationStatusRequest{
		Status:  strPtr(model.StatusDelivered),
		Version: int64Ptr(1),
	})
	if !errors.Is(err, myerrors.ErrBadTransition) {
		t.Fatalf("err = %v, want ErrBadTransition", err)
	}
}

func TestUpdateStatusClientCanOnlyCancelPending(t *testing.T) {
	reservation := model.Reservation{
		ID:             "res-1",
		ClientID:       "client-1",
		TransporteurID: "trans-1",
		Status:         model.StatusConfirmed,
		Version:        2,
	}
	resRepo := &mockReservationRepo{
		getByIDFn: func(ctx context.Context, id string) (model.Reservation, error) {
			return reservation, nil
		},
	}

	svc := newReservationService(t, resRepo, &mockExpeditionRepo{}, &mockTripRepo{},
		&mockProfileGuard{}, &mockBroker{}, &mockNotifier{}, &mockFileStore{})

	_, err := svc.UpdateStatus("client-1", RoleClient, "res-1", dto.ReservationStatusRequest{
		Status:  strPtr(model.StatusCancelled),
		Version: int64Ptr(2),
	})
	if !errors.Is(err, myerrors.ErrBadTransition) {
		t.Fatalf("confirmed cancel by client: err = %v, want ErrBadTransition", err)
	}

	_, err = svc.UpdateStatus("client-1", RoleClient, "res-1", dto.ReservationStatusRequest{
		Status:  strPtr(model.StatusInTransit),
		Version: int64Ptr(2),
	})
	if !errors.Is(err, myerrors.ErrForbidden) {
		t.Fatalf("forward move by client: err = %v, want ErrForbidden", err)
	}
}

func TestUpdateStatusConfirmRequiresVerifiedTransporteur(t *testing.T) {
	reservation := model.Reservation{
		ID:             "res-1",
		ClientID:       "client-1",
		TransporteurID: "trans-1",
		Status:         model.StatusPending,
		Version:        1,
	}
	resRepo := &mockReservationRepo{
		getByIDFn: func(ctx context.Context, id string) (model.Reservation, error) {
			return reservation, nil
		},
		updateStatusFn: func(ctx context.Context, id, status string, version int64) (model.Reservation, error) {
			r := reservation
			r.Status = status
			r.Version = version + 1
			return r, nil
		},
	}

	guard := &mockProfileGuard{verified: false}
	svc := newReservationService(t, resRepo, &mockExpeditionRepo{}, &mockTripRepo{},
		guard, &mockBroker{}, &mockNotifier{}, &mockFileStore{})

	req := dto.ReservationStatusRequest{
		Status:  strPtr(model.StatusConfirmed),
		Version: int64Ptr(1),
	}
	if _, err := svc.UpdateStatus("trans-1", RoleTransporteur, "res-1", req); !errors.Is(err, myerrors.ErrNotVerified) {
		t.Fatalf("unverified confirm: err = %v, want ErrNotVerified", err)
	}

	guard.verified = true
	res, err := svc.UpdateStatus("trans-1", RoleTransporteur, "res-1", req)
	if err != nil {
		t.Fatalf("verified confirm: %v", err)
	}
	if res.Status != model.StatusConfirmed {
		t.Errorf("status = %q, want confirmed", res.Status)
	}
}

func TestUpdateStatusPropagatesVersionConflict(t *testing.T) {
	resRepo := &mockReservationRepo{
		getByIDFn: func(ctx context.Context, id string) (model.Reservation, error) {
			return model.Reservation{
				ID:             id,
				ClientID:       "client-1",
				TransporteurID: "trans-1",
				Status:         model.StatusConfirmed,
				Version:        3,
			}, nil
		},
		updateStatusFn: func(ctx context.Context, id, status string, version int64) (model.Reservation, error) {
			return model.Reservation{}, myerrors.ErrVersionConflict
		},
	}

	svc := newReservationService(t, resRepo, &mockExpeditionRepo{}, &mockTripRepo{},
		&mockProfileGuard{verified: true}, &mockBroker{}, &mockNotifier{}, &mockFileStore{})

	_, err := svc.UpdateStatus("trans-1", RoleTransporteur, "res-1", dto.ReservationStatusRequest{
		Status:  strPtr(model.StatusInTransit),
		Version: int64Ptr(2),
	})
	if !errors.Is(err, myerrors.ErrVersionConflict) {
		t.Fatalf("err = %v, want ErrVersionConflict", err)
	}
}

func TestSubmitProofValidation(t *testing.T) {
	stored := false
	resRepo := &mockReservationRepo{
		getByIDFn: func(ctx context.Context, id string) (model.Reservation, error) {
			return model.Reservation{
				ID:             id,
				ClientID:       "client-1",
				TransporteurID: "trans-1",
				Status:         model.StatusInTransit,
			}, nil
		},
		getProofFn: func(ctx context.Context, reservationID string) (model.DeliveryProof, error) {
			return model.DeliveryProof{}, myerrors.ErrNotFound
		},
		upsertProofFn: func(ctx context.Context, proof model.DeliveryProof) (model.DeliveryProof, model.Reservation, error) {
			stored = true
			return proof, model.Reservation{}, nil
		},
	}
	files := &mockFileStore{}

	svc := newReservationService(t, resRepo, &mockExpeditionRepo{}, &mockTripRepo{},
		&mockProfileGuard{}, &mockBroker{}, &mockNotifier{}, files)

	cases := []struct {
		name string
		req  dto.ProofSubmitRequest
		want error
	}{
		{"missing recipient", dto.ProofSubmitRequest{Photo: []byte("img"), PhotoMime: "image/jpeg"}, ErrEmptyField},
		{"missing photo", dto.ProofSubmitRequest{RecipientName: "Aissatou"}, ErrEmptyField},
		{"photo not an image", dto.ProofSubmitRequest{RecipientName: "Aissatou", Photo: []byte("%PDF"), PhotoMime: "application/pdf"}, ErrPhotoNotImage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.SubmitProof("trans-1", "res-1", tc.req); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}

	if stored || files.uploads != 0 {
		t.Fatal("rejected proof must not touch storage")
	}
}

func TestSubmitProofDeliversAndNotifiesClient(t *testing.T) {
	var delivered model.DeliveryProof
	resRepo := &mockReservationRepo{
		getByIDFn: func(ctx context.Context, id string) (model.Reservation, error) {
			return model.Reservation{
				ID:             id,
				ClientID:       "client-1",
				TransporteurID: "trans-1",
				Status:         model.StatusInTransit,
			}, nil
		},
		getProofFn: func(ctx context.Context, reservationID string) (model.DeliveryProof, error) {
			return model.DeliveryProof{}, myerrors.ErrNotFound
		},
		upsertProofFn: func(ctx context.Context, proof model.DeliveryProof) (model.DeliveryProof, model.Reservation, error) {
			delivered = proof
			return proof, model.Reservation{
				ID:             proof.ReservationID,
				ClientID:       "client-1",
				TransporteurID: "trans-1",
				Status:         model.StatusDelivered,
			}, nil
		},
	}
	broker := &mockBroker{}
	notifier := &mockNotifier{}
	files := &mockFileStore{}

	svc := newReservationService(t, resRepo, &mockExpeditionRepo{}, &mockTripRepo{},
		&mockProfileGuard{}, broker, notifier, files)

	res, err := svc.SubmitProof("trans-1", "res-1", dto.ProofSubmitRequest{
		RecipientName: "  Aissatou Ba  ",
		Photo:         []byte("jpeg-bytes"),
		PhotoName:     "door.jpg",
		PhotoMime:     "image/jpeg",
	})
	if err != nil {
		t.Fatalf("SubmitProof: %v", err)
	}

	if res.RecipientName != "Aissatou Ba" {
		t.Errorf("recipient = %q, want trimmed name", res.RecipientName)
	}
	if delivered.PhotoURL == "" || files.uploads != 1 {
		t.Error("photo was not uploaded")
	}
	if delivered.DeliveredAt.IsZero() {
		t.Error("delivered_at not set")
	}
	if broker.count() != 1 {
		t.Errorf("published %d status events, want 1", broker.count())
	}

	sent := notifier.sent()
	if len(sent) != 1 || sent[0].userID != "client-1" || sent[0].notifType != "delivered" {
		t.Errorf("client delivery notification missing: %+v", sent)
	}
}

func TestGetProofPartiesOnly(t *testing.T) {
	resRepo := &mockReservationRepo{
		getByIDFn: func(ctx context.Context, id string) (model.Reservation, error) {
			return model.Reservation{
				ID:             id,
				ClientID:       "client-1",
				TransporteurID: "trans-1",
			}, nil
		},
		getProofFn: func(ctx context.Context, reservationID string) (model.DeliveryProof, error) {
			return model.DeliveryProof{ReservationID: reservationID, DeliveredAt: time.Now()}, nil
		},
	}

	svc := newReservationService(t, resRepo, &mockExpeditionRepo{}, &mockTripRepo{},
		&mockProfileGuard{}, &mockBroker{}, &mockNotifier{}, &mockFileStore{})

	if _, err := svc.GetProof("stranger", "res-1"); !errors.Is(err, myerrors.ErrForbidden) {
		t.Fatalf("stranger read: err = %v, want ErrForbidden", err)
	}
	if _, err := svc.GetProof("client-1", "res-1"); err != nil {
		t.Fatalf("client read: %v", err)
	}
}
