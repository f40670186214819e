package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/mylogger"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/tracking-service/core/domain/dto"
	messagebrokerdto "github.com/fami1212/maroc-senegal-parcel-connect/internal/tracking-service/core/domain/message_broker_dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/tracking-service/core/domain/model"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/tracking-service/core/myerrors"
)

func testLogger() mylogger.Logger {
	log, err := mylogger.New(mylogger.LevelError)
	if err != nil {
		panic(err)
	}
	return log
}

func floatPtr(v float64) *float64 { return &v }
func strPtr(s string) *string     { return &s }

type mockTrackingRepo struct {
	appendFn func(ctx context.Context, p model.TrackingPoint) (model.TrackingPoint, error)
	listFn   func(ctx context.Context, reservationID string) ([]model.TrackingPoint, error)
}

func (m *mockTrackingRepo) Append(ctx context.Context, p model.TrackingPoint) (model.TrackingPoint, error) {
	return m.appendFn(ctx, p)
}

func (m *mockTrackingRepo) ListForReservation(ctx context.Context, reservationID string) ([]model.TrackingPoint, error) {
	return m.listFn(ctx, reservationID)
}

type mockGuard struct {
	reservation model.Reservation
	err         error
}

func (m *mockGuard) Get(ctx context.Context, reservationID string) (model.Reservation, error) {
	return m.reservation, m.err
}

type mockGeocoder struct {
	address string
	err     error
}

func (m *mockGeocoder) Reverse(ctx context.Context, lat, lng float64) (string, error) {
	return m.address, m.err
}

type mockBroker struct {
	mu        sync.Mutex
	published []messagebrokerdto.TrackingUpdate
}

func (m *mockBroker) PublishTrackingUpdate(ctx context.Context, msg messagebrokerdto.TrackingUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, msg)
	return nil
}

func (m *mockBroker) IsAlive() bool { return true }
func (m *mockBroker) Close() error  { return nil }

func inTransitReservation() model.Reservation {
	return model.Reservation{
		ID:             "res-1",
		ClientID:       "client-1",
		TransporteurID: "trans-1",
		TrackingCode:   "GC-20260830-ABCDEF",
		Status:         "in_transit",
	}
}

func echoRepo() *mockTrackingRepo {
	return &mockTrackingRepo{
		appendFn: func(ctx context.Context, p model.TrackingPoint) (model.TrackingPoint, error) {
			p.ID = "pt-1"
			p.CreatedAt = time.Now().UTC()
			return p, nil
		},
	}
}

func TestRecordAppendsAndPublishes(t *testing.T) {
	broker := &mockBroker{}
	svc := NewTrackingService(context.Background(), testLogger(), echoRepo(),
		&mockGuard{reservation: inTransitReservation()},
		&mockGeocoder{address: "Avenue Hassan II, Casablanca"}, broker)

	res, err := svc.Record(context.Background(), "trans-1", "res-1", dto.TrackingCreateRequest{
		Latitude:  floatPtr(33.5898),
		Longitude: floatPtr(-7.6039),
		Status:    strPtr(model.PointInTransit),
		Notes:     "sortie de ville",
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	if res.Address != "Avenue Hassan II, Casablanca" {
		t.Errorf("address = %q", res.Address)
	}

	broker.mu.Lock()
	defer broker.mu.Unlock()
	if len(broker.published) != 1 {
		t.Fatalf("published %d updates, want 1", len(broker.published))
	}
	if broker.published[0].ClientID != "client-1" || broker.published[0].Status != model.PointInTransit {
		t.Errorf("unexpected event: %+v", broker.published[0])
	}
}

func TestRecordFallsBackToCoordinates(t *testing.T) {
	svc := NewTrackingService(context.Background(), testLogger(), echoRepo(),
		&mockGuard{reservation: inTransitReservation()},
		&mockGeocoder{err: errors.New("nominatim down")}, &mockBroker{})

	res, err := svc.Record(context.Background(), "trans-1", "res-1", dto.TrackingCreateRequest{
		Latitude:  floatPtr(14.6928),
		Longitude: floatPtr(-17.4467),
		Status:    strPtr(model.PointPickup),
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if res.Address != "14.692800, -17.446700" {
		t.Errorf("fallback address = %q", res.Address)
	}
}

func TestRecordValidation(t *testing.T) {
	svc := NewTrackingService(context.Background(), testLogger(), echoRepo(),
		&mockGuard{reservation: inTransitReservation()}, &mockGeocoder{}, &mockBroker{})

	cases := []struct {
		name string
		req  dto.TrackingCreateRequest
		want error
	}{
		{"missing fields", dto.TrackingCreateRequest{}, ErrFieldIsEmpty},
		{"latitude too big", dto.TrackingCreateRequest{Latitude: floatPtr(91), Longitude: floatPtr(0), Status: strPtr("pickup")}, ErrBadCoordinates},
		{"longitude too small", dto.TrackingCreateRequest{Latitude: floatPtr(0), Longitude: floatPtr(-181), Status: strPtr("pickup")}, ErrBadCoordinates},
		{"unknown status", dto.TrackingCreateRequest{Latitude: floatPtr(0), Longitude: floatPtr(0), Status: strPtr("parked")}, ErrUnknownStatus},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Record(context.Background(), "trans-1", "res-1", tc.req); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestRecordAuthorization(t *testing.T) {
	req := dto.TrackingCreateRequest{
		Latitude:  floatPtr(10),
		Longitude: floatPtr(10),
		Status:    strPtr(model.PointInTransit),
	}

	svc := NewTrackingService(context.Background(), testLogger(), echoRepo(),
		&mockGuard{reservation: inTransitReservation()}, &mockGeocoder{}, &mockBroker{})
	if _, err := svc.Record(context.Background(), "client-1", "res-1", req); !errors.Is(err, myerrors.ErrForbidden) {
		t.Fatalf("client write: err = %v, want ErrForbidden", err)
	}

	delivered := inTransitReservation()
	delivered.Status = "delivered"
	svc = NewTrackingService(context.Background(), testLogger(), echoRepo(),
		&mockGuard{reservation: delivered}, &mockGeocoder{}, &mockBroker{})
	if _, err := svc.Record(context.Background(), "trans-1", "res-1", req); !errors.Is(err, myerrors.ErrNotTrackable) {
		t.Fatalf("delivered write: err = %v, want ErrNotTrackable", err)
	}
}

func TestListPartiesOnly(t *testing.T) {
	repo := &mockTrackingRepo{
		listFn: func(ctx context.Context, reservationID string) ([]model.TrackingPoint, error) {
			return []model.TrackingPoint{
				{ID: "pt-2", Status: model.PointInTransit, CreatedAt: time.Now()},
				{ID: "pt-1", Status: model.PointPickup, CreatedAt: time.Now().Add(-time.Hour)},
			}, nil
		},
	}
	svc := NewTrackingService(context.Background(), testLogger(), repo,
		&mockGuard{reservation: inTransitReservation()}, &mockGeocoder{}, &mockBroker{})

	if _, err := svc.List(context.Background(), "stranger", "res-1"); !errors.Is(err, myerrors.ErrForbidden) {
		t.Fatalf("stranger read: err = %v, want ErrForbidden", err)
	}

	points, err := svc.List(context.Background(), "client-1", "res-1")
	if err != nil {
		t.Fatalf("client read: %v", err)
	}
	if len(points) != 2 || points[0].ID != "pt-2" {
		t.Errorf("breadcrumbs out of order: %+v", points)
	}
}
