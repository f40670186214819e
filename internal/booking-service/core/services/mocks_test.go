package services

import (
	"context"
	"sync"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/dto"
	messagebrokerdto "github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/message_broker_dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/model"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/mylogger"

	amqp "github.com/rabbitmq/amqp091-go"
)

func testLogger() mylogger.Logger {
	log, err := mylogger.New(mylogger.LevelError)
	if err != nil {
		panic(err)
	}
	return log
}

type mockReservationRepo struct {
	bookFn             func(ctx context.Context, m model.Reservation, weightKg float64) (model.Reservation, error)
	getByIDFn          func(ctx context.Context, id string) (model.Reservation, error)
	listForUserFn      func(ctx context.Context, userID, role string) ([]model.Reservation, error)
	updateStatusFn     func(ctx context.Context, id, status string, version int64) (model.Reservation, error)
	confirmIfPendingFn func(ctx context.Context, id string) (model.Reservation, bool, error)
	upsertProofFn      func(ctx context.Context, proof model.DeliveryProof) (model.DeliveryProof, model.Reservation, error)
	getProofFn         func(ctx context.Context, reservationID string) (model.DeliveryProof, error)
}

func (m *mockReservationRepo) Book(ctx context.Context, r model.Reservation, weightKg float64) (model.Reservation, error) {
	return m.bookFn(ctx, r, weightKg)
}

func (m *mockReservationRepo) GetByID(ctx context.Context, id string) (model.Reservation, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockReservationRepo) ListForUser(ctx context.Context, userID, role string) ([]model.Reservation, error) {
	return m.listForUserFn(ctx, userID, role)
}

func (m *mockReservationRepo) UpdateStatus(ctx context.Context, id, status string, version int64) (model.Reservation, error) {
	return m.updateStatusFn(ctx, id, status, version)
}

func (m *mockReservationRepo) ConfirmIfPending(ctx context.Context, id string) (model.Reservation, bool, error) {
	return m.confirmIfPendingFn(ctx, id)
}

func (m *mockReservationRepo) UpsertProofAndDeliver(ctx context.Context, proof model.DeliveryProof) (model.DeliveryProof, model.Reservation, error) {
	return m.upsertProofFn(ctx, proof)
}

func (m *mockReservationRepo) GetProof(ctx context.Context, reservationID string) (model.DeliveryProof, error) {
	return m.getProofFn(ctx, reservationID)
}

type mockExpeditionRepo struct {
	getByIDFn func(ctx context.Context, id string) (model.Expedition, error)
}

func (m *mockExpeditionRepo) Create(ctx context.Context, e model.Expedition) (model.Expedition, error) {
	return e, nil
}

func (m *mockExpeditionRepo) GetByID(ctx context.Context, id string) (model.Expedition, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockExpeditionRepo) List(ctx context.Context, q dto.ListQuery) ([]model.Expedition, string, error) {
	return nil, "", nil
}

func (m *mockExpeditionRepo) Update(ctx context.Context, e model.Expedition) (model.Expedition, error) {
	return e, nil
}

func (m *mockExpeditionRepo) Delete(ctx context.Context, id, clientID string) error {
	return nil
}

type mockTripRepo struct {
	getByIDFn func(ctx context.Context, id string) (model.Trip, error)
	departed  int64
	completed int64
}

func (m *mockTripRepo) Create(ctx context.Context, t model.Trip) (model.Trip, error) {
	return t, nil
}

func (m *mockTripRepo) GetByID(ctx context.Context, id string) (model.Trip, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockTripRepo) List(ctx context.Context, q dto.ListQuery) ([]model.Trip, string, error) {
	return nil, "", nil
}

func (m *mockTripRepo) Update(ctx context.Context, t model.Trip) (model.Trip, error) {
	return t, nil
}

func (m *mockTripRepo) Delete(ctx context.Context, id, transporteurID string) error {
	return nil
}

func (m *mockTripRepo) MarkDeparted(ctx context.Context) (int64, error) {
	return m.departed, nil
}

func (m *mockTripRepo) MarkCompleted(ctx context.Context) (int64, error) {
	return m.completed, nil
}

type mockProfileGuard struct {
	verified bool
	err      error
}

func (m *mockProfileGuard) IsVerified(ctx context.Context, userID string) (bool, error) {
	return m.verified, m.err
}

type mockBroker struct {
	mu        sync.Mutex
	published []messagebrokerdto.ReservationStatus
}

func (m *mockBroker) Close() error { return nil }

func (m *mockBroker) PublishReservationStatus(ctx context.Context, msg messagebrokerdto.ReservationStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, msg)
	return nil
}

func (m *mockBroker) Consume(ctx context.Context, queue, consumer string) (<-chan amqp.Delivery, error) {
	ch := make(chan amqp.Delivery)
	close(ch)
	return ch, nil
}

func (m *mockBroker) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.published)
}

type notifyCall struct {
	userID    string
	notifType string
}

type mockNotifier struct {
	mu    sync.Mutex
	calls []notifyCall
}

func (m *mockNotifier) List(userID string) (dto.NotificationListResponse, error) {
	return dto.NotificationListResponse{}, nil
}

func (m *mockNotifier) MarkRead(userID, id string) error { return nil }
func (m *mockNotifier) MarkAllRead(userID string) error  { return nil }
func (m *mockNotifier) Delete(userID, id string) error   { return nil }

func (m *mockNotifier) Notify(userID, notifType, title, message string, data map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, notifyCall{userID: userID, notifType: notifType})
}

func (m *mockNotifier) sent() []notifyCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]notifyCall, len(m.calls))
	copy(out, m.calls)
	return out
}

type mockFileStore struct {
	uploads int
	fail    error
}

func (m *mockFileStore) Upload(ctx context.Context, bucket, path string, data []byte) (string, error) {
	if m.fail != nil {
		return "", m.fail
	}
	m.uploads++
	return "http://files.local/" + bucket + "/" + path, nil
}

func (m *mockFileStore) PublicURL(bucket, path string) string {
	return "http://files.local/" + bucket + "/" + path
}
