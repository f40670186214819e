package services

import (
	"context"
	"errors"
	"testing"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/model"
	websocketdto "github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/websocket_dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/myerrors"
)

type mockNotificationRepo struct {
	created   []model.Notification
	markedAll string
	failNext  error
}

func (m *mockNotificationRepo) Create(ctx context.Context, n model.Notification) (model.Notification, error) {
	if m.failNext != nil {
		return model.Notification{}, m.failNext
	}
	n.ID = "notif-1"
	m.created = append(m.created, n)
	return n, nil
}

func (m *mockNotificationRepo) ListForUser(ctx context.Context, userID string, limit int) ([]model.Notification, int, error) {
	return m.created, 1, nil
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id, userID string) error {
	return m.failNext
}

func (m *mockNotificationRepo) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	m.markedAll = userID
	return int64(len(m.created)), nil
}

func (m *mockNotificationRepo) Delete(ctx context.Context, id, userID string) error {
	return m.failNext
}

type mockWs struct {
	events map[string][]websocketdto.Event
}

func (m *mockWs) WriteToUser(userID string, msg websocketdto.Event) {
	if m.events == nil {
		m.events = make(map[string][]websocketdto.Event)
	}
	m.events[userID] = append(m.events[userID], msg)
}

func TestNotifyStoresAndPushes(t *testing.T) {
	repo := &mockNotificationRepo{}
	ws := &mockWs{}
	svc := NewNotificationService(context.Background(), testLogger(), repo, ws)

	svc.Notify("user-1", "delivered", "Colis livré !", "Votre colis a été livré avec succès",
		map[string]any{"reservation_id": "res-1"})

	if len(repo.created) != 1 {
		t.Fatalf("stored %d notifications, want 1", len(repo.created))
	}
	if repo.created[0].Type != "delivered" {
		t.Errorf("type = %q", repo.created[0].Type)
	}

	pushed := ws.events["user-1"]
	if len(pushed) != 1 || pushed[0].Type != websocketdto.EventNotification {
		t.Errorf("websocket push missing or wrong type: %+v", pushed)
	}
}

func TestNotifySwallowsStorageFailure(t *testing.T) {
	repo := &mockNotificationRepo{failNext: errors.New("db down")}
	ws := &mockWs{}
	svc := NewNotificationService(context.Background(), testLogger(), repo, ws)

	// must not panic and must not push a phantom event
	svc.Notify("user-1", "delivered", "t", "m", nil)

	if len(ws.events["user-1"]) != 0 {
		t.Error("event pushed despite failed store")
	}
}

func TestMarkAllRead(t *testing.T) {
	repo := &mockNotificationRepo{}
	svc := NewNotificationService(context.Background(), testLogger(), repo, &mockWs{})

	if err := svc.MarkAllRead("user-1"); err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}
	if repo.markedAll != "user-1" {
		t.Errorf("marked for %q", repo.markedAll)
	}
}

func TestMessageSendAuthorization(t *testing.T) {
	resRepo := &mockReservationRepo{
		getByIDFn: func(ctx context.Context, id string) (model.Reservation, error) {
			return model.Reservation{
				ID:             id,
				ClientID:       "client-1",
				TransporteurID: "trans-1",
			}, nil
		},
	}
	msgRepo := &mockMessageRepo{}
	ws := &mockWs{}

	svc := NewMessageService(context.Background(), testLogger(), msgRepo, resRepo, ws)

	_, err := svc.Send("stranger", "res-1", dto.MessageSendRequest{Message: strPtr("bonjour")})
	if !errors.Is(err, myerrors.ErrForbidden) {
		t.Fatalf("stranger send: err = %v, want ErrForbidden", err)
	}

	res, err := svc.Send("client-1", "res-1", dto.MessageSendRequest{Message: strPtr("  bonjour  ")})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if res.Message != "bonjour" {
		t.Errorf("message = %q, want trimmed text", res.Message)
	}
	if len(ws.events["trans-1"]) != 1 {
		t.Error("counterparty did not receive the websocket event")
	}
}

type mockMessageRepo struct {
	marked string
}

func (m *mockMessageRepo) Create(ctx context.Context, msg model.Message) (model.Message, error) {
	msg.ID = "msg-1"
	return msg, nil
}

func (m *mockMessageRepo) ListForReservation(ctx context.Context, reservationID string) ([]model.Message, error) {
	return []model.Message{{ID: "msg-1", ReservationID: reservationID}}, nil
}

func (m *mockMessageRepo) MarkRead(ctx context.Context, reservationID, readerID string) error {
	m.marked = readerID
	return nil
}

func TestMessageListMarksRead(t *testing.T) {
	resRepo := &mockReservationRepo{
		getByIDFn: func(ctx context.Context, id string) (model.Reservation, error) {
			return model.Reservation{ID: id, ClientID: "client-1", TransporteurID: "trans-1"}, nil
		},
	}
	msgRepo := &mockMessageRepo{}

	svc := NewMessageService(context.Background(), testLogger(), msgRepo, resRepo, &mockWs{})

	list, err := svc.List("client-1", "res-1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("got %d messages", len(list))
	}
	if msgRepo.marked != "client-1" {
		t.Error("thread read did not mark messages")
	}
}
