package services

import (
	"context"
	"errors"
	"testing"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/model"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/myerrors"
)

type mockPaymentRepo struct {
	createFn    func(ctx context.Context, m model.Payment) (model.Payment, error)
	setStatusFn func(ctx context.Context, id, status string) error
}

func (m *mockPaymentRepo) Create(ctx context.Context, p model.Payment) (model.Payment, error) {
	return m.createFn(ctx, p)
}

func (m *mockPaymentRepo) SetStatus(ctx context.Context, id, status string) error {
	return m.setStatusFn(ctx, id, status)
}

func (m *mockPaymentRepo) ListForUser(ctx context.Context, userID, role string) ([]model.Payment, error) {
	return nil, nil
}

func (m *mockPaymentRepo) Earnings(ctx context.Context, transporteurID string) (dto.EarningsResponse, error) {
	return dto.EarningsResponse{}, nil
}

func pendingReservation() model.Reservation {
	return model.Reservation{
		ID:             "res-1",
		ClientID:       "client-1",
		TransporteurID: "trans-1",
		TotalPrice:     200,
		TrackingCode:   "GC-20260830-ABCDEF",
		Status:         model.StatusPending,
		Version:        1,
	}
}

func TestCreatePaymentUsesBookedPriceAndSplit(t *testing.T) {
	var created model.Payment
	paymentRepo := &mockPaymentRepo{
		createFn: func(ctx context.Context, m model.Payment) (model.Payment, error) {
			created = m
			m.ID = "pay-1"
			return m, nil
		},
		setStatusFn: func(ctx context.Context, id, status string) error { return nil },
	}
	resRepo := &mockReservationRepo{
		getByIDFn: func(ctx context.Context, id string) (model.Reservation, error) {
			return pendingReservation(), nil
		},
		confirmIfPendingFn: func(ctx context.Context, id string) (model.Reservation, bool, error) {
			return pendingReservation(), false, nil
		},
	}

	svc := NewPaymentService(context.Background(), testLogger(),
		paymentRepo, resRepo, &mockBroker{}, &mockNotifier{})

	res, err := svc.Create("client-1", "res-1", dto.PaymentCreateRequest{
		PaymentMethod: strPtr("mobile_money"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if created.Amount != 200 {
		t.Errorf("amount = %v, want the booked 200", created.Amount)
	}
	if created.CommissionAmount != 20 || created.TransporteurAmount != 180 {
		t.Errorf("split = %v/%v, want 20/180", created.CommissionAmount, created.TransporteurAmount)
	}
	if created.Currency != "MAD" {
		t.Errorf("currency = %q, want default MAD", created.Currency)
	}
	if res.Status != model.PaymentProcessing {
		t.Errorf("status = %q, want processing", res.Status)
	}
}

func TestCreatePaymentRejectsUnknownMethod(t *testing.T) {
	svc := NewPaymentService(context.Background(), testLogger(),
		&mockPaymentRepo{}, &mockReservationRepo{}, &mockBroker{}, &mockNotifier{})

	_, err := svc.Create("client-1", "res-1", dto.PaymentCreateRequest{
		PaymentMethod: strPtr("crypto"),
	})
	if !errors.Is(err, ErrUnknownMethod) {
		t.Fatalf("err = %v, want ErrUnknownMethod", err)
	}
}

func TestCreatePaymentRejectsSettledReservation(t *testing.T) {
	resRepo := &mockReservationRepo{
		getByIDFn: func(ctx context.Context, id string) (model.Reservation, error) {
			r := pendingReservation()
			r.Status = model.StatusDelivered
			return r, nil
		},
	}

	svc := NewPaymentService(context.Background(), testLogger(),
		&mockPaymentRepo{}, resRepo, &mockBroker{}, &mockNotifier{})

	_, err := svc.Create("client-1", "res-1", dto.PaymentCreateRequest{
		PaymentMethod: strPtr("card"),
	})
	if !errors.Is(err, myerrors.ErrBadTransition) {
		t.Fatalf("err = %v, want ErrBadTransition", err)
	}
}

func TestCreatePaymentForbidsOtherUsers(t *testing.T) {
	resRepo := &mockReservationRepo{
		getByIDFn: func(ctx context.Context, id string) (model.Reservation, error) {
			return pendingReservation(), nil
		},
	}

	svc := NewPaymentService(context.Background(), testLogger(),
		&mockPaymentRepo{}, resRepo, &mockBroker{}, &mockNotifier{})

	_, err := svc.Create("trans-1", "res-1", dto.PaymentCreateRequest{
		PaymentMethod: strPtr("card"),
	})
	if !errors.Is(err, myerrors.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestSettleCompletesPaymentAndConfirmsReservation(t *testing.T) {
	var completed string
	paymentRepo := &mockPaymentRepo{
		setStatusFn: func(ctx context.Context, id, status string) error {
			completed = status
			return nil
		},
	}
	resRepo := &mockReservationRepo{
		confirmIfPendingFn: func(ctx context.Context, id string) (model.Reservation, bool, error) {
			r := pendingReservation()
			r.Status = model.StatusConfirmed
			r.Version = 2
			return r, true, nil
		},
	}
	broker := &mockBroker{}
	notifier := &mockNotifier{}

	svc := NewPaymentService(context.Background(), testLogger(),
		paymentRepo, resRepo, broker, notifier).(*PaymentService)

	payment := model.Payment{
		ID:                 "pay-1",
		ReservationID:      "res-1",
		Amount:             200,
		Currency:           "MAD",
		TransporteurAmount: 180,
	}
	svc.settle(payment, pendingReservation())

	if completed != model.PaymentCompleted {
		t.Errorf("payment status = %q, want completed", completed)
	}
	if broker.count() != 1 {
		t.Errorf("published %d status events, want 1 after confirmation", broker.count())
	}

	sent := notifier.sent()
	if len(sent) != 2 {
		t.Fatalf("notified %d users, want both parties", len(sent))
	}
	if sent[0].userID != "client-1" || sent[1].userID != "trans-1" {
		t.Errorf("unexpected recipients: %+v", sent)
	}
}

func TestSplitAmount(t *testing.T) {
	commission, payout := model.SplitAmount(150)
	if commission != 15 {
		t.Errorf("commission = %v, want 15", commission)
	}
	if payout != 135 {
		t.Errorf("payout = %v, want 135", payout)
	}
}
