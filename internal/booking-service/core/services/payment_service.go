package services

import (
	"context"
	"fmt"
	"time"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/dto"
	messagebrokerdto "github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/message_broker_dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/model"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/myerrors"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/ports"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/mylogger"
	"github.com/google/uuid"
)

const defaultCurrency = "MAD"

// settleDelay simulates the provider round trip before a payment completes.
const settleDelay = 2 * time.Second

type PaymentService struct {
	ctx             context.Context
	mylog           mylogger.Logger
	paymentRepo     ports.IPaymentRepo
	reservationRepo ports.IReservationRepo
	broker          ports.IEventBroker
	notifier        ports.INotificationService
}

func NewPaymentService(
	ctx context.Context,
	mylog mylogger.Logger,
	paymentRepo ports.IPaymentRepo,
	reservationRepo ports.IReservationRepo,
	broker ports.IEventBroker,
	notifier ports.INotificationService,
) ports.IPaymentService {
	return &PaymentService{
		ctx:             ctx,
		mylog:           mylog,
		paymentRepo:     paymentRepo,
		reservationRepo: reservationRepo,
		broker:          broker,
		notifier:        notifier,
	}
}

func (ps *PaymentService) Create(clientID, reservationID string, req dto.PaymentCreateRequest) (dto.PaymentResponse, error) {
	log := ps.mylog.Action("CreatePayment")

	if req.PaymentMethod == nil || *req.PaymentMethod == "" {
		return dto.PaymentResponse{}, fmt.Errorf("payment_method: %w", ErrEmptyField)
	}
	if !model.AllowedPaymentMethods[*req.PaymentMethod] {
		return dto.PaymentResponse{}, fmt.Errorf("payment_method %q: %w", *req.PaymentMethod, ErrUnknownMethod)
	}

	ctx, cancel := context.WithTimeout(ps.ctx, time.Second*15)
	defer cancel()

	reservation, err := ps.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return dto.PaymentResponse{}, err
	}
	if reservation.ClientID != clientID {
		return dto.PaymentResponse{}, myerrors.ErrForbidden
	}
	if reservation.Status != model.StatusPending && reservation.Status != model.StatusConfirmed {
		return dto.PaymentResponse{}, fmt.Errorf("reservation %s is %s: %w",
			reservationID, reservation.Status, myerrors.ErrBadTransition)
	}

	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	// The amount is never taken from the client, it is the price fixed at
	// booking time. Same for the commission split.
	commission, payout := model.SplitAmount(reservation.TotalPrice)

	m := model.Payment{
		ReservationID:      reservationID,
		ClientID:           reservation.ClientID,
		TransporteurID:     reservation.TransporteurID,
		Amount:             reservation.TotalPrice,
		Currency:           currency,
		PaymentMethod:      *req.PaymentMethod,
		CommissionAmount:   commission,
		TransporteurAmount: payout,
		Status:             model.PaymentProcessing,
	}

	created, err := ps.paymentRepo.Create(ctx, m)
	if err != nil {
		log.Error("cannot create payment", err, "reservation_id", reservationID)
		return dto.PaymentResponse{}, err
	}

	log.Info("payment accepted", "payment_id", created.ID,
		"reservation_id", reservationID, "amount", created.Amount)

	go ps.settle(created, reservation)

	return toPaymentResponse(created), nil
}

// settle completes the simulated provider flow: after a short delay the
// payment flips to completed and a still-pending reservation is confirmed.
func (ps *PaymentService) settle(payment model.Payment, reservation model.Reservation) {
	log := ps.mylog.Action("SettlePayment")

	select {
	case <-ps.ctx.Done():
		return
	case <-time.After(settleDelay):
	}

	ctx, cancel := context.WithTimeout(ps.ctx, time.Second*15)
	defer cancel()

	if err := ps.paymentRepo.SetStatus(ctx, payment.ID, model.PaymentCompleted); err != nil {
		log.Error("cannot complete payment", err, "payment_id", payment.ID)
		return
	}

	updated, confirmed, err := ps.reservationRepo.ConfirmIfPending(ctx, payment.ReservationID)
	if err != nil {
		log.Error("cannot confirm reservation after payment", err,
			"reservation_id", payment.ReservationID)
		return
	}

	ps.notifier.Notify(reservation.ClientID, "payment_completed",
		"Paiement effectué",
		fmt.Sprintf("Votre paiement de %.2f %s a été traité avec succès.", payment.Amount, payment.Currency),
		map[string]any{"reservation_id": payment.ReservationID, "payment_id": payment.ID})
	ps.notifier.Notify(reservation.TransporteurID, "payment_received",
		"Paiement reçu",
		fmt.Sprintf("Un paiement de %.2f %s a été reçu pour la réservation %s.",
			payment.TransporteurAmount, payment.Currency, reservation.TrackingCode),
		map[string]any{"reservation_id": payment.ReservationID, "payment_id": payment.ID})

	if confirmed {
		msg := messagebrokerdto.ReservationStatus{
			ReservationID:  updated.ID,
			TrackingCode:   updated.TrackingCode,
			Status:         updated.Status,
			ClientID:       updated.ClientID,
			TransporteurID: updated.TransporteurID,
			Version:        updated.Version,
			Timestamp:      time.Now().UTC().Format(time.RFC3339),
			CorrelationID:  uuid.NewString(),
		}
		if err := ps.broker.PublishReservationStatus(ctx, msg); err != nil {
			log.Error("cannot publish reservation status", err, "reservation_id", updated.ID)
		}
	}

	log.Info("payment settled", "payment_id", payment.ID,
		"reservation_confirmed", confirmed)
}

func (ps *PaymentService) ListForUser(userID, role string) ([]dto.PaymentResponse, error) {
	ctx, cancel := context.WithTimeout(ps.ctx, time.Second*15)
	defer cancel()

	list, err := ps.paymentRepo.ListForUser(ctx, userID, role)
	if err != nil {
		ps.mylog.Action("ListPayments").Error("cannot list payments", err, "user_id", userID)
		return nil, err
	}

	res := make([]dto.PaymentResponse, 0, len(list))
	for _, m := range list {
		res = append(res, toPaymentResponse(m))
	}
	return res, nil
}

func (ps *PaymentService) Earnings(transporteurID string) (dto.EarningsResponse, error) {
	ctx, cancel := context.WithTimeout(ps.ctx, time.Second*15)
	defer cancel()

	res, err := ps.paymentRepo.Earnings(ctx, transporteurID)
	if err != nil {
		ps.mylog.Action("Earnings").Error("cannot compute earnings", err, "user_id", transporteurID)
		return dto.EarningsResponse{}, err
	}
	return res, nil
}

func toPaymentResponse(m model.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:                 m.ID,
		ReservationID:      m.ReservationID,
		Amount:             m.Amount,
		Currency:           m.Currency,
		PaymentMethod:      m.PaymentMethod,
		CommissionAmount:   m.CommissionAmount,
		TransporteurAmount: m.TransporteurAmount,
		Status:             m.Status,
		ProcessedAt:        formatTime(m.ProcessedAt),
		CreatedAt:          formatTime(m.CreatedAt),
	}
}
