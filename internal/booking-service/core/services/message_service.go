package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/model"
	websocketdto "github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/websocket_dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/myerrors"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/ports"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/mylogger"
)

const maxMessageLen = 4000

type MessageService struct {
	ctx             context.Context
	mylog           mylogger.Logger
	messageRepo     ports.IMessageRepo
	reservationRepo ports.IReservationRepo
	ws              ports.INotifyWebsocket
}

func NewMessageService(
	ctx context.Context,
	mylog mylogger.Logger,
	messageRepo ports.IMessageRepo,
	reservationRepo ports.IReservationRepo,
	ws ports.INotifyWebsocket,
) ports.IMessageService {
	return &MessageService{
		ctx:             ctx,
		mylog:           mylog,
		messageRepo:     messageRepo,
		reservationRepo: reservationRepo,
		ws:              ws,
	}
}

func (ms *MessageService) Send(senderID, reservationID string, req dto.MessageSendRequest) (dto.MessageResponse, error) {
	log := ms.mylog.Action("SendMessage")

	if req.Message == nil || strings.TrimSpace(*req.Message) == "" {
		return dto.MessageResponse{}, fmt.Errorf("message: %w", ErrEmptyField)
	}
	text := strings.TrimSpace(*req.Message)
	if len(text) > maxMessageLen {
		return dto.MessageResponse{}, fmt.Errorf("message: maximum %d characters allowed", maxMessageLen)
	}

	ctx, cancel := context.WithTimeout(ms.ctx, time.Second*15)
	defer cancel()

	reservation, err := ms.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return dto.MessageResponse{}, err
	}
	recipientID, err := otherParty(reservation, senderID)
	if err != nil {
		return dto.MessageResponse{}, err
	}

	created, err := ms.messageRepo.Create(ctx, model.Message{
		ReservationID: reservationID,
		SenderID:      senderID,
		Message:       text,
	})
	if err != nil {
		log.Error("cannot store message", err, "reservation_id", reservationID)
		return dto.MessageResponse{}, err
	}

	payload, err := json.Marshal(websocketdto.MessageReceived{
		ReservationID: reservationID,
		SenderID:      senderID,
		Message:       text,
		SentAt:        formatTime(created.CreatedAt),
	})
	if err == nil {
		ms.ws.WriteToUser(recipientID, websocketdto.Event{
			Type: websocketdto.EventMessage,
			Data: payload,
		})
	}

	return toMessageResponse(created), nil
}

func (ms *MessageService) List(userID, reservationID string) ([]dto.MessageResponse, error) {
	ctx, cancel := context.WithTimeout(ms.ctx, time.Second*15)
	defer cancel()

	reservation, err := ms.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if _, err := otherParty(reservation, userID); err != nil {
		return nil, err
	}

	list, err := ms.messageRepo.ListForReservation(ctx, reservationID)
	if err != nil {
		ms.mylog.Action("ListMessages").Error("cannot list messages", err,
			"reservation_id", reservationID)
		return nil, err
	}

	// Reading the thread marks the other party's messages as read.
	if err := ms.messageRepo.MarkRead(ctx, reservationID, userID); err != nil {
		ms.mylog.Action("ListMessages").Error("cannot mark messages read", err,
			"reservation_id", reservationID)
	}

	res := make([]dto.MessageResponse, 0, len(list))
	for _, m := range list {
		res = append(res, toMessageResponse(m))
	}
	return res, nil
}

// otherParty returns the counterparty of userID on the reservation, or
// ErrForbidden when userID is not a party at all.
func otherParty(r model.Reservation, userID string) (string, error) {
	switch userID {
	case r.ClientID:
		return r.TransporteurID, nil
	case r.TransporteurID:
		return r.ClientID, nil
	}
	return "", myerrors.ErrForbidden
}

func toMessageResponse(m model.Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:            m.ID,
		ReservationID: m.ReservationID,
		SenderID:      m.SenderID,
		Message:       m.Message,
		IsRead:        m.IsRead,
		CreatedAt:     formatTime(m.CreatedAt),
	}
}
