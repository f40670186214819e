package handle

import (
	"encoding/json"
	"net/http"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/ports"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/mylogger"
)

type MessageHandler struct {
	messageService ports.IMessageService
	log            mylogger.Logger
}

func NewMessageHandler(ms ports.IMessageService, log mylogger.Logger) *MessageHandler {
	return &MessageHandler{
		messageService: ms,
		log:            log,
	}
}

func (mh *MessageHandler) Send() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := dto.MessageSendRequest{}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}

		res, err := mh.messageService.Send(userID(r), r.PathValue("reservation_id"), req)
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusCreated, res)
	}
}

func (mh *MessageHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := mh.messageService.List(userID(r), r.PathValue("reservation_id"))
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}
