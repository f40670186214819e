package handle

import (
	"encoding/json"
	"net/http"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/ports"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/mylogger"
)

type PaymentHandler struct {
	paymentService ports.IPaymentService
	log            mylogger.Logger
}

func NewPaymentHandler(ps ports.IPaymentService, log mylogger.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: ps,
		log:            log,
	}
}

func (ph *PaymentHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := dto.PaymentCreateRequest{}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}

		res, err := ph.paymentService.Create(userID(r), r.PathValue("reservation_id"), req)
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusAccepted, res)
	}
}

func (ph *PaymentHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := ph.paymentService.ListForUser(userID(r), userRole(r))
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}

func (ph *PaymentHandler) Earnings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := ph.paymentService.Earnings(userID(r))
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}
