package handle

import (
	"encoding/json"
	"net/http"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/ports"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/mylogger"
)

type ReviewHandler struct {
	reviewService ports.IReviewService
	log           mylogger.Logger
}

func NewReviewHandler(rs ports.IReviewService, log mylogger.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewService: rs,
		log:           log,
	}
}

func (rh *ReviewHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := dto.ReviewCreateRequest{}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}

		res, err := rh.reviewService.Create(userID(r), r.PathValue("reservation_id"), req)
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusCreated, res)
	}
}

func (rh *ReviewHandler) ListForUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := rh.reviewService.ListForUser(r.PathValue("user_id"))
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}
