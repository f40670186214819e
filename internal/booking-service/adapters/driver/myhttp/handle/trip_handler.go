package handle

import (
	"encoding/json"
	"net/http"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/ports"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/mylogger"
)

type TripHandler struct {
	tripService ports.ITripService
	log         mylogger.Logger
}

func NewTripHandler(ts ports.ITripService, log mylogger.Logger) *TripHandler {
	return &TripHandler{
		tripService: ts,
		log:         log,
	}
}

func (th *TripHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := dto.TripCreateRequest{}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}

		res, err := th.tripService.Create(userID(r), req)
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusCreated, res)
	}
}

func (th *TripHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := th.tripService.Get(r.PathValue("trip_id"))
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}

func (th *TripHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := th.tripService.List(listQuery(r))
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}

func (th *TripHandler) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := dto.TripUpdateRequest{}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}

		res, err := th.tripService.Update(userID(r), r.PathValue("trip_id"), req)
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}

func (th *TripHandler) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := th.tripService.Delete(userID(r), r.PathValue("trip_id")); err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusNoContent, nil)
	}
}
