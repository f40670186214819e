package handle

import (
	"encoding/json"
	"net/http"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/mylogger"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/tracking-service/core/domain/dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/tracking-service/core/ports"
)

type TrackingHandler struct {
	trackingService ports.ITrackingService
	log             mylogger.Logger
}

func NewTrackingHandler(ts ports.ITrackingService, log mylogger.Logger) *TrackingHandler {
	return &TrackingHandler{
		trackingService: ts,
		log:             log,
	}
}

func (th *TrackingHandler) Record() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := dto.TrackingCreateRequest{}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}

		res, err := th.trackingService.Record(r.Context(), userID(r), r.PathValue("reservation_id"), req)
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusCreated, res)
	}
}

func (th *TrackingHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := th.trackingService.List(r.Context(), userID(r), r.PathValue("reservation_id"))
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}
