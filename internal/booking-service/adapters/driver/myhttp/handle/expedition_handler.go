package handle

import (
	"encoding/json"
	"net/http"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/ports"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/mylogger"

	"github.com/spf13/cast"
)

type ExpeditionHandler struct {
	expeditionService ports.IExpeditionService
	log               mylogger.Logger
}

func NewExpeditionHandler(es ports.IExpeditionService, log mylogger.Logger) *ExpeditionHandler {
	return &ExpeditionHandler{
		expeditionService: es,
		log:               log,
	}
}

func (eh *ExpeditionHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := dto.ExpeditionCreateRequest{}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}

		res, err := eh.expeditionService.Create(userID(r), req)
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusCreated, res)
	}
}

func (eh *ExpeditionHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := eh.expeditionService.Get(r.PathValue("expedition_id"))
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}

func (eh *ExpeditionHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := eh.expeditionService.List(listQuery(r))
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}

func (eh *ExpeditionHandler) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := dto.ExpeditionUpdateRequest{}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}

		res, err := eh.expeditionService.Update(userID(r), r.PathValue("expedition_id"), req)
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}

func (eh *ExpeditionHandler) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := eh.expeditionService.Delete(userID(r), r.PathValue("expedition_id")); err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusNoContent, nil)
	}
}

// listQuery extracts the shared catalog filters from the URL.
func listQuery(r *http.Request) dto.ListQuery {
	q := r.URL.Query()
	return dto.ListQuery{
		Status:        q.Get("status"),
		TransportType: q.Get("transport_type"),
		City:          q.Get("city"),
		MineOnly:      q.Get("mine") == "true",
		UserID:        userID(r),
		Cursor:        q.Get("cursor"),
		Limit:         cast.ToInt(q.Get("limit")),
	}
}
