package handle

import (
	"encoding/json"
	"net/http"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/auth-service/core/domain/dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/auth-service/core/ports"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/mylogger"
)

type ProfileHandler struct {
	profileService ports.IProfileService
	log            mylogger.Logger
}

func NewProfileHandler(ps ports.IProfileService, log mylogger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: ps,
		log:            log,
	}
}

func (ph *ProfileHandler) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := ph.profileService.Me(r.Context(), userID(r))
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}

func (ph *ProfileHandler) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := dto.ProfileUpdateRequest{}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}

		res, err := ph.profileService.Update(r.Context(), userID(r), req)
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}
