package handle

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/tracking-service/core/myerrors"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/tracking-service/core/services"
)

func jsonResponse(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

func JsonError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
		"code":  code,
	})
}

func serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, myerrors.ErrNotFound):
		JsonError(w, http.StatusNotFound, err)
	case errors.Is(err, myerrors.ErrForbidden):
		JsonError(w, http.StatusForbidden, err)
	case errors.Is(err, myerrors.ErrNotTrackable):
		JsonError(w, http.StatusConflict, err)
	case errors.Is(err, services.ErrFieldIsEmpty),
		errors.Is(err, services.ErrBadCoordinates),
		errors.Is(err, services.ErrUnknownStatus):
		JsonError(w, http.StatusUnprocessableEntity, err)
	default:
		JsonError(w, http.StatusInternalServerError, err)
	}
}

func userID(r *http.Request) string {
	return r.Header.Get("X-UserId")
}
