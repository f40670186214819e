package handle

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/auth-service/core/myerrors"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/auth-service/core/services"
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
	case errors.Is(err, myerrors.ErrEmailRegistered):
		JsonError(w, http.StatusConflict, err)
	case errors.Is(err, myerrors.ErrUnknownEmail),
		errors.Is(err, myerrors.ErrWrongPassword):
		JsonError(w, http.StatusUnauthorized, err)
	case errors.Is(err, services.ErrFieldIsEmpty),
		errors.Is(err, services.ErrBadEmail),
		errors.Is(err, services.ErrBadPassword),
		errors.Is(err, services.ErrUnknownRole),
		errors.Is(err, services.ErrFileTooLarge),
		errors.Is(err, services.ErrBadFileType):
		JsonError(w, http.StatusUnprocessableEntity, err)
	default:
		JsonError(w, http.StatusInternalServerError, err)
	}
}

func userID(r *http.Request) string {
	return r.Header.Get("X-UserId")
}
