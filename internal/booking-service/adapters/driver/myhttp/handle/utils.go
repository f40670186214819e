package handle

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/myerrors"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/services"
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

// serviceError maps domain sentinels onto HTTP statuses. Anything unknown is
// a 500.
func serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, myerrors.ErrNotFound):
		JsonError(w, http.StatusNotFound, err)
	case errors.Is(err, myerrors.ErrForbidden),
		errors.Is(err, myerrors.ErrNotVerified):
		JsonError(w, http.StatusForbidden, err)
	case errors.Is(err, myerrors.ErrVersionConflict),
		errors.Is(err, myerrors.ErrDuplicate),
		errors.Is(err, myerrors.ErrTripNotOpen),
		errors.Is(err, myerrors.ErrNoCapacity):
		JsonError(w, http.StatusConflict, err)
	case errors.Is(err, myerrors.ErrBadTransition),
		errors.Is(err, myerrors.ErrNotDelivered),
		errors.Is(err, services.ErrEmptyField),
		errors.Is(err, services.ErrInvalidWeight),
		errors.Is(err, services.ErrInvalidPrice),
		errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrInvalidRating),
		errors.Is(err, services.ErrPhotoTooLarge),
		errors.Is(err, services.ErrPhotoNotImage),
		errors.Is(err, services.ErrUnknownMethod),
		errors.Is(err, services.ErrUnknownStatus):
		JsonError(w, http.StatusUnprocessableEntity, err)
	default:
		JsonError(w, http.StatusInternalServerError, err)
	}
}

func userID(r *http.Request) string {
	return r.Header.Get("X-UserId")
}

func userRole(r *http.Request) string {
	return r.Header.Get("X-Role")
}
