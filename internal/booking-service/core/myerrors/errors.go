package myerrors

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("operation not allowed for this user")
	ErrVersionConflict = errors.New("stale version, reload and retry")
	ErrTripNotOpen     = errors.New("trip is not open for booking")
	ErrNoCapacity      = errors.New("trip has not enough remaining capacity")
	ErrDuplicate       = errors.New("already exists")
	ErrNotVerified     = errors.New("transporteur identity is not verified")
	ErrBadTransition   = errors.New("status transition not allowed")
	ErrNotDelivered    = errors.New("reservation is not delivered yet")
)
