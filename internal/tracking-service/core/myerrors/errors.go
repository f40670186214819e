package myerrors

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrNotTrackable = errors.New("reservation is not trackable in its current state")
)
