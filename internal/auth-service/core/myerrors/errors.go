package myerrors

import "errors"

var (
	ErrEmailRegistered = errors.New("email already registered")
	ErrUnknownEmail    = errors.New("unknown email")
	ErrWrongPassword   = errors.New("wrong password")
	ErrNotFound        = errors.New("not found")
)
