package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/model"
)

const maxCityLen = 255

var (
	ErrEmptyField    = errors.New("field is empty")
	ErrInvalidWeight = errors.New("weight must be greater than zero")
	ErrInvalidPrice  = errors.New("price must be greater than zero")
	ErrInvalidDate   = errors.New("invalid date format")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	ErrPhotoTooLarge = errors.New("photo exceeds the 10MB limit")
	ErrPhotoNotImage = errors.New("photo must be an image")
	ErrUnknownMethod = errors.New("unknown payment method")
	ErrUnknownStatus = errors.New("unknown status value")
)

func validateCity(name string, s *string) error {
	if s == nil || *s == "" {
		return fmt.Errorf("%s: %w", name, ErrEmptyField)
	}
	if len(*s) > maxCityLen {
		return fmt.Errorf("%s: maximum %d characters allowed", name, maxCityLen)
	}
	return nil
}

func validateTransportType(s *string) error {
	if s == nil || *s == "" {
		return fmt.Errorf("transport_type: %w", ErrEmptyField)
	}
	if !model.AllowedTransportTypes[*s] {
		return fmt.Errorf("transport_type %q: %w", *s, ErrUnknownStatus)
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%q: %w", s, ErrInvalidDate)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
