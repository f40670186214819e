package services

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in      string
		wantErr bool
	}{
		{"2026-09-01", false},
		{"2026-09-01T10:30:00Z", false},
		{"", false},
		{"01/09/2026", true},
		{"tomorrow", true},
	}

	for _, tc := range cases {
		got, err := parseDate(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidDate) {
				t.Errorf("parseDate(%q) err = %v, want ErrInvalidDate", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseDate(%q): %v", tc.in, err)
		}
		if tc.in == "" && !got.IsZero() {
			t.Error("empty date must parse to zero time")
		}
	}
}

func TestValidateTransportType(t *testing.T) {
	for _, typ := range []string{"avion", "voiture", "camion", "bus"} {
		typ := typ
		if err := validateTransportType(&typ); err != nil {
			t.Errorf("validateTransportType(%q): %v", typ, err)
		}
	}

	bad := "pirogue"
	if err := validateTransportType(&bad); err == nil {
		t.Error("unknown transport type accepted")
	}
	if err := validateTransportType(nil); !errors.Is(err, ErrEmptyField) {
		t.Errorf("nil transport type err = %v, want ErrEmptyField", err)
	}
}

func TestFormatTime(t *testing.T) {
	if got := formatTime(time.Time{}); got != "" {
		t.Errorf("zero time formatted as %q, want empty", got)
	}

	ts := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	if got := formatTime(ts); got != "2026-08-30T12:00:00Z" {
		t.Errorf("formatTime = %q", got)
	}
}
