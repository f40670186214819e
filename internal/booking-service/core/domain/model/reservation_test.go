package model

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusInTransit, false},
		{StatusConfirmed, StatusInTransit, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		// delivered is never reachable through a plain status update
		{StatusPending, StatusDelivered, false},
		{StatusConfirmed, StatusDelivered, false},
		{StatusInTransit, StatusDelivered, false},
		// terminal states stay terminal
		{StatusInTransit, StatusCancelled, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{"bogus", StatusPending, false},
	}

	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestIsStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusConfirmed, StatusInTransit, StatusDelivered, StatusCancelled} {
		if !IsStatus(s) {
			t.Errorf("IsStatus(%q) = false", s)
		}
	}
	if IsStatus("shipped") {
		t.Error(`IsStatus("shipped") = true`)
	}
}

func TestIsActive(t *testing.T) {
	if IsActive(StatusCancelled) {
		t.Error("cancelled reservation must not occupy capacity")
	}
	if !IsActive(StatusPending) || !IsActive(StatusDelivered) {
		t.Error("non-cancelled reservations occupy capacity")
	}
}
