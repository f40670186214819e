package db

import (
	"context"
	"errors"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/tracking-service/core/domain/model"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/tracking-service/core/myerrors"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/tracking-service/core/ports"

	"github.com/jackc/pgx/v5"
)

type ReservationGuard struct {
	db *DB
}

func NewReservationGuard(db *DB) ports.IReservationGuard {
	return &ReservationGuard{db: db}
}

func (rg *ReservationGuard) Get(ctx context.Context, reservationID string) (model.Reservation, error) {
	q := `SELECT id, client_id, transporteur_id, tracking_code, status
		FROM reservations WHERE id = $1`

	var r model.Reservation
	err := rg.db.pool.QueryRow(ctx, q, reservationID).Scan(
		&r.ID,
		&r.ClientID,
		&r.TransporteurID,
		&r.TrackingCode,
		&r.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Reservation{}, myerrors.ErrNotFound
		}
		return model.Reservation{}, err
	}
	return r, nil
}
