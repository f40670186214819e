package db

import (
	"context"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/tracking-service/core/domain/model"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/tracking-service/core/ports"

	"github.com/jackc/pgx/v5"
)

type TrackingRepo struct {
	db *DB
}

func NewTrackingRepo(db *DB) ports.ITrackingRepo {
	return &TrackingRepo{db: db}
}

func (tr *TrackingRepo) Append(ctx context.Context, p model.TrackingPoint) (model.TrackingPoint, error) {
	q := `INSERT INTO tracking (reservation_id, transporteur_id, latitude, longitude, status, address, notes)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''))
		RETURNING id, reservation_id, transporteur_id, latitude, longitude, status,
			COALESCE(address, ''), COALESCE(notes, ''), created_at`

	row := tr.db.pool.QueryRow(ctx, q,
		p.ReservationID,
		p.TransporteurID,
		p.Latitude,
		p.Longitude,
		p.Status,
		p.Address,
		p.Notes,
	)
	return scanPoint(row)
}

func (tr *TrackingRepo) ListForReservation(ctx context.Context, reservationID string) ([]model.TrackingPoint, error) {
	q := `SELECT id, reservation_id, transporteur_id, latitude, longitude, status,
			COALESCE(address, ''), COALESCE(notes, ''), created_at
		FROM tracking WHERE reservation_id = $1
		ORDER BY created_at DESC`

	rows, err := tr.db.pool.Query(ctx, q, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []model.TrackingPoint
	for rows.Next() {
		p, err := scanPoint(rows)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func scanPoint(row pgx.Row) (model.TrackingPoint, error) {
	var p model.TrackingPoint
	err := row.Scan(
		&p.ID,
		&p.ReservationID,
		&p.TransporteurID,
		&p.Latitude,
		&p.Longitude,
		&p.Status,
		&p.Address,
		&p.Notes,
		&p.CreatedAt,
	)
	if err != nil {
		return model.TrackingPoint{}, err
	}
	return p, nil
}
