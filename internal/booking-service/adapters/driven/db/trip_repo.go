package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/model"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/myerrors"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/ports"
)

type TripRepo struct {
	db *DB
}

func NewTripRepo(db *DB) ports.ITripRepo {
	return &TripRepo{db: db}
}

const tripColumns = `
	id, transporteur_id, departure_city, destination_city, departure_date,
	arrival_date, transport_type, available_weight_kg,
	COALESCE(available_volume_m3, 0), price_per_kg, COALESCE(vehicle_info, ''),
	status, created_at, updated_at`

func (tr *TripRepo) Create(ctx context.Context, m model.Trip) (model.Trip, error) {
	q := `INSERT INTO trips(
			transporteur_id, departure_city, destination_city, departure_date,
			arrival_date, transport_type, available_weight_kg, available_volume_m3,
			price_per_kg, vehicle_info, status
		) VALUES ($1, $2, $3, $4, $5, $6::transport_type, $7, $8, $9, NULLIF($10, ''), $11)
		RETURNING ` + tripColumns

	row := tr.db.pool.QueryRow(ctx, q,
		m.TransporteurID,
		m.DepartureCity,
		m.DestinationCity,
		m.DepartureDate,
		nullTime(m.ArrivalDate),
		m.TransportType,
		m.AvailableWeightKg,
		nullFloat(m.AvailableVolumeM3),
		m.PricePerKg,
		m.VehicleInfo,
		m.Status,
	)
	return scanTrip(row)
}

func (tr *TripRepo) GetByID(ctx context.Context, id string) (model.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`
	return scanTrip(tr.db.pool.QueryRow(ctx, q, id))
}

func (tr *TripRepo) List(ctx context.Context, query dto.ListQuery) ([]model.Trip, string, error) {
	q := `SELECT ` + tripColumns + ` FROM trips WHERE 1=1`
	args := []any{}

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if query.Status != "" && query.Status != "all" {
		q += ` AND status = ` + arg(query.Status) + `::trip_status`
	} else if !query.MineOnly {
		// The public catalog only shows bookable trips.
		q += ` AND status IN ('open', 'full')`
	}
	if query.TransportType != "" && query.TransportType != "all" {
		q += ` AND transport_type = ` + arg(query.TransportType) + `::transport_type`
	}
	if query.City != "" {
		p := arg("%" + query.City + "%")
		q += ` AND (departure_city ILIKE ` + p + ` OR destination_city ILIKE ` + p + `)`
	}
	if query.MineOnly {
		q += ` AND transporteur_id = ` + arg(query.UserID)
	}
	if query.Cursor != "" {
		t, id, err := decodeCursor(query.Cursor)
		if err != nil {
			return nil, "", err
		}
		q += ` AND (departure_date, id) > (` + arg(t) + `, ` + arg(id) + `)`
	}

	q += ` ORDER BY departure_date ASC, id ASC LIMIT ` + arg(query.Limit+1)

	rows, err := tr.db.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, "", wrapErr(err)
	}
	defer rows.Close()

	var list []model.Trip
	for rows.Next() {
		m, err := scanTrip(rows)
		if err != nil {
			return nil, "", err
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, "", wrapErr(err)
	}

	next := ""
	if len(list) > query.Limit {
		list = list[:query.Limit]
		last := list[len(list)-1]
		next = encodeCursor(last.DepartureDate, last.ID)
	}
	return list, next, nil
}

func (tr *TripRepo) Update(ctx context.Context, m model.Trip) (model.Trip, error) {
	q := `UPDATE trips SET
			departure_date = $2,
			arrival_date = $3,
			available_weight_kg = $4,
			available_volume_m3 = $5,
			price_per_kg = $6,
			vehicle_info = NULLIF($7, ''),
			status = $8,
			updated_at = now()
		WHERE id = $1
		RETURNING ` + tripColumns

	row := tr.db.pool.QueryRow(ctx, q,
		m.ID,
		m.DepartureDate,
		nullTime(m.ArrivalDate),
		m.AvailableWeightKg,
		nullFloat(m.AvailableVolumeM3),
		m.PricePerKg,
		m.VehicleInfo,
		m.Status,
	)
	return scanTrip(row)
}

func (tr *TripRepo) Delete(ctx context.Context, id, transporteurID string) error {
	// A trip with active reservations cannot disappear under its clients.
	q := `DELETE FROM trips
		WHERE id = $1 AND transporteur_id = $2
		AND NOT EXISTS (
			SELECT 1 FROM reservations
			WHERE trip_id = $1 AND status <> 'cancelled'
		)`

	tag, err := tr.db.pool.Exec(ctx, q, id, transporteurID)
	if err != nil {
		return wrapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return myerrors.ErrNotFound
	}
	return nil
}

func (tr *TripRepo) MarkDeparted(ctx context.Context) (int64, error) {
	q := `UPDATE trips SET status = 'in_progress', updated_at = now()
		WHERE status IN ('open', 'full') AND departure_date <= now()`

	tag, err := tr.db.pool.Exec(ctx, q)
	if err != nil {
		return 0, wrapErr(err)
	}
	return tag.RowsAffected(), nil
}

func (tr *TripRepo) MarkCompleted(ctx context.Context) (int64, error) {
	q := `UPDATE trips SET status = 'completed', updated_at = now()
		WHERE status = 'in_progress' AND arrival_date IS NOT NULL AND arrival_date <= now()`

	tag, err := tr.db.pool.Exec(ctx, q)
	if err != nil {
		return 0, wrapErr(err)
	}
	return tag.RowsAffected(), nil
}

func scanTrip(row rowScanner) (model.Trip, error) {
	var (
		m       model.Trip
		arrival sql.NullTime
	)
	err := row.Scan(
		&m.ID,
		&m.TransporteurID,
		&m.DepartureCity,
		&m.DestinationCity,
		&m.DepartureDate,
		&arrival,
		&m.TransportType,
		&m.AvailableWeightKg,
		&m.AvailableVolumeM3,
		&m.PricePerKg,
		&m.VehicleInfo,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return model.Trip{}, wrapErr(err)
	}
	m.ArrivalDate = arrival.Time
	return m, nil
}
