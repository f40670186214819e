package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/model"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/myerrors"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/ports"

	"github.com/jackc/pgx/v5"
)

type ReservationRepo struct {
	db *DB
}

func NewReservationRepo(db *DB) ports.IReservationRepo {
	return &ReservationRepo{db: db}
}

const reservationColumns = `
	id, expedition_id, trip_id, client_id, transporteur_id, total_price,
	COALESCE(pickup_address, ''), COALESCE(delivery_address, ''),
	pickup_date, delivery_date, tracking_code, status, version,
	created_at, updated_at`

func (rr *ReservationRepo) Book(ctx context.Context, m model.Reservation, weightKg float64) (model.Reservation, error) {
	tx, err := rr.db.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return model.Reservation{}, err
	}
	defer tx.Rollback(ctx)

	// Lock the trip row so concurrent bookings serialize on capacity.
	var (
		tripStatus      string
		availableWeight float64
	)
	q := `SELECT status, available_weight_kg FROM trips WHERE id = $1 FOR UPDATE`
	if err := tx.QueryRow(ctx, q, m.TripID).Scan(&tripStatus, &availableWeight); err != nil {
		return model.Reservation{}, wrapErr(err)
	}
	if tripStatus != model.TripOpen {
		return model.Reservation{}, myerrors.ErrTripNotOpen
	}

	var bookedWeight float64
	q = `SELECT COALESCE(SUM(e.weight_kg), 0)
		FROM reservations r
		JOIN expeditions e ON e.id = r.expedition_id
		WHERE r.trip_id = $1 AND r.status <> 'cancelled'`
	if err := tx.QueryRow(ctx, q, m.TripID).Scan(&bookedWeight); err != nil {
		return model.Reservation{}, wrapErr(err)
	}
	if bookedWeight+weightKg > availableWeight {
		return model.Reservation{}, myerrors.ErrNoCapacity
	}

	q = `INSERT INTO reservations(
			expedition_id, trip_id, client_id, transporteur_id, total_price,
			pickup_address, delivery_address, pickup_date, delivery_date,
			tracking_code, status
		) VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8, $9, $10, $11)
		RETURNING ` + reservationColumns

	row := tx.QueryRow(ctx, q,
		m.ExpeditionID,
		m.TripID,
		m.ClientID,
		m.TransporteurID,
		m.TotalPrice,
		m.PickupAddress,
		m.DeliveryAddress,
		nullTime(m.PickupDate),
		nullTime(m.DeliveryDate),
		m.TrackingCode,
		m.Status,
	)
	created, err := scanReservation(row)
	if err != nil {
		return model.Reservation{}, err
	}

	// The booked expedition leaves the public catalog.
	q = `UPDATE expeditions SET status = 'confirmed', updated_at = now()
		WHERE id = $1 AND status = 'pending'`
	if _, err := tx.Exec(ctx, q, m.ExpeditionID); err != nil {
		return model.Reservation{}, wrapErr(err)
	}

	if bookedWeight+weightKg >= availableWeight {
		q = `UPDATE trips SET status = 'full', updated_at = now() WHERE id = $1`
		if _, err := tx.Exec(ctx, q, m.TripID); err != nil {
			return model.Reservation{}, wrapErr(err)
		}
	}

	return created, tx.Commit(ctx)
}

func (rr *ReservationRepo) GetByID(ctx context.Context, id string) (model.Reservation, error) {
	q := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	return scanReservation(rr.db.pool.QueryRow(ctx, q, id))
}

func (rr *ReservationRepo) ListForUser(ctx context.Context, userID, role string) ([]model.Reservation, error) {
	q := `SELECT ` + reservationColumns + ` FROM reservations WHERE client_id = $1 ORDER BY created_at DESC`
	if role == "transporteur" {
		q = `SELECT ` + reservationColumns + ` FROM reservations WHERE transporteur_id = $1 ORDER BY created_at DESC`
	}

	rows, err := rr.db.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	var list []model.Reservation
	for rows.Next() {
		m, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, wrapErr(rows.Err())
}

func (rr *ReservationRepo) UpdateStatus(ctx context.Context, id, status string, version int64) (model.Reservation, error) {
	tx, err := rr.db.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return model.Reservation{}, err
	}
	defer tx.Rollback(ctx)

	q := `UPDATE reservations
		SET status = $2, version = version + 1, updated_at = now()
		WHERE id = $1 AND version = $3
		RETURNING ` + reservationColumns

	updated, err := scanReservation(tx.QueryRow(ctx, q, id, status, version))
	if err != nil {
		if !errors.Is(err, myerrors.ErrNotFound) {
			return model.Reservation{}, err
		}
		// Distinguish a missing row from a stale version.
		var exists bool
		if scanErr := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM reservations WHERE id = $1)`, id,
		).Scan(&exists); scanErr != nil {
			return model.Reservation{}, wrapErr(scanErr)
		}
		if exists {
			return model.Reservation{}, myerrors.ErrVersionConflict
		}
		return model.Reservation{}, myerrors.ErrNotFound
	}

	if status == model.StatusCancelled {
		// A cancellation frees capacity: a full trip that has not departed
		// reopens for booking, the expedition goes back to the catalog.
		q = `UPDATE trips SET status = 'open', updated_at = now()
			WHERE id = $1 AND status = 'full'`
		if _, err := tx.Exec(ctx, q, updated.TripID); err != nil {
			return model.Reservation{}, wrapErr(err)
		}
		q = `UPDATE expeditions SET status = 'pending', updated_at = now()
			WHERE id = $1 AND status = 'confirmed'`
		if _, err := tx.Exec(ctx, q, updated.ExpeditionID); err != nil {
			return model.Reservation{}, wrapErr(err)
		}
	}

	return updated, tx.Commit(ctx)
}

func (rr *ReservationRepo) ConfirmIfPending(ctx context.Context, id string) (model.Reservation, bool, error) {
	q := `UPDATE reservations
		SET status = 'confirmed', version = version + 1, updated_at = now()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + reservationColumns

	updated, err := scanReservation(rr.db.pool.QueryRow(ctx, q, id))
	if err == nil {
		return updated, true, nil
	}
	if !errors.Is(err, myerrors.ErrNotFound) {
		return model.Reservation{}, false, err
	}

	current, err := rr.GetByID(ctx, id)
	if err != nil {
		return model.Reservation{}, false, err
	}
	return current, false, nil
}

func (rr *ReservationRepo) UpsertProofAndDeliver(ctx context.Context, proof model.DeliveryProof) (model.DeliveryProof, model.Reservation, error) {
	tx, err := rr.db.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return model.DeliveryProof{}, model.Reservation{}, err
	}
	defer tx.Rollback(ctx)

	q := `INSERT INTO delivery_proofs(
			reservation_id, transporteur_id, photo_url, recipient_name,
			signature_data, notes
		) VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''))
		ON CONFLICT (reservation_id) DO UPDATE SET
			photo_url = EXCLUDED.photo_url,
			recipient_name = EXCLUDED.recipient_name,
			signature_data = EXCLUDED.signature_data,
			notes = EXCLUDED.notes,
			delivered_at = now()
		RETURNING id, reservation_id, transporteur_id, photo_url, recipient_name,
			COALESCE(signature_data, ''), COALESCE(notes, ''), delivered_at`

	row := tx.QueryRow(ctx, q,
		proof.ReservationID,
		proof.TransporteurID,
		proof.PhotoURL,
		proof.RecipientName,
		proof.SignatureData,
		proof.Notes,
	)
	stored, err := scanProof(row)
	if err != nil {
		return model.DeliveryProof{}, model.Reservation{}, err
	}

	q = `UPDATE reservations
		SET status = 'delivered', version = version + 1, updated_at = now()
		WHERE id = $1
		RETURNING ` + reservationColumns

	reservation, err := scanReservation(tx.QueryRow(ctx, q, proof.ReservationID))
	if err != nil {
		return model.DeliveryProof{}, model.Reservation{}, err
	}

	q = `UPDATE expeditions SET status = 'delivered', updated_at = now() WHERE id = $1`
	if _, err := tx.Exec(ctx, q, reservation.ExpeditionID); err != nil {
		return model.DeliveryProof{}, model.Reservation{}, wrapErr(err)
	}

	return stored, reservation, tx.Commit(ctx)
}

func (rr *ReservationRepo) GetProof(ctx context.Context, reservationID string) (model.DeliveryProof, error) {
	q := `SELECT id, reservation_id, transporteur_id, photo_url, recipient_name,
			COALESCE(signature_data, ''), COALESCE(notes, ''), delivered_at
		FROM delivery_proofs WHERE reservation_id = $1`
	return scanProof(rr.db.pool.QueryRow(ctx, q, reservationID))
}

func scanReservation(row rowScanner) (model.Reservation, error) {
	var (
		m        model.Reservation
		pickup   sql.NullTime
		delivery sql.NullTime
	)
	err := row.Scan(
		&m.ID,
		&m.ExpeditionID,
		&m.TripID,
		&m.ClientID,
		&m.TransporteurID,
		&m.TotalPrice,
		&m.PickupAddress,
		&m.DeliveryAddress,
		&pickup,
		&delivery,
		&m.TrackingCode,
		&m.Status,
		&m.Version,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return model.Reservation{}, wrapErr(err)
	}
	m.PickupDate = pickup.Time
	m.DeliveryDate = delivery.Time
	return m, nil
}

func scanProof(row rowScanner) (model.DeliveryProof, error) {
	var p model.DeliveryProof
	err := row.Scan(
		&p.ID,
		&p.ReservationID,
		&p.TransporteurID,
		&p.PhotoURL,
		&p.RecipientName,
		&p.SignatureData,
		&p.Notes,
		&p.DeliveredAt,
	)
	if err != nil {
		return model.DeliveryProof{}, wrapErr(err)
	}
	return p, nil
}
