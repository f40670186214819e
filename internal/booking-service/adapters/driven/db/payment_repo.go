package db

import (
	"context"
	"database/sql"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/model"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/myerrors"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/ports"
)

type PaymentRepo struct {
	db *DB
}

func NewPaymentRepo(db *DB) ports.IPaymentRepo {
	return &PaymentRepo{db: db}
}

const paymentColumns = `
	id, reservation_id, client_id, transporteur_id, amount, currency,
	payment_method, commission_amount, transporteur_amount, status,
	processed_at, created_at`

func (pr *PaymentRepo) Create(ctx context.Context, m model.Payment) (model.Payment, error) {
	q := `INSERT INTO payments(
			reservation_id, client_id, transporteur_id, amount, currency,
			payment_method, commission_amount, transporteur_amount, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + paymentColumns

	row := pr.db.pool.QueryRow(ctx, q,
		m.ReservationID,
		m.ClientID,
		m.TransporteurID,
		m.Amount,
		m.Currency,
		m.PaymentMethod,
		m.CommissionAmount,
		m.TransporteurAmount,
		m.Status,
	)
	return scanPayment(row)
}

func (pr *PaymentRepo) SetStatus(ctx context.Context, id, status string) error {
	q := `UPDATE payments SET status = $2, processed_at = now() WHERE id = $1`

	tag, err := pr.db.pool.Exec(ctx, q, id, status)
	if err != nil {
		return wrapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return myerrors.ErrNotFound
	}
	return nil
}

func (pr *PaymentRepo) ListForUser(ctx context.Context, userID, role string) ([]model.Payment, error) {
	q := `SELECT ` + paymentColumns + ` FROM payments WHERE client_id = $1 ORDER BY created_at DESC`
	if role == "transporteur" {
		q = `SELECT ` + paymentColumns + ` FROM payments WHERE transporteur_id = $1 ORDER BY created_at DESC`
	}

	rows, err := pr.db.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	var list []model.Payment
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, wrapErr(rows.Err())
}

func (pr *PaymentRepo) Earnings(ctx context.Context, transporteurID string) (dto.EarningsResponse, error) {
	q := `SELECT
			COALESCE(SUM(transporteur_amount) FILTER (WHERE status = 'completed'), 0),
			COALESCE(SUM(commission_amount) FILTER (WHERE status = 'completed'), 0),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COALESCE(SUM(transporteur_amount) FILTER (WHERE status IN ('pending', 'processing')), 0)
		FROM payments
		WHERE transporteur_id = $1`

	var res dto.EarningsResponse
	err := pr.db.pool.QueryRow(ctx, q, transporteurID).Scan(
		&res.TotalEarned,
		&res.TotalCommission,
		&res.CompletedCount,
		&res.PendingAmount,
	)
	if err != nil {
		return dto.EarningsResponse{}, wrapErr(err)
	}
	return res, nil
}

func scanPayment(row rowScanner) (model.Payment, error) {
	var (
		m         model.Payment
		processed sql.NullTime
	)
	err := row.Scan(
		&m.ID,
		&m.ReservationID,
		&m.ClientID,
		&m.TransporteurID,
		&m.Amount,
		&m.Currency,
		&m.PaymentMethod,
		&m.CommissionAmount,
		&m.TransporteurAmount,
		&m.Status,
		&processed,
		&m.CreatedAt,
	)
	if err != nil {
		return model.Payment{}, wrapErr(err)
	}
	m.ProcessedAt = processed.Time
	return m, nil
}
