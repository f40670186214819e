package db

import (
	"context"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/model"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/ports"
)

type MessageRepo struct {
	db *DB
}

func NewMessageRepo(db *DB) ports.IMessageRepo {
	return &MessageRepo{db: db}
}

func (mr *MessageRepo) Create(ctx context.Context, m model.Message) (model.Message, error) {
	q := `INSERT INTO messages(reservation_id, sender_id, message)
		VALUES ($1, $2, $3)
		RETURNING id, reservation_id, sender_id, message, is_read, created_at`

	row := mr.db.pool.QueryRow(ctx, q, m.ReservationID, m.SenderID, m.Message)
	return scanMessage(row)
}

func (mr *MessageRepo) ListForReservation(ctx context.Context, reservationID string) ([]model.Message, error) {
	q := `SELECT id, reservation_id, sender_id, message, is_read, created_at
		FROM messages WHERE reservation_id = $1
		ORDER BY created_at ASC`

	rows, err := mr.db.pool.Query(ctx, q, reservationID)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	var list []model.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, wrapErr(rows.Err())
}

func (mr *MessageRepo) MarkRead(ctx context.Context, reservationID, readerID string) error {
	q := `UPDATE messages SET is_read = true
		WHERE reservation_id = $1 AND sender_id <> $2 AND NOT is_read`

	_, err := mr.db.pool.Exec(ctx, q, reservationID, readerID)
	return wrapErr(err)
}

func scanMessage(row rowScanner) (model.Message, error) {
	var m model.Message
	err := row.Scan(
		&m.ID,
		&m.ReservationID,
		&m.SenderID,
		&m.Message,
		&m.IsRead,
		&m.CreatedAt,
	)
	if err != nil {
		return model.Message{}, wrapErr(err)
	}
	return m, nil
}
