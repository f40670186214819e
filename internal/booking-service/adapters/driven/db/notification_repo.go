package db

import (
	"context"
	"encoding/json"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/model"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/myerrors"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/ports"
)

type NotificationRepo struct {
	db *DB
}

func NewNotificationRepo(db *DB) ports.INotificationRepo {
	return &NotificationRepo{db: db}
}

func (nr *NotificationRepo) Create(ctx context.Context, m model.Notification) (model.Notification, error) {
	var data []byte
	if m.Data != nil {
		b, err := json.Marshal(m.Data)
		if err != nil {
			return model.Notification{}, err
		}
		data = b
	}

	q := `INSERT INTO notifications(user_id, type, title, message, data)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, type, title, message, data, read, created_at`

	row := nr.db.pool.QueryRow(ctx, q, m.UserID, m.Type, m.Title, m.Message, data)
	return scanNotification(row)
}

func (nr *NotificationRepo) ListForUser(ctx context.Context, userID string, limit int) ([]model.Notification, int, error) {
	q := `SELECT id, user_id, type, title, message, data, read, created_at
		FROM notifications WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2`

	rows, err := nr.db.pool.Query(ctx, q, userID, limit)
	if err != nil {
		return nil, 0, wrapErr(err)
	}
	defer rows.Close()

	var list []model.Notification
	for rows.Next() {
		m, err := scanNotification(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, wrapErr(err)
	}

	var unread int
	q = `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT read`
	if err := nr.db.pool.QueryRow(ctx, q, userID).Scan(&unread); err != nil {
		return nil, 0, wrapErr(err)
	}
	return list, unread, nil
}

func (nr *NotificationRepo) MarkRead(ctx context.Context, id, userID string) error {
	q := `UPDATE notifications SET read = true WHERE id = $1 AND user_id = $2`

	tag, err := nr.db.pool.Exec(ctx, q, id, userID)
	if err != nil {
		return wrapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return myerrors.ErrNotFound
	}
	return nil
}

func (nr *NotificationRepo) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	q := `UPDATE notifications SET read = true WHERE user_id = $1 AND NOT read`

	tag, err := nr.db.pool.Exec(ctx, q, userID)
	if err != nil {
		return 0, wrapErr(err)
	}
	return tag.RowsAffected(), nil
}

func (nr *NotificationRepo) Delete(ctx context.Context, id, userID string) error {
	q := `DELETE FROM notifications WHERE id = $1 AND user_id = $2`

	tag, err := nr.db.pool.Exec(ctx, q, id, userID)
	if err != nil {
		return wrapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return myerrors.ErrNotFound
	}
	return nil
}

func scanNotification(row rowScanner) (model.Notification, error) {
	var (
		m    model.Notification
		data []byte
	)
	err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.Type,
		&m.Title,
		&m.Message,
		&data,
		&m.Read,
		&m.CreatedAt,
	)
	if err != nil {
		return model.Notification{}, wrapErr(err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &m.Data); err != nil {
			return model.Notification{}, err
		}
	}
	return m, nil
}
