package db

import (
	"context"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/model"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/ports"
)

type ReviewRepo struct {
	db *DB
}

func NewReviewRepo(db *DB) ports.IReviewRepo {
	return &ReviewRepo{db: db}
}

func (rr *ReviewRepo) Create(ctx context.Context, m model.Review) (model.Review, error) {
	q := `INSERT INTO reviews(reservation_id, reviewer_id, reviewed_id, rating, comment)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		RETURNING id, reservation_id, reviewer_id, reviewed_id, rating,
			COALESCE(comment, ''), created_at`

	row := rr.db.pool.QueryRow(ctx, q,
		m.ReservationID,
		m.ReviewerID,
		m.ReviewedID,
		m.Rating,
		m.Comment,
	)
	return scanReview(row)
}

func (rr *ReviewRepo) ListForUser(ctx context.Context, reviewedID string, limit int) ([]model.Review, error) {
	q := `SELECT id, reservation_id, reviewer_id, reviewed_id, rating,
			COALESCE(comment, ''), created_at
		FROM reviews WHERE reviewed_id = $1
		ORDER BY created_at DESC LIMIT $2`

	rows, err := rr.db.pool.Query(ctx, q, reviewedID, limit)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	var list []model.Review
	for rows.Next() {
		m, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, wrapErr(rows.Err())
}

func scanReview(row rowScanner) (model.Review, error) {
	var m model.Review
	err := row.Scan(
		&m.ID,
		&m.ReservationID,
		&m.ReviewerID,
		&m.ReviewedID,
		&m.Rating,
		&m.Comment,
		&m.CreatedAt,
	)
	if err != nil {
		return model.Review{}, wrapErr(err)
	}
	return m, nil
}
