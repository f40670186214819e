package db

import (
	"context"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/ports"
)

type ProfileGuard struct {
	db *DB
}

func NewProfileGuard(db *DB) ports.IProfileGuard {
	return &ProfileGuard{db: db}
}

func (pg *ProfileGuard) IsVerified(ctx context.Context, userID string) (bool, error) {
	q := `SELECT COALESCE(
		(SELECT is_verified FROM profiles WHERE user_id = $1), false)`

	var verified bool
	if err := pg.db.pool.QueryRow(ctx, q, userID).Scan(&verified); err != nil {
		return false, wrapErr(err)
	}
	return verified, nil
}
