package db

import (
	"context"
	"errors"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/auth-service/core/domain/model"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/auth-service/core/myerrors"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/auth-service/core/ports"

	"github.com/jackc/pgx/v5"
)

type ProfileRepo struct {
	db *DB
}

func NewProfileRepo(db *DB) ports.IProfileRepo {
	return &ProfileRepo{db: db}
}

const profileColumns = `
	id, user_id, COALESCE(first_name, ''), COALESCE(last_name, ''),
	COALESCE(phone, ''), COALESCE(whatsapp, ''), COALESCE(avatar_url, ''),
	is_verified, created_at, updated_at`

func (pr *ProfileRepo) GetByUserID(ctx context.Context, userID string) (model.Profile, error) {
	q := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	return scanProfile(pr.db.pool.QueryRow(ctx, q, userID))
}

func (pr *ProfileRepo) Update(ctx context.Context, p model.Profile) (model.Profile, error) {
	q := `UPDATE profiles SET
			first_name = NULLIF($2, ''),
			last_name = NULLIF($3, ''),
			phone = NULLIF($4, ''),
			whatsapp = NULLIF($5, ''),
			avatar_url = NULLIF($6, ''),
			updated_at = now()
		WHERE user_id = $1
		RETURNING ` + profileColumns

	row := pr.db.pool.QueryRow(ctx, q,
		p.UserID,
		p.FirstName,
		p.LastName,
		p.Phone,
		p.Whatsapp,
		p.AvatarURL,
	)
	return scanProfile(row)
}

func scanProfile(row pgx.Row) (model.Profile, error) {
	var p model.Profile
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.FirstName,
		&p.LastName,
		&p.Phone,
		&p.Whatsapp,
		&p.AvatarURL,
		&p.IsVerified,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Profile{}, myerrors.ErrNotFound
		}
		return model.Profile{}, err
	}
	return p, nil
}
