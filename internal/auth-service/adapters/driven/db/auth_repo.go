package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/auth-service/core/domain/model"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/auth-service/core/myerrors"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/auth-service/core/ports"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type AuthRepo struct {
	db *DB
}

func NewAuthRepo(db *DB) ports.IAuthRepo {
	return &AuthRepo{db: db}
}

func (ar *AuthRepo) CreateUser(ctx context.Context, user model.User, profile model.Profile) (string, error) {
	tx, err := ar.db.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	q := `INSERT INTO users (email, password_hash, role)
		VALUES ($1, $2, $3) RETURNING id`

	id := ""
	row := tx.QueryRow(ctx, q, user.Email, user.PasswordHash, user.Role)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", myerrors.ErrEmailRegistered
		}
		return "", fmt.Errorf("failed to insert user: %w", err)
	}

	q = `INSERT INTO profiles (user_id, first_name, last_name, phone)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''))`
	if _, err := tx.Exec(ctx, q, id, profile.FirstName, profile.LastName, profile.Phone); err != nil {
		return "", fmt.Errorf("failed to insert profile: %w", err)
	}

	return id, tx.Commit(ctx)
}

func (ar *AuthRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	q := `SELECT id, email, password_hash, role, created_at FROM users WHERE email = $1`

	var u model.User
	err := ar.db.pool.QueryRow(ctx, q, email).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, myerrors.ErrUnknownEmail
		}
		return model.User{}, err
	}
	return u, nil
}

func (ar *AuthRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	q := `SELECT id, email, password_hash, role, created_at FROM users WHERE id = $1`

	var u model.User
	err := ar.db.pool.QueryRow(ctx, q, id).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, myerrors.ErrNotFound
		}
		return model.User{}, err
	}
	return u, nil
}
