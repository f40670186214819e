package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/config"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/mylogger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DB struct {
	ctx   context.Context
	cfg   *config.DBconfig
	mylog mylogger.Logger
	pool  *pgxpool.Pool
}

// New opens the connection pool and runs pending migrations. Migrations are
// idempotent, so whichever service starts first applies them.
func New(ctx context.Context, dbCfg *config.DBconfig, mylog mylogger.Logger) (*DB, error) {
	d := &DB{
		ctx:   ctx,
		cfg:   dbCfg,
		mylog: mylog,
	}

	pool, err := pgxpool.New(ctx, fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		dbCfg.User,
		dbCfg.Password,
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.Database,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	d.pool = pool

	m, err := migrate.New("file://migrations", fmt.Sprintf(
		"pgx5://%s:%s@%s:%d/%s?sslmode=disable",
		dbCfg.User,
		dbCfg.Password,
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.Database,
	))
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate init: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		pool.Close()
		return nil, fmt.Errorf("migrate up: %w", err)
	}

	return d, nil
}

func (d *DB) Close() error {
	d.pool.Close()
	return nil
}

func (d *DB) IsAlive() error {
	if d.pool == nil {
		return fmt.Errorf("db is not initialized")
	}
	return d.pool.Ping(d.ctx)
}
