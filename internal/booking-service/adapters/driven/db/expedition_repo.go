package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/model"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/myerrors"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/ports"
)

type ExpeditionRepo struct {
	db *DB
}

func NewExpeditionRepo(db *DB) ports.IExpeditionRepo {
	return &ExpeditionRepo{db: db}
}

const expeditionColumns = `
	id, client_id, title, content_type, COALESCE(description, ''),
	weight_kg, COALESCE(dimensions_cm, ''), departure_city, destination_city,
	preferred_date, COALESCE(transport_type::text, ''), max_budget,
	COALESCE(photos, '{}'), status, created_at, updated_at`

func (er *ExpeditionRepo) Create(ctx context.Context, m model.Expedition) (model.Expedition, error) {
	q := `INSERT INTO expeditions(
			client_id, title, content_type, description, weight_kg, dimensions_cm,
			departure_city, destination_city, preferred_date, transport_type,
			max_budget, photos, status
		) VALUES ($1, $2, $3, NULLIF($4, ''), $5, NULLIF($6, ''), $7, $8, $9,
			NULLIF($10, '')::transport_type, $11, $12, $13)
		RETURNING ` + expeditionColumns

	row := er.db.pool.QueryRow(ctx, q,
		m.ClientID,
		m.Title,
		m.ContentType,
		m.Description,
		m.WeightKg,
		m.DimensionsCm,
		m.DepartureCity,
		m.DestinationCity,
		nullTime(m.PreferredDate),
		m.TransportType,
		nullFloat(m.MaxBudget),
		m.Photos,
		m.Status,
	)
	return scanExpedition(row)
}

func (er *ExpeditionRepo) GetByID(ctx context.Context, id string) (model.Expedition, error) {
	q := `SELECT ` + expeditionColumns + ` FROM expeditions WHERE id = $1`
	return scanExpedition(er.db.pool.QueryRow(ctx, q, id))
}

func (er *ExpeditionRepo) List(ctx context.Context, query dto.ListQuery) ([]model.Expedition, string, error) {
	q := `SELECT ` + expeditionColumns + ` FROM expeditions WHERE 1=1`
	args := []any{}

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if query.Status != "" && query.Status != "all" {
		q += ` AND status = ` + arg(query.Status) + `::shipment_status`
	}
	if query.TransportType != "" && query.TransportType != "all" {
		q += ` AND transport_type = ` + arg(query.TransportType) + `::transport_type`
	}
	if query.City != "" {
		p := arg("%" + query.City + "%")
		q += ` AND (departure_city ILIKE ` + p + ` OR destination_city ILIKE ` + p + `)`
	}
	if query.MineOnly {
		q += ` AND client_id = ` + arg(query.UserID)
	}
	if query.Cursor != "" {
		t, id, err := decodeCursor(query.Cursor)
		if err != nil {
			return nil, "", err
		}
		q += ` AND (created_at, id) < (` + arg(t) + `, ` + arg(id) + `)`
	}

	q += ` ORDER BY created_at DESC, id DESC LIMIT ` + arg(query.Limit+1)

	rows, err := er.db.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, "", wrapErr(err)
	}
	defer rows.Close()

	var list []model.Expedition
	for rows.Next() {
		m, err := scanExpedition(rows)
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
		next = encodeCursor(last.CreatedAt, last.ID)
	}
	return list, next, nil
}

func (er *ExpeditionRepo) Update(ctx context.Context, m model.Expedition) (model.Expedition, error) {
	q := `UPDATE expeditions SET
			title = $2,
			description = NULLIF($3, ''),
			weight_kg = $4,
			dimensions_cm = NULLIF($5, ''),
			preferred_date = $6,
			transport_type = NULLIF($7, '')::transport_type,
			max_budget = $8,
			updated_at = now()
		WHERE id = $1
		RETURNING ` + expeditionColumns

	row := er.db.pool.QueryRow(ctx, q,
		m.ID,
		m.Title,
		m.Description,
		m.WeightKg,
		m.DimensionsCm,
		nullTime(m.PreferredDate),
		m.TransportType,
		nullFloat(m.MaxBudget),
	)
	return scanExpedition(row)
}

func (er *ExpeditionRepo) Delete(ctx context.Context, id, clientID string) error {
	q := `DELETE FROM expeditions WHERE id = $1 AND client_id = $2 AND status = 'pending'`

	tag, err := er.db.pool.Exec(ctx, q, id, clientID)
	if err != nil {
		return wrapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return myerrors.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpedition(row rowScanner) (model.Expedition, error) {
	var (
		m         model.Expedition
		preferred sql.NullTime
		budget    sql.NullFloat64
	)
	err := row.Scan(
		&m.ID,
		&m.ClientID,
		&m.Title,
		&m.ContentType,
		&m.Description,
		&m.WeightKg,
		&m.DimensionsCm,
		&m.DepartureCity,
		&m.DestinationCity,
		&preferred,
		&m.TransportType,
		&budget,
		&m.Photos,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return model.Expedition{}, wrapErr(err)
	}
	m.PreferredDate = preferred.Time
	m.MaxBudget = budget.Float64
	return m, nil
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

func nullFloat(f float64) any {
	if f == 0 {
		return nil
	}
	return f
}
