package db

import (
	"context"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/ports"
)

type StatsRepo struct {
	db *DB
}

func NewStatsRepo(db *DB) ports.IStatsRepo {
	return &StatsRepo{db: db}
}

func (sr *StatsRepo) Dashboard(ctx context.Context, userID, role string) (dto.DashboardStats, error) {
	var stats dto.DashboardStats

	if role == "transporteur" {
		q := `SELECT
				(SELECT COUNT(*) FROM trips WHERE transporteur_id = $1),
				(SELECT COUNT(*) FROM reservations
					WHERE transporteur_id = $1 AND status IN ('pending', 'confirmed', 'in_transit')),
				(SELECT COUNT(*) FROM reservations
					WHERE transporteur_id = $1 AND status = 'delivered'),
				(SELECT COALESCE(SUM(transporteur_amount), 0) FROM payments
					WHERE transporteur_id = $1 AND status = 'completed')`

		err := sr.db.pool.QueryRow(ctx, q, userID).Scan(
			&stats.TripCount,
			&stats.ActiveReservations,
			&stats.DeliveredCount,
			&stats.TotalAmount,
		)
		if err != nil {
			return dto.DashboardStats{}, wrapErr(err)
		}
	} else {
		q := `SELECT
				(SELECT COUNT(*) FROM expeditions WHERE client_id = $1),
				(SELECT COUNT(*) FROM reservations
					WHERE client_id = $1 AND status IN ('pending', 'confirmed', 'in_transit')),
				(SELECT COUNT(*) FROM reservations
					WHERE client_id = $1 AND status = 'delivered'),
				(SELECT COALESCE(SUM(amount), 0) FROM payments
					WHERE client_id = $1 AND status = 'completed')`

		err := sr.db.pool.QueryRow(ctx, q, userID).Scan(
			&stats.ExpeditionCount,
			&stats.ActiveReservations,
			&stats.DeliveredCount,
			&stats.TotalAmount,
		)
		if err != nil {
			return dto.DashboardStats{}, wrapErr(err)
		}
	}

	routes, err := sr.topRoutes(ctx, userID, role)
	if err != nil {
		return dto.DashboardStats{}, err
	}
	stats.TopRoutes = routes
	return stats, nil
}

func (sr *StatsRepo) topRoutes(ctx context.Context, userID, role string) ([]dto.RouteCount, error) {
	q := `SELECT e.departure_city, e.destination_city, COUNT(*)
		FROM reservations r
		JOIN expeditions e ON e.id = r.expedition_id
		WHERE r.client_id = $1
		GROUP BY e.departure_city, e.destination_city
		ORDER BY COUNT(*) DESC, e.departure_city
		LIMIT 5`
	if role == "transporteur" {
		q = `SELECT t.departure_city, t.destination_city, COUNT(*)
			FROM reservations r
			JOIN trips t ON t.id = r.trip_id
			WHERE r.transporteur_id = $1
			GROUP BY t.departure_city, t.destination_city
			ORDER BY COUNT(*) DESC, t.departure_city
			LIMIT 5`
	}

	rows, err := sr.db.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	var routes []dto.RouteCount
	for rows.Next() {
		var rc dto.RouteCount
		if err := rows.Scan(&rc.DepartureCity, &rc.DestinationCity, &rc.Count); err != nil {
			return nil, wrapErr(err)
		}
		routes = append(routes, rc)
	}
	return routes, wrapErr(rows.Err())
}
