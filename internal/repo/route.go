package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/TripTune-Project/TripTune-Backend-sub001/internal/domain"
)

// RouteRepo defines the persistence operations for Routes — the ordered
// stops of a schedule. Orders are maintained by appending at count+1 and by
// full replace; individual deletes do not exist, so gaps never appear.
type RouteRepo interface {
	// Append inserts a new route row with the given order and returns the
	// persisted record.
	Append(ctx context.Context, route domain.Route) (domain.Route, error)

	// ListBySchedule returns one page of a schedule's stops ascending by
	// route_order, joined with place display fields, plus the total count.
	ListBySchedule(ctx context.Context, scheduleID uuid.UUID, p domain.PaginationParams) ([]domain.RouteStop, int64, error)

	// CountBySchedule returns the number of stops on a schedule.
	CountBySchedule(ctx context.Context, scheduleID uuid.UUID) (int64, error)
}

// pgRouteRepo is the Postgres implementation of RouteRepo.
type pgRouteRepo struct {
	db db
}

// NewRouteRepo constructs a RouteRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewRouteRepo(db db) RouteRepo {
	return &pgRouteRepo{db: db}
}

func (r *pgRouteRepo) Append(ctx context.Context, route domain.Route) (domain.Route, error) {
	const q = `
		INSERT INTO routes (schedule_id, place_id, route_order)
		VALUES (@schedule_id, @place_id, @route_order)
		RETURNING id, schedule_id, place_id, route_order, created_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"schedule_id": route.ScheduleID,
		"place_id":    route.PlaceID,
		"route_order": route.Order,
	})
	created, err := scanRoute(row)
	if err != nil {
		return domain.Route{}, fmt.Errorf("repo.RouteRepo.Append: %w", err)
	}
	return created, nil
}

func (r *pgRouteRepo) ListBySchedule(ctx context.Context, scheduleID uuid.UUID, p domain.PaginationParams) ([]domain.RouteStop, int64, error) {
	const q = `
		SELECT r.id, r.schedule_id, r.place_id, r.route_order, r.created_at,
		       pl.name, pl.address, pl.latitude, pl.longitude,
		       COALESCE((
		           SELECT pi.url FROM place_images pi
		           WHERE pi.place_id = pl.id AND pi.is_thumbnail
		       ), '') AS thumbnail_url
		FROM routes r
		JOIN places pl ON pl.id = r.place_id
		WHERE r.schedule_id = @schedule_id
		ORDER BY r.route_order
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"schedule_id": scheduleID,
		"limit":       p.Limit,
		"offset":      p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.RouteRepo.ListBySchedule: %w", err)
	}
	defer rows.Close()

	var out []domain.RouteStop
	for rows.Next() {
		var (
			stop    domain.RouteStop
			id      pgtype.UUID
			schedID pgtype.UUID
			placeID pgtype.UUID
		)
		err := rows.Scan(&id, &schedID, &placeID, &stop.Order, &stop.CreatedAt,
			&stop.PlaceName, &stop.Address, &stop.Latitude, &stop.Longitude, &stop.ThumbnailURL)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.RouteRepo.ListBySchedule: scan: %w", err)
		}
		stop.ID = uuid.UUID(id.Bytes)
		stop.ScheduleID = uuid.UUID(schedID.Bytes)
		stop.PlaceID = uuid.UUID(placeID.Bytes)
		out = append(out, stop)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.RouteRepo.ListBySchedule: rows: %w", err)
	}

	total, err := r.CountBySchedule(ctx, scheduleID)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *pgRouteRepo) CountBySchedule(ctx context.Context, scheduleID uuid.UUID) (int64, error) {
	const q = `SELECT count(*) FROM routes WHERE schedule_id = @schedule_id`

	var n int64
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"schedule_id": scheduleID}).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("repo.RouteRepo.CountBySchedule: %w", err)
	}
	return n, nil
}

// replaceRoutes deletes every route row of the schedule and re-inserts the
// given entries on the provided transaction. ScheduleRepo.UpdateWithRoutes
// calls it so the scalar update and the route swap commit or roll back as
// one unit.
func replaceRoutes(ctx context.Context, tx pgx.Tx, scheduleID uuid.UUID, entries []domain.RouteEntry) error {
	const del = `DELETE FROM routes WHERE schedule_id = @schedule_id`
	if _, err := tx.Exec(ctx, del, pgx.NamedArgs{"schedule_id": scheduleID}); err != nil {
		return err
	}

	const ins = `
		INSERT INTO routes (schedule_id, place_id, route_order)
		VALUES (@schedule_id, @place_id, @route_order)`
	for _, e := range entries {
		_, err := tx.Exec(ctx, ins, pgx.NamedArgs{
			"schedule_id": scheduleID,
			"place_id":    e.PlaceID,
			"route_order": e.Order,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// scanRoute maps a single database row into a domain.Route.
func scanRoute(s scanner) (domain.Route, error) {
	var (
		route   domain.Route
		id      pgtype.UUID
		schedID pgtype.UUID
		placeID pgtype.UUID
	)

	err := s.Scan(&id, &schedID, &placeID, &route.Order, &route.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Route{}, domain.ErrNotFound
		}
		return domain.Route{}, err
	}

	route.ID = uuid.UUID(id.Bytes)
	route.ScheduleID = uuid.UUID(schedID.Bytes)
	route.PlaceID = uuid.UUID(placeID.Bytes)
	return route, nil
}
