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

// PlaceRepo defines read access to the travel place catalog. The catalog is
// loaded out-of-band, so there are no write operations. Keyword and
// proximity queries return unranked candidate sets; relevance ranking and
// exact distance filtering happen in the service layer.
type PlaceRepo interface {
	// GetByID retrieves a place by primary key.
	// Returns domain.ErrNotFound if no place with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Place, error)

	// ListByIDs returns the places matching the given ids. Missing ids are
	// simply absent from the result; callers detect them by comparing sets.
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Place, error)

	// List returns one page of the whole catalog ordered by name, plus the
	// total count. Used by the schedule detail place-browsing tab.
	List(ctx context.Context, p domain.PaginationParams) ([]domain.Place, int64, error)

	// ListByArea returns one page of places filtered by the country/city/
	// district hierarchy, ordered by name. Empty strings widen the filter.
	ListByArea(ctx context.Context, country, city, district string, p domain.PaginationParams) ([]domain.Place, int64, error)

	// SearchByKeyword returns all places where the keyword appears in the
	// name, country, city, or district, in id order.
	SearchByKeyword(ctx context.Context, keyword string) ([]domain.Place, error)

	// ListInBox returns all places inside the latitude/longitude box, used
	// as a coarse prefilter for proximity queries.
	ListInBox(ctx context.Context, minLat, maxLat, minLon, maxLon float64) ([]domain.Place, error)
}

// pgPlaceRepo is the Postgres implementation of PlaceRepo.
type pgPlaceRepo struct {
	db db
}

// NewPlaceRepo constructs a PlaceRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPlaceRepo(db db) PlaceRepo {
	return &pgPlaceRepo{db: db}
}

// placeSelect joins each place with its thumbnail image URL (empty when the
// place has no thumbnail).
const placeSelect = `
	SELECT p.id, p.country, p.city, p.district, p.name, p.address,
	       p.latitude, p.longitude,
	       COALESCE((
	           SELECT pi.url FROM place_images pi
	           WHERE pi.place_id = p.id AND pi.is_thumbnail
	       ), '') AS thumbnail_url,
	       p.created_at
	FROM places p`

func (r *pgPlaceRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Place, error) {
	q := placeSelect + `
	WHERE p.id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	p, err := scanPlace(row)
	if err != nil {
		return domain.Place{}, fmt.Errorf("repo.PlaceRepo.GetByID: %w", err)
	}
	return p, nil
}

func (r *pgPlaceRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Place, error) {
	if len(ids) == 0 {
		return []domain.Place{}, nil
	}
	q := placeSelect + `
	WHERE p.id = ANY(@ids)`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"ids": ids})
	if err != nil {
		return nil, fmt.Errorf("repo.PlaceRepo.ListByIDs: %w", err)
	}
	defer rows.Close()

	return collectPlaces(rows, "repo.PlaceRepo.ListByIDs")
}

func (r *pgPlaceRepo) List(ctx context.Context, p domain.PaginationParams) ([]domain.Place, int64, error) {
	q := placeSelect + `
	ORDER BY p.name, p.id
	LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.PlaceRepo.List: %w", err)
	}
	defer rows.Close()

	places, err := collectPlaces(rows, "repo.PlaceRepo.List")
	if err != nil {
		return nil, 0, err
	}

	var total int64
	err = r.db.QueryRow(ctx, `SELECT count(*) FROM places`).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.PlaceRepo.List: count: %w", err)
	}
	return places, total, nil
}

func (r *pgPlaceRepo) ListByArea(ctx context.Context, country, city, district string, p domain.PaginationParams) ([]domain.Place, int64, error) {
	// Empty filter values match every row of their level, so callers can
	// browse a whole country or city without special-casing.
	const where = `
	WHERE (@country = '' OR p.country = @country)
	  AND (@city = '' OR p.city = @city)
	  AND (@district = '' OR p.district = @district)`

	q := placeSelect + where + `
	ORDER BY p.name, p.id
	LIMIT @limit OFFSET @offset`

	args := pgx.NamedArgs{
		"country":  country,
		"city":     city,
		"district": district,
		"limit":    p.Limit,
		"offset":   p.Offset(),
	}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.PlaceRepo.ListByArea: %w", err)
	}
	defer rows.Close()

	places, err := collectPlaces(rows, "repo.PlaceRepo.ListByArea")
	if err != nil {
		return nil, 0, err
	}

	var total int64
	countArgs := pgx.NamedArgs{"country": country, "city": city, "district": district}
	err = r.db.QueryRow(ctx, `SELECT count(*) FROM places p`+where, countArgs).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.PlaceRepo.ListByArea: count: %w", err)
	}
	return places, total, nil
}

func (r *pgPlaceRepo) SearchByKeyword(ctx context.Context, keyword string) ([]domain.Place, error) {
	q := placeSelect + `
	WHERE p.name ILIKE '%' || @keyword || '%'
	   OR p.country ILIKE '%' || @keyword || '%'
	   OR p.city ILIKE '%' || @keyword || '%'
	   OR p.district ILIKE '%' || @keyword || '%'
	ORDER BY p.id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"keyword": keyword})
	if err != nil {
		return nil, fmt.Errorf("repo.PlaceRepo.SearchByKeyword: %w", err)
	}
	defer rows.Close()

	return collectPlaces(rows, "repo.PlaceRepo.SearchByKeyword")
}

func (r *pgPlaceRepo) ListInBox(ctx context.Context, minLat, maxLat, minLon, maxLon float64) ([]domain.Place, error) {
	q := placeSelect + `
	WHERE p.latitude BETWEEN @min_lat AND @max_lat
	  AND p.longitude BETWEEN @min_lon AND @max_lon`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"min_lat": minLat,
		"max_lat": maxLat,
		"min_lon": minLon,
		"max_lon": maxLon,
	})
	if err != nil {
		return nil, fmt.Errorf("repo.PlaceRepo.ListInBox: %w", err)
	}
	defer rows.Close()

	return collectPlaces(rows, "repo.PlaceRepo.ListInBox")
}

// collectPlaces drains rows into domain.Place values.
func collectPlaces(rows pgx.Rows, op string) ([]domain.Place, error) {
	var out []domain.Place
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return out, nil
}

// scanPlace maps a single database row into a domain.Place.
func scanPlace(s scanner) (domain.Place, error) {
	var (
		p  domain.Place
		id pgtype.UUID
	)

	err := s.Scan(&id, &p.Country, &p.City, &p.District, &p.Name, &p.Address,
		&p.Latitude, &p.Longitude, &p.ThumbnailURL, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Place{}, domain.ErrNotFound
		}
		return domain.Place{}, err
	}

	p.ID = uuid.UUID(id.Bytes)
	return p, nil
}
