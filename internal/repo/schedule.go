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

// ScheduleRepo defines the persistence operations for Schedules.
// List and search results come back as ScheduleSummary rows, already joined
// with the author's nickname, the first-route thumbnail, and the attendee
// count, so the service layer never issues per-row follow-up queries.
type ScheduleRepo interface {
	// Create inserts a new schedule together with its AUTHOR/ALL attendee row
	// in one transaction, so a schedule can never exist without an author.
	// Returns the persisted schedule with DB-generated fields populated.
	Create(ctx context.Context, s domain.Schedule, authorMemberID uuid.UUID) (domain.Schedule, error)

	// GetByID retrieves a single schedule by primary key.
	// Returns domain.ErrNotFound if no schedule with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Schedule, error)

	// Update overwrites the mutable fields (name, dates) and bumps updated_at.
	// Returns domain.ErrNotFound if no schedule with that ID exists.
	Update(ctx context.Context, s domain.Schedule) (domain.Schedule, error)

	// UpdateWithRoutes overwrites the mutable fields and replaces the
	// schedule's entire route set with entries, all in one transaction: a
	// failure on any statement rolls the whole operation back, leaving both
	// the scalar fields and the prior routes untouched. An empty entries
	// slice leaves the schedule with zero routes.
	// Returns domain.ErrNotFound if no schedule with that ID exists.
	UpdateWithRoutes(ctx context.Context, s domain.Schedule, entries []domain.RouteEntry) (domain.Schedule, error)

	// Delete removes a schedule by ID. Attendee and route rows go with it via
	// ON DELETE CASCADE. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByMember returns one page of schedules the member attends, newest
	// update first. With sharedOnly set, only schedules with more than one
	// attendee are included.
	ListByMember(ctx context.Context, memberID uuid.UUID, sharedOnly bool, p domain.PaginationParams) ([]domain.ScheduleSummary, error)

	// CountByMember returns the total number of schedules the member attends,
	// with the same sharedOnly semantics as ListByMember.
	CountByMember(ctx context.Context, memberID uuid.UUID, sharedOnly bool) (int64, error)

	// ListEditableByMember returns one page of schedules where the member
	// holds EDIT or ALL permission, newest update first.
	ListEditableByMember(ctx context.Context, memberID uuid.UUID, p domain.PaginationParams) ([]domain.ScheduleSummary, error)

	// CountEditableByMember returns the total for ListEditableByMember, with
	// the same sharedOnly semantics as CountByMember.
	CountEditableByMember(ctx context.Context, memberID uuid.UUID, sharedOnly bool) (int64, error)

	// SearchByMember returns all schedules the member attends whose name
	// contains keyword, in no particular order. The service layer applies
	// relevance ranking and pagination.
	SearchByMember(ctx context.Context, memberID uuid.UUID, keyword string, sharedOnly bool) ([]domain.ScheduleSummary, error)
}

// pgScheduleRepo is the Postgres implementation of ScheduleRepo.
type pgScheduleRepo struct {
	db db
}

// NewScheduleRepo constructs a ScheduleRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewScheduleRepo(db db) ScheduleRepo {
	return &pgScheduleRepo{db: db}
}

func (r *pgScheduleRepo) Create(ctx context.Context, s domain.Schedule, authorMemberID uuid.UUID) (domain.Schedule, error) {
	var created domain.Schedule

	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		const insertSchedule = `
			INSERT INTO schedules (name, start_date, end_date)
			VALUES (@name, @start_date, @end_date)
			RETURNING id, name, start_date, end_date, created_at, updated_at`

		row := tx.QueryRow(ctx, insertSchedule, pgx.NamedArgs{
			"name":       s.Name,
			"start_date": s.StartDate,
			"end_date":   s.EndDate,
		})
		var err error
		created, err = scanSchedule(row)
		if err != nil {
			return err
		}

		const insertAuthor = `
			INSERT INTO attendees (schedule_id, member_id, role, permission)
			VALUES (@schedule_id, @member_id, @role, @permission)`

		_, err = tx.Exec(ctx, insertAuthor, pgx.NamedArgs{
			"schedule_id": created.ID,
			"member_id":   authorMemberID,
			"role":        domain.RoleAuthor,
			"permission":  domain.PermissionAll,
		})
		return err
	})
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("repo.ScheduleRepo.Create: %w", err)
	}
	return created, nil
}

func (r *pgScheduleRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Schedule, error) {
	const q = `
		SELECT id, name, start_date, end_date, created_at, updated_at
		FROM schedules
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	s, err := scanSchedule(row)
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("repo.ScheduleRepo.GetByID: %w", err)
	}
	return s, nil
}

func (r *pgScheduleRepo) Update(ctx context.Context, s domain.Schedule) (domain.Schedule, error) {
	const q = `
		UPDATE schedules
		SET name       = @name,
		    start_date = @start_date,
		    end_date   = @end_date,
		    updated_at = now()
		WHERE id = @id
		RETURNING id, name, start_date, end_date, created_at, updated_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"id":         s.ID,
		"name":       s.Name,
		"start_date": s.StartDate,
		"end_date":   s.EndDate,
	})
	updated, err := scanSchedule(row)
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("repo.ScheduleRepo.Update: %w", err)
	}
	return updated, nil
}

func (r *pgScheduleRepo) UpdateWithRoutes(ctx context.Context, s domain.Schedule, entries []domain.RouteEntry) (domain.Schedule, error) {
	var updated domain.Schedule

	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		const q = `
			UPDATE schedules
			SET name       = @name,
			    start_date = @start_date,
			    end_date   = @end_date,
			    updated_at = now()
			WHERE id = @id
			RETURNING id, name, start_date, end_date, created_at, updated_at`

		row := tx.QueryRow(ctx, q, pgx.NamedArgs{
			"id":         s.ID,
			"name":       s.Name,
			"start_date": s.StartDate,
			"end_date":   s.EndDate,
		})
		var err error
		updated, err = scanSchedule(row)
		if err != nil {
			return err
		}
		return replaceRoutes(ctx, tx, s.ID, entries)
	})
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("repo.ScheduleRepo.UpdateWithRoutes: %w", err)
	}
	return updated, nil
}

func (r *pgScheduleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM schedules WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ScheduleRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ScheduleRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// summarySelect is the shared projection for list and search queries:
// schedule fields plus author nickname, first-route thumbnail, and attendee
// count. @member_id binds the requesting member's attendee row.
const summarySelect = `
	SELECT s.id, s.name, s.start_date, s.end_date, s.created_at, s.updated_at,
	       m.nickname,
	       COALESCE((
	           SELECT pi.url
	           FROM routes r
	           JOIN place_images pi ON pi.place_id = r.place_id AND pi.is_thumbnail
	           WHERE r.schedule_id = s.id
	           ORDER BY r.route_order
	           LIMIT 1
	       ), '') AS thumbnail_url,
	       (SELECT count(*) FROM attendees ac WHERE ac.schedule_id = s.id) AS attendee_count
	FROM schedules s
	JOIN attendees a  ON a.schedule_id = s.id AND a.member_id = @member_id
	JOIN attendees au ON au.schedule_id = s.id AND au.role = 'AUTHOR'
	JOIN members m    ON m.id = au.member_id`

func (r *pgScheduleRepo) ListByMember(ctx context.Context, memberID uuid.UUID, sharedOnly bool, p domain.PaginationParams) ([]domain.ScheduleSummary, error) {
	q := summarySelect
	if sharedOnly {
		q += `
	WHERE (SELECT count(*) FROM attendees ac WHERE ac.schedule_id = s.id) > 1`
	}
	q += `
	ORDER BY s.updated_at DESC, s.id DESC
	LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"member_id": memberID,
		"limit":     p.Limit,
		"offset":    p.Offset(),
	})
	if err != nil {
		return nil, fmt.Errorf("repo.ScheduleRepo.ListByMember: %w", err)
	}
	defer rows.Close()

	return collectSummaries(rows, "repo.ScheduleRepo.ListByMember")
}

func (r *pgScheduleRepo) CountByMember(ctx context.Context, memberID uuid.UUID, sharedOnly bool) (int64, error) {
	q := `
		SELECT count(*)
		FROM attendees a
		WHERE a.member_id = @member_id`
	if sharedOnly {
		q += `
		  AND (SELECT count(*) FROM attendees ac WHERE ac.schedule_id = a.schedule_id) > 1`
	}

	var n int64
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"member_id": memberID}).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("repo.ScheduleRepo.CountByMember: %w", err)
	}
	return n, nil
}

func (r *pgScheduleRepo) ListEditableByMember(ctx context.Context, memberID uuid.UUID, p domain.PaginationParams) ([]domain.ScheduleSummary, error) {
	q := summarySelect + `
	WHERE a.permission IN ('EDIT', 'ALL')
	ORDER BY s.updated_at DESC, s.id DESC
	LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"member_id": memberID,
		"limit":     p.Limit,
		"offset":    p.Offset(),
	})
	if err != nil {
		return nil, fmt.Errorf("repo.ScheduleRepo.ListEditableByMember: %w", err)
	}
	defer rows.Close()

	return collectSummaries(rows, "repo.ScheduleRepo.ListEditableByMember")
}

func (r *pgScheduleRepo) CountEditableByMember(ctx context.Context, memberID uuid.UUID, sharedOnly bool) (int64, error) {
	q := `
		SELECT count(*)
		FROM attendees a
		WHERE a.member_id = @member_id AND a.permission IN ('EDIT', 'ALL')`
	if sharedOnly {
		q += `
		  AND (SELECT count(*) FROM attendees ac WHERE ac.schedule_id = a.schedule_id) > 1`
	}

	var n int64
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"member_id": memberID}).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("repo.ScheduleRepo.CountEditableByMember: %w", err)
	}
	return n, nil
}

func (r *pgScheduleRepo) SearchByMember(ctx context.Context, memberID uuid.UUID, keyword string, sharedOnly bool) ([]domain.ScheduleSummary, error) {
	q := summarySelect + `
	WHERE s.name ILIKE '%' || @keyword || '%'`
	if sharedOnly {
		q += `
	  AND (SELECT count(*) FROM attendees ac WHERE ac.schedule_id = s.id) > 1`
	}

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"member_id": memberID,
		"keyword":   keyword,
	})
	if err != nil {
		return nil, fmt.Errorf("repo.ScheduleRepo.SearchByMember: %w", err)
	}
	defer rows.Close()

	return collectSummaries(rows, "repo.ScheduleRepo.SearchByMember")
}

// collectSummaries drains rows into ScheduleSummary values.
func collectSummaries(rows pgx.Rows, op string) ([]domain.ScheduleSummary, error) {
	var out []domain.ScheduleSummary
	for rows.Next() {
		var (
			sum   domain.ScheduleSummary
			id    pgtype.UUID
			start pgtype.Date
			end   pgtype.Date
		)
		err := rows.Scan(&id, &sum.Name, &start, &end, &sum.CreatedAt, &sum.UpdatedAt,
			&sum.AuthorNickname, &sum.ThumbnailURL, &sum.AttendeeCount)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		sum.ID = uuid.UUID(id.Bytes)
		sum.StartDate = start.Time
		sum.EndDate = end.Time
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return out, nil
}

// scanSchedule maps a single database row into a domain.Schedule.
// It handles the UUID and date conversions.
func scanSchedule(s scanner) (domain.Schedule, error) {
	var (
		sch   domain.Schedule
		id    pgtype.UUID
		start pgtype.Date
		end   pgtype.Date
	)

	err := s.Scan(&id, &sch.Name, &start, &end, &sch.CreatedAt, &sch.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Schedule{}, domain.ErrNotFound
		}
		return domain.Schedule{}, err
	}

	sch.ID = uuid.UUID(id.Bytes)
	sch.StartDate = start.Time
	sch.EndDate = end.Time
	return sch, nil
}
