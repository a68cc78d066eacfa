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

// AttendeeRepo defines the persistence operations for Attendees.
// The (schedule_id, member_id) unique index backstops duplicate invites:
// Create maps its violation to domain.ErrAlreadyAttendee.
type AttendeeRepo interface {
	// Create inserts a new attendee row and returns the persisted record.
	// Returns domain.ErrAlreadyAttendee when the member already attends the
	// schedule.
	Create(ctx context.Context, a domain.Attendee) (domain.Attendee, error)

	// GetByID retrieves an attendee row by primary key, scoped to scheduleID.
	// Returns domain.ErrNotFound if no such row exists under that schedule.
	GetByID(ctx context.Context, scheduleID, attendeeID uuid.UUID) (domain.Attendee, error)

	// GetByScheduleAndMember retrieves the member's attendee row for the
	// schedule. Returns domain.ErrNotFound when the member does not attend.
	GetByScheduleAndMember(ctx context.Context, scheduleID, memberID uuid.UUID) (domain.Attendee, error)

	// ListBySchedule returns all attendees of a schedule joined with member
	// directory fields, author first, then by join time ascending.
	ListBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]domain.AttendeeInfo, error)

	// CountBySchedule returns the number of attendee rows for the schedule.
	CountBySchedule(ctx context.Context, scheduleID uuid.UUID) (int64, error)

	// UpdatePermission overwrites the permission of an attendee row.
	// Returns domain.ErrNotFound if the row does not exist.
	UpdatePermission(ctx context.Context, attendeeID uuid.UUID, p domain.Permission) (domain.Attendee, error)

	// Delete removes an attendee row by primary key.
	// Returns domain.ErrNotFound if the row does not exist.
	Delete(ctx context.Context, attendeeID uuid.UUID) error
}

// pgAttendeeRepo is the Postgres implementation of AttendeeRepo.
type pgAttendeeRepo struct {
	db db
}

// NewAttendeeRepo constructs an AttendeeRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewAttendeeRepo(db db) AttendeeRepo {
	return &pgAttendeeRepo{db: db}
}

const attendeeColumns = `id, schedule_id, member_id, role, permission, created_at`

func (r *pgAttendeeRepo) Create(ctx context.Context, a domain.Attendee) (domain.Attendee, error) {
	const q = `
		INSERT INTO attendees (schedule_id, member_id, role, permission)
		VALUES (@schedule_id, @member_id, @role, @permission)
		RETURNING ` + attendeeColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"schedule_id": a.ScheduleID,
		"member_id":   a.MemberID,
		"role":        a.Role,
		"permission":  a.Permission,
	})
	created, err := scanAttendee(row)
	if err != nil {
		if isUniqueViolation(err, "attendees_schedule_member_uniq") {
			return domain.Attendee{}, fmt.Errorf("repo.AttendeeRepo.Create: %w", domain.ErrAlreadyAttendee)
		}
		return domain.Attendee{}, fmt.Errorf("repo.AttendeeRepo.Create: %w", err)
	}
	return created, nil
}

func (r *pgAttendeeRepo) GetByID(ctx context.Context, scheduleID, attendeeID uuid.UUID) (domain.Attendee, error) {
	const q = `
		SELECT ` + attendeeColumns + `
		FROM attendees
		WHERE id = @id AND schedule_id = @schedule_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": attendeeID, "schedule_id": scheduleID})
	a, err := scanAttendee(row)
	if err != nil {
		return domain.Attendee{}, fmt.Errorf("repo.AttendeeRepo.GetByID: %w", err)
	}
	return a, nil
}

func (r *pgAttendeeRepo) GetByScheduleAndMember(ctx context.Context, scheduleID, memberID uuid.UUID) (domain.Attendee, error) {
	const q = `
		SELECT ` + attendeeColumns + `
		FROM attendees
		WHERE schedule_id = @schedule_id AND member_id = @member_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"schedule_id": scheduleID, "member_id": memberID})
	a, err := scanAttendee(row)
	if err != nil {
		return domain.Attendee{}, fmt.Errorf("repo.AttendeeRepo.GetByScheduleAndMember: %w", err)
	}
	return a, nil
}

func (r *pgAttendeeRepo) ListBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]domain.AttendeeInfo, error) {
	const q = `
		SELECT a.id, a.schedule_id, a.member_id, a.role, a.permission, a.created_at,
		       m.nickname, m.email, m.profile_image_url
		FROM attendees a
		JOIN members m ON m.id = a.member_id
		WHERE a.schedule_id = @schedule_id
		ORDER BY (a.role = 'AUTHOR') DESC, a.created_at, a.id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"schedule_id": scheduleID})
	if err != nil {
		return nil, fmt.Errorf("repo.AttendeeRepo.ListBySchedule: %w", err)
	}
	defer rows.Close()

	var out []domain.AttendeeInfo
	for rows.Next() {
		var (
			info       domain.AttendeeInfo
			id         pgtype.UUID
			scheduleID pgtype.UUID
			memberID   pgtype.UUID
		)
		err := rows.Scan(&id, &scheduleID, &memberID, &info.Role, &info.Permission,
			&info.CreatedAt, &info.Nickname, &info.Email, &info.ProfileImageURL)
		if err != nil {
			return nil, fmt.Errorf("repo.AttendeeRepo.ListBySchedule: scan: %w", err)
		}
		info.ID = uuid.UUID(id.Bytes)
		info.ScheduleID = uuid.UUID(scheduleID.Bytes)
		info.MemberID = uuid.UUID(memberID.Bytes)
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.AttendeeRepo.ListBySchedule: rows: %w", err)
	}
	return out, nil
}

func (r *pgAttendeeRepo) CountBySchedule(ctx context.Context, scheduleID uuid.UUID) (int64, error) {
	const q = `SELECT count(*) FROM attendees WHERE schedule_id = @schedule_id`

	var n int64
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"schedule_id": scheduleID}).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("repo.AttendeeRepo.CountBySchedule: %w", err)
	}
	return n, nil
}

func (r *pgAttendeeRepo) UpdatePermission(ctx context.Context, attendeeID uuid.UUID, p domain.Permission) (domain.Attendee, error) {
	const q = `
		UPDATE attendees
		SET permission = @permission
		WHERE id = @id
		RETURNING ` + attendeeColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": attendeeID, "permission": p})
	a, err := scanAttendee(row)
	if err != nil {
		return domain.Attendee{}, fmt.Errorf("repo.AttendeeRepo.UpdatePermission: %w", err)
	}
	return a, nil
}

func (r *pgAttendeeRepo) Delete(ctx context.Context, attendeeID uuid.UUID) error {
	const q = `DELETE FROM attendees WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": attendeeID})
	if err != nil {
		return fmt.Errorf("repo.AttendeeRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.AttendeeRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanAttendee maps a single database row into a domain.Attendee.
func scanAttendee(s scanner) (domain.Attendee, error) {
	var (
		a          domain.Attendee
		id         pgtype.UUID
		scheduleID pgtype.UUID
		memberID   pgtype.UUID
	)

	err := s.Scan(&id, &scheduleID, &memberID, &a.Role, &a.Permission, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Attendee{}, domain.ErrNotFound
		}
		return domain.Attendee{}, err
	}

	a.ID = uuid.UUID(id.Bytes)
	a.ScheduleID = uuid.UUID(scheduleID.Bytes)
	a.MemberID = uuid.UUID(memberID.Bytes)
	return a, nil
}
