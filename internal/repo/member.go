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

// MemberRepo is the member directory consumed by the schedule and attendee
// services: resolve a member by id, email, or nickname. Member registration
// and credential handling live upstream, so there are no write operations.
type MemberRepo interface {
	// GetByID retrieves a member by primary key.
	// Returns domain.ErrNotFound if no member with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Member, error)

	// GetByEmail retrieves a member by their unique email address.
	// Returns domain.ErrNotFound if no member with that email exists.
	GetByEmail(ctx context.Context, email string) (domain.Member, error)

	// GetByNickname retrieves a member by their unique nickname.
	// Returns domain.ErrNotFound if no member with that nickname exists.
	GetByNickname(ctx context.Context, nickname string) (domain.Member, error)
}

// pgMemberRepo is the Postgres implementation of MemberRepo.
type pgMemberRepo struct {
	db db
}

// NewMemberRepo constructs a MemberRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewMemberRepo(db db) MemberRepo {
	return &pgMemberRepo{db: db}
}

const memberColumns = `id, email, nickname, profile_image_url, created_at, updated_at`

func (r *pgMemberRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Member, error) {
	q := `SELECT ` + memberColumns + ` FROM members WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	m, err := scanMember(row)
	if err != nil {
		return domain.Member{}, fmt.Errorf("repo.MemberRepo.GetByID: %w", err)
	}
	return m, nil
}

func (r *pgMemberRepo) GetByEmail(ctx context.Context, email string) (domain.Member, error) {
	q := `SELECT ` + memberColumns + ` FROM members WHERE email = @email`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"email": email})
	m, err := scanMember(row)
	if err != nil {
		return domain.Member{}, fmt.Errorf("repo.MemberRepo.GetByEmail: %w", err)
	}
	return m, nil
}

func (r *pgMemberRepo) GetByNickname(ctx context.Context, nickname string) (domain.Member, error) {
	q := `SELECT ` + memberColumns + ` FROM members WHERE nickname = @nickname`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"nickname": nickname})
	m, err := scanMember(row)
	if err != nil {
		return domain.Member{}, fmt.Errorf("repo.MemberRepo.GetByNickname: %w", err)
	}
	return m, nil
}

// scanMember maps a single database row into a domain.Member.
func scanMember(s scanner) (domain.Member, error) {
	var (
		m  domain.Member
		id pgtype.UUID
	)

	err := s.Scan(&id, &m.Email, &m.Nickname, &m.ProfileImageURL, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Member{}, domain.ErrNotFound
		}
		return domain.Member{}, err
	}

	m.ID = uuid.UUID(id.Bytes)
	return m, nil
}
