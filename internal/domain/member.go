package domain

import (
	"time"

	"github.com/google/uuid"
)

// Member is a registered user of the service. Credential handling lives in an
// upstream auth layer; this core only resolves members by id, email, or
// nickname when wiring them into schedules.
type Member struct {
	ID              uuid.UUID
	Email           string
	Nickname        string
	ProfileImageURL string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
