// Package domain contains the core data types for the travel schedule
// service. This package has no dependency on the persistence or HTTP layers
// and is imported by every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Schedule is a shared travel plan: a named date range that attendees attach
// an ordered route of places to. It is the top-level aggregate; attendees and
// routes belong to a schedule and are removed with it.
type Schedule struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ScheduleSummary is one row of a schedule list or search result, enriched
// with the author's nickname and a thumbnail taken from the first-ordered
// route's place image. ThumbnailURL is empty when the schedule has no routes
// or the place has no thumbnail image.
type ScheduleSummary struct {
	Schedule
	AuthorNickname string `json:"author_nickname"`
	ThumbnailURL   string `json:"thumbnail_url,omitempty"`
	AttendeeCount  int64  `json:"attendee_count"`
}

// Shared reports whether the schedule has collaborators beyond the author.
func (s ScheduleSummary) Shared() bool {
	return s.AttendeeCount > 1
}
