package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxAttendees is the hard cap on attendees per schedule, author included.
const MaxAttendees = 5

// Role distinguishes the schedule's creator from invited collaborators.
type Role string

const (
	// RoleAuthor is held by exactly one attendee per schedule: its creator.
	// The author row cannot be removed or demoted; it disappears only when
	// the schedule itself is deleted.
	RoleAuthor Role = "AUTHOR"
	// RoleGuest is every invited collaborator.
	RoleGuest Role = "GUEST"
)

// Permission is an attendee's capability grade. CHAT and EDIT are siblings,
// not ordered against each other: an EDIT attendee cannot chat and a CHAT
// attendee cannot edit. ALL implies both. This mirrors the product's
// historical behavior and is pinned by tests; do not collapse it into a
// single ordinal comparison.
type Permission string

const (
	PermissionRead Permission = "READ"
	PermissionChat Permission = "CHAT"
	PermissionEdit Permission = "EDIT"
	PermissionAll  Permission = "ALL"
)

// Valid reports whether p is one of the four defined permission grades.
func (p Permission) Valid() bool {
	switch p {
	case PermissionRead, PermissionChat, PermissionEdit, PermissionAll:
		return true
	}
	return false
}

// CanEdit reports whether the permission allows route and schedule mutation.
func (p Permission) CanEdit() bool {
	return p == PermissionEdit || p == PermissionAll
}

// CanChat reports whether the permission allows sending chat messages.
func (p Permission) CanChat() bool {
	return p == PermissionChat || p == PermissionAll
}

// Attendee links one member to one schedule. A member has at most one
// attendee row per schedule (enforced by a unique index in the store).
type Attendee struct {
	ID         uuid.UUID  `json:"id"`
	ScheduleID uuid.UUID  `json:"schedule_id"`
	MemberID   uuid.UUID  `json:"member_id"`
	Role       Role       `json:"role"`
	Permission Permission `json:"permission"`
	CreatedAt  time.Time  `json:"created_at"`
}

// IsAuthor reports whether this attendee row is the schedule's author.
func (a Attendee) IsAuthor() bool {
	return a.Role == RoleAuthor
}

// AttendeeInfo is an attendee row joined with the member's directory fields,
// as returned by the attendee list endpoint.
type AttendeeInfo struct {
	Attendee
	Nickname        string `json:"nickname"`
	Email           string `json:"email"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
}
