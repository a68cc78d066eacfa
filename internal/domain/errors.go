package domain

import "errors"

// Sentinel errors returned by repo and service functions. Handlers translate
// each one into a stable machine-readable code and HTTP status.
var (
	// ErrNotFound is returned when the requested schedule, attendee, route,
	// place, or member does not exist.
	// Handlers should map this to HTTP 404.
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned when input fails business rule validation
	// (e.g. missing required field, end date before start date).
	// Handlers should map this to HTTP 422 Unprocessable Entity.
	ErrValidation = errors.New("validation error")

	// ErrAccessDenied is returned when the caller is not an attendee of the
	// schedule being operated on.
	ErrAccessDenied = errors.New("access denied")

	// ErrEditDenied is returned when an attendee without EDIT or ALL
	// permission attempts a mutating route or schedule operation.
	ErrEditDenied = errors.New("edit denied")

	// ErrChatDenied is returned when an attendee without CHAT or ALL
	// permission attempts to send a chat message.
	ErrChatDenied = errors.New("chat denied")

	// ErrDeleteDenied is returned when a non-author attendee attempts to
	// delete a schedule.
	ErrDeleteDenied = errors.New("delete denied")

	// ErrPermissionChangeDenied is returned when a non-author attempts a
	// permission change, or when any change targets the author's own row.
	ErrPermissionChangeDenied = errors.New("permission change denied")

	// ErrLeaveDenied is returned when the author attempts to leave their own
	// schedule, or when a guest attempts to remove an attendee other than
	// themself. The author exits a schedule only by deleting it.
	ErrLeaveDenied = errors.New("leave denied")

	// ErrAlreadyAttendee is returned when the invited member already has an
	// attendee row for the schedule.
	ErrAlreadyAttendee = errors.New("already an attendee")

	// ErrCapacityExceeded is returned when inviting would push the schedule
	// past MaxAttendees.
	ErrCapacityExceeded = errors.New("attendee capacity exceeded")
)
