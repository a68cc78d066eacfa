// Package service contains the business logic for the travel schedule
// service. Services validate inputs, enforce the role/permission model, and
// orchestrate repo calls. No SQL lives here — services depend on repo
// interfaces, not implementations.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/TripTune-Project/TripTune-Backend-sub001/internal/domain"
	"github.com/TripTune-Project/TripTune-Backend-sub001/internal/repo"
)

// AttendeeService owns the attendee list of a schedule: who attends, with
// what role and permission. Every rule of the sharing model is enforced here:
// only the author invites, changes permissions, and removes guests; guests
// may only remove themselves; the author row itself is immutable and leaves
// only when the schedule is deleted.
type AttendeeService struct {
	schedules repo.ScheduleRepo
	attendees repo.AttendeeRepo
	members   repo.MemberRepo
}

// NewAttendeeService constructs an AttendeeService backed by the provided repos.
func NewAttendeeService(schedules repo.ScheduleRepo, attendees repo.AttendeeRepo, members repo.MemberRepo) *AttendeeService {
	return &AttendeeService{schedules: schedules, attendees: attendees, members: members}
}

// List returns every attendee of the schedule with member directory fields.
// The requester must be an attendee themself.
// Returns domain.ErrNotFound when the schedule does not exist and
// domain.ErrAccessDenied when the requester does not attend it.
func (s *AttendeeService) List(ctx context.Context, scheduleID, requesterID uuid.UUID) ([]domain.AttendeeInfo, error) {
	if _, err := s.schedules.GetByID(ctx, scheduleID); err != nil {
		return nil, fmt.Errorf("service.AttendeeService.List: %w", err)
	}
	if _, err := s.requireAttendee(ctx, scheduleID, requesterID); err != nil {
		return nil, fmt.Errorf("service.AttendeeService.List: %w", err)
	}

	infos, err := s.attendees.ListBySchedule(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("service.AttendeeService.List: %w", err)
	}
	if infos == nil {
		infos = []domain.AttendeeInfo{}
	}
	return infos, nil
}

// Invite shares the schedule with the member registered under targetEmail,
// creating a GUEST row with the given permission. Sharing is immediate —
// there is no pending-invitation state.
//
// Returns domain.ErrAccessDenied unless the requester is the author,
// domain.ErrCapacityExceeded at MaxAttendees, domain.ErrAlreadyAttendee for
// duplicate invites, and domain.ErrNotFound when the schedule or the target
// member does not exist.
func (s *AttendeeService) Invite(ctx context.Context, scheduleID, requesterID uuid.UUID, targetEmail string, permission domain.Permission) (domain.Attendee, error) {
	if !permission.Valid() {
		return domain.Attendee{}, fmt.Errorf("%w: invalid permission %q", domain.ErrValidation, permission)
	}
	if _, err := s.schedules.GetByID(ctx, scheduleID); err != nil {
		return domain.Attendee{}, fmt.Errorf("service.AttendeeService.Invite: %w", err)
	}

	requester, err := s.requireAttendee(ctx, scheduleID, requesterID)
	if err != nil {
		return domain.Attendee{}, fmt.Errorf("service.AttendeeService.Invite: %w", err)
	}
	if !requester.IsAuthor() {
		return domain.Attendee{}, fmt.Errorf("service.AttendeeService.Invite: %w", domain.ErrAccessDenied)
	}

	// Check-then-act: advisory under concurrent invites. The unique index on
	// (schedule_id, member_id) backstops duplicates; the capacity count has
	// no such backstop.
	count, err := s.attendees.CountBySchedule(ctx, scheduleID)
	if err != nil {
		return domain.Attendee{}, fmt.Errorf("service.AttendeeService.Invite: %w", err)
	}
	if count >= domain.MaxAttendees {
		return domain.Attendee{}, fmt.Errorf("service.AttendeeService.Invite: %w", domain.ErrCapacityExceeded)
	}

	target, err := s.members.GetByEmail(ctx, targetEmail)
	if err != nil {
		return domain.Attendee{}, fmt.Errorf("service.AttendeeService.Invite: member: %w", err)
	}

	if _, err := s.attendees.GetByScheduleAndMember(ctx, scheduleID, target.ID); err == nil {
		return domain.Attendee{}, fmt.Errorf("service.AttendeeService.Invite: %w", domain.ErrAlreadyAttendee)
	}

	created, err := s.attendees.Create(ctx, domain.Attendee{
		ScheduleID: scheduleID,
		MemberID:   target.ID,
		Role:       domain.RoleGuest,
		Permission: permission,
	})
	if err != nil {
		return domain.Attendee{}, fmt.Errorf("service.AttendeeService.Invite: %w", err)
	}
	return created, nil
}

// ChangePermission sets a guest attendee's permission. Only the author may
// change permissions, and the author's own row can never be the target —
// both violations return domain.ErrPermissionChangeDenied.
func (s *AttendeeService) ChangePermission(ctx context.Context, scheduleID, requesterID, attendeeID uuid.UUID, permission domain.Permission) (domain.Attendee, error) {
	if !permission.Valid() {
		return domain.Attendee{}, fmt.Errorf("%w: invalid permission %q", domain.ErrValidation, permission)
	}

	requester, err := s.requireAttendee(ctx, scheduleID, requesterID)
	if err != nil {
		return domain.Attendee{}, fmt.Errorf("service.AttendeeService.ChangePermission: %w", err)
	}
	if !requester.IsAuthor() {
		return domain.Attendee{}, fmt.Errorf("service.AttendeeService.ChangePermission: %w", domain.ErrPermissionChangeDenied)
	}

	target, err := s.attendees.GetByID(ctx, scheduleID, attendeeID)
	if err != nil {
		return domain.Attendee{}, fmt.Errorf("service.AttendeeService.ChangePermission: %w", err)
	}
	if target.IsAuthor() {
		return domain.Attendee{}, fmt.Errorf("service.AttendeeService.ChangePermission: %w", domain.ErrPermissionChangeDenied)
	}

	updated, err := s.attendees.UpdatePermission(ctx, target.ID, permission)
	if err != nil {
		return domain.Attendee{}, fmt.Errorf("service.AttendeeService.ChangePermission: %w", err)
	}
	return updated, nil
}

// Remove deletes a guest's attendee row. The author may remove any guest; a
// guest may remove only their own row. The author row is never removable —
// the author exits a schedule only by deleting it.
func (s *AttendeeService) Remove(ctx context.Context, scheduleID, requesterID, attendeeID uuid.UUID) error {
	requester, err := s.requireAttendee(ctx, scheduleID, requesterID)
	if err != nil {
		return fmt.Errorf("service.AttendeeService.Remove: %w", err)
	}

	target, err := s.attendees.GetByID(ctx, scheduleID, attendeeID)
	if err != nil {
		return fmt.Errorf("service.AttendeeService.Remove: %w", err)
	}
	if target.IsAuthor() {
		return fmt.Errorf("service.AttendeeService.Remove: %w", domain.ErrLeaveDenied)
	}
	if !requester.IsAuthor() && requester.ID != target.ID {
		return fmt.Errorf("service.AttendeeService.Remove: %w", domain.ErrLeaveDenied)
	}

	if err := s.attendees.Delete(ctx, target.ID); err != nil {
		return fmt.Errorf("service.AttendeeService.Remove: %w", err)
	}
	return nil
}

// Leave removes the calling member's own attendee row.
// Returns domain.ErrAccessDenied when the member does not attend the
// schedule and domain.ErrLeaveDenied when the member is the author.
func (s *AttendeeService) Leave(ctx context.Context, scheduleID, memberID uuid.UUID) error {
	att, err := s.requireAttendee(ctx, scheduleID, memberID)
	if err != nil {
		return fmt.Errorf("service.AttendeeService.Leave: %w", err)
	}
	if att.IsAuthor() {
		return fmt.Errorf("service.AttendeeService.Leave: %w", domain.ErrLeaveDenied)
	}

	if err := s.attendees.Delete(ctx, att.ID); err != nil {
		return fmt.Errorf("service.AttendeeService.Leave: %w", err)
	}
	return nil
}

// requireAttendee resolves the member's attendee row for the schedule,
// mapping a missing row to domain.ErrAccessDenied.
func (s *AttendeeService) requireAttendee(ctx context.Context, scheduleID, memberID uuid.UUID) (domain.Attendee, error) {
	att, err := s.attendees.GetByScheduleAndMember(ctx, scheduleID, memberID)
	if err != nil {
		if isNotFound(err) {
			return domain.Attendee{}, domain.ErrAccessDenied
		}
		return domain.Attendee{}, err
	}
	return att, nil
}
