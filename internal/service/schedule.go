package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/TripTune-Project/TripTune-Backend-sub001/internal/domain"
	"github.com/TripTune-Project/TripTune-Backend-sub001/internal/match"
	"github.com/TripTune-Project/TripTune-Backend-sub001/internal/repo"
)

// SearchScope selects which of the member's schedules a search covers.
type SearchScope string

const (
	// ScopeAll searches every schedule the member attends.
	ScopeAll SearchScope = "all"
	// ScopeShared restricts the search to schedules with collaborators.
	ScopeShared SearchScope = "shared"
)

// ScheduleInput carries the caller-supplied fields for creating or updating
// a schedule. Routes is only consulted on update, where it replaces the
// schedule's entire route list.
type ScheduleInput struct {
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Routes    []domain.RouteEntry
}

// ScheduleDetail is the detail view: schedule fields plus one page of the
// place catalog for the in-schedule place browsing tab. The place page is
// independent of the schedule's route list.
type ScheduleDetail struct {
	domain.Schedule
	Places domain.Page[domain.Place] `json:"places"`
}

// ScheduleList is one page of schedule summaries with both the total and the
// shared-only count, so list screens can render both tab badges from one
// response.
type ScheduleList struct {
	Content        []domain.ScheduleSummary `json:"content"`
	TotalElements  int64                    `json:"totalElements"`
	SharedElements int64                    `json:"sharedElements"`
}

// ScheduleService orchestrates the schedule lifecycle: creation seeds the
// author attendee, update applies scalar changes plus a full route replace,
// and deletion cascades through attendees and routes relationally, then
// cleans the chat history out of the document store best-effort.
type ScheduleService struct {
	schedules repo.ScheduleRepo
	attendees repo.AttendeeRepo
	members   repo.MemberRepo
	places    repo.PlaceRepo
	chats     repo.ChatRepo
	routeSvc  *RouteService
	log       *slog.Logger
}

// NewScheduleService constructs a ScheduleService backed by the provided
// repos. The RouteService performs the route replace during updates.
func NewScheduleService(
	schedules repo.ScheduleRepo,
	attendees repo.AttendeeRepo,
	members repo.MemberRepo,
	places repo.PlaceRepo,
	chats repo.ChatRepo,
	routeSvc *RouteService,
	log *slog.Logger,
) *ScheduleService {
	if log == nil {
		log = slog.Default()
	}
	return &ScheduleService{
		schedules: schedules,
		attendees: attendees,
		members:   members,
		places:    places,
		chats:     chats,
		routeSvc:  routeSvc,
		log:       log,
	}
}

// Create validates and persists a new schedule on behalf of memberID, who
// becomes its author with ALL permission.
// Returns domain.ErrValidation for bad input and domain.ErrNotFound when the
// member does not exist.
func (s *ScheduleService) Create(ctx context.Context, memberID uuid.UUID, in ScheduleInput) (domain.Schedule, error) {
	if err := validateScheduleInput(in); err != nil {
		return domain.Schedule{}, err
	}
	if _, err := s.members.GetByID(ctx, memberID); err != nil {
		return domain.Schedule{}, fmt.Errorf("service.ScheduleService.Create: member: %w", err)
	}

	created, err := s.schedules.Create(ctx, domain.Schedule{
		Name:      strings.TrimSpace(in.Name),
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
	}, memberID)
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("service.ScheduleService.Create: %w", err)
	}
	return created, nil
}

// GetDetail returns the schedule's fields together with one page of the
// place catalog for the place browsing tab.
// Returns domain.ErrNotFound when the schedule does not exist.
func (s *ScheduleService) GetDetail(ctx context.Context, scheduleID uuid.UUID, p domain.PaginationParams) (ScheduleDetail, error) {
	sched, err := s.schedules.GetByID(ctx, scheduleID)
	if err != nil {
		return ScheduleDetail{}, fmt.Errorf("service.ScheduleService.GetDetail: %w", err)
	}

	places, total, err := s.places.List(ctx, p)
	if err != nil {
		return ScheduleDetail{}, fmt.Errorf("service.ScheduleService.GetDetail: %w", err)
	}
	if places == nil {
		places = []domain.Place{}
	}
	return ScheduleDetail{
		Schedule: sched,
		Places:   domain.Page[domain.Place]{Content: places, TotalElements: total},
	}, nil
}

// Update applies scalar field changes and replaces the schedule's whole
// route list with in.Routes (an empty list removes every stop). Place ids
// are resolved before any write and the scalar update runs in the same
// transaction as the route swap, so a failed update leaves the schedule
// exactly as it was.
//
// Returns domain.ErrNotFound when the schedule does not exist,
// domain.ErrAccessDenied when the requester is not an attendee at all,
// domain.ErrEditDenied without EDIT/ALL permission, and domain.ErrNotFound
// when any supplied place id is unknown.
func (s *ScheduleService) Update(ctx context.Context, requesterID, scheduleID uuid.UUID, in ScheduleInput) (domain.Schedule, error) {
	if err := validateScheduleInput(in); err != nil {
		return domain.Schedule{}, err
	}

	sched, err := s.schedules.GetByID(ctx, scheduleID)
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("service.ScheduleService.Update: %w", err)
	}

	att, err := s.attendees.GetByScheduleAndMember(ctx, scheduleID, requesterID)
	if err != nil {
		if isNotFound(err) {
			return domain.Schedule{}, fmt.Errorf("service.ScheduleService.Update: %w", domain.ErrAccessDenied)
		}
		return domain.Schedule{}, fmt.Errorf("service.ScheduleService.Update: %w", err)
	}
	if !att.Permission.CanEdit() {
		return domain.Schedule{}, fmt.Errorf("service.ScheduleService.Update: %w", domain.ErrEditDenied)
	}

	if err := s.routeSvc.resolvePlaces(ctx, in.Routes); err != nil {
		return domain.Schedule{}, fmt.Errorf("service.ScheduleService.Update: routes: %w", err)
	}

	sched.Name = strings.TrimSpace(in.Name)
	sched.StartDate = in.StartDate
	sched.EndDate = in.EndDate

	updated, err := s.schedules.UpdateWithRoutes(ctx, sched, in.Routes)
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("service.ScheduleService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes the schedule; attendee and route rows cascade with it in
// the relational store. After the relational delete commits, the chat
// history is removed from the document store — best-effort: a chat-store
// failure is logged and swallowed, never surfaced to the caller.
//
// Returns domain.ErrAccessDenied when the requester is not an attendee and
// domain.ErrDeleteDenied when the requester is not the author.
func (s *ScheduleService) Delete(ctx context.Context, scheduleID, requesterID uuid.UUID) error {
	if _, err := s.schedules.GetByID(ctx, scheduleID); err != nil {
		return fmt.Errorf("service.ScheduleService.Delete: %w", err)
	}

	att, err := s.attendees.GetByScheduleAndMember(ctx, scheduleID, requesterID)
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("service.ScheduleService.Delete: %w", domain.ErrAccessDenied)
		}
		return fmt.Errorf("service.ScheduleService.Delete: %w", err)
	}
	if !att.IsAuthor() {
		return fmt.Errorf("service.ScheduleService.Delete: %w", domain.ErrDeleteDenied)
	}

	if err := s.schedules.Delete(ctx, scheduleID); err != nil {
		return fmt.Errorf("service.ScheduleService.Delete: %w", err)
	}

	s.cleanupChat(ctx, scheduleID)
	return nil
}

// cleanupChat removes the schedule's chat history from the document store.
// Only called after the relational delete committed; failures leave orphaned
// history behind for an out-of-band cleanup job and are logged, not returned.
func (s *ScheduleService) cleanupChat(ctx context.Context, scheduleID uuid.UUID) {
	count, err := s.chats.CountBySchedule(ctx, scheduleID)
	if err != nil {
		s.log.ErrorContext(ctx, "chat cleanup failed", "schedule_id", scheduleID, "error", err)
		return
	}
	if count == 0 {
		return
	}
	if err := s.chats.DeleteBySchedule(ctx, scheduleID); err != nil {
		s.log.ErrorContext(ctx, "chat cleanup failed", "schedule_id", scheduleID, "error", err)
	}
}

// ListMine returns one page of every schedule the member attends, newest
// update first, with the shared-only count alongside the total.
func (s *ScheduleService) ListMine(ctx context.Context, memberID uuid.UUID, p domain.PaginationParams) (ScheduleList, error) {
	return s.list(ctx, memberID, false, p)
}

// ListShared returns one page of the member's schedules that have more than
// one attendee.
func (s *ScheduleService) ListShared(ctx context.Context, memberID uuid.UUID, p domain.PaginationParams) (ScheduleList, error) {
	return s.list(ctx, memberID, true, p)
}

func (s *ScheduleService) list(ctx context.Context, memberID uuid.UUID, sharedOnly bool, p domain.PaginationParams) (ScheduleList, error) {
	content, err := s.schedules.ListByMember(ctx, memberID, sharedOnly, p)
	if err != nil {
		return ScheduleList{}, fmt.Errorf("service.ScheduleService.list: %w", err)
	}
	total, err := s.schedules.CountByMember(ctx, memberID, sharedOnly)
	if err != nil {
		return ScheduleList{}, fmt.Errorf("service.ScheduleService.list: %w", err)
	}
	shared := total
	if !sharedOnly {
		shared, err = s.schedules.CountByMember(ctx, memberID, true)
		if err != nil {
			return ScheduleList{}, fmt.Errorf("service.ScheduleService.list: %w", err)
		}
	}
	if content == nil {
		content = []domain.ScheduleSummary{}
	}
	return ScheduleList{Content: content, TotalElements: total, SharedElements: shared}, nil
}

// ListEditable returns one page of schedules where the member holds EDIT or
// ALL permission.
func (s *ScheduleService) ListEditable(ctx context.Context, memberID uuid.UUID, p domain.PaginationParams) (ScheduleList, error) {
	content, err := s.schedules.ListEditableByMember(ctx, memberID, p)
	if err != nil {
		return ScheduleList{}, fmt.Errorf("service.ScheduleService.ListEditable: %w", err)
	}
	total, err := s.schedules.CountEditableByMember(ctx, memberID, false)
	if err != nil {
		return ScheduleList{}, fmt.Errorf("service.ScheduleService.ListEditable: %w", err)
	}
	shared, err := s.schedules.CountEditableByMember(ctx, memberID, true)
	if err != nil {
		return ScheduleList{}, fmt.Errorf("service.ScheduleService.ListEditable: %w", err)
	}
	if content == nil {
		content = []domain.ScheduleSummary{}
	}
	return ScheduleList{Content: content, TotalElements: total, SharedElements: shared}, nil
}

// Search returns one page of the member's schedules whose name contains
// keyword, best matches first: relevance bucket ascending, then most recent
// update, then highest id. The explicit id tie-break keeps page boundaries
// deterministic.
func (s *ScheduleService) Search(ctx context.Context, memberID uuid.UUID, keyword string, scope SearchScope, p domain.PaginationParams) (ScheduleList, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return ScheduleList{}, fmt.Errorf("%w: keyword is required", domain.ErrValidation)
	}

	candidates, err := s.schedules.SearchByMember(ctx, memberID, keyword, scope == ScopeShared)
	if err != nil {
		return ScheduleList{}, fmt.Errorf("service.ScheduleService.Search: %w", err)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		ci := match.Class(candidates[i].Name, keyword)
		cj := match.Class(candidates[j].Name, keyword)
		if ci != cj {
			return ci < cj
		}
		if !candidates[i].UpdatedAt.Equal(candidates[j].UpdatedAt) {
			return candidates[i].UpdatedAt.After(candidates[j].UpdatedAt)
		}
		return bytes.Compare(candidates[i].ID[:], candidates[j].ID[:]) > 0
	})

	page := domain.PageOf(candidates, p)
	shared := int64(0)
	for _, sum := range candidates {
		if sum.Shared() {
			shared++
		}
	}
	return ScheduleList{Content: page.Content, TotalElements: page.TotalElements, SharedElements: shared}, nil
}

// validateScheduleInput enforces the rules common to Create and Update:
// name must be non-empty and the end date must not precede the start date.
func validateScheduleInput(in ScheduleInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", domain.ErrValidation)
	}
	if in.EndDate.Before(in.StartDate) {
		return fmt.Errorf("%w: end date must not be before start date", domain.ErrValidation)
	}
	return nil
}
