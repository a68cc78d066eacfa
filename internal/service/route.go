package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/TripTune-Project/TripTune-Backend-sub001/internal/domain"
	"github.com/TripTune-Project/TripTune-Backend-sub001/internal/repo"
)

// RouteService owns the ordered stop list of a schedule. Stops are appended
// at count+1 and edits replace the whole sequence, so within a schedule the
// orders always form a contiguous ascending run starting at 1.
type RouteService struct {
	schedules repo.ScheduleRepo
	attendees repo.AttendeeRepo
	routes    repo.RouteRepo
	places    repo.PlaceRepo
}

// NewRouteService constructs a RouteService backed by the provided repos.
func NewRouteService(schedules repo.ScheduleRepo, attendees repo.AttendeeRepo, routes repo.RouteRepo, places repo.PlaceRepo) *RouteService {
	return &RouteService{schedules: schedules, attendees: attendees, routes: routes, places: places}
}

// List returns one page of the schedule's stops ascending by order, joined
// with place display fields. Returns domain.ErrNotFound when the schedule
// does not exist. The content slice is never nil.
func (s *RouteService) List(ctx context.Context, scheduleID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.RouteStop], error) {
	if _, err := s.schedules.GetByID(ctx, scheduleID); err != nil {
		return domain.Page[domain.RouteStop]{}, fmt.Errorf("service.RouteService.List: %w", err)
	}

	stops, total, err := s.routes.ListBySchedule(ctx, scheduleID, p)
	if err != nil {
		return domain.Page[domain.RouteStop]{}, fmt.Errorf("service.RouteService.List: %w", err)
	}
	if stops == nil {
		stops = []domain.RouteStop{}
	}
	return domain.Page[domain.RouteStop]{Content: stops, TotalElements: total}, nil
}

// Append adds one stop at the end of the schedule's route. The requester
// must attend the schedule with EDIT or ALL permission, and the place must
// exist in the catalog.
//
// Returns domain.ErrAccessDenied when the requester does not attend,
// domain.ErrEditDenied without edit permission, and domain.ErrNotFound when
// the schedule or place is missing.
func (s *RouteService) Append(ctx context.Context, scheduleID, requesterID, placeID uuid.UUID) (domain.Route, error) {
	if _, err := s.schedules.GetByID(ctx, scheduleID); err != nil {
		return domain.Route{}, fmt.Errorf("service.RouteService.Append: %w", err)
	}

	att, err := s.attendees.GetByScheduleAndMember(ctx, scheduleID, requesterID)
	if err != nil {
		if isNotFound(err) {
			return domain.Route{}, fmt.Errorf("service.RouteService.Append: %w", domain.ErrAccessDenied)
		}
		return domain.Route{}, fmt.Errorf("service.RouteService.Append: %w", err)
	}
	if !att.Permission.CanEdit() {
		return domain.Route{}, fmt.Errorf("service.RouteService.Append: %w", domain.ErrEditDenied)
	}

	place, err := s.places.GetByID(ctx, placeID)
	if err != nil {
		return domain.Route{}, fmt.Errorf("service.RouteService.Append: place: %w", err)
	}

	count, err := s.routes.CountBySchedule(ctx, scheduleID)
	if err != nil {
		return domain.Route{}, fmt.Errorf("service.RouteService.Append: %w", err)
	}

	created, err := s.routes.Append(ctx, domain.Route{
		ScheduleID: scheduleID,
		PlaceID:    place.ID,
		Order:      int(count) + 1,
	})
	if err != nil {
		return domain.Route{}, fmt.Errorf("service.RouteService.Append: %w", err)
	}
	return created, nil
}

// resolvePlaces verifies that every entry's place id exists in the catalog.
// Returns domain.ErrNotFound naming the first missing id. Schedule update
// calls it before any row is written, so an unknown place fails the whole
// update with both the scalar fields and the prior route set untouched.
func (s *RouteService) resolvePlaces(ctx context.Context, entries []domain.RouteEntry) error {
	if len(entries) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(entries))
	seen := make(map[uuid.UUID]struct{}, len(entries))
	for _, e := range entries {
		// A route may visit the same place twice; resolve each id once.
		if _, ok := seen[e.PlaceID]; ok {
			continue
		}
		seen[e.PlaceID] = struct{}{}
		ids = append(ids, e.PlaceID)
	}

	places, err := s.places.ListByIDs(ctx, ids)
	if err != nil {
		return err
	}
	found := make(map[uuid.UUID]struct{}, len(places))
	for _, p := range places {
		found[p.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return fmt.Errorf("%w: place %s", domain.ErrNotFound, id)
		}
	}
	return nil
}
