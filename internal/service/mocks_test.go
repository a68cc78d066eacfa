package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/TripTune-Project/TripTune-Backend-sub001/internal/domain"
	"github.com/TripTune-Project/TripTune-Backend-sub001/internal/repo"
)

// Hand-written test doubles for the repo interfaces. Only the func fields a
// test sets are consulted; unset fields return zero values so tests don't
// have to stub call paths they don't care about.

// ---- ScheduleRepo ----------------------------------------------------------

type mockScheduleRepo struct {
	create                func(ctx context.Context, s domain.Schedule, authorMemberID uuid.UUID) (domain.Schedule, error)
	getByID               func(ctx context.Context, id uuid.UUID) (domain.Schedule, error)
	update                func(ctx context.Context, s domain.Schedule) (domain.Schedule, error)
	updateWithRoutes      func(ctx context.Context, s domain.Schedule, entries []domain.RouteEntry) (domain.Schedule, error)
	delete                func(ctx context.Context, id uuid.UUID) error
	listByMember          func(ctx context.Context, memberID uuid.UUID, sharedOnly bool, p domain.PaginationParams) ([]domain.ScheduleSummary, error)
	countByMember         func(ctx context.Context, memberID uuid.UUID, sharedOnly bool) (int64, error)
	listEditableByMember  func(ctx context.Context, memberID uuid.UUID, p domain.PaginationParams) ([]domain.ScheduleSummary, error)
	countEditableByMember func(ctx context.Context, memberID uuid.UUID, sharedOnly bool) (int64, error)
	searchByMember        func(ctx context.Context, memberID uuid.UUID, keyword string, sharedOnly bool) ([]domain.ScheduleSummary, error)
}

func (m *mockScheduleRepo) Create(ctx context.Context, s domain.Schedule, authorMemberID uuid.UUID) (domain.Schedule, error) {
	if m.create != nil {
		return m.create(ctx, s, authorMemberID)
	}
	return domain.Schedule{}, nil
}

func (m *mockScheduleRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Schedule, error) {
	if m.getByID != nil {
		return m.getByID(ctx, id)
	}
	return domain.Schedule{ID: id}, nil
}

func (m *mockScheduleRepo) Update(ctx context.Context, s domain.Schedule) (domain.Schedule, error) {
	if m.update != nil {
		return m.update(ctx, s)
	}
	return s, nil
}

func (m *mockScheduleRepo) UpdateWithRoutes(ctx context.Context, s domain.Schedule, entries []domain.RouteEntry) (domain.Schedule, error) {
	if m.updateWithRoutes != nil {
		return m.updateWithRoutes(ctx, s, entries)
	}
	return s, nil
}

func (m *mockScheduleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.delete != nil {
		return m.delete(ctx, id)
	}
	return nil
}

func (m *mockScheduleRepo) ListByMember(ctx context.Context, memberID uuid.UUID, sharedOnly bool, p domain.PaginationParams) ([]domain.ScheduleSummary, error) {
	if m.listByMember != nil {
		return m.listByMember(ctx, memberID, sharedOnly, p)
	}
	return nil, nil
}

func (m *mockScheduleRepo) CountByMember(ctx context.Context, memberID uuid.UUID, sharedOnly bool) (int64, error) {
	if m.countByMember != nil {
		return m.countByMember(ctx, memberID, sharedOnly)
	}
	return 0, nil
}

func (m *mockScheduleRepo) ListEditableByMember(ctx context.Context, memberID uuid.UUID, p domain.PaginationParams) ([]domain.ScheduleSummary, error) {
	if m.listEditableByMember != nil {
		return m.listEditableByMember(ctx, memberID, p)
	}
	return nil, nil
}

func (m *mockScheduleRepo) CountEditableByMember(ctx context.Context, memberID uuid.UUID, sharedOnly bool) (int64, error) {
	if m.countEditableByMember != nil {
		return m.countEditableByMember(ctx, memberID, sharedOnly)
	}
	return 0, nil
}

func (m *mockScheduleRepo) SearchByMember(ctx context.Context, memberID uuid.UUID, keyword string, sharedOnly bool) ([]domain.ScheduleSummary, error) {
	if m.searchByMember != nil {
		return m.searchByMember(ctx, memberID, keyword, sharedOnly)
	}
	return nil, nil
}

var _ repo.ScheduleRepo = (*mockScheduleRepo)(nil)

// ---- AttendeeRepo ----------------------------------------------------------

type mockAttendeeRepo struct {
	create                 func(ctx context.Context, a domain.Attendee) (domain.Attendee, error)
	getByID                func(ctx context.Context, scheduleID, attendeeID uuid.UUID) (domain.Attendee, error)
	getByScheduleAndMember func(ctx context.Context, scheduleID, memberID uuid.UUID) (domain.Attendee, error)
	listBySchedule         func(ctx context.Context, scheduleID uuid.UUID) ([]domain.AttendeeInfo, error)
	countBySchedule        func(ctx context.Context, scheduleID uuid.UUID) (int64, error)
	updatePermission       func(ctx context.Context, attendeeID uuid.UUID, p domain.Permission) (domain.Attendee, error)
	delete                 func(ctx context.Context, attendeeID uuid.UUID) error
}

func (m *mockAttendeeRepo) Create(ctx context.Context, a domain.Attendee) (domain.Attendee, error) {
	if m.create != nil {
		return m.create(ctx, a)
	}
	a.ID = uuid.New()
	return a, nil
}

func (m *mockAttendeeRepo) GetByID(ctx context.Context, scheduleID, attendeeID uuid.UUID) (domain.Attendee, error) {
	if m.getByID != nil {
		return m.getByID(ctx, scheduleID, attendeeID)
	}
	return domain.Attendee{}, domain.ErrNotFound
}

func (m *mockAttendeeRepo) GetByScheduleAndMember(ctx context.Context, scheduleID, memberID uuid.UUID) (domain.Attendee, error) {
	if m.getByScheduleAndMember != nil {
		return m.getByScheduleAndMember(ctx, scheduleID, memberID)
	}
	return domain.Attendee{}, domain.ErrNotFound
}

func (m *mockAttendeeRepo) ListBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]domain.AttendeeInfo, error) {
	if m.listBySchedule != nil {
		return m.listBySchedule(ctx, scheduleID)
	}
	return nil, nil
}

func (m *mockAttendeeRepo) CountBySchedule(ctx context.Context, scheduleID uuid.UUID) (int64, error) {
	if m.countBySchedule != nil {
		return m.countBySchedule(ctx, scheduleID)
	}
	return 0, nil
}

func (m *mockAttendeeRepo) UpdatePermission(ctx context.Context, attendeeID uuid.UUID, p domain.Permission) (domain.Attendee, error) {
	if m.updatePermission != nil {
		return m.updatePermission(ctx, attendeeID, p)
	}
	return domain.Attendee{ID: attendeeID, Permission: p}, nil
}

func (m *mockAttendeeRepo) Delete(ctx context.Context, attendeeID uuid.UUID) error {
	if m.delete != nil {
		return m.delete(ctx, attendeeID)
	}
	return nil
}

var _ repo.AttendeeRepo = (*mockAttendeeRepo)(nil)

// ---- MemberRepo ------------------------------------------------------------

type mockMemberRepo struct {
	getByID       func(ctx context.Context, id uuid.UUID) (domain.Member, error)
	getByEmail    func(ctx context.Context, email string) (domain.Member, error)
	getByNickname func(ctx context.Context, nickname string) (domain.Member, error)
}

func (m *mockMemberRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Member, error) {
	if m.getByID != nil {
		return m.getByID(ctx, id)
	}
	return domain.Member{ID: id, Nickname: "tester"}, nil
}

func (m *mockMemberRepo) GetByEmail(ctx context.Context, email string) (domain.Member, error) {
	if m.getByEmail != nil {
		return m.getByEmail(ctx, email)
	}
	return domain.Member{ID: uuid.New(), Email: email}, nil
}

func (m *mockMemberRepo) GetByNickname(ctx context.Context, nickname string) (domain.Member, error) {
	if m.getByNickname != nil {
		return m.getByNickname(ctx, nickname)
	}
	return domain.Member{ID: uuid.New(), Nickname: nickname}, nil
}

var _ repo.MemberRepo = (*mockMemberRepo)(nil)

// ---- RouteRepo -------------------------------------------------------------

type mockRouteRepo struct {
	append          func(ctx context.Context, route domain.Route) (domain.Route, error)
	listBySchedule  func(ctx context.Context, scheduleID uuid.UUID, p domain.PaginationParams) ([]domain.RouteStop, int64, error)
	countBySchedule func(ctx context.Context, scheduleID uuid.UUID) (int64, error)
}

func (m *mockRouteRepo) Append(ctx context.Context, route domain.Route) (domain.Route, error) {
	if m.append != nil {
		return m.append(ctx, route)
	}
	route.ID = uuid.New()
	return route, nil
}

func (m *mockRouteRepo) ListBySchedule(ctx context.Context, scheduleID uuid.UUID, p domain.PaginationParams) ([]domain.RouteStop, int64, error) {
	if m.listBySchedule != nil {
		return m.listBySchedule(ctx, scheduleID, p)
	}
	return nil, 0, nil
}

func (m *mockRouteRepo) CountBySchedule(ctx context.Context, scheduleID uuid.UUID) (int64, error) {
	if m.countBySchedule != nil {
		return m.countBySchedule(ctx, scheduleID)
	}
	return 0, nil
}

var _ repo.RouteRepo = (*mockRouteRepo)(nil)

// ---- PlaceRepo -------------------------------------------------------------

type mockPlaceRepo struct {
	getByID         func(ctx context.Context, id uuid.UUID) (domain.Place, error)
	listByIDs       func(ctx context.Context, ids []uuid.UUID) ([]domain.Place, error)
	list            func(ctx context.Context, p domain.PaginationParams) ([]domain.Place, int64, error)
	listByArea      func(ctx context.Context, country, city, district string, p domain.PaginationParams) ([]domain.Place, int64, error)
	searchByKeyword func(ctx context.Context, keyword string) ([]domain.Place, error)
	listInBox       func(ctx context.Context, minLat, maxLat, minLon, maxLon float64) ([]domain.Place, error)
}

func (m *mockPlaceRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Place, error) {
	if m.getByID != nil {
		return m.getByID(ctx, id)
	}
	return domain.Place{ID: id}, nil
}

func (m *mockPlaceRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Place, error) {
	if m.listByIDs != nil {
		return m.listByIDs(ctx, ids)
	}
	places := make([]domain.Place, len(ids))
	for i, id := range ids {
		places[i] = domain.Place{ID: id}
	}
	return places, nil
}

func (m *mockPlaceRepo) List(ctx context.Context, p domain.PaginationParams) ([]domain.Place, int64, error) {
	if m.list != nil {
		return m.list(ctx, p)
	}
	return nil, 0, nil
}

func (m *mockPlaceRepo) ListByArea(ctx context.Context, country, city, district string, p domain.PaginationParams) ([]domain.Place, int64, error) {
	if m.listByArea != nil {
		return m.listByArea(ctx, country, city, district, p)
	}
	return nil, 0, nil
}

func (m *mockPlaceRepo) SearchByKeyword(ctx context.Context, keyword string) ([]domain.Place, error) {
	if m.searchByKeyword != nil {
		return m.searchByKeyword(ctx, keyword)
	}
	return nil, nil
}

func (m *mockPlaceRepo) ListInBox(ctx context.Context, minLat, maxLat, minLon, maxLon float64) ([]domain.Place, error) {
	if m.listInBox != nil {
		return m.listInBox(ctx, minLat, maxLat, minLon, maxLon)
	}
	return nil, nil
}

var _ repo.PlaceRepo = (*mockPlaceRepo)(nil)

// ---- ChatRepo --------------------------------------------------------------

type mockChatRepo struct {
	insert           func(ctx context.Context, msg domain.ChatMessage) (domain.ChatMessage, error)
	listBySchedule   func(ctx context.Context, scheduleID uuid.UUID, p domain.PaginationParams) ([]domain.ChatMessage, int64, error)
	countBySchedule  func(ctx context.Context, scheduleID uuid.UUID) (int64, error)
	deleteBySchedule func(ctx context.Context, scheduleID uuid.UUID) error
}

func (m *mockChatRepo) Insert(ctx context.Context, msg domain.ChatMessage) (domain.ChatMessage, error) {
	if m.insert != nil {
		return m.insert(ctx, msg)
	}
	msg.ID = "000000000000000000000000"
	return msg, nil
}

func (m *mockChatRepo) ListBySchedule(ctx context.Context, scheduleID uuid.UUID, p domain.PaginationParams) ([]domain.ChatMessage, int64, error) {
	if m.listBySchedule != nil {
		return m.listBySchedule(ctx, scheduleID, p)
	}
	return nil, 0, nil
}

func (m *mockChatRepo) CountBySchedule(ctx context.Context, scheduleID uuid.UUID) (int64, error) {
	if m.countBySchedule != nil {
		return m.countBySchedule(ctx, scheduleID)
	}
	return 0, nil
}

func (m *mockChatRepo) DeleteBySchedule(ctx context.Context, scheduleID uuid.UUID) error {
	if m.deleteBySchedule != nil {
		return m.deleteBySchedule(ctx, scheduleID)
	}
	return nil
}

var _ repo.ChatRepo = (*mockChatRepo)(nil)
