package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/TripTune-Project/TripTune-Backend-sub001/internal/domain"
	"github.com/TripTune-Project/TripTune-Backend-sub001/internal/handler"
	"github.com/TripTune-Project/TripTune-Backend-sub001/internal/service"
)

// Test doubles for the handler's servicer interfaces. Set only the method
// fields your test needs; calling an unset field panics, which is a loud
// signal the handler hit an unexpected service method.

type mockScheduleServicer struct {
	create       func(ctx context.Context, memberID uuid.UUID, in service.ScheduleInput) (domain.Schedule, error)
	getDetail    func(ctx context.Context, scheduleID uuid.UUID, p domain.PaginationParams) (service.ScheduleDetail, error)
	update       func(ctx context.Context, requesterID, scheduleID uuid.UUID, in service.ScheduleInput) (domain.Schedule, error)
	delete       func(ctx context.Context, scheduleID, requesterID uuid.UUID) error
	listMine     func(ctx context.Context, memberID uuid.UUID, p domain.PaginationParams) (service.ScheduleList, error)
	listShared   func(ctx context.Context, memberID uuid.UUID, p domain.PaginationParams) (service.ScheduleList, error)
	listEditable func(ctx context.Context, memberID uuid.UUID, p domain.PaginationParams) (service.ScheduleList, error)
	search       func(ctx context.Context, memberID uuid.UUID, keyword string, scope service.SearchScope, p domain.PaginationParams) (service.ScheduleList, error)
}

func (m *mockScheduleServicer) Create(ctx context.Context, memberID uuid.UUID, in service.ScheduleInput) (domain.Schedule, error) {
	return m.create(ctx, memberID, in)
}
func (m *mockScheduleServicer) GetDetail(ctx context.Context, scheduleID uuid.UUID, p domain.PaginationParams) (service.ScheduleDetail, error) {
	return m.getDetail(ctx, scheduleID, p)
}
func (m *mockScheduleServicer) Update(ctx context.Context, requesterID, scheduleID uuid.UUID, in service.ScheduleInput) (domain.Schedule, error) {
	return m.update(ctx, requesterID, scheduleID, in)
}
func (m *mockScheduleServicer) Delete(ctx context.Context, scheduleID, requesterID uuid.UUID) error {
	return m.delete(ctx, scheduleID, requesterID)
}
func (m *mockScheduleServicer) ListMine(ctx context.Context, memberID uuid.UUID, p domain.PaginationParams) (service.ScheduleList, error) {
	return m.listMine(ctx, memberID, p)
}
func (m *mockScheduleServicer) ListShared(ctx context.Context, memberID uuid.UUID, p domain.PaginationParams) (service.ScheduleList, error) {
	return m.listShared(ctx, memberID, p)
}
func (m *mockScheduleServicer) ListEditable(ctx context.Context, memberID uuid.UUID, p domain.PaginationParams) (service.ScheduleList, error) {
	return m.listEditable(ctx, memberID, p)
}
func (m *mockScheduleServicer) Search(ctx context.Context, memberID uuid.UUID, keyword string, scope service.SearchScope, p domain.PaginationParams) (service.ScheduleList, error) {
	return m.search(ctx, memberID, keyword, scope, p)
}

type mockAttendeeServicer struct {
	list             func(ctx context.Context, scheduleID, requesterID uuid.UUID) ([]domain.AttendeeInfo, error)
	invite           func(ctx context.Context, scheduleID, requesterID uuid.UUID, targetEmail string, permission domain.Permission) (domain.Attendee, error)
	changePermission func(ctx context.Context, scheduleID, requesterID, attendeeID uuid.UUID, permission domain.Permission) (domain.Attendee, error)
	remove           func(ctx context.Context, scheduleID, requesterID, attendeeID uuid.UUID) error
	leave            func(ctx context.Context, scheduleID, memberID uuid.UUID) error
}

func (m *mockAttendeeServicer) List(ctx context.Context, scheduleID, requesterID uuid.UUID) ([]domain.AttendeeInfo, error) {
	return m.list(ctx, scheduleID, requesterID)
}
func (m *mockAttendeeServicer) Invite(ctx context.Context, scheduleID, requesterID uuid.UUID, targetEmail string, permission domain.Permission) (domain.Attendee, error) {
	return m.invite(ctx, scheduleID, requesterID, targetEmail, permission)
}
func (m *mockAttendeeServicer) ChangePermission(ctx context.Context, scheduleID, requesterID, attendeeID uuid.UUID, permission domain.Permission) (domain.Attendee, error) {
	return m.changePermission(ctx, scheduleID, requesterID, attendeeID, permission)
}
func (m *mockAttendeeServicer) Remove(ctx context.Context, scheduleID, requesterID, attendeeID uuid.UUID) error {
	return m.remove(ctx, scheduleID, requesterID, attendeeID)
}
func (m *mockAttendeeServicer) Leave(ctx context.Context, scheduleID, memberID uuid.UUID) error {
	return m.leave(ctx, scheduleID, memberID)
}

type mockRouteServicer struct {
	list   func(ctx context.Context, scheduleID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.RouteStop], error)
	append func(ctx context.Context, scheduleID, requesterID, placeID uuid.UUID) (domain.Route, error)
}

func (m *mockRouteServicer) List(ctx context.Context, scheduleID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.RouteStop], error) {
	return m.list(ctx, scheduleID, p)
}
func (m *mockRouteServicer) Append(ctx context.Context, scheduleID, requesterID, placeID uuid.UUID) (domain.Route, error) {
	return m.append(ctx, scheduleID, requesterID, placeID)
}

type mockPlaceServicer struct {
	findByArea            func(ctx context.Context, country, city, district string, p domain.PaginationParams) (domain.Page[domain.Place], error)
	searchByKeyword       func(ctx context.Context, keyword string, p domain.PaginationParams) (domain.Page[domain.Place], error)
	findNearby            func(ctx context.Context, lat, lon, radiusKm float64, p domain.PaginationParams) (domain.Page[domain.PlaceDistance], error)
	searchByKeywordNearby func(ctx context.Context, keyword string, lat, lon float64, p domain.PaginationParams) (domain.Page[domain.PlaceDistance], error)
}

func (m *mockPlaceServicer) FindByArea(ctx context.Context, country, city, district string, p domain.PaginationParams) (domain.Page[domain.Place], error) {
	return m.findByArea(ctx, country, city, district, p)
}
func (m *mockPlaceServicer) SearchByKeyword(ctx context.Context, keyword string, p domain.PaginationParams) (domain.Page[domain.Place], error) {
	return m.searchByKeyword(ctx, keyword, p)
}
func (m *mockPlaceServicer) FindNearby(ctx context.Context, lat, lon, radiusKm float64, p domain.PaginationParams) (domain.Page[domain.PlaceDistance], error) {
	return m.findNearby(ctx, lat, lon, radiusKm, p)
}
func (m *mockPlaceServicer) SearchByKeywordNearby(ctx context.Context, keyword string, lat, lon float64, p domain.PaginationParams) (domain.Page[domain.PlaceDistance], error) {
	return m.searchByKeywordNearby(ctx, keyword, lat, lon, p)
}

type mockChatServicer struct {
	send func(ctx context.Context, scheduleID, memberID uuid.UUID, text string) (domain.ChatMessage, error)
	list func(ctx context.Context, scheduleID, memberID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.ChatMessage], error)
}

func (m *mockChatServicer) Send(ctx context.Context, scheduleID, memberID uuid.UUID, text string) (domain.ChatMessage, error) {
	return m.send(ctx, scheduleID, memberID, text)
}
func (m *mockChatServicer) List(ctx context.Context, scheduleID, memberID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.ChatMessage], error) {
	return m.list(ctx, scheduleID, memberID, p)
}

// compile-time checks: the mocks must satisfy the handler interfaces.
var (
	_ handler.ScheduleServicer = (*mockScheduleServicer)(nil)
	_ handler.AttendeeServicer = (*mockAttendeeServicer)(nil)
	_ handler.RouteServicer    = (*mockRouteServicer)(nil)
	_ handler.PlaceServicer    = (*mockPlaceServicer)(nil)
	_ handler.ChatServicer     = (*mockChatServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

// serverMocks bundles one mock per servicer so tests can set only the fields
// they exercise.
type serverMocks struct {
	schedules *mockScheduleServicer
	attendees *mockAttendeeServicer
	routes    *mockRouteServicer
	places    *mockPlaceServicer
	chats     *mockChatServicer
}

// newHTTPHandler wires a Server with fresh mocks into its chi router, the
// same way main.go wires it in production.
func newHTTPHandler() (http.Handler, *serverMocks) {
	m := &serverMocks{
		schedules: &mockScheduleServicer{},
		attendees: &mockAttendeeServicer{},
		routes:    &mockRouteServicer{},
		places:    &mockPlaceServicer{},
		chats:     &mockChatServicer{},
	}
	srv := handler.NewServer(m.schedules, m.attendees, m.routes, m.places, m.chats)
	return srv.Router(), m
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// authedRequest builds a request carrying the member identity header the
// upstream gateway would inject.
func authedRequest(method, target string, body *bytes.Buffer, memberID uuid.UUID) *http.Request {
	var r *http.Request
	if body == nil {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, body)
		r.Header.Set("Content-Type", "application/json")
	}
	r.Header.Set("X-Member-ID", memberID.String())
	return r
}

func scheduleFixture() domain.Schedule {
	return domain.Schedule{
		ID:        uuid.New(),
		Name:      "Jeju Getaway",
		StartDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

// decodeError reads the JSON error envelope and returns its code.
func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.Error.Message)
	return resp.Error.Code
}
