// Package handler implements the HTTP handlers for the TripTune API.
// All handlers are methods on Server, split into domain-specific files
// (schedule.go, attendee.go, etc.) but sharing the same Server struct so
// they can access its dependencies.
//
// Member identity arrives in the X-Member-ID header, injected by the
// upstream auth gateway. Handlers trust it; there is no credential handling
// in this service.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/TripTune-Project/TripTune-Backend-sub001/internal/domain"
	"github.com/TripTune-Project/TripTune-Backend-sub001/internal/service"
)

// ScheduleServicer defines the schedule operations the handlers depend on.
// Defining interfaces here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type ScheduleServicer interface {
	Create(ctx context.Context, memberID uuid.UUID, in service.ScheduleInput) (domain.Schedule, error)
	GetDetail(ctx context.Context, scheduleID uuid.UUID, p domain.PaginationParams) (service.ScheduleDetail, error)
	Update(ctx context.Context, requesterID, scheduleID uuid.UUID, in service.ScheduleInput) (domain.Schedule, error)
	Delete(ctx context.Context, scheduleID, requesterID uuid.UUID) error
	ListMine(ctx context.Context, memberID uuid.UUID, p domain.PaginationParams) (service.ScheduleList, error)
	ListShared(ctx context.Context, memberID uuid.UUID, p domain.PaginationParams) (service.ScheduleList, error)
	ListEditable(ctx context.Context, memberID uuid.UUID, p domain.PaginationParams) (service.ScheduleList, error)
	Search(ctx context.Context, memberID uuid.UUID, keyword string, scope service.SearchScope, p domain.PaginationParams) (service.ScheduleList, error)
}

// AttendeeServicer defines the attendee operations the handlers depend on.
type AttendeeServicer interface {
	List(ctx context.Context, scheduleID, requesterID uuid.UUID) ([]domain.AttendeeInfo, error)
	Invite(ctx context.Context, scheduleID, requesterID uuid.UUID, targetEmail string, permission domain.Permission) (domain.Attendee, error)
	ChangePermission(ctx context.Context, scheduleID, requesterID, attendeeID uuid.UUID, permission domain.Permission) (domain.Attendee, error)
	Remove(ctx context.Context, scheduleID, requesterID, attendeeID uuid.UUID) error
	Leave(ctx context.Context, scheduleID, memberID uuid.UUID) error
}

// RouteServicer defines the route operations the handlers depend on.
type RouteServicer interface {
	List(ctx context.Context, scheduleID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.RouteStop], error)
	Append(ctx context.Context, scheduleID, requesterID, placeID uuid.UUID) (domain.Route, error)
}

// PlaceServicer defines the place discovery operations the handlers depend on.
type PlaceServicer interface {
	FindByArea(ctx context.Context, country, city, district string, p domain.PaginationParams) (domain.Page[domain.Place], error)
	SearchByKeyword(ctx context.Context, keyword string, p domain.PaginationParams) (domain.Page[domain.Place], error)
	FindNearby(ctx context.Context, lat, lon, radiusKm float64, p domain.PaginationParams) (domain.Page[domain.PlaceDistance], error)
	SearchByKeywordNearby(ctx context.Context, keyword string, lat, lon float64, p domain.PaginationParams) (domain.Page[domain.PlaceDistance], error)
}

// ChatServicer defines the chat operations the handlers depend on.
type ChatServicer interface {
	Send(ctx context.Context, scheduleID, memberID uuid.UUID, text string) (domain.ChatMessage, error)
	List(ctx context.Context, scheduleID, memberID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.ChatMessage], error)
}

// Server holds every handler dependency. Methods live in domain-specific
// files but all operate on this struct.
type Server struct {
	schedules ScheduleServicer
	attendees AttendeeServicer
	routes    RouteServicer
	places    PlaceServicer
	chats     ChatServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(schedules ScheduleServicer, attendees AttendeeServicer, routes RouteServicer, places PlaceServicer, chats ChatServicer) *Server {
	return &Server{
		schedules: schedules,
		attendees: attendees,
		routes:    routes,
		places:    places,
		chats:     chats,
	}
}

// Router returns the chi router with every API route mounted. Cross-cutting
// middleware (request id, logging, CORS, body limits) is wired by the caller
// around this router.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.getHealth)

	r.Route("/schedules", func(r chi.Router) {
		r.Post("/", s.createSchedule)
		r.Get("/", s.listSchedules)
		r.Get("/shared", s.listSharedSchedules)
		r.Get("/editable", s.listEditableSchedules)
		r.Get("/search", s.searchSchedules)

		r.Route("/{scheduleID}", func(r chi.Router) {
			r.Get("/", s.getScheduleDetail)
			r.Put("/", s.updateSchedule)
			r.Delete("/", s.deleteSchedule)

			r.Get("/attendees", s.listAttendees)
			r.Post("/attendees", s.inviteAttendee)
			r.Delete("/attendees/me", s.leaveSchedule)
			r.Patch("/attendees/{attendeeID}/permission", s.changeAttendeePermission)
			r.Delete("/attendees/{attendeeID}", s.removeAttendee)

			r.Get("/routes", s.listRoutes)
			r.Post("/routes", s.appendRoute)

			r.Get("/chats", s.listChatMessages)
			r.Post("/chats", s.sendChatMessage)
		})
	})

	r.Route("/places", func(r chi.Router) {
		r.Get("/", s.listPlacesByArea)
		r.Get("/search", s.searchPlaces)
		r.Get("/nearby", s.listPlacesNearby)
	})

	return r
}

// memberID extracts the authenticated member's id from the X-Member-ID
// header. A missing or malformed header means the request never passed the
// auth gateway.
func memberID(r *http.Request) (uuid.UUID, error) {
	raw := r.Header.Get("X-Member-ID")
	if raw == "" {
		return uuid.Nil, errMissingMember
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errMissingMember
	}
	return id, nil
}

// pathUUID parses a uuid path parameter from the chi route context.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}
