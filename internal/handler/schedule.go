package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/TripTune-Project/TripTune-Backend-sub001/internal/domain"
	"github.com/TripTune-Project/TripTune-Backend-sub001/internal/service"
)

// scheduleRequest is the JSON body for schedule create and update. Dates are
// plain YYYY-MM-DD strings; routes are only consulted on update, where they
// replace the schedule's whole itinerary.
type scheduleRequest struct {
	Name      string              `json:"name"`
	StartDate string              `json:"start_date"`
	EndDate   string              `json:"end_date"`
	Routes    []routeEntryRequest `json:"routes,omitempty"`
}

type routeEntryRequest struct {
	PlaceID uuid.UUID `json:"place_id"`
	Order   int       `json:"route_order"`
}

// toInput converts the request body into a service.ScheduleInput, parsing
// the date fields.
func (req scheduleRequest) toInput() (service.ScheduleInput, error) {
	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		return service.ScheduleInput{}, err
	}
	end, err := parseDate("end_date", req.EndDate)
	if err != nil {
		return service.ScheduleInput{}, err
	}

	in := service.ScheduleInput{Name: req.Name, StartDate: start, EndDate: end}
	for _, e := range req.Routes {
		in.Routes = append(in.Routes, domain.RouteEntry{PlaceID: e.PlaceID, Order: e.Order})
	}
	return in, nil
}

// createSchedule handles POST /schedules.
func (s *Server) createSchedule(w http.ResponseWriter, r *http.Request) {
	requester, err := memberID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondRequestError(w, "request body must be valid JSON")
		return
	}
	in, err := req.toInput()
	if err != nil {
		respondRequestError(w, err.Error())
		return
	}

	created, err := s.schedules.Create(r.Context(), requester, in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// getScheduleDetail handles GET /schedules/{scheduleID}.
// The response carries one page of the place catalog for the place tab;
// ?page= and ?limit= page through it.
func (s *Server) getScheduleDetail(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := pathUUID(r, "scheduleID")
	if err != nil {
		respondRequestError(w, "schedule id must be a uuid")
		return
	}

	detail, err := s.schedules.GetDetail(r.Context(), scheduleID, parsePagination(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

// updateSchedule handles PUT /schedules/{scheduleID}.
func (s *Server) updateSchedule(w http.ResponseWriter, r *http.Request) {
	requester, err := memberID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	scheduleID, err := pathUUID(r, "scheduleID")
	if err != nil {
		respondRequestError(w, "schedule id must be a uuid")
		return
	}

	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondRequestError(w, "request body must be valid JSON")
		return
	}
	in, err := req.toInput()
	if err != nil {
		respondRequestError(w, err.Error())
		return
	}

	updated, err := s.schedules.Update(r.Context(), requester, scheduleID, in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// deleteSchedule handles DELETE /schedules/{scheduleID}.
func (s *Server) deleteSchedule(w http.ResponseWriter, r *http.Request) {
	requester, err := memberID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	scheduleID, err := pathUUID(r, "scheduleID")
	if err != nil {
		respondRequestError(w, "schedule id must be a uuid")
		return
	}

	if err := s.schedules.Delete(r.Context(), scheduleID, requester); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listSchedules handles GET /schedules: every schedule the member attends.
func (s *Server) listSchedules(w http.ResponseWriter, r *http.Request) {
	s.respondScheduleList(w, r, s.schedules.ListMine)
}

// listSharedSchedules handles GET /schedules/shared: schedules with
// collaborators beyond the author.
func (s *Server) listSharedSchedules(w http.ResponseWriter, r *http.Request) {
	s.respondScheduleList(w, r, s.schedules.ListShared)
}

// listEditableSchedules handles GET /schedules/editable: schedules where the
// member holds EDIT or ALL permission.
func (s *Server) listEditableSchedules(w http.ResponseWriter, r *http.Request) {
	s.respondScheduleList(w, r, s.schedules.ListEditable)
}

func (s *Server) respondScheduleList(w http.ResponseWriter, r *http.Request, list func(ctx context.Context, memberID uuid.UUID, p domain.PaginationParams) (service.ScheduleList, error)) {
	requester, err := memberID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	out, err := list(r.Context(), requester, parsePagination(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

// searchSchedules handles GET /schedules/search?keyword=&scope=.
// Scope "shared" restricts results to schedules with collaborators;
// anything else searches all attended schedules.
func (s *Server) searchSchedules(w http.ResponseWriter, r *http.Request) {
	requester, err := memberID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	scope := service.ScopeAll
	if r.URL.Query().Get("scope") == string(service.ScopeShared) {
		scope = service.ScopeShared
	}

	out, err := s.schedules.Search(r.Context(), requester, r.URL.Query().Get("keyword"), scope, parsePagination(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}
