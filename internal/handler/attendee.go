package handler

import (
	"encoding/json"
	"net/http"

	"github.com/TripTune-Project/TripTune-Backend-sub001/internal/domain"
)

// inviteRequest is the JSON body for POST /schedules/{scheduleID}/attendees.
// The target is addressed by registered email; sharing is immediate, with no
// pending-invitation state.
type inviteRequest struct {
	Email      string            `json:"email"`
	Permission domain.Permission `json:"permission"`
}

// permissionRequest is the JSON body for the permission change endpoint.
type permissionRequest struct {
	Permission domain.Permission `json:"permission"`
}

// listAttendees handles GET /schedules/{scheduleID}/attendees.
func (s *Server) listAttendees(w http.ResponseWriter, r *http.Request) {
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

	infos, err := s.attendees.List(r.Context(), scheduleID, requester)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"content": infos})
}

// inviteAttendee handles POST /schedules/{scheduleID}/attendees.
func (s *Server) inviteAttendee(w http.ResponseWriter, r *http.Request) {
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

	var req inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondRequestError(w, "request body must be valid JSON")
		return
	}
	if req.Email == "" {
		respondRequestError(w, "email is required")
		return
	}

	created, err := s.attendees.Invite(r.Context(), scheduleID, requester, req.Email, req.Permission)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// changeAttendeePermission handles
// PATCH /schedules/{scheduleID}/attendees/{attendeeID}/permission.
func (s *Server) changeAttendeePermission(w http.ResponseWriter, r *http.Request) {
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
	attendeeID, err := pathUUID(r, "attendeeID")
	if err != nil {
		respondRequestError(w, "attendee id must be a uuid")
		return
	}

	var req permissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondRequestError(w, "request body must be valid JSON")
		return
	}

	updated, err := s.attendees.ChangePermission(r.Context(), scheduleID, requester, attendeeID, req.Permission)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// removeAttendee handles DELETE /schedules/{scheduleID}/attendees/{attendeeID}.
func (s *Server) removeAttendee(w http.ResponseWriter, r *http.Request) {
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
	attendeeID, err := pathUUID(r, "attendeeID")
	if err != nil {
		respondRequestError(w, "attendee id must be a uuid")
		return
	}

	if err := s.attendees.Remove(r.Context(), scheduleID, requester, attendeeID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// leaveSchedule handles DELETE /schedules/{scheduleID}/attendees/me.
func (s *Server) leaveSchedule(w http.ResponseWriter, r *http.Request) {
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

	if err := s.attendees.Leave(r.Context(), scheduleID, requester); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
