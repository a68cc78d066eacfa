package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

// appendRouteRequest is the JSON body for POST /schedules/{scheduleID}/routes.
// The new stop always lands at the end of the itinerary; reordering happens
// through the schedule update's full route replace.
type appendRouteRequest struct {
	PlaceID uuid.UUID `json:"place_id"`
}

// listRoutes handles GET /schedules/{scheduleID}/routes.
func (s *Server) listRoutes(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := pathUUID(r, "scheduleID")
	if err != nil {
		respondRequestError(w, "schedule id must be a uuid")
		return
	}

	page, err := s.routes.List(r.Context(), scheduleID, parsePagination(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// appendRoute handles POST /schedules/{scheduleID}/routes.
func (s *Server) appendRoute(w http.ResponseWriter, r *http.Request) {
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

	var req appendRouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondRequestError(w, "request body must be valid JSON")
		return
	}
	if req.PlaceID == uuid.Nil {
		respondRequestError(w, "place_id is required")
		return
	}

	created, err := s.routes.Append(r.Context(), scheduleID, requester, req.PlaceID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}
