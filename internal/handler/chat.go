package handler

import (
	"encoding/json"
	"net/http"
)

type sendChatRequest struct {
	Text string `json:"text"`
}

// listChatMessages handles GET /schedules/{scheduleID}/chats. Messages come
// back newest first.
func (s *Server) listChatMessages(w http.ResponseWriter, r *http.Request) {
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

	page, err := s.chats.List(r.Context(), scheduleID, requester, parsePagination(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// sendChatMessage handles POST /schedules/{scheduleID}/chats.
func (s *Server) sendChatMessage(w http.ResponseWriter, r *http.Request) {
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

	var req sendChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondRequestError(w, "request body must be valid JSON")
		return
	}

	msg, err := s.chats.Send(r.Context(), scheduleID, requester, req.Text)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, msg)
}
