package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/TripTune-Project/TripTune-Backend-sub001/internal/domain"
)

// errMissingMember marks requests without a usable X-Member-ID header.
var errMissingMember = errors.New("member identity required")

// errorResponse is the JSON error envelope shared by every endpoint.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	// Code is a stable machine-readable identifier clients switch on.
	Code string `json:"code"`
	// Message is a human-readable description for display and debugging.
	Message string `json:"message"`
}

// sentinelStatus maps each domain sentinel to its HTTP status and error code.
var sentinelStatus = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrValidation, http.StatusUnprocessableEntity, "validation_error"},
	{domain.ErrNotFound, http.StatusNotFound, "not_found"},
	{domain.ErrAccessDenied, http.StatusForbidden, "access_denied"},
	{domain.ErrEditDenied, http.StatusForbidden, "edit_denied"},
	{domain.ErrChatDenied, http.StatusForbidden, "chat_denied"},
	{domain.ErrDeleteDenied, http.StatusForbidden, "delete_denied"},
	{domain.ErrPermissionChangeDenied, http.StatusForbidden, "permission_change_denied"},
	{domain.ErrLeaveDenied, http.StatusForbidden, "leave_denied"},
	{domain.ErrAlreadyAttendee, http.StatusConflict, "already_attendee"},
	{domain.ErrCapacityExceeded, http.StatusConflict, "capacity_exceeded"},
}

// respondError maps a service error to the JSON error envelope. Unrecognized
// errors become an opaque 500 so internal details never leak to clients.
func respondError(w http.ResponseWriter, err error) {
	if errors.Is(err, errMissingMember) {
		respondJSON(w, http.StatusUnauthorized, errorResponse{
			Error: errorDetail{Code: "unauthorized", Message: errMissingMember.Error()},
		})
		return
	}
	for _, m := range sentinelStatus {
		if errors.Is(err, m.err) {
			respondJSON(w, m.status, errorResponse{
				Error: errorDetail{Code: m.code, Message: unwrapMessage(err)},
			})
			return
		}
	}
	respondJSON(w, http.StatusInternalServerError, errorResponse{
		Error: errorDetail{Code: "internal_error", Message: "internal server error"},
	})
}

// respondRequestError rejects a bad request before it reaches the service
// layer (malformed body, bad path parameter).
func respondRequestError(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusUnprocessableEntity, errorResponse{
		Error: errorDetail{Code: "validation_error", Message: message},
	})
}

// respondJSON writes v as the JSON response body with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// unwrapMessage extracts the human-readable tail from a wrapped error chain,
// e.g. "service.ScheduleService.Create: validation error: name is required"
// becomes "name is required" with the operation prefixes stripped.
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		tail := msg[i+2:]
		if tail != "" {
			return tail
		}
	}
	return msg
}
