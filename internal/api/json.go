package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/starford/raido/internal/apperr"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", slog.String("error", err.Error()))
	}
}

type errResponse struct {
	Error string `json:"error" validate:"required"`
	// Current carries the previous committed entity on a failed update
	// so the caller can revert an optimistic local change.
	Current any `json:"current,omitempty"`
}

func errorBody(msg string) errResponse {
	return errResponse{Error: msg}
}

// errStatus maps the error taxonomy onto HTTP status codes.
func errStatus(err error) int {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperr.ErrUnreachable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeErr reports a failed operation. The message is the error text
// for taxonomy errors and a generic one for everything else.
func writeErr(w http.ResponseWriter, err error) {
	writeErrWith(w, err, nil)
}

// writeErrWith additionally attaches the previous committed entity.
func writeErrWith(w http.ResponseWriter, err error, current any) {
	status := errStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("request failed", slog.String("error", err.Error()))
		msg = "internal error"
	}
	writeJSON(w, status, errResponse{Error: msg, Current: current})
}

// decodeBody parses a JSON request body with a size cap.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return false
	}
	return true
}
