package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/RomanPopovMB/taskmanager/internal/auth"
	"github.com/RomanPopovMB/taskmanager/internal/repository"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Printf("encode response: %v", err)
		}
	}
}

// respondError maps the error taxonomy to HTTP statuses in one place.
// Token verification failures all collapse to the same 401 body so the
// response does not reveal which check failed.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrTokenMalformed),
		errors.Is(err, auth.ErrInvalidSignature),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrTokenRevoked):
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
	case errors.Is(err, auth.ErrInvalidCredentials):
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: auth.ErrInvalidCredentials.Error()})
	case errors.Is(err, auth.ErrForbidden):
		respondJSON(w, http.StatusForbidden, errorResponse{Error: auth.ErrForbidden.Error()})
	case errors.Is(err, auth.ErrNotFound), errors.Is(err, repository.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: auth.ErrNotFound.Error()})
	case errors.Is(err, repository.ErrDuplicate):
		respondJSON(w, http.StatusConflict, errorResponse{Error: "resource already exists"})
	default:
		log.Printf("internal error: %v", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func respondBadRequest(w http.ResponseWriter, msg string) {
	respondJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

// decodeJSON decodes the request body into dst, rejecting unknown
// fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
