package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/RomanPopovMB/taskmanager/internal/auth"
)

// identityFromRequest returns the authenticated identity stored by the
// authentication middleware. A missing identity means the route was
// reached without passing the verifier, which is a wiring bug; the
// request is rejected rather than served.
func identityFromRequest(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return auth.Identity{}, false
	}
	return identity, true
}

// urlParamID parses the {id} URL parameter.
func urlParamID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		respondBadRequest(w, "id must be a positive integer")
		return 0, false
	}
	return id, true
}
