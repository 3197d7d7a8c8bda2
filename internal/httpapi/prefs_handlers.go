package httpapi

import (
	"errors"
	"net/http"

	"tiergate.org/internal/audit"
	"tiergate.org/internal/auth"
	"tiergate.org/internal/prefs"
)

// handleUserParams serves the authenticated caller's delivery preferences.
// GET returns them; PATCH updates only the fields present in the body.
func (a *API) handleUserParams(w http.ResponseWriter, r *http.Request) {
	payload, ok := auth.PayloadFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	if a.prefs == nil {
		writeError(w, r, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		params, err := a.prefs.ForUser(r.Context(), payload.Subject)
		if err != nil {
			if errors.Is(err, prefs.ErrNotFound) {
				writeError(w, r, http.StatusNotFound, "parameters not found")
				return
			}
			writeError(w, r, http.StatusInternalServerError, "lookup failed")
			return
		}
		writeJSON(w, http.StatusOK, params)
	case http.MethodPatch:
		var patch prefs.Patch
		if err := decodeJSON(w, r, &patch); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		params, err := a.prefs.Apply(r.Context(), payload.Subject, patch)
		if err != nil {
			switch {
			case errors.Is(err, prefs.ErrNotFound):
				writeError(w, r, http.StatusNotFound, "parameters not found")
			case errors.Is(err, prefs.ErrInvalidInput):
				writeError(w, r, http.StatusBadRequest, err.Error())
			default:
				writeError(w, r, http.StatusInternalServerError, "update failed")
			}
			return
		}
		_ = audit.LogEvent(r.Context(), "user.params.updated", map[string]any{
			"subject": payload.Subject,
		})
		writeJSON(w, http.StatusOK, params)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPatch)
	}
}
