package httpapi

import (
	"net/http"

	"tiergate.org/internal/auth"
)

// The content handlers are deliberately thin: they exist to gate access by
// scope, not to serve a content catalog.

func (a *API) handleContentIndex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	if !a.requireAnyScope(w, r, auth.ScopeReadUnpaid, auth.ScopeReadPaid) {
		return
	}
	payload, _ := auth.PayloadFromContext(r.Context())
	tiers := make([]string, 0, 2)
	if payload.Scopes.Has(auth.ScopeReadUnpaid) {
		tiers = append(tiers, "unpaid")
	}
	if payload.Scopes.Has(auth.ScopeReadPaid) {
		tiers = append(tiers, "paid")
	}
	writeJSON(w, http.StatusOK, map[string]any{"tiers": tiers})
}

func (a *API) handleContentUnpaid(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if !a.requireScope(w, r, auth.ScopeReadUnpaid) {
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"tier": "unpaid", "items": []string{}})
	case http.MethodPost:
		if !a.requireScope(w, r, auth.ScopeWriteUnpaid) {
			return
		}
		writeJSON(w, http.StatusAccepted, map[string]any{"status": "accepted", "tier": "unpaid"})
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleContentPaid(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if !a.requireScope(w, r, auth.ScopeReadPaid) {
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"tier": "paid", "items": []string{}})
	case http.MethodPost:
		if !a.requireScope(w, r, auth.ScopeWritePaid) {
			return
		}
		writeJSON(w, http.StatusAccepted, map[string]any{"status": "accepted", "tier": "paid"})
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleAdminUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	if !a.requireScope(w, r, auth.ScopeAdminAll) {
		return
	}
	users, err := a.auth.Users(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "user listing failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}
