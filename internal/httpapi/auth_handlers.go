package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"tiergate.org/internal/audit"
	"tiergate.org/internal/auth"
	"tiergate.org/internal/obs"
)

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (a *API) handleAuthToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req tokenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		writeError(w, r, http.StatusBadRequest, "username is required")
		return
	}

	token, err := a.auth.Authenticate(r.Context(), username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrDenied) {
			// Log the subject only; never which sub-case denied it.
			_ = audit.LogEvent(r.Context(), "auth.denied", map[string]any{"subject": username})
			obs.ObserveLogin("denied")
			writeError(w, r, http.StatusUnauthorized, "invalid username or password")
			return
		}
		writeError(w, r, http.StatusInternalServerError, "authentication error")
		return
	}

	obs.ObserveLogin("ok")
	_ = audit.LogEvent(r.Context(), "auth.token.issued", map[string]any{
		"subject":    username,
		"expires_at": token.ExpiresAt,
	})
	writeJSON(w, http.StatusOK, token)
}

func (a *API) handleAuthScopes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	scopes := make(map[string]string, len(auth.ScopeDescriptions))
	for scope, description := range auth.ScopeDescriptions {
		scopes[string(scope)] = description
	}
	writeJSON(w, http.StatusOK, map[string]any{"scopes": scopes})
}

// handleAuthMe returns the stored record of the authenticated principal.
func (a *API) handleAuthMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	payload, ok := auth.PayloadFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	user, err := a.auth.UserByUsername(r.Context(), payload.Subject)
	if err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			writeError(w, r, http.StatusUnauthorized, "invalid token")
			return
		}
		writeError(w, r, http.StatusInternalServerError, "lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// handleAuthMeScopes lists the scopes the caller's stored role grants right
// now, which may differ from the token's issuance-time scopes.
func (a *API) handleAuthMeScopes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	if !a.requireScope(w, r, auth.ScopeAdminAll) {
		return
	}
	payload, _ := auth.PayloadFromContext(r.Context())
	user, err := a.auth.UserByUsername(r.Context(), payload.Subject)
	if err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			writeError(w, r, http.StatusUnauthorized, "invalid token")
			return
		}
		writeError(w, r, http.StatusInternalServerError, "lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, a.auth.ScopesForRole(user.Role).Strings())
}

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

func (a *API) handleUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req createUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	role := auth.Role("")
	if strings.TrimSpace(req.Role) != "" {
		parsed, ok := auth.ParseRole(req.Role)
		if !ok {
			writeError(w, r, http.StatusBadRequest, "unknown role")
			return
		}
		role = parsed
	}

	user, err := a.auth.Register(r.Context(), req.Username, req.Password, role)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrConflict):
			writeError(w, r, http.StatusConflict, "username already taken")
		case errors.Is(err, auth.ErrInvalidInput):
			writeError(w, r, http.StatusBadRequest, err.Error())
		default:
			writeError(w, r, http.StatusInternalServerError, "user creation failed")
		}
		return
	}

	if a.prefs != nil {
		if _, err := a.prefs.CreateDefaults(r.Context(), user.ID); err != nil {
			writeError(w, r, http.StatusInternalServerError, "user creation failed")
			return
		}
	}

	_ = audit.LogEvent(r.Context(), "user.created", map[string]any{
		"subject": user.Username,
		"role":    string(user.Role),
	})
	writeJSON(w, http.StatusCreated, user)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// handleUserPassword rotates the caller's own password. The subject comes
// from the bearer token, not the request body.
func (a *API) handleUserPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	payload, ok := auth.PayloadFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	var req changePasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	err := a.auth.ChangePassword(r.Context(), payload.Subject, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrDenied):
			writeError(w, r, http.StatusUnauthorized, "invalid current password")
		case errors.Is(err, auth.ErrInvalidInput):
			writeError(w, r, http.StatusBadRequest, err.Error())
		default:
			writeError(w, r, http.StatusInternalServerError, "password change failed")
		}
		return
	}

	_ = audit.LogEvent(r.Context(), "user.password.changed", map[string]any{
		"subject": payload.Subject,
	})
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}
