package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"tiergate.org/internal/auth"
	"tiergate.org/internal/obs"
)

const (
	authHeader = "Authorization"
	bearer     = "Bearer "
)

var publicPaths = []string{
	"/v1/auth/token",
	"/v1/auth/scopes",
	"/v1/users",
	"/metrics",
	"/healthz",
	"/readyz",
	"/v1/info",
	"/",
}

func (a *API) withAuth(next http.Handler) http.Handler {
	if a == nil || a.codec == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		if isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		token, err := extractBearerToken(r.Header.Get(authHeader))
		if err != nil {
			writeError(w, r, http.StatusUnauthorized, err.Error())
			return
		}

		payload, err := a.codec.Decode(token)
		if err != nil {
			obs.ObserveTokenValidation("invalid")
			writeError(w, r, http.StatusUnauthorized, "invalid token")
			return
		}
		obs.ObserveTokenValidation("ok")

		if a.auth != nil {
			if err := a.auth.ConsumeAnonymousQuota(r.Context(), payload.Subject); err != nil {
				if errors.Is(err, auth.ErrForbidden) {
					writeError(w, r, http.StatusForbidden, "usage limit exceeded, create an account to continue")
					return
				}
				writeError(w, r, http.StatusInternalServerError, "authorization error")
				return
			}
		}

		ctx := auth.ContextWithPayload(r.Context(), payload)
		ctx = auth.ContextWithToken(ctx, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireScope writes a 401/403 and returns false unless the request context
// carries a token payload with the required scope.
func (a *API) requireScope(w http.ResponseWriter, r *http.Request, scope auth.Scope) bool {
	payload, ok := auth.PayloadFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return false
	}
	if err := auth.Authorize(payload, scope); err != nil {
		if errors.Is(err, auth.ErrForbidden) {
			writeError(w, r, http.StatusForbidden, "insufficient scope")
			return false
		}
		writeError(w, r, http.StatusInternalServerError, "authorization error")
		return false
	}
	return true
}

// requireAnyScope is requireScope for endpoints satisfied by any one of
// several scopes.
func (a *API) requireAnyScope(w http.ResponseWriter, r *http.Request, scopes ...auth.Scope) bool {
	payload, ok := auth.PayloadFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return false
	}
	if err := auth.RequireAnyOf(payload, scopes...); err != nil {
		writeError(w, r, http.StatusForbidden, "insufficient scope")
		return false
	}
	return true
}

func extractBearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errors.New("missing bearer token")
	}
	if !strings.HasPrefix(strings.ToLower(header), strings.ToLower(bearer)) {
		return "", errors.New("invalid authorization scheme")
	}
	token := strings.TrimSpace(header[len(bearer):])
	if token == "" {
		return "", errors.New("missing bearer token")
	}
	return token, nil
}

func isPublicPath(path string) bool {
	for _, p := range publicPaths {
		if path == p {
			return true
		}
	}
	return false
}
