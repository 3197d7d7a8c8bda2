package auth

// Authorize allows the request iff the token carries the required scope.
// Scope checks trust the scopes embedded at issuance; changing a role's
// grants does not affect tokens already in flight until they expire.
func Authorize(payload TokenPayload, required Scope) error {
	if payload.Scopes.Has(required) {
		return nil
	}
	return ErrForbidden
}

// RequireAnyOf allows the request iff the token carries at least one of the
// given scopes.
func RequireAnyOf(payload TokenPayload, scopes ...Scope) error {
	for _, scope := range scopes {
		if payload.Scopes.Has(scope) {
			return nil
		}
	}
	return ErrForbidden
}
