package auth

import "context"

type payloadContextKey struct{}
type tokenContextKey struct{}

// ContextWithPayload attaches the decoded token payload to the context.
func ContextWithPayload(ctx context.Context, payload TokenPayload) context.Context {
	return context.WithValue(ctx, payloadContextKey{}, &payload)
}

// PayloadFromContext extracts the decoded token payload from the context.
func PayloadFromContext(ctx context.Context) (TokenPayload, bool) {
	if ctx == nil {
		return TokenPayload{}, false
	}
	v, ok := ctx.Value(payloadContextKey{}).(*TokenPayload)
	if !ok || v == nil {
		return TokenPayload{}, false
	}
	return *v, true
}

// ContextWithToken stores the raw bearer token inside the context.
func ContextWithToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, tokenContextKey{}, token)
}

// TokenFromContext returns the bearer token if it was previously attached.
func TokenFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	v, ok := ctx.Value(tokenContextKey{}).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
