package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the signed token payload. Scopes travel as one space-delimited
// string, matching the wire form consumed by API clients.
type Claims struct {
	Scopes string `json:"scopes,omitempty"`
	jwt.RegisteredClaims
}

// TokenPayload is the verified content of a decoded token.
type TokenPayload struct {
	Subject string
	Scopes  ScopeSet
}

// Codec signs and verifies access tokens with a fixed symmetric key and
// signing method. Both are set at construction and never change; a token
// signed with any other method fails decoding outright.
type Codec struct {
	key    []byte
	method jwt.SigningMethod
}

// NewCodec builds a Codec for the given secret and HMAC algorithm name
// (HS256, HS384 or HS512).
func NewCodec(secret, algorithm string) (*Codec, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, errors.New("auth: signing secret is required")
	}
	method := jwt.GetSigningMethod(strings.ToUpper(strings.TrimSpace(algorithm)))
	if method == nil {
		return nil, fmt.Errorf("auth: unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("auth: signing algorithm %q is not symmetric", algorithm)
	}
	return &Codec{key: []byte(secret), method: method}, nil
}

// Encode signs a token asserting subject and scopes, expiring ttl from now.
// A non-positive ttl yields a token that is already expired; issuing one is
// not an error, decoding it is.
func (c *Codec) Encode(subject string, scopes ScopeSet, ttl time.Duration) (string, time.Time, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "", time.Time{}, fmt.Errorf("%w: subject is required", ErrInvalidInput)
	}

	now := time.Now().UTC()
	expiresAt := now.Add(ttl)
	claims := Claims{
		Scopes: strings.Join(scopes.Strings(), " "),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(c.method, claims)
	signed, err := token.SignedString(c.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Decode verifies signature, signing method and expiry, and returns the
// carried payload. Every failure surfaces as ErrInvalidToken; a missing
// scopes claim decodes to an empty set, a missing subject does not decode.
func (c *Codec) Decode(token string) (TokenPayload, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return TokenPayload{}, ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != c.method.Alg() {
			return nil, ErrInvalidToken
		}
		return c.key, nil
	}, jwt.WithValidMethods([]string{c.method.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return TokenPayload{}, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return TokenPayload{}, ErrInvalidToken
	}
	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return TokenPayload{}, ErrInvalidToken
	}
	return TokenPayload{Subject: subject, Scopes: parseScopes(claims.Scopes)}, nil
}

// parseScopes splits the delimited scopes claim. Names outside the closed
// scope set are dropped; they could never satisfy a guard check anyway.
func parseScopes(raw string) ScopeSet {
	set := make(ScopeSet)
	for _, field := range strings.Fields(raw) {
		if scope, ok := ParseScope(field); ok {
			set[scope] = struct{}{}
		}
	}
	return set
}
