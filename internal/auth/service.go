package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const defaultTokenTTL = 30 * time.Minute

// PasswordVerifier abstracts credential hashing for the service.
type PasswordVerifier interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, password, encoded string) (bool, error)
}

// Token is the issued credential handed back to callers.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Service authenticates principals against the user store and mints access
// tokens carrying the scopes their role grants.
type Service struct {
	users  UserStore
	hasher PasswordVerifier
	codec  *Codec
	ttl    time.Duration
}

// ServiceOption configures Service behavior.
type ServiceOption func(*Service) error

// WithTokenTTL overrides the default access token lifetime.
func WithTokenTTL(ttl time.Duration) ServiceOption {
	return func(s *Service) error {
		if ttl <= 0 {
			return errors.New("auth: token ttl must be greater than zero")
		}
		s.ttl = ttl
		return nil
	}
}

// NewService constructs a Service from already-resolved collaborators.
func NewService(users UserStore, hasher PasswordVerifier, codec *Codec, opts ...ServiceOption) (*Service, error) {
	if users == nil {
		return nil, errors.New("auth: user store is required")
	}
	if hasher == nil {
		return nil, errors.New("auth: password hasher is required")
	}
	if codec == nil {
		return nil, errors.New("auth: token codec is required")
	}
	svc := &Service{
		users:  users,
		hasher: hasher,
		codec:  codec,
		ttl:    defaultTokenTTL,
	}
	for _, opt := range opts {
		if err := opt(svc); err != nil {
			return nil, err
		}
	}
	return svc, nil
}

// Authenticate verifies username/password and issues a bearer token. Any
// expected negative outcome, missing principal, wrong password or an
// unparseable stored hash, collapses into ErrDenied. The hasher is never
// invoked when the principal does not exist.
func (s *Service) Authenticate(ctx context.Context, username, password string) (Token, error) {
	username = strings.TrimSpace(strings.ToLower(username))
	if username == "" || password == "" {
		return Token{}, ErrDenied
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Token{}, ErrDenied
		}
		return Token{}, err
	}

	ok, err := s.hasher.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		if errors.Is(err, ErrMalformedCredential) {
			return Token{}, ErrDenied
		}
		return Token{}, err
	}
	if !ok {
		return Token{}, ErrDenied
	}

	signed, expiresAt, err := s.codec.Encode(user.Username, ScopesFor(user.Role), s.ttl)
	if err != nil {
		return Token{}, err
	}
	return Token{AccessToken: signed, TokenType: "bearer", ExpiresAt: expiresAt}, nil
}

// Register hashes the password and persists a new user. Role defaults to
// unconfirmed until an administrator promotes the account.
func (s *Service) Register(ctx context.Context, username, password string, role Role) (*User, error) {
	username = strings.TrimSpace(strings.ToLower(username))
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	if role == "" {
		role = RoleUnconfirmed
	} else if _, ok := ParseRole(string(role)); !ok {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}

	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return nil, err
	}
	user := &User{Username: username, PasswordHash: hash, Role: role}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword re-verifies the current password before storing a new hash.
// Wrong or unverifiable current passwords collapse into ErrDenied like a
// failed login.
func (s *Service) ChangePassword(ctx context.Context, username, current, next string) error {
	username = strings.TrimSpace(strings.ToLower(username))
	if username == "" || current == "" {
		return ErrDenied
	}
	if next == "" {
		return fmt.Errorf("%w: new password is required", ErrInvalidInput)
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrDenied
		}
		return err
	}

	ok, err := s.hasher.Verify(ctx, current, user.PasswordHash)
	if err != nil {
		if errors.Is(err, ErrMalformedCredential) {
			return ErrDenied
		}
		return err
	}
	if !ok {
		return ErrDenied
	}

	hash, err := s.hasher.Hash(ctx, next)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, user.ID, hash)
}

// anonymousRequestLimit caps how many requests an anonymous account may
// make before it has to upgrade to a registered one.
const anonymousRequestLimit = 50

// ConsumeAnonymousQuota counts one request against the caller's anonymous
// allowance. Registered roles pass untouched. ErrForbidden means the
// allowance is spent. A subject that is no longer stored passes too; scope
// checks still gate what it can reach.
func (s *Service) ConsumeAnonymousQuota(ctx context.Context, username string) error {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(strings.ToLower(username)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	if user.Role != RoleAnonymous && user.Role != RoleAnonymousPermanent {
		return nil
	}
	count, err := s.users.IncrementUsage(ctx, user.ID)
	if err != nil {
		return err
	}
	if count > anonymousRequestLimit {
		return ErrForbidden
	}
	return nil
}

// UserByUsername returns the stored principal for introspection callers.
func (s *Service) UserByUsername(ctx context.Context, username string) (*User, error) {
	return s.users.FindByUsername(ctx, strings.TrimSpace(strings.ToLower(username)))
}

// ScopesForRole exposes the role grant table for introspection callers.
func (s *Service) ScopesForRole(role Role) ScopeSet {
	return ScopesFor(role)
}

// Users lists every stored principal.
func (s *Service) Users(ctx context.Context) ([]*User, error) {
	return s.users.List(ctx)
}
