package prefs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tiergate.org/internal/auth"
)

// Service resolves usernames to principals and manages their parameters.
type Service struct {
	store Store
	users auth.UserStore
}

func NewService(store Store, users auth.UserStore) (*Service, error) {
	if store == nil {
		return nil, errors.New("prefs: store is required")
	}
	if users == nil {
		return nil, errors.New("prefs: user store is required")
	}
	return &Service{store: store, users: users}, nil
}

// CreateDefaults seeds the default parameters for a newly registered user.
func (s *Service) CreateDefaults(ctx context.Context, userID string) (*Parameters, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	p := DefaultParameters(userID)
	if err := s.store.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ForUser returns the stored parameters for the named principal.
func (s *Service) ForUser(ctx context.Context, username string) (*Parameters, error) {
	user, err := s.lookup(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.store.FindByUserID(ctx, user.ID)
}

// Apply merges patch into the stored parameters. Only the fields present in
// the patch change; thresholds are merged per name.
func (s *Service) Apply(ctx context.Context, username string, patch Patch) (*Parameters, error) {
	for name, param := range patch.Thresholds {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: threshold name is required", ErrInvalidInput)
		}
		if param.Importance < 0 || param.Importance > 10 {
			return nil, fmt.Errorf("%w: importance for %q must be between 0 and 10", ErrInvalidInput, name)
		}
	}

	user, err := s.lookup(ctx, username)
	if err != nil {
		return nil, err
	}
	current, err := s.store.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if patch.PreferredLat != nil {
		current.PreferredLat = *patch.PreferredLat
	}
	if patch.PreferredLon != nil {
		current.PreferredLon = *patch.PreferredLon
	}
	for name, param := range patch.Thresholds {
		if param.Name == "" {
			param.Name = name
		}
		if current.Thresholds == nil {
			current.Thresholds = make(map[string]Parameter)
		}
		current.Thresholds[name] = param
	}

	if err := s.store.Update(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

func (s *Service) lookup(ctx context.Context, username string) (*auth.User, error) {
	username = strings.TrimSpace(strings.ToLower(username))
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}
