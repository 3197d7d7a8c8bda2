package prefs

import (
	"context"
	"errors"
	"testing"
	"time"

	"tiergate.org/internal/auth"
)

// memStore is an in-memory Store keyed by user id.
type memStore struct {
	byUser map[string]*Parameters
}

func newMemStore() *memStore {
	return &memStore{byUser: make(map[string]*Parameters)}
}

func (s *memStore) Create(ctx context.Context, p *Parameters) error {
	if _, ok := s.byUser[p.UserID]; ok {
		return ErrConflict
	}
	if p.ID == "" {
		p.ID = "params-" + p.UserID
	}
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	s.byUser[p.UserID] = &cp
	return nil
}

func (s *memStore) FindByUserID(ctx context.Context, userID string) (*Parameters, error) {
	p, ok := s.byUser[userID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *memStore) Update(ctx context.Context, p *Parameters) error {
	if _, ok := s.byUser[p.UserID]; !ok {
		return ErrNotFound
	}
	p.UpdatedAt = time.Now().UTC()
	cp := *p
	s.byUser[p.UserID] = &cp
	return nil
}

// stubUsers is a minimal auth.UserStore with fixed principals.
type stubUsers struct {
	byName map[string]*auth.User
}

func (s *stubUsers) Create(ctx context.Context, u *auth.User) error { return nil }

func (s *stubUsers) FindByUsername(ctx context.Context, username string) (*auth.User, error) {
	u, ok := s.byName[username]
	if !ok {
		return nil, auth.ErrNotFound
	}
	return u, nil
}

func (s *stubUsers) List(ctx context.Context) ([]*auth.User, error) { return nil, nil }

func (s *stubUsers) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return nil
}

func (s *stubUsers) IncrementUsage(ctx context.Context, userID string) (int, error) {
	return 0, nil
}

func newTestService(t *testing.T) (*Service, *memStore) {
	t.Helper()
	store := newMemStore()
	users := &stubUsers{byName: map[string]*auth.User{
		"alice": {ID: "user-alice", Username: "alice", Role: auth.RoleBasic},
	}}
	svc, err := NewService(store, users)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, store
}

func TestCreateDefaults(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	params, err := svc.CreateDefaults(ctx, "user-alice")
	if err != nil {
		t.Fatalf("CreateDefaults: %v", err)
	}
	if params.PreferredLat != -36.15 || params.PreferredLon != 95.98 {
		t.Fatalf("unexpected default location: %v, %v", params.PreferredLat, params.PreferredLon)
	}
	uv, ok := params.Thresholds["uv_index_threshold"]
	if !ok || uv.Importance != 5 || uv.Value == nil || *uv.Value != 6.0 {
		t.Fatalf("unexpected uv threshold default: %+v", uv)
	}
	allergens, ok := params.Thresholds["allergens"]
	if !ok || allergens.Values == nil {
		t.Fatalf("allergens default must carry an empty array: %+v", allergens)
	}
}

func TestApplyPatchesOnlyProvidedFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateDefaults(ctx, "user-alice"); err != nil {
		t.Fatalf("CreateDefaults: %v", err)
	}

	lat := 52.52
	params, err := svc.Apply(ctx, "alice", Patch{PreferredLat: &lat})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if params.PreferredLat != 52.52 {
		t.Fatalf("latitude must be patched, got %v", params.PreferredLat)
	}
	if params.PreferredLon != 95.98 {
		t.Fatalf("longitude must be untouched, got %v", params.PreferredLon)
	}
	if len(params.Thresholds) != 7 {
		t.Fatalf("thresholds must be untouched, got %d entries", len(params.Thresholds))
	}
}

func TestApplyMergesThresholdsByName(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateDefaults(ctx, "user-alice"); err != nil {
		t.Fatalf("CreateDefaults: %v", err)
	}

	value := 3.0
	params, err := svc.Apply(ctx, "alice", Patch{Thresholds: map[string]Parameter{
		"uv_index_threshold": {Importance: 9, Value: &value},
	}})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	uv := params.Thresholds["uv_index_threshold"]
	if uv.Importance != 9 || uv.Value == nil || *uv.Value != 3.0 {
		t.Fatalf("uv threshold must be replaced, got %+v", uv)
	}
	if uv.Name != "uv_index_threshold" {
		t.Fatalf("threshold name must default to its key, got %q", uv.Name)
	}
	if _, ok := params.Thresholds["aqi_threshold"]; !ok {
		t.Fatalf("unrelated thresholds must survive the merge")
	}
}

func TestApplyRejectsOutOfRangeImportance(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateDefaults(ctx, "user-alice"); err != nil {
		t.Fatalf("CreateDefaults: %v", err)
	}
	_, err := svc.Apply(ctx, "alice", Patch{Thresholds: map[string]Parameter{
		"uv_index_threshold": {Importance: 11},
	}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestForUserUnknownPrincipal(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.ForUser(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestApplyWithoutStoredParameters(t *testing.T) {
	svc, _ := newTestService(t)

	lat := 1.0
	if _, err := svc.Apply(context.Background(), "alice", Patch{PreferredLat: &lat}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
