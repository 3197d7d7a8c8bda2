package auth

import (
	"errors"
	"testing"
)

func TestAuthorize(t *testing.T) {
	payload := TokenPayload{Subject: "alice", Scopes: NewScopeSet(ScopeReadUnpaid)}

	if err := Authorize(payload, ScopeReadUnpaid); err != nil {
		t.Fatalf("expected allowed, got %v", err)
	}
	if err := Authorize(payload, ScopeReadPaid); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	paid := TokenPayload{Subject: "bob", Scopes: NewScopeSet(ScopeReadPaid)}
	if err := Authorize(paid, ScopeReadPaid); err != nil {
		t.Fatalf("expected allowed, got %v", err)
	}
}

func TestRequireAnyOf(t *testing.T) {
	premium := TokenPayload{Subject: "carol", Scopes: ScopesFor(RolePremium)}
	if err := RequireAnyOf(premium, ScopeWritePaid); err != nil {
		t.Fatalf("premium must satisfy write-paid, got %v", err)
	}

	unconfirmed := TokenPayload{Subject: "dave", Scopes: ScopesFor(RoleUnconfirmed)}
	if err := RequireAnyOf(unconfirmed, ScopeWritePaid); !errors.Is(err, ErrForbidden) {
		t.Fatalf("unconfirmed must not satisfy write-paid, got %v", err)
	}

	if err := RequireAnyOf(unconfirmed, ScopeAdminAll, ScopeReadUnpaid); err != nil {
		t.Fatalf("any-of must accept partial overlap, got %v", err)
	}
	if err := RequireAnyOf(unconfirmed); !errors.Is(err, ErrForbidden) {
		t.Fatalf("empty requirement set must deny, got %v", err)
	}
}

func TestAuthorizeEmptyScopes(t *testing.T) {
	payload := TokenPayload{Subject: "eve", Scopes: ScopeSet{}}
	for _, scope := range []Scope{ScopeReadUnpaid, ScopeWriteUnpaid, ScopeReadPaid, ScopeWritePaid, ScopeAdminAll} {
		if err := Authorize(payload, scope); !errors.Is(err, ErrForbidden) {
			t.Fatalf("empty scope set must deny %s, got %v", scope, err)
		}
	}
}
