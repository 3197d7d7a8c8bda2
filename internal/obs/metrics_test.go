package obs

import "testing"

func TestCanonicalPath(t *testing.T) {
	cases := map[string]string{
		"":                        "/",
		"/metrics":                "/metrics",
		"/v1/auth/token":          "/v1/auth/token",
		"/v1/users":               "/v1/users",
		"/v1/users/01ABC":         "/v1/users/:id",
		"/v1/users/01ABC?x=1":     "/v1/users/:id",
		"/v1/users/password":      "/v1/users/password",
		"/v1/users/params":        "/v1/users/params",
		"/v1/content/paid":        "/v1/content/paid",
		"/v1/content/paid?page=2": "/v1/content/paid",
	}
	for input, expected := range cases {
		if got := CanonicalPath(input); got != expected {
			t.Fatalf("CanonicalPath(%q)=%q, want %q", input, got, expected)
		}
	}
}
