package guard_test

import (
	"testing"

	authdomain "todohub/internal/modules/auth/domain"
	"todohub/internal/ui/guard"
)

var identity = &authdomain.User{ID: "u1", Name: "Ada"}

func TestProtected(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		session authdomain.Session
		want    guard.Result
	}{
		{
			name:    "pending shows loading",
			session: authdomain.Session{Status: authdomain.StatusPending},
			want:    guard.Result{Decision: guard.ShowLoading},
		},
		{
			name:    "authenticated renders",
			session: authdomain.Session{Status: authdomain.StatusAuthenticated, Identity: identity},
			want:    guard.Result{Decision: guard.Render},
		},
		{
			name:    "unauthenticated redirects to login",
			session: authdomain.Session{Status: authdomain.StatusUnauthenticated},
			want:    guard.Result{Decision: guard.Redirect, Target: guard.RouteLogin},
		},
		{
			name:    "failed redirects to login",
			session: authdomain.Session{Status: authdomain.StatusFailed, LastError: "invalid credentials"},
			want:    guard.Result{Decision: guard.Redirect, Target: guard.RouteLogin},
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := guard.Protected(tc.session); got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestPublic(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		session authdomain.Session
		want    guard.Result
	}{
		{
			name:    "pending shows loading",
			session: authdomain.Session{Status: authdomain.StatusPending},
			want:    guard.Result{Decision: guard.ShowLoading},
		},
		{
			name:    "authenticated bounces to todos",
			session: authdomain.Session{Status: authdomain.StatusAuthenticated, Identity: identity},
			want:    guard.Result{Decision: guard.Redirect, Target: guard.RouteTodos},
		},
		{
			name:    "unauthenticated renders the form",
			session: authdomain.Session{Status: authdomain.StatusUnauthenticated},
			want:    guard.Result{Decision: guard.Render},
		},
		{
			name:    "failed still renders the form",
			session: authdomain.Session{Status: authdomain.StatusFailed},
			want:    guard.Result{Decision: guard.Render},
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := guard.Public(tc.session); got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestNeedsVerify(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name         string
		session      authdomain.Session
		alreadyTried bool
		want         bool
	}{
		{
			name:    "fresh mount with unknown session",
			session: authdomain.Session{Status: authdomain.StatusUnauthenticated},
			want:    true,
		},
		{
			name:         "already tried never re-triggers",
			session:      authdomain.Session{Status: authdomain.StatusUnauthenticated},
			alreadyTried: true,
			want:         false,
		},
		{
			name:    "known identity skips verification",
			session: authdomain.Session{Status: authdomain.StatusAuthenticated, Identity: identity},
			want:    false,
		},
		{
			name:    "in-flight action blocks verification",
			session: authdomain.Session{Status: authdomain.StatusPending},
			want:    false,
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := guard.NeedsVerify(tc.session, tc.alreadyTried); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}
