package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/abodsh/edufiles/internal/domain"
	"github.com/abodsh/edufiles/internal/store"
)

func newGuard() (*Guard, *store.Memory) {
	m := store.NewMemory(nil)
	return NewGuard(m, m), m
}

func TestLoginSuccess(t *testing.T) {
	ctx := context.Background()
	g, m := newGuard()

	u, token, err := g.Login(ctx, "abod", "123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if u.Role != domain.RoleAdmin {
		t.Errorf("logged-in role = %q, want admin", u.Role)
	}
	if token == "" {
		t.Fatal("Login() returned empty token")
	}

	stored, err := m.GetSession(ctx, token)
	if err != nil || stored == nil || stored.Username != "abod" {
		t.Errorf("session slot = %+v, %v, want persisted identity", stored, err)
	}
}

func TestLoginFailureIsUndifferentiated(t *testing.T) {
	ctx := context.Background()
	g, _ := newGuard()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "wrong password", username: "abod", password: "wrong"},
		{name: "unknown user", username: "nobody", password: "123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := g.Login(ctx, tt.username, tt.password)
			if !errors.Is(err, ErrBadCredentials) {
				t.Errorf("Login() error = %v, want ErrBadCredentials for every failure mode", err)
			}
		})
	}
}

func TestCurrentAndLogout(t *testing.T) {
	ctx := context.Background()
	g, _ := newGuard()

	_, token, err := g.Login(ctx, "abod", "123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: token})

	u, err := g.Current(ctx, r)
	if err != nil || u == nil || u.Username != "abod" {
		t.Fatalf("Current() = %+v, %v, want the signed-in identity", u, err)
	}

	if err := g.Logout(ctx, r); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	u, err = g.Current(ctx, r)
	if err != nil || u != nil {
		t.Errorf("Current() after logout = %+v, %v, want nil identity", u, err)
	}
}

func TestCurrentWithoutToken(t *testing.T) {
	g, _ := newGuard()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	u, err := g.Current(context.Background(), r)
	if err != nil || u != nil {
		t.Errorf("Current() on anonymous request = %+v, %v, want nil, nil", u, err)
	}
}

func TestTokenFromRequest(t *testing.T) {
	tests := []struct {
		name  string
		setup func(r *http.Request)
		want  string
	}{
		{
			name:  "cookie",
			setup: func(r *http.Request) { r.AddCookie(&http.Cookie{Name: CookieName, Value: "tok-1"}) },
			want:  "tok-1",
		},
		{
			name:  "bearer header",
			setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer tok-2") },
			want:  "tok-2",
		},
		{
			name:  "none",
			setup: func(r *http.Request) {},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(r)
			if got := TokenFromRequest(r); got != tt.want {
				t.Errorf("TokenFromRequest() = %q, want %q", got, tt.want)
			}
		})
	}
}
