package session

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/abodsh/edufiles/internal/domain"
	"github.com/abodsh/edufiles/internal/store"
)

// CookieName carries the session token between requests. A bearer token in
// the Authorization header works as well, for non-browser clients.
const CookieName = "edufiles_session"

// ErrBadCredentials is the single authentication failure: it deliberately
// does not say whether the username or the password was wrong.
var ErrBadCredentials = errors.New("invalid username or password")

type ctxKey struct{}

// Guard tracks the signed-in identity. The identity lives in its own
// persisted slot, separate from the catalog document, so logging out never
// touches catalog or file data.
type Guard struct {
	catalog  store.CatalogStore
	sessions store.SessionStore
}

// NewGuard creates a guard over the given stores.
func NewGuard(catalog store.CatalogStore, sessions store.SessionStore) *Guard {
	return &Guard{catalog: catalog, sessions: sessions}
}

// Login checks the credentials against the current document and, on
// success, mints a token and persists the identity under it.
func (g *Guard) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	c, err := g.catalog.Load(ctx)
	if err != nil {
		return nil, "", err
	}
	u, ok := domain.Authenticate(c.Users, username, password)
	if !ok {
		return nil, "", ErrBadCredentials
	}

	token := uuid.NewString()
	if err := g.sessions.SaveSession(ctx, token, u); err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// StartSession persists an identity under a fresh token without a
// credential check. Used right after registration, which signs the new
// student in automatically.
func (g *Guard) StartSession(ctx context.Context, u *domain.User) (string, error) {
	token := uuid.NewString()
	if err := g.sessions.SaveSession(ctx, token, u); err != nil {
		return "", err
	}
	return token, nil
}

// Logout clears the identity slot for the request's token. A request
// without a token is a no-op.
func (g *Guard) Logout(ctx context.Context, r *http.Request) error {
	token := TokenFromRequest(r)
	if token == "" {
		return nil
	}
	return g.sessions.DeleteSession(ctx, token)
}

// Current resolves the request's token to the stored identity. Missing or
// unknown tokens yield (nil, nil): being signed out is not an error.
func (g *Guard) Current(ctx context.Context, r *http.Request) (*domain.User, error) {
	token := TokenFromRequest(r)
	if token == "" {
		return nil, nil
	}
	return g.sessions.GetSession(ctx, token)
}

// TokenFromRequest extracts the session token from the cookie or, failing
// that, from a bearer Authorization header.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}

// WithUser returns a context carrying the signed-in identity.
func WithUser(ctx context.Context, u *domain.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// UserFrom returns the identity stored by WithUser, or nil.
func UserFrom(ctx context.Context) *domain.User {
	u, _ := ctx.Value(ctxKey{}).(*domain.User)
	return u
}
