package handlers

import (
	"errors"
	"net/http"

	"github.com/abodsh/edufiles/internal/domain"
	"github.com/abodsh/edufiles/internal/httpserver/deps"
	"github.com/abodsh/edufiles/internal/logger"
	"github.com/abodsh/edufiles/internal/session"
	"github.com/abodsh/edufiles/internal/store"
)

type userView struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

func viewOf(u *domain.User) userView {
	return userView{ID: u.ID, Name: u.Name, Username: u.Username, Role: u.Role}
}

type sessionResponse struct {
	User  userView `json:"user"`
	Token string   `json:"token"`
}

func setSessionCookie(d deps.Deps, w http.ResponseWriter, token string) {
	c := &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if d.SessionTTL > 0 {
		c.MaxAge = int(d.SessionTTL.Seconds())
	}
	http.SetCookie(w, c)
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login checks credentials and opens a session. The failure message never
// says which of the two fields was wrong.
func Login(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		u, token, err := d.Guard.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, session.ErrBadCredentials) {
				writeError(w, http.StatusUnauthorized, session.ErrBadCredentials.Error())
				return
			}
			d.Logger.Error("login failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "login unavailable")
			return
		}

		setSessionCookie(d, w, token)
		writeJSON(w, http.StatusOK, sessionResponse{User: viewOf(u), Token: token})
	}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register creates a student account and signs it in right away.
func Register(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		u, err := d.Catalog.AddUser(r.Context(), req.Name, req.Username, req.Password)
		if err != nil {
			if errors.Is(err, store.ErrUsernameTaken) {
				writeError(w, http.StatusConflict, store.ErrUsernameTaken.Error())
				return
			}
			d.Logger.Error("register failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "registration unavailable")
			return
		}
		syncSnapshot(d, r)

		token, err := d.Guard.StartSession(r.Context(), u)
		if err != nil {
			d.Logger.Error("session start failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "registration unavailable")
			return
		}

		setSessionCookie(d, w, token)
		writeJSON(w, http.StatusCreated, sessionResponse{User: viewOf(u), Token: token})
	}
}

// Logout closes the session. Logging out while logged out is fine.
func Logout(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Guard.Logout(r.Context(), r); err != nil {
			d.Logger.Warn("logout failed", logger.Error(err))
		}
		clearSessionCookie(w)
		w.WriteHeader(http.StatusNoContent)
	}
}

// Me returns the signed-in identity, or 401 when anonymous.
func Me(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := session.UserFrom(r.Context())
		if u == nil {
			writeError(w, http.StatusUnauthorized, "sign in required")
			return
		}
		writeJSON(w, http.StatusOK, viewOf(u))
	}
}
