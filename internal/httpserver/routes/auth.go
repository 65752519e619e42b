package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/abodsh/edufiles/internal/httpserver/deps"
	"github.com/abodsh/edufiles/internal/httpserver/handlers"
	"github.com/abodsh/edufiles/internal/httpserver/mw"
)

func init() { Register(registerAuth) }

func registerAuth(r chi.Router, d deps.Deps) {
	r.Post("/login", handlers.Login(d))
	r.Post("/register", handlers.Register(d))
	r.Post("/logout", handlers.Logout(d))
	r.With(mw.RequireUser()).Get("/me", handlers.Me(d))
}
