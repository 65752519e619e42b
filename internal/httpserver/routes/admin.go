package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/abodsh/edufiles/internal/httpserver/deps"
	"github.com/abodsh/edufiles/internal/httpserver/handlers"
	"github.com/abodsh/edufiles/internal/httpserver/mw"
)

func init() { Register(registerAdmin) }

func registerAdmin(r chi.Router, d deps.Deps) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(mw.RequireAdmin())

		r.Get("/", handlers.AdminOverview(d))
		r.Post("/faculties", handlers.CreateFaculty(d))
		r.Post("/majors", handlers.CreateMajor(d))
		r.Post("/subjects", handlers.CreateSubject(d))
		r.Post("/files", handlers.CreateFile(d))
		r.Delete("/files/{fileID}", handlers.DeleteFile(d))
		r.Get("/export", handlers.Export(d))
		r.Post("/import", handlers.Import(d))
		r.Post("/refresh", handlers.Refresh(d))
	})
}
