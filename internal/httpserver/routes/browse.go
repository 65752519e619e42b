package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/abodsh/edufiles/internal/httpserver/deps"
	"github.com/abodsh/edufiles/internal/httpserver/handlers"
)

func init() { Register(registerBrowse) }

func registerBrowse(r chi.Router, d deps.Deps) {
	r.Get("/", handlers.Home(d))
	r.Get("/faculty/{facultyID}", handlers.BrowseFaculty(d))
	r.Get("/faculty/{facultyID}/major/{majorID}", handlers.BrowseMajor(d))
	r.Get("/faculty/{facultyID}/major/{majorID}/subject/{subjectID}", handlers.BrowseSubject(d))
}
