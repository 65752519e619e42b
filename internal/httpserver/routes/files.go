package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/abodsh/edufiles/internal/httpserver/deps"
	"github.com/abodsh/edufiles/internal/httpserver/handlers"
)

func init() { Register(registerFiles) }

func registerFiles(r chi.Router, d deps.Deps) {
	r.Get("/files/{fileID}/open", handlers.OpenFile(d))
}
