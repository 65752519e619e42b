package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abodsh/edufiles/internal/httpserver/deps"
	"github.com/abodsh/edufiles/internal/logger"
	"github.com/abodsh/edufiles/internal/session"
)

// OpenFile redirects a signed-in visitor to the externally hosted file.
// Anonymous visitors get a 401; the file itself never passes through here.
func OpenFile(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if session.UserFrom(r.Context()) == nil {
			writeError(w, http.StatusUnauthorized, "sign in required")
			return
		}

		c, err := currentCatalog(d, r)
		if err != nil {
			d.Logger.Error("catalog load failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "catalog unavailable")
			return
		}

		f := c.FileByID(chi.URLParam(r, "fileID"))
		if f == nil {
			writeError(w, http.StatusNotFound, "file not found")
			return
		}

		http.Redirect(w, r, f.URL, http.StatusFound)
	}
}
