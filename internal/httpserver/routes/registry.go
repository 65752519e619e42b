package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abodsh/edufiles/internal/httpserver/deps"
)

// Registrar wires one feature's endpoints onto the router.
type Registrar func(r chi.Router, d deps.Deps)

type registration struct {
	wire Registrar
	mws  []func(http.Handler) http.Handler
}

var registrations []registration

// Register queues a registrar, with optional middlewares scoped to just
// its routes. Each route file calls this from init.
func Register(wire Registrar, mws ...func(http.Handler) http.Handler) {
	registrations = append(registrations, registration{wire: wire, mws: mws})
}

// RegisterAll mounts every queued registrar. Called once while the server
// is being built.
func RegisterAll(r chi.Router, d deps.Deps) {
	for _, reg := range registrations {
		target := r
		if len(reg.mws) > 0 {
			target = r.With(reg.mws...)
		}
		reg.wire(target, d)
	}
}
