package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/docnav/internal/httpserver/deps"
	"github.com/MrSnakeDoc/docnav/internal/httpserver/handlers"
)

func init() {
	Register(Public, registerProbes)
	Register(Public, registerSidebars)
}

func registerProbes(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))
	r.Get("/readyz", handlers.Readyz(d))
}

func registerSidebars(r chi.Router, d deps.Deps) {
	r.Get("/sidebars", handlers.Sidebars(d))
	r.Get("/sidebars/{name}", handlers.Sidebar(d))
	r.Get("/nav/*", handlers.Nav(d))
}
