package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/docnav/internal/httpserver/deps"
	"github.com/MrSnakeDoc/docnav/internal/httpserver/handlers"
)

func init() { Register(Admin, registerAdmin) }

func registerAdmin(r chi.Router, d deps.Deps) {
	r.Get("/status", handlers.Status(d))
	r.Post("/reload", handlers.Reload(d))
}
