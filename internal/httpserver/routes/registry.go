// Package routes mounts the API endpoints. Each file registers its routes
// from init() into a group; groups decide the middlewares.
package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/docnav/internal/httpserver/deps"
	"github.com/MrSnakeDoc/docnav/internal/httpserver/mw"
)

// Group selects the middlewares a route is mounted behind.
type Group int

const (
	// Public routes are open to any client.
	Public Group = iota
	// Admin routes sit behind the host and CIDR guard.
	Admin
)

type Registrar func(r chi.Router, d deps.Deps)

var registry = map[Group][]Registrar{}

// Register adds reg to group g; call it from init().
func Register(g Group, reg Registrar) {
	registry[g] = append(registry[g], reg)
}

// RegisterAll mounts every group on r.
func RegisterAll(r chi.Router, d deps.Deps) {
	for _, reg := range registry[Public] {
		reg(r, d)
	}

	admin := r.With(mw.Guard(d.AllowedHosts, d.AllowedCIDRS, d.TrustProxy, d.Logger))
	for _, reg := range registry[Admin] {
		reg(admin, d)
	}
}
