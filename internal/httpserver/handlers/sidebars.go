package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/docnav/internal/httpserver/deps"
	"github.com/MrSnakeDoc/docnav/internal/logger"
)

// Sidebars serves the whole configuration in the generator's format.
func Sidebars(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := d.Index.Config()
		if cfg == nil {
			writeError(w, http.StatusServiceUnavailable, "sidebars not loaded yet")
			return
		}

		body, err := cfg.MarshalJSON()
		if err != nil {
			d.Logger.Error("failed to encode sidebars", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to encode sidebars")
			return
		}
		writeRaw(w, r, body)
	}
}

// Sidebar serves one sidebar's entry list.
func Sidebar(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !d.Index.Ready() {
			writeError(w, http.StatusServiceUnavailable, "sidebars not loaded yet")
			return
		}

		name := chi.URLParam(r, "name")
		sb, ok := d.Index.Sidebar(name)
		if !ok {
			writeError(w, http.StatusNotFound, "unknown sidebar: "+name)
			return
		}

		body, err := sb.MarshalItemsJSON()
		if err != nil {
			d.Logger.Error("failed to encode sidebar",
				logger.String("sidebar", name), logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to encode sidebar")
			return
		}
		writeRaw(w, r, body)
	}
}
