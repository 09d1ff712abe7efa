package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/docnav/internal/httpserver/deps"
)

// Nav returns the previous/next documents and breadcrumb of a doc id.
// The id is the rest of the path (ids contain slashes); ?sidebar= narrows
// the lookup.
func Nav(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !d.Index.Ready() {
			writeError(w, http.StatusServiceUnavailable, "sidebars not loaded yet")
			return
		}

		docID := strings.Trim(chi.URLParam(r, "*"), "/")
		if docID == "" {
			writeError(w, http.StatusBadRequest, "missing document id")
			return
		}

		nav, ok := d.Index.Navigation(r.URL.Query().Get("sidebar"), docID)
		if !ok {
			writeError(w, http.StatusNotFound, "document not in any sidebar: "+docID)
			return
		}
		writeJSON(w, http.StatusOK, nav)
	}
}
