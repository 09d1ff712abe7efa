package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/docnav/internal/httpserver/deps"
	redisstore "github.com/MrSnakeDoc/docnav/internal/store/redis"
)

var timeNow = time.Now

type componentStatus struct {
	OK         bool     `json:"ok"`
	Source     string   `json:"source,omitempty"`
	Sidebars   []string `json:"sidebars,omitempty"`
	Docs       *int     `json:"docs,omitempty"`
	LastReload string   `json:"last_reload,omitempty"`
	Mode       string   `json:"mode,omitempty"`
	Error      string   `json:"error,omitempty"`
}

type statusResponse struct {
	State      string                     `json:"state"`
	Components map[string]componentStatus `json:"components"`
}

// Status reports the loaded snapshot and the Redis store.
func Status(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		docs := d.Index.DocCount()
		lastReload := "never"
		if t := d.Index.GetLastReload(); !t.IsZero() {
			lastReload = t.Format(time.RFC3339)
		}

		components := map[string]componentStatus{
			"sidebars": {
				OK:         d.Index.Ready(),
				Source:     d.Index.Source(),
				Sidebars:   d.Index.Config().Names(),
				Docs:       &docs,
				LastReload: lastReload,
				Mode:       d.Source,
			},
			"redis": checkRedis(r.Context(), d),
		}

		writeJSON(w, http.StatusOK, statusResponse{
			State:      overallState(components),
			Components: components,
		})
	}
}

func overallState(components map[string]componentStatus) string {
	if !components["sidebars"].OK {
		return "critical"
	}
	if redis := components["redis"]; !redis.OK && redis.Mode != "disabled" {
		return "degraded"
	}
	return "ok"
}

func checkRedis(ctx context.Context, d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{OK: true, Mode: "disabled"}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{OK: false, Mode: "snapshot-persistence-down", Error: err.Error()}
	}

	// Stored names can lag the index until the next successful save
	names, err := redisstore.NewStore(d.RedisClient).Names(ctx)
	if err != nil {
		return componentStatus{OK: false, Mode: "snapshot-persistence-down", Error: err.Error()}
	}
	return componentStatus{OK: true, Mode: "snapshot-persistence", Sidebars: names}
}
