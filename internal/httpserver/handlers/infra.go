package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/abodsh/edufiles/internal/httpserver/deps"
)

type componentStatus struct {
	OK          bool   `json:"ok"`
	Files       *int   `json:"files,omitempty"`
	Subjects    *int   `json:"subjects,omitempty"`
	LastRefresh string `json:"last_refresh,omitempty"`
	Mode        string `json:"mode,omitempty"`
	Error       string `json:"error,omitempty"`
}

type infraResponse struct {
	Status     string                     `json:"status"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the health of the moving parts: the refreshed snapshot
// and the backing store connection.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		_, loaded := d.Snapshot.Catalog()
		_, _, _, subjects, files := d.Snapshot.Counts()
		lastRefresh := d.Snapshot.LastRefresh()
		lastRefreshStr := "never"
		if !lastRefresh.IsZero() {
			lastRefreshStr = lastRefresh.Format("2006-01-02 15:04:05")
		}

		components := map[string]componentStatus{
			"catalog": {
				OK:          loaded,
				Files:       &files,
				Subjects:    &subjects,
				LastRefresh: lastRefreshStr,
			},
			"redis": checkRedis(d),
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(infraResponse{
			Status:     overallStatus(components),
			Components: components,
		})
	}
}

func overallStatus(components map[string]componentStatus) string {
	if c, ok := components["catalog"]; ok && !c.OK {
		return "critical"
	}
	if c, ok := components["redis"]; ok && !c.OK {
		return "degraded"
	}
	return "ok"
}

func checkRedis(d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:    true,
			Mode:  "memory",
			Error: "none",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:    false,
			Mode:  "degraded",
			Error: err.Error(),
		}
	}

	return componentStatus{
		OK:    true,
		Mode:  "optimal",
		Error: "none",
	}
}
