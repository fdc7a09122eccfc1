// cmd/worker-manager/health.go
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"
)

type healthCheck func(ctx context.Context) error

type healthResponse struct {
	Status string            `json:"status"`
	Time   string            `json:"time"`
	Checks map[string]string `json:"checks"`
}

// newHealthHandler pings every dependency and answers 503 if any fails.
func newHealthHandler(checks map[string]healthCheck) http.Handler {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		resp := healthResponse{
			Status: "healthy",
			Time:   time.Now().UTC().Format(time.RFC3339),
			Checks: make(map[string]string, len(names)),
		}
		code := http.StatusOK

		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				resp.Checks[name] = err.Error()
				resp.Status = "unhealthy"
				code = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(resp)
	})
}
