package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/authgate/pkg/logger"
)

// Check is one named readiness dependency, e.g. redis or postgres.
type Check struct {
	Name string
	Fn   func(context.Context) error
}

// HealthCheckHandler reports {"status":"ok"} when every check passes and
// 503 with the failing check names otherwise. With no checks it is a liveness probe.
func HealthCheckHandler(log *slog.Logger, checks ...Check) http.HandlerFunc {
	if log == nil {
		log = logger.Discard()
	}

	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		body := map[string]any{"status": "ok"}

		var failed []string
		for _, c := range checks {
			if err := c.Fn(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed",
					slog.String("check", c.Name),
					logger.Error(err),
				)
				failed = append(failed, c.Name)
			}
		}
		if len(failed) > 0 {
			status = http.StatusServiceUnavailable
			body = map[string]any{"status": "unavailable", "failed": failed}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}
