package handler

import (
	"encoding/json"
	"net/http"
)

type configuredChecker interface {
	Configured() bool
}

// Health reports liveness and whether a sending credential is configured.
// A missing credential is reported, not treated as unhealthy.
func Health(mailer configuredChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mailerStatus := "configured"
		if !mailer.Configured() {
			mailerStatus = "unconfigured"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "mailer": mailerStatus})
	}
}
