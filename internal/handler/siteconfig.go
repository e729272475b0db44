package handler

import (
	"encoding/json"
	"net/http"

	"github.com/letsgomakkah/voucher/internal/siteconfig"
)

// SiteConfig serves the front-end configuration loaded at startup.
func SiteConfig(site *siteconfig.Site) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "public, max-age=300")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(site)
	}
}
