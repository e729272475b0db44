package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/letsgomakkah/voucher/internal/handler"
	"github.com/letsgomakkah/voucher/internal/middleware"
)

func (app *App) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.SecurityHeaders)

	r.Get("/api/health", handler.Health(app.vouchers))
	r.Get("/api/site-config", handler.SiteConfig(app.site))

	voucherHandler := handler.NewVoucherHandler(app.logger, app.vouchers, int64(app.config.MaxBodyMB)<<20)
	r.With(middleware.RateLimit(middleware.PerMinute(app.config.RateLimitPerMinute), app.config.RateLimitBurst)).
		Post("/api/send-voucher", voucherHandler.Send)

	return r
}
