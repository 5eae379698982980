package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendant/simple-site/pkg/simplesite"
)

// Config holds router-level settings
type Config struct {
	// AdminAPIKey guards the /api/admin subtree. An empty key disables all
	// admin routes rather than leaving them open.
	AdminAPIKey string
}

// NewRouter builds the HTTP router with the public API, the admin API and the
// operational endpoints
func NewRouter(service simplesite.Service, cfg Config) http.Handler {
	posts := NewPostHandler(service)
	subscribers := NewSubscriberHandler(service)
	contact := NewContactHandler(service)
	images := NewImageHandler(service)
	stats := NewStatsHandler(service)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(Metrics)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Mount("/posts", posts.Routes())
		r.Mount("/subscribers", subscribers.Routes())
		r.Mount("/contact", contact.Routes())
		r.Get("/stats", stats.GetSiteStats)

		r.Route("/admin", func(r chi.Router) {
			r.Use(APIKeyAuth(cfg.AdminAPIKey))
			r.Mount("/posts", posts.AdminRoutes())
			r.Mount("/images", images.Routes())
			r.Get("/messages", contact.ListMessages)
			r.Get("/subscribers", subscribers.ListSubscribers)
		})
	})

	return r
}
