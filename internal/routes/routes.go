package routes

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/grvbrk/vidshelf/internal/app"
)

func SetupRoutes(app *app.Application) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(httprate.LimitAll(app.Config.RateLimit, time.Minute))
	r.Use(app.MiddlewareHandler.RequestLogger)
	r.Use(app.MiddlewareHandler.Security)

	r.Get("/healthz", app.HealthHandler.HandlerHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(httprate.LimitByIP(100, time.Minute))
		r.Use(app.MiddlewareHandler.Cors)

		r.Post("/preview", app.PreviewHandler.HandlerPreview)

		r.Route("/videos", func(r chi.Router) {
			r.Get("/", app.VideoHandler.HandlerGetVideos)
			r.Post("/", app.VideoHandler.HandlerCreateVideo)
			r.Get("/{id}", app.VideoHandler.HandlerGetVideoByID)
			r.Delete("/{id}", app.VideoHandler.HandlerDeleteVideoByID)
		})
	})

	return r
}
