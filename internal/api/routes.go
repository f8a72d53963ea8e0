package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"codeberg.org/snonux/gospeltts/internal/verse"
)

// NewRouter constructs the HTTP router with middleware and routes.
func NewRouter(svc Service, verses verse.Provider, logger zerolog.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(CORSMiddleware)

	h := NewHandler(svc, verses, logger)

	r.Get("/v1/health", h.HandleHealth)
	r.Get("/v1/options", h.HandleOptions)
	r.Get("/v1/verse", h.HandleVerse)
	r.Post("/v1/convert", h.HandleConvert)
	r.Get("/v1/audio/{name}", h.HandleAudio)

	return r
}
