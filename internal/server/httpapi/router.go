package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Routes builds the chi router. The API lives under /api/v1; /health sits
// outside the prefix for orchestration probes.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(h.RequestLogger)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", h.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(RateLimit(h.cfg.AuthRateLimit, h.cfg.AuthRateWindow, h.logger))

			r.Post("/signup", h.handleSignUp)
			r.Post("/signin", h.handleSignIn)
			r.Post("/refresh-access-token", h.handleRefreshAccessToken)
			r.Post("/logout", h.handleLogout)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.AuthMiddleware)

			r.Get("/users/profile", h.handleProfile)

			r.Post("/files/upload", h.handleUpload)
			r.Get("/files/user-files", h.handleUserFiles)
			r.Delete("/files/{fileID}", h.handleDeleteFile)
		})

		// No auth here: possession of the public id is the capability.
		r.Get("/files/public/{fileID}", h.handleServePublic)
	})

	return r
}
