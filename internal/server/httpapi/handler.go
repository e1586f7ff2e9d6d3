// Package httpapi exposes the JSON/HTTP surface of cloudshelf: the auth
// lifecycle, the authenticated file operations, and the unauthenticated
// public-serve path.
package httpapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/cloudshelf/internal/logging"
	"github.com/dmitrijs2005/cloudshelf/internal/server/config"
	"github.com/dmitrijs2005/cloudshelf/internal/server/services"
)

const refreshTokenCookie = "refreshToken"

// Handler carries the dependencies of all HTTP handlers.
type Handler struct {
	userService *services.UserService
	fileService *services.FileService
	cfg         *config.Config
	logger      logging.Logger
	validate    *validator.Validate
	jwtSecret   []byte
}

// NewHandler constructs the Handler.
func NewHandler(us *services.UserService, fs *services.FileService, cfg *config.Config, l logging.Logger) *Handler {
	return &Handler{
		userService: us,
		fileService: fs,
		cfg:         cfg,
		logger:      l,
		validate:    validator.New(),
		jwtSecret:   []byte(cfg.JWTSecret),
	}
}

func (h *Handler) cookieSameSite() http.SameSite {
	switch h.cfg.CookieSameSite {
	case "lax":
		return http.SameSiteLaxMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteStrictMode
	}
}
