package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/cloudshelf/internal/common"
)

func (h *Handler) respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"code":500,"message":"internal server error"}}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

func (h *Handler) respondWithError(w http.ResponseWriter, code int, message string) {
	h.respondWithJSON(w, code, map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
	})
}

// respondWithServiceError maps the error taxonomy onto HTTP statuses. The 401
// bodies stay uninformative about which check failed.
func (h *Handler) respondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		h.respondWithError(w, http.StatusBadRequest, "validation error")
	case errors.Is(err, common.ErrAlreadyExists):
		h.respondWithError(w, http.StatusConflict, "already exists")
	case errors.Is(err, common.ErrInvalidCredentials):
		h.respondWithError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, common.ErrInvalidToken):
		h.respondWithError(w, http.StatusUnauthorized, "invalid access token")
	case errors.Is(err, common.ErrInvalidRefreshToken):
		h.respondWithError(w, http.StatusUnauthorized, "invalid refresh token")
	case errors.Is(err, common.ErrNotFound):
		h.respondWithError(w, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrStorageUnavailable):
		h.respondWithError(w, http.StatusBadGateway, "object storage unavailable")
	case errors.Is(err, common.ErrPersistenceUnavailable):
		h.respondWithError(w, http.StatusServiceUnavailable, "persistence unavailable")
	default:
		h.respondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
