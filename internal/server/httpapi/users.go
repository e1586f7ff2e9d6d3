package httpapi

import "net/http"

// handleProfile (GET /api/v1/users/profile) returns the caller's own record.
// 404 covers the edge where the user vanished after the token was minted.
func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		h.respondWithError(w, http.StatusUnauthorized, "invalid access token")
		return
	}

	user, err := h.userService.Profile(r.Context(), userID)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, toUserResponse(user))
}
