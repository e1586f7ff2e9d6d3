package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dmitrijs2005/cloudshelf/internal/server/models"
)

type signUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type signInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type accessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Name: u.Name}
}

// handleSignUp (POST /api/v1/auth/signup)
func (h *Handler) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "validation error")
		return
	}

	user, err := h.userService.SignUp(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusCreated, toUserResponse(user))
}

// handleSignIn (POST /api/v1/auth/signin) returns the access token in the
// body and delivers the refresh token only via the HttpOnly cookie.
func (h *Handler) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "validation error")
		return
	}

	pair, err := h.userService.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}

	h.setRefreshCookie(w, pair.RefreshToken, pair.RefreshExpiresAt)
	h.respondWithJSON(w, http.StatusOK, accessTokenResponse{AccessToken: pair.AccessToken})
}

// handleRefreshAccessToken (POST /api/v1/auth/refresh-access-token) reads the
// refresh token from its cookie and mints a new access token. The refresh
// token itself is not rotated.
func (h *Handler) handleRefreshAccessToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshTokenCookie)
	if err != nil || cookie.Value == "" {
		h.respondWithError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	access, err := h.userService.Refresh(r.Context(), cookie.Value)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, accessTokenResponse{AccessToken: access})
}

// handleLogout (POST /api/v1/auth/logout) clears the refresh cookie. Nothing
// is revoked server side; outstanding access tokens expire on their own.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.clearRefreshCookie(w)
	h.respondWithJSON(w, http.StatusOK, struct{}{})
}

// setRefreshCookie derives Max-Age from the token's own expiry claim, so the
// cookie and the credential it carries die together.
func (h *Handler) setRefreshCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: h.cookieSameSite(),
	})
}

func (h *Handler) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: h.cookieSameSite(),
	})
}
