package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/its-platform/apiserver/internal/services"
	"go.uber.org/zap"
)

// AuthHandler provides registration, login, and profile endpoints.
type AuthHandler struct {
	auth   *services.AuthService
	logger *zap.Logger
}

func NewAuthHandler(auth *services.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, auth *services.AuthService, requireAuth func(http.Handler) http.Handler, logger *zap.Logger) {
	handler := NewAuthHandler(auth, logger)

	r.Post("/register", handler.Register)
	r.Post("/login", handler.Login)
	r.Get("/check-email/{email}", handler.CheckEmail)
	r.With(requireAuth).Get("/me", handler.Me)
	r.With(requireAuth).Put("/profile", handler.UpdateProfile)
}

// Register creates an account and returns a bearer token for it.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	result, err := h.auth.Register(r.Context(), in)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Login verifies credentials and returns a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	result, err := h.auth.Login(r.Context(), in)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// CheckEmail reports whether an email is already registered.
func (h *AuthHandler) CheckEmail(w http.ResponseWriter, r *http.Request) {
	exists, err := h.auth.IsEmailExists(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, exists)
}

// Me returns the authenticated user's public view.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.auth.GetCurrentUser(r.Context(), principal.UserID)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateProfile overwrites the authenticated user's profile.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var in services.ProfileInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.auth.UpdateProfile(r.Context(), principal.UserID, in)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
