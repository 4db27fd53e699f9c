package handlers

import (
	"net/http"

	"fetenahub-backend/internal/auth"
	"fetenahub-backend/internal/middleware"
	"fetenahub-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	userService *services.UserService
	botToken    string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userService *services.UserService, botToken string) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		botToken:    botToken,
	}
}

// VerifyAuth handles POST /api/auth/verify. It validates the init data header
// itself rather than going through the middleware, because it is the endpoint
// that creates the user on first sight.
func (h *AuthHandler) VerifyAuth(w http.ResponseWriter, r *http.Request) {
	initData := r.Header.Get(middleware.AuthHeader)
	if initData == "" {
		respondError(w, "Missing authentication", http.StatusUnauthorized)
		return
	}

	tgUser, err := auth.Validate(initData, h.botToken)
	if err != nil {
		respondError(w, "Invalid authentication", http.StatusUnauthorized)
		return
	}

	user, err := h.userService.VerifyAuth(r.Context(), tgUser)
	if err != nil {
		log.Error().Err(err).Int64("telegram_id", tgUser.ID).Msg("Failed to verify user")
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	log.Info().
		Str("user_id", user.ID).
		Str("username", user.Username).
		Msg("User authenticated")

	respondJSON(w, map[string]interface{}{"user": user, "success": true}, http.StatusOK)
}
