package handlers

import (
	"errors"
	"net/http"

	"fetenahub-backend/internal/repository"
	"fetenahub-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// FollowHandler handles follow-graph HTTP requests
type FollowHandler struct {
	followService *services.FollowService
}

// NewFollowHandler creates a new follow handler
func NewFollowHandler(followService *services.FollowService) *FollowHandler {
	return &FollowHandler{
		followService: followService,
	}
}

// Follow handles POST /api/follow/{id}
func (h *FollowHandler) Follow(w http.ResponseWriter, r *http.Request) {
	targetID := chi.URLParam(r, "id")

	err := h.followService.Follow(r.Context(), telegramID(r), targetID)
	if err != nil {
		if errors.Is(err, services.ErrSelfFollow) {
			respondError(w, "Cannot follow yourself", http.StatusBadRequest)
			return
		}
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, "User not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("target_id", targetID).Msg("Failed to follow user")
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, map[string]interface{}{"success": true}, http.StatusOK)
}

// Unfollow handles DELETE /api/follow/{id}
func (h *FollowHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	targetID := chi.URLParam(r, "id")

	err := h.followService.Unfollow(r.Context(), telegramID(r), targetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, "User not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("target_id", targetID).Msg("Failed to unfollow user")
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, map[string]interface{}{"success": true}, http.StatusOK)
}
