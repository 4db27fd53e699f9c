package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"fetenahub-backend/internal/services"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// UploadHandler handles file upload HTTP requests
type UploadHandler struct {
	uploadService *services.UploadService
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService *services.UploadService) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
	}
}

// UploadURLRequest is the payload for requesting a presigned upload URL
type UploadURLRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

// GetUploadURL handles POST /api/upload/url
func (h *UploadHandler) GetUploadURL(w http.ResponseWriter, r *http.Request) {
	var req UploadURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Filename == "" {
		req.Filename = uuid.New().String() + ".pdf"
	}
	if req.ContentType == "" {
		req.ContentType = "application/pdf"
	}

	response, err := h.uploadService.GetUploadURL(r.Context(), req.Filename, req.ContentType)
	if err != nil {
		if errors.Is(err, services.ErrInvalidFileType) {
			respondError(w, "Invalid file type", http.StatusBadRequest)
			return
		}
		log.Error().Err(err).Str("filename", req.Filename).Msg("Failed to generate upload URL")
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	log.Info().Str("path", response.Path).Msg("Upload URL generated")

	respondJSON(w, response, http.StatusOK)
}

// ConfirmUploadRequest is the payload for resolving an uploaded object
type ConfirmUploadRequest struct {
	Path string `json:"path" validate:"required"`
}

// ConfirmUpload handles POST /api/upload/confirm
func (h *UploadHandler) ConfirmUpload(w http.ResponseWriter, r *http.Request) {
	var req ConfirmUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if msg := validateRequest(req); msg != "" {
		respondError(w, msg, http.StatusBadRequest)
		return
	}

	respondJSON(w, map[string]interface{}{"url": h.uploadService.PublicURL(req.Path)}, http.StatusOK)
}
