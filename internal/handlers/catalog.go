package handlers

import (
	"encoding/json"
	"net/http"

	"fetenahub-backend/internal/models"
	"fetenahub-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// CatalogHandler handles university and course HTTP requests
type CatalogHandler struct {
	catalogService *services.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// CreateCatalogEntryRequest is the payload for creating a university or course
type CreateCatalogEntryRequest struct {
	Name string `json:"name" validate:"required"`
}

// ListUniversities handles GET /api/universities
func (h *CatalogHandler) ListUniversities(w http.ResponseWriter, r *http.Request) {
	universities, err := h.catalogService.ListUniversities(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list universities")
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if universities == nil {
		universities = []*models.University{}
	}

	respondJSON(w, map[string]interface{}{"universities": universities}, http.StatusOK)
}

// CreateUniversity handles POST /api/universities
func (h *CatalogHandler) CreateUniversity(w http.ResponseWriter, r *http.Request) {
	var req CreateCatalogEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if msg := validateRequest(req); msg != "" {
		respondError(w, msg, http.StatusBadRequest)
		return
	}

	university, err := h.catalogService.CreateUniversity(r.Context(), req.Name)
	if err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("Failed to create university")
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	log.Info().Str("university_id", university.ID).Str("name", university.Name).Msg("University created")

	respondJSON(w, map[string]interface{}{"university": university, "success": true}, http.StatusOK)
}

// ListCourses handles GET /api/courses
func (h *CatalogHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.catalogService.ListCourses(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list courses")
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if courses == nil {
		courses = []*models.Course{}
	}

	respondJSON(w, map[string]interface{}{"courses": courses}, http.StatusOK)
}

// CreateCourse handles POST /api/courses
func (h *CatalogHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req CreateCatalogEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if msg := validateRequest(req); msg != "" {
		respondError(w, msg, http.StatusBadRequest)
		return
	}

	course, err := h.catalogService.CreateCourse(r.Context(), req.Name)
	if err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("Failed to create course")
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	log.Info().Str("course_id", course.ID).Str("name", course.Name).Msg("Course created")

	respondJSON(w, map[string]interface{}{"course": course, "success": true}, http.StatusOK)
}
