package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"fetenahub-backend/internal/repository"
	"fetenahub-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// ExamHandler handles exam HTTP requests
type ExamHandler struct {
	examService *services.ExamService
}

// NewExamHandler creates a new exam handler
func NewExamHandler(examService *services.ExamService) *ExamHandler {
	return &ExamHandler{
		examService: examService,
	}
}

// List handles GET /api/exams
func (h *ExamHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := services.ListExamsOptions{
		UniversityID: q.Get("university_id"),
		CourseID:     q.Get("course_id"),
		Search:       q.Get("search"),
		UserID:       q.Get("user_id"),
		FeedType:     q.Get("feed_type"),
	}
	if opts.FeedType == "" {
		opts.FeedType = services.FeedTypeAll
	}
	if yearStr := q.Get("year"); yearStr != "" {
		if year, err := strconv.Atoi(yearStr); err == nil {
			opts.Year = year
		}
	}

	exams, err := h.examService.List(r.Context(), telegramID(r), opts)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, "User not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Msg("Failed to list exams")
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, map[string]interface{}{"exams": exams}, http.StatusOK)
}

// Get handles GET /api/exams/{id}
func (h *ExamHandler) Get(w http.ResponseWriter, r *http.Request) {
	examID := chi.URLParam(r, "id")

	exam, err := h.examService.Get(r.Context(), telegramID(r), examID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, "Exam not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("exam_id", examID).Msg("Failed to get exam")
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, map[string]interface{}{"exam": exam}, http.StatusOK)
}

// Create handles POST /api/exams
func (h *ExamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.CreateExamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if msg := validateRequest(req); msg != "" {
		respondError(w, msg, http.StatusBadRequest)
		return
	}

	exam, err := h.examService.Create(r.Context(), telegramID(r), req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, "User not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Msg("Failed to create exam")
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	log.Info().
		Str("exam_id", exam.ID).
		Str("user_id", exam.UserID).
		Int("files", len(exam.Files)).
		Msg("Exam created")

	respondJSON(w, map[string]interface{}{"exam": exam, "success": true}, http.StatusOK)
}

// Like handles POST /api/exams/{id}/like
func (h *ExamHandler) Like(w http.ResponseWriter, r *http.Request) {
	examID := chi.URLParam(r, "id")

	if err := h.examService.Like(r.Context(), telegramID(r), examID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, "User not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("exam_id", examID).Msg("Failed to like exam")
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, map[string]interface{}{"success": true}, http.StatusOK)
}

// Unlike handles DELETE /api/exams/{id}/like
func (h *ExamHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	examID := chi.URLParam(r, "id")

	if err := h.examService.Unlike(r.Context(), telegramID(r), examID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, "User not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("exam_id", examID).Msg("Failed to unlike exam")
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, map[string]interface{}{"success": true}, http.StatusOK)
}
