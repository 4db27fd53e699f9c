package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"fetenahub-backend/internal/repository"
	"fetenahub-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// ReportHandler handles report HTTP requests
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// Create handles POST /api/reports
func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if msg := validateRequest(req); msg != "" {
		respondError(w, msg, http.StatusBadRequest)
		return
	}

	report, err := h.reportService.Create(r.Context(), telegramID(r), req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, "User not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("reported_id", req.ReportedID).Msg("Failed to create report")
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	log.Info().
		Str("report_id", report.ID).
		Str("report_type", report.ReportType).
		Str("reported_id", report.ReportedID).
		Msg("Report filed")

	respondJSON(w, map[string]interface{}{"report": report, "success": true}, http.StatusOK)
}
