package handlers

import "net/http"

// Health handles GET /api/health
func Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// Index handles GET /
func Index(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{
		"message": "FetenaHub API - Telegram Mini App for Exam Sharing",
	}, http.StatusOK)
}
