package repository

import (
	"context"
	"fmt"

	"fetenahub-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ReportRepository handles database operations for reports
type ReportRepository struct {
	db *pgxpool.Pool
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create creates a new report
func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	query := `
		INSERT INTO reports (id, reporter_id, report_type, reported_id, reason, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		report.ID, report.ReporterID, report.ReportType, report.ReportedID,
		report.Reason, report.Status, report.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

// CountPending returns the number of pending reports against a target
func (r *ReportRepository) CountPending(ctx context.Context, reportType, reportedID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM reports
		WHERE report_type = $1 AND reported_id = $2 AND status = $3
	`
	var count int
	err := r.db.QueryRow(ctx, query, reportType, reportedID, models.ReportStatusPending).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending reports: %w", err)
	}
	return count, nil
}
