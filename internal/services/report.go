package services

import (
	"context"
	"fmt"
	"time"

	"fetenahub-backend/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// autoHideThreshold is the number of pending reports against one target that
// triggers automatic hiding.
const autoHideThreshold = 3

// ReportService handles abuse reports and the auto-hide rule
type ReportService struct {
	reportRepo ReportRepository
	examRepo   ExamRepository
	userRepo   UserRepository
}

// NewReportService creates a new report service
func NewReportService(reportRepo ReportRepository, examRepo ExamRepository, userRepo UserRepository) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		examRepo:   examRepo,
		userRepo:   userRepo,
	}
}

// CreateReportRequest is the payload for filing a report
type CreateReportRequest struct {
	ReportType string `json:"report_type" validate:"required,oneof=exam user"`
	ReportedID string `json:"reported_id" validate:"required"`
	Reason     string `json:"reason" validate:"required"`
}

// Create files a report and applies the auto-hide rule: once a target has
// accumulated the threshold of pending reports, an exam target is hidden.
// Hiding is one-way and idempotent.
func (s *ReportService) Create(ctx context.Context, reporterTelegramID string, req CreateReportRequest) (*models.Report, error) {
	reporter, err := s.userRepo.GetByTelegramID(ctx, reporterTelegramID)
	if err != nil {
		return nil, err
	}

	report := &models.Report{
		ID:         uuid.New().String(),
		ReporterID: reporter.ID,
		ReportType: req.ReportType,
		ReportedID: req.ReportedID,
		Reason:     req.Reason,
		Status:     models.ReportStatusPending,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	if err := s.checkAutoHide(ctx, req.ReportType, req.ReportedID); err != nil {
		// The report itself is filed; a failed hide check is logged, not
		// surfaced to the reporter.
		log.Error().Err(err).
			Str("report_type", req.ReportType).
			Str("reported_id", req.ReportedID).
			Msg("Auto-hide check failed")
	}
	return report, nil
}

func (s *ReportService) checkAutoHide(ctx context.Context, reportType, reportedID string) error {
	count, err := s.reportRepo.CountPending(ctx, reportType, reportedID)
	if err != nil {
		return err
	}
	if count < autoHideThreshold {
		return nil
	}

	if reportType == models.ReportTypeExam {
		if err := s.examRepo.Hide(ctx, reportedID); err != nil {
			return fmt.Errorf("failed to hide exam: %w", err)
		}
		log.Info().
			Str("exam_id", reportedID).
			Int("pending_reports", count).
			Msg("Exam auto-hidden")
	}
	return nil
}
