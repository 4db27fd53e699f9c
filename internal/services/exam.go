package services

import (
	"context"
	"fmt"
	"time"

	"fetenahub-backend/internal/models"
	"fetenahub-backend/internal/repository"

	"github.com/google/uuid"
)

// ExamService handles exam-related business logic
type ExamService struct {
	examRepo   ExamRepository
	followRepo FollowRepository
	userRepo   UserRepository
}

// NewExamService creates a new exam service
func NewExamService(examRepo ExamRepository, followRepo FollowRepository, userRepo UserRepository) *ExamService {
	return &ExamService{
		examRepo:   examRepo,
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Feed types for exam listings.
const (
	FeedTypeAll       = "all"
	FeedTypeFollowing = "following"
)

// ListExamsOptions narrows an exam listing. Zero values mean "no filter".
type ListExamsOptions struct {
	UniversityID string
	CourseID     string
	Year         int
	Search       string
	UserID       string
	FeedType     string
}

// List returns exams matching the options, newest first, with files and like
// info attached.
func (s *ExamService) List(ctx context.Context, viewerTelegramID string, opts ListExamsOptions) ([]*models.Exam, error) {
	viewer, err := s.userRepo.GetByTelegramID(ctx, viewerTelegramID)
	if err != nil {
		return nil, err
	}

	filter := repository.ExamFilter{
		UniversityID: opts.UniversityID,
		CourseID:     opts.CourseID,
		Year:         opts.Year,
		UserID:       opts.UserID,
		Search:       opts.Search,
		ViewerID:     viewer.ID,
	}

	if opts.FeedType == FeedTypeFollowing {
		followingIDs, err := s.followRepo.ListFollowingIDs(ctx, viewer.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve following feed: %w", err)
		}
		// Following nobody means an empty feed, not an error.
		if len(followingIDs) == 0 {
			return []*models.Exam{}, nil
		}
		filter.UserIDs = followingIDs
	}

	exams, err := s.examRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if exams == nil {
		exams = []*models.Exam{}
	}

	for _, exam := range exams {
		if err := s.attachFiles(ctx, exam); err != nil {
			return nil, err
		}
	}
	return exams, nil
}

// Get returns a single exam with its files and like info
func (s *ExamService) Get(ctx context.Context, viewerTelegramID, examID string) (*models.Exam, error) {
	viewer, err := s.userRepo.GetByTelegramID(ctx, viewerTelegramID)
	if err != nil {
		return nil, err
	}

	exam, err := s.examRepo.GetByID(ctx, examID, viewer.ID)
	if err != nil {
		return nil, err
	}
	if err := s.attachFiles(ctx, exam); err != nil {
		return nil, err
	}
	return exam, nil
}

// CreateExamRequest is the payload for creating an exam. Files holds the page
// URLs in display order.
type CreateExamRequest struct {
	UniversityID string   `json:"university_id" validate:"required"`
	CourseID     string   `json:"course_id" validate:"required"`
	Year         int      `json:"year" validate:"required"`
	ExamType     string   `json:"exam_type" validate:"required"`
	TeacherName  string   `json:"teacher_name"`
	Files        []string `json:"files" validate:"required,min=1"`
}

// Create stores a new exam with its files. The insert is transactional: a
// failure on any file leaves no partial exam behind.
func (s *ExamService) Create(ctx context.Context, ownerTelegramID string, req CreateExamRequest) (*models.Exam, error) {
	owner, err := s.userRepo.GetByTelegramID(ctx, ownerTelegramID)
	if err != nil {
		return nil, err
	}

	exam := &models.Exam{
		ID:           uuid.New().String(),
		UserID:       owner.ID,
		UniversityID: req.UniversityID,
		CourseID:     req.CourseID,
		Year:         req.Year,
		ExamType:     req.ExamType,
		TeacherName:  req.TeacherName,
		CreatedAt:    time.Now().UTC(),
	}

	files := make([]*models.ExamFile, 0, len(req.Files))
	for i, fileURL := range req.Files {
		files = append(files, &models.ExamFile{
			ID:        uuid.New().String(),
			ExamID:    exam.ID,
			FileURL:   fileURL,
			PageOrder: i,
		})
	}

	if err := s.examRepo.Create(ctx, exam, files); err != nil {
		return nil, err
	}
	exam.Files = files
	return exam, nil
}

// Like marks an exam as liked by the caller; repeating is a no-op
func (s *ExamService) Like(ctx context.Context, telegramID, examID string) error {
	user, err := s.userRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return err
	}

	like := &models.ExamLike{
		ID:        uuid.New().String(),
		ExamID:    examID,
		UserID:    user.ID,
		CreatedAt: time.Now().UTC(),
	}
	return s.examRepo.Like(ctx, like)
}

// Unlike removes the caller's like from an exam
func (s *ExamService) Unlike(ctx context.Context, telegramID, examID string) error {
	user, err := s.userRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return err
	}
	return s.examRepo.Unlike(ctx, examID, user.ID)
}

func (s *ExamService) attachFiles(ctx context.Context, exam *models.Exam) error {
	files, err := s.examRepo.ListFiles(ctx, exam.ID)
	if err != nil {
		return err
	}
	if files == nil {
		files = []*models.ExamFile{}
	}
	exam.Files = files
	return nil
}
