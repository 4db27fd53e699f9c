package services

import (
	"context"

	"fetenahub-backend/internal/models"
	"fetenahub-backend/internal/repository"
)

// Repository interfaces consumed by the services. The pgx implementations in
// internal/repository satisfy them; tests substitute in-memory fakes.

// UserRepository is the user persistence contract
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByTelegramID(ctx context.Context, telegramID string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateAvatar(ctx context.Context, userID, avatarURL string) error
	CountFollowers(ctx context.Context, userID string) (int, error)
	CountFollowing(ctx context.Context, userID string) (int, error)
}

// FollowRepository is the follow-graph persistence contract
type FollowRepository interface {
	Create(ctx context.Context, follow *models.Follow) error
	Delete(ctx context.Context, followerID, followingID string) error
	Exists(ctx context.Context, followerID, followingID string) (bool, error)
	ListFollowingIDs(ctx context.Context, followerID string) ([]string, error)
}

// UniversityRepository is the university persistence contract
type UniversityRepository interface {
	List(ctx context.Context) ([]*models.University, error)
	Create(ctx context.Context, university *models.University) error
}

// CourseRepository is the course persistence contract
type CourseRepository interface {
	List(ctx context.Context) ([]*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
}

// ExamRepository is the exam persistence contract
type ExamRepository interface {
	List(ctx context.Context, filter repository.ExamFilter) ([]*models.Exam, error)
	GetByID(ctx context.Context, examID, viewerID string) (*models.Exam, error)
	Create(ctx context.Context, exam *models.Exam, files []*models.ExamFile) error
	ListFiles(ctx context.Context, examID string) ([]*models.ExamFile, error)
	Like(ctx context.Context, like *models.ExamLike) error
	Unlike(ctx context.Context, examID, userID string) error
	Hide(ctx context.Context, examID string) error
}

// ReportRepository is the report persistence contract
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	CountPending(ctx context.Context, reportType, reportedID string) (int, error)
}
