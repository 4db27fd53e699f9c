package handlers

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"testing"

	"fetenahub-backend/internal/middleware"
	"fetenahub-backend/internal/models"
	"fetenahub-backend/internal/repository"
	"fetenahub-backend/internal/services"

	"github.com/go-chi/chi/v5"
)

const testBotToken = "7another1:AAFakeBotTokenForTests"

// signedInitData builds platform-signed init data for the given pairs.
func signedInitData(pairs map[string]string) string {
	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	parts := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		lines = append(lines, k+"="+pairs[k])
		parts = append(parts, url.QueryEscape(k)+"="+url.QueryEscape(pairs[k]))
	}

	mac := hmac.New(sha256.New, []byte("WebAppData"))
	mac.Write([]byte(testBotToken))
	secret := mac.Sum(nil)

	mac = hmac.New(sha256.New, secret)
	mac.Write([]byte(strings.Join(lines, "\n")))
	parts = append(parts, "hash="+hex.EncodeToString(mac.Sum(nil)))
	return strings.Join(parts, "&")
}

// initDataFor signs init data for a user with the given telegram id.
func initDataFor(telegramID int64, username string) string {
	return signedInitData(map[string]string{
		"auth_date": "1700000000",
		"user":      fmt.Sprintf(`{"id":%d,"username":%q}`, telegramID, username),
	})
}

// In-memory fakes for the repository interfaces the handlers reach through
// the services.

type memUserRepo struct {
	users []*models.User
}

func (f *memUserRepo) Create(ctx context.Context, user *models.User) error {
	copied := *user
	f.users = append(f.users, &copied)
	return nil
}

func (f *memUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *memUserRepo) GetByTelegramID(ctx context.Context, telegramID string) (*models.User, error) {
	for _, u := range f.users {
		if u.TelegramID == telegramID {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *memUserRepo) Update(ctx context.Context, user *models.User) error {
	for i, u := range f.users {
		if u.ID == user.ID {
			copied := *user
			f.users[i] = &copied
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *memUserRepo) UpdateAvatar(ctx context.Context, userID, avatarURL string) error {
	for _, u := range f.users {
		if u.ID == userID {
			u.AvatarURL = avatarURL
		}
	}
	return nil
}

func (f *memUserRepo) CountFollowers(ctx context.Context, userID string) (int, error) { return 0, nil }
func (f *memUserRepo) CountFollowing(ctx context.Context, userID string) (int, error) { return 0, nil }

type memFollowRepo struct {
	follows []*models.Follow
}

func (f *memFollowRepo) Create(ctx context.Context, follow *models.Follow) error {
	exists, _ := f.Exists(ctx, follow.FollowerID, follow.FollowingID)
	if !exists {
		f.follows = append(f.follows, follow)
	}
	return nil
}

func (f *memFollowRepo) Delete(ctx context.Context, followerID, followingID string) error {
	kept := f.follows[:0]
	for _, e := range f.follows {
		if e.FollowerID != followerID || e.FollowingID != followingID {
			kept = append(kept, e)
		}
	}
	f.follows = kept
	return nil
}

func (f *memFollowRepo) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	for _, e := range f.follows {
		if e.FollowerID == followerID && e.FollowingID == followingID {
			return true, nil
		}
	}
	return false, nil
}

func (f *memFollowRepo) ListFollowingIDs(ctx context.Context, followerID string) ([]string, error) {
	var ids []string
	for _, e := range f.follows {
		if e.FollowerID == followerID {
			ids = append(ids, e.FollowingID)
		}
	}
	return ids, nil
}

type memExamRepo struct {
	exams []*models.Exam
	files map[string][]*models.ExamFile
	likes []*models.ExamLike
}

func newMemExamRepo() *memExamRepo {
	return &memExamRepo{files: make(map[string][]*models.ExamFile)}
}

func (f *memExamRepo) List(ctx context.Context, filter repository.ExamFilter) ([]*models.Exam, error) {
	var out []*models.Exam
	for _, e := range f.exams {
		if e.IsHidden && e.UserID != filter.ViewerID {
			continue
		}
		if filter.UserID != "" && e.UserID != filter.UserID {
			continue
		}
		if len(filter.UserIDs) > 0 {
			match := false
			for _, id := range filter.UserIDs {
				if e.UserID == id {
					match = true
				}
			}
			if !match {
				continue
			}
		}
		copied := *e
		out = append(out, &copied)
	}
	return out, nil
}

func (f *memExamRepo) GetByID(ctx context.Context, examID, viewerID string) (*models.Exam, error) {
	for _, e := range f.exams {
		if e.ID == examID {
			copied := *e
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *memExamRepo) Create(ctx context.Context, exam *models.Exam, files []*models.ExamFile) error {
	copied := *exam
	f.exams = append(f.exams, &copied)
	f.files[exam.ID] = files
	return nil
}

func (f *memExamRepo) ListFiles(ctx context.Context, examID string) ([]*models.ExamFile, error) {
	return f.files[examID], nil
}

func (f *memExamRepo) Like(ctx context.Context, like *models.ExamLike) error {
	for _, l := range f.likes {
		if l.ExamID == like.ExamID && l.UserID == like.UserID {
			return nil
		}
	}
	f.likes = append(f.likes, like)
	return nil
}

func (f *memExamRepo) Unlike(ctx context.Context, examID, userID string) error {
	kept := f.likes[:0]
	for _, l := range f.likes {
		if l.ExamID != examID || l.UserID != userID {
			kept = append(kept, l)
		}
	}
	f.likes = kept
	return nil
}

func (f *memExamRepo) Hide(ctx context.Context, examID string) error {
	for _, e := range f.exams {
		if e.ID == examID {
			e.IsHidden = true
		}
	}
	return nil
}

type memReportRepo struct {
	reports []*models.Report
}

func (f *memReportRepo) Create(ctx context.Context, report *models.Report) error {
	f.reports = append(f.reports, report)
	return nil
}

func (f *memReportRepo) CountPending(ctx context.Context, reportType, reportedID string) (int, error) {
	count := 0
	for _, r := range f.reports {
		if r.ReportType == reportType && r.ReportedID == reportedID && r.Status == models.ReportStatusPending {
			count++
		}
	}
	return count, nil
}

type memUniversityRepo struct {
	universities []*models.University
}

func (f *memUniversityRepo) List(ctx context.Context) ([]*models.University, error) {
	return f.universities, nil
}

func (f *memUniversityRepo) Create(ctx context.Context, u *models.University) error {
	f.universities = append(f.universities, u)
	return nil
}

type memCourseRepo struct {
	courses []*models.Course
}

func (f *memCourseRepo) List(ctx context.Context) ([]*models.Course, error) { return f.courses, nil }
func (f *memCourseRepo) Create(ctx context.Context, c *models.Course) error {
	f.courses = append(f.courses, c)
	return nil
}

// testEnv bundles the fake-backed application for endpoint tests.
type testEnv struct {
	router   chi.Router
	userRepo *memUserRepo
	examRepo *memExamRepo
}

// newTestEnv builds the API surface over in-memory repositories, mirroring
// the production wiring minus the upload routes (those need object storage).
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	userRepo := &memUserRepo{}
	followRepo := &memFollowRepo{}
	examRepo := newMemExamRepo()
	reportRepo := &memReportRepo{}

	userService := services.NewUserService(userRepo, followRepo)
	followService := services.NewFollowService(followRepo, userRepo)
	catalogService := services.NewCatalogService(&memUniversityRepo{}, &memCourseRepo{})
	examService := services.NewExamService(examRepo, followRepo, userRepo)
	reportService := services.NewReportService(reportRepo, examRepo, userRepo)

	authHandler := NewAuthHandler(userService, testBotToken)
	userHandler := NewUserHandler(userService)
	followHandler := NewFollowHandler(followService)
	catalogHandler := NewCatalogHandler(catalogService)
	examHandler := NewExamHandler(examService)
	reportHandler := NewReportHandler(reportService)

	r := chi.NewRouter()
	r.Get("/", Index)
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", Health)
		r.Post("/auth/verify", authHandler.VerifyAuth)

		r.Group(func(r chi.Router) {
			r.Use(middleware.TelegramAuth(testBotToken))

			r.Get("/user/profile", userHandler.GetProfile)
			r.Put("/user/profile", userHandler.UpdateProfile)
			r.Get("/user/profile/{id}", userHandler.GetProfileByID)
			r.Post("/follow/{id}", followHandler.Follow)
			r.Delete("/follow/{id}", followHandler.Unfollow)
			r.Get("/universities", catalogHandler.ListUniversities)
			r.Post("/universities", catalogHandler.CreateUniversity)
			r.Get("/courses", catalogHandler.ListCourses)
			r.Post("/courses", catalogHandler.CreateCourse)
			r.Get("/exams", examHandler.List)
			r.Post("/exams", examHandler.Create)
			r.Get("/exams/{id}", examHandler.Get)
			r.Post("/exams/{id}/like", examHandler.Like)
			r.Delete("/exams/{id}/like", examHandler.Unlike)
			r.Post("/reports", reportHandler.Create)
		})
	})

	return &testEnv{router: r, userRepo: userRepo, examRepo: examRepo}
}
