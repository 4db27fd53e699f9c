package services

import (
	"context"
	"fmt"
	"sort"

	"fetenahub-backend/internal/models"
	"fetenahub-backend/internal/repository"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	users []*models.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	copied := *user
	f.users = append(f.users, &copied)
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("user not found: %w", repository.ErrNotFound)
}

func (f *fakeUserRepo) GetByTelegramID(ctx context.Context, telegramID string) (*models.User, error) {
	for _, u := range f.users {
		if u.TelegramID == telegramID {
			copied := *u
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("user not found: %w", repository.ErrNotFound)
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	for i, u := range f.users {
		if u.ID == user.ID {
			copied := *user
			f.users[i] = &copied
			return nil
		}
	}
	return fmt.Errorf("user not found: %w", repository.ErrNotFound)
}

func (f *fakeUserRepo) UpdateAvatar(ctx context.Context, userID, avatarURL string) error {
	for _, u := range f.users {
		if u.ID == userID {
			u.AvatarURL = avatarURL
			return nil
		}
	}
	return fmt.Errorf("user not found: %w", repository.ErrNotFound)
}

func (f *fakeUserRepo) CountFollowers(ctx context.Context, userID string) (int, error) {
	return 0, nil
}

func (f *fakeUserRepo) CountFollowing(ctx context.Context, userID string) (int, error) {
	return 0, nil
}

type fakeFollowRepo struct {
	edges map[string]map[string]bool
}

func newFakeFollowRepo() *fakeFollowRepo {
	return &fakeFollowRepo{edges: make(map[string]map[string]bool)}
}

func (f *fakeFollowRepo) Create(ctx context.Context, follow *models.Follow) error {
	if f.edges[follow.FollowerID] == nil {
		f.edges[follow.FollowerID] = make(map[string]bool)
	}
	f.edges[follow.FollowerID][follow.FollowingID] = true
	return nil
}

func (f *fakeFollowRepo) Delete(ctx context.Context, followerID, followingID string) error {
	delete(f.edges[followerID], followingID)
	return nil
}

func (f *fakeFollowRepo) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	return f.edges[followerID][followingID], nil
}

func (f *fakeFollowRepo) ListFollowingIDs(ctx context.Context, followerID string) ([]string, error) {
	var ids []string
	for id := range f.edges[followerID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

type fakeExamRepo struct {
	exams     []*models.Exam
	files     map[string][]*models.ExamFile
	likes     map[string]map[string]bool
	hideCalls int
}

func newFakeExamRepo() *fakeExamRepo {
	return &fakeExamRepo{
		files: make(map[string][]*models.ExamFile),
		likes: make(map[string]map[string]bool),
	}
}

func (f *fakeExamRepo) List(ctx context.Context, filter repository.ExamFilter) ([]*models.Exam, error) {
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
					break
				}
			}
			if !match {
				continue
			}
		}
		if filter.UniversityID != "" && e.UniversityID != filter.UniversityID {
			continue
		}
		if filter.CourseID != "" && e.CourseID != filter.CourseID {
			continue
		}
		if filter.Year != 0 && e.Year != filter.Year {
			continue
		}
		copied := *e
		copied.LikesCount = len(f.likes[e.ID])
		copied.IsLiked = f.likes[e.ID][filter.ViewerID]
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeExamRepo) GetByID(ctx context.Context, examID, viewerID string) (*models.Exam, error) {
	for _, e := range f.exams {
		if e.ID == examID {
			copied := *e
			copied.LikesCount = len(f.likes[e.ID])
			copied.IsLiked = f.likes[e.ID][viewerID]
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("exam not found: %w", repository.ErrNotFound)
}

func (f *fakeExamRepo) Create(ctx context.Context, exam *models.Exam, files []*models.ExamFile) error {
	copied := *exam
	f.exams = append(f.exams, &copied)
	f.files[exam.ID] = files
	return nil
}

func (f *fakeExamRepo) ListFiles(ctx context.Context, examID string) ([]*models.ExamFile, error) {
	return f.files[examID], nil
}

func (f *fakeExamRepo) Like(ctx context.Context, like *models.ExamLike) error {
	if f.likes[like.ExamID] == nil {
		f.likes[like.ExamID] = make(map[string]bool)
	}
	f.likes[like.ExamID][like.UserID] = true
	return nil
}

func (f *fakeExamRepo) Unlike(ctx context.Context, examID, userID string) error {
	delete(f.likes[examID], userID)
	return nil
}

func (f *fakeExamRepo) Hide(ctx context.Context, examID string) error {
	f.hideCalls++
	for _, e := range f.exams {
		if e.ID == examID {
			e.IsHidden = true
		}
	}
	return nil
}

type fakeReportRepo struct {
	reports []*models.Report
}

func (f *fakeReportRepo) Create(ctx context.Context, report *models.Report) error {
	copied := *report
	f.reports = append(f.reports, &copied)
	return nil
}

func (f *fakeReportRepo) CountPending(ctx context.Context, reportType, reportedID string) (int, error) {
	count := 0
	for _, r := range f.reports {
		if r.ReportType == reportType && r.ReportedID == reportedID && r.Status == models.ReportStatusPending {
			count++
		}
	}
	return count, nil
}

type fakeUniversityRepo struct {
	universities []*models.University
}

func (f *fakeUniversityRepo) List(ctx context.Context) ([]*models.University, error) {
	return f.universities, nil
}

func (f *fakeUniversityRepo) Create(ctx context.Context, university *models.University) error {
	f.universities = append(f.universities, university)
	return nil
}

type fakeCourseRepo struct {
	courses []*models.Course
}

func (f *fakeCourseRepo) List(ctx context.Context) ([]*models.Course, error) {
	return f.courses, nil
}

func (f *fakeCourseRepo) Create(ctx context.Context, course *models.Course) error {
	f.courses = append(f.courses, course)
	return nil
}
