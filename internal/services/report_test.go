package services

import (
	"context"
	"strconv"
	"testing"

	"fetenahub-backend/internal/auth"
	"fetenahub-backend/internal/models"
)

func setupReportTest(t *testing.T, reporters int) (*ReportService, *fakeExamRepo, []string, string) {
	t.Helper()
	userRepo := &fakeUserRepo{}
	followRepo := newFakeFollowRepo()
	examRepo := newFakeExamRepo()
	userSvc := NewUserService(userRepo, followRepo)

	owner, err := userSvc.VerifyAuth(context.Background(), auth.TelegramUser{ID: 1000, Username: "owner"})
	if err != nil {
		t.Fatalf("create owner: %v", err)
	}

	examSvc := NewExamService(examRepo, followRepo, userRepo)
	exam, err := examSvc.Create(context.Background(), owner.TelegramID, CreateExamRequest{
		UniversityID: "uni-1", CourseID: "course-1", Year: 2024, ExamType: "final",
		Files: []string{"https://cdn/p1.pdf"},
	})
	if err != nil {
		t.Fatalf("create exam: %v", err)
	}

	var reporterTGs []string
	for i := 0; i < reporters; i++ {
		u, err := userSvc.VerifyAuth(context.Background(), auth.TelegramUser{ID: int64(i + 1), Username: "r" + strconv.Itoa(i)})
		if err != nil {
			t.Fatalf("create reporter %d: %v", i, err)
		}
		reporterTGs = append(reporterTGs, u.TelegramID)
	}

	return NewReportService(&fakeReportRepo{}, examRepo, userRepo), examRepo, reporterTGs, exam.ID
}

func TestReportFiledAsPending(t *testing.T) {
	svc, _, reporters, examID := setupReportTest(t, 1)

	report, err := svc.Create(context.Background(), reporters[0], CreateReportRequest{
		ReportType: models.ReportTypeExam,
		ReportedID: examID,
		Reason:     "answer key is wrong",
	})
	if err != nil {
		t.Fatalf("create report: %v", err)
	}
	if report.Status != models.ReportStatusPending {
		t.Fatalf("expected pending status, got %q", report.Status)
	}
	if report.ID == "" {
		t.Fatalf("expected report id")
	}
}

func TestThreeReportsHideExamOnce(t *testing.T) {
	svc, examRepo, reporters, examID := setupReportTest(t, 4)

	for i := 0; i < 2; i++ {
		if _, err := svc.Create(context.Background(), reporters[i], CreateReportRequest{
			ReportType: models.ReportTypeExam, ReportedID: examID, Reason: "spam",
		}); err != nil {
			t.Fatalf("report %d: %v", i, err)
		}
	}
	if examRepo.hideCalls != 0 {
		t.Fatalf("expected no hide before threshold, got %d calls", examRepo.hideCalls)
	}

	if _, err := svc.Create(context.Background(), reporters[2], CreateReportRequest{
		ReportType: models.ReportTypeExam, ReportedID: examID, Reason: "spam",
	}); err != nil {
		t.Fatalf("third report: %v", err)
	}
	if examRepo.hideCalls != 1 {
		t.Fatalf("expected hide at third report, got %d calls", examRepo.hideCalls)
	}
	if !examRepo.exams[0].IsHidden {
		t.Fatalf("expected exam hidden")
	}

	// A fourth report triggers the check again but the flag is already set;
	// hiding stays one-way and the exam state does not change.
	if _, err := svc.Create(context.Background(), reporters[3], CreateReportRequest{
		ReportType: models.ReportTypeExam, ReportedID: examID, Reason: "spam",
	}); err != nil {
		t.Fatalf("fourth report: %v", err)
	}
	if !examRepo.exams[0].IsHidden {
		t.Fatalf("expected exam to stay hidden")
	}
}

func TestUserReportsDoNotHideAnything(t *testing.T) {
	svc, examRepo, reporters, _ := setupReportTest(t, 3)

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(context.Background(), reporters[i], CreateReportRequest{
			ReportType: models.ReportTypeUser, ReportedID: "some-user", Reason: "abuse",
		}); err != nil {
			t.Fatalf("report %d: %v", i, err)
		}
	}
	if examRepo.hideCalls != 0 {
		t.Fatalf("expected no hide for user reports, got %d calls", examRepo.hideCalls)
	}
}
