package models

import "time"

// User represents a registered user. The counter fields are computed per
// response by the services, not stored.
type User struct {
	ID         string    `json:"id"`
	TelegramID string    `json:"telegram_id"`
	Username   string    `json:"username"`
	Bio        string    `json:"bio"`
	AvatarURL  string    `json:"avatar_url"`
	CreatedAt  time.Time `json:"created_at"`

	FollowersCount int   `json:"followers_count"`
	FollowingCount int   `json:"following_count"`
	IsFollowing    *bool `json:"is_following,omitempty"`
}

// Follow is a directed edge in the follow graph.
type Follow struct {
	FollowerID  string    `json:"follower_id"`
	FollowingID string    `json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// University is reference data for exam filtering.
type University struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Course is reference data for exam filtering.
type Course struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Exam is an uploaded exam document composed of ordered page files.
type Exam struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	UniversityID string    `json:"university_id"`
	CourseID     string    `json:"course_id"`
	Year         int       `json:"year"`
	ExamType     string    `json:"exam_type"`
	TeacherName  string    `json:"teacher_name"`
	IsHidden     bool      `json:"is_hidden"`
	CreatedAt    time.Time `json:"created_at"`

	User       *User       `json:"user,omitempty"`
	University *University `json:"university,omitempty"`
	Course     *Course     `json:"course,omitempty"`
	Files      []*ExamFile `json:"files"`
	LikesCount int         `json:"likes_count"`
	IsLiked    bool        `json:"is_liked"`
}

// ExamFile is a single page of an exam; PageOrder is zero-based and defines
// the display sequence.
type ExamFile struct {
	ID        string `json:"id"`
	ExamID    string `json:"exam_id"`
	FileURL   string `json:"file_url"`
	PageOrder int    `json:"page_order"`
}

// ExamLike marks that a user liked an exam.
type ExamLike struct {
	ID        string    `json:"id"`
	ExamID    string    `json:"exam_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Report target kinds.
const (
	ReportTypeExam = "exam"
	ReportTypeUser = "user"
)

// ReportStatusPending is the status every new report is filed with.
const ReportStatusPending = "pending"

// Report is a user-filed complaint against an exam or another user.
type Report struct {
	ID         string    `json:"id"`
	ReporterID string    `json:"reporter_id"`
	ReportType string    `json:"report_type"`
	ReportedID string    `json:"reported_id"`
	Reason     string    `json:"reason"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
