package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"fetenahub-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ExamFilter narrows exam listings. Zero values mean "no filter". UserIDs is
// used for the following feed; ViewerID drives the like flag and the hidden
// exam policy.
type ExamFilter struct {
	UniversityID string
	CourseID     string
	Year         int
	UserID       string
	UserIDs      []string
	Search       string
	ViewerID     string
}

// ExamRepository handles database operations for exams, their files and likes
type ExamRepository struct {
	db *pgxpool.Pool
}

// NewExamRepository creates a new exam repository
func NewExamRepository(db *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{db: db}
}

const examSelect = `
	SELECT e.id, e.user_id, e.university_id, e.course_id, e.year, e.exam_type,
	       e.teacher_name, e.is_hidden, e.created_at,
	       u.id, u.telegram_id, u.username, u.bio, u.avatar_url, u.created_at,
	       un.id, un.name, un.created_at,
	       c.id, c.name, c.created_at,
	       (SELECT COUNT(*) FROM exam_likes l WHERE l.exam_id = e.id),
	       EXISTS(SELECT 1 FROM exam_likes l WHERE l.exam_id = e.id AND l.user_id = $1)
	FROM exams e
	JOIN users u ON u.id = e.user_id
	JOIN universities un ON un.id = e.university_id
	JOIN courses c ON c.id = e.course_id
`

func scanExam(row pgx.Row) (*models.Exam, error) {
	var (
		exam       models.Exam
		user       models.User
		university models.University
		course     models.Course
	)
	err := row.Scan(
		&exam.ID, &exam.UserID, &exam.UniversityID, &exam.CourseID, &exam.Year,
		&exam.ExamType, &exam.TeacherName, &exam.IsHidden, &exam.CreatedAt,
		&user.ID, &user.TelegramID, &user.Username, &user.Bio, &user.AvatarURL, &user.CreatedAt,
		&university.ID, &university.Name, &university.CreatedAt,
		&course.ID, &course.Name, &course.CreatedAt,
		&exam.LikesCount, &exam.IsLiked,
	)
	if err != nil {
		return nil, err
	}
	exam.User = &user
	exam.University = &university
	exam.Course = &course
	return &exam, nil
}

// List retrieves exams matching the filter, newest first
func (r *ExamRepository) List(ctx context.Context, filter ExamFilter) ([]*models.Exam, error) {
	args := []interface{}{filter.ViewerID}
	// Hidden exams stay visible to their owner only.
	conditions := []string{"(NOT e.is_hidden OR e.user_id = $1)"}

	addArg := func(value interface{}) string {
		args = append(args, value)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.UniversityID != "" {
		conditions = append(conditions, "e.university_id = "+addArg(filter.UniversityID))
	}
	if filter.CourseID != "" {
		conditions = append(conditions, "e.course_id = "+addArg(filter.CourseID))
	}
	if filter.Year != 0 {
		conditions = append(conditions, "e.year = "+addArg(filter.Year))
	}
	if filter.UserID != "" {
		conditions = append(conditions, "e.user_id = "+addArg(filter.UserID))
	}
	if len(filter.UserIDs) > 0 {
		conditions = append(conditions, "e.user_id = ANY("+addArg(filter.UserIDs)+"::uuid[])")
	}
	if filter.Search != "" {
		p := addArg("%" + filter.Search + "%")
		conditions = append(conditions, "(c.name ILIKE "+p+" OR u.username ILIKE "+p+")")
	}

	query := examSelect + " WHERE " + strings.Join(conditions, " AND ") +
		" ORDER BY e.created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list exams: %w", err)
	}
	defer rows.Close()

	var exams []*models.Exam
	for rows.Next() {
		exam, err := scanExam(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan exam: %w", err)
		}
		exams = append(exams, exam)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exams: %w", err)
	}
	return exams, nil
}

// GetByID retrieves a single exam with its joined user, university and course
func (r *ExamRepository) GetByID(ctx context.Context, examID, viewerID string) (*models.Exam, error) {
	query := examSelect + " WHERE e.id = $2"
	exam, err := scanExam(r.db.QueryRow(ctx, query, viewerID, examID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("exam not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get exam: %w", err)
	}
	return exam, nil
}

// Create inserts an exam together with its files in one transaction; a
// failure on any file insert rolls the exam back.
func (r *ExamRepository) Create(ctx context.Context, exam *models.Exam, files []*models.ExamFile) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	examQuery := `
		INSERT INTO exams (id, user_id, university_id, course_id, year, exam_type, teacher_name, is_hidden, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = tx.Exec(ctx, examQuery,
		exam.ID, exam.UserID, exam.UniversityID, exam.CourseID, exam.Year,
		exam.ExamType, exam.TeacherName, exam.IsHidden, exam.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create exam: %w", err)
	}

	fileQuery := `
		INSERT INTO exam_files (id, exam_id, file_url, page_order)
		VALUES ($1, $2, $3, $4)
	`
	for _, file := range files {
		if _, err := tx.Exec(ctx, fileQuery, file.ID, file.ExamID, file.FileURL, file.PageOrder); err != nil {
			return fmt.Errorf("failed to create exam file: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit exam: %w", err)
	}
	return nil
}

// ListFiles retrieves the files of an exam in page order
func (r *ExamRepository) ListFiles(ctx context.Context, examID string) ([]*models.ExamFile, error) {
	query := `
		SELECT id, exam_id, file_url, page_order
		FROM exam_files
		WHERE exam_id = $1
		ORDER BY page_order
	`
	rows, err := r.db.Query(ctx, query, examID)
	if err != nil {
		return nil, fmt.Errorf("failed to list exam files: %w", err)
	}
	defer rows.Close()

	var files []*models.ExamFile
	for rows.Next() {
		var f models.ExamFile
		if err := rows.Scan(&f.ID, &f.ExamID, &f.FileURL, &f.PageOrder); err != nil {
			return nil, fmt.Errorf("failed to scan exam file: %w", err)
		}
		files = append(files, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exam files: %w", err)
	}
	return files, nil
}

// Like inserts a like. The unique constraint makes duplicate likes no-ops.
func (r *ExamRepository) Like(ctx context.Context, like *models.ExamLike) error {
	query := `
		INSERT INTO exam_likes (id, exam_id, user_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (exam_id, user_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, like.ID, like.ExamID, like.UserID, like.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to like exam: %w", err)
	}
	return nil
}

// Unlike removes a like if it exists
func (r *ExamRepository) Unlike(ctx context.Context, examID, userID string) error {
	query := `DELETE FROM exam_likes WHERE exam_id = $1 AND user_id = $2`
	_, err := r.db.Exec(ctx, query, examID, userID)
	if err != nil {
		return fmt.Errorf("failed to unlike exam: %w", err)
	}
	return nil
}

// Hide sets the hidden flag on an exam. There is no reverse operation.
func (r *ExamRepository) Hide(ctx context.Context, examID string) error {
	query := `UPDATE exams SET is_hidden = TRUE WHERE id = $1`
	_, err := r.db.Exec(ctx, query, examID)
	if err != nil {
		return fmt.Errorf("failed to hide exam: %w", err)
	}
	return nil
}
