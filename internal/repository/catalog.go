package repository

import (
	"context"
	"fmt"

	"fetenahub-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UniversityRepository handles database operations for universities
type UniversityRepository struct {
	db *pgxpool.Pool
}

// NewUniversityRepository creates a new university repository
func NewUniversityRepository(db *pgxpool.Pool) *UniversityRepository {
	return &UniversityRepository{db: db}
}

// List returns all universities ordered by name
func (r *UniversityRepository) List(ctx context.Context) ([]*models.University, error) {
	query := `SELECT id, name, created_at FROM universities ORDER BY name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list universities: %w", err)
	}
	defer rows.Close()

	var universities []*models.University
	for rows.Next() {
		var u models.University
		if err := rows.Scan(&u.ID, &u.Name, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan university: %w", err)
		}
		universities = append(universities, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating universities: %w", err)
	}
	return universities, nil
}

// Create creates a new university
func (r *UniversityRepository) Create(ctx context.Context, university *models.University) error {
	query := `INSERT INTO universities (id, name, created_at) VALUES ($1, $2, $3)`
	_, err := r.db.Exec(ctx, query, university.ID, university.Name, university.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create university: %w", err)
	}
	return nil
}

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns all courses ordered by name
func (r *CourseRepository) List(ctx context.Context) ([]*models.Course, error) {
	query := `SELECT id, name, created_at FROM courses ORDER BY name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating courses: %w", err)
	}
	return courses, nil
}

// Create creates a new course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `INSERT INTO courses (id, name, created_at) VALUES ($1, $2, $3)`
	_, err := r.db.Exec(ctx, query, course.ID, course.Name, course.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}
	return nil
}
