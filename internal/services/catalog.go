package services

import (
	"context"
	"time"

	"fetenahub-backend/internal/models"

	"github.com/google/uuid"
)

// CatalogService handles the university and course reference data
type CatalogService struct {
	universityRepo UniversityRepository
	courseRepo     CourseRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(universityRepo UniversityRepository, courseRepo CourseRepository) *CatalogService {
	return &CatalogService{
		universityRepo: universityRepo,
		courseRepo:     courseRepo,
	}
}

// ListUniversities returns all universities ordered by name
func (s *CatalogService) ListUniversities(ctx context.Context) ([]*models.University, error) {
	return s.universityRepo.List(ctx)
}

// CreateUniversity creates a new university
func (s *CatalogService) CreateUniversity(ctx context.Context, name string) (*models.University, error) {
	university := &models.University{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.universityRepo.Create(ctx, university); err != nil {
		return nil, err
	}
	return university, nil
}

// ListCourses returns all courses ordered by name
func (s *CatalogService) ListCourses(ctx context.Context) ([]*models.Course, error) {
	return s.courseRepo.List(ctx)
}

// CreateCourse creates a new course
func (s *CatalogService) CreateCourse(ctx context.Context, name string) (*models.Course, error) {
	course := &models.Course{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}
