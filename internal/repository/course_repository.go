package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/univ-api/internal/models"
)

var courseColumns = []string{"code", "title", "description", "credit_hours", "is_active", "department_id", "prerequisite_ids", "program_ids"}

// CourseRepository persists course rows.
type CourseRepository struct {
	*Collection[models.Course]
}

// NewCourseRepository creates a new instance of CourseRepository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{Collection: NewCollection[models.Course](db, models.CourseSchema)}
}

// Create inserts a new course, assigning id and timestamps.
func (r *CourseRepository) Create(ctx context.Context, m *models.Course) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	return r.InsertColumns(ctx, m, append([]string{"id", "created_at", "updated_at"}, courseColumns...))
}

// Update rewrites the columns behind fields.
func (r *CourseRepository) Update(ctx context.Context, m *models.Course, fields []string) error {
	m.UpdatedAt = time.Now().UTC()
	return r.UpdateFields(ctx, m, courseColumns, fields)
}
