package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/univ-api/internal/models"
)

var collegeColumns = []string{"name", "code", "description", "address", "established_year", "website", "university_id", "dean_id"}

// CollegeRepository persists college rows.
type CollegeRepository struct {
	*Collection[models.College]
}

// NewCollegeRepository creates a new instance of CollegeRepository.
func NewCollegeRepository(db *sqlx.DB) *CollegeRepository {
	return &CollegeRepository{Collection: NewCollection[models.College](db, models.CollegeSchema)}
}

// Create inserts a new college, assigning id and timestamps.
func (r *CollegeRepository) Create(ctx context.Context, m *models.College) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	return r.InsertColumns(ctx, m, append([]string{"id", "created_at", "updated_at", "department_ids"}, collegeColumns...))
}

// Update rewrites the columns behind fields. department_ids is only written by
// the department mirror.
func (r *CollegeRepository) Update(ctx context.Context, m *models.College, fields []string) error {
	m.UpdatedAt = time.Now().UTC()
	return r.UpdateFields(ctx, m, collegeColumns, fields)
}
