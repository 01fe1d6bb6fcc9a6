package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/univ-api/internal/models"
)

var universityColumns = []string{"name", "code", "website", "phone", "location", "established_year"}

// UniversityRepository persists university rows.
type UniversityRepository struct {
	*Collection[models.University]
}

// NewUniversityRepository creates a new instance of UniversityRepository.
func NewUniversityRepository(db *sqlx.DB) *UniversityRepository {
	return &UniversityRepository{Collection: NewCollection[models.University](db, models.UniversitySchema)}
}

// Create inserts a new university, assigning id and timestamps.
func (r *UniversityRepository) Create(ctx context.Context, m *models.University) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	return r.InsertColumns(ctx, m, append([]string{"id", "created_at", "updated_at"}, universityColumns...))
}

// Update rewrites the columns behind fields.
func (r *UniversityRepository) Update(ctx context.Context, m *models.University, fields []string) error {
	m.UpdatedAt = time.Now().UTC()
	return r.UpdateFields(ctx, m, universityColumns, fields)
}
