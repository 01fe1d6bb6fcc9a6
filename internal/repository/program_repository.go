package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/univ-api/internal/models"
)

var programColumns = []string{"name", "code", "type", "duration_years", "college_id", "department_id", "course_ids"}

// ProgramRepository persists program rows.
type ProgramRepository struct {
	*Collection[models.Program]
}

// NewProgramRepository creates a new instance of ProgramRepository.
func NewProgramRepository(db *sqlx.DB) *ProgramRepository {
	return &ProgramRepository{Collection: NewCollection[models.Program](db, models.ProgramSchema)}
}

// Create inserts a new program, assigning id and timestamps.
func (r *ProgramRepository) Create(ctx context.Context, m *models.Program) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	return r.InsertColumns(ctx, m, append([]string{"id", "created_at", "updated_at"}, programColumns...))
}

// Update rewrites the columns behind fields.
func (r *ProgramRepository) Update(ctx context.Context, m *models.Program, fields []string) error {
	m.UpdatedAt = time.Now().UTC()
	return r.UpdateFields(ctx, m, programColumns, fields)
}
