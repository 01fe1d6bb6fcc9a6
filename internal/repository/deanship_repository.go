package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/univ-api/internal/models"
)

var deanshipColumns = []string{"dean_id", "college_id", "start_date", "end_date"}

// DeanshipRepository persists deanship rows.
type DeanshipRepository struct {
	*Collection[models.Deanship]
}

// NewDeanshipRepository creates a new instance of DeanshipRepository.
func NewDeanshipRepository(db *sqlx.DB) *DeanshipRepository {
	return &DeanshipRepository{Collection: NewCollection[models.Deanship](db, models.DeanshipSchema)}
}

// Create inserts a new deanship, assigning id and timestamps.
func (r *DeanshipRepository) Create(ctx context.Context, m *models.Deanship) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	return r.InsertColumns(ctx, m, append([]string{"id", "created_at", "updated_at"}, deanshipColumns...))
}

// Update rewrites the columns behind fields.
func (r *DeanshipRepository) Update(ctx context.Context, m *models.Deanship, fields []string) error {
	m.UpdatedAt = time.Now().UTC()
	return r.UpdateFields(ctx, m, deanshipColumns, fields)
}
