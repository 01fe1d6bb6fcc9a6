package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/univ-api/internal/models"
)

var adminUnitColumns = []string{"name", "description", "staff_ids", "college_id", "university_id"}

// AdminUnitRepository persists admin unit rows.
type AdminUnitRepository struct {
	*Collection[models.AdminUnit]
}

// NewAdminUnitRepository creates a new instance of AdminUnitRepository.
func NewAdminUnitRepository(db *sqlx.DB) *AdminUnitRepository {
	return &AdminUnitRepository{Collection: NewCollection[models.AdminUnit](db, models.AdminUnitSchema)}
}

// Create inserts a new admin unit, assigning id and timestamps.
func (r *AdminUnitRepository) Create(ctx context.Context, m *models.AdminUnit) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	return r.InsertColumns(ctx, m, append([]string{"id", "created_at", "updated_at"}, adminUnitColumns...))
}

// Update rewrites the columns behind fields.
func (r *AdminUnitRepository) Update(ctx context.Context, m *models.AdminUnit, fields []string) error {
	m.UpdatedAt = time.Now().UTC()
	return r.UpdateFields(ctx, m, adminUnitColumns, fields)
}
