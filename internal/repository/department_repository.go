package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/univ-api/internal/models"
	"github.com/noah-isme/univ-api/pkg/query"
)

var departmentColumns = []string{"name", "code", "description", "college_id", "head_of_department_id", "course_ids"}

// DepartmentRepository persists department rows.
type DepartmentRepository struct {
	*Collection[models.Department]
}

// NewDepartmentRepository creates a new instance of DepartmentRepository.
func NewDepartmentRepository(db *sqlx.DB) *DepartmentRepository {
	return &DepartmentRepository{Collection: NewCollection[models.Department](db, models.DepartmentSchema)}
}

// Create inserts a new department, assigning id and timestamps.
func (r *DepartmentRepository) Create(ctx context.Context, m *models.Department) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	return r.InsertColumns(ctx, m, append([]string{"id", "created_at", "updated_at"}, departmentColumns...))
}

// Update rewrites the columns behind fields.
func (r *DepartmentRepository) Update(ctx context.Context, m *models.Department, fields []string) error {
	m.UpdatedAt = time.Now().UTC()
	return r.UpdateFields(ctx, m, departmentColumns, fields)
}

// CountByCollege returns how many departments reference collegeID.
func (r *DepartmentRepository) CountByCollege(ctx context.Context, collegeID string) (int, error) {
	return r.Count(ctx, query.Filter{"college": collegeID})
}
