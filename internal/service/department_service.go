package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/univ-api/internal/models"
	"github.com/noah-isme/univ-api/pkg/guard"
	"github.com/noah-isme/univ-api/pkg/query"
)

// CreateDepartmentRequest captures fields for creating departments.
type CreateDepartmentRequest struct {
	Name             string   `json:"name" validate:"required,min=3,max=50,alphaspace"`
	Code             string   `json:"code" validate:"required,min=2,max=10,code"`
	Description      string   `json:"description" validate:"max=500"`
	College          string   `json:"college" validate:"required"`
	HeadOfDepartment string   `json:"headOfDepartment" validate:"required"`
	Courses          []string `json:"courses"`
}

// UpdateDepartmentRequest modifies department fields. Omitted fields are left unchanged.
type UpdateDepartmentRequest struct {
	Name             *string   `json:"name" validate:"omitempty,min=3,max=50,alphaspace"`
	Code             *string   `json:"code" validate:"omitempty,min=2,max=10,code"`
	Description      *string   `json:"description" validate:"omitempty,max=500"`
	College          *string   `json:"college" validate:"omitempty,min=1"`
	HeadOfDepartment *string   `json:"headOfDepartment" validate:"omitempty,min=1"`
	Courses          *[]string `json:"courses"`
}

// DepartmentService handles department workflows and keeps college.departments current.
type DepartmentService struct {
	resource[models.Department]
	sync referenceSyncer
}

// NewDepartmentService creates a new department service.
func NewDepartmentService(repo entityStore[models.Department], sync referenceSyncer, validate *validator.Validate, logger *zap.Logger) *DepartmentService {
	return &DepartmentService{
		resource: newResource("Department", repo, models.DepartmentConstraints, models.DepartmentExpansions, validate, logger),
		sync:     sync,
	}
}

// List returns a page of departments.
func (s *DepartmentService) List(ctx context.Context, spec query.Spec) (*query.Result[*models.Department], error) {
	return s.list(ctx, spec)
}

// ListByCollege returns the departments of collegeID.
func (s *DepartmentService) ListByCollege(ctx context.Context, collegeID string, spec query.Spec) (*query.Result[*models.Department], error) {
	return s.listBy(ctx, "college", "collegeId", collegeID, spec)
}

// Get returns a department with its relations populated.
func (s *DepartmentService) Get(ctx context.Context, id string) (*models.Department, error) {
	return s.get(ctx, id)
}

// Create stores a department and lists it on its college.
func (s *DepartmentService) Create(ctx context.Context, req CreateDepartmentRequest) (*models.Department, error) {
	req.Code = guard.UpperTrim(req.Code)
	if err := s.validate(req); err != nil {
		return nil, err
	}

	dept := &models.Department{
		Name:             guard.Trim(req.Name),
		Code:             req.Code,
		Description:      req.Description,
		College:          models.NewRef(req.College),
		HeadOfDepartment: models.NewRef(req.HeadOfDepartment),
		Courses:          models.NewRefList(req.Courses...),
	}
	if err := s.create(ctx, dept); err != nil {
		return nil, err
	}
	if err := s.sync.Replace(ctx, models.CollegeDepartmentsMirror, dept.ID, dept.College.IDs()); err != nil {
		return nil, err
	}
	return s.get(ctx, dept.ID)
}

// Update applies a partial update. Moving a department to another college moves
// it between the colleges' department lists.
func (s *DepartmentService) Update(ctx context.Context, id string, req UpdateDepartmentRequest) (*models.Department, error) {
	dept, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Code != nil {
		*req.Code = guard.UpperTrim(*req.Code)
	}
	if err := s.validate(req); err != nil {
		return nil, err
	}

	if req.Name != nil {
		dept.Name = guard.Trim(*req.Name)
	}
	if req.Code != nil {
		dept.Code = *req.Code
	}
	if req.Description != nil {
		dept.Description = *req.Description
	}
	if req.College != nil {
		dept.College = models.NewRef(*req.College)
	}
	if req.HeadOfDepartment != nil {
		dept.HeadOfDepartment = models.NewRef(*req.HeadOfDepartment)
	}
	if req.Courses != nil {
		dept.Courses = models.NewRefList(*req.Courses...)
	}

	if err := s.update(ctx, id, dept, sentFields(req)); err != nil {
		return nil, err
	}
	if req.College != nil {
		if err := s.sync.Replace(ctx, models.CollegeDepartmentsMirror, id, dept.College.IDs()); err != nil {
			return nil, err
		}
	}
	return s.get(ctx, id)
}

// Delete removes a department and pulls it from its college.
func (s *DepartmentService) Delete(ctx context.Context, id string) error {
	if err := s.remove(ctx, id); err != nil {
		return err
	}
	return s.sync.Detach(ctx, id, models.DepartmentDeleteMirrors...)
}
