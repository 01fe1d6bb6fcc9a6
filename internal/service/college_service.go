package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/univ-api/internal/models"
	appErrors "github.com/noah-isme/univ-api/pkg/errors"
	"github.com/noah-isme/univ-api/pkg/guard"
	"github.com/noah-isme/univ-api/pkg/query"
)

type departmentCounter interface {
	CountByCollege(ctx context.Context, collegeID string) (int, error)
}

// CreateCollegeRequest captures fields for creating colleges. The department list
// follows department.college and is not accepted here.
type CreateCollegeRequest struct {
	Name            string          `json:"name" validate:"required,min=3,max=100"`
	Code            string          `json:"code" validate:"required,min=2,max=10,code"`
	Description     string          `json:"description" validate:"required,max=500"`
	Address         *models.Address `json:"address"`
	EstablishedYear *int            `json:"establishedYear" validate:"omitempty,min=1800,pastyear"`
	Website         string          `json:"website" validate:"omitempty,website"`
	University      string          `json:"university"`
	Dean            string          `json:"dean"`
}

// UpdateCollegeRequest modifies college fields. Omitted fields are left unchanged.
type UpdateCollegeRequest struct {
	Name            *string         `json:"name" validate:"omitempty,min=3,max=100"`
	Code            *string         `json:"code" validate:"omitempty,min=2,max=10,code"`
	Description     *string         `json:"description" validate:"omitempty,min=1,max=500"`
	Address         *models.Address `json:"address"`
	EstablishedYear *int            `json:"establishedYear" validate:"omitempty,min=1800,pastyear"`
	Website         *string         `json:"website" validate:"omitempty,website"`
	University      *string         `json:"university"`
	Dean            *string         `json:"dean"`
}

// CollegeService handles college workflows.
type CollegeService struct {
	resource[models.College]
	departments departmentCounter
}

// NewCollegeService creates a new college service.
func NewCollegeService(repo entityStore[models.College], departments departmentCounter, validate *validator.Validate, logger *zap.Logger) *CollegeService {
	return &CollegeService{
		resource:    newResource("College", repo, models.CollegeConstraints, models.CollegeExpansions, validate, logger),
		departments: departments,
	}
}

// List returns a page of colleges.
func (s *CollegeService) List(ctx context.Context, spec query.Spec) (*query.Result[*models.College], error) {
	return s.list(ctx, spec)
}

// Get returns a college with its dean and departments populated.
func (s *CollegeService) Get(ctx context.Context, id string) (*models.College, error) {
	return s.get(ctx, id)
}

// Create stores a new college.
func (s *CollegeService) Create(ctx context.Context, req CreateCollegeRequest) (*models.College, error) {
	req.Code = guard.UpperTrim(req.Code)
	if err := s.validate(req); err != nil {
		return nil, err
	}

	college := &models.College{
		Name:            guard.Trim(req.Name),
		Code:            req.Code,
		Description:     req.Description,
		Address:         req.Address,
		EstablishedYear: req.EstablishedYear,
		Website:         req.Website,
		University:      models.NewRef(req.University),
		Dean:            models.NewRef(req.Dean),
	}
	if err := s.create(ctx, college); err != nil {
		return nil, err
	}
	return s.get(ctx, college.ID)
}

// Update applies a partial update. Departments join or leave a college through
// the department endpoints.
func (s *CollegeService) Update(ctx context.Context, id string, req UpdateCollegeRequest) (*models.College, error) {
	college, err := s.load(ctx, id)
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
		college.Name = guard.Trim(*req.Name)
	}
	if req.Code != nil {
		college.Code = *req.Code
	}
	if req.Description != nil {
		college.Description = *req.Description
	}
	if req.Address != nil {
		college.Address = req.Address
	}
	if req.EstablishedYear != nil {
		college.EstablishedYear = req.EstablishedYear
	}
	if req.Website != nil {
		college.Website = *req.Website
	}
	if req.University != nil {
		college.University = models.NewRef(*req.University)
	}
	if req.Dean != nil {
		college.Dean = models.NewRef(*req.Dean)
	}
	if err := s.update(ctx, id, college, sentFields(req)); err != nil {
		return nil, err
	}
	return s.get(ctx, id)
}

// Delete removes a college that no department belongs to any more.
func (s *CollegeService) Delete(ctx context.Context, id string) error {
	if err := guard.ValidateID("id", id); err != nil {
		return err
	}
	n, err := s.departments.CountByCollege(ctx, id)
	if err != nil {
		return appErrors.Ensure(err, "failed to check college departments")
	}
	if n > 0 {
		return appErrors.Clone(appErrors.ErrPreconditionFailed, "Cannot delete college with existing departments")
	}
	return s.remove(ctx, id)
}
