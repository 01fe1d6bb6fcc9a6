package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/univ-api/internal/models"
	"github.com/noah-isme/univ-api/pkg/guard"
	"github.com/noah-isme/univ-api/pkg/query"
)

// UniversityRequest captures university fields. Create requires name and code;
// update leaves omitted fields unchanged.
type UniversityRequest struct {
	Name            *string `json:"name" validate:"omitempty,min=2,max=100"`
	Code            *string `json:"code" validate:"omitempty,min=2,max=10,code"`
	Website         *string `json:"website" validate:"omitempty,website"`
	Phone           *string `json:"phone" validate:"omitempty,phone"`
	Location        *string `json:"location" validate:"omitempty,max=100"`
	EstablishedYear *int    `json:"establishedYear" validate:"omitempty,min=1800,pastyear"`
}

// UniversityService handles university workflows.
type UniversityService struct {
	resource[models.University]
}

// NewUniversityService creates a new university service.
func NewUniversityService(repo entityStore[models.University], validate *validator.Validate, logger *zap.Logger) *UniversityService {
	return &UniversityService{
		resource: newResource("University", repo, models.UniversityConstraints, nil, validate, logger),
	}
}

// List returns a page of universities.
func (s *UniversityService) List(ctx context.Context, spec query.Spec) (*query.Result[*models.University], error) {
	return s.list(ctx, spec)
}

// Get returns a university by id.
func (s *UniversityService) Get(ctx context.Context, id string) (*models.University, error) {
	return s.get(ctx, id)
}

// Create stores a new university.
func (s *UniversityService) Create(ctx context.Context, req UniversityRequest) (*models.University, error) {
	if req.Name == nil || req.Code == nil {
		return nil, s.required(map[string]bool{"name": req.Name == nil, "code": req.Code == nil})
	}
	uni := &models.University{}
	if err := s.apply(uni, req); err != nil {
		return nil, err
	}
	if err := s.create(ctx, uni); err != nil {
		return nil, err
	}
	return uni, nil
}

// Update applies a partial update.
func (s *UniversityService) Update(ctx context.Context, id string, req UniversityRequest) (*models.University, error) {
	uni, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(uni, req); err != nil {
		return nil, err
	}
	if err := s.update(ctx, id, uni, sentFields(req)); err != nil {
		return nil, err
	}
	return uni, nil
}

// Delete removes a university.
func (s *UniversityService) Delete(ctx context.Context, id string) error {
	return s.remove(ctx, id)
}

func (s *UniversityService) apply(uni *models.University, req UniversityRequest) error {
	if req.Code != nil {
		*req.Code = guard.UpperTrim(*req.Code)
	}
	if req.Name != nil {
		*req.Name = guard.Trim(*req.Name)
	}
	if err := s.validate(req); err != nil {
		return err
	}
	if req.Name != nil {
		uni.Name = *req.Name
	}
	if req.Code != nil {
		uni.Code = *req.Code
	}
	if req.Website != nil {
		uni.Website = *req.Website
	}
	if req.Phone != nil {
		uni.Phone = *req.Phone
	}
	if req.Location != nil {
		uni.Location = *req.Location
	}
	if req.EstablishedYear != nil {
		uni.EstablishedYear = req.EstablishedYear
	}
	return nil
}
