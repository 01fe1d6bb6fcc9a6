package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/univ-api/internal/models"
	appErrors "github.com/noah-isme/univ-api/pkg/errors"
	"github.com/noah-isme/univ-api/pkg/query"
)

// DeanshipRequest captures deanship fields. Create requires dean and college.
type DeanshipRequest struct {
	Dean      *string    `json:"dean" validate:"omitempty,min=1"`
	College   *string    `json:"college" validate:"omitempty,min=1"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

// DeanshipService handles deanship workflows.
type DeanshipService struct {
	resource[models.Deanship]
	now func() time.Time
}

// NewDeanshipService creates a new deanship service.
func NewDeanshipService(repo entityStore[models.Deanship], validate *validator.Validate, logger *zap.Logger) *DeanshipService {
	return &DeanshipService{
		resource: newResource("Deanship", repo, models.DeanshipConstraints, models.DeanshipExpansions, validate, logger),
		now:      time.Now,
	}
}

// List returns a page of deanships.
func (s *DeanshipService) List(ctx context.Context, spec query.Spec) (*query.Result[*models.Deanship], error) {
	return s.list(ctx, spec)
}

// Get returns a deanship with dean and college populated.
func (s *DeanshipService) Get(ctx context.Context, id string) (*models.Deanship, error) {
	return s.get(ctx, id)
}

// Create stores a deanship. The start date defaults to now.
func (s *DeanshipService) Create(ctx context.Context, req DeanshipRequest) (*models.Deanship, error) {
	if req.Dean == nil || req.College == nil {
		return nil, s.required(map[string]bool{"dean": req.Dean == nil, "college": req.College == nil})
	}
	d := &models.Deanship{StartDate: s.now().UTC()}
	if err := s.apply(d, req); err != nil {
		return nil, err
	}
	if err := s.create(ctx, d); err != nil {
		return nil, err
	}
	return s.get(ctx, d.ID)
}

// Update applies a partial update.
func (s *DeanshipService) Update(ctx context.Context, id string, req DeanshipRequest) (*models.Deanship, error) {
	d, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(d, req); err != nil {
		return nil, err
	}
	if err := s.update(ctx, id, d, sentFields(req)); err != nil {
		return nil, err
	}
	return s.get(ctx, id)
}

// Delete removes a deanship.
func (s *DeanshipService) Delete(ctx context.Context, id string) error {
	return s.remove(ctx, id)
}

func (s *DeanshipService) apply(d *models.Deanship, req DeanshipRequest) error {
	if err := s.validate(req); err != nil {
		return err
	}
	if req.Dean != nil {
		d.Dean = models.NewRef(*req.Dean)
	}
	if req.College != nil {
		d.College = models.NewRef(*req.College)
	}
	if req.StartDate != nil {
		d.StartDate = req.StartDate.UTC()
	}
	if req.EndDate != nil {
		end := req.EndDate.UTC()
		d.EndDate = &end
	}
	if d.EndDate != nil && d.EndDate.Before(d.StartDate) {
		return appErrors.Validation("invalid deanship payload",
			appErrors.FieldError{Field: "endDate", Message: "must not be before startDate"})
	}
	return nil
}
