package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/univ-api/internal/models"
	"github.com/noah-isme/univ-api/pkg/guard"
	"github.com/noah-isme/univ-api/pkg/query"
)

// AdminUnitRequest captures admin unit fields. Create requires a name and exactly
// one of college or university. An empty string clears a relation on update.
type AdminUnitRequest struct {
	Name        *string   `json:"name" validate:"omitempty,min=3,max=20,alphaspace"`
	Description *string   `json:"description" validate:"omitempty,min=3,max=500"`
	Staff       *[]string `json:"staff"`
	College     *string   `json:"college"`
	University  *string   `json:"university"`
}

// AdminUnitService handles admin unit workflows.
type AdminUnitService struct {
	resource[models.AdminUnit]
}

// NewAdminUnitService creates a new admin unit service.
func NewAdminUnitService(repo entityStore[models.AdminUnit], validate *validator.Validate, logger *zap.Logger) *AdminUnitService {
	return &AdminUnitService{
		resource: newResource("Admin unit", repo, models.AdminUnitConstraints, models.AdminUnitExpansions, validate, logger),
	}
}

// List returns a page of admin units.
func (s *AdminUnitService) List(ctx context.Context, spec query.Spec) (*query.Result[*models.AdminUnit], error) {
	return s.list(ctx, spec)
}

// Get returns an admin unit with staff and owner populated.
func (s *AdminUnitService) Get(ctx context.Context, id string) (*models.AdminUnit, error) {
	return s.get(ctx, id)
}

// Create stores an admin unit.
func (s *AdminUnitService) Create(ctx context.Context, req AdminUnitRequest) (*models.AdminUnit, error) {
	if req.Name == nil {
		return nil, s.required(map[string]bool{"name": true})
	}
	unit := &models.AdminUnit{}
	if err := s.apply(unit, req); err != nil {
		return nil, err
	}
	if err := s.create(ctx, unit); err != nil {
		return nil, err
	}
	return s.get(ctx, unit.ID)
}

// Update applies a partial update. The exclusivity rule is checked on the merged unit.
func (s *AdminUnitService) Update(ctx context.Context, id string, req AdminUnitRequest) (*models.AdminUnit, error) {
	unit, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(unit, req); err != nil {
		return nil, err
	}
	if err := s.update(ctx, id, unit, sentFields(req)); err != nil {
		return nil, err
	}
	return s.get(ctx, id)
}

// Delete removes an admin unit.
func (s *AdminUnitService) Delete(ctx context.Context, id string) error {
	return s.remove(ctx, id)
}

func (s *AdminUnitService) apply(unit *models.AdminUnit, req AdminUnitRequest) error {
	if err := s.validate(req); err != nil {
		return err
	}
	if req.Name != nil {
		unit.Name = guard.Trim(*req.Name)
	}
	if req.Description != nil {
		unit.Description = *req.Description
	}
	if req.Staff != nil {
		unit.Staff = models.NewRefList(*req.Staff...)
	}
	if req.College != nil {
		unit.College = models.NewRef(guard.Trim(*req.College))
	}
	if req.University != nil {
		unit.University = models.NewRef(guard.Trim(*req.University))
	}
	return nil
}
