package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/univ-api/internal/models"
	"github.com/noah-isme/univ-api/pkg/guard"
	"github.com/noah-isme/univ-api/pkg/query"
)

// CreateProgramRequest captures fields for creating programs.
type CreateProgramRequest struct {
	Name          string             `json:"name" validate:"required,min=3,max=100,alnumspace"`
	Code          string             `json:"code" validate:"required,min=2,max=10,code"`
	Type          models.ProgramType `json:"type" validate:"omitempty,oneof=Diploma Bachelor Master PhD"`
	DurationYears *int               `json:"durationYears" validate:"omitempty,min=1,max=10"`
	College       string             `json:"college" validate:"required"`
	Department    string             `json:"department"`
	Courses       []string           `json:"courses"`
}

// UpdateProgramRequest modifies program fields. Omitted fields are left unchanged.
type UpdateProgramRequest struct {
	Name          *string             `json:"name" validate:"omitempty,min=3,max=100,alnumspace"`
	Code          *string             `json:"code" validate:"omitempty,min=2,max=10,code"`
	Type          *models.ProgramType `json:"type" validate:"omitempty,oneof=Diploma Bachelor Master PhD"`
	DurationYears *int                `json:"durationYears" validate:"omitempty,min=1,max=10"`
	College       *string             `json:"college" validate:"omitempty,min=1"`
	Department    *string             `json:"department"`
	Courses       *[]string           `json:"courses"`
}

// ProgramService handles program workflows and keeps course.programs in step with program.courses.
type ProgramService struct {
	resource[models.Program]
	sync referenceSyncer
}

// NewProgramService creates a new program service.
func NewProgramService(repo entityStore[models.Program], sync referenceSyncer, validate *validator.Validate, logger *zap.Logger) *ProgramService {
	return &ProgramService{
		resource: newResource("Program", repo, models.ProgramConstraints, models.ProgramExpansions, validate, logger),
		sync:     sync,
	}
}

// List returns a page of programs.
func (s *ProgramService) List(ctx context.Context, spec query.Spec) (*query.Result[*models.Program], error) {
	return s.list(ctx, spec)
}

// ListByDepartment returns the programs run by departmentID.
func (s *ProgramService) ListByDepartment(ctx context.Context, departmentID string, spec query.Spec) (*query.Result[*models.Program], error) {
	return s.listBy(ctx, "department", "departmentId", departmentID, spec)
}

// Get returns a program with its relations populated.
func (s *ProgramService) Get(ctx context.Context, id string) (*models.Program, error) {
	return s.get(ctx, id)
}

// Create validates and stores a program, then registers it on each listed course.
func (s *ProgramService) Create(ctx context.Context, req CreateProgramRequest) (*models.Program, error) {
	req.Code = guard.UpperTrim(req.Code)
	req.Name = guard.Trim(req.Name)
	if err := s.validate(req); err != nil {
		return nil, err
	}

	program := &models.Program{
		Name:          req.Name,
		Code:          req.Code,
		Type:          req.Type,
		DurationYears: models.DefaultProgramDuration,
		College:       models.NewRef(req.College),
		Department:    models.NewRef(req.Department),
		Courses:       models.NewRefList(req.Courses...),
	}
	if program.Type == "" {
		program.Type = models.ProgramBachelor
	}
	if req.DurationYears != nil {
		program.DurationYears = *req.DurationYears
	}

	if err := s.create(ctx, program); err != nil {
		return nil, err
	}
	if err := s.sync.Replace(ctx, models.CourseProgramsMirror, program.ID, program.Courses.IDs()); err != nil {
		return nil, err
	}
	return s.get(ctx, program.ID)
}

// Update applies a partial update, resynchronizing course.programs when courses change.
func (s *ProgramService) Update(ctx context.Context, id string, req UpdateProgramRequest) (*models.Program, error) {
	program, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Code != nil {
		*req.Code = guard.UpperTrim(*req.Code)
	}
	if req.Name != nil {
		*req.Name = guard.Trim(*req.Name)
	}
	if err := s.validate(req); err != nil {
		return nil, err
	}

	if req.Name != nil {
		program.Name = *req.Name
	}
	if req.Code != nil {
		program.Code = *req.Code
	}
	if req.Type != nil {
		program.Type = *req.Type
	}
	if req.DurationYears != nil {
		program.DurationYears = *req.DurationYears
	}
	if req.College != nil {
		program.College = models.NewRef(*req.College)
	}
	if req.Department != nil {
		program.Department = models.NewRef(*req.Department)
	}
	if req.Courses != nil {
		program.Courses = models.NewRefList(*req.Courses...)
	}

	if err := s.update(ctx, id, program, sentFields(req)); err != nil {
		return nil, err
	}
	if req.Courses != nil {
		if err := s.sync.Replace(ctx, models.CourseProgramsMirror, id, program.Courses.IDs()); err != nil {
			return nil, err
		}
	}
	return s.get(ctx, id)
}

// Delete removes a program and pulls it from every course.
func (s *ProgramService) Delete(ctx context.Context, id string) error {
	if err := s.remove(ctx, id); err != nil {
		return err
	}
	return s.sync.Detach(ctx, id, models.ProgramDeleteMirrors...)
}
