package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/univ-api/internal/models"
	"github.com/noah-isme/univ-api/pkg/guard"
	"github.com/noah-isme/univ-api/pkg/query"
)

// CreateCourseRequest captures fields for creating courses.
type CreateCourseRequest struct {
	Code          string   `json:"code" validate:"required,min=3,max=10,code"`
	Title         string   `json:"title" validate:"required,min=5,max=100"`
	Description   string   `json:"description" validate:"max=500"`
	CreditHours   int      `json:"creditHours" validate:"required,min=1,max=10"`
	IsActive      *bool    `json:"isActive"`
	Department    string   `json:"department" validate:"required"`
	Prerequisites []string `json:"prerequisites"`
	Programs      []string `json:"programs"`
}

// UpdateCourseRequest modifies course fields. Omitted fields are left unchanged.
type UpdateCourseRequest struct {
	Code          *string   `json:"code" validate:"omitempty,min=3,max=10,code"`
	Title         *string   `json:"title" validate:"omitempty,min=5,max=100"`
	Description   *string   `json:"description" validate:"omitempty,max=500"`
	CreditHours   *int      `json:"creditHours" validate:"omitempty,min=1,max=10"`
	IsActive      *bool     `json:"isActive"`
	Department    *string   `json:"department" validate:"omitempty,min=1"`
	Prerequisites *[]string `json:"prerequisites"`
	Programs      *[]string `json:"programs"`
}

// CourseService handles course workflows and keeps program.courses in step with course.programs.
type CourseService struct {
	resource[models.Course]
	sync referenceSyncer
}

// NewCourseService creates a new course service.
func NewCourseService(repo entityStore[models.Course], sync referenceSyncer, validate *validator.Validate, logger *zap.Logger) *CourseService {
	return &CourseService{
		resource: newResource("Course", repo, models.CourseConstraints, models.CourseExpansions, validate, logger),
		sync:     sync,
	}
}

// List returns a page of courses.
func (s *CourseService) List(ctx context.Context, spec query.Spec) (*query.Result[*models.Course], error) {
	return s.list(ctx, spec)
}

// ListByProgram returns the courses attached to programID.
func (s *CourseService) ListByProgram(ctx context.Context, programID string, spec query.Spec) (*query.Result[*models.Course], error) {
	return s.listBy(ctx, "programs", "programId", programID, spec)
}

// Get returns a course with its relations populated.
func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	return s.get(ctx, id)
}

// Create validates and stores a course, then registers it on each listed program.
func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (*models.Course, error) {
	req.Code = guard.UpperTrim(req.Code)
	if err := s.validate(req); err != nil {
		return nil, err
	}

	course := &models.Course{
		Code:          req.Code,
		Title:         req.Title,
		Description:   req.Description,
		CreditHours:   req.CreditHours,
		IsActive:      true,
		Department:    models.NewRef(req.Department),
		Prerequisites: models.NewRefList(req.Prerequisites...),
		Programs:      models.NewRefList(req.Programs...),
	}
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}

	if err := s.create(ctx, course); err != nil {
		return nil, err
	}
	if err := s.sync.Replace(ctx, models.ProgramCoursesMirror, course.ID, course.Programs.IDs()); err != nil {
		return nil, err
	}
	return s.get(ctx, course.ID)
}

// Update applies a partial update. When programs change, the course is pulled from
// programs no longer listed and added to the new ones.
func (s *CourseService) Update(ctx context.Context, id string, req UpdateCourseRequest) (*models.Course, error) {
	course, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Code != nil {
		*req.Code = guard.UpperTrim(*req.Code)
	}
	if err := s.validate(req); err != nil {
		return nil, err
	}

	if req.Code != nil {
		course.Code = *req.Code
	}
	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.CreditHours != nil {
		course.CreditHours = *req.CreditHours
	}
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}
	if req.Department != nil {
		course.Department = models.NewRef(*req.Department)
	}
	if req.Prerequisites != nil {
		course.Prerequisites = models.NewRefList(*req.Prerequisites...)
	}
	if req.Programs != nil {
		course.Programs = models.NewRefList(*req.Programs...)
	}

	if err := s.update(ctx, id, course, sentFields(req)); err != nil {
		return nil, err
	}
	if req.Programs != nil {
		if err := s.sync.Replace(ctx, models.ProgramCoursesMirror, id, course.Programs.IDs()); err != nil {
			return nil, err
		}
	}
	return s.get(ctx, id)
}

// Delete removes a course and strips it from programs, prerequisites and departments.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	if err := s.remove(ctx, id); err != nil {
		return err
	}
	return s.sync.Detach(ctx, id, models.CourseDeleteMirrors...)
}
