package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/univ-api/internal/models"
	"github.com/noah-isme/univ-api/pkg/guard"
	"github.com/noah-isme/univ-api/pkg/query"
)

// UpdateUserRequest payload for updating users. Passwords change through the auth flows.
type UpdateUserRequest struct {
	Firstname  *string          `json:"firstname" validate:"omitempty,min=3,max=20,alphaspace"`
	Lastname   *string          `json:"lastname" validate:"omitempty,min=3,max=20,alphaspace"`
	Email      *string          `json:"email" validate:"omitempty,email"`
	Phone      *string          `json:"phone" validate:"omitempty,min=10,max=15"`
	Role       *models.UserRole `json:"role" validate:"omitempty,oneof=STUDENT ADMIN PROFESSOR FACULTY"`
	IsVerified *bool            `json:"isVerified"`
}

// UserService handles user management workflows.
type UserService struct {
	resource[models.User]
	sync referenceSyncer
}

// NewUserService creates an instance of UserService.
func NewUserService(repo entityStore[models.User], sync referenceSyncer, validate *validator.Validate, logger *zap.Logger) *UserService {
	return &UserService{
		resource: newResource("User", repo, models.UserConstraints, nil, validate, logger),
		sync:     sync,
	}
}

// List returns a page of users.
func (s *UserService) List(ctx context.Context, spec query.Spec) (*query.Result[*models.User], error) {
	return s.list(ctx, spec)
}

// Get returns a user by ID.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.get(ctx, id)
}

// Update modifies the user attributes.
func (s *UserService) Update(ctx context.Context, id string, req UpdateUserRequest) (*models.User, error) {
	if req.Email != nil {
		*req.Email = guard.Lower(*req.Email)
	}
	if err := s.validate(req); err != nil {
		return nil, err
	}
	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Firstname != nil {
		user.Firstname = guard.Trim(*req.Firstname)
	}
	if req.Lastname != nil {
		user.Lastname = guard.Trim(*req.Lastname)
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Phone != nil {
		user.Phone = guard.Trim(*req.Phone)
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.IsVerified != nil {
		user.IsVerified = *req.IsVerified
	}

	if err := s.update(ctx, id, user, sentFields(req)); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user and drops them from admin unit staff lists.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.remove(ctx, id); err != nil {
		return err
	}
	return s.sync.Detach(ctx, id, models.UserDeleteMirrors...)
}
