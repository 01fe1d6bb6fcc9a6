package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/univ-api/internal/models"
	"github.com/noah-isme/univ-api/internal/service"
	"github.com/noah-isme/univ-api/pkg/query"
)

type universityService interface {
	List(ctx context.Context, spec query.Spec) (*query.Result[*models.University], error)
	Get(ctx context.Context, id string) (*models.University, error)
	Create(ctx context.Context, req service.UniversityRequest) (*models.University, error)
	Update(ctx context.Context, id string, req service.UniversityRequest) (*models.University, error)
	Delete(ctx context.Context, id string) error
}

// UniversityHandler exposes university endpoints.
type UniversityHandler struct {
	service universityService
}

// NewUniversityHandler builds a university handler.
func NewUniversityHandler(svc universityService) *UniversityHandler {
	return &UniversityHandler{service: svc}
}

// List godoc
// @Summary List universities
// @Tags Universities
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.ListEnvelope
// @Router /universities [get]
func (h *UniversityHandler) List(c *gin.Context) {
	listWith(c, h.service.List)
}

// Get godoc
// @Summary Get university
// @Tags Universities
// @Produce json
// @Param id path string true "University ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /universities/{id} [get]
func (h *UniversityHandler) Get(c *gin.Context) {
	getWith(c, h.service.Get)
}

// Create godoc
// @Summary Create university
// @Tags Universities
// @Accept json
// @Produce json
// @Param payload body service.UniversityRequest true "University payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /universities [post]
func (h *UniversityHandler) Create(c *gin.Context) {
	createWith(c, "university", h.service.Create)
}

// Update godoc
// @Summary Update university
// @Tags Universities
// @Accept json
// @Produce json
// @Param id path string true "University ID"
// @Param payload body service.UniversityRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /universities/{id} [patch]
func (h *UniversityHandler) Update(c *gin.Context) {
	updateWith(c, "university", h.service.Update)
}

// Delete godoc
// @Summary Delete university
// @Tags Universities
// @Param id path string true "University ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /universities/{id} [delete]
func (h *UniversityHandler) Delete(c *gin.Context) {
	deleteWith(c, "University", h.service.Delete)
}
