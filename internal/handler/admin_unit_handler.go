package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/univ-api/internal/models"
	"github.com/noah-isme/univ-api/internal/service"
	"github.com/noah-isme/univ-api/pkg/query"
)

type adminUnitService interface {
	List(ctx context.Context, spec query.Spec) (*query.Result[*models.AdminUnit], error)
	Get(ctx context.Context, id string) (*models.AdminUnit, error)
	Create(ctx context.Context, req service.AdminUnitRequest) (*models.AdminUnit, error)
	Update(ctx context.Context, id string, req service.AdminUnitRequest) (*models.AdminUnit, error)
	Delete(ctx context.Context, id string) error
}

// AdminUnitHandler exposes administrative unit endpoints.
type AdminUnitHandler struct {
	service adminUnitService
}

func NewAdminUnitHandler(svc adminUnitService) *AdminUnitHandler {
	return &AdminUnitHandler{service: svc}
}

// List godoc
// @Summary List administrative units
// @Tags AdminUnits
// @Produce json
// @Success 200 {object} response.ListEnvelope
// @Router /admin-units [get]
func (h *AdminUnitHandler) List(c *gin.Context) {
	listWith(c, h.service.List)
}

// Get godoc
// @Summary Get administrative unit
// @Tags AdminUnits
// @Produce json
// @Param id path string true "Unit ID"
// @Success 200 {object} response.Envelope
// @Router /admin-units/{id} [get]
func (h *AdminUnitHandler) Get(c *gin.Context) {
	getWith(c, h.service.Get)
}

// Create godoc
// @Summary Create administrative unit
// @Description Exactly one of college or university must be set
// @Tags AdminUnits
// @Accept json
// @Produce json
// @Param payload body service.AdminUnitRequest true "Unit payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /admin-units [post]
func (h *AdminUnitHandler) Create(c *gin.Context) {
	createWith(c, "administrative unit", h.service.Create)
}

// Update godoc
// @Summary Update administrative unit
// @Tags AdminUnits
// @Accept json
// @Produce json
// @Param id path string true "Unit ID"
// @Param payload body service.AdminUnitRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin-units/{id} [patch]
func (h *AdminUnitHandler) Update(c *gin.Context) {
	updateWith(c, "administrative unit", h.service.Update)
}

// Delete godoc
// @Summary Delete administrative unit
// @Tags AdminUnits
// @Param id path string true "Unit ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin-units/{id} [delete]
func (h *AdminUnitHandler) Delete(c *gin.Context) {
	deleteWith(c, "Administrative unit", h.service.Delete)
}
