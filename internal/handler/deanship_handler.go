package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/univ-api/internal/models"
	"github.com/noah-isme/univ-api/internal/service"
	"github.com/noah-isme/univ-api/pkg/query"
)

type deanshipService interface {
	List(ctx context.Context, spec query.Spec) (*query.Result[*models.Deanship], error)
	Get(ctx context.Context, id string) (*models.Deanship, error)
	Create(ctx context.Context, req service.DeanshipRequest) (*models.Deanship, error)
	Update(ctx context.Context, id string, req service.DeanshipRequest) (*models.Deanship, error)
	Delete(ctx context.Context, id string) error
}

// DeanshipHandler exposes dean appointment endpoints.
type DeanshipHandler struct {
	service deanshipService
}

func NewDeanshipHandler(svc deanshipService) *DeanshipHandler {
	return &DeanshipHandler{service: svc}
}

// List godoc
// @Summary List deanships
// @Tags Deanships
// @Produce json
// @Success 200 {object} response.ListEnvelope
// @Router /deanships [get]
func (h *DeanshipHandler) List(c *gin.Context) {
	listWith(c, h.service.List)
}

// Get godoc
// @Summary Get deanship
// @Tags Deanships
// @Produce json
// @Param id path string true "Deanship ID"
// @Success 200 {object} response.Envelope
// @Router /deanships/{id} [get]
func (h *DeanshipHandler) Get(c *gin.Context) {
	getWith(c, h.service.Get)
}

// Create godoc
// @Summary Appoint a dean
// @Tags Deanships
// @Accept json
// @Produce json
// @Param payload body service.DeanshipRequest true "Deanship payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /deanships [post]
func (h *DeanshipHandler) Create(c *gin.Context) {
	createWith(c, "deanship", h.service.Create)
}

// Update godoc
// @Summary Update deanship
// @Tags Deanships
// @Accept json
// @Produce json
// @Param id path string true "Deanship ID"
// @Param payload body service.DeanshipRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /deanships/{id} [patch]
func (h *DeanshipHandler) Update(c *gin.Context) {
	updateWith(c, "deanship", h.service.Update)
}

// Delete godoc
// @Summary Delete deanship
// @Tags Deanships
// @Param id path string true "Deanship ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /deanships/{id} [delete]
func (h *DeanshipHandler) Delete(c *gin.Context) {
	deleteWith(c, "Deanship", h.service.Delete)
}
