package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/univ-api/internal/models"
	"github.com/noah-isme/univ-api/internal/service"
	"github.com/noah-isme/univ-api/pkg/query"
)

type collegeService interface {
	List(ctx context.Context, spec query.Spec) (*query.Result[*models.College], error)
	Get(ctx context.Context, id string) (*models.College, error)
	Create(ctx context.Context, req service.CreateCollegeRequest) (*models.College, error)
	Update(ctx context.Context, id string, req service.UpdateCollegeRequest) (*models.College, error)
	Delete(ctx context.Context, id string) error
}

// CollegeHandler exposes college endpoints.
type CollegeHandler struct {
	service collegeService
}

// NewCollegeHandler builds a college handler.
func NewCollegeHandler(svc collegeService) *CollegeHandler {
	return &CollegeHandler{service: svc}
}

// List godoc
// @Summary List colleges
// @Tags Colleges
// @Produce json
// @Success 200 {object} response.ListEnvelope
// @Router /colleges [get]
func (h *CollegeHandler) List(c *gin.Context) {
	listWith(c, h.service.List)
}

// Get godoc
// @Summary Get college
// @Tags Colleges
// @Produce json
// @Param id path string true "College ID"
// @Success 200 {object} response.Envelope
// @Router /colleges/{id} [get]
func (h *CollegeHandler) Get(c *gin.Context) {
	getWith(c, h.service.Get)
}

// Create godoc
// @Summary Create college
// @Tags Colleges
// @Accept json
// @Produce json
// @Param payload body service.CreateCollegeRequest true "College payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /colleges [post]
func (h *CollegeHandler) Create(c *gin.Context) {
	createWith(c, "college", h.service.Create)
}

// Update godoc
// @Summary Update college
// @Tags Colleges
// @Accept json
// @Produce json
// @Param id path string true "College ID"
// @Param payload body service.UpdateCollegeRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /colleges/{id} [patch]
func (h *CollegeHandler) Update(c *gin.Context) {
	updateWith(c, "college", h.service.Update)
}

// Delete godoc
// @Summary Delete college
// @Description Refused with 412 while departments still belong to the college
// @Tags Colleges
// @Param id path string true "College ID"
// @Success 200 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Security BearerAuth
// @Router /colleges/{id} [delete]
func (h *CollegeHandler) Delete(c *gin.Context) {
	deleteWith(c, "College", h.service.Delete)
}
