package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/univ-api/internal/models"
	"github.com/noah-isme/univ-api/internal/service"
	"github.com/noah-isme/univ-api/pkg/query"
)

type departmentService interface {
	List(ctx context.Context, spec query.Spec) (*query.Result[*models.Department], error)
	ListByCollege(ctx context.Context, collegeID string, spec query.Spec) (*query.Result[*models.Department], error)
	Get(ctx context.Context, id string) (*models.Department, error)
	Create(ctx context.Context, req service.CreateDepartmentRequest) (*models.Department, error)
	Update(ctx context.Context, id string, req service.UpdateDepartmentRequest) (*models.Department, error)
	Delete(ctx context.Context, id string) error
}

// DepartmentHandler exposes department endpoints.
type DepartmentHandler struct {
	service departmentService
}

func NewDepartmentHandler(svc departmentService) *DepartmentHandler {
	return &DepartmentHandler{service: svc}
}

// List godoc
// @Summary List departments
// @Tags Departments
// @Produce json
// @Success 200 {object} response.ListEnvelope
// @Router /departments [get]
func (h *DepartmentHandler) List(c *gin.Context) {
	listWith(c, h.service.List)
}

// ListByCollege godoc
// @Summary List departments of a college
// @Tags Departments
// @Produce json
// @Param collegeId path string true "College ID"
// @Success 200 {object} response.ListEnvelope
// @Router /departments/colleges/{collegeId} [get]
func (h *DepartmentHandler) ListByCollege(c *gin.Context) {
	collegeID := c.Param("collegeId")
	listWith(c, func(ctx context.Context, spec query.Spec) (*query.Result[*models.Department], error) {
		return h.service.ListByCollege(ctx, collegeID, spec)
	})
}

// Get godoc
// @Summary Get department
// @Tags Departments
// @Produce json
// @Param id path string true "Department ID"
// @Success 200 {object} response.Envelope
// @Router /departments/{id} [get]
func (h *DepartmentHandler) Get(c *gin.Context) {
	getWith(c, h.service.Get)
}

// Create godoc
// @Summary Create department
// @Description The owning college lists the new department
// @Tags Departments
// @Accept json
// @Produce json
// @Param payload body service.CreateDepartmentRequest true "Department payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /departments [post]
func (h *DepartmentHandler) Create(c *gin.Context) {
	createWith(c, "department", h.service.Create)
}

// Update godoc
// @Summary Update department
// @Tags Departments
// @Accept json
// @Produce json
// @Param id path string true "Department ID"
// @Param payload body service.UpdateDepartmentRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /departments/{id} [patch]
func (h *DepartmentHandler) Update(c *gin.Context) {
	updateWith(c, "department", h.service.Update)
}

// Delete godoc
// @Summary Delete department
// @Tags Departments
// @Param id path string true "Department ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /departments/{id} [delete]
func (h *DepartmentHandler) Delete(c *gin.Context) {
	deleteWith(c, "Department", h.service.Delete)
}
