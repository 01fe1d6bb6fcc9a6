package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/univ-api/internal/models"
	"github.com/noah-isme/univ-api/internal/service"
	"github.com/noah-isme/univ-api/pkg/query"
)

type programService interface {
	List(ctx context.Context, spec query.Spec) (*query.Result[*models.Program], error)
	ListByDepartment(ctx context.Context, departmentID string, spec query.Spec) (*query.Result[*models.Program], error)
	Get(ctx context.Context, id string) (*models.Program, error)
	Create(ctx context.Context, req service.CreateProgramRequest) (*models.Program, error)
	Update(ctx context.Context, id string, req service.UpdateProgramRequest) (*models.Program, error)
	Delete(ctx context.Context, id string) error
}

// ProgramHandler exposes academic program endpoints.
type ProgramHandler struct {
	service programService
}

// NewProgramHandler builds a program handler.
func NewProgramHandler(svc programService) *ProgramHandler {
	return &ProgramHandler{service: svc}
}

// List godoc
// @Summary List programs
// @Tags Programs
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param sort query string false "Sort keys"
// @Param fields query string false "Projected fields"
// @Success 200 {object} response.ListEnvelope
// @Router /programs [get]
func (h *ProgramHandler) List(c *gin.Context) {
	listWith(c, h.service.List)
}

// ListByDepartment godoc
// @Summary List programs offered by a department
// @Tags Programs
// @Produce json
// @Param departmentId path string true "Department ID"
// @Success 200 {object} response.ListEnvelope
// @Router /programs/departments/{departmentId} [get]
func (h *ProgramHandler) ListByDepartment(c *gin.Context) {
	departmentID := c.Param("departmentId")
	listWith(c, func(ctx context.Context, spec query.Spec) (*query.Result[*models.Program], error) {
		return h.service.ListByDepartment(ctx, departmentID, spec)
	})
}

// Get godoc
// @Summary Get program
// @Tags Programs
// @Produce json
// @Param id path string true "Program ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /programs/{id} [get]
func (h *ProgramHandler) Get(c *gin.Context) {
	getWith(c, h.service.Get)
}

// Create godoc
// @Summary Create program
// @Description Listed courses gain the program in their programs list
// @Tags Programs
// @Accept json
// @Produce json
// @Param payload body service.CreateProgramRequest true "Program payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /programs [post]
func (h *ProgramHandler) Create(c *gin.Context) {
	createWith(c, "program", h.service.Create)
}

// Update godoc
// @Summary Update program
// @Tags Programs
// @Accept json
// @Produce json
// @Param id path string true "Program ID"
// @Param payload body service.UpdateProgramRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /programs/{id} [patch]
func (h *ProgramHandler) Update(c *gin.Context) {
	updateWith(c, "program", h.service.Update)
}

// Delete godoc
// @Summary Delete program
// @Tags Programs
// @Param id path string true "Program ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /programs/{id} [delete]
func (h *ProgramHandler) Delete(c *gin.Context) {
	deleteWith(c, "Program", h.service.Delete)
}
