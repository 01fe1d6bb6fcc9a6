package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/univ-api/internal/models"
	"github.com/noah-isme/univ-api/internal/service"
	"github.com/noah-isme/univ-api/pkg/query"
)

type courseService interface {
	List(ctx context.Context, spec query.Spec) (*query.Result[*models.Course], error)
	ListByProgram(ctx context.Context, programID string, spec query.Spec) (*query.Result[*models.Course], error)
	Get(ctx context.Context, id string) (*models.Course, error)
	Create(ctx context.Context, req service.CreateCourseRequest) (*models.Course, error)
	Update(ctx context.Context, id string, req service.UpdateCourseRequest) (*models.Course, error)
	Delete(ctx context.Context, id string) error
}

// CourseHandler exposes course endpoints.
type CourseHandler struct {
	service courseService
}

// NewCourseHandler builds a course handler.
func NewCourseHandler(svc courseService) *CourseHandler {
	return &CourseHandler{service: svc}
}

// List godoc
// @Summary List courses
// @Description Filter with field[op]=value (gt, gte, lt, lte, ne, in), sort=-code,title, fields=code,title, page and limit
// @Tags Courses
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param sort query string false "Sort keys, prefix with - for descending"
// @Param fields query string false "Projected fields"
// @Success 200 {object} response.ListEnvelope
// @Failure 404 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	listWith(c, h.service.List)
}

// ListByProgram godoc
// @Summary List courses of a program
// @Tags Courses
// @Produce json
// @Param programId path string true "Program ID"
// @Success 200 {object} response.ListEnvelope
// @Failure 400 {object} response.Envelope
// @Router /courses/programs/{programId} [get]
func (h *CourseHandler) ListByProgram(c *gin.Context) {
	programID := c.Param("programId")
	listWith(c, func(ctx context.Context, spec query.Spec) (*query.Result[*models.Course], error) {
		return h.service.ListByProgram(ctx, programID, spec)
	})
}

// Get godoc
// @Summary Get course
// @Description Department, prerequisites and programs are populated
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/{id} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	getWith(c, h.service.Get)
}

// Create godoc
// @Summary Create course
// @Description Listed programs gain the course in their courses list
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body service.CreateCourseRequest true "Course payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	createWith(c, "course", h.service.Create)
}

// Update godoc
// @Summary Update course
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body service.UpdateCourseRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /courses/{id} [patch]
func (h *CourseHandler) Update(c *gin.Context) {
	updateWith(c, "course", h.service.Update)
}

// Delete godoc
// @Summary Delete course
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /courses/{id} [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
	deleteWith(c, "Course", h.service.Delete)
}
