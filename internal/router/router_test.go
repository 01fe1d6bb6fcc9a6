package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/univ-api/internal/handler"
	"github.com/noah-isme/univ-api/internal/models"
	"github.com/noah-isme/univ-api/internal/service"
	appErrors "github.com/noah-isme/univ-api/pkg/errors"
	"github.com/noah-isme/univ-api/pkg/query"
	"github.com/noah-isme/univ-api/pkg/ratelimit"
)

type tokens map[string]*models.JWTClaims

func (t tokens) ValidateToken(token string) (*models.JWTClaims, error) {
	if claims, ok := t[token]; ok {
		return claims, nil
	}
	return nil, appErrors.ErrUnauthorized
}

type courses struct {
	byProgram string
	created   bool
}

func (c *courses) List(_ context.Context, spec query.Spec) (*query.Result[*models.Course], error) {
	return &query.Result[*models.Course]{Page: spec.Page, Limit: spec.Limit}, nil
}

func (c *courses) ListByProgram(ctx context.Context, programID string, spec query.Spec) (*query.Result[*models.Course], error) {
	c.byProgram = programID
	return c.List(ctx, spec)
}

func (c *courses) Get(_ context.Context, id string) (*models.Course, error) {
	return &models.Course{ID: id}, nil
}

func (c *courses) Create(context.Context, service.CreateCourseRequest) (*models.Course, error) {
	c.created = true
	return &models.Course{ID: "new"}, nil
}

func (c *courses) Update(_ context.Context, id string, _ service.UpdateCourseRequest) (*models.Course, error) {
	return &models.Course{ID: id}, nil
}

func (c *courses) Delete(context.Context, string) error { return nil }

type audits struct{ n int }

func (a *audits) CreateAuditLog(context.Context, *models.AuditLog) error {
	a.n++
	return nil
}

func newTestRouter(t *testing.T, svc *courses, audit *audits, probes map[string]handler.Probe) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return New(Options{
		Env:       "test",
		APIPrefix: "/api",
		Tokens: tokens{
			"admin":   {UserID: "a", Role: models.RoleAdmin},
			"student": {UserID: "s", Role: models.RoleStudent},
		},
		Audit:   audit,
		Metrics: service.NewMetricsService(),
		Limiter: ratelimit.NewLocalLimiter(2, time.Minute),
	}, Handlers{
		Auth:         handler.NewAuthHandler(nil, nil),
		Users:        handler.NewUserHandler(nil),
		Universities: handler.NewUniversityHandler(nil),
		Colleges:     handler.NewCollegeHandler(nil),
		Departments:  handler.NewDepartmentHandler(nil),
		Programs:     handler.NewProgramHandler(nil),
		Courses:      handler.NewCourseHandler(svc),
		AdminUnits:   handler.NewAdminUnitHandler(nil),
		Deanships:    handler.NewDeanshipHandler(nil),
		Ops:          handler.NewMetricsHandler(service.NewMetricsService(), probes),
	})
}

func call(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestReadsArePublic(t *testing.T) {
	svc := &courses{}
	r := newTestRouter(t, svc, &audits{}, nil)

	assert.Equal(t, http.StatusOK, call(r, http.MethodGet, "/api/courses", "").Code)
	assert.Equal(t, http.StatusOK, call(r, http.MethodGet, "/api/courses/c1", "").Code)
	assert.Equal(t, http.StatusOK, call(r, http.MethodGet, "/api/courses/programs/p1", "").Code)
	assert.Equal(t, "p1", svc.byProgram)
}

func TestWritesRequireManagerRole(t *testing.T) {
	svc := &courses{}
	audit := &audits{}
	r := newTestRouter(t, svc, audit, nil)

	assert.Equal(t, http.StatusUnauthorized, call(r, http.MethodDelete, "/api/courses/c1", "").Code)
	assert.Equal(t, http.StatusForbidden, call(r, http.MethodDelete, "/api/courses/c1", "student").Code)
	assert.Equal(t, 0, audit.n)

	w := call(r, http.MethodDelete, "/api/courses/c1", "admin")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, audit.n)
}

func TestUnknownRouteUsesErrorEnvelope(t *testing.T) {
	w := call(newTestRouter(t, &courses{}, &audits{}, nil), http.MethodGet, "/api/nowhere", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"fail"`)
}

func TestOpsEndpoints(t *testing.T) {
	probes := map[string]handler.Probe{
		"postgres": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("connection refused") },
	}
	r := newTestRouter(t, &courses{}, &audits{}, probes)

	assert.Equal(t, http.StatusOK, call(r, http.MethodGet, "/health", "").Code)

	w := call(r, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")

	w = call(r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
