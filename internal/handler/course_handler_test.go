package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/univ-api/internal/models"
	"github.com/noah-isme/univ-api/internal/service"
	appErrors "github.com/noah-isme/univ-api/pkg/errors"
	"github.com/noah-isme/univ-api/pkg/query"
)

type courseServiceMock struct {
	items      []*models.Course
	err        error
	lastSpec   query.Spec
	lastParent string
	created    *service.CreateCourseRequest
	updated    *service.UpdateCourseRequest
	deletedID  string
}

func (m *courseServiceMock) List(_ context.Context, spec query.Spec) (*query.Result[*models.Course], error) {
	m.lastSpec = spec
	if m.err != nil {
		return nil, m.err
	}
	return &query.Result[*models.Course]{Items: m.items, Total: 5, Page: spec.Page, Limit: spec.Limit, TotalPages: 3}, nil
}

func (m *courseServiceMock) ListByProgram(ctx context.Context, programID string, spec query.Spec) (*query.Result[*models.Course], error) {
	m.lastParent = programID
	return m.List(ctx, spec)
}

func (m *courseServiceMock) Get(_ context.Context, id string) (*models.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &models.Course{ID: id, Code: "CS101"}, nil
}

func (m *courseServiceMock) Create(_ context.Context, req service.CreateCourseRequest) (*models.Course, error) {
	m.created = &req
	if m.err != nil {
		return nil, m.err
	}
	return &models.Course{ID: "new", Code: req.Code, Title: req.Title}, nil
}

func (m *courseServiceMock) Update(_ context.Context, id string, req service.UpdateCourseRequest) (*models.Course, error) {
	m.updated = &req
	return &models.Course{ID: id}, m.err
}

func (m *courseServiceMock) Delete(_ context.Context, id string) error {
	m.deletedID = id
	return m.err
}

func courseRouter(svc *courseServiceMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCourseHandler(svc)
	r := gin.New()
	r.GET("/courses", h.List)
	r.GET("/courses/programs/:programId", h.ListByProgram)
	r.GET("/courses/:id", h.Get)
	r.POST("/courses", h.Create)
	r.PATCH("/courses/:id", h.Update)
	r.DELETE("/courses/:id", h.Delete)
	return r
}

func doJSON(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCourseHandlerListParsesQuery(t *testing.T) {
	svc := &courseServiceMock{items: []*models.Course{{ID: "c4", Code: "CS400"}, {ID: "c3", Code: "CS300"}}}
	w := doJSON(courseRouter(svc), http.MethodGet, "/courses?creditHours[gte]=3&sort=-code&page=2&limit=2", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, svc.lastSpec.Page)
	assert.Equal(t, 2, svc.lastSpec.Limit)
	assert.Equal(t, 2, svc.lastSpec.Skip)
	assert.True(t, svc.lastSpec.PageRequested)
	assert.Equal(t, []query.SortKey{{Field: "code", Desc: true}}, svc.lastSpec.Sort)
	assert.Contains(t, svc.lastSpec.Filter, "creditHours")

	var body struct {
		Status     string                   `json:"status"`
		Results    int                      `json:"results"`
		Page       int                      `json:"page"`
		TotalPages int                      `json:"totalPages"`
		Data       []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, 2, body.Results)
	assert.Equal(t, 2, body.Page)
	assert.Equal(t, 3, body.TotalPages)
	assert.Equal(t, "CS400", body.Data[0]["code"])
}

func TestCourseHandlerListProjectsFields(t *testing.T) {
	svc := &courseServiceMock{items: []*models.Course{{ID: "c1", Code: "CS100", Title: "Intro"}}}
	w := doJSON(courseRouter(svc), http.MethodGet, "/courses?fields=code", "")

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, map[string]interface{}{"id": "c1", "code": "CS100"}, body.Data[0])
}

func TestCourseHandlerListPageNotFound(t *testing.T) {
	svc := &courseServiceMock{err: appErrors.Clone(appErrors.ErrPageNotFound, "This page does not exist")}
	w := doJSON(courseRouter(svc), http.MethodGet, "/courses?page=9", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "This page does not exist")
	assert.Contains(t, w.Body.String(), `"status":"fail"`)
}

func TestCourseHandlerListByProgram(t *testing.T) {
	svc := &courseServiceMock{}
	w := doJSON(courseRouter(svc), http.MethodGet, "/courses/programs/p-1", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "p-1", svc.lastParent)
}

func TestCourseHandlerCreate(t *testing.T) {
	svc := &courseServiceMock{}
	w := doJSON(courseRouter(svc), http.MethodPost, "/courses", `{"code":"cs101","title":"Intro to CS","creditHours":3,"department":"d1","programs":["p1"]}`)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.created)
	assert.Equal(t, []string{"p1"}, svc.created.Programs)
	assert.Equal(t, 3, svc.created.CreditHours)
}

func TestCourseHandlerCreateMalformedBody(t *testing.T) {
	svc := &courseServiceMock{}
	w := doJSON(courseRouter(svc), http.MethodPost, "/courses", `{"code":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, svc.created)
}

func TestCourseHandlerCreateConflict(t *testing.T) {
	svc := &courseServiceMock{err: appErrors.Clone(appErrors.ErrConflict, "Course with this code already exists")}
	w := doJSON(courseRouter(svc), http.MethodPost, "/courses", `{"code":"CS101"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCourseHandlerPartialUpdate(t *testing.T) {
	svc := &courseServiceMock{}
	w := doJSON(courseRouter(svc), http.MethodPatch, "/courses/c1", `{"title":"Advanced Topics"}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.updated)
	assert.Nil(t, svc.updated.Programs)
	require.NotNil(t, svc.updated.Title)
	assert.Equal(t, "Advanced Topics", *svc.updated.Title)
}

func TestCourseHandlerDelete(t *testing.T) {
	svc := &courseServiceMock{}
	w := doJSON(courseRouter(svc), http.MethodDelete, "/courses/c9", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "c9", svc.deletedID)
	assert.Contains(t, w.Body.String(), "Course deleted successfully")
}
