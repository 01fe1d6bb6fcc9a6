package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/univ-api/pkg/errors"
	"github.com/noah-isme/univ-api/pkg/query"
)

type item struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

func TestPaginatedEnvelopeWithProjection(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	res := &query.Result[item]{
		Items:      []item{{ID: "1", Code: "CS103", Description: "x"}, {ID: "2", Code: "CS102"}},
		Total:      5,
		Page:       2,
		Limit:      2,
		TotalPages: 3,
	}
	Paginated(c, res, query.Spec{Fields: []string{"code"}})

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, float64(2), body["results"])
	assert.Equal(t, float64(2), body["page"])
	assert.Equal(t, float64(3), body["totalPages"])
	data := body["data"].([]interface{})
	assert.Equal(t, map[string]interface{}{"id": "1", "code": "CS103"}, data[0])
}

func TestErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, appErrors.Clone(appErrors.ErrPageNotFound, ""))

	require.Equal(t, http.StatusNotFound, w.Code)
	var body struct {
		Status string           `json:"status"`
		Error  *appErrors.Error `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "fail", body.Status)
	assert.Equal(t, "PAGE_NOT_FOUND", body.Error.Code)
	assert.Equal(t, "This page does not exist", body.Error.Message)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestProjectExcludes(t *testing.T) {
	out, err := Project(item{ID: "1", Code: "A", Description: "d"}, nil, []string{"description", "id"})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"id": "1", "code": "A"}, out)

	same, err := Project("plain", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "plain", same)
}
