package response

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/univ-api/pkg/errors"
	"github.com/noah-isme/univ-api/pkg/query"
)

const statusSuccess = "success"

// Envelope represents the common response contract.
type Envelope struct {
	Status  string           `json:"status"`
	Message string           `json:"message,omitempty"`
	Data    interface{}      `json:"data,omitempty"`
	Error   *appErrors.Error `json:"error,omitempty"`
}

// ListEnvelope is returned by paginated list endpoints.
type ListEnvelope struct {
	Status     string      `json:"status"`
	Results    int         `json:"results"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	TotalPages int         `json:"totalPages"`
	Data       interface{} `json:"data"`
}

func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
}

// JSON sends a success response.
func JSON(c *gin.Context, status int, data interface{}) {
	noStore(c)
	c.JSON(status, Envelope{Status: statusSuccess, Data: data})
}

// Message sends a success response carrying only a message.
func Message(c *gin.Context, status int, message string) {
	noStore(c)
	c.JSON(status, Envelope{Status: statusSuccess, Message: message})
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Paginated renders one page of results, applying the requested projection.
func Paginated[T any](c *gin.Context, res *query.Result[T], spec query.Spec) {
	data, err := Project(res.Items, spec.Fields, spec.ExcludeFields)
	if err != nil {
		Error(c, err)
		return
	}
	noStore(c)
	c.JSON(http.StatusOK, ListEnvelope{
		Status:     statusSuccess,
		Results:    len(res.Items),
		Total:      res.Total,
		Page:       res.Page,
		TotalPages: res.TotalPages,
		Data:       data,
	})
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	noStore(c)
	c.JSON(appErr.Status, Envelope{Status: appErr.StatusText(), Error: appErr})
}

// Abort writes the error response and stops the handler chain.
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

// Project trims JSON objects down to the included keys (id is always kept) or drops
// the excluded ones. Without either list data is returned unchanged.
func Project(data interface{}, include, exclude []string) (interface{}, error) {
	if len(include) == 0 && len(exclude) == 0 {
		return data, nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}

	switch v := generic.(type) {
	case []interface{}:
		for i, item := range v {
			v[i] = projectOne(item, include, exclude)
		}
		return v, nil
	default:
		return projectOne(v, include, exclude), nil
	}
}

func projectOne(item interface{}, include, exclude []string) interface{} {
	obj, ok := item.(map[string]interface{})
	if !ok {
		return item
	}
	if len(include) > 0 {
		out := map[string]interface{}{"id": obj["id"]}
		for _, key := range include {
			if v, found := obj[key]; found {
				out[key] = v
			}
		}
		return out
	}
	for _, key := range exclude {
		if key != "id" {
			delete(obj, key)
		}
	}
	return obj
}
