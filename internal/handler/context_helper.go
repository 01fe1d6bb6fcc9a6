package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/univ-api/internal/middleware"
	"github.com/noah-isme/univ-api/internal/models"
	appErrors "github.com/noah-isme/univ-api/pkg/errors"
	"github.com/noah-isme/univ-api/pkg/query"
	"github.com/noah-isme/univ-api/pkg/response"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return nil
	}
	return claims
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, message))
		return false
	}
	return true
}

// listWith parses the query string and renders one page from fetch.
func listWith[T any](c *gin.Context, fetch func(context.Context, query.Spec) (*query.Result[T], error)) {
	spec := query.Parse(c.Request.URL.Query())
	res, err := fetch(c.Request.Context(), spec)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, res, spec)
}

func getWith[T any](c *gin.Context, fetch func(context.Context, string) (T, error)) {
	doc, err := fetch(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, doc)
}

func createWith[T, R any](c *gin.Context, noun string, create func(context.Context, R) (T, error)) {
	var req R
	if !bindJSON(c, &req, "invalid "+noun+" payload") {
		return
	}
	doc, err := create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, doc)
}

func updateWith[T, R any](c *gin.Context, noun string, update func(context.Context, string, R) (T, error)) {
	var req R
	if !bindJSON(c, &req, "invalid "+noun+" payload") {
		return
	}
	doc, err := update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, doc)
}

func deleteWith(c *gin.Context, entity string, remove func(context.Context, string) error) {
	if err := remove(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, entity+" deleted successfully")
}
