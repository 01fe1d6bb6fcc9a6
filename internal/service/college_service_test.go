package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/univ-api/internal/models"
	appErrors "github.com/noah-isme/univ-api/pkg/errors"
)

type departmentCount struct {
	n   int
	err error
}

func (d departmentCount) CountByCollege(context.Context, string) (int, error) { return d.n, d.err }

func collegeStore() *memStore[models.College] {
	return newMemStore(func(c *models.College) *string { return &c.ID })
}

func TestCollegeDeleteBlockedByDepartments(t *testing.T) {
	store := collegeStore()
	id := store.put(models.College{Name: "Engineering", Code: "ENG"})
	svc := NewCollegeService(store, departmentCount{n: 2}, nil, nil)

	err := svc.Delete(context.Background(), id)
	require.Error(t, err)
	assert.Equal(t, http.StatusPreconditionFailed, statusOf(t, err))
	assert.True(t, errors.Is(err, appErrors.ErrPreconditionFailed))
	assert.Len(t, store.rows, 1)
}

func TestCollegeDeleteWithoutDepartments(t *testing.T) {
	store := collegeStore()
	id := store.put(models.College{Name: "Engineering", Code: "ENG"})
	svc := NewCollegeService(store, departmentCount{}, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), id))
	assert.Empty(t, store.rows)
}

func TestCollegeDeleteCountFailure(t *testing.T) {
	store := collegeStore()
	id := store.put(models.College{Name: "Engineering", Code: "ENG"})
	svc := NewCollegeService(store, departmentCount{err: errors.New("timeout")}, nil, nil)

	err := svc.Delete(context.Background(), id)
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
}

func TestCollegeCreateValidatesAddress(t *testing.T) {
	svc := NewCollegeService(collegeStore(), departmentCount{}, nil, nil)
	req := CreateCollegeRequest{
		Name:        "Engineering",
		Code:        "eng",
		Description: "Faculty of engineering",
		Address:     &models.Address{City: "Springfield", ZipCode: "123456789012345678901"},
	}

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	req.Address.ZipCode = "12345"
	college, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "ENG", college.Code)
	assert.Equal(t, "Springfield", college.Address.City)
}

func TestCollegeUpdateKeepsOmittedFields(t *testing.T) {
	store := collegeStore()
	id := store.put(models.College{Name: "Engineering", Code: "ENG", Description: "Old", Dean: models.NewRef(userA)})
	svc := NewCollegeService(store, departmentCount{}, nil, nil)
	desc := "New description"

	college, err := svc.Update(context.Background(), id, UpdateCollegeRequest{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "New description", college.Description)
	assert.Equal(t, "ENG", college.Code)
	assert.Equal(t, userA, college.Dean.ID)
}

func TestCollegeUpdateLeavesDepartmentListToDepartments(t *testing.T) {
	store := collegeStore()
	first := store.put(models.College{Name: "Engineering", Code: "ENG", Departments: models.NewRefList(deptA)})
	second := store.put(models.College{Name: "Sciences", Code: "SCI"})
	svc := NewCollegeService(store, departmentCount{}, nil, nil)

	var req UpdateCollegeRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Natural Sciences","departments":["`+deptA+`"]}`), &req))

	college, err := svc.Update(context.Background(), second, req)
	require.NoError(t, err)
	assert.Equal(t, "Natural Sciences", college.Name)
	assert.Empty(t, college.Departments.IDs())
	assert.Equal(t, []string{deptA}, store.rows[first].Departments.IDs())
	require.Len(t, store.written, 1)
	assert.Equal(t, []string{"name"}, store.written[0])
}
