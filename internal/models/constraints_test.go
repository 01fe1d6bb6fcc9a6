package models

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/univ-api/pkg/errors"
)

type lookupStub struct {
	conds []map[string]interface{}
	found bool
}

func (l *lookupStub) Exists(_ context.Context, conds map[string]interface{}, _ string) (bool, error) {
	l.conds = append(l.conds, conds)
	return l.found, nil
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	return appErr.Status
}

func TestAdminUnitRequiresExactlyOneOwner(t *testing.T) {
	lookup := &lookupStub{}
	both := &AdminUnit{Name: "Registry", College: NewRef(deptID), University: NewRef(progID)}
	err := AdminUnitConstraints.Check(context.Background(), lookup, "", both)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	neither := &AdminUnit{Name: "Registry"}
	require.Error(t, AdminUnitConstraints.Check(context.Background(), lookup, "", neither))
	assert.Empty(t, lookup.conds)
}

func TestAdminUnitNameScopedToOwner(t *testing.T) {
	lookup := &lookupStub{found: true}
	unit := &AdminUnit{Name: " Registry ", College: NewRef(deptID)}

	err := AdminUnitConstraints.Check(context.Background(), lookup, "", unit)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, statusOf(t, err))
	assert.Equal(t, map[string]interface{}{"name": "Registry", "college_id": deptID}, lookup.conds[0])
	assert.Contains(t, err.Error(), "in the college")
}

func TestCourseCodeIsNormalizedBeforeLookup(t *testing.T) {
	lookup := &lookupStub{}
	course := &Course{Code: " cs101 ", Department: NewRef(deptID)}
	require.NoError(t, CourseConstraints.Check(context.Background(), lookup, "", course))
	assert.Equal(t, map[string]interface{}{"code": "CS101"}, lookup.conds[0])
}

func TestMalformedReferenceRejected(t *testing.T) {
	course := &Course{Code: "CS101", Department: NewRef("123"), Programs: NewRefList(progID, "nope")}
	err := CourseConstraints.Check(context.Background(), &lookupStub{}, "", course)
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	require.Len(t, appErr.Details, 2)
	assert.Equal(t, "department", appErr.Details[0].Field)
	assert.Equal(t, "programs", appErr.Details[1].Field)
}
