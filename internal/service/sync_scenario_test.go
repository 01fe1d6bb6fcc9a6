package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/univ-api/internal/models"
	appErrors "github.com/noah-isme/univ-api/pkg/errors"
	"github.com/noah-isme/univ-api/pkg/relation"
)

const (
	programP1 = "a1000000-0000-4000-8000-000000000001"
	programP2 = "a2000000-0000-4000-8000-000000000002"
	programP3 = "a3000000-0000-4000-8000-000000000003"
)

func courseStore() *memStore[models.Course] {
	return newMemStore(func(c *models.Course) *string { return &c.ID })
}

func programStore() *memStore[models.Program] {
	return newMemStore(func(p *models.Program) *string { return &p.ID })
}

func seededPrograms() *relation.MemoryStore {
	refs := relation.NewMemoryStore()
	for _, id := range []string{programP1, programP2, programP3} {
		refs.Seed("programs", id, map[string][]string{"course_ids": nil})
	}
	return refs
}

func newCourseRequest(programs ...string) CreateCourseRequest {
	return CreateCourseRequest{
		Code:        " cs101 ",
		Title:       "Introduction to Computing",
		CreditHours: 3,
		Department:  deptA,
		Programs:    programs,
	}
}

func TestCourseProgramsStayMirrored(t *testing.T) {
	ctx := context.Background()
	refs := seededPrograms()
	svc := NewCourseService(courseStore(), relation.NewSynchronizer(refs, nil, nil), nil, nil)

	course, err := svc.Create(ctx, newCourseRequest(programP1, programP2))
	require.NoError(t, err)
	assert.Equal(t, "CS101", course.Code)
	assert.True(t, course.IsActive)
	assert.Equal(t, []string{course.ID}, refs.Values("programs", programP1, "course_ids"))
	assert.Equal(t, []string{course.ID}, refs.Values("programs", programP2, "course_ids"))
	assert.Empty(t, refs.Values("programs", programP3, "course_ids"))

	programs := []string{programP2, programP3}
	_, err = svc.Update(ctx, course.ID, UpdateCourseRequest{Programs: &programs})
	require.NoError(t, err)
	assert.Empty(t, refs.Values("programs", programP1, "course_ids"))
	assert.Equal(t, []string{course.ID}, refs.Values("programs", programP2, "course_ids"))
	assert.Equal(t, []string{course.ID}, refs.Values("programs", programP3, "course_ids"))

	require.NoError(t, svc.Delete(ctx, course.ID))
	for _, p := range []string{programP1, programP2, programP3} {
		assert.Empty(t, refs.Values("programs", p, "course_ids"))
	}
}

func TestCourseUpdateWithoutProgramsLeavesMirrorAlone(t *testing.T) {
	ctx := context.Background()
	refs := seededPrograms()
	svc := NewCourseService(courseStore(), relation.NewSynchronizer(refs, nil, nil), nil, nil)

	course, err := svc.Create(ctx, newCourseRequest(programP1))
	require.NoError(t, err)

	title := "Computing Fundamentals"
	updated, err := svc.Update(ctx, course.ID, UpdateCourseRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Computing Fundamentals", updated.Title)
	assert.Equal(t, []string{course.ID}, refs.Values("programs", programP1, "course_ids"))
}

func TestProgramCoursesMirrorCourses(t *testing.T) {
	ctx := context.Background()
	refs := relation.NewMemoryStore()
	courseID := "c1000000-0000-4000-8000-000000000001"
	refs.Seed("courses", courseID, map[string][]string{"program_ids": nil})
	svc := NewProgramService(programStore(), relation.NewSynchronizer(refs, nil, nil), nil, nil)

	program, err := svc.Create(ctx, CreateProgramRequest{
		Name:    "Computer Science",
		Code:    "bscs",
		College: collegeA,
		Courses: []string{courseID},
	})
	require.NoError(t, err)
	assert.Equal(t, models.ProgramBachelor, program.Type)
	assert.Equal(t, models.DefaultProgramDuration, program.DurationYears)
	assert.Equal(t, []string{program.ID}, refs.Values("courses", courseID, "program_ids"))

	require.NoError(t, svc.Delete(ctx, program.ID))
	assert.Empty(t, refs.Values("courses", courseID, "program_ids"))
}

type failingRelations struct{}

func (failingRelations) Pull(context.Context, string, string, string, []string) (int64, error) {
	return 0, errors.New("deadlock detected")
}

func (failingRelations) AddToSet(context.Context, string, string, string, []string) (int64, error) {
	return 0, nil
}

func TestSyncFailureIsReportedAfterSave(t *testing.T) {
	store := courseStore()
	svc := NewCourseService(store, relation.NewSynchronizer(failingRelations{}, nil, nil), nil, nil)

	_, err := svc.Create(context.Background(), newCourseRequest(programP1))
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
	assert.True(t, errors.Is(err, appErrors.ErrReferenceSync))
	assert.Len(t, store.rows, 1)
}

func TestCourseRejectsMalformedReferences(t *testing.T) {
	svc := NewCourseService(courseStore(), relation.NewSynchronizer(seededPrograms(), nil, nil), nil, nil)

	req := newCourseRequest("bogus")
	req.Prerequisites = []string{"also-bogus"}
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestDepartmentMovesBetweenColleges(t *testing.T) {
	ctx := context.Background()
	refs := relation.NewMemoryStore()
	refs.Seed("colleges", collegeA, map[string][]string{"department_ids": nil})
	refs.Seed("colleges", collegeB, map[string][]string{"department_ids": nil})
	svc := NewDepartmentService(
		newMemStore(func(d *models.Department) *string { return &d.ID }),
		relation.NewSynchronizer(refs, nil, nil), nil, nil)

	dept, err := svc.Create(ctx, CreateDepartmentRequest{
		Name:             "Computer Science",
		Code:             "cs",
		College:          collegeA,
		HeadOfDepartment: userA,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{dept.ID}, refs.Values("colleges", collegeA, "department_ids"))

	to := collegeB
	_, err = svc.Update(ctx, dept.ID, UpdateDepartmentRequest{College: &to})
	require.NoError(t, err)
	assert.Empty(t, refs.Values("colleges", collegeA, "department_ids"))
	assert.Equal(t, []string{dept.ID}, refs.Values("colleges", collegeB, "department_ids"))

	require.NoError(t, svc.Delete(ctx, dept.ID))
	assert.Empty(t, refs.Values("colleges", collegeB, "department_ids"))
}

func TestDepartmentHeadIsUnique(t *testing.T) {
	store := newMemStore(func(d *models.Department) *string { return &d.ID })
	store.taken = func(conds map[string]interface{}, _ string) bool {
		return conds["head_of_department_id"] == userA
	}
	svc := NewDepartmentService(store, relation.NewSynchronizer(relation.NewMemoryStore(), nil, nil), nil, nil)

	_, err := svc.Create(context.Background(), CreateDepartmentRequest{
		Name:             "Physics",
		Code:             "PHY",
		College:          collegeA,
		HeadOfDepartment: userA,
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, statusOf(t, err))
	assert.Contains(t, err.Error(), "This user already heads another department")
	assert.Empty(t, store.rows)
}

func TestCourseUpdateWritesOnlySentFields(t *testing.T) {
	ctx := context.Background()
	store := courseStore()
	svc := NewCourseService(store, relation.NewSynchronizer(seededPrograms(), nil, nil), nil, nil)

	course, err := svc.Create(ctx, newCourseRequest(programP1))
	require.NoError(t, err)

	title := "Computing Fundamentals"
	hours := 4
	_, err = svc.Update(ctx, course.ID, UpdateCourseRequest{Title: &title, CreditHours: &hours})
	require.NoError(t, err)
	require.Len(t, store.written, 1)
	assert.Equal(t, []string{"title", "creditHours"}, store.written[0])
}

func TestCourseDuplicateProgramsStoredOnce(t *testing.T) {
	ctx := context.Background()
	refs := seededPrograms()
	svc := NewCourseService(courseStore(), relation.NewSynchronizer(refs, nil, nil), nil, nil)

	course, err := svc.Create(ctx, newCourseRequest(programP1, programP1, programP2))
	require.NoError(t, err)
	assert.Equal(t, []string{programP1, programP2}, course.Programs.IDs())
	assert.Equal(t, []string{course.ID}, refs.Values("programs", programP1, "course_ids"))
}
