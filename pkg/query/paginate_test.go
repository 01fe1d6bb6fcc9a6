package query

import (
	"context"
	"errors"
	"net/url"
	"sort"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/univ-api/pkg/errors"
)

type fakeRef struct {
	id  string
	doc map[string]interface{}
}

func (r *fakeRef) RefID() string                       { return r.id }
func (r *fakeRef) Populate(doc map[string]interface{}) { r.doc = doc }

type fakeCourse struct {
	Code        string
	CreditHours int
	Department  fakeRef
}

func (c *fakeCourse) References(field string) []Reference {
	if field == "department" {
		return []Reference{&c.Department}
	}
	return nil
}

type fakeCourses struct {
	rows        []*fakeCourse
	expanded    []Expansion
	findCalls   int
	countFilter Filter
}

func (f *fakeCourses) matching(filter Filter) []*fakeCourse {
	var out []*fakeCourse
	for _, row := range f.rows {
		if ops, ok := filter["creditHours"].(map[string]interface{}); ok {
			if raw, ok := ops["$gte"].(string); ok {
				floor, _ := strconv.Atoi(raw)
				if row.CreditHours < floor {
					continue
				}
			}
		}
		out = append(out, row)
	}
	return out
}

func (f *fakeCourses) Count(_ context.Context, filter Filter) (int, error) {
	f.countFilter = filter
	return len(f.matching(filter)), nil
}

func (f *fakeCourses) Find(_ context.Context, spec Spec) ([]*fakeCourse, error) {
	f.findCalls++
	rows := f.matching(spec.Filter)
	sort.Slice(rows, func(i, j int) bool {
		if spec.Sort[0].Desc {
			return rows[i].Code > rows[j].Code
		}
		return rows[i].Code < rows[j].Code
	})
	if spec.Skip >= len(rows) {
		return nil, nil
	}
	end := spec.Skip + spec.Limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[spec.Skip:end], nil
}

func (f *fakeCourses) Expand(_ context.Context, items []*fakeCourse, exps []Expansion) error {
	f.expanded = exps
	for _, exp := range exps {
		docs := map[string]map[string]interface{}{}
		for _, id := range CollectRefs(items, exp.Field) {
			docs[id] = map[string]interface{}{"id": id, "name": "Dept " + id}
		}
		Fill(items, exp.Field, docs)
	}
	return nil
}

func seedCourses() *fakeCourses {
	return &fakeCourses{rows: []*fakeCourse{
		{Code: "CS101", CreditHours: 3, Department: fakeRef{id: "d1"}},
		{Code: "CS102", CreditHours: 4, Department: fakeRef{id: "d1"}},
		{Code: "CS103", CreditHours: 3, Department: fakeRef{id: "d2"}},
		{Code: "CS104", CreditHours: 5},
		{Code: "CS105", CreditHours: 3},
		{Code: "CS001", CreditHours: 1},
	}}
}

func TestPaginateSecondPageSortedByCodeDesc(t *testing.T) {
	values, err := url.ParseQuery("creditHours[gte]=3&sort=-code&page=2&limit=2")
	require.NoError(t, err)
	coll := seedCourses()

	res, err := Paginate[*fakeCourse](context.Background(), coll, Parse(values))
	require.NoError(t, err)

	assert.Equal(t, 5, res.Total)
	assert.Equal(t, 3, res.TotalPages)
	assert.Equal(t, 2, res.Page)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "CS103", res.Items[0].Code)
	assert.Equal(t, "CS102", res.Items[1].Code)
	assert.Equal(t, Filter{"creditHours": map[string]interface{}{"$gte": "3"}}, coll.countFilter)
}

func TestPaginatePageBeyondRangeIsNotFound(t *testing.T) {
	values, err := url.ParseQuery("creditHours[gte]=3&page=4&limit=2")
	require.NoError(t, err)
	coll := seedCourses()

	_, err = Paginate[*fakeCourse](context.Background(), coll, Parse(values))

	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrPageNotFound))
	assert.Equal(t, "This page does not exist", err.Error())
	assert.Zero(t, coll.findCalls)
}

func TestPaginateEmptyResultWithoutPageIsOK(t *testing.T) {
	coll := &fakeCourses{}

	res, err := Paginate[*fakeCourse](context.Background(), coll, Parse(url.Values{}))
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.NotNil(t, res.Items)
	assert.Equal(t, 0, res.TotalPages)
	assert.Equal(t, 1, res.Page)
}

func TestPaginateExplicitFirstPageOnEmptyResultIsNotFound(t *testing.T) {
	values, err := url.ParseQuery("page=1")
	require.NoError(t, err)

	_, err = Paginate[*fakeCourse](context.Background(), &fakeCourses{}, Parse(values))
	assert.True(t, errors.Is(err, appErrors.ErrPageNotFound))
}

func TestPaginateExpandsRelations(t *testing.T) {
	coll := seedCourses()
	spec := NewSpec(nil)
	spec.Sort = []SortKey{{Field: "code"}}

	res, err := Paginate[*fakeCourse](context.Background(), coll, spec, Expansion{Field: "department", Schema: NewSchema("departments")})
	require.NoError(t, err)

	require.Len(t, coll.expanded, 1)
	byCode := map[string]*fakeCourse{}
	for _, c := range res.Items {
		byCode[c.Code] = c
	}
	assert.Equal(t, "Dept d1", byCode["CS101"].Department.doc["name"])
	assert.Equal(t, "Dept d2", byCode["CS103"].Department.doc["name"])
	assert.Nil(t, byCode["CS104"].Department.doc)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 0, TotalPages(5, 0))
}

func TestCollectRefsDeduplicates(t *testing.T) {
	ids := CollectRefs(seedCourses().rows, "department")
	assert.Equal(t, []string{"d1", "d2"}, ids)
}
