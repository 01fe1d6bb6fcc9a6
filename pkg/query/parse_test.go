package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeparatesControlParameters(t *testing.T) {
	values, err := url.ParseQuery("creditHours[gte]=3&sort=-code&page=2&limit=2&fields=code,-description")
	require.NoError(t, err)

	spec := Parse(values)

	assert.Equal(t, Filter{"creditHours": map[string]interface{}{"$gte": "3"}}, spec.Filter)
	assert.Equal(t, []SortKey{{Field: "code", Desc: true}}, spec.Sort)
	assert.Equal(t, []string{"code"}, spec.Fields)
	assert.Equal(t, []string{"description"}, spec.ExcludeFields)
	assert.Equal(t, 2, spec.Page)
	assert.Equal(t, 2, spec.Limit)
	assert.Equal(t, 2, spec.Skip)
	assert.True(t, spec.PageRequested)
}

func TestParseDefaults(t *testing.T) {
	spec := Parse(url.Values{})

	assert.Empty(t, spec.Filter)
	assert.Equal(t, []SortKey{{Field: "createdAt", Desc: true}}, spec.Sort)
	assert.Equal(t, 1, spec.Page)
	assert.Equal(t, 10, spec.Limit)
	assert.Equal(t, 0, spec.Skip)
	assert.False(t, spec.PageRequested)
	assert.Empty(t, spec.Fields)
}

func TestParseInvalidPaginationFallsBack(t *testing.T) {
	cases := []struct {
		name  string
		query string
		page  int
		limit int
	}{
		{name: "non numeric", query: "page=abc&limit=xyz", page: 1, limit: 10},
		{name: "zero", query: "page=0&limit=0", page: 1, limit: 10},
		{name: "negative", query: "page=-3&limit=-1", page: 1, limit: 10},
		{name: "limit clamped", query: "limit=5000", page: 1, limit: 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			values, err := url.ParseQuery(tc.query)
			require.NoError(t, err)
			spec := Parse(values)
			assert.Equal(t, tc.page, spec.Page)
			assert.Equal(t, tc.limit, spec.Limit)
		})
	}
}

func TestParseNestedAndRepeatedKeys(t *testing.T) {
	values, err := url.ParseQuery("address[city]=Cairo&programs[in]=a,b&level=UG&level=PG&page[x]=1")
	require.NoError(t, err)

	spec := Parse(values)

	assert.Equal(t, map[string]interface{}{"city": "Cairo"}, spec.Filter["address"])
	assert.Equal(t, map[string]interface{}{"$in": "a,b"}, spec.Filter["programs"])
	assert.Equal(t, []string{"UG", "PG"}, spec.Filter["level"])
	assert.NotContains(t, spec.Filter, "page")
	assert.False(t, spec.PageRequested)
}

func TestParseSortKeys(t *testing.T) {
	assert.Equal(t,
		[]SortKey{{Field: "name"}, {Field: "createdAt", Desc: true}},
		parseSort("name, -createdAt"),
	)
	assert.Equal(t, []SortKey{{Field: "code"}}, parseSort(" code"))
	assert.Equal(t, []SortKey{{Field: "createdAt", Desc: true}}, parseSort(",,"))
}

func TestSplitKey(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitKey("a[b][c]"))
	assert.Equal(t, []string{"a"}, splitKey("a[]"))
	assert.Equal(t, []string{"a[b"}, splitKey("a[b"))
	assert.Equal(t, []string{"[x]"}, splitKey("[x]"))
	assert.Equal(t, []string{"plain"}, splitKey("plain"))
}

func TestSpecWithMergesConstraints(t *testing.T) {
	base := NewSpec(Filter{"level": "UG"})
	scoped := base.With(Filter{"programs": "p1"})

	assert.Equal(t, Filter{"level": "UG", "programs": "p1"}, scoped.Filter)
	assert.Equal(t, Filter{"level": "UG"}, base.Filter)
}
