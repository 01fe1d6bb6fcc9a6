package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslateRewritesOperatorKeys(t *testing.T) {
	in := Filter{
		"creditHours": map[string]interface{}{"gte": "3", "lt": "6"},
		"programs":    map[string]interface{}{"in": []string{"a", "b"}},
		"name":        map[string]interface{}{"regex": "^Intro"},
	}

	out := Translate(in)

	assert.Equal(t, Filter{
		"creditHours": map[string]interface{}{"$gte": "3", "$lt": "6"},
		"programs":    map[string]interface{}{"$in": []string{"a", "b"}},
		"name":        map[string]interface{}{"$regex": "^Intro"},
	}, out)
	// input untouched
	assert.Contains(t, in["creditHours"], "gte")
}

func TestTranslateIsIdempotent(t *testing.T) {
	in := Filter{"a": map[string]interface{}{"ne": "x", "nested": map[string]interface{}{"lte": "1"}}}
	once := Translate(in)
	assert.Equal(t, once, Translate(once))
}

func TestTranslateLeavesSubstringsAlone(t *testing.T) {
	in := Filter{
		"ltd":        "yes",
		"ingredient": "salt",
		"latest":     map[string]interface{}{"gte": "1"},
		"description": map[string]interface{}{
			"regexp": "x",
		},
	}

	out := Translate(in)

	assert.Equal(t, "yes", out["ltd"])
	assert.Equal(t, "salt", out["ingredient"])
	assert.Equal(t, map[string]interface{}{"$gte": "1"}, out["latest"])
	assert.Equal(t, map[string]interface{}{"regexp": "x"}, out["description"])
}

func TestTranslateValuesAreNotRewritten(t *testing.T) {
	out := Translate(Filter{"level": "gte"})
	assert.Equal(t, "gte", out["level"])
}

func TestTranslateExplicitOperatorWins(t *testing.T) {
	out := Translate(Filter{"x": map[string]interface{}{"gt": "1", "$gt": "2"}})
	assert.Equal(t, map[string]interface{}{"$gt": "2"}, out["x"])
}

func TestTranslateNil(t *testing.T) {
	assert.Nil(t, Translate(nil))
}
