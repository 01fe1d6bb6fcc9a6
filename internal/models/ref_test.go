package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/univ-api/pkg/query"
)

const (
	deptID = "0b6f6c1e-5a57-4c1d-9a52-6c0c9a3e0001"
	progID = "0b6f6c1e-5a57-4c1d-9a52-6c0c9a3e0002"
)

func TestRefJSON(t *testing.T) {
	c := Course{Code: "CS101", Department: NewRef(deptID), Programs: NewRefList(progID)}

	raw, err := json.Marshal(c)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, deptID, out["department"])
	assert.Equal(t, []interface{}{progID}, out["programs"])
	assert.Equal(t, []interface{}{}, out["prerequisites"])

	c.References("department")[0].Populate(map[string]interface{}{"id": deptID, "name": "Computing"})
	raw, err = json.Marshal(c)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, map[string]interface{}{"id": deptID, "name": "Computing"}, out["department"])
}

func TestRefUnmarshalAcceptsIDsAndDocuments(t *testing.T) {
	var c Course
	err := json.Unmarshal([]byte(`{"department":{"id":"`+deptID+`","name":"x"},"programs":["`+progID+`"],"prerequisites":null}`), &c)
	require.NoError(t, err)
	assert.Equal(t, deptID, c.Department.ID)
	assert.Nil(t, c.Department.Doc)
	assert.Equal(t, []string{progID}, c.Programs.IDs())
	assert.Empty(t, c.Prerequisites.IDs())

	var r Ref
	require.NoError(t, json.Unmarshal([]byte(`null`), &r))
	assert.True(t, r.IsZero())
}

func TestRefListDatabaseRoundTrip(t *testing.T) {
	var l RefList
	require.NoError(t, l.Scan([]byte("{"+deptID+","+progID+"}")))
	assert.Equal(t, []string{deptID, progID}, l.IDs())

	v, err := RefList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", v)

	var r Ref
	require.NoError(t, r.Scan(nil))
	v, err = r.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestRelationalExposesDeclaredFields(t *testing.T) {
	items := []*Course{
		{Department: NewRef(deptID), Programs: NewRefList(progID)},
		{Department: NewRef(deptID)},
	}
	assert.Equal(t, []string{deptID}, query.CollectRefs(items, "department"))
	assert.Equal(t, []string{progID}, query.CollectRefs(items, "programs"))
	assert.Empty(t, query.CollectRefs(items, "unknown"))
}

func TestSchemasNeverExposePasswordHash(t *testing.T) {
	_, ok := UserSchema.Lookup("passwordHash")
	assert.False(t, ok)
	_, ok = UserSchema.Column("password_hash")
	assert.False(t, ok)
}

func TestNewRefListIsASet(t *testing.T) {
	list := NewRefList(progID, deptID, progID, "", deptID)
	assert.Equal(t, []string{progID, deptID}, list.IDs())
	assert.Len(t, list, 2)
}
