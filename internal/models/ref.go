package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"github.com/noah-isme/univ-api/pkg/query"
	"github.com/noah-isme/univ-api/pkg/relation"
)

// Ref is a single relation slot. It serializes as the referenced id, or as the
// referenced document once populated.
type Ref struct {
	ID  string
	Doc map[string]interface{}
}

// NewRef returns an unpopulated reference to id.
func NewRef(id string) Ref {
	return Ref{ID: id}
}

// RefID implements query.Reference.
func (r *Ref) RefID() string { return r.ID }

// Populate implements query.Reference.
func (r *Ref) Populate(doc map[string]interface{}) { r.Doc = doc }

// IsZero reports whether the reference is unset.
func (r Ref) IsZero() bool { return r.ID == "" }

// IDs returns the referenced id as a slice, empty when unset.
func (r Ref) IDs() []string {
	if r.ID == "" {
		return nil
	}
	return []string{r.ID}
}

// Scan implements sql.Scanner for nullable uuid columns.
func (r *Ref) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		r.ID = ""
	case []byte:
		r.ID = string(v)
	case string:
		r.ID = v
	default:
		return fmt.Errorf("models: cannot scan %T into Ref", src)
	}
	r.Doc = nil
	return nil
}

// Value implements driver.Valuer. An unset reference is stored as NULL.
func (r Ref) Value() (driver.Value, error) {
	if r.ID == "" {
		return nil, nil
	}
	return r.ID, nil
}

// MarshalJSON writes the populated document, the id, or null.
func (r Ref) MarshalJSON() ([]byte, error) {
	if r.Doc != nil {
		return json.Marshal(r.Doc)
	}
	if r.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}

// UnmarshalJSON accepts an id string, null, or an object carrying an id.
func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	r.Doc = nil
	if bytes.Equal(data, []byte("null")) {
		r.ID = ""
		return nil
	}
	if len(data) > 0 && data[0] == '{' {
		var doc struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return err
		}
		r.ID = doc.ID
		return nil
	}
	return json.Unmarshal(data, &r.ID)
}

// RefList is a many-valued relation stored as a uuid[] column.
type RefList []Ref

// NewRefList builds an unpopulated list from ids, dropping blanks and duplicates.
func NewRefList(ids ...string) RefList {
	ids = relation.Distinct(ids)
	out := make(RefList, 0, len(ids))
	for _, id := range ids {
		out = append(out, NewRef(id))
	}
	return out
}

// IDs returns the referenced ids in order.
func (l RefList) IDs() []string {
	ids := make([]string, 0, len(l))
	for _, r := range l {
		if r.ID != "" {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// References exposes every slot for population.
func (l RefList) References() []query.Reference {
	refs := make([]query.Reference, 0, len(l))
	for i := range l {
		refs = append(refs, &l[i])
	}
	return refs
}

// Scan implements sql.Scanner for uuid[] columns.
func (l *RefList) Scan(src interface{}) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return fmt.Errorf("models: scan RefList: %w", err)
	}
	*l = NewRefList(arr...)
	return nil
}

// Value implements driver.Valuer. Empty lists are stored as an empty array, never NULL.
func (l RefList) Value() (driver.Value, error) {
	return pq.StringArray(append([]string{}, l.IDs()...)).Value()
}

// MarshalJSON always writes an array.
func (l RefList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Ref(l))
}

// UnmarshalJSON accepts an array of ids or documents.
func (l *RefList) UnmarshalJSON(data []byte) error {
	var refs []Ref
	if err := json.Unmarshal(data, &refs); err != nil {
		return err
	}
	*l = refs
	return nil
}

func single(r *Ref) []query.Reference {
	return []query.Reference{r}
}
