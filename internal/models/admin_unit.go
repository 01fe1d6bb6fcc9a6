package models

import (
	"time"

	"github.com/noah-isme/univ-api/pkg/guard"
	"github.com/noah-isme/univ-api/pkg/query"
)

// AdminUnit is an administrative office attached to a college or to the university.
type AdminUnit struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description,omitempty"`
	Staff       RefList   `db:"staff_ids" json:"staff"`
	College     Ref       `db:"college_id" json:"college"`
	University  Ref       `db:"university_id" json:"university"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// References implements query.Relational.
func (a *AdminUnit) References(field string) []query.Reference {
	switch field {
	case "staff":
		return a.Staff.References()
	case "college":
		return single(&a.College)
	case "university":
		return single(&a.University)
	}
	return nil
}

// AdminUnitSchema lists the queryable admin unit fields.
var AdminUnitSchema = query.NewSchema("admin_units", withTimestamps(
	query.Field{Name: "name", Column: "name", Kind: query.String},
	query.Field{Name: "description", Column: "description", Kind: query.String},
	query.Field{Name: "staff", Column: "staff_ids", Kind: query.IDList},
	query.Field{Name: "college", Column: "college_id", Kind: query.ID},
	query.Field{Name: "university", Column: "university_id", Kind: query.ID},
)...)

// AdminUnitExpansions are populated on every admin unit read.
var AdminUnitExpansions = []query.Expansion{
	{Field: "staff", Schema: UserSchema, Fields: []string{"firstname", "lastname", "email", "role"}},
	{Field: "college", Schema: CollegeSchema, Fields: []string{"name", "code"}},
	{Field: "university", Schema: UniversitySchema, Fields: []string{"name", "code"}},
}

// AdminUnitConstraints guards admin unit writes. The name is unique within the
// owning college or university.
var AdminUnitConstraints = guard.Constraints[*AdminUnit]{
	Entity: "Admin unit",
	References: []guard.Reference[*AdminUnit]{
		{Field: "staff", IDs: func(a *AdminUnit) []string { return a.Staff.IDs() }},
		{Field: "college", IDs: func(a *AdminUnit) []string { return a.College.IDs() }},
		{Field: "university", IDs: func(a *AdminUnit) []string { return a.University.IDs() }},
	},
	Exclusive: []guard.Exclusive[*AdminUnit]{
		{
			A:    "college",
			B:    "university",
			HasA: func(a *AdminUnit) bool { return !a.College.IsZero() },
			HasB: func(a *AdminUnit) bool { return !a.University.IsZero() },
		},
	},
	Unique: []guard.Unique[*AdminUnit]{
		{
			Field:     "name",
			Column:    "name",
			Value:     func(a *AdminUnit) string { return a.Name },
			Normalize: guard.Trim,
			Scope: func(a *AdminUnit) map[string]interface{} {
				if !a.College.IsZero() {
					return map[string]interface{}{"college_id": a.College.ID}
				}
				return map[string]interface{}{"university_id": a.University.ID}
			},
			Message: func(a *AdminUnit) string {
				if !a.College.IsZero() {
					return "Admin unit with this name already exists in the college"
				}
				return "Admin unit with this name already exists in the university"
			},
		},
	},
}
