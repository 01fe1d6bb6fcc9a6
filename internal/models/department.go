package models

import (
	"time"

	"github.com/noah-isme/univ-api/pkg/guard"
	"github.com/noah-isme/univ-api/pkg/query"
)

// Department belongs to exactly one college and is headed by one user.
type Department struct {
	ID               string    `db:"id" json:"id"`
	Name             string    `db:"name" json:"name"`
	Code             string    `db:"code" json:"code"`
	Description      string    `db:"description" json:"description,omitempty"`
	College          Ref       `db:"college_id" json:"college"`
	HeadOfDepartment Ref       `db:"head_of_department_id" json:"headOfDepartment"`
	Courses          RefList   `db:"course_ids" json:"courses"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time `db:"updated_at" json:"updatedAt"`
}

// References implements query.Relational.
func (d *Department) References(field string) []query.Reference {
	switch field {
	case "college":
		return single(&d.College)
	case "headOfDepartment":
		return single(&d.HeadOfDepartment)
	case "courses":
		return d.Courses.References()
	}
	return nil
}

// DepartmentSchema lists the queryable department fields.
var DepartmentSchema = query.NewSchema("departments", withTimestamps(
	query.Field{Name: "name", Column: "name", Kind: query.String},
	query.Field{Name: "code", Column: "code", Kind: query.String},
	query.Field{Name: "description", Column: "description", Kind: query.String},
	query.Field{Name: "college", Column: "college_id", Kind: query.ID},
	query.Field{Name: "headOfDepartment", Column: "head_of_department_id", Kind: query.ID},
	query.Field{Name: "courses", Column: "course_ids", Kind: query.IDList},
)...)

// DepartmentExpansions are populated on every department read.
var DepartmentExpansions = []query.Expansion{
	{Field: "college", Schema: CollegeSchema},
	{Field: "headOfDepartment", Schema: UserSchema},
	{Field: "courses", Schema: CourseSchema},
}

// DepartmentConstraints guards department writes.
var DepartmentConstraints = guard.Constraints[*Department]{
	Entity: "Department",
	References: []guard.Reference[*Department]{
		{Field: "college", IDs: func(d *Department) []string { return d.College.IDs() }},
		{Field: "headOfDepartment", IDs: func(d *Department) []string { return d.HeadOfDepartment.IDs() }},
		{Field: "courses", IDs: func(d *Department) []string { return d.Courses.IDs() }},
	},
	Unique: []guard.Unique[*Department]{
		{Field: "code", Column: "code", Value: func(d *Department) string { return d.Code }, Normalize: guard.UpperTrim},
		{
			Field:   "headOfDepartment",
			Column:  "head_of_department_id",
			Value:   func(d *Department) string { return d.HeadOfDepartment.ID },
			Message: func(*Department) string { return "This user already heads another department" },
		},
	},
}
